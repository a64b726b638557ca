package meter

import (
	"strings"
	"testing"
)

func TestExplainIdentified(t *testing.T) {
	cat := builtin(t)
	q := quarters("LLGLLGGG", "GLGGLGLG", "GLGLLGGG", "GGGGLGLG")
	res := cat.Match(q, "", DefaultOptions())

	text := Explain(&res, q, DefaultOptions())
	if !strings.Contains(text, "Anushtup") {
		t.Errorf("Explanation should name the meter: %q", text)
	}
	if !strings.Contains(text, "Identified") {
		t.Errorf("Explanation should state the verdict: %q", text)
	}
}

func TestExplainUnidentifiedListsNearest(t *testing.T) {
	cat := builtin(t)
	q := quarters("LLLLLLLLL")
	res := cat.Match(q, "", DefaultOptions())
	if res.Verdict == Identified {
		t.Fatal("Fixture unexpectedly identified")
	}

	res.Verdict = Unidentified // force the diagnostic branch
	text := Explain(&res, q, DefaultOptions())
	if !strings.Contains(text, "Nearest candidates") {
		t.Errorf("Expected nearest candidates in %q", text)
	}
}

func TestExplainEmptyResult(t *testing.T) {
	res := Result{Verdict: Unidentified}
	q := quarters("LGLG")
	text := Explain(&res, q, DefaultOptions())
	if text == "" {
		t.Error("Explanation must never be empty")
	}
}

func TestExplainTolerated(t *testing.T) {
	cat, err := NewCatalogue([]Definition{
		{Name: "Strict", Family: SamaVritta, Pattern: "GGGGGGGG"},
	})
	if err != nil {
		t.Fatalf("NewCatalogue: %v", err)
	}
	q := quarters("GGGGGGGL")
	res := cat.Match(q, "", DefaultOptions())

	text := Explain(&res, q, DefaultOptions())
	if !strings.Contains(text, "Strict") {
		t.Errorf("Explanation should name the meter: %q", text)
	}
}
