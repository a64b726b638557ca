package chandasdna

import (
	"context"
	"errors"
	"testing"

	"github.com/vedicmetrics/ChandasDNA/pkg/models"
)

// stubIdentifier returns a canned result or error and counts calls.
type stubIdentifier struct {
	result *models.Identification
	err    error
	calls  int
}

func (s *stubIdentifier) Identify(ctx context.Context, shloka, hint string) (*models.Identification, error) {
	s.calls++
	return s.result, s.err
}

func ident(name string, confidence float64) *models.Identification {
	return &models.Identification{
		ChandasName: name,
		Detected:    name != "",
		Confidence:  confidence,
		Verdict:     "identified",
	}
}

func TestFallbackPrimaryWins(t *testing.T) {
	primary := &stubIdentifier{result: ident("Mandakranta", 0.95)}
	secondary := &stubIdentifier{result: ident("Anushtup", 1.0)}
	f := &Fallback{Primary: primary, Secondary: secondary, MinConfidence: 0.6}

	res, err := f.Identify(context.Background(), "verse", "")
	if err != nil {
		t.Fatalf("Identify failed: %v", err)
	}
	if res.ChandasName != "Mandakranta" {
		t.Errorf("Expected primary result, got %s", res.ChandasName)
	}
	if secondary.calls != 0 {
		t.Error("Secondary must not run when primary is confident")
	}
}

func TestFallbackOnPrimaryError(t *testing.T) {
	primary := &stubIdentifier{err: errors.New("api unavailable")}
	secondary := &stubIdentifier{result: ident("Anushtup", 1.0)}
	f := &Fallback{Primary: primary, Secondary: secondary, MinConfidence: 0.6}

	res, err := f.Identify(context.Background(), "verse", "")
	if err != nil {
		t.Fatalf("Identify failed: %v", err)
	}
	if res.ChandasName != "Anushtup" {
		t.Errorf("Expected secondary result, got %s", res.ChandasName)
	}
}

func TestFallbackOnLowConfidence(t *testing.T) {
	primary := &stubIdentifier{result: ident("Totaka", 0.3)}
	secondary := &stubIdentifier{result: ident("Anushtup", 0.95)}
	f := &Fallback{Primary: primary, Secondary: secondary, MinConfidence: 0.6}

	res, err := f.Identify(context.Background(), "verse", "")
	if err != nil {
		t.Fatalf("Identify failed: %v", err)
	}
	if res.ChandasName != "Anushtup" {
		t.Errorf("Expected secondary result, got %s", res.ChandasName)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Errorf("Expected both identifiers consulted: %d/%d", primary.calls, secondary.calls)
	}
}

func TestFallbackKeepsWeakPrimaryWhenSecondaryErrors(t *testing.T) {
	primary := &stubIdentifier{result: ident("Totaka", 0.3)}
	secondary := &stubIdentifier{err: errors.New("db broken")}
	f := &Fallback{Primary: primary, Secondary: secondary, MinConfidence: 0.6}

	res, err := f.Identify(context.Background(), "verse", "")
	if err != nil {
		t.Fatalf("A weak primary result should survive a failed fallback: %v", err)
	}
	if res.ChandasName != "Totaka" {
		t.Errorf("Expected the weak primary result, got %s", res.ChandasName)
	}
}

func TestFallbackBothFail(t *testing.T) {
	primary := &stubIdentifier{err: errors.New("api unavailable")}
	secondary := &stubIdentifier{err: errors.New("db broken")}
	f := &Fallback{Primary: primary, Secondary: secondary, MinConfidence: 0.6}

	if _, err := f.Identify(context.Background(), "verse", ""); err == nil {
		t.Error("Expected an error when both identifiers fail")
	}
}

func TestFallbackPrefersDetectionOverNothing(t *testing.T) {
	// primary detected something below threshold, secondary detected nothing
	primary := &stubIdentifier{result: ident("Totaka", 0.5)}
	undetected := &models.Identification{Verdict: "unidentified"}
	secondary := &stubIdentifier{result: undetected}
	f := &Fallback{Primary: primary, Secondary: secondary, MinConfidence: 0.6}

	res, err := f.Identify(context.Background(), "verse", "")
	if err != nil {
		t.Fatalf("Identify failed: %v", err)
	}
	if res.ChandasName != "Totaka" {
		t.Errorf("Expected the weak primary detection, got %+v", res)
	}
}
