package meter

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/vedicmetrics/ChandasDNA/internal/model"
)

// maxListedDivergences caps how many per-position notes an explanation
// spells out before summarizing the rest.
const maxListedDivergences = 4

// Explain renders a match result as plain prose. The text is generated
// locally from the scored comparison; no model is ever consulted.
func Explain(res *Result, quarters [][]model.Weight, opts Options) string {
	best := res.Best()
	if best == nil {
		return fmt.Sprintf(
			"No catalogue meter admits this syllable structure (%s). The observed pattern is %s.",
			describeQuarters(quarters), observedPatterns(quarters))
	}

	switch res.Verdict {
	case Identified:
		return explainMatch(best, quarters, "Identified as")
	case Probable:
		return explainMatch(best, quarters, "Probable match:")
	default:
		var nearest []string
		for _, c := range res.Nearest(3) {
			nearest = append(nearest, fmt.Sprintf("%s (%.2f)", c.Definition.Name, c.Score))
		}
		return fmt.Sprintf(
			"No meter scored at or above %.2f. The verse has %s with pattern %s. Nearest candidates: %s.",
			opts.ProbableThreshold, describeQuarters(quarters), observedPatterns(quarters),
			strings.Join(nearest, ", "))
	}
}

func explainMatch(c *Candidate, quarters [][]model.Weight, lead string) string {
	def := c.Definition
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s, a %s meter of %d syllables per quarter",
		lead, def.Name, def.Family, def.Length())
	if def.Family == ArdhaSamaVritta {
		fmt.Fprintf(&b, " (%d in even quarters)", len(def.EvenPattern))
	}
	fmt.Fprintf(&b, ", with %.0f%% of positions in agreement", c.Score*100)
	if c.HintBoosted {
		b.WriteString(", consistent with the caller's hint")
	}
	b.WriteString(".")

	if c.Folded {
		b.WriteString(" At least one part of the verse carries several pādas and was scored pāda by pāda.")
	}
	if c.Partial {
		b.WriteString(" At least one quarter is shorter than the canonical length and was scored against the opening positions only.")
	}

	listed := 0
	var extra int
	for _, d := range c.Divergences {
		if listed >= maxListedDivergences {
			extra++
			continue
		}
		listed++
		if d.Tolerated {
			fmt.Fprintf(&b, " The %s syllable of the %s quarter scans %s where the canon has %s, a position this meter leaves free.",
				humanize.Ordinal(d.Position), humanize.Ordinal(d.Quarter), d.Observed, d.Expected)
		} else {
			fmt.Fprintf(&b, " The %s syllable of the %s quarter scans %s where %s expects %s.",
				humanize.Ordinal(d.Position), humanize.Ordinal(d.Quarter), d.Observed, def.Name, d.Expected)
		}
	}
	if extra > 0 {
		fmt.Fprintf(&b, " %d further positions diverge.", extra)
	}
	if len(c.Divergences) == 0 {
		b.WriteString(" Every position agrees with the canonical pattern.")
	}
	return b.String()
}

func describeQuarters(quarters [][]model.Weight) string {
	counts := make([]string, len(quarters))
	for i, q := range quarters {
		counts[i] = fmt.Sprintf("%d", len(q))
	}
	noun := "quarters"
	if len(quarters) == 1 {
		noun = "quarter"
	}
	return fmt.Sprintf("%d %s of %s syllables", len(quarters), noun, strings.Join(counts, ", "))
}

func observedPatterns(quarters [][]model.Weight) string {
	parts := make([]string, len(quarters))
	for i, q := range quarters {
		sb := make([]byte, len(q))
		for j, w := range q {
			sb[j] = w.Symbol()
		}
		parts[i] = string(sb)
	}
	return strings.Join(parts, " ")
}
