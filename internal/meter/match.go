package meter

import (
	"sort"

	"github.com/vedicmetrics/ChandasDNA/internal/model"
)

// Options tunes the matcher. Zero value is not useful; start from
// DefaultOptions.
type Options struct {
	// IdentifyThreshold is the minimum aggregate score for a confident
	// identification.
	IdentifyThreshold float64
	// ProbableThreshold is the minimum aggregate score to report a probable
	// match; below it the verse is unidentified.
	ProbableThreshold float64
	// HintBoost is added to the score of the candidate named by the caller's
	// hint. Boosting only; a hint never disqualifies anything.
	HintBoost float64
	// FinalFree tolerates either weight at the canonical final position of a
	// quarter, the conventional "verse-final syllable is free" allowance.
	// Meters that constrain the final slot strictly can be expressed by
	// matching with FinalFree disabled.
	FinalFree bool
}

func DefaultOptions() Options {
	return Options{
		IdentifyThreshold: 0.9,
		ProbableThreshold: 0.6,
		HintBoost:         0.05,
		FinalFree:         true,
	}
}

// Verdict classifies the aggregate confidence of a match result.
type Verdict string

const (
	Identified   Verdict = "identified"
	Probable     Verdict = "probable"
	Unidentified Verdict = "unidentified"
)

// Divergence records one position where the observed weight differed from
// the canonical one, tolerated or not. Quarter and Position are 1-based.
type Divergence struct {
	Quarter   int
	Position  int
	Observed  model.Weight
	Expected  model.Weight
	Tolerated bool
}

// Candidate is one scored catalogue entry.
type Candidate struct {
	Definition    *Definition
	Score         float64
	QuarterScores []float64
	Divergences   []Divergence
	// Partial marks that at least one quarter was scored as a prefix match
	// (shorter than the canonical length) or skipped as a fragment.
	Partial bool
	// Folded marks that at least one observed quarter held several complete
	// pādas and was subdivided before scoring.
	Folded bool
	// HintBoosted marks that the caller's hint raised this score.
	HintBoosted bool
}

// Result is the ranked outcome of matching one verse against the catalogue.
type Result struct {
	Verdict    Verdict
	Candidates []Candidate // ranked: score descending, catalogue order on ties
}

// Best returns the top-ranked candidate, or nil when nothing qualified.
func (r *Result) Best() *Candidate {
	if len(r.Candidates) == 0 {
		return nil
	}
	return &r.Candidates[0]
}

// Nearest returns up to n runner-up candidates for diagnostic display.
func (r *Result) Nearest(n int) []Candidate {
	if len(r.Candidates) < n {
		n = len(r.Candidates)
	}
	return r.Candidates[:n]
}

// Match scores every catalogue entry against the observed per-quarter weight
// patterns and ranks the survivors. hint may name an expected meter (or be
// empty). The input is read-only; Match is safe for concurrent use.
func (c *Catalogue) Match(quarters [][]model.Weight, hint string, opts Options) Result {
	var candidates []Candidate
	for i := range c.defs {
		cand, ok := scoreDefinition(&c.defs[i], quarters, opts)
		if !ok {
			continue
		}
		if hint != "" && cand.Definition.matchesName(hint) {
			cand.Score += opts.HintBoost
			if cand.Score > 1 {
				cand.Score = 1
			}
			cand.HintBoosted = true
		}
		candidates = append(candidates, cand)
	}

	// defs are already in priority order, so a stable sort keeps the
	// earlier catalogue entry ahead on equal scores.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	res := Result{Verdict: Unidentified, Candidates: candidates}
	if best := res.Best(); best != nil {
		switch {
		case best.Score >= opts.IdentifyThreshold:
			res.Verdict = Identified
		case best.Score >= opts.ProbableThreshold:
			res.Verdict = Probable
		}
	}
	return res
}

// scoreDefinition compares the observed quarters against one definition.
// Per quarter: equal length compares every position; a quarter at least half
// the canonical length scores as a prefix match; anything shorter is skipped
// as a fragment. A longer quarter is folded into consecutive whole pādas
// when its length allows it (the common two-pādas-per-daṇḍa layout);
// otherwise it disqualifies the definition outright, as does a verse with
// no scorable quarter at all.
func scoreDefinition(def *Definition, quarters [][]model.Weight, opts Options) (Candidate, bool) {
	free := def.freeSet()
	cand := Candidate{Definition: def}

	var sum float64
	pada := 0
	for _, obs := range quarters {
		canon := def.QuarterPattern(pada)
		switch {
		case len(obs) == len(canon):
			sum += cand.scorePada(obs, canon, free, pada, true, opts)
			pada++
		case len(obs) > len(canon):
			lens, ok := def.PadaLengths(pada, len(obs))
			if !ok {
				return Candidate{}, false
			}
			start := 0
			for _, n := range lens {
				sum += cand.scorePada(obs[start:start+n], def.QuarterPattern(pada), free, pada, true, opts)
				start += n
				pada++
			}
			cand.Folded = true
		case 2*len(obs) >= len(canon):
			sum += cand.scorePada(obs, canon, free, pada, false, opts)
			cand.Partial = true
			pada++
		default:
			// fragment: too short to say anything, but it must not zero
			// out the rest of the verse
			cand.Partial = true
			pada++
		}
	}

	if len(cand.QuarterScores) == 0 {
		return Candidate{}, false
	}
	cand.Score = sum / float64(len(cand.QuarterScores))
	return cand, true
}

// scorePada scores one observed pāda against its canonical pattern,
// recording divergences under the 1-based pāda index. full marks a complete
// pāda, where the final position gets the FinalFree allowance.
func (cand *Candidate) scorePada(obs, canon []model.Weight, free map[int]bool, pada int, full bool, opts Options) float64 {
	compare := len(obs)
	matched := 0
	for p := 0; p < compare; p++ {
		pos := p + 1
		got, want := obs[p], canon[p]
		switch {
		case got == model.Unknown:
			matched++ // wildcard
		case got == want:
			matched++
		case free[pos] || (opts.FinalFree && full && pos == len(canon)):
			matched++
			cand.Divergences = append(cand.Divergences, Divergence{
				Quarter: pada + 1, Position: pos,
				Observed: got, Expected: want, Tolerated: true,
			})
		default:
			cand.Divergences = append(cand.Divergences, Divergence{
				Quarter: pada + 1, Position: pos,
				Observed: got, Expected: want,
			})
		}
	}
	score := float64(matched) / float64(compare)
	cand.QuarterScores = append(cand.QuarterScores, score)
	return score
}
