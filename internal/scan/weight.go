package scan

import "github.com/vedicmetrics/ChandasDNA/internal/model"

// Classify assigns laghu/guru weight to every syllable of one quarter, in
// place, and flags the quarter-final syllable. Rules, in override order:
//
//   - no determinable nucleus            -> Unknown (wildcard downstream)
//   - long vowel nucleus                 -> guru
//   - any coda (dead consonant, anusvāra, visarga) -> guru
//   - followed by a conjunct onset (2+ consonant units) -> guru
//   - otherwise                          -> laghu
//
// The final syllable keeps its natural weight; the conventional "verse-final
// counts heavy" allowance is the matcher's call, driven by the Final flag.
func Classify(syllables []model.Syllable) []model.Syllable {
	for i := range syllables {
		s := &syllables[i]
		switch {
		case s.Nucleus == "":
			s.Weight = model.Unknown
		case s.LongNucleus:
			s.Weight = model.Guru
		case s.Coda != "":
			s.Weight = model.Guru
		case i+1 < len(syllables) && syllables[i+1].OnsetUnits >= 2:
			s.Weight = model.Guru
		default:
			s.Weight = model.Laghu
		}
	}
	if n := len(syllables); n > 0 {
		syllables[n-1].Final = true
	}
	return syllables
}

// Scan segments and classifies a normalized quarter in one call.
func Scan(quarter string) []model.Syllable {
	return Classify(Segment(quarter))
}
