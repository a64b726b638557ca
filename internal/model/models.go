package model

// Weight is the prosodic weight class of a syllable. Unknown is a real
// value, not a sentinel: the matcher must treat it as a wildcard at every
// comparison site.
type Weight int

const (
	Laghu Weight = iota // light
	Guru                // heavy
	Unknown             // nucleus could not be determined
)

func (w Weight) String() string {
	switch w {
	case Laghu:
		return "laghu"
	case Guru:
		return "guru"
	default:
		return "unknown"
	}
}

// Symbol returns the single-letter pattern alphabet used in laghu-guru
// pattern strings: L, G, or ? for unknown.
func (w Weight) Symbol() byte {
	switch w {
	case Laghu:
		return 'L'
	case Guru:
		return 'G'
	default:
		return '?'
	}
}

// ParseWeight maps a pattern letter back to a Weight. Anything other than
// L or G (case-insensitive) is Unknown.
func ParseWeight(c byte) Weight {
	switch c {
	case 'L', 'l':
		return Laghu
	case 'G', 'g':
		return Guru
	default:
		return Unknown
	}
}

// Syllable is one scanned syllable of a pāda. Surface concatenation of all
// syllables in a quarter reproduces the normalized quarter text modulo
// whitespace.
type Syllable struct {
	Surface string // exact source text of the syllable, whitespace dropped
	Onset   string // leading consonant cluster, may be empty
	Nucleus string // vowel nucleus, empty when undetermined
	Coda    string // trailing consonant / anusvāra / visarga, may be empty

	// OnsetUnits counts consonant units in the onset. Aspirate digraphs in
	// romanized text (kh, bh, ...) count as one unit.
	OnsetUnits int

	// Start and End are rune offsets into the quarter the syllable was cut
	// from, for traceability.
	Start, End int

	LongNucleus bool // nucleus is phonemically long
	Weight      Weight
	Final       bool // last syllable of its quarter; conventionally free
}

// Pattern renders the weight sequence of a scanned quarter as an L/G/?
// string.
func Pattern(syllables []Syllable) string {
	out := make([]byte, len(syllables))
	for i, s := range syllables {
		out[i] = s.Weight.Symbol()
	}
	return string(out)
}

// Weights extracts just the weight sequence.
func Weights(syllables []Syllable) []Weight {
	out := make([]Weight, len(syllables))
	for i, s := range syllables {
		out[i] = s.Weight
	}
	return out
}
