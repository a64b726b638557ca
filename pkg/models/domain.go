package models

// SyllableInfo is one syllable of the per-syllable breakdown.
type SyllableInfo struct {
	Syllable string `json:"syllable"`
	Weight   string `json:"weight"` // "laghu", "guru" or "unknown"
	Quarter  int    `json:"quarter"`
	Position int    `json:"position"` // 1-based within the quarter
}

// NearestCandidate is a runner-up meter attached for diagnostic display when
// no confident match exists.
type NearestCandidate struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Identification is the unified result shape shared by the algorithmic
// engine and the model-backed identifier, so callers can compare and prefer
// either one.
type Identification struct {
	// ChandasName is the matched meter, empty when unidentified.
	ChandasName string `json:"chandas_name"`
	// Detected is false for unidentified results.
	Detected bool `json:"detected"`
	// Verdict is "identified", "probable" or "unidentified".
	Verdict string `json:"verdict"`

	SyllableBreakdown []SyllableInfo `json:"syllable_breakdown"`
	// LaghuGuruPattern holds quarter patterns in the L/G alphabet
	// (? for unknown), space separated.
	LaghuGuruPattern string `json:"laghu_guru_pattern"`
	// GanaPattern is the trisyllabic foot encoding per quarter, separated
	// by " / ".
	GanaPattern string `json:"gana_pattern"`
	// SyllableCount lists syllables per quarter.
	SyllableCount []int `json:"syllable_count"`

	Explanation string  `json:"explanation"`
	Confidence  float64 `json:"confidence"`

	Nearest []NearestCandidate `json:"nearest_candidates,omitempty"`

	// Source records which identifier produced this result:
	// "algorithmic" or "model".
	Source string `json:"source"`
}

// MeterSummary describes one catalogue entry in API responses.
type MeterSummary struct {
	Name                string   `json:"name"`
	Aliases             []string `json:"aliases,omitempty"`
	Family              string   `json:"family"`
	SyllablesPerQuarter int      `json:"syllables_per_quarter"`
	Pattern             string   `json:"pattern"`
	EvenPattern         string   `json:"even_pattern,omitempty"`
	FreePositions       []int    `json:"free_positions,omitempty"`
	GanaPattern         string   `json:"gana_pattern"`
}

// MeterDefinition is the public shape for registering a meter. Patterns use
// the L/G alphabet; FreePositions are 1-based.
type MeterDefinition struct {
	Name          string           `json:"name"`
	Aliases       []string         `json:"aliases,omitempty"`
	Family        string           `json:"family"`
	Pattern       string           `json:"pattern"`
	EvenPattern   string           `json:"even_pattern,omitempty"`
	FreePositions []int            `json:"free_positions,omitempty"`
	Context       *CulturalContext `json:"context,omitempty"`
}

// CulturalContext is the symbolic background of a meter.
type CulturalContext struct {
	Name         string `json:"name"`
	Structure    string `json:"structure"`
	Symbolism    string `json:"symbolism"`
	Deity        string `json:"deity"`
	Meaning      string `json:"meaning"`
	Significance string `json:"significance"`
}
