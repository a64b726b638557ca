// Package meter holds the catalogue of classical Sanskrit meters and the
// matcher that scores observed weight patterns against it. The catalogue is
// built once, validated, and never mutated afterwards; concurrent matching
// reads it without synchronization.
package meter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vedicmetrics/ChandasDNA/internal/model"
)

// ErrEmptyCatalogue is the one true configuration error of the pipeline: a
// matcher cannot run against nothing.
var ErrEmptyCatalogue = errors.New("meter catalogue is empty")

// Family tags how a meter's quarters relate to each other.
type Family string

const (
	// SamaVritta meters repeat one pattern in every quarter.
	SamaVritta Family = "sama-vritta"
	// ArdhaSamaVritta meters pair one pattern for odd quarters with another
	// for even quarters.
	ArdhaSamaVritta Family = "ardha-sama-vritta"
)

// CulturalInfo is the symbolic and devotional context attached to a meter.
type CulturalInfo struct {
	Structure    string `yaml:"structure"`
	Symbolism    string `yaml:"symbolism"`
	Deity        string `yaml:"deity"`
	Meaning      string `yaml:"meaning"`
	Significance string `yaml:"significance"`
}

// Definition is one catalogue entry. Pattern strings use the L/G alphabet.
type Definition struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases,omitempty"`
	Family  Family   `yaml:"family"`

	// Pattern is the canonical quarter pattern; for ardha-sama-vritta meters
	// it is the odd-quarter pattern and EvenPattern the even-quarter one.
	Pattern     string `yaml:"pattern"`
	EvenPattern string `yaml:"even_pattern,omitempty"`

	// FreePositions lists 1-based slots where the meter tolerates either
	// weight (laghu-guru free positions).
	FreePositions []int `yaml:"free_positions,omitempty"`

	// Priority is the fixed catalogue order used to break score ties;
	// lower wins.
	Priority int `yaml:"priority"`

	Info *CulturalInfo `yaml:"info,omitempty"`
}

// Length returns the canonical syllable count per quarter (odd quarter for
// ardha-sama-vritta meters).
func (d *Definition) Length() int { return len(d.Pattern) }

// QuarterPattern returns the canonical weights for the quarter at the given
// zero-based index, honoring the odd/even pairing of ardha-sama meters.
func (d *Definition) QuarterPattern(idx int) []model.Weight {
	p := d.Pattern
	if d.Family == ArdhaSamaVritta && idx%2 == 1 && d.EvenPattern != "" {
		p = d.EvenPattern
	}
	weights := make([]model.Weight, len(p))
	for i := 0; i < len(p); i++ {
		weights[i] = model.ParseWeight(p[i])
	}
	return weights
}

func (d *Definition) quarterLen(idx int) int {
	if d.Family == ArdhaSamaVritta && idx%2 == 1 && d.EvenPattern != "" {
		return len(d.EvenPattern)
	}
	return len(d.Pattern)
}

// PadaLengths subdivides a run of n observed syllables, starting at the
// zero-based pāda index start, into consecutive whole canonical pādas.
// ok is false when n does not land exactly on a pāda boundary. Verses are
// routinely written two pādas per daṇḍa; this folds such halves back to
// pāda granularity.
func (d *Definition) PadaLengths(start, n int) ([]int, bool) {
	var lens []int
	for idx := start; n > 0; idx++ {
		l := d.quarterLen(idx)
		if l > n {
			return nil, false
		}
		lens = append(lens, l)
		n -= l
	}
	return lens, true
}

func (d *Definition) freeSet() map[int]bool {
	if len(d.FreePositions) == 0 {
		return nil
	}
	set := make(map[int]bool, len(d.FreePositions))
	for _, p := range d.FreePositions {
		set[p] = true
	}
	return set
}

// matchesName reports whether the given name refers to this definition,
// case-insensitively, via the primary name or any alias.
func (d *Definition) matchesName(name string) bool {
	if strings.EqualFold(d.Name, name) {
		return true
	}
	for _, a := range d.Aliases {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}

func validPattern(p string) bool {
	if p == "" {
		return false
	}
	for i := 0; i < len(p); i++ {
		if c := p[i]; c != 'L' && c != 'G' {
			return false
		}
	}
	return true
}

// Validate checks a definition for internal consistency.
func (d *Definition) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("meter name is required")
	}
	if !validPattern(d.Pattern) {
		return fmt.Errorf("meter %q: pattern must be a non-empty L/G string, got %q", d.Name, d.Pattern)
	}
	switch d.Family {
	case SamaVritta:
		if d.EvenPattern != "" {
			return fmt.Errorf("meter %q: sama-vritta meters have a single pattern", d.Name)
		}
	case ArdhaSamaVritta:
		if !validPattern(d.EvenPattern) {
			return fmt.Errorf("meter %q: ardha-sama-vritta meters need an even-quarter pattern", d.Name)
		}
	default:
		return fmt.Errorf("meter %q: unknown family %q", d.Name, d.Family)
	}
	max := len(d.Pattern)
	if len(d.EvenPattern) > max {
		max = len(d.EvenPattern)
	}
	for _, p := range d.FreePositions {
		if p < 1 || p > max {
			return fmt.Errorf("meter %q: free position %d out of range 1..%d", d.Name, p, max)
		}
	}
	return nil
}

// Catalogue is the read-only set of meter definitions the matcher runs
// against. Build it once with NewCatalogue and share it freely.
type Catalogue struct {
	defs []Definition
}

// NewCatalogue validates the definitions and freezes them in the given
// order; that order is the deterministic tie-break for matching.
func NewCatalogue(defs []Definition) (*Catalogue, error) {
	if len(defs) == 0 {
		return nil, ErrEmptyCatalogue
	}
	frozen := make([]Definition, len(defs))
	copy(frozen, defs)
	for i := range frozen {
		if err := frozen[i].Validate(); err != nil {
			return nil, err
		}
		frozen[i].Priority = i
	}
	return &Catalogue{defs: frozen}, nil
}

// Definitions returns a copy of the catalogue entries in priority order.
func (c *Catalogue) Definitions() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Len reports the number of catalogue entries.
func (c *Catalogue) Len() int { return len(c.defs) }

// Lookup finds a definition by name or alias, case-insensitively.
func (c *Catalogue) Lookup(name string) (*Definition, bool) {
	for i := range c.defs {
		if c.defs[i].matchesName(name) {
			return &c.defs[i], true
		}
	}
	return nil, false
}
