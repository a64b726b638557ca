package meter

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// BuiltinDefinitions parses the embedded catalogue of classical meters. The
// slice order is the matching priority.
func BuiltinDefinitions() ([]Definition, error) {
	var defs []Definition
	if err := yaml.Unmarshal(seedYAML, &defs); err != nil {
		return nil, fmt.Errorf("parsing builtin meter seed: %w", err)
	}
	return defs, nil
}

// BuiltinCatalogue builds a validated catalogue from the embedded seed.
// Useful where no storage backend is available (wasm, tests).
func BuiltinCatalogue() (*Catalogue, error) {
	defs, err := BuiltinDefinitions()
	if err != nil {
		return nil, err
	}
	return NewCatalogue(defs)
}
