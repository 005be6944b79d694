// Package policy holds the per-unit dosage safety thresholds used by the
// dosage assessor. The built-in table matches the shipped safety policy and
// can be overridden per deployment with a YAML file.
package policy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultThreshold applies to any unit without an explicit entry,
// including the "unit"/"units" default.
const DefaultThreshold = 100

// Thresholds maps a lower-cased unit token to its safety ceiling.
// A magnitude at or below the ceiling is considered safe.
type Thresholds map[string]float64

// Default returns the built-in safety policy.
func Default() Thresholds {
	return Thresholds{
		"mg": 500,
		"g":  5,
		"ml": 50,
	}
}

// ForUnit returns the ceiling for a unit, case-insensitively.
func (t Thresholds) ForUnit(unit string) float64 {
	if v, ok := t[strings.ToLower(unit)]; ok {
		return v
	}
	return DefaultThreshold
}

// policyFile is the on-disk YAML shape:
//
//	thresholds:
//	  mg: 500
//	  ml: 50
type policyFile struct {
	Thresholds map[string]float64 `yaml:"thresholds"`
}

// LoadFile merges threshold overrides from a YAML file into the defaults.
// An empty path returns the defaults unchanged.
func LoadFile(path string) (Thresholds, error) {
	thresholds := Default()
	if path == "" {
		return thresholds, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read safety policy file: %w", err)
	}

	var pf policyFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse safety policy file %s: %w", path, err)
	}

	for unit, ceiling := range pf.Thresholds {
		if ceiling <= 0 {
			return nil, fmt.Errorf("invalid threshold for unit %q: %v", unit, ceiling)
		}
		thresholds[strings.ToLower(unit)] = ceiling
	}

	return thresholds, nil
}
