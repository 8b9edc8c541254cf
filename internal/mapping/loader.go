package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Pack is a user-supplied mapping file. Pack mappings are appended after the
// builtin tables of the corresponding detector, so builtins win ties.
type Pack struct {
	Version string    `yaml:"version"`
	Agents  []Mapping `yaml:"agents,omitempty"`
	IDEs    []Mapping `yaml:"ides,omitempty"`
	CIs     []Mapping `yaml:"cis,omitempty"`
}

// LoadPack reads and validates a mapping pack. A missing file yields an
// empty pack, matching how optional policy files behave elsewhere.
func LoadPack(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Pack{}, nil
		}
		return nil, err
	}

	var pack Pack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parse mapping pack %s: %w", path, err)
	}
	if err := pack.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mapping pack %s: %w", path, err)
	}
	return &pack, nil
}

// Validate checks pack-wide mapping invariants.
func (p *Pack) Validate() error {
	for _, group := range []struct {
		name     string
		mappings []Mapping
	}{
		{"agents", p.Agents},
		{"ides", p.IDEs},
		{"cis", p.CIs},
	} {
		seen := map[string]bool{}
		for i := range group.mappings {
			m := &group.mappings[i]
			if err := m.Validate(); err != nil {
				return fmt.Errorf("%s[%d]: %w", group.name, i, err)
			}
			if seen[m.ID] {
				return fmt.Errorf("%s: duplicate mapping id %q", group.name, m.ID)
			}
			seen[m.ID] = true
		}
	}
	return nil
}

// Validate checks the single-mapping invariants: a non-empty id, confidence
// within [0,1], at least one indicator, predicate mode only with a predicate
// function set (YAML cannot supply one, so pack mappings cannot use it), and
// no duplicated value-mapping target keys.
func (m *Mapping) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("mapping id is required")
	}
	if m.Confidence < 0 || m.Confidence > 1 {
		return fmt.Errorf("mapping %q: confidence %v outside [0,1]", m.ID, m.Confidence)
	}
	if len(m.Indicators) == 0 {
		return fmt.Errorf("mapping %q: at least one indicator is required", m.ID)
	}
	for _, ind := range m.Indicators {
		if ind.Key == "" {
			return fmt.Errorf("mapping %q: indicator key is required", m.ID)
		}
		switch ind.Mode {
		case MatchPresent, MatchEquals, MatchPrefix, MatchRegex, "":
		case MatchPredicate:
			if ind.Predicate == nil {
				return fmt.Errorf("mapping %q: predicate indicator %q has no predicate", m.ID, ind.Key)
			}
		default:
			return fmt.Errorf("mapping %q: unknown indicator mode %q", m.ID, ind.Mode)
		}
	}
	targets := map[string]bool{}
	for _, vm := range m.ValueMappings {
		if vm.TargetKey == "" {
			return fmt.Errorf("mapping %q: value mapping target is required", m.ID)
		}
		if targets[vm.TargetKey] {
			return fmt.Errorf("mapping %q: duplicate value mapping target %q", m.ID, vm.TargetKey)
		}
		targets[vm.TargetKey] = true
		if len(vm.SourceKeys) == 0 {
			return fmt.Errorf("mapping %q: value mapping %q has no sources", m.ID, vm.TargetKey)
		}
	}
	return nil
}
