// Package mapping holds the declarative detection rules: indicators over
// environment variables, value extraction with conditions, transforms and
// validations, and the builtin agent/IDE/CI rule tables.
package mapping

// Env is the read view a mapping needs over the environment. Satisfied by
// *snapshot.Snapshot.
type Env interface {
	Get(key string) (string, bool)
}

// MatchMode selects how an indicator tests its environment variable.
type MatchMode string

const (
	// MatchPresent matches when the variable is set, regardless of value.
	MatchPresent MatchMode = "present"
	// MatchEquals matches when the variable equals Value exactly.
	MatchEquals MatchMode = "equals"
	// MatchPrefix matches when the variable starts with Value.
	MatchPrefix MatchMode = "prefix"
	// MatchRegex matches when the variable matches the Value pattern.
	MatchRegex MatchMode = "regex"
	// MatchPredicate matches when Predicate returns true for the value.
	// Builtin tables only; not expressible in YAML packs.
	MatchPredicate MatchMode = "predicate"
)

// EnvIndicator is one environment-variable test within a mapping.
type EnvIndicator struct {
	Key       string            `yaml:"key"`
	Mode      MatchMode         `yaml:"mode"`
	Value     string            `yaml:"value,omitempty"`
	Priority  int               `yaml:"priority,omitempty"`
	Required  bool              `yaml:"required,omitempty"`
	Predicate func(string) bool `yaml:"-"`
}

// Mapping is one declarative rule. When it matches it contributes contexts,
// facets, and extracted values to a detection.
type Mapping struct {
	ID            string            `yaml:"id"`
	Confidence    float64           `yaml:"confidence"`
	Indicators    []EnvIndicator    `yaml:"indicators"`
	Facets        map[string]string `yaml:"facets,omitempty"`
	ValueMappings []ValueMapping    `yaml:"values,omitempty"`
	ContextsAdd   []string          `yaml:"contexts,omitempty"`
}

// Matches reports whether the mapping applies to the environment: every
// required indicator must match, and at least one non-required indicator
// must match (or, when none are marked required, at least one indicator).
func (m *Mapping) Matches(env Env) bool {
	if len(m.Indicators) == 0 {
		return false
	}
	anyOptional := false
	hasOptional := false
	for _, ind := range m.Indicators {
		matched := ind.matches(env)
		if ind.Required {
			if !matched {
				return false
			}
			continue
		}
		hasOptional = true
		if matched {
			anyOptional = true
		}
	}
	if !hasOptional {
		// All indicators are required and all matched.
		return true
	}
	return anyOptional
}

func (ind *EnvIndicator) matches(env Env) bool {
	value, ok := env.Get(ind.Key)
	if !ok {
		return false
	}
	switch ind.Mode {
	case MatchPresent, "":
		return true
	case MatchEquals:
		return value == ind.Value
	case MatchPrefix:
		return len(value) >= len(ind.Value) && value[:len(ind.Value)] == ind.Value
	case MatchRegex:
		re, err := compiledPattern(ind.Value)
		return err == nil && re.MatchString(value)
	case MatchPredicate:
		return ind.Predicate != nil && ind.Predicate(value)
	default:
		return false
	}
}

// EffectivePriority returns the indicator's priority, defaulting to
// confidence*10 of the owning mapping when unset.
func (ind *EnvIndicator) EffectivePriority(m *Mapping) int {
	if ind.Priority != 0 {
		return ind.Priority
	}
	return int(m.Confidence * 10)
}

// HighestPriority returns the maximum priority over the indicators that
// matched. Zero when nothing matched.
func (m *Mapping) HighestPriority(env Env) int {
	best := 0
	for i := range m.Indicators {
		ind := &m.Indicators[i]
		if !ind.matches(env) {
			continue
		}
		if p := ind.EffectivePriority(m); p > best {
			best = p
		}
	}
	return best
}

// MatchedIndicators yields the key and current value of each indicator
// that contributed to the match. The caller attaches supports and
// confidence to turn these into evidence.
func (m *Mapping) MatchedIndicators(env Env) []MatchedIndicator {
	if !m.Matches(env) {
		return nil
	}
	var out []MatchedIndicator
	for i := range m.Indicators {
		ind := &m.Indicators[i]
		if !ind.matches(env) {
			continue
		}
		value, _ := env.Get(ind.Key)
		out = append(out, MatchedIndicator{Key: ind.Key, Value: value})
	}
	return out
}

// MatchedIndicator is one indicator observation from a matched mapping.
type MatchedIndicator struct {
	Key   string
	Value string
}
