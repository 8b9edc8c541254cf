package detect

import (
	"github.com/technicalpickles/envsense/internal/mapping"
	"github.com/technicalpickles/envsense/internal/schema"
)

// Strategy selects among multiple matched mappings.
type Strategy int

const (
	// StrategyConfidence keeps the matched mapping with the highest
	// confidence; declaration order breaks ties.
	StrategyConfidence Strategy = iota
	// StrategyPriority keeps the matched mapping whose matched indicators
	// carry the highest priority; declaration order breaks ties.
	StrategyPriority
)

// FindBestMappingByConfidence scans the table and retains the matching
// mapping with maximum confidence. The first encountered wins ties.
func FindBestMappingByConfidence(mappings []mapping.Mapping, env mapping.Env) *mapping.Mapping {
	var best *mapping.Mapping
	for i := range mappings {
		m := &mappings[i]
		if !m.Matches(env) {
			continue
		}
		if best == nil || m.Confidence > best.Confidence {
			best = m
		}
	}
	return best
}

// FindBestMappingByPriority scans the table and retains the matching mapping
// with the highest matched-indicator priority. The first encountered wins
// ties.
func FindBestMappingByPriority(mappings []mapping.Mapping, env mapping.Env) *mapping.Mapping {
	var best *mapping.Mapping
	bestPriority := -1
	for i := range mappings {
		m := &mappings[i]
		if !m.Matches(env) {
			continue
		}
		if p := m.HighestPriority(env); p > bestPriority {
			best = m
			bestPriority = p
		}
	}
	return best
}

// GenerateEvidenceFromMapping yields one evidence record per matched
// indicator, at the mapping's confidence.
func GenerateEvidenceFromMapping(m *mapping.Mapping, env mapping.Env, supports []string) []schema.Evidence {
	var out []schema.Evidence
	for _, ind := range m.MatchedIndicators(env) {
		out = append(out, schema.EnvEvidence(ind.Key, ind.Value, supports, m.Confidence))
	}
	return out
}

// declarativeOptions parameterize a declarative detection pass.
type declarativeOptions struct {
	context      string
	emitEvidence bool
	supports     []string
}

// declarativeOutcome is the uniform result of a declarative pass.
type declarativeOutcome struct {
	id         string
	confidence float64
	evidence   []schema.Evidence
	values     map[string]any
	facets     map[string]string
	contexts   []string
}

// runDeclarative selects the best mapping for the environment under the
// given strategy and assembles id, confidence, evidence and extracted
// values. A mapping whose value mappings produce an "id" field overrides
// its declared id with the extracted one.
func runDeclarative(mappings []mapping.Mapping, env mapping.Env, opts declarativeOptions, strategy Strategy) (*declarativeOutcome, bool) {
	var best *mapping.Mapping
	switch strategy {
	case StrategyPriority:
		best = FindBestMappingByPriority(mappings, env)
	default:
		best = FindBestMappingByConfidence(mappings, env)
	}
	if best == nil {
		return nil, false
	}

	outcome := &declarativeOutcome{
		id:         best.ID,
		confidence: best.Confidence,
		values:     best.ExtractValues(env),
		facets:     best.Facets,
		contexts:   best.ContextsAdd,
	}
	if extracted, ok := outcome.values["id"].(string); ok && extracted != "" {
		outcome.id = extracted
		delete(outcome.values, "id")
	}
	if opts.context != "" && len(outcome.contexts) == 0 {
		outcome.contexts = []string{opts.context}
	}
	if opts.emitEvidence {
		outcome.evidence = GenerateEvidenceFromMapping(best, env, opts.supports)
	}
	return outcome, true
}
