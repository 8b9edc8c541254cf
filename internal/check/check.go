// Package check parses and evaluates predicate expressions over a detection
// result: bare contexts ("agent"), dot-notation fields with optional
// comparison ("terminal.stdin.tty", "agent.id=cursor"), and the deprecated
// facet:/trait: legacy forms.
package check

import "strings"

// CheckKind discriminates the parsed check variants.
type CheckKind string

const (
	KindContext     CheckKind = "context"
	KindNestedField CheckKind = "nested_field"
	KindLegacyFacet CheckKind = "legacy_facet"
	KindLegacyTrait CheckKind = "legacy_trait"
)

// Check is one parsed predicate body.
type Check struct {
	Kind CheckKind

	// Context name for KindContext.
	Context string

	// Path and optional comparison value for KindNestedField.
	Path  []string
	Value *string

	// Key (and value for facets) of the legacy forms.
	LegacyKey   string
	LegacyValue string
}

// ParsedCheck is a check plus its negation flag.
type ParsedCheck struct {
	Negated bool
	Check   Check
}

// String renders the canonical form of the predicate. Parsing a canonical
// (non-legacy) predicate and re-stringifying yields the input.
func (p ParsedCheck) String() string {
	var b strings.Builder
	if p.Negated {
		b.WriteByte('!')
	}
	switch p.Check.Kind {
	case KindContext:
		b.WriteString(p.Check.Context)
	case KindNestedField:
		b.WriteString(strings.Join(p.Check.Path, "."))
		if p.Check.Value != nil {
			b.WriteByte('=')
			b.WriteString(*p.Check.Value)
		}
	case KindLegacyFacet:
		b.WriteString("facet:")
		b.WriteString(p.Check.LegacyKey)
		b.WriteByte('=')
		b.WriteString(p.Check.LegacyValue)
	case KindLegacyTrait:
		b.WriteString("trait:")
		b.WriteString(p.Check.LegacyKey)
	}
	return b.String()
}
