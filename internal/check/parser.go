package check

import (
	"fmt"
	"strings"

	"github.com/technicalpickles/envsense/internal/registry"
)

// Parse turns a predicate string into a ParsedCheck, validating field
// paths against the registry. Parse is strict; ParseWithOptions with
// Lenient set defers unknown-field handling to evaluation.
//
// Grammar, after trimming and stripping a leading '!':
//
//	facet:KEY=VALUE   legacy facet comparison
//	trait:KEY         legacy trait test
//	a.b[.c][=VALUE]   nested field, first part must be a known context
//	NAME              bare context test
func Parse(input string) (ParsedCheck, error) {
	return ParseWithOptions(input, Options{})
}

// ParseWithOptions parses one predicate under the given evaluation options.
func ParseWithOptions(input string, opts Options) (ParsedCheck, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ParsedCheck{}, newError(ErrEmptyInput, "empty predicate")
	}

	parsed := ParsedCheck{}
	if strings.HasPrefix(trimmed, "!") {
		parsed.Negated = true
		trimmed = trimmed[1:]
		if trimmed == "" {
			return ParsedCheck{}, newError(ErrInvalidSyntax, "nothing to negate in %q", input)
		}
	}

	if err := validateSyntax(trimmed); err != nil {
		return ParsedCheck{}, err
	}

	switch {
	case strings.HasPrefix(trimmed, "facet:"):
		body := strings.TrimPrefix(trimmed, "facet:")
		key, value, found := strings.Cut(body, "=")
		if !found || key == "" || value == "" {
			return ParsedCheck{}, newError(ErrMalformedComparison,
				"legacy facet predicate %q needs the form facet:key=value", trimmed)
		}
		parsed.Check = Check{Kind: KindLegacyFacet, LegacyKey: key, LegacyValue: value}
		return parsed, nil

	case strings.HasPrefix(trimmed, "trait:"):
		key := strings.TrimPrefix(trimmed, "trait:")
		if key == "" {
			return ParsedCheck{}, newError(ErrInvalidFieldPath, "legacy trait predicate has no key")
		}
		parsed.Check = Check{Kind: KindLegacyTrait, LegacyKey: key}
		return parsed, nil

	case strings.Contains(trimmed, "."):
		path, value, err := parseFieldPath(trimmed)
		if err != nil {
			return ParsedCheck{}, err
		}
		if !opts.Lenient {
			if _, known := registry.Resolve(path); !known {
				return ParsedCheck{}, newError(ErrInvalidFieldForContext,
					"unknown field %q for context %q (valid fields: %s)",
					strings.Join(path, "."), path[0], DescribeFields(path[0]))
			}
		}
		parsed.Check = Check{Kind: KindNestedField, Path: path, Value: value}
		return parsed, nil

	default:
		if strings.ContainsAny(trimmed, "=:") {
			return ParsedCheck{}, newError(ErrInvalidSyntax,
				"predicate %q is not a valid context name", trimmed)
		}
		parsed.Check = Check{Kind: KindContext, Context: trimmed}
		return parsed, nil
	}
}

func parseFieldPath(input string) ([]string, *string, error) {
	body := input
	var value *string
	if before, after, found := strings.Cut(input, "="); found {
		if before == "" || after == "" {
			return nil, nil, newError(ErrMalformedComparison, "malformed comparison in %q", input)
		}
		body = before
		value = &after
	}

	parts := strings.Split(body, ".")
	if len(parts) < 2 {
		return nil, nil, newError(ErrInvalidFieldPath, "field path %q needs at least two parts", body)
	}
	for _, p := range parts {
		if p == "" {
			return nil, nil, newError(ErrInvalidFieldPath, "field path %q has an empty segment", body)
		}
	}
	if !registry.IsContext(parts[0]) {
		return nil, nil, newError(ErrInvalidFieldPath,
			"unknown context %q in field path %q (known: %s)",
			parts[0], body, strings.Join(registry.Contexts(), ", "))
	}
	return parts, value, nil
}

// validateSyntax rejects characters outside [A-Za-z0-9_.=:-] in the
// structural part of the predicate. The colon only carries the facet:/trait:
// prefixes; the hyphen accommodates ids like vscode-insiders. The leading
// character must be alphabetic. Comparison values after '=' are literals
// (branch names carry slashes) and stay free-form.
func validateSyntax(input string) error {
	structural := input
	if before, _, found := strings.Cut(input, "="); found {
		structural = before + "="
	}
	for i, r := range structural {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9', r == '_', r == '.', r == '=', r == '-', r == ':':
			if i == 0 {
				return newError(ErrInvalidSyntax, "predicate %q must start with a letter", input)
			}
		default:
			return newError(ErrInvalidSyntax, "invalid character %q in predicate %q", r, input)
		}
	}
	return nil
}

// ParseWithWarnings parses like Parse and additionally returns a one-line
// deprecation notice for legacy predicate forms, pointing at the modern
// spelling. Callers print the notices to stderr.
func ParseWithWarnings(input string) (ParsedCheck, []string, error) {
	parsed, err := Parse(input)
	if err != nil {
		return ParsedCheck{}, nil, err
	}
	var warnings []string
	switch parsed.Check.Kind {
	case KindLegacyFacet, KindLegacyTrait:
		if modern, ok := migrateLegacy(parsed.Check); ok {
			replacement := ParsedCheck{Negated: parsed.Negated, Check: modern}
			warnings = append(warnings, fmt.Sprintf(
				"deprecated predicate %q; use %q instead", input, replacement.String()))
		} else {
			warnings = append(warnings, fmt.Sprintf(
				"deprecated predicate form %q has no modern equivalent", input))
		}
	}
	return parsed, warnings, nil
}
