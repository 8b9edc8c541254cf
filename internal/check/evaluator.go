package check

import (
	"strconv"
	"strings"

	"github.com/technicalpickles/envsense/internal/registry"
	"github.com/technicalpickles/envsense/internal/schema"
)

// ResultKind discriminates evaluation outcomes.
type ResultKind string

const (
	ResultBoolean    ResultKind = "boolean"
	ResultString     ResultKind = "string"
	ResultComparison ResultKind = "comparison"
)

// Comparison is the detail of a value comparison.
type Comparison struct {
	Actual   string
	Expected string
	Matched  bool
}

// CheckResult is a typed evaluation outcome: a boolean test, a bare field
// read rendered as a string, or a comparison with its detail.
type CheckResult struct {
	Kind       ResultKind
	Bool       bool
	Str        string
	Comparison *Comparison
	// Reason explains a forced boolean outcome: an unknown field in strict
	// mode, or a bare read of a whole stream object (in either mode).
	Reason string
}

// Matched reports the overall truthiness used for exit codes: booleans as
// themselves, comparisons by their match bit, bare string reads by
// non-emptiness.
func (r CheckResult) Matched() bool {
	switch r.Kind {
	case ResultBoolean:
		return r.Bool
	case ResultComparison:
		return r.Comparison != nil && r.Comparison.Matched
	case ResultString:
		return r.Str != ""
	}
	return false
}

func booleanResult(b bool) CheckResult  { return CheckResult{Kind: ResultBoolean, Bool: b} }
func stringResult(s string) CheckResult { return CheckResult{Kind: ResultString, Str: s} }

// Options tune evaluation. Strict is the default mode; Lenient ignores
// unknown field paths silently instead of surfacing a reason.
type Options struct {
	Lenient bool
}

// Evaluate resolves a parsed check against a result document. Legacy forms
// are first migrated to their nested-field equivalent and re-dispatched.
func Evaluate(parsed ParsedCheck, result *schema.Result, opts Options) (CheckResult, error) {
	c := parsed.Check
	switch c.Kind {
	case KindLegacyFacet, KindLegacyTrait:
		modern, ok := migrateLegacy(c)
		if !ok {
			if opts.Lenient {
				return booleanResult(false), nil
			}
			return CheckResult{}, newError(ErrFieldNotFound, "unknown legacy key %q", c.LegacyKey)
		}
		return Evaluate(ParsedCheck{Negated: parsed.Negated, Check: modern}, result, opts)

	case KindContext:
		return applyNegation(parsed.Negated, booleanResult(result.HasContext(c.Context)))

	case KindNestedField:
		return evaluateField(parsed.Negated, c, result, opts)
	}
	return CheckResult{}, newError(ErrInvalid, "unhandled check kind %q", c.Kind)
}

func evaluateField(negated bool, c Check, result *schema.Result, opts Options) (CheckResult, error) {
	info, known := registry.Resolve(c.Path)
	if !known {
		out := booleanResult(false)
		if !opts.Lenient {
			out.Reason = "unknown field"
		}
		return out, nil
	}

	actual := valueAt(result, info.Dotted())

	if c.Value == nil {
		switch info.Type {
		case registry.TypeBool:
			b, _ := actual.(bool)
			return applyNegation(negated, booleanResult(b))
		case registry.TypeString, registry.TypeOptionalString, registry.TypeColorLevel:
			s, _ := actual.(string)
			if negated {
				return CheckResult{}, newError(ErrInvalid,
					"cannot negate string-valued field %q", info.Dotted())
			}
			return stringResult(s), nil
		default:
			out := booleanResult(false)
			out.Reason = "field is not addressable without a subfield"
			return applyNegation(negated, out)
		}
	}

	expected := *c.Value
	cmp := Comparison{Expected: expected}
	switch info.Type {
	case registry.TypeBool:
		b, _ := actual.(bool)
		cmp.Actual = strconv.FormatBool(b)
		cmp.Matched = (expected == "true" || expected == "false") && cmp.Actual == expected
	case registry.TypeString, registry.TypeOptionalString, registry.TypeColorLevel:
		s, _ := actual.(string)
		cmp.Actual = s
		cmp.Matched = s == expected
	default:
		// Whole stream objects are not comparable.
		cmp.Matched = false
	}
	out := CheckResult{Kind: ResultComparison, Comparison: &cmp}
	return applyNegation(negated, out)
}

// applyNegation flips booleans and comparison match bits. String results
// never reach here; their negation is rejected earlier.
func applyNegation(negated bool, r CheckResult) (CheckResult, error) {
	if !negated {
		return r, nil
	}
	switch r.Kind {
	case ResultBoolean:
		r.Bool = !r.Bool
	case ResultComparison:
		flipped := *r.Comparison
		flipped.Matched = !flipped.Matched
		r.Comparison = &flipped
	}
	return r, nil
}

// valueAt navigates the result document by dotted path. Missing optional
// values read as their zero value.
func valueAt(r *schema.Result, dotted string) any {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	term := r.Traits.Terminal
	switch dotted {
	case "agent.id":
		return deref(r.Traits.Agent.ID)
	case "ide.id":
		return deref(r.Traits.IDE.ID)
	case "ci.id":
		return deref(r.Traits.CI.ID)
	case "ci.vendor":
		return deref(r.Traits.CI.Vendor)
	case "ci.name":
		return deref(r.Traits.CI.Name)
	case "ci.branch":
		return deref(r.Traits.CI.Branch)
	case "ci.is_pr":
		return r.Traits.CI.IsPR != nil && *r.Traits.CI.IsPR
	case "terminal.interactive":
		return term.Interactive
	case "terminal.color_level":
		return string(term.ColorLevel)
	case "terminal.supports_hyperlinks":
		return term.SupportsHyperlinks
	case "terminal.stdin":
		return term.Stdin
	case "terminal.stdout":
		return term.Stdout
	case "terminal.stderr":
		return term.Stderr
	case "terminal.stdin.tty":
		return term.Stdin.TTY
	case "terminal.stdin.piped":
		return term.Stdin.Piped
	case "terminal.stdout.tty":
		return term.Stdout.TTY
	case "terminal.stdout.piped":
		return term.Stdout.Piped
	case "terminal.stderr.tty":
		return term.Stderr.TTY
	case "terminal.stderr.piped":
		return term.Stderr.Piped
	}
	return nil
}

// DescribeFields renders the registry for one context, for error messages
// and --list-fields output.
func DescribeFields(context string) string {
	fields := registry.FieldsOf(context)
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Dotted()
	}
	return strings.Join(names, ", ")
}
