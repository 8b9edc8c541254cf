package check

import "fmt"

// ErrorKind is the closed catalog of predicate errors. Only the predicate
// subsystem surfaces errors; detection itself never fails.
type ErrorKind string

const (
	ErrEmptyInput             ErrorKind = "empty_input"
	ErrInvalid                ErrorKind = "invalid"
	ErrInvalidFieldPath       ErrorKind = "invalid_field_path"
	ErrMalformedComparison    ErrorKind = "malformed_comparison"
	ErrInvalidSyntax          ErrorKind = "invalid_syntax"
	ErrFieldNotFound          ErrorKind = "field_not_found"
	ErrInvalidFieldForContext ErrorKind = "invalid_field_for_context"
)

// Error is a predicate parse or evaluation error with a machine-readable
// kind. CLI hosts conventionally map any of these to exit code 2.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is makes errors.Is work against a bare kind-only error value.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Kind == e.Kind
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the error kind, or "" for foreign errors.
func KindOf(err error) ErrorKind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return ""
}
