package diagram

import "errors"

// Kind is a stable category for programmatic error handling.
//
// These categories are intended to remain stable across versions.
// Callers should branch on Kind/ID rather than matching error strings.
//
// NOTE: Error() strings are intentionally kept human-readable and may evolve.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	KindInput    Kind = "Input"
	KindInternal Kind = "Internal"
)

// Error is the auditor's structured error type.
//
// Input errors are fatal for the audit call: a malformed envelope or a body
// with no diagram boundary markers is surfaced here, never converted into a
// zero-violation compliant result. Rule violations are not errors; they are
// accumulated in the report.
//
// ID is a stable identifier (e.g. LUCIM-INPUT-001). Message is intended for
// humans; do not match on it.
type Error struct {
	Kind    Kind
	ID      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, id, msg string) error {
	return &Error{Kind: kind, ID: id, Message: msg}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// ErrorID returns the stable ID for a structured error, or "" if unknown.
func ErrorID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.ID
}
