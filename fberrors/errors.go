// Package fberrors is the core's error taxonomy: a small, closed set of
// failure kinds surfaced by the prepare-info decoder and the BLR
// encoder, each carrying a captured stack trace.
//
// The taxonomy and the Kind/Context shape are modeled on
// mstgnz-sdc's err.DatabaseError (ErrorType + Severity + Context map),
// re-expressed over github.com/cockroachdb/errors so that stack capture
// and Is/As matching come from a maintained library instead of a
// hand-rolled runtime.Callers walk.
package fberrors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind is the closed set of failure kinds this core can report.
type Kind string

const (
	// KindInvalidResponse means the server's bytes violated the
	// prepare-info framing contract (bad prefix, unknown item code,
	// buffer shortage).
	KindInvalidResponse Kind = "InvalidResponse"
	// KindUnsupportedType means an SQL-type code fell outside the
	// four-category type lattice.
	KindUnsupportedType Kind = "UnsupportedType"
	// KindUnsupportedConversion means ToCategory was called on a
	// descriptor whose encoded sqltype does not correspond to any
	// lattice category.
	KindUnsupportedConversion Kind = "UnsupportedConversion"
)

// CoreError is the concrete error type every exported failure from
// xsqlda, prepareinfo and blr is wrapped in.
type CoreError struct {
	Kind    Kind
	Message string
	Context map[string]interface{}
	cause   error
}

// Error implements the error interface.
func (e *CoreError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("[%s] %s %v", e.Kind, e.Message, e.Context)
}

// Unwrap lets errors.Is/errors.As see through to the wrapped cause, if any.
func (e *CoreError) Unwrap() error {
	return e.cause
}

// WithContext attaches a diagnostic key/value pair and returns the same
// error for chaining.
func (e *CoreError) WithContext(key string, value interface{}) *CoreError {
	if e.Context == nil {
		e.Context = make(map[string]interface{}, 2)
	}
	e.Context[key] = value
	return e
}

func newCoreError(kind Kind, msg string) *CoreError {
	return &CoreError{
		Kind:    kind,
		Message: msg,
		// errors.WithStack attaches a captured stack trace to the
		// returned cause without changing its Error() text.
		cause: errors.WithStack(fmt.Errorf("%s", msg)),
	}
}

// InvalidResponse builds a KindInvalidResponse error for the given reason.
func InvalidResponse(reasonFormat string, args ...interface{}) *CoreError {
	return newCoreError(KindInvalidResponse, fmt.Sprintf(reasonFormat, args...))
}

// UnsupportedType builds a KindUnsupportedType error for an SQL-type code
// outside the lattice.
func UnsupportedType(code int16) *CoreError {
	return newCoreError(KindUnsupportedType, fmt.Sprintf("unsupported SQL type code %d", code)).
		WithContext("code", code)
}

// UnsupportedConversion builds a KindUnsupportedConversion error for a
// descriptor whose sqltype does not decode to a lattice category.
func UnsupportedConversion(from int16) *CoreError {
	return newCoreError(KindUnsupportedConversion, fmt.Sprintf("cannot convert sqltype %d to a category", from)).
		WithContext("from", from)
}

// Is reports whether err is a CoreError of the given kind. It lets
// callers write `fberrors.Is(err, fberrors.KindInvalidResponse)` instead
// of a type assertion.
func Is(err error, kind Kind) bool {
	var ce *CoreError
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}
