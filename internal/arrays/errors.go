package arrays

import (
	"errors"
	"fmt"

	"jlower/internal/source"
)

// Invariant violations. Earlier passes guarantee none of these happen; seeing
// one aborts the translation.
var (
	ErrNotArray         = errors.New("construction type is not an array")
	ErrUnknownKind      = errors.New("element type has no array kind")
	ErrTooFewDimensions = errors.New("dimension count does not match construction")
	ErrVarargsShape     = errors.New("malformed variable-arity call")
)

// InvariantError attaches the failing operation and position to one of the
// sentinel errors above.
type InvariantError struct {
	Op   string // "initializer", "varargs", ...
	Span source.Span
	Err  error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("arrays: %s at %s: %v", e.Op, e.Span, e.Err)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

func invariant(op string, span source.Span, err error) error {
	var ie *InvariantError
	if errors.As(err, &ie) {
		return err
	}
	return &InvariantError{Op: op, Span: span, Err: err}
}
