package eval

import (
	"errors"
	"fmt"
)

var (
	// ErrReference is matched by *ReferenceError.
	ErrReference = errors.New("eval: reference error")
	// ErrType is matched by *TypeError.
	ErrType = errors.New("eval: type error")
)

// ReferenceError reports a read of a name missing from the scope.
type ReferenceError struct {
	Name   string
	Offset int
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("ReferenceError: %s is not defined", e.Name)
}

func (e *ReferenceError) Unwrap() error { return ErrReference }

// TypeError reports an operation applied to a value of the wrong kind.
// Err holds the underlying cause when the check was made by another package.
type TypeError struct {
	Msg    string
	Offset int
	Err    error
}

func (e *TypeError) Error() string {
	return "TypeError: " + e.Msg
}

func (e *TypeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrType}
	}
	return []error{ErrType, e.Err}
}

func typeErrorf(offset int, format string, args ...any) *TypeError {
	return &TypeError{Msg: fmt.Sprintf(format, args...), Offset: offset}
}

// ErrDepth is returned when evaluation nests deeper than maxDepth, typically
// through unbounded recursion such as (f => f(f))(f => f(f)).
var ErrDepth = errors.New("eval: maximum call stack size exceeded")

// ErrPanic wraps panics raised by Go functions called from a template.
var ErrPanic = errors.New("eval: panic in called function")
