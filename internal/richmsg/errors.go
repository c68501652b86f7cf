package richmsg

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSyntax          = errors.New("invalid syntax")
	ErrInvalidColourHexLength = errors.New("invalid colour hex length")
	ErrInvalidColourHexValue  = errors.New("invalid colour hex value")
	ErrUnknownColourName      = errors.New("unknown colour name")
)

// Error is returned by Parse, Resolve and Materialize. Kind is one of the
// sentinel errors above; Input is the offending text as the user wrote it.
type Error struct {
	Kind  error
	Input string
	Err   error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Input != "":
		return fmt.Sprintf("%v: %q, caused by: %v", e.Kind, e.Input, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%v: %q", e.Kind, e.Input)
	}
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func syntaxError(err error) error {
	return &Error{Kind: ErrInvalidSyntax, Err: err}
}
