package prompt

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned by waiters when nothing arrived in time. AwaitStep
// turns it into a TimedOut result.
var ErrTimeout = errors.New("prompt timed out")

// TransportError is a failure of the underlying send or receive capability.
// It ends the composition session.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// ImpossibleError reports a broken internal invariant, such as the reaction
// waiter returning an emoji it was never asked to collect.
type ImpossibleError struct {
	Err error
}

func (e *ImpossibleError) Error() string { return "impossible error: " + e.Err.Error() }
func (e *ImpossibleError) Unwrap() error { return e.Err }

func transport(op string, err error) error {
	var te *TransportError
	if errors.As(err, &te) {
		return err
	}
	return &TransportError{Op: op, Err: err}
}
