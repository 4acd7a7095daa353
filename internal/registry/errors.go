package registry

import (
	"errors"
	"fmt"
)

// ErrMissingArg is returned by the Args accessors when a key is absent.
var ErrMissingArg = errors.New("missing argument")

// ArgTypeError reports an argument whose value has an unexpected type.
type ArgTypeError struct {
	Key  string
	Want string
	Got  any
}

func (e *ArgTypeError) Error() string {
	return fmt.Sprintf("argument %q: want %s, got %T", e.Key, e.Want, e.Got)
}

// ArgsMismatchError signals that a callback cannot accept the supplied
// arguments (unknown keys, missing keys or values of the wrong type).
type ArgsMismatchError struct {
	Target string
	Err    error
}

func (e *ArgsMismatchError) Error() string {
	return "arguments do not match " + e.Target + ": " + e.Err.Error()
}

func (e *ArgsMismatchError) Unwrap() error { return e.Err }

// IsArgsMismatch reports whether err indicates a callback/argument mismatch.
func IsArgsMismatch(err error) bool {
	var am *ArgsMismatchError
	if errors.As(err, &am) {
		return true
	}
	var te *ArgTypeError
	return errors.As(err, &te) || errors.Is(err, ErrMissingArg)
}
