package registry

import (
	"context"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// typedCallback decodes Args into T before calling fn.
type typedCallback[T any] struct {
	fn func(ctx context.Context, payload T) error
}

// Typed adapts fn to a Callback whose arguments are decoded into T. Fields
// are matched by their `arg` tag (or case-insensitive field name). Decoding is
// strict both ways: an argument with no matching field and a field with no
// matching argument both fail with *ArgsMismatchError, and fn is not called.
//
// Like Func, every call returns a new identity.
func Typed[T any](fn func(ctx context.Context, payload T) error) Callback {
	if fn == nil {
		return nil
	}
	return &typedCallback[T]{fn: fn}
}

func (t *typedCallback[T]) Call(ctx context.Context, args Args) error {
	var payload T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &payload,
		TagName:     "arg",
		ErrorUnused: true,
		ErrorUnset:  true,
	})
	if err != nil {
		return &ArgsMismatchError{Target: t.Name(), Err: err}
	}
	if err := dec.Decode(map[string]any(args)); err != nil {
		return &ArgsMismatchError{Target: t.Name(), Err: err}
	}
	return t.fn(ctx, payload)
}

// Name reports the payload type, used in listings.
func (t *typedCallback[T]) Name() string {
	return "typed(" + reflect.TypeFor[T]().String() + ")"
}
