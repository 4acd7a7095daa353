package registry

import (
	"context"
	"reflect"
)

// Callback is invoked synchronously by Notify with the notification's named
// arguments. Returning an error aborts the rest of the delivery pass.
//
// Subscription uniqueness is decided by callback identity: two callbacks are
// the same when their dynamic types are equal and comparable and the values
// compare equal. Pointer implementations therefore compare by reference.
// Callbacks of a non-comparable dynamic type are never the same as any other
// callback; they can only be removed through their Subscription.
type Callback interface {
	Call(ctx context.Context, args Args) error
}

// funcCallback gives a plain function a reference identity.
type funcCallback struct {
	fn func(ctx context.Context, args Args) error
}

func (f *funcCallback) Call(ctx context.Context, args Args) error { return f.fn(ctx, args) }

// Func adapts fn to a Callback. Every call returns a new identity, so keep the
// returned value around if the pair is going to be unsubscribed later.
func Func(fn func(ctx context.Context, args Args) error) Callback {
	if fn == nil {
		return nil
	}
	return &funcCallback{fn: fn}
}

// sameCallback reports whether a and b have the same identity.
func sameCallback(a, b Callback) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	// Comparable types can still hold non-comparable values in interface
	// fields; those panic on ==.
	if !comparableValue(reflect.ValueOf(a)) || !comparableValue(reflect.ValueOf(b)) {
		return false
	}
	return a == b
}

// comparableValue reports whether == on v is guaranteed not to panic.
func comparableValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return true
		}
		return comparableValue(v.Elem())
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !comparableValue(v.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if !comparableValue(v.Index(i)) {
				return false
			}
		}
		return true
	default:
		return v.Type().Comparable()
	}
}

// callbackName is a short description of cb used in logs and listings.
func callbackName(cb Callback) string {
	if cb == nil {
		return "<nil>"
	}
	if n, ok := cb.(interface{ Name() string }); ok {
		return n.Name()
	}
	return reflect.TypeOf(cb).String()
}
