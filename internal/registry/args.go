package registry

import (
	"fmt"
	"maps"
)

// Args is the named-argument set forwarded by Notify to each callback.
type Args map[string]any

// Clone returns a shallow copy. A nil Args clones to an empty, non-nil map.
func (a Args) Clone() Args {
	if a == nil {
		return Args{}
	}
	return maps.Clone(a)
}

// Value returns the raw value for key, or ErrMissingArg.
func (a Args) Value(key string) (any, error) {
	v, ok := a[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingArg, key)
	}
	return v, nil
}

// String returns the string value for key.
func (a Args) String(key string) (string, error) {
	v, err := a.Value(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &ArgTypeError{Key: key, Want: "string", Got: v}
	}
	return s, nil
}

// Int returns the integer value for key. Whole floats are accepted so that
// arguments decoded from JSON can be read back as integers.
func (a Args) Int(key string) (int, error) {
	v, err := a.Value(key)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case float32:
		if float32(int(n)) == n {
			return int(n), nil
		}
	case float64:
		if float64(int(n)) == n {
			return int(n), nil
		}
	}
	return 0, &ArgTypeError{Key: key, Want: "int", Got: v}
}

// Bool returns the boolean value for key.
func (a Args) Bool(key string) (bool, error) {
	v, err := a.Value(key)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, &ArgTypeError{Key: key, Want: "bool", Got: v}
	}
	return b, nil
}
