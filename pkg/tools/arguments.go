package tools

import (
	"encoding/json"
	"fmt"
	"math"
)

// Arguments holds decoded call arguments. JSON numbers arrive as float64 or
// json.Number depending on the decoder.
type Arguments map[string]interface{}

// lookup returns the value of name; explicit nulls count as absent
func (a Arguments) lookup(name string) (interface{}, bool) {
	v, ok := a[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String returns a required string argument
func (a Arguments) String(name string) (string, error) {
	v, ok := a.lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingArgument, name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", ErrInvalidArgument, name)
	}
	return s, nil
}

// StringOr returns a string argument, or def when it is absent
func (a Arguments) StringOr(name, def string) (string, error) {
	if _, ok := a.lookup(name); !ok {
		return def, nil
	}
	return a.String(name)
}

// OptionalString returns nil when the argument is absent
func (a Arguments) OptionalString(name string) (*string, error) {
	if _, ok := a.lookup(name); !ok {
		return nil, nil
	}
	s, err := a.String(name)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Float returns a required numeric argument
func (a Arguments) Float(name string) (float64, error) {
	v, ok := a.lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingArgument, name)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be a number", ErrInvalidArgument, name)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %s must be a number", ErrInvalidArgument, name)
	}
}

// Int returns a required integer argument. Floats with a fractional part are rejected.
func (a Arguments) Int(name string) (int64, error) {
	v, ok := a.lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingArgument, name)
	}
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidArgument, name)
		}
		return i, nil
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidArgument, name)
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidArgument, name)
	}
}

// IntOr returns an integer argument, or def when it is absent
func (a Arguments) IntOr(name string, def int64) (int64, error) {
	if _, ok := a.lookup(name); !ok {
		return def, nil
	}
	return a.Int(name)
}
