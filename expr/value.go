package expr

import (
	"fmt"
	"math"
	"strconv"
)

// Values flowing through the evaluator are one of:
//
//	nil, float64, bool, string,
//	[]float64, []bool,
//	[]interface{}, map[string]interface{}
//
// Scalars broadcast against arrays, as do one-element arrays.

// valueToNumber converts a scalar value to a number
func valueToNumber(v interface{}) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case bool:
		return boolToFloat(val), nil
	case int:
		return float64(val), nil
	case []float64:
		if len(val) == 1 {
			return val[0], nil
		}
	case []bool:
		if len(val) == 1 {
			return boolToFloat(val[0]), nil
		}
	}
	return 0, fmt.Errorf("%w: expected a number, got %s", ErrType, describe(v))
}

// valueToInt converts a scalar value to an integer, rejecting fractions
// maxExactInt is the largest magnitude at which every integer is a float64
const maxExactInt = 1 << 53

func valueToInt(v interface{}) (int, error) {
	f, err := valueToNumber(v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%w: expected an integer, got %v", ErrType, f)
	}
	if math.Abs(f) > maxExactInt {
		return 0, fmt.Errorf("%w: integer %v out of range", ErrType, f)
	}
	return int(f), nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// valueToArray converts a value to a float slice. scalar reports whether the
// input was a scalar, in which case the slice has one element.
func valueToArray(v interface{}) (values []float64, scalar bool, err error) {
	switch val := v.(type) {
	case float64:
		return []float64{val}, true, nil
	case bool:
		return []float64{boolToFloat(val)}, true, nil
	case int:
		return []float64{float64(val)}, true, nil
	case []float64:
		return val, false, nil
	case []bool:
		out := make([]float64, len(val))
		for i, b := range val {
			out[i] = boolToFloat(b)
		}
		return out, false, nil
	case []interface{}:
		out := make([]float64, len(val))
		for i, item := range val {
			f, err := valueToNumber(item)
			if err != nil {
				return nil, false, err
			}
			out[i] = f
		}
		return out, false, nil
	}
	return nil, false, fmt.Errorf("%w: expected a number or array, got %s", ErrType, describe(v))
}

// broadcastLength returns the common length of arrays under broadcasting
func broadcastLength(arrays ...[]float64) (int, error) {
	n := 1
	for _, a := range arrays {
		switch {
		case len(a) == 1:
		case n == 1:
			n = len(a)
		case len(a) != n:
			return 0, fmt.Errorf("%w: %s", ErrLengthMismatch, lengthsOf(arrays))
		}
	}
	return n, nil
}

func lengthsOf(arrays [][]float64) string {
	s := "lengths"
	for i, a := range arrays {
		if i > 0 {
			s += ","
		}
		s += " " + strconv.Itoa(len(a))
	}
	return s
}

// at returns a[i] honoring broadcasting of one-element arrays
func at(a []float64, i int) float64 {
	if len(a) == 1 {
		return a[0]
	}
	return a[i]
}

// broadcast converts args to arrays and computes their common length.
// scalar is true when every argument was a scalar.
func broadcast(args ...interface{}) (arrays [][]float64, n int, scalar bool, err error) {
	arrays = make([][]float64, len(args))
	scalar = true
	for i, arg := range args {
		values, isScalar, err := valueToArray(arg)
		if err != nil {
			return nil, 0, false, err
		}
		arrays[i] = values
		scalar = scalar && isScalar
	}
	n, err = broadcastLength(arrays...)
	if err != nil {
		return nil, 0, false, err
	}
	return arrays, n, scalar, nil
}

// mapNumbers applies fn elementwise across broadcast args
func mapNumbers(fn func(xs ...float64) float64, args ...interface{}) (interface{}, error) {
	arrays, n, scalar, err := broadcast(args...)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	xs := make([]float64, len(arrays))
	for i := 0; i < n; i++ {
		for j, a := range arrays {
			xs[j] = at(a, i)
		}
		out[i] = fn(xs...)
	}
	if scalar {
		return out[0], nil
	}
	return out, nil
}

// mapUnary applies fn to every element of a scalar or array
func mapUnary(v interface{}, fn func(float64) float64) (interface{}, error) {
	return mapNumbers(func(xs ...float64) float64 { return fn(xs[0]) }, v)
}

// mapBinary applies fn pairwise to broadcast operands
func mapBinary(a, b interface{}, fn func(x, y float64) float64) (interface{}, error) {
	return mapNumbers(func(xs ...float64) float64 { return fn(xs[0], xs[1]) }, a, b)
}

// mapPredicate applies a comparison pairwise, yielding bool or []bool
func mapPredicate(a, b interface{}, fn func(x, y float64) bool) (interface{}, error) {
	arrays, n, scalar, err := broadcast(a, b)
	if err != nil {
		return nil, err
	}

	out := make([]bool, n)
	for i := 0; i < n; i++ {
		out[i] = fn(at(arrays[0], i), at(arrays[1], i))
	}
	if scalar {
		return out[0], nil
	}
	return out, nil
}

// truthy applies truth-value testing; arrays must hold exactly one element
func truthy(v interface{}) (bool, error) {
	switch val := v.(type) {
	case nil:
		return false, nil
	case bool:
		return val, nil
	case float64:
		return val != 0, nil
	case int:
		return val != 0, nil
	case string:
		return val != "", nil
	case map[string]interface{}:
		return len(val) > 0, nil
	case []float64:
		if len(val) == 1 {
			return val[0] != 0, nil
		}
		return false, fmt.Errorf("%w (length %d)", ErrAmbiguousTruth, len(val))
	case []bool:
		if len(val) == 1 {
			return val[0], nil
		}
		return false, fmt.Errorf("%w (length %d)", ErrAmbiguousTruth, len(val))
	case []interface{}:
		if len(val) == 1 {
			return truthy(val[0])
		}
		return false, fmt.Errorf("%w (length %d)", ErrAmbiguousTruth, len(val))
	}
	return false, fmt.Errorf("%w: cannot test truth of %s", ErrType, describe(v))
}

// Truthy reports the truth value of an evaluation result
func Truthy(v interface{}) (bool, error) {
	return truthy(v)
}

// isArray reports whether v is one of the array representations
func isArray(v interface{}) bool {
	switch v.(type) {
	case []float64, []bool, []interface{}:
		return true
	}
	return false
}

// arrayLength returns the length of an array value
func arrayLength(v interface{}) (int, bool) {
	switch val := v.(type) {
	case []float64:
		return len(val), true
	case []bool:
		return len(val), true
	case []interface{}:
		return len(val), true
	}
	return 0, false
}

// describe names a value's kind for error messages
func describe(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case float64, int:
		return "number"
	case bool:
		return "bool"
	case string:
		return "string"
	case []float64:
		return fmt.Sprintf("array of %d numbers", len(val))
	case []bool:
		return fmt.Sprintf("array of %d bools", len(val))
	case []interface{}:
		return fmt.Sprintf("list of %d values", len(val))
	case map[string]interface{}:
		return "mapping"
	}
	return fmt.Sprintf("%T", v)
}
