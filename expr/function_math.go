package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Math Functions

// elementwiseFunc applies a one-argument numeric function to a scalar or every array element
type elementwiseFunc struct {
	name string
	fn   func(float64) float64
}

func (f *elementwiseFunc) Name() string  { return f.name }
func (f *elementwiseFunc) MinArity() int { return 1 }
func (f *elementwiseFunc) MaxArity() int { return 1 }
func (f *elementwiseFunc) Evaluate(args []interface{}) (interface{}, error) {
	out, err := mapUnary(args[0], f.fn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.name, err)
	}
	return out, nil
}

var elementwiseFuncs = []*elementwiseFunc{
	{name: "sin", fn: math.Sin},
	{name: "cos", fn: math.Cos},
	{name: "tan", fn: math.Tan},
	{name: "asin", fn: math.Asin},
	{name: "acos", fn: math.Acos},
	{name: "atan", fn: math.Atan},
	{name: "sinh", fn: math.Sinh},
	{name: "cosh", fn: math.Cosh},
	{name: "tanh", fn: math.Tanh},
	{name: "sinc", fn: sinc},
	{name: "radians", fn: func(x float64) float64 { return x * math.Pi / 180 }},
	{name: "degrees", fn: func(x float64) float64 { return x * 180 / math.Pi }},
	{name: "sqrt", fn: math.Sqrt},
	{name: "exp", fn: math.Exp},
	{name: "log", fn: math.Log},
	{name: "log10", fn: math.Log10},
	{name: "floor", fn: math.Floor},
	{name: "ceil", fn: math.Ceil},
	{name: "abs", fn: math.Abs},
}

// sinc is the normalized sinc function sin(pi x)/(pi x)
func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	y := math.Pi * x
	return math.Sin(y) / y
}

// binaryFunc applies a two-argument numeric function with broadcasting
type binaryFunc struct {
	name string
	fn   func(x, y float64) float64
}

func (f *binaryFunc) Name() string  { return f.name }
func (f *binaryFunc) MinArity() int { return 2 }
func (f *binaryFunc) MaxArity() int { return 2 }
func (f *binaryFunc) Evaluate(args []interface{}) (interface{}, error) {
	out, err := mapBinary(args[0], args[1], f.fn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.name, err)
	}
	return out, nil
}

// pyMod is the floored modulo: the result takes the sign of the divisor
func pyMod(x, y float64) float64 {
	r := math.Mod(x, y)
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return r
}

// floorDiv is division rounded toward negative infinity
func floorDiv(x, y float64) float64 {
	return math.Floor(x / y)
}

// RoundFunc rounds half to even at the given number of decimals
type RoundFunc struct{}

func (f *RoundFunc) Name() string  { return "round" }
func (f *RoundFunc) MinArity() int { return 1 }
func (f *RoundFunc) MaxArity() int { return 2 }
func (f *RoundFunc) Evaluate(args []interface{}) (interface{}, error) {
	// Default to 0 decimal places
	decimals := 0
	if len(args) == 2 {
		var err error
		decimals, err = valueToInt(args[1])
		if err != nil {
			return nil, fmt.Errorf("round: decimals argument: %w", err)
		}
	}

	out, err := mapUnary(args[0], func(x float64) float64 { return roundHalfEven(x, decimals) })
	if err != nil {
		return nil, fmt.Errorf("round: %w", err)
	}
	return out, nil
}

// roundDecimalsLimit bounds the decimals argument of round. Every finite
// float64 has a shortest decimal form with fewer fractional digits, and no
// finite float64 survives rounding at the negated limit.
const roundDecimalsLimit = 350

// roundHalfEven rounds the shortest decimal representation of x, so
// round(2.675, 2) is 2.68 even though the nearest double lies below 2.675.
func roundHalfEven(x float64, decimals int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	if decimals >= roundDecimalsLimit {
		return x
	}
	if decimals <= -roundDecimalsLimit {
		return math.Copysign(0, x)
	}
	return decimal.NewFromFloat(x).RoundBank(int32(decimals)).InexactFloat64()
}

// ClipFunc limits values to [lo, hi]; a None bound is open
type ClipFunc struct{}

func (f *ClipFunc) Name() string  { return "clip" }
func (f *ClipFunc) MinArity() int { return 3 }
func (f *ClipFunc) MaxArity() int { return 3 }
func (f *ClipFunc) Evaluate(args []interface{}) (interface{}, error) {
	if args[1] == nil && args[2] == nil {
		return nil, fmt.Errorf("clip: %w: at least one bound must be given", ErrType)
	}
	lo, hi := args[1], args[2]
	if lo == nil {
		lo = math.Inf(-1)
	}
	if hi == nil {
		hi = math.Inf(1)
	}

	out, err := mapNumbers(func(xs ...float64) float64 {
		return math.Min(math.Max(xs[0], xs[1]), xs[2])
	}, args[0], lo, hi)
	if err != nil {
		return nil, fmt.Errorf("clip: %w", err)
	}
	return out, nil
}

// Cast Functions

// IntFunc truncates toward zero
type IntFunc struct{}

func (f *IntFunc) Name() string  { return "int" }
func (f *IntFunc) MinArity() int { return 1 }
func (f *IntFunc) MaxArity() int { return 1 }
func (f *IntFunc) Evaluate(args []interface{}) (interface{}, error) {
	arg := args[0]
	if s, ok := arg.(string); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("int: %w: invalid literal %q", ErrType, s)
		}
		return float64(n), nil
	}
	out, err := mapUnary(arg, math.Trunc)
	if err != nil {
		return nil, fmt.Errorf("int: %w", err)
	}
	return out, nil
}

// FloatFunc converts numbers, bools and numeric strings to floating point
type FloatFunc struct{}

func (f *FloatFunc) Name() string  { return "float" }
func (f *FloatFunc) MinArity() int { return 1 }
func (f *FloatFunc) MaxArity() int { return 1 }
func (f *FloatFunc) Evaluate(args []interface{}) (interface{}, error) {
	arg := args[0]
	if s, ok := arg.(string); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("float: %w: invalid literal %q", ErrType, s)
		}
		return n, nil
	}
	out, err := mapUnary(arg, func(x float64) float64 { return x })
	if err != nil {
		return nil, fmt.Errorf("float: %w", err)
	}
	return out, nil
}

// BoolFunc tests truth of a scalar, or of each element of an array
type BoolFunc struct{}

func (f *BoolFunc) Name() string  { return "bool" }
func (f *BoolFunc) MinArity() int { return 1 }
func (f *BoolFunc) MaxArity() int { return 1 }
func (f *BoolFunc) Evaluate(args []interface{}) (interface{}, error) {
	if isArray(args[0]) {
		values, _, err := valueToArray(args[0])
		if err != nil {
			return nil, fmt.Errorf("bool: %w", err)
		}
		out := make([]bool, len(values))
		for i, v := range values {
			out[i] = v != 0
		}
		return out, nil
	}
	b, err := truthy(args[0])
	if err != nil {
		return nil, fmt.Errorf("bool: %w", err)
	}
	return b, nil
}

// ArrayFunc copies a list or array into a numeric array
type ArrayFunc struct{}

func (f *ArrayFunc) Name() string  { return "array" }
func (f *ArrayFunc) MinArity() int { return 1 }
func (f *ArrayFunc) MaxArity() int { return 1 }
func (f *ArrayFunc) Evaluate(args []interface{}) (interface{}, error) {
	switch val := args[0].(type) {
	case []bool:
		return append([]bool(nil), val...), nil
	case float64, bool:
		return val, nil
	}
	values, _, err := valueToArray(args[0])
	if err != nil {
		return nil, fmt.Errorf("array: %w", err)
	}
	return append([]float64{}, values...), nil
}
