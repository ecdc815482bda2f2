package expr

import (
	"fmt"
	"math"
	"sort"
)

// Reductions

// reduceFunc collapses an array into a single number
type reduceFunc struct {
	name string
	fn   func([]float64) float64
}

func (f *reduceFunc) Name() string  { return f.name }
func (f *reduceFunc) MinArity() int { return 1 }
func (f *reduceFunc) MaxArity() int { return 1 }
func (f *reduceFunc) Evaluate(args []interface{}) (interface{}, error) {
	values, _, err := valueToArray(args[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.name, err)
	}
	return f.fn(values), nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := sortedCopy(values)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// AverageFunc is the mean, optionally weighted
type AverageFunc struct{}

func (f *AverageFunc) Name() string  { return "average" }
func (f *AverageFunc) MinArity() int { return 1 }
func (f *AverageFunc) MaxArity() int { return 2 }
func (f *AverageFunc) Evaluate(args []interface{}) (interface{}, error) {
	values, _, err := valueToArray(args[0])
	if err != nil {
		return nil, fmt.Errorf("average: %w", err)
	}
	if len(args) == 1 || args[1] == nil {
		return mean(values), nil
	}

	weights, _, err := valueToArray(args[1])
	if err != nil {
		return nil, fmt.Errorf("average: weights: %w", err)
	}
	if len(weights) != len(values) {
		return nil, fmt.Errorf("average: %w: %d values, %d weights", ErrLengthMismatch, len(values), len(weights))
	}

	var total, norm float64
	for i, v := range values {
		total += v * weights[i]
		norm += weights[i]
	}
	if norm == 0 {
		return nil, fmt.Errorf("average: weights sum to zero")
	}
	return total / norm, nil
}

// DotFunc is the inner product of two arrays; a scalar operand scales the other
type DotFunc struct{}

func (f *DotFunc) Name() string  { return "dot" }
func (f *DotFunc) MinArity() int { return 2 }
func (f *DotFunc) MaxArity() int { return 2 }
func (f *DotFunc) Evaluate(args []interface{}) (interface{}, error) {
	a, aScalar, err := valueToArray(args[0])
	if err != nil {
		return nil, fmt.Errorf("dot: %w", err)
	}
	b, bScalar, err := valueToArray(args[1])
	if err != nil {
		return nil, fmt.Errorf("dot: %w", err)
	}

	if aScalar || bScalar {
		return mapBinary(args[0], args[1], func(x, y float64) float64 { return x * y })
	}
	if len(a) != len(b) {
		return nil, fmt.Errorf("dot: %w: lengths %d, %d", ErrLengthMismatch, len(a), len(b))
	}

	total := 0.0
	for i := range a {
		total += a[i] * b[i]
	}
	return total, nil
}

// SumFunc adds up an array, plus an optional start value
type SumFunc struct{}

func (f *SumFunc) Name() string  { return "sum" }
func (f *SumFunc) MinArity() int { return 1 }
func (f *SumFunc) MaxArity() int { return 2 }
func (f *SumFunc) Evaluate(args []interface{}) (interface{}, error) {
	if !isArray(args[0]) {
		return nil, fmt.Errorf("sum: %w: expected an array, got %s", ErrType, describe(args[0]))
	}
	values, _, err := valueToArray(args[0])
	if err != nil {
		return nil, fmt.Errorf("sum: %w", err)
	}

	total := 0.0
	if len(args) == 2 {
		if total, err = valueToNumber(args[1]); err != nil {
			return nil, fmt.Errorf("sum: start: %w", err)
		}
	}
	for _, v := range values {
		total += v
	}
	return total, nil
}

// extremumFunc is min or max: of one array's elements, or of several scalars
type extremumFunc struct {
	name   string
	better func(a, b float64) bool
}

func (f *extremumFunc) Name() string  { return f.name }
func (f *extremumFunc) MinArity() int { return 1 }
func (f *extremumFunc) MaxArity() int { return -1 }
func (f *extremumFunc) Evaluate(args []interface{}) (interface{}, error) {
	var values []float64
	if len(args) == 1 {
		if !isArray(args[0]) {
			return nil, fmt.Errorf("%s: %w: a single argument must be an array", f.name, ErrType)
		}
		var err error
		if values, _, err = valueToArray(args[0]); err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
	} else {
		values = make([]float64, len(args))
		for i, arg := range args {
			if isArray(arg) {
				return nil, fmt.Errorf("%s: %w: pass a single array to reduce it", f.name, ErrAmbiguousTruth)
			}
			v, err := valueToNumber(arg)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.name, err)
			}
			values[i] = v
		}
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("%s: %w: empty sequence", f.name, ErrType)
	}
	best := values[0]
	for _, v := range values[1:] {
		if f.better(v, best) {
			best = v
		}
	}
	return best, nil
}

// LenFunc returns the number of elements of an array, string or mapping
type LenFunc struct{}

func (f *LenFunc) Name() string  { return "len" }
func (f *LenFunc) MinArity() int { return 1 }
func (f *LenFunc) MaxArity() int { return 1 }
func (f *LenFunc) Evaluate(args []interface{}) (interface{}, error) {
	if n, ok := arrayLength(args[0]); ok {
		return float64(n), nil
	}
	switch val := args[0].(type) {
	case string:
		return float64(len([]rune(val))), nil
	case map[string]interface{}:
		return float64(len(val)), nil
	}
	return nil, fmt.Errorf("len: %w: %s has no length", ErrType, describe(args[0]))
}

// quantifierFunc is all or any over the elements of an array
type quantifierFunc struct {
	name string
	all  bool
}

func (f *quantifierFunc) Name() string  { return f.name }
func (f *quantifierFunc) MinArity() int { return 1 }
func (f *quantifierFunc) MaxArity() int { return 1 }
func (f *quantifierFunc) Evaluate(args []interface{}) (interface{}, error) {
	if !isArray(args[0]) {
		b, err := truthy(args[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		return b, nil
	}

	values, _, err := valueToArray(args[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.name, err)
	}
	for _, v := range values {
		if (v != 0) != f.all {
			return !f.all, nil
		}
	}
	return f.all, nil
}

// Generators

func checkGeneratedLength(name string, n int) error {
	if n < 0 {
		return fmt.Errorf("%s: %w: negative length %d", name, ErrType, n)
	}
	if n > MaxGeneratedLength {
		return fmt.Errorf("%s: length %d exceeds %d", name, n, MaxGeneratedLength)
	}
	return nil
}

// ArangeFunc returns evenly spaced values in [start, stop)
type ArangeFunc struct{}

func (f *ArangeFunc) Name() string  { return "arange" }
func (f *ArangeFunc) MinArity() int { return 1 }
func (f *ArangeFunc) MaxArity() int { return 3 }
func (f *ArangeFunc) Evaluate(args []interface{}) (interface{}, error) {
	nums := make([]float64, len(args))
	for i, arg := range args {
		v, err := valueToNumber(arg)
		if err != nil {
			return nil, fmt.Errorf("arange: %w", err)
		}
		nums[i] = v
	}

	start, stop, step := 0.0, 0.0, 1.0
	switch len(nums) {
	case 1:
		stop = nums[0]
	case 2:
		start, stop = nums[0], nums[1]
	case 3:
		start, stop, step = nums[0], nums[1], nums[2]
	}
	if step == 0 {
		return nil, fmt.Errorf("arange: step must not be zero")
	}

	count := math.Ceil((stop - start) / step)
	if math.IsNaN(count) || count < 0 {
		count = 0
	}
	if count > MaxGeneratedLength {
		return nil, fmt.Errorf("arange: length %.0f exceeds %d", count, MaxGeneratedLength)
	}

	out := make([]float64, int(count))
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out, nil
}

// LinspaceFunc returns num evenly spaced values over [start, stop]
type LinspaceFunc struct{}

func (f *LinspaceFunc) Name() string  { return "linspace" }
func (f *LinspaceFunc) MinArity() int { return 2 }
func (f *LinspaceFunc) MaxArity() int { return 3 }
func (f *LinspaceFunc) Evaluate(args []interface{}) (interface{}, error) {
	start, err := valueToNumber(args[0])
	if err != nil {
		return nil, fmt.Errorf("linspace: start: %w", err)
	}
	stop, err := valueToNumber(args[1])
	if err != nil {
		return nil, fmt.Errorf("linspace: stop: %w", err)
	}
	num := 50
	if len(args) == 3 {
		if num, err = valueToInt(args[2]); err != nil {
			return nil, fmt.Errorf("linspace: num: %w", err)
		}
	}
	if err := checkGeneratedLength("linspace", num); err != nil {
		return nil, err
	}

	out := make([]float64, num)
	if num == 1 {
		out[0] = start
		return out, nil
	}
	step := (stop - start) / float64(num-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	if num > 1 {
		out[num-1] = stop
	}
	return out, nil
}

// filledFunc returns an array of n copies of a constant
type filledFunc struct {
	name  string
	value float64
}

func (f *filledFunc) Name() string  { return f.name }
func (f *filledFunc) MinArity() int { return 1 }
func (f *filledFunc) MaxArity() int { return 1 }
func (f *filledFunc) Evaluate(args []interface{}) (interface{}, error) {
	n, err := valueToInt(args[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.name, err)
	}
	if err := checkGeneratedLength(f.name, n); err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = f.value
	}
	return out, nil
}

// accumulateFunc returns the running fold of an array
type accumulateFunc struct {
	name  string
	start float64
	fn    func(acc, x float64) float64
}

func (f *accumulateFunc) Name() string  { return f.name }
func (f *accumulateFunc) MinArity() int { return 1 }
func (f *accumulateFunc) MaxArity() int { return 1 }
func (f *accumulateFunc) Evaluate(args []interface{}) (interface{}, error) {
	values, _, err := valueToArray(args[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.name, err)
	}

	out := make([]float64, len(values))
	acc := f.start
	for i, v := range values {
		acc = f.fn(acc, v)
		out[i] = acc
	}
	return out, nil
}

// DiffFunc returns the n-1 successive differences of an array
type DiffFunc struct{}

func (f *DiffFunc) Name() string  { return "diff" }
func (f *DiffFunc) MinArity() int { return 1 }
func (f *DiffFunc) MaxArity() int { return 1 }
func (f *DiffFunc) Evaluate(args []interface{}) (interface{}, error) {
	if !isArray(args[0]) {
		return nil, fmt.Errorf("diff: %w: expected an array, got %s", ErrType, describe(args[0]))
	}
	values, _, err := valueToArray(args[0])
	if err != nil {
		return nil, fmt.Errorf("diff: %w", err)
	}
	if len(values) == 0 {
		return []float64{}, nil
	}

	out := make([]float64, len(values)-1)
	for i := range out {
		out[i] = values[i+1] - values[i]
	}
	return out, nil
}

// SortFunc returns a sorted copy of an array with NaN last
type SortFunc struct{}

func (f *SortFunc) Name() string  { return "sort" }
func (f *SortFunc) MinArity() int { return 1 }
func (f *SortFunc) MaxArity() int { return 1 }
func (f *SortFunc) Evaluate(args []interface{}) (interface{}, error) {
	values, _, err := valueToArray(args[0])
	if err != nil {
		return nil, fmt.Errorf("sort: %w", err)
	}
	return sortedCopy(values), nil
}

func sortedCopy(values []float64) []float64 {
	out := append([]float64{}, values...)
	sort.SliceStable(out, func(i, j int) bool {
		if math.IsNaN(out[j]) {
			return !math.IsNaN(out[i])
		}
		return out[i] < out[j]
	})
	return out
}

// InterpFunc is one-dimensional piecewise linear interpolation over increasing xp
type InterpFunc struct{}

func (f *InterpFunc) Name() string  { return "interp" }
func (f *InterpFunc) MinArity() int { return 3 }
func (f *InterpFunc) MaxArity() int { return 3 }
func (f *InterpFunc) Evaluate(args []interface{}) (interface{}, error) {
	xp, _, err := valueToArray(args[1])
	if err != nil {
		return nil, fmt.Errorf("interp: xp: %w", err)
	}
	fp, _, err := valueToArray(args[2])
	if err != nil {
		return nil, fmt.Errorf("interp: fp: %w", err)
	}
	if len(xp) != len(fp) {
		return nil, fmt.Errorf("interp: %w: xp has %d values, fp has %d", ErrLengthMismatch, len(xp), len(fp))
	}
	if len(xp) == 0 {
		return nil, fmt.Errorf("interp: %w: xp and fp must not be empty", ErrType)
	}

	out, err := mapUnary(args[0], func(x float64) float64 { return interpolate(x, xp, fp) })
	if err != nil {
		return nil, fmt.Errorf("interp: %w", err)
	}
	return out, nil
}

func interpolate(x float64, xp, fp []float64) float64 {
	last := len(xp) - 1
	switch {
	case math.IsNaN(x):
		return x
	case x <= xp[0]:
		return fp[0]
	case x >= xp[last]:
		return fp[last]
	}

	// first index with xp[i] > x; x lies in [xp[i-1], xp[i])
	i := sort.Search(len(xp), func(i int) bool { return xp[i] > x })
	x0, x1 := xp[i-1], xp[i]
	y0, y1 := fp[i-1], fp[i]
	return y0 + (x-x0)*(y1-y0)/(x1-x0)
}
