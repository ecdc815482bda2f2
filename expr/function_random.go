package expr

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// Random Functions
//
// Each generator returns a scalar when called without a size and an array
// of size samples otherwise. The generators of one registry share an RNG.

// lockedRand serializes access to a shared *rand.Rand
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (l *lockedRand) sample(n int, draw func(*rand.Rand) float64) []float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]float64, n)
	for i := range out {
		out[i] = draw(l.rng)
	}
	return out
}

// draw produces a scalar or a size-length array from the generator
func draw(name string, src *lockedRand, size interface{}, fn func(*rand.Rand) float64) (interface{}, error) {
	if size == nil {
		return src.sample(1, fn)[0], nil
	}
	n, err := valueToInt(size)
	if err != nil {
		return nil, fmt.Errorf("%s: size: %w", name, err)
	}
	if err := checkGeneratedLength(name, n); err != nil {
		return nil, err
	}
	return src.sample(n, fn), nil
}

// optionalArg returns args[i] or nil when absent
func optionalArg(args []interface{}, i int) interface{} {
	if i < len(args) {
		return args[i]
	}
	return nil
}

// floatArg returns args[i] as a number, or def when absent or None
func floatArg(name string, args []interface{}, i int, def float64) (float64, error) {
	arg := optionalArg(args, i)
	if arg == nil {
		return def, nil
	}
	v, err := valueToNumber(arg)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

// RandomFunc samples uniformly from [0, 1)
type RandomFunc struct {
	src *lockedRand
}

func (f *RandomFunc) Name() string  { return "random" }
func (f *RandomFunc) MinArity() int { return 0 }
func (f *RandomFunc) MaxArity() int { return 1 }
func (f *RandomFunc) Evaluate(args []interface{}) (interface{}, error) {
	return draw("random", f.src, optionalArg(args, 0), func(r *rand.Rand) float64 {
		return r.Float64()
	})
}

// UniformFunc samples uniformly from [low, high)
type UniformFunc struct {
	src *lockedRand
}

func (f *UniformFunc) Name() string  { return "uniform" }
func (f *UniformFunc) MinArity() int { return 0 }
func (f *UniformFunc) MaxArity() int { return 3 }
func (f *UniformFunc) Evaluate(args []interface{}) (interface{}, error) {
	low, err := floatArg("uniform", args, 0, 0)
	if err != nil {
		return nil, err
	}
	high, err := floatArg("uniform", args, 1, 1)
	if err != nil {
		return nil, err
	}
	return draw("uniform", f.src, optionalArg(args, 2), func(r *rand.Rand) float64 {
		return low + (high-low)*r.Float64()
	})
}

// NormalFunc samples from a normal distribution with mean loc and deviation scale
type NormalFunc struct {
	src *lockedRand
}

func (f *NormalFunc) Name() string  { return "normal" }
func (f *NormalFunc) MinArity() int { return 0 }
func (f *NormalFunc) MaxArity() int { return 3 }
func (f *NormalFunc) Evaluate(args []interface{}) (interface{}, error) {
	loc, err := floatArg("normal", args, 0, 0)
	if err != nil {
		return nil, err
	}
	scale, err := floatArg("normal", args, 1, 1)
	if err != nil {
		return nil, err
	}
	if scale < 0 {
		return nil, fmt.Errorf("normal: scale must be non-negative, got %v", scale)
	}
	return draw("normal", f.src, optionalArg(args, 2), func(r *rand.Rand) float64 {
		return loc + scale*r.NormFloat64()
	})
}
