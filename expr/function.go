package expr

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"sync"
)

// Function represents a built-in function that can be called from an expression
type Function interface {
	// Name returns the function name (case-sensitive)
	Name() string
	// MinArity returns the minimum number of arguments
	MinArity() int
	// MaxArity returns the maximum number of arguments (-1 for unlimited)
	MaxArity() int
	// Evaluate evaluates the function with the given arguments
	Evaluate(args []interface{}) (interface{}, error)
}

// FunctionRegistry manages function lookup and registration
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

// NewFunctionRegistry creates a new function registry
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions: make(map[string]Function),
	}
}

// Register registers a function
func (r *FunctionRegistry) Register(f Function) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.functions[f.Name()] = f
}

// Get retrieves a function by name
func (r *FunctionRegistry) Get(name string) (Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, exists := r.functions[name]
	return f, exists
}

// Names returns the registered function names in sorted order
func (r *FunctionRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call checks arity and invokes the named function
func (r *FunctionRegistry) Call(name string, args []interface{}) (interface{}, error) {
	f, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUndefinedName, name)
	}
	if len(args) < f.MinArity() || (f.MaxArity() >= 0 && len(args) > f.MaxArity()) {
		return nil, fmt.Errorf("%w: %s() takes %s, got %d", ErrArity, name, arityText(f), len(args))
	}
	return f.Evaluate(args)
}

func arityText(f Function) string {
	switch {
	case f.MaxArity() < 0:
		return fmt.Sprintf("at least %d", f.MinArity())
	case f.MinArity() == f.MaxArity():
		return fmt.Sprintf("exactly %d", f.MinArity())
	default:
		return fmt.Sprintf("%d to %d", f.MinArity(), f.MaxArity())
	}
}

// Constants are the named values available to every expression
var Constants = map[string]float64{
	"pi":  math.Pi,
	"e":   math.E,
	"inf": math.Inf(1),
	"nan": math.NaN(),
}

// globalRegistry is the default function registry
var globalRegistry *FunctionRegistry

func init() {
	globalRegistry = newBuiltinRegistry(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// newBuiltinRegistry builds the closed vocabulary; random generators draw from rng
func newBuiltinRegistry(rng *rand.Rand) *FunctionRegistry {
	r := NewFunctionRegistry()

	// Register elementwise math functions
	for _, f := range elementwiseFuncs {
		r.Register(f)
	}
	r.Register(&binaryFunc{name: "atan2", fn: math.Atan2})
	r.Register(&binaryFunc{name: "hypot", fn: math.Hypot})
	r.Register(&binaryFunc{name: "mod", fn: pyMod})
	r.Register(&RoundFunc{})
	r.Register(&ClipFunc{})

	// Register casts
	r.Register(&IntFunc{})
	r.Register(&FloatFunc{})
	r.Register(&BoolFunc{})
	r.Register(&ArrayFunc{})

	// Register reductions
	r.Register(&AverageFunc{})
	r.Register(&reduceFunc{name: "mean", fn: mean})
	r.Register(&reduceFunc{name: "median", fn: median})
	r.Register(&DotFunc{})
	r.Register(&SumFunc{})
	r.Register(&extremumFunc{name: "min", better: func(a, b float64) bool { return a < b }})
	r.Register(&extremumFunc{name: "max", better: func(a, b float64) bool { return a > b }})
	r.Register(&LenFunc{})
	r.Register(&quantifierFunc{name: "all", all: true})
	r.Register(&quantifierFunc{name: "any", all: false})

	// Register array generators and transforms
	r.Register(&ArangeFunc{})
	r.Register(&LinspaceFunc{})
	r.Register(&filledFunc{name: "ones", value: 1})
	r.Register(&filledFunc{name: "zeros", value: 0})
	r.Register(&accumulateFunc{name: "cumsum", start: 0, fn: func(acc, x float64) float64 { return acc + x }})
	r.Register(&accumulateFunc{name: "cumprod", start: 1, fn: func(acc, x float64) float64 { return acc * x }})
	r.Register(&DiffFunc{})
	r.Register(&SortFunc{})
	r.Register(&InterpFunc{})

	// Register random generators
	src := &lockedRand{rng: rng}
	r.Register(&RandomFunc{src: src})
	r.Register(&UniformFunc{src: src})
	r.Register(&NormalFunc{src: src})

	return r
}

// GetGlobalRegistry returns the global function registry
func GetGlobalRegistry() *FunctionRegistry {
	return globalRegistry
}

// IsBuiltin reports whether name is a constant or built-in function
func IsBuiltin(name string) bool {
	if _, ok := Constants[name]; ok {
		return true
	}
	_, ok := globalRegistry.Get(name)
	return ok
}

// Vocabulary returns every built-in name, constants included, sorted
func Vocabulary() []string {
	names := globalRegistry.Names()
	for name := range Constants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
