package expr

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/vegasq/thresh/internal/logging"
)

// Evaluator evaluates expressions against a source of named values.
// It is safe for concurrent use.
type Evaluator struct {
	registry *FunctionRegistry
	logger   *slog.Logger
}

// Option configures an Evaluator
type Option func(*evaluatorConfig)

type evaluatorConfig struct {
	seed   *uint64
	logger *slog.Logger
}

// WithSeed makes the random generators reproducible
func WithSeed(seed uint64) Option {
	return func(c *evaluatorConfig) {
		c.seed = &seed
	}
}

// WithLogger sets the logger evaluation failures are reported to
func WithLogger(logger *slog.Logger) Option {
	return func(c *evaluatorConfig) {
		c.logger = logger
	}
}

// NewEvaluator creates an evaluator with its own function registry
func NewEvaluator(opts ...Option) *Evaluator {
	var cfg evaluatorConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var rng *rand.Rand
	if cfg.seed != nil {
		rng = rand.New(rand.NewPCG(*cfg.seed, *cfg.seed))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	logger := cfg.logger
	if logger == nil {
		logger = logging.WithComponent("expr")
	}

	return &Evaluator{
		registry: newBuiltinRegistry(rng),
		logger:   logger,
	}
}

// Evaluate evaluates expression with the default evaluator
func Evaluate(source map[string]interface{}, expression string) (interface{}, error) {
	return NewEvaluator().Evaluate(source, expression)
}

// CheckNamingConflicts fails when a source name shadows a built-in
func CheckNamingConflicts(source map[string]interface{}) error {
	var conflicts []string
	for name := range source {
		if IsBuiltin(name) {
			conflicts = append(conflicts, name)
		}
	}
	if len(conflicts) == 0 {
		return nil
	}
	sort.Strings(conflicts)
	return fmt.Errorf("%w: %s", ErrNamingConflict, strings.Join(conflicts, ", "))
}

// Evaluate parses and evaluates expression against source. A nil result
// means the expression evaluated to None.
func (e *Evaluator) Evaluate(source map[string]interface{}, expression string) (interface{}, error) {
	result, err := e.evaluate(source, expression)
	if err != nil {
		e.logger.Error("error while evaluating expression", "expression", expression, "error", err)
		return nil, fmt.Errorf("evaluating %q: %w", expression, err)
	}
	return result, nil
}

func (e *Evaluator) evaluate(source map[string]interface{}, expression string) (interface{}, error) {
	if err := CheckNamingConflicts(source); err != nil {
		return nil, err
	}

	node, err := Parse(expression)
	if err != nil {
		return nil, err
	}

	scope := &scope{source: source, registry: e.registry}
	return scope.eval(node)
}

// scope evaluates nodes against one source mapping
type scope struct {
	source   map[string]interface{}
	registry *FunctionRegistry
}

func (s *scope) eval(node Node) (interface{}, error) {
	switch n := node.(type) {
	case *NumberLit:
		return n.Value, nil
	case *StringLit:
		return n.Value, nil
	case *BoolLit:
		return n.Value, nil
	case *NoneLit:
		return nil, nil
	case *Name:
		if n.Qualified {
			return s.lookupBuiltin(n.Ident)
		}
		return s.lookup(n.Ident)
	case *ListLit:
		return s.evalList(n)
	case *UnaryExpr:
		return s.evalUnary(n)
	case *NotExpr:
		v, err := s.eval(n.Operand)
		if err != nil {
			return nil, err
		}
		b, err := truthy(v)
		if err != nil {
			return nil, err
		}
		return !b, nil
	case *BinaryExpr:
		return s.evalBinary(n)
	case *CompareExpr:
		return s.evalCompare(n)
	case *LogicalExpr:
		return s.evalLogical(n)
	case *CallExpr:
		return s.evalCall(n)
	case *IndexExpr:
		return s.evalIndex(n)
	case *SliceExpr:
		return s.evalSlice(n)
	}
	return nil, fmt.Errorf("%w: unknown node %T", ErrSyntax, node)
}

func (s *scope) lookup(name string) (interface{}, error) {
	if v, ok := s.source[name]; ok {
		return v, nil
	}
	if v, ok := Constants[name]; ok {
		return v, nil
	}
	if _, ok := s.registry.Get(name); ok {
		return nil, fmt.Errorf("%w: function %s must be called", ErrType, name)
	}
	return nil, fmt.Errorf("%w: %s", ErrUndefinedName, name)
}

func (s *scope) lookupBuiltin(name string) (interface{}, error) {
	if v, ok := Constants[name]; ok {
		return v, nil
	}
	if _, ok := s.registry.Get(name); ok {
		return nil, fmt.Errorf("%w: function %s.%s must be called", ErrType, BuiltinQualifier, name)
	}
	return nil, fmt.Errorf("%w: %s.%s", ErrUndefinedName, BuiltinQualifier, name)
}

// evalList builds a numeric or boolean array from scalar elements
func (s *scope) evalList(n *ListLit) (interface{}, error) {
	values := make([]interface{}, len(n.Elements))
	allBool := len(n.Elements) > 0
	for i, element := range n.Elements {
		v, err := s.eval(element)
		if err != nil {
			return nil, err
		}
		switch v.(type) {
		case bool:
		case float64:
			allBool = false
		default:
			return nil, fmt.Errorf("%w: list elements must be numbers or bools, got %s", ErrType, describe(v))
		}
		values[i] = v
	}

	if allBool {
		out := make([]bool, len(values))
		for i, v := range values {
			out[i] = v.(bool)
		}
		return out, nil
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i], _ = valueToNumber(v)
	}
	return out, nil
}

func (s *scope) evalUnary(n *UnaryExpr) (interface{}, error) {
	v, err := s.eval(n.Operand)
	if err != nil {
		return nil, err
	}
	if n.Operator == TokenMinus {
		return mapUnary(v, func(x float64) float64 { return -x })
	}
	return mapUnary(v, func(x float64) float64 { return x })
}

var arithmetic = map[TokenType]func(x, y float64) float64{
	TokenPlus:     func(x, y float64) float64 { return x + y },
	TokenMinus:    func(x, y float64) float64 { return x - y },
	TokenStar:     func(x, y float64) float64 { return x * y },
	TokenSlash:    func(x, y float64) float64 { return x / y },
	TokenFloorDiv: floorDiv,
	TokenPercent:  pyMod,
	TokenPower:    math.Pow,
}

func (s *scope) evalBinary(n *BinaryExpr) (interface{}, error) {
	left, err := s.eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := s.eval(n.Right)
	if err != nil {
		return nil, err
	}

	if n.Operator == TokenPlus {
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
	}

	fn, ok := arithmetic[n.Operator]
	if !ok {
		return nil, fmt.Errorf("%w: unknown operator %v", ErrSyntax, n.Operator)
	}
	out, err := mapBinary(left, right, fn)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", n.Operator, err)
	}
	return out, nil
}

var comparisons = map[TokenType]func(x, y float64) bool{
	TokenEqual:        func(x, y float64) bool { return x == y },
	TokenNotEqual:     func(x, y float64) bool { return x != y },
	TokenLess:         func(x, y float64) bool { return x < y },
	TokenGreater:      func(x, y float64) bool { return x > y },
	TokenLessEqual:    func(x, y float64) bool { return x <= y },
	TokenGreaterEqual: func(x, y float64) bool { return x >= y },
}

// evalCompare evaluates a chain a op1 b op2 c as (a op1 b) and (b op2 c),
// combining array results elementwise
func (s *scope) evalCompare(n *CompareExpr) (interface{}, error) {
	left, err := s.eval(n.Operands[0])
	if err != nil {
		return nil, err
	}

	var result interface{}
	for i, op := range n.Operators {
		right, err := s.eval(n.Operands[i+1])
		if err != nil {
			return nil, err
		}
		step, err := compare(op, left, right)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", op, err)
		}

		if result == nil {
			result = step
		} else {
			result, err = mapPredicate(result, step, func(x, y float64) bool { return x != 0 && y != 0 })
			if err != nil {
				return nil, err
			}
		}

		// a scalar False settles the chain
		if b, ok := result.(bool); ok && !b {
			return false, nil
		}
		left = right
	}
	return result, nil
}

func compare(op TokenType, left, right interface{}) (interface{}, error) {
	if op == TokenEqual || op == TokenNotEqual {
		if eq, ok := scalarEqual(left, right); ok {
			return eq == (op == TokenEqual), nil
		}
	}
	ls, lok := left.(string)
	rs, rok := right.(string)
	if lok && rok {
		c := strings.Compare(ls, rs)
		return comparisons[op](float64(c), 0), nil
	}
	return mapPredicate(left, right, comparisons[op])
}

// scalarEqual handles equality involving None and strings, which never broadcast
func scalarEqual(left, right interface{}) (equal bool, handled bool) {
	switch l := left.(type) {
	case nil:
		return right == nil, true
	case string:
		r, ok := right.(string)
		return ok && l == r, true
	}
	switch right.(type) {
	case nil, string:
		return false, true
	}
	return false, false
}

// evalLogical short-circuits and returns the deciding operand
func (s *scope) evalLogical(n *LogicalExpr) (interface{}, error) {
	left, err := s.eval(n.Left)
	if err != nil {
		return nil, err
	}
	b, err := truthy(left)
	if err != nil {
		return nil, err
	}
	if (n.Operator == TokenOr) == b {
		return left, nil
	}
	return s.eval(n.Right)
}

func (s *scope) evalCall(n *CallExpr) (interface{}, error) {
	if _, ok := s.registry.Get(n.Function); !ok {
		if n.Qualified {
			return nil, fmt.Errorf("%w: %s.%s", ErrUndefinedName, BuiltinQualifier, n.Function)
		}
		if _, isValue := s.source[n.Function]; isValue {
			return nil, fmt.Errorf("%w: %s is not callable", ErrType, n.Function)
		}
		return nil, fmt.Errorf("%w: %s", ErrUndefinedName, n.Function)
	}

	args := make([]interface{}, len(n.Args))
	for i, arg := range n.Args {
		v, err := s.eval(arg)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return s.registry.Call(n.Function, args)
}

func (s *scope) evalIndex(n *IndexExpr) (interface{}, error) {
	target, err := s.eval(n.Target)
	if err != nil {
		return nil, err
	}
	index, err := s.eval(n.Index)
	if err != nil {
		return nil, err
	}

	if m, ok := target.(map[string]interface{}); ok {
		key, ok := index.(string)
		if !ok {
			return nil, fmt.Errorf("%w: mapping keys are strings, got %s", ErrIndex, describe(index))
		}
		v, ok := m[key]
		if !ok {
			return nil, fmt.Errorf("%w: key %q not found", ErrIndex, key)
		}
		return v, nil
	}

	length, ok := arrayLength(target)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not subscriptable", ErrType, describe(target))
	}

	switch idx := index.(type) {
	case []bool:
		if len(idx) != length {
			return nil, fmt.Errorf("%w: boolean index of length %d for array of length %d", ErrIndex, len(idx), length)
		}
		var picks []int
		for i, keep := range idx {
			if keep {
				picks = append(picks, i)
			}
		}
		return gather(target, picks), nil
	case []float64:
		picks := make([]int, len(idx))
		for i, f := range idx {
			p, err := normalizeIndex(f, length)
			if err != nil {
				return nil, err
			}
			picks[i] = p
		}
		return gather(target, picks), nil
	case float64:
		p, err := normalizeIndex(idx, length)
		if err != nil {
			return nil, err
		}
		return element(target, p), nil
	}
	return nil, fmt.Errorf("%w: arrays are indexed by integers, slices or boolean masks, got %s", ErrIndex, describe(index))
}

func normalizeIndex(f float64, length int) (int, error) {
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %v is not an integer", ErrIndex, f)
	}
	i := int(f)
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, fmt.Errorf("%w: %v out of range for length %d", ErrIndex, f, length)
	}
	return i, nil
}

func element(target interface{}, i int) interface{} {
	switch t := target.(type) {
	case []float64:
		return t[i]
	case []bool:
		return t[i]
	case []interface{}:
		return t[i]
	}
	return nil
}

func gather(target interface{}, picks []int) interface{} {
	switch t := target.(type) {
	case []float64:
		out := make([]float64, len(picks))
		for i, p := range picks {
			out[i] = t[p]
		}
		return out
	case []bool:
		out := make([]bool, len(picks))
		for i, p := range picks {
			out[i] = t[p]
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(picks))
		for i, p := range picks {
			out[i] = t[p]
		}
		return out
	}
	return nil
}

func (s *scope) evalSlice(n *SliceExpr) (interface{}, error) {
	target, err := s.eval(n.Target)
	if err != nil {
		return nil, err
	}
	length, ok := arrayLength(target)
	if !ok {
		return nil, fmt.Errorf("%w: %s cannot be sliced", ErrType, describe(target))
	}

	bound := func(node Node) (*int, error) {
		if node == nil {
			return nil, nil
		}
		v, err := s.eval(node)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, nil
		}
		i, err := valueToInt(v)
		if err != nil {
			return nil, fmt.Errorf("%w: slice bound: %v", ErrIndex, err)
		}
		return &i, nil
	}

	start, err := bound(n.Start)
	if err != nil {
		return nil, err
	}
	stop, err := bound(n.Stop)
	if err != nil {
		return nil, err
	}
	step, err := bound(n.Step)
	if err != nil {
		return nil, err
	}

	picks, err := sliceIndices(length, start, stop, step)
	if err != nil {
		return nil, err
	}
	return gather(target, picks), nil
}

// sliceIndices expands start:stop:step over an array of the given length
func sliceIndices(length int, start, stop, step *int) ([]int, error) {
	st := 1
	if step != nil {
		st = *step
	}
	if st == 0 {
		return nil, fmt.Errorf("%w: slice step cannot be zero", ErrIndex)
	}

	clamp := func(p *int, def, lo, hi int) int {
		if p == nil {
			return def
		}
		i := *p
		if i < 0 {
			i += length
		}
		if i < lo {
			return lo
		}
		if i > hi {
			return hi
		}
		return i
	}

	var lo, hi int
	if st > 0 {
		lo = clamp(start, 0, 0, length)
		hi = clamp(stop, length, 0, length)
	} else {
		lo = clamp(start, length-1, -1, length-1)
		hi = clamp(stop, -1, -1, length-1)
	}

	picks := []int{}
	if st > 0 {
		for i := lo; i < hi; i += st {
			picks = append(picks, i)
		}
	} else {
		for i := lo; i > hi; i += st {
			picks = append(picks, i)
		}
	}
	return picks, nil
}
