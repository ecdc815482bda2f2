package assemble

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/vegasq/thresh/expr"
	"github.com/vegasq/thresh/internal/logging"
	"github.com/vegasq/thresh/namespace"
	"github.com/vegasq/thresh/table"
)

// Assembler runs cat and assert stages
type Assembler struct {
	evaluator *expr.Evaluator
	logger    *slog.Logger
}

// Option configures an Assembler
type Option func(*Assembler)

// WithEvaluator sets the expression evaluator
func WithEvaluator(e *expr.Evaluator) Option {
	return func(a *Assembler) { a.evaluator = e }
}

// WithLogger sets the logger that receives clobber and remove warnings
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) { a.logger = l }
}

// New creates an Assembler
func New(opts ...Option) *Assembler {
	a := &Assembler{}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logging.WithComponent("assemble")
	}
	if a.evaluator == nil {
		a.evaluator = expr.NewEvaluator(expr.WithLogger(a.logger))
	}
	return a
}

// Result is the outcome of a cat stage
type Result struct {
	// Table is the assembled output
	Table *table.Table
	// Namespace holds the unambiguous input names overlaid with the output columns
	Namespace map[string]interface{}
}

// output accumulates columns, warning when one is overwritten or removed
type output struct {
	content *table.Content
	logger  *slog.Logger
}

func (o *output) set(name string, values interface{}) {
	if o.content.Has(name) {
		o.logger.Warn("clobbering column", "column", name)
	}
	o.content.Set(name, values)
}

func (o *output) remove(name string) error {
	if !o.content.Has(name) {
		return fmt.Errorf("%w: %q", ErrRemoveNotFound, name)
	}
	o.logger.Warn("removing column", "column", name)
	o.content.Delete(name)
	return nil
}

// Assemble resolves tables and applies tokens in order. With no tokens every
// column of every regular table is copied, without checking for ambiguity.
func (a *Assembler) Assemble(tables []*table.Table, tokens []string) (*Result, error) {
	ns, err := namespace.Resolve(tables)
	if err != nil {
		return nil, err
	}
	source := ns.Source()
	out := &output{content: table.NewContent(), logger: a.logger}

	if len(tokens) == 0 {
		for _, t := range tables {
			if t.NamespaceOnly() {
				continue
			}
			for _, column := range t.Columns() {
				values, _ := t.Column(column)
				out.set(column, values)
			}
		}
	}

	for _, token := range tokens {
		if err := a.apply(ns, source, out, token); err != nil {
			return nil, err
		}
	}

	result, err := finalize(out.content)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]interface{}, len(source)+out.content.Len())
	for name, values := range source {
		merged[name] = values
	}
	for _, name := range result.Columns() {
		merged[name], _ = result.Column(name)
	}
	return &Result{Table: result, Namespace: merged}, nil
}

// apply handles one token: ambiguous > alias > column > aliased column > assignment
func (a *Assembler) apply(ns *namespace.Namespace, source map[string]interface{}, out *output, token string) error {
	if ns.Ambiguous.Has(token) {
		return fmt.Errorf("%w: %q", ErrAmbiguousRequest, token)
	}

	if t, ok := ns.Table(token); ok {
		for _, column := range t.Columns() {
			values, _ := t.Column(column)
			out.set(column, values)
		}
		return nil
	}

	if ref, ok := ns.Column(token); ok {
		out.set(ref.Column, ref.Values())
		return nil
	}

	if ref, ok := ns.AliasedColumn(token); ok {
		out.set(ref.Column, ref.Values())
		return nil
	}

	head, expression, found := strings.Cut(token, "=")
	if !found {
		return fmt.Errorf("%w: %q", ErrUnresolvedToken, token)
	}
	head = strings.TrimSpace(head)
	expression = strings.TrimSpace(expression)
	if head == "" {
		return fmt.Errorf("%w: %q", ErrEmptyLabel, token)
	}
	if expression == "" {
		return fmt.Errorf("%w: %q", ErrEmptyExpression, token)
	}

	scope := make(map[string]interface{}, len(source)+out.content.Len())
	for name, values := range source {
		scope[name] = values
	}
	for _, name := range out.content.Keys() {
		scope[name], _ = out.content.Get(name)
	}

	value, err := a.evaluator.Evaluate(scope, expression)
	if err != nil {
		return err
	}
	if value == nil {
		return out.remove(head)
	}
	out.set(head, value)
	return nil
}

// finalize turns boolean arrays into 0/1 columns and validates the output
func finalize(content *table.Content) (*table.Table, error) {
	for _, name := range content.Keys() {
		values, _ := content.Get(name)
		if mask, ok := values.([]bool); ok {
			numeric := make([]float64, len(mask))
			for i, b := range mask {
				if b {
					numeric[i] = 1
				}
			}
			content.Set(name, numeric)
		}
	}
	return table.New(content)
}
