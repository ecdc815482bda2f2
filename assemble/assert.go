package assemble

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/vegasq/thresh/expr"
)

// Assert evaluates each expression against source and reports the outcome
// on w. It returns true only if every expression was truthy.
func (a *Assembler) Assert(source map[string]interface{}, expressions []string, w io.Writer) (bool, error) {
	passed := true
	for _, expression := range expressions {
		value, err := a.evaluator.Evaluate(source, expression)
		if err != nil {
			return false, err
		}

		ok, err := expr.Truthy(value)
		if err != nil {
			return false, fmt.Errorf("asserting %q: %w", expression, err)
		}

		verdict := "False"
		if ok {
			verdict = "True"
		} else {
			passed = false
		}
		if _, err := fmt.Fprintf(w, "Evaluated to %s: %s\n", verdict, expression); err != nil {
			return false, errors.Wrap(err, "writing assert result")
		}
	}
	return passed, nil
}
