// Package expr evaluates column expressions for thresh.
//
// Expressions use a small infix grammar: arithmetic with
// elementwise broadcasting, chained comparisons, and/or/not, subscripts and
// slices, list literals and calls into a closed vocabulary of numeric
// functions (sin, sqrt, mean, arange, interp, ...). Names are resolved
// against a caller-supplied source mapping; no other names exist.
//
// Example usage:
//
//	source := map[string]interface{}{"A": []float64{1, 2, 3}}
//	result, err := expr.Evaluate(source, "A**2 + 1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// result is []float64{2, 5, 10}
//
// An expression evaluating to None yields a nil result, which callers
// treat as a request to delete a column.
package expr
