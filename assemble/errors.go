package assemble

import "errors"

var (
	// ErrAmbiguousRequest is returned when a token names an ambiguous column or alias
	ErrAmbiguousRequest = errors.New("ambiguous request")

	// ErrUnresolvedToken is returned when a token is neither a name nor an assignment
	ErrUnresolvedToken = errors.New("alias/column not found")

	// ErrEmptyLabel is returned for an assignment without a column name
	ErrEmptyLabel = errors.New("no column label given")

	// ErrEmptyExpression is returned for an assignment without an expression
	ErrEmptyExpression = errors.New("no expression given")

	// ErrRemoveNotFound is returned when None is assigned to a column not in the output
	ErrRemoveNotFound = errors.New("failed to remove column: not found")
)
