package table

import "errors"

var (
	// ErrInvalidAlias is returned when an alias is not an identifier or is a
	// reserved word of the expression language
	ErrInvalidAlias = errors.New("invalid alias")

	// ErrInvalidContentType is returned when the content is missing or a
	// length-checked column is not a numeric array
	ErrInvalidContentType = errors.New("invalid content type")

	// ErrNonTextKey is returned when a column name is empty or contains
	// whitespace
	ErrNonTextKey = errors.New("invalid column name")

	// ErrUnevenLengths is returned when columns of a length-checked table
	// differ in length
	ErrUnevenLengths = errors.New("columns have varying lengths")
)
