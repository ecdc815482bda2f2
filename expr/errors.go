package expr

import "errors"

var (
	// ErrNamingConflict is returned when a source name shadows a builtin
	ErrNamingConflict = errors.New("naming conflict with built-in")

	// ErrUndefinedName is returned when an expression references an unknown name
	ErrUndefinedName = errors.New("name is not defined")

	// ErrLengthMismatch is returned when arrays of incompatible lengths are combined
	ErrLengthMismatch = errors.New("array lengths do not match")

	// ErrSyntax is returned when an expression cannot be parsed
	ErrSyntax = errors.New("syntax error")

	// ErrType is returned when an operation is applied to unsupported operand types
	ErrType = errors.New("unsupported operand type")

	// ErrArity is returned when a builtin is called with the wrong number of arguments
	ErrArity = errors.New("wrong number of arguments")

	// ErrIndex is returned for out-of-range or otherwise invalid subscripts
	ErrIndex = errors.New("invalid index")

	// ErrAmbiguousTruth is returned when a multi-element array is used as a condition
	ErrAmbiguousTruth = errors.New("truth value of an array with more than one element is ambiguous; use all() or any()")
)
