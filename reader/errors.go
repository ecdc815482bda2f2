package reader

import "errors"

var (
	// ErrFileNotFound is returned when a source path does not exist
	ErrFileNotFound = errors.New("file not found")

	// ErrNonUniqueHeaders is returned when a header row repeats a column name
	ErrNonUniqueHeaders = errors.New("non-unique headers")

	// ErrUnsupportedInput is returned for content that cannot become a table
	ErrUnsupportedInput = errors.New("unsupported input")
)
