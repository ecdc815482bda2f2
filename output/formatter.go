package output

import (
	"errors"
	"io"

	"github.com/vegasq/thresh/reader"
	"github.com/vegasq/thresh/table"
)

// ErrUnsupportedTable is returned when a format cannot represent a table
var ErrUnsupportedTable = errors.New("table cannot be written in this format")

// ErrUnsafeColumnName is returned when a column name cannot be used as part
// of a file name
var ErrUnsafeColumnName = errors.New("column name cannot be used in a file name")

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to write a table in the target format
// and SetOutput to change the output destination.
type Formatter interface {
	// Format writes the table in the formatter's specific format
	Format(tbl *table.Table) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// ForSuffix returns the formatter for a file name or bare suffix such as
// ".csv". Unknown suffixes get the text formatter; compression suffixes are
// ignored.
func ForSuffix(suffix string, w io.Writer) Formatter {
	format, _ := reader.Detect(suffix)
	switch format {
	case reader.FormatCSV:
		return NewCSVFormatter(w)
	case reader.FormatJSON:
		return NewJSONFormatter(w)
	case reader.FormatParquet:
		return NewParquetFormatter(w)
	default:
		return NewTextFormatter(w)
	}
}
