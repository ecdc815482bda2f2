package output

import (
	"io"

	"github.com/vegasq/thresh/table"
)

// JSONFormatter outputs a table as one JSON object
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes the table as an object whose keys follow the column order
func (j *JSONFormatter) Format(tbl *table.Table) error {
	return tbl.WriteJSON(j.writer)
}
