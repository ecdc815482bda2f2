package output

import (
	"io"

	"github.com/vegasq/thresh/table"
)

// TextFormatter outputs tables as padded columns
type TextFormatter struct {
	writer io.Writer
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// SetOutput sets the output writer
func (f *TextFormatter) SetOutput(w io.Writer) {
	f.writer = w
}

// Format writes the table with every field right-aligned to the column width
func (f *TextFormatter) Format(tbl *table.Table) error {
	return tbl.WriteText(f.writer, "")
}
