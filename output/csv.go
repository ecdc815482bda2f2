package output

import (
	"io"

	"github.com/vegasq/thresh/table"
)

// CSVFormatter outputs tables as comma-delimited fixed-width text. The
// reader trims fields, so the padding survives a reload.
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes a header row and one record per table row. Namespace-only
// tables are written as JSON.
func (c *CSVFormatter) Format(tbl *table.Table) error {
	return tbl.WriteText(c.writer, ",")
}
