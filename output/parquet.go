package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/thresh/reader"
	"github.com/vegasq/thresh/table"
)

// ParquetFormatter outputs tables as parquet files
type ParquetFormatter struct {
	writer io.Writer
}

// NewParquetFormatter creates a new parquet formatter
func NewParquetFormatter(w io.Writer) *ParquetFormatter {
	return &ParquetFormatter{writer: w}
}

// SetOutput sets the output writer
func (p *ParquetFormatter) SetOutput(w io.Writer) {
	p.writer = w
}

// Format writes one required DOUBLE column per table column. Parquet groups
// order their fields by name, so the table's column order is stored in the
// file metadata under reader.ColumnOrderKey.
func (p *ParquetFormatter) Format(tbl *table.Table) error {
	if tbl.NamespaceOnly() {
		return fmt.Errorf("%w: parquet needs equal-length numeric columns", ErrUnsupportedTable)
	}

	group := parquet.Group{}
	values := make(map[string][]float64, tbl.Len())
	for _, col := range tbl.Columns() {
		group[col] = parquet.Leaf(parquet.DoubleType)
		values[col], _ = tbl.Float(col)
	}
	schema := parquet.NewSchema("thresh", group)

	// leaf index follows the schema's column order
	leaves := schema.Columns()
	ordered := make([][]float64, len(leaves))
	for i, path := range leaves {
		ordered[i] = values[path[0]]
	}

	order, err := json.Marshal(tbl.Columns())
	if err != nil {
		return fmt.Errorf("failed to encode column order: %w", err)
	}
	writer := parquet.NewWriter(p.writer, schema, parquet.KeyValueMetadata(reader.ColumnOrderKey, string(order)))
	rows := make([]parquet.Row, 0, tbl.Rows())
	for r := 0; r < tbl.Rows(); r++ {
		row := make(parquet.Row, len(ordered))
		for i, col := range ordered {
			row[i] = parquet.DoubleValue(col[r]).Level(0, 0, i)
		}
		rows = append(rows, row)
	}

	if _, err := writer.WriteRows(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
