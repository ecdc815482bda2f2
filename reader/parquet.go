package reader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/thresh/table"
)

// rowBatch is the number of rows read from a parquet file per call
const rowBatch = 1024

// ColumnOrderKey is the key/value metadata entry holding a JSON array of the
// column names in table order. Parquet groups sort their fields by name, so
// writers record the original order here.
const ColumnOrderKey = "thresh.column_order"

// parseParquet reads every row of a parquet stream into float64 columns in
// schema order. Null values become NaN.
func parseParquet(r io.Reader) (*table.Content, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}

	pqFile, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open parquet file: %v", ErrUnsupportedInput, err)
	}

	columns, err := columnsOf(pqFile.Schema())
	if err != nil {
		return nil, err
	}

	values := make([][]float64, len(columns))
	for i := range values {
		values[i] = make([]float64, 0, pqFile.NumRows())
	}

	reader := parquet.NewReader(pqFile)
	defer func() { _ = reader.Close() }()

	rows := make([]parquet.Row, rowBatch)
	for {
		n, err := reader.ReadRows(rows)
		for _, row := range rows[:n] {
			for _, v := range row {
				col := v.Column()
				if col < 0 || col >= len(columns) {
					continue
				}
				values[col] = append(values[col], valueToFloat(v))
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if n == 0 {
			break
		}
	}

	byName := make(map[string][]float64, len(columns))
	names := make([]string, len(columns))
	for i, c := range columns {
		byName[c.Name] = values[i]
		names[i] = c.Name
	}
	if order, ok := pqFile.Lookup(ColumnOrderKey); ok {
		names = restoreOrder(names, order)
	}

	content := table.NewContent()
	for _, name := range names {
		content.Set(name, byName[name])
	}
	return content, nil
}

// restoreOrder returns the names listed in the recorded order, or names
// unchanged when the record is not a permutation of them.
func restoreOrder(names []string, recorded string) []string {
	var order []string
	if err := json.Unmarshal([]byte(recorded), &order); err != nil || len(order) != len(names) {
		return names
	}
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	for _, n := range order {
		if !present[n] {
			return names
		}
		delete(present, n)
	}
	return order
}

// valueToFloat converts one leaf value of a supported kind
func valueToFloat(v parquet.Value) float64 {
	if v.IsNull() {
		return math.NaN()
	}
	switch v.Kind() {
	case parquet.Boolean:
		if v.Boolean() {
			return 1
		}
		return 0
	case parquet.Int32:
		return float64(v.Int32())
	case parquet.Int64:
		return float64(v.Int64())
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	default:
		return math.NaN()
	}
}
