package reader

import (
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// ColumnInfo describes one leaf column of a parquet schema
type ColumnInfo struct {
	Name         string
	PhysicalType string
	LogicalType  string
	Optional     bool
}

// columnsOf returns the leaf columns of a flat schema whose values can be read
// as numbers. Nested, repeated and non-numeric columns are rejected.
func columnsOf(schema *parquet.Schema) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	for _, field := range schema.Fields() {
		if len(field.Fields()) > 0 {
			return nil, fmt.Errorf("%w: nested column %q", ErrUnsupportedInput, field.Name())
		}
		if field.Repeated() {
			return nil, fmt.Errorf("%w: repeated column %q", ErrUnsupportedInput, field.Name())
		}

		physical := physicalType(field)
		if !numericPhysical(physical) {
			return nil, fmt.Errorf("%w: column %q has type %s", ErrUnsupportedInput, field.Name(), physical)
		}
		if logical := logicalType(field); logical != "" && !numericLogical(logical) {
			return nil, fmt.Errorf("%w: column %q has logical type %s", ErrUnsupportedInput, field.Name(), logical)
		}

		columns = append(columns, ColumnInfo{
			Name:         field.Name(),
			PhysicalType: physical,
			LogicalType:  logicalType(field),
			Optional:     field.Optional(),
		})
	}
	return columns, nil
}

// physicalType returns the physical type name of a parquet field
func physicalType(field parquet.Field) string {
	if field.Type() == nil {
		return "GROUP"
	}

	switch field.Type().Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT"
	case parquet.Double:
		return "DOUBLE"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}

// logicalType returns the logical type name of a parquet field, if any
func logicalType(field parquet.Field) string {
	if field.Type() == nil {
		return ""
	}
	lt := field.Type().LogicalType()
	if lt == nil {
		return ""
	}
	return lt.String()
}

func numericPhysical(physical string) bool {
	switch physical {
	case "BOOLEAN", "INT32", "INT64", "FLOAT", "DOUBLE":
		return true
	default:
		return false
	}
}

// numericLogical rejects annotations that give integers a non-numeric meaning
func numericLogical(logical string) bool {
	for _, prefix := range []string{"DATE", "TIME", "DECIMAL", "STRING", "ENUM", "JSON"} {
		if strings.HasPrefix(logical, prefix) {
			return false
		}
	}
	return true
}
