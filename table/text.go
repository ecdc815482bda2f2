package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Digits is the number of digits written after the decimal point
const Digits = 17

// numberWidth is the width of the widest value AsText can produce
var numberWidth = len(fmt.Sprintf("%+.*e", Digits, -1.0e+301))

// ColumnWidth returns the padded field width: the widest number or header,
// plus one separating space.
func (t *Table) ColumnWidth() int {
	width := numberWidth
	for _, key := range t.content.keys {
		if len(key) > width {
			width = len(key)
		}
	}
	return width + 1
}

// AsText renders the table. Numeric tables are written as sign-prefixed
// scientific notation, every field right-aligned to ColumnWidth and joined
// by delimiter. Tables without the
// equal-length invariant (namespace-only tables) are rendered as JSON.
func (t *Table) AsText(delimiter string) (string, error) {
	var buf bytes.Buffer
	if err := t.WriteText(&buf, delimiter); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteText writes AsText output to w
func (t *Table) WriteText(w io.Writer, delimiter string) error {
	if !t.lengthChecked {
		return t.WriteJSON(w)
	}
	if t.content.Len() == 0 {
		return nil
	}

	width := t.ColumnWidth()
	keys := t.content.keys
	fields := make([]string, len(keys))

	for i, key := range keys {
		fields[i] = fmt.Sprintf("%*s", width, key)
	}
	if _, err := io.WriteString(w, strings.Join(fields, delimiter)+"\n"); err != nil {
		return err
	}

	cols := make([][]float64, len(keys))
	for i, key := range keys {
		cols[i] = t.content.values[key].([]float64)
	}

	for row := 0; row < t.rows; row++ {
		for i := range cols {
			fields[i] = fmt.Sprintf("%+*.*e", width, Digits, cols[i][row])
		}
		if _, err := io.WriteString(w, strings.Join(fields, delimiter)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the table as one JSON object whose keys follow the
// column order. Numeric columns become JSON arrays.
func (t *Table) WriteJSON(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, key := range t.content.keys {
		if i > 0 {
			buf.WriteString(",")
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(t.content.values[key])
		if err != nil {
			return fmt.Errorf("encoding %q: %w", key, err)
		}
		buf.WriteString("\n  ")
		buf.Write(k)
		buf.WriteString(": ")
		buf.Write(v)
	}
	if t.content.Len() > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	_, err := w.Write(buf.Bytes())
	return err
}
