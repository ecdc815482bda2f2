package table

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
)

var bannerStyle = lipgloss.NewStyle().Bold(true)

// ListHeaders writes a human-readable listing of the table headers: a
// col/length/header table for length-checked tables, or a name/type table
// for namespace-only tables, which have no common length.
func (t *Table) ListHeaders(w io.Writer) error {
	if _, err := fmt.Fprintln(w, bannerStyle.Render("==> "+t.Label()+" <==")); err != nil {
		return err
	}

	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetBorder(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)

	if !t.lengthChecked {
		tw.SetHeader([]string{"name", "type"})
		for _, key := range t.content.keys {
			tw.Append([]string{key, KindOf(t.content.values[key])})
		}
	} else {
		tw.SetHeader([]string{"col", "length", "header"})
		for i, key := range t.content.keys {
			tw.Append([]string{strconv.Itoa(i + 1), strconv.Itoa(t.rows), key})
		}
	}

	tw.Render()
	return nil
}

// BasicListHeaders writes one header per line, for scripting
func (t *Table) BasicListHeaders(w io.Writer) error {
	for _, key := range t.content.keys {
		if _, err := fmt.Fprintln(w, key); err != nil {
			return err
		}
	}
	return nil
}

// KindOf names the JSON kind of a value
func KindOf(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case float64, int, int64:
		return "number"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []float64, []bool, []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
