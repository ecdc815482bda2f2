// Package table provides the in-memory columnar representation of one
// tabular source.
//
// A Table is an insertion-ordered mapping from column name to column values
// plus an optional alias and a provenance name. Regular tables hold
// equal-length []float64 columns. Tables loaded from JSON are marked
// namespace-only: their entries are arbitrary JSON values that take part in
// name resolution but are not columns in the uniform-length sense.
//
// # Basic Usage
//
//	content := table.NewContent()
//	content.Set("time", []float64{0, 1, 2})
//	content.Set("stress", []float64{0, 2, 3})
//
//	tbl, err := table.New(content, table.WithAlias("A"), table.WithName("run1.txt"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	text, _ := tbl.AsText("")
//	fmt.Print(text)
package table
