// Package output writes tables to streams and files.
//
// Every format implements the Formatter interface:
//
//   - Text: fixed-width, sign-prefixed scientific notation
//   - CSV: the same numbers separated by commas
//   - JSON: one object mapping column names to arrays, in column order
//   - Parquet: one required DOUBLE column per table column
//
// Namespace-only tables have no common row count and are written as JSON by
// the text, CSV and JSON formatters; the parquet formatter rejects them.
//
// # Basic Usage
//
//	formatter := output.NewTextFormatter(os.Stdout)
//	if err := formatter.Format(tbl); err != nil {
//	    log.Fatal(err)
//	}
//
// # Files
//
// WriteFile picks the formatter from the file suffix and compresses the
// stream when the name ends in .gz or .zst:
//
//	if err := output.WriteFile("result.csv.gz", tbl); err != nil {
//	    log.Fatal(err)
//	}
//
// Burst writes every column to its own file, named after the column:
//
//	// writes run_a.txt, run_b.txt, ...
//	if err := output.Burst("run.txt", tbl); err != nil {
//	    log.Fatal(err)
//	}
package output
