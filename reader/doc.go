// Package reader loads tables from files and standard input.
//
// The input format is chosen by file suffix:
//
//   - .csv: comma-delimited text with a header row
//   - .json: a top-level object, loaded as a namespace-only table
//   - .parquet: flat numeric or boolean columns
//   - anything else: whitespace-delimited text with a header row
//
// A trailing .gz or .zst suffix decompresses the stream first, and the
// remaining suffix picks the format.
//
// # Text files
//
// Blank lines and lines starting with '#' are skipped. Simulation history
// files, which print a banner above the data, are recognised by a header line
// framed by a rule of dashes above it and a rule of equals signs below it,
// both as long as the header line:
//
//	some preamble
//	-------------
//	  time stress
//	=============
//	   0.0   1.0
//
// Everything above the last such frame is discarded.
//
// # Standard input
//
// The path "-" reads whitespace-delimited text from standard input; "-.csv",
// "-.json" and the other suffixes select a different format:
//
//	loader := reader.NewLoader(reader.WithStdin(os.Stdin))
//	tbl, err := loader.Load(reader.Source{Path: "-.csv", Alias: "A"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Multiple sources
//
// LoadAll reads independent sources concurrently and returns the tables in
// argument order. At most one source may be standard input.
package reader
