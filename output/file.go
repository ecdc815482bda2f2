package output

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/vegasq/thresh/reader"
	"github.com/vegasq/thresh/table"
)

// WriteFile writes tbl to path in the format its suffix selects
func WriteFile(path string, tbl *table.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "failed to close %s", path)
		}
	}()

	w, err := compress(f, path)
	if err != nil {
		return err
	}
	if err := ForSuffix(path, w).Format(tbl); err != nil {
		_ = w.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	if err := w.Close(); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// Burst writes each column of tbl to its own file named
// <stem>_<column><suffixes>, so "run.csv.gz" yields "run_a.csv.gz".
func Burst(path string, tbl *table.Table) error {
	if tbl.NamespaceOnly() {
		return errors.Wrap(ErrUnsupportedTable, "namespace-only tables cannot be burst")
	}

	for _, col := range tbl.Columns() {
		if strings.ContainsAny(col, `/\`) {
			return errors.Wrapf(ErrUnsafeColumnName, "column %q", col)
		}
	}

	stem, suffix := splitSuffix(path)
	for _, col := range tbl.Columns() {
		values, _ := tbl.Column(col)
		content := table.NewContent()
		content.Set(col, values)
		single, err := table.New(content)
		if err != nil {
			return err
		}
		if err := WriteFile(stem+"_"+col+suffix, single); err != nil {
			return err
		}
	}
	return nil
}

// splitSuffix separates the format suffix, including any compression
// suffix, from the rest of the path
func splitSuffix(path string) (string, string) {
	_, compression := reader.Detect(path)
	rest := path
	var outer string
	if compression != reader.CompressionNone {
		outer = filepath.Ext(rest)
		rest = strings.TrimSuffix(rest, outer)
	}
	inner := filepath.Ext(rest)
	return strings.TrimSuffix(rest, inner), inner + outer
}

// compress wraps w in the encoder implied by the suffix of path
func compress(w io.Writer, path string) (io.WriteCloser, error) {
	_, compression := reader.Detect(path)
	switch compression {
	case reader.CompressionGzip:
		return gzip.NewWriter(w), nil
	case reader.CompressionZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to start zstd stream for %s", path)
		}
		return zw, nil
	default:
		return nopCloser{w}, nil
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
