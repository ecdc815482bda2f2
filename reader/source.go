package reader

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// Stdin is the path that reads whitespace-delimited text from standard input
const Stdin = "-"

// Format is the layout of a source
type Format int

const (
	// FormatText is whitespace-delimited text
	FormatText Format = iota
	// FormatCSV is comma-delimited text
	FormatCSV
	// FormatJSON is a JSON object
	FormatJSON
	// FormatParquet is an Apache Parquet file
	FormatParquet
)

// Compression is the stream encoding of a source
type Compression int

const (
	// CompressionNone reads the stream as is
	CompressionNone Compression = iota
	// CompressionGzip decompresses gzip
	CompressionGzip
	// CompressionZstd decompresses zstandard
	CompressionZstd
)

// Source names one input and the alias its table is bound to
type Source struct {
	Path  string
	Alias string
}

// IsStdin reports whether path is a standard input sentinel: "-" or "-"
// followed by a suffix such as ".csv".
func IsStdin(path string) bool {
	if path == Stdin {
		return true
	}
	return strings.HasPrefix(path, Stdin+".") && !strings.ContainsAny(path, `/\`)
}

// Detect returns the compression and format implied by the suffixes of path.
// Suffixes are matched case-insensitively.
func Detect(path string) (Format, Compression) {
	name := strings.ToLower(filepath.Base(path))

	compression := CompressionNone
	switch {
	case strings.HasSuffix(name, ".gz"):
		compression = CompressionGzip
		name = strings.TrimSuffix(name, ".gz")
	case strings.HasSuffix(name, ".zst"):
		compression = CompressionZstd
		name = strings.TrimSuffix(name, ".zst")
	}

	switch filepath.Ext(name) {
	case ".csv":
		return FormatCSV, compression
	case ".json":
		return FormatJSON, compression
	case ".parquet":
		return FormatParquet, compression
	default:
		return FormatText, compression
	}
}

// open returns the decompressed stream of src
func (l *Loader) open(src Source, compression Compression) (io.ReadCloser, error) {
	var raw io.ReadCloser
	if IsStdin(src.Path) {
		if l.stdin == nil {
			return nil, errors.Wrap(ErrUnsupportedInput, "standard input is not available")
		}
		raw = io.NopCloser(l.stdin)
	} else {
		f, err := os.Open(src.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrapf(ErrFileNotFound, "%s", src.Path)
			}
			return nil, errors.Wrapf(err, "failed to open %s", src.Path)
		}
		stat, err := f.Stat()
		if err != nil {
			_ = f.Close()
			return nil, errors.Wrapf(err, "failed to stat %s", src.Path)
		}
		if stat.IsDir() {
			_ = f.Close()
			return nil, errors.Wrapf(ErrFileNotFound, "%s is a directory", src.Path)
		}
		raw = f
	}

	switch compression {
	case CompressionGzip:
		zr, err := gzip.NewReader(raw)
		if err != nil {
			_ = raw.Close()
			return nil, errors.Wrapf(ErrUnsupportedInput, "%s: %v", src.Path, err)
		}
		return &stackedCloser{Reader: zr, closers: []io.Closer{zr, raw}}, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(raw)
		if err != nil {
			_ = raw.Close()
			return nil, errors.Wrapf(ErrUnsupportedInput, "%s: %v", src.Path, err)
		}
		rc := zr.IOReadCloser()
		return &stackedCloser{Reader: rc, closers: []io.Closer{rc, raw}}, nil
	default:
		return raw, nil
	}
}

// stackedCloser closes a decoder and the stream beneath it
type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
