package reader

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/vegasq/thresh/internal/logging"
	"github.com/vegasq/thresh/table"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func quietLoader(opts ...Option) *Loader {
	return NewLoader(append([]Option{WithLogger(logging.Discard())}, opts...)...)
}

func floats(t *testing.T, tbl *table.Table, name string) []float64 {
	t.Helper()
	values, ok := tbl.Float(name)
	if !ok {
		t.Fatalf("table has no numeric column %q (columns %v)", name, tbl.Columns())
	}
	return values
}

func TestLoad_Text(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		file        string
		data        string
		wantColumns []string
		wantFirst   []float64
	}{
		{
			name:        "whitespace",
			file:        "pass_a.txt",
			data:        "a b c\n7 8 2\n0 5 0\n1 2 3\n",
			wantColumns: []string{"a", "b", "c"},
			wantFirst:   []float64{7, 0, 1},
		},
		{
			name:        "csv with spaces",
			file:        "pass_c.csv",
			data:        "a, b ,c\n1.5, 2, 3\n-4e2,5,6\n",
			wantColumns: []string{"a", "b", "c"},
			wantFirst:   []float64{1.5, -400},
		},
		{
			name:        "suffix is case-insensitive",
			file:        "upper.CSV",
			data:        "x,y\n1,2\n",
			wantColumns: []string{"x", "y"},
			wantFirst:   []float64{1},
		},
		{
			name:        "comments and blank lines",
			file:        "comments.txt",
			data:        "# produced by a script\n\na b\n1 2\n\n# midway\n3 4\n",
			wantColumns: []string{"a", "b"},
			wantFirst:   []float64{1, 3},
		},
		{
			name: "history file",
			file: "history.txt",
			data: strings.Join([]string{
				"Simulation started",
				"a b",
				"-------",
				"time  x",
				"=======",
				"0.0 1.0",
				"0.5 2.0",
			}, "\n"),
			wantColumns: []string{"time", "x"},
			wantFirst:   []float64{0, 0.5},
		},
		{
			name: "last history frame wins",
			file: "restart.txt",
			data: strings.Join([]string{
				"-----",
				"a   b",
				"=====",
				"1   2",
				"---",
				"c d",
				"===",
				"3 4",
			}, "\n"),
			wantColumns: []string{"c", "d"},
			wantFirst:   []float64{3},
		},
		{
			name:        "header only",
			file:        "empty.txt",
			data:        "a b\n",
			wantColumns: []string{"a", "b"},
			wantFirst:   []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, []byte(tt.data))
			tbl, err := quietLoader().Load(Source{Path: path, Alias: "A"})
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cols := tbl.Columns(); !reflect.DeepEqual(cols, tt.wantColumns) {
				t.Errorf("Columns() = %v, want %v", cols, tt.wantColumns)
			}
			if got := floats(t, tbl, tt.wantColumns[0]); !reflect.DeepEqual(got, tt.wantFirst) {
				t.Errorf("%s = %v, want %v", tt.wantColumns[0], got, tt.wantFirst)
			}
			if tbl.Alias() != "A" || tbl.Name() != path {
				t.Errorf("Alias(), Name() = %q, %q, want A, %q", tbl.Alias(), tbl.Name(), path)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		data    string
		wantErr error
	}{
		{"duplicate headers", "dup.txt", "a b a\n1 2 3\n", ErrNonUniqueHeaders},
		{"ragged row", "ragged.txt", "a b\n1 2\n3\n", ErrUnsupportedInput},
		{"not a number", "word.txt", "a b\n1 two\n", ErrUnsupportedInput},
		{"empty file", "blank.txt", "\n\n", ErrUnsupportedInput},
		{"rules of the wrong length", "rules.txt", "----\na b\n===\n1 2\n", ErrUnsupportedInput},
		{"json array", "list.json", "[1, 2]", ErrUnsupportedInput},
		{"json trailing data", "trail.json", `{"a": 1} {"b": 2}`, ErrUnsupportedInput},
		{"invalid parquet", "bad.parquet", "not parquet", ErrUnsupportedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, []byte(tt.data))
			_, err := quietLoader().Load(Source{Path: path})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := quietLoader().Load(Source{Path: filepath.Join(t.TempDir(), "missing.txt")})
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Load() error = %v, want %v", err, ErrFileNotFound)
	}
}

func TestLoad_InvalidAlias(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", []byte("a\n1\n"))
	_, err := quietLoader().Load(Source{Path: path, Alias: "None"})
	if !errors.Is(err, table.ErrInvalidAlias) {
		t.Errorf("Load() error = %v, want %v", err, table.ErrInvalidAlias)
	}
}

func TestLoad_Stdin(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		input string
	}{
		{"whitespace", "-", "a b\n1 3\n2 4\n"},
		{"csv", "-.csv", "a,b\n1,3\n2,4"},
		{"upper csv", "-.CSV", "a,b\n1,3\n2,4"},
		{"text suffix", "-.txt", "a b\n1 3\n2 4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := quietLoader(WithStdin(strings.NewReader(tt.input)))
			tbl, err := loader.Load(Source{Path: tt.path, Alias: "foo"})
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got := floats(t, tbl, "b"); !reflect.DeepEqual(got, []float64{3, 4}) {
				t.Errorf("b = %v, want [3 4]", got)
			}
			if tbl.Name() != tt.path {
				t.Errorf("Name() = %q, want %q", tbl.Name(), tt.path)
			}
		})
	}
}

func TestLoad_StdinUnavailable(t *testing.T) {
	_, err := quietLoader().Load(Source{Path: "-"})
	if !errors.Is(err, ErrUnsupportedInput) {
		t.Errorf("Load() error = %v, want %v", err, ErrUnsupportedInput)
	}
}

func TestLoad_JSON(t *testing.T) {
	data := `{"zeta": 1, "approx_pi": 3.0, "name": "run", "series": [1, 2, 3], "flags": [true, false], "nested": {"k": [4]}}`
	path := writeFile(t, t.TempDir(), "data.json", []byte(data))

	tbl, err := quietLoader().Load(Source{Path: path, Alias: "JSON_"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !tbl.NamespaceOnly() {
		t.Error("NamespaceOnly() = false, want true")
	}
	if cols := tbl.Columns(); !reflect.DeepEqual(cols, []string{"zeta", "approx_pi", "name", "series", "flags", "nested"}) {
		t.Errorf("Columns() = %v, want file key order", cols)
	}

	want := map[string]interface{}{
		"approx_pi": 3.0,
		"name":      "run",
		"series":    []float64{1, 2, 3},
		"flags":     []bool{true, false},
		"nested":    map[string]interface{}{"k": []float64{4}},
	}
	for name, w := range want {
		got, _ := tbl.Column(name)
		if !reflect.DeepEqual(got, w) {
			t.Errorf("%s = %#v, want %#v", name, got, w)
		}
	}
}

func TestLoad_JSONFromStdin(t *testing.T) {
	loader := quietLoader(WithStdin(strings.NewReader(`{"approx_pi": 3.0}`)))
	tbl, err := loader.Load(Source{Path: "-.json", Alias: "bar2"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got, _ := tbl.Column("approx_pi"); got != 3.0 {
		t.Errorf("approx_pi = %v, want 3", got)
	}
}

func TestLoad_Compressed(t *testing.T) {
	dir := t.TempDir()
	text := []byte("a,b\n1,3\n2,4\n")

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	if _, err := gw.Write(text); err != nil {
		t.Fatalf("gzip write error = %v", err)
	}
	if err := gw.Close(); err != nil {
		t.Fatalf("gzip close error = %v", err)
	}

	var zs bytes.Buffer
	zw, err := zstd.NewWriter(&zs)
	if err != nil {
		t.Fatalf("zstd.NewWriter() error = %v", err)
	}
	if _, err := zw.Write(text); err != nil {
		t.Fatalf("zstd write error = %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zstd close error = %v", err)
	}

	for name, data := range map[string][]byte{"data.csv.gz": gz.Bytes(), "data.csv.zst": zs.Bytes()} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, dir, name, data)
			tbl, err := quietLoader().Load(Source{Path: path})
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got := floats(t, tbl, "b"); !reflect.DeepEqual(got, []float64{3, 4}) {
				t.Errorf("b = %v, want [3 4]", got)
			}
		})
	}
}

func TestLoad_CorruptGzip(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.txt.gz", []byte("plain text"))
	_, err := quietLoader().Load(Source{Path: path})
	if !errors.Is(err, ErrUnsupportedInput) {
		t.Errorf("Load() error = %v, want %v", err, ErrUnsupportedInput)
	}
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	var sources []Source
	for i, name := range []string{"one.txt", "two.txt", "three.txt", "four.txt"} {
		data := strings.Repeat("x", i+1) + "\n1\n"
		sources = append(sources, Source{Path: writeFile(t, dir, name, []byte(data))})
	}

	tables, err := quietLoader().LoadAll(context.Background(), sources)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	for i, tbl := range tables {
		if want := strings.Repeat("x", i+1); tbl.Columns()[0] != want {
			t.Errorf("tables[%d] column = %q, want %q", i, tbl.Columns()[0], want)
		}
	}
}

func TestLoadAll_Errors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", []byte("a\n1\n"))

	_, err := quietLoader().LoadAll(context.Background(), []Source{{Path: good}, {Path: filepath.Join(dir, "nope.txt")}})
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("LoadAll() error = %v, want %v", err, ErrFileNotFound)
	}

	loader := quietLoader(WithStdin(strings.NewReader("a\n1\n")))
	_, err = loader.LoadAll(context.Background(), []Source{{Path: "-"}, {Path: "-.csv"}})
	if !errors.Is(err, ErrUnsupportedInput) {
		t.Errorf("LoadAll() with stdin twice error = %v, want %v", err, ErrUnsupportedInput)
	}
}

func TestIsStdin(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"-", true},
		{"-.csv", true},
		{"-.JSON", true},
		{"--", false},
		{"-.csv/x", false},
		{"data.csv", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsStdin(tt.path); got != tt.want {
			t.Errorf("IsStdin(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		path            string
		wantFormat      Format
		wantCompression Compression
	}{
		{"a.txt", FormatText, CompressionNone},
		{"a", FormatText, CompressionNone},
		{"a.csv", FormatCSV, CompressionNone},
		{"dir.csv/a.dat", FormatText, CompressionNone},
		{"a.JSON", FormatJSON, CompressionNone},
		{"a.parquet", FormatParquet, CompressionNone},
		{"a.csv.gz", FormatCSV, CompressionGzip},
		{"a.gz", FormatText, CompressionGzip},
		{"a.json.zst", FormatJSON, CompressionZstd},
		{"-.csv", FormatCSV, CompressionNone},
	}

	for _, tt := range tests {
		format, compression := Detect(tt.path)
		if format != tt.wantFormat || compression != tt.wantCompression {
			t.Errorf("Detect(%q) = %v, %v, want %v, %v", tt.path, format, compression, tt.wantFormat, tt.wantCompression)
		}
	}
}
