package cli

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vegasq/thresh/reader"
)

// threshFiles writes the three fixture files and returns their paths
func threshFiles(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	files := []struct{ name, data string }{
		{"pass_a.txt", "a b c\n7 8 2\n0 5 0\n1 2 3\n3 4 5\n7 1 4\n"},
		{"pass_b.txt", "d e\n1 2\n3 4\n"},
		{"pass_c.csv", "f,g\n1,2\n"},
	}
	var paths []string
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(f.data), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", f.name, err)
		}
		paths = append(paths, path)
	}
	return paths
}

func TestParse_Stages(t *testing.T) {
	files := threshFiles(t)

	tests := []struct {
		name string
		args []string
		want *Instructions
	}{
		{
			name: "no arguments",
			args: nil,
			want: &Instructions{Action: ActionHelp},
		},
		{
			name: "help word",
			args: []string{files[0], "help"},
			want: &Instructions{Action: ActionHelp},
		},
		{
			name: "files only",
			args: []string{files[0], files[1]},
			want: &Instructions{
				Gather: []reader.Source{{Path: files[0]}, {Path: files[1]}},
				Action: ActionPrint,
				Target: ".txt",
			},
		},
		{
			name: "aliases",
			args: []string{"A=" + files[0], files[1], "z=" + files[2], "cat"},
			want: &Instructions{
				Gather: []reader.Source{{Path: files[0], Alias: "A"}, {Path: files[1]}, {Path: files[2], Alias: "z"}},
				Cat:    true,
				Tokens: []string{},
				Action: ActionPrint,
				Target: ".txt",
			},
		},
		{
			name: "cat tokens then print suffix",
			args: []string{"cat", "t=linspace(0,1,5)", "f=t**2", "print", "csv"},
			want: &Instructions{
				Cat:    true,
				Tokens: []string{"t=linspace(0,1,5)", "f=t**2"},
				Action: ActionPrint,
				Target: ".csv",
			},
		},
		{
			name: "list",
			args: []string{files[0], "list"},
			want: &Instructions{Gather: []reader.Source{{Path: files[0]}}, Action: ActionList, Target: ".txt"},
		},
		{
			name: "headerlist",
			args: []string{files[0], "headerlist"},
			want: &Instructions{Gather: []reader.Source{{Path: files[0]}}, Action: ActionHeaderList, Target: ".txt"},
		},
		{
			name: "output",
			args: []string{files[0], "cat", "a", "output", "out.csv"},
			want: &Instructions{
				Gather: []reader.Source{{Path: files[0]}},
				Cat:    true,
				Tokens: []string{"a"},
				Action: ActionOutput,
				Target: "out.csv",
			},
		},
		{
			name: "burst",
			args: []string{files[0], "burst", "run.txt"},
			want: &Instructions{Gather: []reader.Source{{Path: files[0]}}, Action: ActionBurst, Target: "run.txt"},
		},
		{
			name: "assert may mention stage words",
			args: []string{"assert", "sum([1,2]) == 3", "list"},
			want: &Instructions{Action: ActionAssert, Asserts: []string{"sum([1,2]) == 3", "list"}},
		},
		{
			name: "stdin sentinels",
			args: []string{"-", "foo=-.csv", "_=-.json"},
			want: &Instructions{
				Gather: []reader.Source{{Path: "-"}, {Path: "-.csv", Alias: "foo"}, {Path: "-.json", Alias: "_"}},
				Action: ActionPrint,
				Target: ".txt",
			},
		},
		{
			name: "missing file stays a file",
			args: []string{"not-a-file.txt", "1x=y.txt"},
			want: &Instructions{
				Gather: []reader.Source{{Path: "not-a-file.txt"}, {Path: "1x=y.txt"}},
				Action: ActionPrint,
				Target: ".txt",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.args)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParse_ExistingFileWithEquals(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "k=v.txt")
	if err := os.WriteFile(path, []byte("a\n1\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	got, err := Parse([]string{path})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if want := []reader.Source{{Path: path}}; !reflect.DeepEqual(got.Gather, want) {
		t.Errorf("Gather = %+v, want %+v", got.Gather, want)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"cat twice", []string{"cat", "a", "cat"}},
		{"list with argument", []string{"list", "x"}},
		{"print with two suffixes", []string{"print", ".csv", ".txt"}},
		{"output without file", []string{"cat", "output"}},
		{"burst with two files", []string{"burst", "a", "b"}},
		{"empty assert", []string{"assert"}},
		{"two postprocess stages", []string{"list", "headerlist"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.args); !errors.Is(err, ErrUsage) {
				t.Errorf("Parse(%v) error = %v, want %v", tt.args, err, ErrUsage)
			}
		})
	}
}
