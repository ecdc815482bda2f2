package reader

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vegasq/thresh/table"
)

// maxLineLength bounds a single line of text input
const maxLineLength = 16 * 1024 * 1024

// parseText reads delimited text. A zero delimiter splits on whitespace.
func parseText(r io.Reader, delimiter rune) (*table.Content, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	split := strings.Fields
	if delimiter != 0 {
		split = delimitedSplitter(delimiter)
	}

	start := historyStart(lines)
	headerAt := -1
	for i := start; i < len(lines); i++ {
		if !skippable(lines[i]) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, fmt.Errorf("%w: no header row", ErrUnsupportedInput)
	}

	headers := split(lines[headerAt])
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		if seen[h] {
			return nil, fmt.Errorf("%w: %q appears more than once", ErrNonUniqueHeaders, h)
		}
		seen[h] = true
	}

	columns := make([][]float64, len(headers))
	for i := range columns {
		columns[i] = []float64{}
	}

	for i := headerAt + 1; i < len(lines); i++ {
		if skippable(lines[i]) {
			continue
		}
		fields := split(lines[i])
		if len(fields) != len(headers) {
			return nil, fmt.Errorf("%w: line %d has %d fields, want %d", ErrUnsupportedInput, i+1, len(fields), len(headers))
		}
		for j, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %q is not a number", ErrUnsupportedInput, i+1, field)
			}
			columns[j] = append(columns[j], v)
		}
	}

	content := table.NewContent()
	for i, h := range headers {
		content.Set(h, columns[i])
	}
	return content, nil
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), " \t\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedInput, err)
	}
	return lines, nil
}

// skippable reports blank and comment lines
func skippable(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

// historyStart returns the index of the header line of the last history
// frame, or 0 when the text has none.
func historyStart(lines []string) int {
	for i := len(lines) - 3; i >= 0; i-- {
		header := lines[i+1]
		if header == "" {
			continue
		}
		if isRule(lines[i], '-', len(header)) && isRule(lines[i+2], '=', len(header)) {
			return i + 1
		}
	}
	return 0
}

func isRule(line string, ch rune, length int) bool {
	if len(line) != length {
		return false
	}
	return strings.Trim(line, string(ch)) == ""
}

// delimitedSplitter splits one line on delimiter, honouring quotes and
// trimming the fields.
func delimitedSplitter(delimiter rune) func(string) []string {
	return func(line string) []string {
		cr := csv.NewReader(strings.NewReader(line))
		cr.Comma = delimiter
		cr.FieldsPerRecord = -1
		cr.LazyQuotes = true
		record, err := cr.Read()
		if err != nil {
			record = strings.Split(line, string(delimiter))
		}
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		return record
	}
}
