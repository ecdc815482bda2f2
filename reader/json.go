package reader

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vegasq/thresh/table"
)

// parseJSON reads a top-level JSON object, keeping its key order
func parseJSON(r io.Reader) (*table.Content, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedInput, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: top-level JSON value must be an object", ErrUnsupportedInput)
	}

	content := table.NewContent()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedInput, err)
		}
		key := tok.(string)

		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: value of %q: %v", ErrUnsupportedInput, key, err)
		}
		content.Set(key, normalize(value))
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedInput, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after the top-level object", ErrUnsupportedInput)
	}
	return content, nil
}

// normalize turns homogeneous numeric and boolean arrays into typed slices
func normalize(value interface{}) interface{} {
	switch v := value.(type) {
	case []interface{}:
		if numbers, ok := asNumbers(v); ok {
			return numbers
		}
		if bools, ok := asBools(v); ok {
			return bools
		}
		for i := range v {
			v[i] = normalize(v[i])
		}
		return v
	case map[string]interface{}:
		for key := range v {
			v[key] = normalize(v[key])
		}
		return v
	default:
		return v
	}
}

func asNumbers(values []interface{}) ([]float64, bool) {
	out := make([]float64, len(values))
	for i, v := range values {
		f, ok := v.(float64)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

func asBools(values []interface{}) ([]bool, bool) {
	if len(values) == 0 {
		return nil, false
	}
	out := make([]bool, len(values))
	for i, v := range values {
		b, ok := v.(bool)
		if !ok {
			return nil, false
		}
		out[i] = b
	}
	return out, true
}
