package table

import (
	"fmt"
	"strings"
	"unicode"
)

// reservedWords are the keywords of the expression language. An alias equal
// to one of them could never be referenced from an expression.
var reservedWords = map[string]bool{
	"and":   true,
	"or":    true,
	"not":   true,
	"True":  true,
	"False": true,
	"None":  true,
}

// Table is one tabular source: ordered columns plus alias and provenance.
type Table struct {
	content       *Content
	alias         string
	name          string
	namespaceOnly bool
	lengthChecked bool
	rows          int
}

type options struct {
	alias         string
	name          string
	namespaceOnly bool
	lengthCheck   bool
}

// Option configures New
type Option func(*options)

// WithAlias binds an alias to the table
func WithAlias(alias string) Option {
	return func(o *options) { o.alias = alias }
}

// WithName records the provenance of the table (file name or "-")
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// NamespaceOnly marks a table whose entries are arbitrary values rather than
// equal-length columns. It implies WithoutLengthCheck.
func NamespaceOnly() Option {
	return func(o *options) {
		o.namespaceOnly = true
		o.lengthCheck = false
	}
}

// WithoutLengthCheck disables the equal-length invariant
func WithoutLengthCheck() Option {
	return func(o *options) { o.lengthCheck = false }
}

// New validates content and builds a Table. The content is copied, so later
// changes by the caller do not leak into the table.
func New(content *Content, opts ...Option) (*Table, error) {
	o := options{lengthCheck: true}
	for _, opt := range opts {
		opt(&o)
	}

	if err := ValidateAlias(o.alias); err != nil {
		return nil, err
	}

	if content == nil {
		return nil, fmt.Errorf("%w: content is nil", ErrInvalidContentType)
	}

	for _, key := range content.keys {
		if key == "" || strings.IndexFunc(key, unicode.IsSpace) >= 0 {
			return nil, fmt.Errorf("%w: %q", ErrNonTextKey, key)
		}
	}

	rows := 0
	if o.lengthCheck {
		lengths := make([]int, 0, len(content.keys))
		uneven := false
		for _, key := range content.keys {
			col, ok := content.values[key].([]float64)
			if !ok {
				return nil, fmt.Errorf("%w: column %q holds %T, want a numeric array", ErrInvalidContentType, key, content.values[key])
			}
			if len(lengths) > 0 && len(col) != lengths[0] {
				uneven = true
			}
			lengths = append(lengths, len(col))
		}
		if uneven {
			return nil, fmt.Errorf("%w: %v", ErrUnevenLengths, lengths)
		}
		if len(lengths) > 0 {
			rows = lengths[0]
		}
	}

	return &Table{
		content:       content.Clone(),
		alias:         o.alias,
		name:          o.name,
		namespaceOnly: o.namespaceOnly,
		lengthChecked: o.lengthCheck,
		rows:          rows,
	}, nil
}

// ValidateAlias returns ErrInvalidAlias unless alias is empty (absent) or an
// identifier that is not a reserved word.
func ValidateAlias(alias string) error {
	if alias == "" {
		return nil
	}
	if !IsIdentifier(alias) {
		return fmt.Errorf("%w: %q is not an identifier", ErrInvalidAlias, alias)
	}
	if reservedWords[alias] {
		return fmt.Errorf("%w: %q is a reserved word", ErrInvalidAlias, alias)
	}
	return nil
}

// IsIdentifier reports whether s is a letter or underscore followed by
// letters, digits and underscores.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// Alias returns the alias, or "" when none is bound
func (t *Table) Alias() string { return t.alias }

// Name returns the provenance name
func (t *Table) Name() string { return t.name }

// NamespaceOnly reports whether the table holds arbitrary values instead of
// equal-length columns
func (t *Table) NamespaceOnly() bool { return t.namespaceOnly }

// LengthChecked reports whether the equal-length invariant was enforced
func (t *Table) LengthChecked() bool { return t.lengthChecked }

// Rows returns the common column length (0 when not length-checked)
func (t *Table) Rows() int { return t.rows }

// Columns returns the column names in order
func (t *Table) Columns() []string { return t.content.Keys() }

// Len returns the number of columns
func (t *Table) Len() int { return t.content.Len() }

// Column returns the values stored under name
func (t *Table) Column(name string) (interface{}, bool) {
	return t.content.Get(name)
}

// Float returns a numeric column
func (t *Table) Float(name string) ([]float64, bool) {
	v, ok := t.content.Get(name)
	if !ok {
		return nil, false
	}
	col, ok := v.([]float64)
	return col, ok
}

// Content returns a copy of the table content
func (t *Table) Content() *Content { return t.content.Clone() }

// Label is the human-readable identification used in listings
func (t *Table) Label() string {
	switch {
	case t.name != "" && t.alias != "":
		return fmt.Sprintf("%s (%s)", t.name, t.alias)
	case t.name != "":
		return t.name
	case t.alias != "":
		return t.alias
	default:
		return "-"
	}
}
