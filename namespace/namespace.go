package namespace

import (
	"errors"
	"fmt"

	"github.com/vegasq/thresh/table"
)

// AliasesKey is the source entry mapping each alias to its table's columns
const AliasesKey = "__aliases"

// ErrDuplicateAlias is returned when two tables carry the same alias
var ErrDuplicateAlias = errors.New("duplicate alias")

// Ref locates one column of one table
type Ref struct {
	Table  *table.Table
	Column string
}

// Namespace is the resolved view over a list of tables
type Namespace struct {
	Aliases            Set
	ColumnNames        Set
	AliasedColumnNames Set
	Ambiguous          Set

	tables  []*table.Table
	byAlias map[string]*table.Table
	bare    map[string]Ref
	aliased map[string]Ref
}

// Resolve computes the namespace of tables. It never modifies the tables.
func Resolve(tables []*table.Table) (*Namespace, error) {
	ns := &Namespace{
		Aliases:            make(Set),
		ColumnNames:        make(Set),
		AliasedColumnNames: make(Set),
		Ambiguous:          make(Set),
		tables:             append([]*table.Table(nil), tables...),
		byAlias:            make(map[string]*table.Table),
		bare:               make(map[string]Ref),
		aliased:            make(map[string]Ref),
	}

	// All aliases are known before any column is checked against them
	for _, t := range tables {
		alias := t.Alias()
		if alias == "" {
			continue
		}
		if ns.Aliases.Has(alias) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAlias, alias)
		}
		ns.Aliases.add(alias)
		ns.byAlias[alias] = t
	}

	for _, t := range tables {
		alias := t.Alias()
		for _, column := range t.Columns() {
			ns.claim(column)
			ns.ColumnNames.add(column)
			if _, ok := ns.bare[column]; !ok {
				ns.bare[column] = Ref{Table: t, Column: column}
			}

			if alias == "" {
				continue
			}
			prefixed := alias + column
			ns.claim(prefixed)
			ns.AliasedColumnNames.add(prefixed)
			if _, ok := ns.aliased[prefixed]; !ok {
				ns.aliased[prefixed] = Ref{Table: t, Column: column}
			}
		}
	}
	return ns, nil
}

// claim marks name ambiguous when it is already in use anywhere
func (ns *Namespace) claim(name string) {
	if ns.Aliases.Has(name) || ns.ColumnNames.Has(name) || ns.AliasedColumnNames.Has(name) {
		ns.Ambiguous.add(name)
	}
}

// Tables returns the tables the namespace was resolved from, in order
func (ns *Namespace) Tables() []*table.Table {
	return append([]*table.Table(nil), ns.tables...)
}

// Table returns the table carrying alias
func (ns *Namespace) Table(alias string) (*table.Table, bool) {
	t, ok := ns.byAlias[alias]
	return t, ok
}

// Column returns the owner of an unambiguous bare column name
func (ns *Namespace) Column(name string) (Ref, bool) {
	if ns.Ambiguous.Has(name) {
		return Ref{}, false
	}
	ref, ok := ns.bare[name]
	return ref, ok
}

// AliasedColumn returns the owner of an unambiguous alias-prefixed column name
func (ns *Namespace) AliasedColumn(name string) (Ref, bool) {
	if ns.Ambiguous.Has(name) {
		return Ref{}, false
	}
	ref, ok := ns.aliased[name]
	return ref, ok
}

// Values returns the column data a reference points at
func (r Ref) Values() interface{} {
	v, _ := r.Table.Column(r.Column)
	return v
}

// Source returns every unambiguous name mapped to its values, plus the
// AliasesKey entry mapping alias -> column -> values
func (ns *Namespace) Source() map[string]interface{} {
	source := make(map[string]interface{}, len(ns.bare)+len(ns.aliased)+1)
	for name, ref := range ns.bare {
		if !ns.Ambiguous.Has(name) {
			source[name] = ref.Values()
		}
	}
	for name, ref := range ns.aliased {
		if !ns.Ambiguous.Has(name) {
			source[name] = ref.Values()
		}
	}

	aliases := make(map[string]interface{}, len(ns.byAlias))
	for alias, t := range ns.byAlias {
		columns := make(map[string]interface{}, t.Len())
		for _, column := range t.Columns() {
			columns[column], _ = t.Column(column)
		}
		aliases[alias] = columns
	}
	source[AliasesKey] = aliases
	return source
}
