// Package namespace merges the columns of several tables into one name space.
//
// Each table contributes its bare column names and, when it carries an
// alias, alias-prefixed names (alias "A" and column "b" give "Ab"). A name
// that arises from more than one place (two tables, an alias and a column,
// a bare and a prefixed name) is ambiguous and cannot be requested
// explicitly; every other name resolves to exactly one column.
//
// Example usage:
//
//	ns, err := namespace.Resolve(tables)
//	if err != nil {
//	    return err
//	}
//	source := ns.Source() // unambiguous name -> values, plus "__aliases"
package namespace
