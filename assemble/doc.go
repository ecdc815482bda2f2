// Package assemble builds output tables from resolved input tables.
//
// An Assembler walks a list of tokens, each naming a whole aliased table, a
// column, an alias-prefixed column or an assignment "name=expression", and
// accumulates the requested columns into a single output table. Assignments
// are evaluated by package expr against the unambiguous input names and the
// columns assembled so far; an expression evaluating to None removes the
// named column.
//
// The same Assembler also runs assert expressions against a namespace,
// reporting each outcome on a diagnostic writer.
package assemble
