package expr

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// Keywords
	TokenAnd TokenType = iota
	TokenOr
	TokenNot
	TokenTrue
	TokenFalse
	TokenNone

	// Arithmetic operators
	TokenPlus     // +
	TokenMinus    // -
	TokenStar     // *
	TokenSlash    // /
	TokenFloorDiv // //
	TokenPercent  // %
	TokenPower    // **

	// Comparison operators
	TokenEqual        // ==
	TokenNotEqual     // !=
	TokenLess         // <
	TokenGreater      // >
	TokenLessEqual    // <=
	TokenGreaterEqual // >=

	// Literals
	TokenString
	TokenNumber
	TokenIdent

	// Delimiters
	TokenComma
	TokenColon
	TokenDot
	TokenLeftParen
	TokenRightParen
	TokenLeftBracket
	TokenRightBracket

	// Special
	TokenEOF
	TokenError
)

var tokenNames = map[TokenType]string{
	TokenAnd:          "and",
	TokenOr:           "or",
	TokenNot:          "not",
	TokenTrue:         "True",
	TokenFalse:        "False",
	TokenNone:         "None",
	TokenPlus:         "+",
	TokenMinus:        "-",
	TokenStar:         "*",
	TokenSlash:        "/",
	TokenFloorDiv:     "//",
	TokenPercent:      "%",
	TokenPower:        "**",
	TokenEqual:        "==",
	TokenNotEqual:     "!=",
	TokenLess:         "<",
	TokenGreater:      ">",
	TokenLessEqual:    "<=",
	TokenGreaterEqual: ">=",
	TokenString:       "string",
	TokenNumber:       "number",
	TokenIdent:        "name",
	TokenComma:        ",",
	TokenColon:        ":",
	TokenDot:          ".",
	TokenLeftParen:    "(",
	TokenRightParen:   ")",
	TokenLeftBracket:  "[",
	TokenRightBracket: "]",
	TokenEOF:          "end of expression",
	TokenError:        "invalid token",
}

// String returns a readable name for the token type
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
}

// Node is any node of a parsed expression
type Node interface {
	node()
}

// NumberLit is a numeric literal
type NumberLit struct {
	Value float64
}

// StringLit is a quoted string literal, usable as a subscript key
type StringLit struct {
	Value string
}

// BoolLit is True or False
type BoolLit struct {
	Value bool
}

// NoneLit is None
type NoneLit struct{}

// ListLit is a bracketed list of expressions
type ListLit struct {
	Elements []Node
}

// Name references a source variable or a builtin constant. Qualified names
// (np.pi) only ever resolve to built-ins.
type Name struct {
	Ident     string
	Qualified bool
}

// UnaryExpr is +x or -x
type UnaryExpr struct {
	Operator TokenType
	Operand  Node
}

// NotExpr is logical negation
type NotExpr struct {
	Operand Node
}

// BinaryExpr is an arithmetic operation
type BinaryExpr struct {
	Left     Node
	Operator TokenType
	Right    Node
}

// CompareExpr is a (possibly chained) comparison: a < b <= c
type CompareExpr struct {
	Operands  []Node
	Operators []TokenType
}

// LogicalExpr is a short-circuiting and/or
type LogicalExpr struct {
	Left     Node
	Operator TokenType // TokenAnd or TokenOr
	Right    Node
}

// CallExpr calls a builtin function
type CallExpr struct {
	Function  string
	Qualified bool
	Args      []Node
}

// IndexExpr subscripts a value with a single index expression
type IndexExpr struct {
	Target Node
	Index  Node
}

// SliceExpr subscripts a value with start:stop:step; nil bounds are omitted
type SliceExpr struct {
	Target Node
	Start  Node
	Stop   Node
	Step   Node
}

func (*NumberLit) node()   {}
func (*StringLit) node()   {}
func (*BoolLit) node()     {}
func (*NoneLit) node()     {}
func (*ListLit) node()     {}
func (*Name) node()        {}
func (*UnaryExpr) node()   {}
func (*NotExpr) node()     {}
func (*BinaryExpr) node()  {}
func (*CompareExpr) node() {}
func (*LogicalExpr) node() {}
func (*CallExpr) node()    {}
func (*IndexExpr) node()   {}
func (*SliceExpr) node()   {}
