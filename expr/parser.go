package expr

import (
	"errors"
	"fmt"
	"strconv"
)

// Parser parses expressions into an AST
type Parser struct {
	tokens       []Token
	pos          int
	depthCounter *ExpressionDepthCounter
}

// NewParser creates a new parser
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens:       tokens,
		pos:          0,
		depthCounter: NewExpressionDepthCounter(),
	}
}

// current returns the current token
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Value: ""}
	}
	return p.tokens[p.pos]
}

// advance moves to the next token
func (p *Parser) advance() {
	p.pos++
}

// expect checks if current token matches expected type and advances
func (p *Parser) expect(tokType TokenType) error {
	if p.current().Type != tokType {
		return p.unexpected(fmt.Sprintf("expected %v", tokType))
	}
	p.advance()
	return nil
}

func (p *Parser) unexpected(context string) error {
	tok := p.current()
	switch tok.Type {
	case TokenError:
		return fmt.Errorf("%w: invalid input %q", ErrSyntax, tok.Value)
	case TokenEOF:
		return fmt.Errorf("%w: %s, got end of expression", ErrSyntax, context)
	default:
		return fmt.Errorf("%w: %s, got %q", ErrSyntax, context, tok.Value)
	}
}

// Parse parses a single expression
func Parse(expression string) (Node, error) {
	if err := ValidateExpression(expression); err != nil {
		return nil, err
	}

	tokens := Tokenize(expression)
	if err := ValidateTokens(tokens); err != nil {
		return nil, err
	}

	parser := NewParser(tokens)
	if parser.current().Type == TokenEOF {
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	}

	node, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}

	if parser.current().Type != TokenEOF {
		return nil, parser.unexpected("unexpected trailing input")
	}
	return node, nil
}

// parseExpression is the entry point for a full expression, tracking nesting depth
func (p *Parser) parseExpression() (Node, error) {
	if err := p.depthCounter.Enter(); err != nil {
		return nil, err
	}
	defer p.depthCounter.Exit()

	return p.parseOr()
}

// parseOr parses: and_expr ('or' and_expr)*
func (p *Parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &LogicalExpr{Left: left, Operator: TokenOr, Right: right}
	}
	return left, nil
}

// parseAnd parses: not_expr ('and' not_expr)*
func (p *Parser) parseAnd() (Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenAnd {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &LogicalExpr{Left: left, Operator: TokenAnd, Right: right}
	}
	return left, nil
}

// parseNot parses: 'not' not_expr | comparison
func (p *Parser) parseNot() (Node, error) {
	if p.current().Type != TokenNot {
		return p.parseComparison()
	}

	if err := p.depthCounter.Enter(); err != nil {
		return nil, err
	}
	defer p.depthCounter.Exit()

	p.advance()
	operand, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	return &NotExpr{Operand: operand}, nil
}

func isComparison(t TokenType) bool {
	switch t {
	case TokenEqual, TokenNotEqual, TokenLess, TokenGreater, TokenLessEqual, TokenGreaterEqual:
		return true
	}
	return false
}

// parseComparison parses a chain: sum (op sum)*
func (p *Parser) parseComparison() (Node, error) {
	first, err := p.parseSum()
	if err != nil {
		return nil, err
	}

	if !isComparison(p.current().Type) {
		return first, nil
	}

	cmp := &CompareExpr{Operands: []Node{first}}
	for isComparison(p.current().Type) {
		op := p.current().Type
		p.advance()
		next, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		cmp.Operators = append(cmp.Operators, op)
		cmp.Operands = append(cmp.Operands, next)
	}
	return cmp, nil
}

// parseSum parses: term (('+' | '-') term)*
func (p *Parser) parseSum() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenPlus || p.current().Type == TokenMinus {
		op := p.current().Type
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Operator: op, Right: right}
	}
	return left, nil
}

// parseTerm parses: factor (('*' | '/' | '//' | '%') factor)*
func (p *Parser) parseTerm() (Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for {
		op := p.current().Type
		if op != TokenStar && op != TokenSlash && op != TokenFloorDiv && op != TokenPercent {
			return left, nil
		}
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Operator: op, Right: right}
	}
}

// parseFactor parses: ('+' | '-') factor | power
func (p *Parser) parseFactor() (Node, error) {
	op := p.current().Type
	if op != TokenPlus && op != TokenMinus {
		return p.parsePower()
	}

	if err := p.depthCounter.Enter(); err != nil {
		return nil, err
	}
	defer p.depthCounter.Exit()

	p.advance()
	operand, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	return &UnaryExpr{Operator: op, Operand: operand}, nil
}

// parsePower parses: postfix ['**' factor]; right-associative and binds tighter than unary minus on its left
func (p *Parser) parsePower() (Node, error) {
	base, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}

	if p.current().Type != TokenPower {
		return base, nil
	}

	if err := p.depthCounter.Enter(); err != nil {
		return nil, err
	}
	defer p.depthCounter.Exit()

	p.advance()
	exponent, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	return &BinaryExpr{Left: base, Operator: TokenPower, Right: exponent}, nil
}

// parsePostfix parses: atom (call | subscript)*
func (p *Parser) parsePostfix() (Node, error) {
	node, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current().Type {
		case TokenDot:
			node, err = p.parseQualified(node)
			if err != nil {
				return nil, err
			}
		case TokenLeftParen:
			name, ok := node.(*Name)
			if !ok {
				return nil, fmt.Errorf("%w: only built-in functions can be called", ErrSyntax)
			}
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			node = &CallExpr{Function: name.Ident, Qualified: name.Qualified, Args: args}
		case TokenLeftBracket:
			node, err = p.parseSubscript(node)
			if err != nil {
				return nil, err
			}
		default:
			return node, nil
		}
	}
}

// BuiltinQualifier is the module prefix accepted in front of built-in names
const BuiltinQualifier = "np"

// parseQualified parses: 'np' '.' name
func (p *Parser) parseQualified(node Node) (Node, error) {
	name, ok := node.(*Name)
	if !ok || name.Qualified || name.Ident != BuiltinQualifier {
		return nil, fmt.Errorf("%w: attribute access is only supported as %s.<built-in>", ErrSyntax, BuiltinQualifier)
	}
	p.advance() // skip '.'

	tok := p.current()
	if tok.Type != TokenIdent {
		return nil, p.unexpected("expected a name after " + BuiltinQualifier + ".")
	}
	p.advance()
	return &Name{Ident: tok.Value, Qualified: true}, nil
}

// parseArguments parses: '(' [expr (',' expr)* [',']] ')'
func (p *Parser) parseArguments() ([]Node, error) {
	p.advance() // skip '('

	var args []Node
	for p.current().Type != TokenRightParen {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if p.current().Type != TokenComma {
			break
		}
		p.advance()
	}

	if err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}
	return args, nil
}

// parseSubscript parses: '[' (expr | [expr] ':' [expr] [':' [expr]]) ']'
func (p *Parser) parseSubscript(target Node) (Node, error) {
	p.advance() // skip '['

	var start Node
	if p.current().Type != TokenColon {
		index, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.current().Type != TokenColon {
			if err := p.expect(TokenRightBracket); err != nil {
				return nil, err
			}
			return &IndexExpr{Target: target, Index: index}, nil
		}
		start = index
	}

	slice := &SliceExpr{Target: target, Start: start}
	p.advance() // skip ':'

	var err error
	if slice.Stop, err = p.parseSliceBound(); err != nil {
		return nil, err
	}
	if p.current().Type == TokenColon {
		p.advance()
		if slice.Step, err = p.parseSliceBound(); err != nil {
			return nil, err
		}
	}

	if err := p.expect(TokenRightBracket); err != nil {
		return nil, err
	}
	return slice, nil
}

func (p *Parser) parseSliceBound() (Node, error) {
	if t := p.current().Type; t == TokenColon || t == TokenRightBracket {
		return nil, nil
	}
	return p.parseExpression()
}

// parseAtom parses literals, names, parenthesized expressions and list literals
func (p *Parser) parseAtom() (Node, error) {
	tok := p.current()

	switch tok.Type {
	case TokenNumber:
		p.advance()
		// out-of-range literals keep ParseFloat's ±Inf or 0
		value, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("%w: invalid number %q", ErrSyntax, tok.Value)
		}
		return &NumberLit{Value: value}, nil
	case TokenString:
		p.advance()
		return &StringLit{Value: tok.Value}, nil
	case TokenTrue, TokenFalse:
		p.advance()
		return &BoolLit{Value: tok.Type == TokenTrue}, nil
	case TokenNone:
		p.advance()
		return &NoneLit{}, nil
	case TokenIdent:
		p.advance()
		return &Name{Ident: tok.Value}, nil
	case TokenLeftParen:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return inner, nil
	case TokenLeftBracket:
		return p.parseList()
	}
	return nil, p.unexpected("expected a value")
}

// parseList parses: '[' [expr (',' expr)* [',']] ']'
func (p *Parser) parseList() (Node, error) {
	p.advance() // skip '['

	list := &ListLit{}
	for p.current().Type != TokenRightBracket {
		element, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		list.Elements = append(list.Elements, element)

		if p.current().Type != TokenComma {
			break
		}
		p.advance()
	}

	if err := p.expect(TokenRightBracket); err != nil {
		return nil, err
	}
	return list, nil
}
