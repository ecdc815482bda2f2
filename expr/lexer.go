package expr

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes expression strings
type Lexer struct {
	input string
	pos   int
	ch    rune
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar reads the next character
func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		l.ch = 0
		l.pos++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.ch = r
	l.pos += size
}

// peekChar looks at the next character without advancing
func (l *Lexer) peekChar() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readString reads a quoted string; ok is false when the closing quote is missing
func (l *Lexer) readString(quote rune) (string, bool) {
	var result strings.Builder
	l.readChar() // skip opening quote

	for l.ch != quote && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				result.WriteRune('\n')
			case 't':
				result.WriteRune('\t')
			case '\\':
				result.WriteRune('\\')
			case quote:
				result.WriteRune(quote)
			default:
				result.WriteRune(l.ch)
			}
		} else {
			result.WriteRune(l.ch)
		}
		l.readChar()
	}

	if l.ch != quote {
		return result.String(), false
	}
	l.readChar() // skip closing quote
	return result.String(), true
}

// readNumber reads an unsigned number with optional fraction and exponent
func (l *Lexer) readNumber() string {
	var result strings.Builder

	for isDigit(l.ch) || l.ch == '.' {
		result.WriteRune(l.ch)
		l.readChar()
	}

	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || next == '+' || next == '-' {
			result.WriteRune(l.ch)
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				result.WriteRune(l.ch)
				l.readChar()
			}
			for isDigit(l.ch) {
				result.WriteRune(l.ch)
				l.readChar()
			}
		}
	}
	return result.String()
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	var result strings.Builder
	for isIdentRune(l.ch) {
		result.WriteRune(l.ch)
		l.readChar()
	}
	return result.String()
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentRune(ch rune) bool {
	return isIdentStart(ch) || unicode.IsDigit(ch)
}

// twoChar emits a two-character operator when the next char matches, else the single one
func (l *Lexer) twoChar(second rune, double TokenType, doubleValue string, single TokenType, singleValue string) Token {
	if l.peekChar() == second {
		l.readChar()
		l.readChar()
		return Token{Type: double, Value: doubleValue}
	}
	l.readChar()
	return Token{Type: single, Value: singleValue}
}

// NextToken returns the next token
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	var tok Token

	switch l.ch {
	case 0:
		tok = Token{Type: TokenEOF, Value: ""}
	case '=':
		// a lone '=' is assignment, which has no meaning inside an expression
		tok = l.twoChar('=', TokenEqual, "==", TokenError, "=")
	case '!':
		tok = l.twoChar('=', TokenNotEqual, "!=", TokenError, "!")
	case '<':
		tok = l.twoChar('=', TokenLessEqual, "<=", TokenLess, "<")
	case '>':
		tok = l.twoChar('=', TokenGreaterEqual, ">=", TokenGreater, ">")
	case '*':
		tok = l.twoChar('*', TokenPower, "**", TokenStar, "*")
	case '/':
		tok = l.twoChar('/', TokenFloorDiv, "//", TokenSlash, "/")
	case '+':
		tok = Token{Type: TokenPlus, Value: "+"}
		l.readChar()
	case '-':
		tok = Token{Type: TokenMinus, Value: "-"}
		l.readChar()
	case '%':
		tok = Token{Type: TokenPercent, Value: "%"}
		l.readChar()
	case '\'', '"':
		value, ok := l.readString(l.ch)
		if !ok {
			tok = Token{Type: TokenError, Value: "unterminated string"}
		} else {
			tok = Token{Type: TokenString, Value: value}
		}
	case ',':
		tok = Token{Type: TokenComma, Value: ","}
		l.readChar()
	case '.':
		if isDigit(l.peekChar()) {
			tok = Token{Type: TokenNumber, Value: l.readNumber()}
		} else {
			tok = Token{Type: TokenDot, Value: "."}
			l.readChar()
		}
	case ':':
		tok = Token{Type: TokenColon, Value: ":"}
		l.readChar()
	case '(':
		tok = Token{Type: TokenLeftParen, Value: "("}
		l.readChar()
	case ')':
		tok = Token{Type: TokenRightParen, Value: ")"}
		l.readChar()
	case '[':
		tok = Token{Type: TokenLeftBracket, Value: "["}
		l.readChar()
	case ']':
		tok = Token{Type: TokenRightBracket, Value: "]"}
		l.readChar()
	default:
		if isDigit(l.ch) {
			tok = Token{Type: TokenNumber, Value: l.readNumber()}
		} else if isIdentStart(l.ch) {
			value := l.readIdentifier()
			tok = Token{Type: identifierType(value), Value: value}
		} else {
			tok = Token{Type: TokenError, Value: string(l.ch)}
			l.readChar()
		}
	}

	return tok
}

// keywords are case-sensitive
var keywords = map[string]TokenType{
	"and":   TokenAnd,
	"or":    TokenOr,
	"not":   TokenNot,
	"True":  TokenTrue,
	"False": TokenFalse,
	"None":  TokenNone,
}

// identifierType determines if an identifier is a keyword
func identifierType(ident string) TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return TokenIdent
}

// IsKeyword reports whether ident is a reserved word of the expression language
func IsKeyword(ident string) bool {
	_, ok := keywords[ident]
	return ok
}

// Tokenize returns all tokens from the input
func Tokenize(input string) []Token {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF || tok.Type == TokenError {
			break
		}
	}

	return tokens
}
