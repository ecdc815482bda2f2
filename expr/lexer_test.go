package expr

import "testing"

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TokenType
	}{
		{"arithmetic", "A+1", []TokenType{TokenIdent, TokenPlus, TokenNumber, TokenEOF}},
		{"floor division", "B//C", []TokenType{TokenIdent, TokenFloorDiv, TokenIdent, TokenEOF}},
		{"power", "A**2", []TokenType{TokenIdent, TokenPower, TokenNumber, TokenEOF}},
		{"comparisons", "a<=b>=c==d!=e", []TokenType{
			TokenIdent, TokenLessEqual, TokenIdent, TokenGreaterEqual, TokenIdent,
			TokenEqual, TokenIdent, TokenNotEqual, TokenIdent, TokenEOF,
		}},
		{"keywords", "not True and False or None", []TokenType{
			TokenNot, TokenTrue, TokenAnd, TokenFalse, TokenOr, TokenNone, TokenEOF,
		}},
		{"slice", "A[::-1]", []TokenType{
			TokenIdent, TokenLeftBracket, TokenColon, TokenColon, TokenMinus, TokenNumber, TokenRightBracket, TokenEOF,
		}},
		{"call", "atan2(y, x)", []TokenType{
			TokenIdent, TokenLeftParen, TokenIdent, TokenComma, TokenIdent, TokenRightParen, TokenEOF,
		}},
		{"string key", `__aliases["A"]`, []TokenType{
			TokenIdent, TokenLeftBracket, TokenString, TokenRightBracket, TokenEOF,
		}},
		{"single equals is an error", "a = 1", []TokenType{TokenIdent, TokenError}},
		{"unterminated string", `"abc`, []TokenType{TokenError}},
		{"unknown character", "a $ b", []TokenType{TokenIdent, TokenError}},
		{"qualified name", "np.pi", []TokenType{TokenIdent, TokenDot, TokenIdent, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			if len(tokens) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %d tokens", tt.input, tokens, len(tt.want))
			}
			for i, tok := range tokens {
				if tok.Type != tt.want[i] {
					t.Errorf("token %d = %v (%q), want %v", i, tok.Type, tok.Value, tt.want[i])
				}
			}
		})
	}
}

func TestTokenize_Numbers(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"3.25", "3.25"},
		{".5", ".5"},
		{"1e3", "1e3"},
		{"2.5E-4", "2.5E-4"},
		{"6e+2", "6e+2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			if tokens[0].Type != TokenNumber || tokens[0].Value != tt.want {
				t.Errorf("Tokenize(%q)[0] = %v %q, want number %q", tt.input, tokens[0].Type, tokens[0].Value, tt.want)
			}
			if tokens[1].Type != TokenEOF {
				t.Errorf("Tokenize(%q) left trailing token %v", tt.input, tokens[1])
			}
		})
	}
}

func TestTokenize_UnicodeIdentifier(t *testing.T) {
	tokens := Tokenize("θ*2")
	if tokens[0].Type != TokenIdent || tokens[0].Value != "θ" {
		t.Errorf("Tokenize() first token = %v %q, want identifier θ", tokens[0].Type, tokens[0].Value)
	}
}

func TestIsKeyword(t *testing.T) {
	for _, word := range []string{"and", "or", "not", "True", "False", "None"} {
		if !IsKeyword(word) {
			t.Errorf("IsKeyword(%q) = false, want true", word)
		}
	}
	for _, word := range []string{"true", "AND", "pi", "x"} {
		if IsKeyword(word) {
			t.Errorf("IsKeyword(%q) = true, want false", word)
		}
	}
}
