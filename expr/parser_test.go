package expr

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestParse_Precedence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, n Node)
	}{
		{
			name:  "multiplication binds tighter than addition",
			input: "1+2*3",
			check: func(t *testing.T, n Node) {
				b, ok := n.(*BinaryExpr)
				if !ok || b.Operator != TokenPlus {
					t.Fatalf("root = %#v, want + expression", n)
				}
				if r, ok := b.Right.(*BinaryExpr); !ok || r.Operator != TokenStar {
					t.Errorf("right = %#v, want * expression", b.Right)
				}
			},
		},
		{
			name:  "power is right associative",
			input: "2**3**2",
			check: func(t *testing.T, n Node) {
				b, ok := n.(*BinaryExpr)
				if !ok || b.Operator != TokenPower {
					t.Fatalf("root = %#v, want ** expression", n)
				}
				if _, ok := b.Left.(*NumberLit); !ok {
					t.Errorf("left = %#v, want number", b.Left)
				}
				if r, ok := b.Right.(*BinaryExpr); !ok || r.Operator != TokenPower {
					t.Errorf("right = %#v, want ** expression", b.Right)
				}
			},
		},
		{
			name:  "unary minus applies after power",
			input: "-2**2",
			check: func(t *testing.T, n Node) {
				u, ok := n.(*UnaryExpr)
				if !ok || u.Operator != TokenMinus {
					t.Fatalf("root = %#v, want unary minus", n)
				}
				if _, ok := u.Operand.(*BinaryExpr); !ok {
					t.Errorf("operand = %#v, want ** expression", u.Operand)
				}
			},
		},
		{
			name:  "chained comparison",
			input: "0 < A <= 10",
			check: func(t *testing.T, n Node) {
				c, ok := n.(*CompareExpr)
				if !ok {
					t.Fatalf("root = %#v, want comparison", n)
				}
				if len(c.Operands) != 3 || len(c.Operators) != 2 {
					t.Errorf("got %d operands and %d operators, want 3 and 2", len(c.Operands), len(c.Operators))
				}
			},
		},
		{
			name:  "and binds tighter than or",
			input: "a or b and c",
			check: func(t *testing.T, n Node) {
				l, ok := n.(*LogicalExpr)
				if !ok || l.Operator != TokenOr {
					t.Fatalf("root = %#v, want or", n)
				}
				if r, ok := l.Right.(*LogicalExpr); !ok || r.Operator != TokenAnd {
					t.Errorf("right = %#v, want and", l.Right)
				}
			},
		},
		{
			name:  "reverse slice",
			input: "sort(A)[::-1]",
			check: func(t *testing.T, n Node) {
				s, ok := n.(*SliceExpr)
				if !ok {
					t.Fatalf("root = %#v, want slice", n)
				}
				if s.Start != nil || s.Stop != nil || s.Step == nil {
					t.Errorf("slice = %#v, want only a step", s)
				}
				if _, ok := s.Target.(*CallExpr); !ok {
					t.Errorf("target = %#v, want call", s.Target)
				}
			},
		},
		{
			name:  "nested subscript",
			input: `__aliases["A"]["b"]`,
			check: func(t *testing.T, n Node) {
				outer, ok := n.(*IndexExpr)
				if !ok {
					t.Fatalf("root = %#v, want index", n)
				}
				if _, ok := outer.Target.(*IndexExpr); !ok {
					t.Errorf("target = %#v, want index", outer.Target)
				}
			},
		},
		{
			name:  "list literal with trailing comma",
			input: "[1, 2, 3,]",
			check: func(t *testing.T, n Node) {
				l, ok := n.(*ListLit)
				if !ok || len(l.Elements) != 3 {
					t.Errorf("root = %#v, want 3-element list", n)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			tt.check(t, n)
		})
	}
}

func TestParse_OutOfRangeNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1e400", math.Inf(1)},
		{"1e-400", 0},
		{"1.5", 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			lit, ok := n.(*NumberLit)
			if !ok || lit.Value != tt.want {
				t.Errorf("Parse(%q) = %#v, want number %v", tt.input, n, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", ErrSyntax},
		{"blank", "   ", ErrSyntax},
		{"assignment", "a = 1", ErrSyntax},
		{"dangling operator", "A +", ErrSyntax},
		{"malformed number", "1.2.3", ErrSyntax},
		{"unbalanced paren", "(A + 1", ErrSyntax},
		{"unbalanced bracket", "A[1", ErrSyntax},
		{"trailing tokens", "A B", ErrSyntax},
		{"call on subscript", "A[0](1)", ErrSyntax},
		{"too long", strings.Repeat("1+", MaxExpressionLength) + "1", ErrExpressionTooLong},
		{"too deep", strings.Repeat("(", MaxExpressionDepth+1) + "1" + strings.Repeat(")", MaxExpressionDepth+1), ErrExpressionTooDeep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTokens(t *testing.T) {
	tokens := make([]Token, MaxTokens+1)
	if err := ValidateTokens(tokens); !errors.Is(err, ErrTooManyTokens) {
		t.Errorf("ValidateTokens() error = %v, want %v", err, ErrTooManyTokens)
	}
	if err := ValidateTokens(tokens[:MaxTokens]); err != nil {
		t.Errorf("ValidateTokens() error = %v, want nil", err)
	}
}

func TestExpressionDepthCounter(t *testing.T) {
	c := NewExpressionDepthCounter()
	for i := 0; i < MaxExpressionDepth; i++ {
		if err := c.Enter(); err != nil {
			t.Fatalf("Enter() at depth %d error = %v", i+1, err)
		}
	}
	if err := c.Enter(); !errors.Is(err, ErrExpressionTooDeep) {
		t.Errorf("Enter() past limit error = %v, want %v", err, ErrExpressionTooDeep)
	}
	c.Exit()
	c.Exit()
	if err := c.Enter(); err != nil {
		t.Errorf("Enter() after Exit() error = %v", err)
	}
}
