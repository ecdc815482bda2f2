package expr

import (
	"errors"
	"fmt"
)

// Validation constants bounding what a single expression may cost
const (
	// MaxExpressionLength is the maximum allowed expression length (64KB)
	MaxExpressionLength = 64 * 1024

	// MaxTokens is the maximum number of tokens in an expression
	MaxTokens = 4096

	// MaxExpressionDepth is the maximum nesting depth for expressions
	MaxExpressionDepth = 100

	// MaxGeneratedLength caps arrays built by generators such as ones() or arange()
	MaxGeneratedLength = 1 << 26
)

var (
	// ErrExpressionTooLong is returned when an expression exceeds MaxExpressionLength
	ErrExpressionTooLong = errors.New("expression too long")

	// ErrTooManyTokens is returned when an expression has too many tokens
	ErrTooManyTokens = errors.New("too many tokens in expression")

	// ErrExpressionTooDeep is returned when expression nesting exceeds limit
	ErrExpressionTooDeep = errors.New("expression nesting too deep")
)

// ValidateExpression performs size validation on expression input
func ValidateExpression(expression string) error {
	if len(expression) > MaxExpressionLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrExpressionTooLong, len(expression), MaxExpressionLength)
	}
	return nil
}

// ValidateTokens validates token count
func ValidateTokens(tokens []Token) error {
	if len(tokens) > MaxTokens {
		return fmt.Errorf("%w: %d tokens (max %d)", ErrTooManyTokens, len(tokens), MaxTokens)
	}
	return nil
}

// ExpressionDepthCounter tracks nesting depth during parsing
type ExpressionDepthCounter struct {
	depth    int
	maxDepth int
}

// NewExpressionDepthCounter creates a new depth counter
func NewExpressionDepthCounter() *ExpressionDepthCounter {
	return &ExpressionDepthCounter{depth: 0, maxDepth: MaxExpressionDepth}
}

// Enter increments depth and returns error if limit exceeded
func (c *ExpressionDepthCounter) Enter() error {
	c.depth++
	if c.depth > c.maxDepth {
		return fmt.Errorf("%w: %d (max %d)", ErrExpressionTooDeep, c.depth, c.maxDepth)
	}
	return nil
}

// Exit decrements depth
func (c *ExpressionDepthCounter) Exit() {
	c.depth--
}
