package token

import (
	"dogwood/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsBinaryOp reports whether the token is an infix arithmetic operator.
func (t Token) IsBinaryOp() bool {
	switch t.Kind {
	case Plus, Minus, Star, StarStar, Slash, Percent:
		return true
	default:
		return false
	}
}

// StartsOperand reports whether an operand can begin with this token.
func (t Token) StartsOperand() bool {
	return t.Kind == Int || t.Kind == LParen
}
