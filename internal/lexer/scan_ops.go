package lexer

import (
	"dogwood/internal/token"
)

// '*' жадно забирает второй '*'.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{
			Kind: k,
			Span: sp,
			Text: lx.line.Slice(sp),
		}
	}

	switch lx.cursor.Bump() {
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		if lx.cursor.Eat('*') {
			return emit(token.StarStar)
		}
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '%':
		return emit(token.Percent)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	default:
		// неизвестный символ
		return lx.invalid(start)
	}
}
