package lexer

import (
	"dogwood/internal/token"
)

// Только десятичные цифры: [0-9]+. Диапазон u64 здесь не проверяется,
// литерал разбирается лениво, при вычислении.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Int, Span: sp, Text: lx.line.Slice(sp)}
}
