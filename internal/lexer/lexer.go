package lexer

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"dogwood/internal/source"
	"dogwood/internal/token"
)

type Lexer struct {
	line   source.Line
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
}

func New(line source.Line, opts Options) *Lexer {
	return &Lexer{
		line:   line,
		cursor: NewCursor(line.Text),
		opts:   opts,
	}
}

// Next возвращает следующий значимый токен.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipSpace()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
		}
	}

	ch := lx.cursor.Peek()
	if isDec(ch) {
		return lx.scanNumber()
	}
	return lx.scanOperatorOrPunct()
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All lexes the rest of the line, EOF included.
func (lx *Lexer) All() []token.Token {
	out := make([]token.Token, 0, 16)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// EmptySpan returns a zero-length span at the current cursor position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) skipSpace() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\r', '\n':
			lx.cursor.Bump()
		default:
			return
		}
	}
}

// invalid consumes one whole rune so that spans never split a UTF-8 sequence.
func (lx *Lexer) invalid(start Mark) token.Token {
	lx.cursor.Reset(start)
	rest := lx.line.Text[lx.cursor.Off:]
	// символ вместе с комбинирующими знаками после него
	size := norm.NFC.NextBoundaryInString(rest, true)
	if size <= 0 {
		_, size = utf8.DecodeRuneInString(rest)
	}
	lx.cursor.Advance(size)
	sp := lx.cursor.SpanFrom(start)
	lx.report(sp, "unknown character")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.line.Slice(sp)}
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }
