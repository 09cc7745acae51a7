package lexer

import (
	"dogwood/internal/source"
)

// Reporter: тонкий интерфейс, чтобы не тянуть diag сюда.
// Лексер **только вызывает** его; решение, что делать с ошибкой, принимает внешний слой.
type Reporter interface {
	ReportLex(span source.Span, msg string)
}

type Options struct {
	Reporter Reporter // может быть nil, тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) report(sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.ReportLex(sp, msg)
	}
}
