package parser

import (
	"dogwood/internal/ast"
	"dogwood/internal/diag"
	"dogwood/internal/lexer"
	"dogwood/internal/source"
	"dogwood/internal/token"
)

type Options struct {
	// MaxErrors caps recorded failures; 0 means no cap.
	MaxErrors     uint
	CurrentErrors uint
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Result of parsing one line. Expr is nil when the line cannot produce a
// tree; Failures may be non-empty even when Expr is set.
type Result struct {
	Expr     *ast.Expr
	Failures []diag.Failure
	Tokens   []token.Token
}

// Parser: состояние парсера на одну строку
type Parser struct {
	toks     []token.Token
	pos      int
	depth    int  // глубина незакрытых скобок
	broken   bool // дерево потеряно: была вставка операнда
	opts     Options
	failures []diag.Failure
}

// lexErrors keeps only the first lexing error, later ones are not reachable.
type lexErrors struct {
	first *source.Span
}

func (l *lexErrors) ReportLex(sp source.Span, _ string) {
	if l.first == nil {
		l.first = &sp
	}
}

// Parse lexes and parses one line. A lexing error stops the line: the
// result then holds that single failure and no tree.
func Parse(line source.Line, opts Options) Result {
	var lexErr lexErrors
	toks := lexer.New(line, lexer.Options{Reporter: &lexErr}).All()
	if lexErr.first != nil {
		return Result{
			Failures: []diag.Failure{diag.LexFailure{Err: *lexErr.first}},
			Tokens:   toks,
		}
	}

	p := Parser{toks: toks, opts: opts}
	// на верхнем уровне parseExpr возвращается только на EOF
	root := p.parseExpr(0)

	res := Result{Failures: p.failures, Tokens: toks}
	if !p.broken {
		res.Expr = root.expr
	}
	return res
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// advance: съедает текущий токен. EOF не съедается никогда.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

// closesGroup: ')' закрывает открытую скобку
func (p *Parser) closesGroup() bool {
	return p.depth > 0 && p.at(token.RParen)
}
