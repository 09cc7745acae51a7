package parser

import (
	"dogwood/internal/diag"
	"dogwood/internal/source"
	"dogwood/internal/token"
)

// operandExpected handles a token that cannot start an operand. Stray
// tokens are deleted up to the next operand start. When none follows, an
// INT is inserted instead and the line loses its tree.
func (p *Parser) operandExpected() operand {
	lexeme := p.peek()

	var deletes []diag.Repair
	for j := p.pos; ; j++ {
		tok := p.toks[j]
		if tok.StartsOperand() {
			// удаление спасает разбор, дерево сохраняется
			seqs := [][]diag.Repair{deletes}
			// INT перед оператором годится, только если за ним идёт операнд
			if lexeme.IsBinaryOp() && p.toks[p.pos+1].StartsOperand() {
				seqs = append(seqs, []diag.Repair{diag.Insert(token.Int)})
			}
			p.fail(lexeme, seqs...)
			p.pos = j
			return p.parseAtom()
		}
		if tok.Kind == token.EOF || (p.depth > 0 && tok.Kind == token.RParen) {
			break
		}
		deletes = append(deletes, diag.Delete(tok.Span))
	}

	seq := append(deletes, diag.Insert(token.Int))
	p.fail(lexeme, seq)
	p.pos += len(deletes)
	p.broken = true
	return operand{span: source.Span{Start: lexeme.Span.Start, End: lexeme.Span.Start}}
}

// operatorExpected handles an operand or an unmatched ')' where a binary
// operator should be. Tokens are deleted up to an operator, EOF or the ')'
// of an open group. The tree survives.
func (p *Parser) operatorExpected() {
	lexeme := p.peek()

	var deletes []diag.Repair
	for {
		tok := p.peek()
		if tok.IsBinaryOp() || tok.Kind == token.EOF || p.closesGroup() {
			break
		}
		deletes = append(deletes, diag.Delete(tok.Span))
		p.advance()
	}

	seqs := [][]diag.Repair{deletes}
	if lexeme.Kind == token.Int {
		seqs = append(seqs, []diag.Repair{diag.Insert(token.Plus), diag.Shift(lexeme.Span)})
	}
	p.fail(lexeme, seqs...)
}

// missingClose inserts ')' at the end of the line. Consecutive closes at the
// same place extend one repair sequence.
func (p *Parser) missingClose() {
	lexeme := p.peek()
	if n := len(p.failures); n > 0 {
		if last, ok := p.failures[n-1].(diag.ParseFailure); ok && last.Lexeme == lexeme.Span && allInserts(last.First()) {
			last.Repairs[0] = append(last.Repairs[0], diag.Insert(token.RParen))
			p.failures[n-1] = last
			return
		}
	}
	p.fail(lexeme, []diag.Repair{diag.Insert(token.RParen)})
}

func allInserts(seq []diag.Repair) bool {
	for _, r := range seq {
		if !r.IsInsert() {
			return false
		}
	}
	return len(seq) > 0
}

func (p *Parser) fail(lexeme token.Token, seqs ...[]diag.Repair) {
	if p.opts.Enough() {
		return
	}
	p.opts.CurrentErrors++
	p.failures = append(p.failures, diag.ParseFailure{Lexeme: lexeme.Span, Repairs: seqs})
}
