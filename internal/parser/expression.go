package parser

import (
	"fmt"

	"dogwood/internal/ast"
	"dogwood/internal/source"
	"dogwood/internal/token"
)

// operand is a parsed sub-expression together with the source it covers.
// span includes parentheses, expr.Span does not.
type operand struct {
	expr *ast.Expr
	span source.Span
}

// parseExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseExpr(minPrec int) operand {
	left := p.parseAtom()

	for {
		tok := p.peek()

		prec, isRightAssoc := getBinaryOperatorPrec(tok.Kind)
		if prec < 0 {
			if tok.Kind == token.EOF || p.closesGroup() {
				return left
			}
			// операнд или лишняя ')' там, где ждали оператор
			p.operatorExpected()
			continue
		}
		if prec < minPrec {
			return left
		}

		opTok := p.advance()

		nextMinPrec := prec + 1
		if isRightAssoc {
			nextMinPrec = prec
		}

		right := p.parseExpr(nextMinPrec)
		left = p.infix(left, opTok, right)
	}
}

func (p *Parser) infix(left operand, opTok token.Token, right operand) operand {
	span := left.span.Cover(opTok.Span).Cover(right.span)
	if left.expr == nil || right.expr == nil {
		return operand{span: span}
	}
	op, ok := tokenKindToBinaryOp(opTok.Kind)
	if !ok {
		panic(fmt.Errorf("parser: %v is not a binary operator", opTok.Kind))
	}
	return operand{expr: ast.NewInfix(span, left.expr, op, right.expr), span: span}
}

// parseAtom разбирает INT или '(' Expr ')'
func (p *Parser) parseAtom() operand {
	switch p.peek().Kind {
	case token.Int:
		tok := p.advance()
		return operand{expr: ast.NewNumber(tok.Span), span: tok.Span}

	case token.LParen:
		open := p.advance()
		p.depth++
		inner := p.parseExpr(0)
		p.depth--
		span := open.Span.Cover(inner.span)
		if p.at(token.RParen) {
			span = span.Cover(p.advance().Span)
		} else {
			p.missingClose()
		}
		return operand{expr: inner.expr, span: span}

	default:
		return p.operandExpected()
	}
}
