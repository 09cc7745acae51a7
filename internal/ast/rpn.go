package ast

import (
	"iter"
	"strings"
)

// RPN yields the postfix rendering of e: a post-order walk emitting literal
// text for leaves and the operator symbol for infix nodes.
// The sequence can be ranged over any number of times.
func (e *Expr) RPN(src string) iter.Seq[string] {
	return func(yield func(string) bool) {
		e.walkPostfix(src, yield)
	}
}

func (e *Expr) walkPostfix(src string, yield func(string) bool) bool {
	if e == nil {
		return true
	}
	if e.IsLeaf() {
		return yield(e.Text(src))
	}
	return e.LHS.walkPostfix(src, yield) &&
		e.RHS.walkPostfix(src, yield) &&
		yield(e.Op.String())
}

// FormatRPN joins the postfix tokens of e with single spaces.
func FormatRPN(e *Expr, src string) string {
	var b strings.Builder
	for tok := range e.RPN(src) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok)
	}
	return b.String()
}
