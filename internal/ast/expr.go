package ast

import (
	"dogwood/internal/source"
)

type ExprKind uint8

const (
	// ExprNumber is a literal leaf; its value is read from the source lazily.
	ExprNumber ExprKind = iota
	// ExprInfix is a binary operation node.
	ExprInfix
)

func (k ExprKind) String() string {
	switch k {
	case ExprNumber:
		return "Number"
	case ExprInfix:
		return "Infix"
	default:
		return "Unknown"
	}
}

// Expr is a node of the expression tree. Children are owned by their parent
// and are never shared between nodes.
type Expr struct {
	Kind ExprKind
	Span source.Span
	// только для ExprInfix
	Op  Op
	LHS *Expr
	RHS *Expr
}

// NewNumber creates a literal leaf covering span.
func NewNumber(span source.Span) *Expr {
	return &Expr{Kind: ExprNumber, Span: span}
}

// NewInfix creates an infix node; span must cover the whole sub-expression.
func NewInfix(span source.Span, lhs *Expr, op Op, rhs *Expr) *Expr {
	return &Expr{Kind: ExprInfix, Span: span, Op: op, LHS: lhs, RHS: rhs}
}

func (e *Expr) IsLeaf() bool {
	return e.Kind == ExprNumber
}

// Text returns the source text covered by the node.
func (e *Expr) Text(src string) string {
	return source.SliceText(src, e.Span)
}

// Depth returns the height of the tree rooted at e (a leaf has depth 1).
func (e *Expr) Depth() int {
	if e == nil {
		return 0
	}
	if e.IsLeaf() {
		return 1
	}
	return 1 + max(e.LHS.Depth(), e.RHS.Depth())
}

// Count returns the number of nodes in the tree rooted at e.
func (e *Expr) Count() int {
	if e == nil {
		return 0
	}
	if e.IsLeaf() {
		return 1
	}
	return 1 + e.LHS.Count() + e.RHS.Count()
}
