package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"dogwood/internal/ast"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed tree:
// 1) every node span is non-empty and within the text
// 2) infix nodes have both children, and each child span lies inside the parent
// 3) the left operand ends before the right operand starts
func CheckSpanInvariants(e *ast.Expr, text string) error {
	if e == nil {
		return nil
	}
	n, err := safecast.Conv[uint32](len(text))
	if err != nil {
		return fmt.Errorf("len text overflow: %w", err)
	}
	return checkNode(e, n)
}

func checkNode(e *ast.Expr, n uint32) error {
	if !e.Span.Valid() {
		return fmt.Errorf("%s node span is reversed: %v", e.Kind, e.Span)
	}
	if e.Span.Empty() {
		return fmt.Errorf("%s node span is empty: %v", e.Kind, e.Span)
	}
	if e.Span.End > n {
		return fmt.Errorf("%s node span beyond text: %d > %d", e.Kind, e.Span.End, n)
	}
	if e.IsLeaf() {
		return nil
	}

	if e.LHS == nil || e.RHS == nil {
		return fmt.Errorf("infix %s at %v misses an operand", e.Op, e.Span)
	}
	for _, child := range []*ast.Expr{e.LHS, e.RHS} {
		if child.Span.Start < e.Span.Start || child.Span.End > e.Span.End {
			return fmt.Errorf("child span %v escapes parent %v", child.Span, e.Span)
		}
	}
	if e.LHS.Span.End > e.RHS.Span.Start {
		return fmt.Errorf("operands of %s overlap: %v and %v", e.Op, e.LHS.Span, e.RHS.Span)
	}
	if err := checkNode(e.LHS, n); err != nil {
		return err
	}
	return checkNode(e.RHS, n)
}
