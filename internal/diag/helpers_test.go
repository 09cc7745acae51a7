package diag

import (
	"strings"

	"dogwood/internal/ast"
	"dogwood/internal/source"
)

// buildTree handles "N" and "N op M" with single spaces, enough for renderer tests.
func buildTree(src string) *ast.Expr {
	parts := strings.Fields(src)
	if len(parts) == 1 {
		return ast.NewNumber(source.SpanOf(0, len(src)))
	}
	lhsEnd := len(parts[0])
	rhsStart := len(src) - len(parts[2])
	var op ast.Op
	for _, o := range []ast.Op{ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpPow} {
		if o.String() == parts[1] {
			op = o
		}
	}
	return ast.NewInfix(source.SpanOf(0, len(src)),
		ast.NewNumber(source.SpanOf(0, lhsEnd)), op,
		ast.NewNumber(source.SpanOf(rhsStart, len(src))))
}
