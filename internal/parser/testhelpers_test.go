package parser

import (
	"fmt"
	"strings"
	"testing"

	"dogwood/internal/ast"
	"dogwood/internal/diag"
	"dogwood/internal/source"
)

func parseTestInput(t *testing.T, input string) Result {
	t.Helper()
	return Parse(source.NewLine("test", input), Options{})
}

func sp(start, end uint32) source.Span { return source.Span{Start: start, End: end} }

func failuresSummary(fs []diag.Failure) string {
	if len(fs) == 0 {
		return "<none>"
	}
	lines := make([]string, len(fs))
	for i, f := range fs {
		lines[i] = fmt.Sprintf("[%s] %v", f.Code().ID(), f)
	}
	return strings.Join(lines, "; ")
}

func rpn(e *ast.Expr, src string) string {
	if e == nil {
		return "<nil>"
	}
	return ast.FormatRPN(e, src)
}
