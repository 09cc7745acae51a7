package diagfmt

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"dogwood/internal/ast"
)

// TreeOpts configures FormatTree.
type TreeOpts struct {
	Spans bool // добавлять байтовые спаны к меткам
}

// FormatTree draws e as an ASCII tree, operators above their operands:
//
//	  +
//	/ | \
//	1   2
func FormatTree(w io.Writer, e *ast.Expr, src string, opts TreeOpts) error {
	if e == nil {
		_, err := io.WriteString(w, "<no tree>\n")
		return err
	}
	var b strings.Builder
	for _, row := range drawExpr(e, src, opts).rows {
		b.WriteString(strings.TrimRight(row, " "))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// box is a drawn subtree. All rows have the same display width and col is
// the column the parent's connector points at.
type box struct {
	rows []string
	col  int
}

func (b box) width() int { return runewidth.StringWidth(b.rows[0]) }

// operandGap separates the two operand boxes.
const operandGap = 3

func drawExpr(e *ast.Expr, src string, opts TreeOpts) box {
	label := e.Op.String()
	if e.Kind == ast.ExprNumber {
		label = e.Text(src)
	}
	if opts.Spans {
		label += " @" + e.Span.String()
	}
	lw := runewidth.StringWidth(label)
	if e.Kind == ast.ExprNumber {
		return box{rows: []string{label}, col: lw / 2}
	}

	lhs, rhs := drawExpr(e.LHS, src, opts), drawExpr(e.RHS, src, opts)
	left := lhs.col
	right := lhs.width() + operandGap + rhs.col
	mid := (left + right) / 2

	// метка шире, чем расстояние между операндами: сдвигаем операнды вправо
	start := mid - lw/2
	shift := max(0, -start)
	start, left, right, mid = start+shift, left+shift, right+shift, mid+shift

	width := max(shift+lhs.width()+operandGap+rhs.width(), start+lw)
	pad := func(s string) string {
		return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
	}

	conn := []byte(strings.Repeat(" ", width))
	conn[left], conn[mid], conn[right] = '/', '|', '\\'

	rows := []string{pad(strings.Repeat(" ", start) + label), string(conn)}
	for i := range max(len(lhs.rows), len(rhs.rows)) {
		rows = append(rows, pad(strings.Repeat(" ", shift)+rowOf(lhs, i)+strings.Repeat(" ", operandGap)+rowOf(rhs, i)))
	}
	return box{rows: rows, col: mid}
}

// rowOf returns row i of b, blank past its last row.
func rowOf(b box, i int) string {
	if i < len(b.rows) {
		return b.rows[i]
	}
	return strings.Repeat(" ", b.width())
}
