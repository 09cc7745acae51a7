package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"dogwood/internal/diag"
	"dogwood/internal/source"
)

// Short выводит по одной строке на отчёт:
// <name>:<line>:<col>: <sev> <CODE>: <message>
func Short(w io.Writer, line source.Line, reports []diag.Report) error {
	var b strings.Builder
	for i := range reports {
		r := &reports[i]
		pos := line.Position(r.Primary().Start)
		fmt.Fprintf(&b, "%s:%d:%d: %s %s: %s\n",
			line.Name, pos.Line, pos.Col,
			strings.ToLower(r.Severity.String()), r.Code.ID(), r.Message)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
