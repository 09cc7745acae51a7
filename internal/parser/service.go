package parser

import (
	"fmt"
	"strconv"
	"strings"

	"dogwood/internal/ast"
	"dogwood/internal/diag"
	"dogwood/internal/source"
	"dogwood/internal/token"
)

// Service is the parser front end used by the REPL: parsing, token names
// for repair labels and the textual explanation of failures.
type Service struct {
	// Name is used for line positions, "<stdin>" when empty.
	Name string
	// LineNo is reported in explanations, 1 when zero.
	LineNo uint32
	Opts   Options
}

func (s Service) Parse(src string) (*ast.Expr, []diag.Failure) {
	res := Parse(s.line(src), s.Opts)
	return res.Expr, res.Failures
}

func (s Service) TokenName(k token.Kind) string {
	return k.Display()
}

// Explain renders a failure the way the help line shows it:
//
//	Parsing error at line 1 column 7. Repair sequences found:
//	   1: Insert ')'
func (s Service) Explain(src string, f diag.Failure) string {
	line := s.line(src)
	switch f := f.(type) {
	case diag.LexFailure:
		pos := line.Position(f.Err.Start)
		return fmt.Sprintf("Lexing error at line %d column %d.", pos.Line, pos.Col)

	case diag.ParseFailure:
		pos := line.Position(f.Lexeme.Start)
		var b strings.Builder
		fmt.Fprintf(&b, "Parsing error at line %d column %d.", pos.Line, pos.Col)
		if len(f.Repairs) == 0 {
			b.WriteString(" No repair sequences found.")
			return b.String()
		}
		b.WriteString(" Repair sequences found:")
		width := len(strconv.Itoa(len(f.Repairs)))
		for i, seq := range f.Repairs {
			// номера выравниваются по правому краю
			pad := width - len(strconv.Itoa(i+1)) + 1
			fmt.Fprintf(&b, "\n  %s%d: %s", strings.Repeat(" ", pad), i+1, s.formatSequence(src, seq))
		}
		return b.String()

	default:
		return ""
	}
}

func (s Service) formatSequence(src string, seq []diag.Repair) string {
	parts := make([]string, 0, len(seq))
	for i := 0; i < len(seq); i++ {
		r := seq[i]
		switch r.Kind {
		case diag.RepairDelete:
			sp := r.Span
			for i+1 < len(seq) && seq[i+1].Kind == diag.RepairDelete && sp.Touches(seq[i+1].Span) {
				i++
				sp = sp.Cover(seq[i].Span)
			}
			parts = append(parts, "Delete "+escape(source.SliceText(src, sp)))
		case diag.RepairInsert:
			parts = append(parts, "Insert "+s.TokenName(r.Token))
		case diag.RepairShift:
			parts = append(parts, "Shift "+escape(source.SliceText(src, r.Span)))
		}
	}
	return strings.Join(parts, ", ")
}

func (s Service) line(src string) source.Line {
	name := s.Name
	if name == "" {
		name = "<stdin>"
	}
	line := source.NewLine(name, src)
	if s.LineNo != 0 {
		line.No = s.LineNo
	}
	return line
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}
