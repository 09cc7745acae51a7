package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"dogwood/internal/diag"
	"dogwood/internal/source"
)

type palette struct {
	severity *color.Color
	code     *color.Color
	gutter   *color.Color
	label    *color.Color
	help     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		severity: color.New(color.FgRed, color.Bold),
		code:     color.New(color.FgRed),
		gutter:   color.New(color.FgBlue, color.Bold),
		label:    color.New(color.FgMagenta, color.Bold),
		help:     color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.severity, p.code, p.gutter, p.label, p.help} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует отчёты в человекочитаемый вид:
//
//	error[SYN2001]: parsing error
//	 --> <stdin>:1:7
//	  |
//	1 | 1 + 2 ))
//	  |       ^^ delete ))
//	  = help: Parsing error at line 1 column 7. ...
//
// Каждая метка получает свою строку подчёркивания, в порядке меток.
func Pretty(w io.Writer, line source.Line, reports []diag.Report, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for i := range reports {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := prettyOne(w, line, &reports[i], opts, pal); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, line source.Line, r *diag.Report, opts PrettyOpts, pal palette) error {
	var b strings.Builder

	sev := strings.ToLower(r.Severity.String())
	fmt.Fprintf(&b, "%s%s: %s\n", pal.severity.Sprint(sev), pal.code.Sprint("["+r.Code.ID()+"]"), r.Message)

	lineNo := fmt.Sprint(line.No)
	pad := strings.Repeat(" ", len(lineNo))
	pos := line.Position(r.Primary().Start)
	fmt.Fprintf(&b, "%s%s %s:%d:%d\n", pad, pal.gutter.Sprint("-->"), line.Name, pos.Line, pos.Col)

	if opts.Context {
		bar := pal.gutter.Sprint("|")
		fmt.Fprintf(&b, "%s %s\n", pad, bar)
		fmt.Fprintf(&b, "%s %s %s\n", pal.gutter.Sprint(lineNo), bar, expandTabs(line.Text))
		for _, l := range r.Labels {
			col, width := underline(line.Text, l.Span)
			marks := strings.Repeat(" ", col) + pal.label.Sprint(strings.Repeat("^", width))
			if l.Text != "" {
				marks += " " + pal.label.Sprint(l.Text)
			}
			fmt.Fprintf(&b, "%s %s %s\n", pad, bar, marks)
		}
	} else {
		for _, l := range r.Labels {
			lp := line.Position(l.Span.Start)
			fmt.Fprintf(&b, "%s %s %d: %s\n", pad, pal.gutter.Sprint("="), lp.Col, l.Text)
		}
	}

	if opts.ShowHelp && r.Help != "" {
		prefix := pad + " " + pal.gutter.Sprint("=") + " " + pal.help.Sprint("help") + ": "
		indent := pad + strings.Repeat(" ", len(" = help: "))
		for i, hl := range strings.Split(r.Help, "\n") {
			if i == 0 {
				b.WriteString(prefix + hl + "\n")
			} else {
				b.WriteString(indent + hl + "\n")
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// tabWidth is the tab stop used when echoing the source line.
const tabWidth = 4

// expandTabs replaces tabs with spaces up to the next tab stop, so the echoed
// line and the caret row agree on columns.
func expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}

// underline returns the display column and width of sp within text.
// Zero-width spans still get one caret.
func underline(text string, sp source.Span) (col, width int) {
	head := source.SliceText(text, source.Span{End: sp.Start})
	body := strings.ReplaceAll(source.SliceText(text, sp), "\n", " ")
	col = runewidth.StringWidth(expandTabs(head))
	width = runewidth.StringWidth(expandTabs(head+body)) - col
	if width <= 0 {
		width = 1
	}
	return col, width
}
