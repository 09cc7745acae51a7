package repl

import (
	"fmt"
	"io"

	"dogwood/internal/diagfmt"
)

// Printer writes turn results: postfix form and result to Out, reports to Err.
type Printer struct {
	Out     io.Writer
	Err     io.Writer
	Format  diagfmt.Format
	Pretty  diagfmt.PrettyOpts
	JSON    diagfmt.JSONOpts
	ShowRPN bool
	Quiet   bool // только результат, без отчётов
	Timings bool
}

// Print writes one turn. Reports come first, as they are discovered
// before evaluation.
func (p *Printer) Print(res *TurnResult) error {
	if !p.Quiet && res.Reports.Len() > 0 {
		if err := p.printReports(res); err != nil {
			return fmt.Errorf("print reports: %w", err)
		}
	}
	if res.Expr != nil && p.ShowRPN {
		if _, err := fmt.Fprintln(p.Out, res.RPN); err != nil {
			return err
		}
	}
	if res.HasValue {
		if _, err := fmt.Fprintf(p.Out, "Result: %d\n", res.Value); err != nil {
			return err
		}
	}
	if p.Timings && res.Timer != nil {
		if _, err := fmt.Fprintln(p.Err, res.Timer.Line()); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printReports(res *TurnResult) error {
	reports := res.Reports.Items()
	switch p.Format {
	case diagfmt.FormatShort:
		return diagfmt.Short(p.Err, res.Line, reports)
	case diagfmt.FormatJSON:
		return diagfmt.JSON(p.Err, res.Line, reports, p.JSON)
	case diagfmt.FormatMsgPack:
		return diagfmt.MsgPack(p.Err, res.Line, reports, p.JSON)
	default:
		if err := diagfmt.Pretty(p.Err, res.Line, reports, p.Pretty); err != nil {
			return err
		}
		if n := res.Reports.Dropped(); n > 0 {
			_, err := fmt.Fprintf(p.Err, "... %d more reports not shown (limit %d)\n", n, res.Reports.Cap())
			return err
		}
		return nil
	}
}
