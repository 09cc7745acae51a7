package repl

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"dogwood/internal/ast"
	"dogwood/internal/diag"
	"dogwood/internal/eval"
	"dogwood/internal/observ"
	"dogwood/internal/source"
	"dogwood/internal/trace"
)

// Options tune a Session.
type Options struct {
	// MaxReports caps the reports kept per line; 0 means no cap.
	MaxReports int
}

// Session runs turns against one Frontend. Turns share nothing, so a
// Session may serve several goroutines.
type Session struct {
	fe   Frontend
	opts Options
}

func NewSession(fe Frontend, opts Options) *Session {
	return &Session{fe: fe, opts: opts}
}

// TurnResult is everything one line produced.
type TurnResult struct {
	// Line is the input as read; report spans point into Line.Text.
	Line     source.Line
	Expr     *ast.Expr
	RPN      string
	Value    uint64
	HasValue bool
	Reports  *diag.Bag
	Timer    *observ.Timer
}

// Failed reports whether the line produced any report. A zero result
// (a skipped blank line) has not failed.
func (r *TurnResult) Failed() bool {
	if r.Reports == nil {
		return false
	}
	return r.Reports.HasErrors() || r.Reports.Dropped() > 0
}

// Turn parses, evaluates and renders one line. Failures of the line are
// reports in the result; the error is only set when ctx is done.
func (s *Session) Turn(ctx context.Context, line source.Line) (TurnResult, error) {
	if err := ctx.Err(); err != nil {
		return TurnResult{}, err
	}

	detailed := trace.FromContext(ctx).Level().Detailed()
	ctx, turnSpan := trace.Start(ctx, trace.ScopeTurn, "turn")

	res := TurnResult{
		Line:    line,
		Reports: diag.NewBag(s.opts.MaxReports),
		Timer:   observ.NewTimer(),
	}

	// lex+parse
	idx := res.Timer.Begin("lex+parse")
	_, span := trace.Start(ctx, trace.ScopePhase, "lex+parse")
	expr, failures := s.fe.Parse(line.Text)
	note := fmt.Sprintf("%d failures", len(failures))
	if detailed {
		span.Set("failures", strconv.Itoa(len(failures)))
	}
	span.End(note)
	res.Timer.End(idx, note)

	// render parser failures
	if len(failures) > 0 {
		idx = res.Timer.Begin("render")
		_, span = trace.Start(ctx, trace.ScopePhase, "render")
		for _, f := range failures {
			r := diag.Render(line.Text, f, s.fe)
			res.Reports.Add(r)
		}
		span.End("")
		res.Timer.End(idx, "")
	}

	if expr != nil {
		res.Expr = expr
		res.RPN = ast.FormatRPN(expr, line.Text)

		idx = res.Timer.Begin("eval")
		_, span = trace.Start(ctx, trace.ScopePhase, "eval")
		if detailed {
			span.Set("nodes", strconv.Itoa(expr.Count())).Set("depth", strconv.Itoa(expr.Depth()))
		}
		ev := eval.New(eval.Options{Span: span})
		v, err := ev.Evaluate(line.Text, expr)
		if err != nil {
			var f *eval.Failure
			if !errors.As(err, &f) {
				panic(fmt.Errorf("repl: unexpected evaluation error: %w", err))
			}
			span.End(f.Kind.String())
			res.Timer.End(idx, f.Kind.String())
			res.Reports.Add(diag.RenderEval(f))
		} else {
			span.End(strconv.FormatUint(v, 10))
			res.Timer.End(idx, "")
			res.Value, res.HasValue = v, true
		}
	}

	outcome := "ok"
	if res.Failed() {
		outcome = fmt.Sprintf("%d reports", res.Reports.Len())
	}
	turnSpan.End(outcome)
	return res, nil
}
