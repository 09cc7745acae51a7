package eval

import (
	"fmt"
	"strconv"

	"dogwood/internal/ast"
	"dogwood/internal/trace"
)

// Options tune an Evaluator. The zero value is ready to use.
type Options struct {
	// Span receives a mark per computed node when node tracing is on.
	Span *trace.Span
}

// Evaluator walks expression trees over the u64 domain.
// It keeps no state between calls and is safe for concurrent use.
type Evaluator struct {
	opts Options
}

func New(opts Options) *Evaluator {
	return &Evaluator{opts: opts}
}

// Evaluate computes e against src, the line its spans refer to.
// A non-nil error is always a *Failure.
func Evaluate(src string, e *ast.Expr) (uint64, error) {
	return New(Options{}).Evaluate(src, e)
}

// Evaluate computes e against src. Operands are evaluated left to right and
// the first failure stops the walk.
func (ev *Evaluator) Evaluate(src string, e *ast.Expr) (uint64, error) {
	if e == nil {
		return 0, fmt.Errorf("evaluate: nil expression")
	}
	v, f := ev.eval(src, e)
	if f != nil {
		return 0, f
	}
	return v, nil
}

func (ev *Evaluator) eval(src string, e *ast.Expr) (uint64, *Failure) {
	switch e.Kind {
	case ast.ExprNumber:
		// литерал разбирается только сейчас, когда узел достигнут
		v, err := strconv.ParseUint(e.Text(src), 10, 64)
		if err != nil {
			return 0, literalOutOfRange(e.Span, err)
		}
		ev.point(e, v)
		return v, nil

	case ast.ExprInfix:
		lhs, f := ev.eval(src, e.LHS)
		if f != nil {
			return 0, f
		}
		rhs, f := ev.eval(src, e.RHS)
		if f != nil {
			return 0, f
		}
		rule, ok := RuleFor(e.Op)
		if !ok {
			panic(fmt.Errorf("eval: no rule for operator %d", e.Op))
		}
		v, ok := rule(lhs, rhs)
		if !ok {
			return 0, overflow(e.LHS, e.RHS, e.Op)
		}
		ev.point(e, v)
		return v, nil

	default:
		panic(fmt.Errorf("eval: unexpected node kind %v", e.Kind))
	}
}

func (ev *Evaluator) point(e *ast.Expr, v uint64) {
	if !ev.opts.Span.Wants(trace.ScopeNode) {
		return
	}
	ev.opts.Span.Mark(trace.ScopeNode, e.Kind.String(), fmt.Sprintf("%s = %d", e.Span, v))
}
