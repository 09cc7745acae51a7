package eval

import (
	"fmt"

	"dogwood/internal/ast"
	"dogwood/internal/source"
)

// FailureKind classifies evaluation failures.
type FailureKind uint8

const (
	// Overflow covers every checked-rule failure: additive and multiplicative
	// overflow, subtraction underflow and a zero divisor.
	Overflow FailureKind = iota + 1
	// LiteralOutOfRange means a literal's text is not a valid u64.
	LiteralOutOfRange
)

func (k FailureKind) String() string {
	switch k {
	case Overflow:
		return "overflow"
	case LiteralOutOfRange:
		return "literal out of range"
	default:
		return "unknown"
	}
}

// Failure is the single error an evaluation can produce.
type Failure struct {
	Kind FailureKind
	// Overflow: operand spans and the operator that failed.
	LHS source.Span
	RHS source.Span
	Op  ast.Op
	// LiteralOutOfRange: the literal's span and the parse error behind it.
	Span  source.Span
	Cause error
}

func (f *Failure) Error() string {
	switch f.Kind {
	case Overflow:
		return fmt.Sprintf("evaluation overflowed: %s with lhs %s, rhs %s", f.Op, f.LHS, f.RHS)
	case LiteralOutOfRange:
		return fmt.Sprintf("literal at %s cannot be represented as a u64", f.Span)
	default:
		return "evaluation failed"
	}
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

func overflow(lhs, rhs *ast.Expr, op ast.Op) *Failure {
	return &Failure{Kind: Overflow, LHS: lhs.Span, RHS: rhs.Span, Op: op}
}

func literalOutOfRange(span source.Span, cause error) *Failure {
	return &Failure{Kind: LiteralOutOfRange, Span: span, Cause: cause}
}
