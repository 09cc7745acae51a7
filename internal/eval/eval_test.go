package eval_test

import (
	"errors"
	"strconv"
	"testing"

	"dogwood/internal/ast"
	"dogwood/internal/eval"
	"dogwood/internal/parser"
	"dogwood/internal/source"
)

func num(start, end uint32) *ast.Expr {
	return ast.NewNumber(source.Span{Start: start, End: end})
}

func mustParse(t *testing.T, input string) *ast.Expr {
	t.Helper()
	res := parser.Parse(source.NewLine("test", input), parser.Options{})
	if len(res.Failures) != 0 {
		t.Fatalf("unexpected failures for %q: %v", input, res.Failures)
	}
	if res.Expr == nil {
		t.Fatalf("no tree for %q", input)
	}
	return res.Expr
}

func TestEvaluateBasic(t *testing.T) {
	tests := []struct {
		input string
		want  uint64
	}{
		{"1 + 1", 2},
		{"1 + 2", 3},
		{"3 * 5", 15},
		{"3 ** 2", 9},
		{"18446744073709551615", 18446744073709551615},
		{"0", 0},
		{"007", 7},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := eval.Evaluate(tt.input, mustParse(t, tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEvaluateOrderOfOperations(t *testing.T) {
	tests := []struct {
		input string
		want  uint64
	}{
		{"3 + 7 * 2", 17},
		{"3 + 5 ** 3 ** 3", 7450580596923828128},
		{"30 / 2 * 3", 45},
		{"(30 / 2) * 3", 45},
		{"30 / (2 * 3)", 5},
		{"2 ** 5 % 6", 2},
		{"10 - 4 - 3", 3},
		{"2 ** 3 ** 2", 512},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := eval.Evaluate(tt.input, mustParse(t, tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLiteralRange(t *testing.T) {
	for _, n := range []uint64{0, 1, 42, 1 << 63, 18446744073709551615} {
		src := strconv.FormatUint(n, 10)
		got, err := eval.Evaluate(src, num(0, uint32(len(src))))
		if err != nil || got != n {
			t.Fatalf("%s: got (%d, %v)", src, got, err)
		}
	}

	src := "99999999999999999999"
	_, err := eval.Evaluate(src, num(0, uint32(len(src))))
	var f *eval.Failure
	if !errors.As(err, &f) {
		t.Fatalf("expected *eval.Failure, got %v", err)
	}
	if f.Kind != eval.LiteralOutOfRange || f.Span != (source.Span{Start: 0, End: 20}) {
		t.Fatalf("unexpected failure %+v", f)
	}
	if !errors.Is(err, strconv.ErrRange) {
		t.Fatalf("cause should be a range error, got %v", f.Cause)
	}
}

func TestLiteralWithForeignCharacters(t *testing.T) {
	// парсер такого не пропустит, но вычислитель обязан не доверять дереву
	src := "12a"
	_, err := eval.Evaluate(src, num(0, 3))
	var f *eval.Failure
	if !errors.As(err, &f) || f.Kind != eval.LiteralOutOfRange {
		t.Fatalf("expected LiteralOutOfRange, got %v", err)
	}
}

func TestOverflowReportsOperandSpans(t *testing.T) {
	tests := []struct {
		input    string
		lhs, rhs source.Span
	}{
		{"5 / 0", source.Span{Start: 0, End: 1}, source.Span{Start: 4, End: 5}},
		{"5 % 0", source.Span{Start: 0, End: 1}, source.Span{Start: 4, End: 5}},
		{"1 - 2", source.Span{Start: 0, End: 1}, source.Span{Start: 4, End: 5}},
		{"18446744073709551615 + 1", source.Span{Start: 0, End: 20}, source.Span{Start: 23, End: 24}},
		{"2 ** 64", source.Span{Start: 0, End: 1}, source.Span{Start: 5, End: 7}},
		{"(1 + 1) * (0 - 1)", source.Span{Start: 11, End: 12}, source.Span{Start: 15, End: 16}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := eval.Evaluate(tt.input, mustParse(t, tt.input))
			var f *eval.Failure
			if !errors.As(err, &f) {
				t.Fatalf("expected *eval.Failure, got %v", err)
			}
			if f.Kind != eval.Overflow {
				t.Fatalf("kind = %v", f.Kind)
			}
			if f.LHS != tt.lhs || f.RHS != tt.rhs {
				t.Fatalf("spans lhs=%v rhs=%v, want %v %v", f.LHS, f.RHS, tt.lhs, tt.rhs)
			}
		})
	}
}

func TestShortCircuitOnLeftFailure(t *testing.T) {
	// левый литерал вне диапазона, правая часть тоже сломана: сообщается только левая
	src := "99999999999999999999 + 88888888888888888888"
	tree := ast.NewInfix(source.Span{Start: 0, End: 43}, num(0, 20), ast.OpAdd, num(23, 43))
	_, err := eval.Evaluate(src, tree)
	var f *eval.Failure
	if !errors.As(err, &f) || f.Span != (source.Span{Start: 0, End: 20}) {
		t.Fatalf("expected failure on the left literal, got %v", err)
	}
}

func TestTreeShapeIsAuthoritative(t *testing.T) {
	// "8 - 4 - 2" собранное вправо: 8 - (4 - 2) = 6
	src := "8 - 4 - 2"
	right := ast.NewInfix(source.Span{Start: 4, End: 9}, num(4, 5), ast.OpSub, num(8, 9))
	tree := ast.NewInfix(source.Span{Start: 0, End: 9}, num(0, 1), ast.OpSub, right)
	got, err := eval.Evaluate(src, tree)
	if err != nil || got != 6 {
		t.Fatalf("got (%d, %v), want 6", got, err)
	}
}

func TestEvaluateNil(t *testing.T) {
	if _, err := eval.Evaluate("", nil); err == nil {
		t.Fatal("nil tree must be an error")
	}
}

func TestEvaluatorIsReentrant(t *testing.T) {
	ev := eval.New(eval.Options{})
	src := "2 ** 10"
	tree := mustParse(t, src)
	t.Run("group", func(t *testing.T) {
		for i := 0; i < 8; i++ {
			t.Run(strconv.Itoa(i), func(t *testing.T) {
				t.Parallel()
				got, err := ev.Evaluate(src, tree)
				if err != nil || got != 1024 {
					t.Errorf("got (%d, %v)", got, err)
				}
			})
		}
	})
}
