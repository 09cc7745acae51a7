package diag

import (
	"errors"
	"reflect"
	"strconv"
	"testing"

	"dogwood/internal/eval"
	"dogwood/internal/source"
	"dogwood/internal/token"
)

type fakeExplainer struct{}

func (fakeExplainer) TokenName(k token.Kind) string { return "<" + k.String() + ">" }
func (fakeExplainer) Explain(src string, f Failure) string {
	return "explained " + strconv.Itoa(int(f.Span().Start))
}

func sp(start, end uint32) source.Span { return source.Span{Start: start, End: end} }

func TestRenderLex(t *testing.T) {
	r := Render("1 $ 2", LexFailure{Err: sp(2, 3)}, fakeExplainer{})
	want := Report{
		Severity: SevError,
		Code:     LexUnknownChar,
		Message:  "lexing error",
		Labels:   []Label{{Text: "here", Span: sp(2, 3)}},
		Help:     "explained 2",
	}
	if !reflect.DeepEqual(r, want) {
		t.Fatalf("got %+v\nwant %+v", r, want)
	}
}

func TestRenderParseLabels(t *testing.T) {
	tests := []struct {
		name string
		src  string
		f    ParseFailure
		want []Label
	}{
		{
			name: "adjacent deletes merge",
			src:  "1 + 2 ))",
			f: ParseFailure{Lexeme: sp(6, 7), Repairs: [][]Repair{{
				Delete(sp(6, 7)), Delete(sp(7, 8)),
			}}},
			want: []Label{{Text: "delete ))", Span: sp(6, 8)}},
		},
		{
			name: "gap prevents merge",
			src:  "1 + 2 ) )",
			f: ParseFailure{Lexeme: sp(6, 7), Repairs: [][]Repair{{
				Delete(sp(6, 7)), Delete(sp(8, 9)),
			}}},
			want: []Label{
				{Text: "delete )", Span: sp(6, 7)},
				{Text: "delete )", Span: sp(8, 9)},
			},
		},
		{
			name: "three touching deletes",
			src:  "1 )))",
			f: ParseFailure{Lexeme: sp(2, 3), Repairs: [][]Repair{{
				Delete(sp(2, 3)), Delete(sp(3, 4)), Delete(sp(4, 5)),
			}}},
			want: []Label{{Text: "delete )))", Span: sp(2, 5)}},
		},
		{
			name: "insert points at the lexeme",
			src:  "(1 + 2",
			f:    ParseFailure{Lexeme: sp(6, 6), Repairs: [][]Repair{{Insert(token.RParen)}}},
			want: []Label{{Text: "insert <RParen>", Span: sp(6, 6)}},
		},
		{
			name: "shift uses its own span",
			src:  "1 2",
			f: ParseFailure{Lexeme: sp(2, 3), Repairs: [][]Repair{{
				Shift(sp(0, 1)), Insert(token.Plus),
			}}},
			want: []Label{
				{Text: "shift 1", Span: sp(0, 1)},
				{Text: "insert <Plus>", Span: sp(2, 3)},
			},
		},
		{
			name: "newlines are escaped",
			src:  "1\n\n2",
			f: ParseFailure{Lexeme: sp(1, 2), Repairs: [][]Repair{{
				Delete(sp(1, 2)), Delete(sp(2, 3)),
			}}},
			want: []Label{{Text: `delete \n\n`, Span: sp(1, 3)}},
		},
		{
			name: "delete run interrupted by insert",
			src:  "1 + ) ) 2",
			f: ParseFailure{Lexeme: sp(4, 5), Repairs: [][]Repair{{
				Delete(sp(4, 5)), Insert(token.Int), Delete(sp(6, 7)),
			}}},
			want: []Label{
				{Text: "delete )", Span: sp(4, 5)},
				{Text: "insert <Int>", Span: sp(4, 5)},
				{Text: "delete )", Span: sp(6, 7)},
			},
		},
		{
			name: "only the first sequence is rendered",
			src:  "1 +",
			f: ParseFailure{Lexeme: sp(3, 3), Repairs: [][]Repair{
				{Insert(token.Int)},
				{Delete(sp(2, 3))},
			}},
			want: []Label{{Text: "insert <Int>", Span: sp(3, 3)}},
		},
		{
			name: "no sequences falls back to here",
			src:  "1 +",
			f:    ParseFailure{Lexeme: sp(2, 3)},
			want: []Label{{Text: "here", Span: sp(2, 3)}},
		},
		{
			name: "empty first sequence falls back to here",
			src:  "1 +",
			f:    ParseFailure{Lexeme: sp(2, 3), Repairs: [][]Repair{{}}},
			want: []Label{{Text: "here", Span: sp(2, 3)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Render(tt.src, tt.f, fakeExplainer{})
			if r.Message != "parsing error" || r.Code != SynUnexpectedToken || r.Severity != SevError {
				t.Fatalf("unexpected header %+v", r)
			}
			if !reflect.DeepEqual(r.Labels, tt.want) {
				t.Fatalf("labels = %+v\nwant %+v", r.Labels, tt.want)
			}
			if r.Help != "explained "+strconv.Itoa(int(tt.f.Lexeme.Start)) {
				t.Fatalf("help must come from the explainer, got %q", r.Help)
			}
		})
	}
}

func TestRenderWithoutExplainer(t *testing.T) {
	r := Render("(1", ParseFailure{Lexeme: sp(2, 2), Repairs: [][]Repair{{Insert(token.RParen)}}}, nil)
	if r.Help != "" {
		t.Fatalf("help = %q", r.Help)
	}
	if r.Labels[0].Text != "insert ')'" {
		t.Fatalf("label = %q", r.Labels[0].Text)
	}
}

func TestRenderIsRepeatable(t *testing.T) {
	f := ParseFailure{Lexeme: sp(6, 7), Repairs: [][]Repair{{Delete(sp(6, 7)), Delete(sp(7, 8))}}}
	a := Render("1 + 2 ))", f, fakeExplainer{})
	b := Render("1 + 2 ))", f, fakeExplainer{})
	if !reflect.DeepEqual(a, b) {
		t.Fatal("rendering must be deterministic")
	}
	if len(f.Repairs[0]) != 2 {
		t.Fatal("rendering must not modify the failure")
	}
}

func TestRenderEval(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Report
	}{
		{
			name: "division by zero",
			src:  "5 / 0",
			want: Report{
				Severity: SevError,
				Code:     EvalOverflow,
				Message:  "evaluation overflowed",
				Labels:   []Label{{Text: "lhs", Span: sp(0, 1)}, {Text: "rhs", Span: sp(4, 5)}},
			},
		},
		{
			name: "literal out of range",
			src:  "99999999999999999999",
			want: Report{
				Severity: SevError,
				Code:     EvalLiteralRange,
				Message:  "cannot be represented as a u64",
				Labels:   []Label{{Text: "this number", Span: sp(0, 20)}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := buildTree(tt.src)
			_, err := eval.Evaluate(tt.src, tree)
			var f *eval.Failure
			if !errors.As(err, &f) {
				t.Fatalf("expected eval failure, got %v", err)
			}
			if got := RenderEval(f); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %+v\nwant %+v", got, tt.want)
			}
		})
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		LexUnknownChar:     "LEX1001",
		SynUnexpectedToken: "SYN2001",
		EvalOverflow:       "EVL3001",
		EvalLiteralRange:   "EVL3002",
		UnknownCode:        "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
}
