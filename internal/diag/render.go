package diag

import (
	"strings"

	"dogwood/internal/eval"
	"dogwood/internal/source"
	"dogwood/internal/token"
)

// Render turns a parser-service failure into a Report. It never fails.
// A nil explainer yields no help text and default token names.
func Render(src string, f Failure, ex Explainer) Report {
	var help string
	if ex != nil {
		help = ex.Explain(src, f)
	}

	switch f := f.(type) {
	case LexFailure:
		return Report{
			Severity: SevError,
			Code:     f.Code(),
			Message:  "lexing error",
			Labels:   []Label{{Text: "here", Span: f.Err}},
			Help:     help,
		}
	case ParseFailure:
		labels := repairLabels(src, f, ex)
		if len(labels) == 0 {
			labels = []Label{{Text: "here", Span: f.Lexeme}}
		}
		return Report{
			Severity: SevError,
			Code:     f.Code(),
			Message:  "parsing error",
			Labels:   labels,
			Help:     help,
		}
	default:
		// только для чужих реализаций Failure
		var sp source.Span
		if f != nil {
			sp = f.Span()
		}
		return Report{
			Severity: SevError,
			Code:     UnknownCode,
			Message:  "error",
			Labels:   []Label{{Text: "here", Span: sp}},
			Help:     help,
		}
	}
}

// repairLabels walks the first repair sequence once. Runs of deletes whose
// spans touch collapse into one label.
func repairLabels(src string, f ParseFailure, ex Explainer) []Label {
	seq := f.First()
	labels := make([]Label, 0, len(seq))
	for i := 0; i < len(seq); i++ {
		r := seq[i]
		switch r.Kind {
		case RepairDelete:
			sp := r.Span
			for i+1 < len(seq) && seq[i+1].Kind == RepairDelete && sp.Touches(seq[i+1].Span) {
				i++
				sp = sp.Cover(seq[i].Span)
			}
			labels = append(labels, Label{Text: "delete " + escape(source.SliceText(src, sp)), Span: sp})
		case RepairInsert:
			labels = append(labels, Label{Text: "insert " + tokenName(ex, r.Token), Span: f.Lexeme})
		case RepairShift:
			labels = append(labels, Label{Text: "shift " + escape(source.SliceText(src, r.Span)), Span: r.Span})
		}
	}
	return labels
}

func tokenName(ex Explainer, k token.Kind) string {
	if ex != nil {
		return ex.TokenName(k)
	}
	return k.Display()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}

// RenderEval turns an evaluation failure into a Report.
func RenderEval(f *eval.Failure) Report {
	switch f.Kind {
	case eval.Overflow:
		return Report{
			Severity: SevError,
			Code:     EvalOverflow,
			Message:  "evaluation overflowed",
			Labels: []Label{
				{Text: "lhs", Span: f.LHS},
				{Text: "rhs", Span: f.RHS},
			},
		}
	case eval.LiteralOutOfRange:
		return Report{
			Severity: SevError,
			Code:     EvalLiteralRange,
			Message:  "cannot be represented as a u64",
			Labels:   []Label{{Text: "this number", Span: f.Span}},
		}
	default:
		return Report{
			Severity: SevError,
			Code:     UnknownCode,
			Message:  f.Error(),
			Labels:   []Label{{Text: "here", Span: f.Span}},
		}
	}
}
