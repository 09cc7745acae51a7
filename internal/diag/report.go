package diag

import (
	"dogwood/internal/source"
	"dogwood/internal/token"
)

// Label points at a span of the line. Empty Text means an unlabeled marker.
type Label struct {
	Text string
	Span source.Span
}

// Report is the user-facing form of any failure.
type Report struct {
	Severity Severity
	Code     Code
	Message  string
	Labels   []Label
	Help     string
}

// Primary returns the span of the first label.
func (r *Report) Primary() source.Span {
	if len(r.Labels) == 0 {
		return source.Span{}
	}
	return r.Labels[0].Span
}

// Explainer is the part of the parser service the renderer reads verbatim.
type Explainer interface {
	// TokenName is the display name used in "insert" labels.
	TokenName(k token.Kind) string
	// Explain pretty-prints a failure for the help line.
	Explain(src string, f Failure) string
}
