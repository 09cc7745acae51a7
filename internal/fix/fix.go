// Package fix turns parser repair sequences into text edits and applies
// them, producing the line the parser effectively evaluated.
package fix

import (
	"errors"
	"sort"
	"strings"

	"dogwood/internal/diag"
	"dogwood/internal/source"
	"dogwood/internal/token"
)

// ErrNoFixes is returned when no failure carried an applicable repair.
var ErrNoFixes = errors.New("no applicable fixes found")

// Edit replaces the text covered by Span with NewText. Inserts have an
// empty span.
type Edit struct {
	Span    source.Span
	NewText string
}

// SkippedFix is a failure whose repairs were not applied.
type SkippedFix struct {
	Failure diag.Failure
	Reason  string
}

// Result is the repaired line and what went into it.
type Result struct {
	Text    string
	Applied int
	Edits   []Edit
	Skipped []SkippedFix
}

// EditsFor converts the first repair sequence of f into edits. Shifts keep
// their token and produce nothing.
func EditsFor(src string, f diag.ParseFailure) []Edit {
	seq := f.First()
	edits := make([]Edit, 0, len(seq))
	for _, r := range seq {
		switch r.Kind {
		case diag.RepairDelete:
			edits = append(edits, Edit{Span: r.Span})
		case diag.RepairInsert:
			at := source.Span{Start: f.Lexeme.Start, End: f.Lexeme.Start}
			edits = append(edits, Edit{Span: at, NewText: insertText(src, at.Start, r.Token)})
		}
	}
	return edits
}

// insertText spells an inserted token. Operators and literals get a space
// on the side that would otherwise glue them to other text.
func insertText(src string, at uint32, k token.Kind) string {
	text := tokenText(k)
	if k == token.LParen || k == token.RParen {
		return text
	}
	if at > 0 && int(at) <= len(src) && !isSpace(src[at-1]) && src[at-1] != '(' {
		text = " " + text
	}
	if int(at) < len(src) && !isSpace(src[at]) && src[at] != ')' {
		text += " "
	}
	return text
}

// tokenText is the text used for an inserted token; INT becomes 0.
func tokenText(k token.Kind) string {
	if k == token.Int {
		return "0"
	}
	return strings.Trim(k.Display(), "'")
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// Apply applies the first repair sequence of every parse failure to src.
// A failure whose edits overlap edits already taken is skipped as a whole.
// Lex failures have no repairs and are always skipped.
func Apply(src string, failures []diag.Failure) (Result, error) {
	res := Result{Text: src}

	var taken []Edit
	for _, f := range failures {
		pf, ok := f.(diag.ParseFailure)
		if !ok {
			res.Skipped = append(res.Skipped, SkippedFix{Failure: f, Reason: "no repair sequence"})
			continue
		}
		edits := EditsFor(src, pf)
		if len(edits) == 0 {
			res.Skipped = append(res.Skipped, SkippedFix{Failure: f, Reason: "fix has no edits"})
			continue
		}
		if conflictsWithExisting(taken, edits) {
			res.Skipped = append(res.Skipped, SkippedFix{Failure: f, Reason: "conflicts with previously applied edits"})
			continue
		}
		taken = append(taken, edits...)
		res.Applied++
	}
	if res.Applied == 0 {
		return res, ErrNoFixes
	}

	// порядок вставок в одной точке сохраняется
	sort.SliceStable(taken, func(i, j int) bool {
		return taken[i].Span.Start < taken[j].Span.Start
	})

	var b strings.Builder
	pos := uint32(0)
	for _, e := range taken {
		b.WriteString(source.SliceText(src, source.Span{Start: pos, End: e.Span.Start}))
		b.WriteString(e.NewText)
		pos = max(pos, e.Span.End)
	}
	b.WriteString(source.SliceText(src, source.SpanOf(int(pos), len(src))))
	res.Text = b.String()
	res.Edits = taken
	return res, nil
}

func conflictsWithExisting(existing, edits []Edit) bool {
	for _, prev := range existing {
		for _, cand := range edits {
			if spansConflict(prev.Span, cand.Span) {
				return true
			}
		}
	}
	return false
}

// spansConflict reports whether two edit spans overlap as half-open
// intervals. Two inserts never conflict; an insert conflicts with a
// deletion strictly inside it.
func spansConflict(a, b source.Span) bool {
	if a.Start == a.End && b.Start == b.End {
		return false
	}
	if a.Start == a.End {
		return a.Start > b.Start && a.Start < b.End
	}
	if b.Start == b.End {
		return b.Start > a.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}
