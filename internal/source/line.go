package source

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"
)

// NewLine wraps text as line 1 of the named input.
func NewLine(name, text string) Line {
	return Line{Name: name, No: 1, Text: text}
}

// Len returns the byte length of the line.
func (l Line) Len() uint32 {
	n, err := safecast.Conv[uint32](len(l.Text))
	if err != nil {
		panic(fmt.Errorf("line length overflow: %w", err))
	}
	return n
}

// Slice returns the text covered by sp. Out-of-range bounds are clamped.
func (l Line) Slice(sp Span) string {
	return SliceText(l.Text, sp)
}

// Position converts a byte offset into a 1-based line/column pair.
// Колонка считается в рунах, а не в байтах.
func (l Line) Position(off uint32) LineCol {
	if off > l.Len() {
		off = l.Len()
	}
	col, err := safecast.Conv[uint32](utf8.RuneCountInString(l.Text[:off]))
	if err != nil {
		panic(fmt.Errorf("column overflow: %w", err))
	}
	return LineCol{Line: l.No, Col: col + 1}
}

// Resolve converts a span into start and end positions.
func (l Line) Resolve(sp Span) (start, end LineCol) {
	return l.Position(sp.Start), l.Position(sp.End)
}

// SliceText returns text[sp.Start:sp.End], clamping bounds to the text.
func SliceText(text string, sp Span) string {
	n := len(text)
	start, end := int(sp.Start), int(sp.End)
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	if end < start {
		return ""
	}
	return text[start:end]
}
