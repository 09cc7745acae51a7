package source

import (
	"testing"
)

func TestLine_SliceClamps(t *testing.T) {
	l := NewLine("<stdin>", "12 + 3")
	tests := []struct {
		span Span
		want string
	}{
		{Span{Start: 0, End: 2}, "12"},
		{Span{Start: 5, End: 6}, "3"},
		{Span{Start: 5, End: 60}, "3"},
		{Span{Start: 60, End: 70}, ""},
		{Span{Start: 4, End: 2}, ""},
	}
	for _, tt := range tests {
		if got := l.Slice(tt.span); got != tt.want {
			t.Errorf("Slice(%v) = %q, want %q", tt.span, got, tt.want)
		}
	}
}

func TestLine_PositionCountsRunes(t *testing.T) {
	l := NewLine("<stdin>", "ü + 1")
	// 'ü' занимает два байта, '+' на байте 3, колонка 3
	if got := l.Position(3); got != (LineCol{Line: 1, Col: 3}) {
		t.Errorf("Position(3) = %+v", got)
	}
	start, end := l.Resolve(Span{Start: 0, End: 2})
	if start.Col != 1 || end.Col != 2 {
		t.Errorf("Resolve = %+v %+v", start, end)
	}
	if got := l.Position(100); got.Col != 6 {
		t.Errorf("Position past end = %+v", got)
	}
}

func TestSplitLines(t *testing.T) {
	content := []byte("\xEF\xBB\xBF1 + 1\r\n2 * 3\n\n4\n")
	lines := SplitLines("./batch/input.txt", content)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	want := []string{"1 + 1", "2 * 3", "", "4"}
	for i, l := range lines {
		if l.Text != want[i] {
			t.Errorf("line %d = %q, want %q", i, l.Text, want[i])
		}
		if l.No != uint32(i+1) {
			t.Errorf("line %d numbered %d", i, l.No)
		}
		if l.Name != "batch/input.txt" {
			t.Errorf("name = %q", l.Name)
		}
	}
	if SplitLines("x", nil) != nil {
		t.Error("empty content should produce no lines")
	}
}
