package source

import (
	"testing"
)

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{"disjoint left to right", Span{Start: 0, End: 2}, Span{Start: 5, End: 7}, Span{Start: 0, End: 7}},
		{"disjoint right to left", Span{Start: 5, End: 7}, Span{Start: 0, End: 2}, Span{Start: 0, End: 7}},
		{"nested", Span{Start: 0, End: 10}, Span{Start: 3, End: 4}, Span{Start: 0, End: 10}},
		{"empty other", Span{Start: 3, End: 6}, Span{Start: 6, End: 6}, Span{Start: 3, End: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpan_Touches(t *testing.T) {
	if !(Span{Start: 1, End: 3}).Touches(Span{Start: 3, End: 4}) {
		t.Error("adjacent spans should touch")
	}
	if (Span{Start: 1, End: 3}).Touches(Span{Start: 4, End: 5}) {
		t.Error("one byte gap must not touch")
	}
}

func TestSpan_LenEmpty(t *testing.T) {
	sp := Span{Start: 4, End: 9}
	if sp.Len() != 5 {
		t.Errorf("Len() = %d, want 5", sp.Len())
	}
	if sp.Empty() {
		t.Error("span should not be empty")
	}
	if !(Span{Start: 2, End: 2}).Empty() {
		t.Error("zero-length span should be empty")
	}
	if !sp.Valid() || (Span{Start: 3, End: 1}).Valid() {
		t.Error("Valid() mismatch")
	}
}

func TestSpanOf(t *testing.T) {
	if got := SpanOf(1, 4); got != (Span{Start: 1, End: 4}) {
		t.Errorf("SpanOf = %v", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("negative offset should panic")
		}
	}()
	_ = SpanOf(-1, 0)
}
