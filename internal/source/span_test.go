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
		{
			name:     "disjoint",
			a:        Span{Start: 2, End: 4},
			b:        Span{Start: 10, End: 12},
			expected: Span{Start: 2, End: 12},
		},
		{
			name:     "nested",
			a:        Span{Start: 0, End: 20},
			b:        Span{Start: 5, End: 6},
			expected: Span{Start: 0, End: 20},
		},
		{
			name:     "reversed order",
			a:        Span{Start: 10, End: 12},
			b:        Span{Start: 2, End: 4},
			expected: Span{Start: 2, End: 12},
		},
		{
			name:     "empty",
			a:        Span{Start: 7, End: 7},
			b:        Span{Start: 7, End: 7},
			expected: Span{Start: 7, End: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpan_Contains(t *testing.T) {
	outer := Span{Start: 5, End: 15}
	if !outer.Contains(Span{Start: 5, End: 15}) {
		t.Error("span should contain itself")
	}
	if !outer.Contains(Span{Start: 6, End: 6}) {
		t.Error("span should contain an empty span inside it")
	}
	if outer.Contains(Span{Start: 4, End: 10}) {
		t.Error("span should not contain a span starting before it")
	}
	if outer.Contains(Span{Start: 10, End: 16}) {
		t.Error("span should not contain a span ending after it")
	}
}

func TestSpan_Basics(t *testing.T) {
	s := SpanOf(3, 8)
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
	if s.Empty() {
		t.Error("Empty() = true for non-empty span")
	}
	if s.String() != "3-8" {
		t.Errorf("String() = %q", s.String())
	}
	if got := s.ShiftRight(2); got != (Span{Start: 5, End: 10}) {
		t.Errorf("ShiftRight(2) = %v", got)
	}
	if !SpanOf(4, 4).Empty() {
		t.Error("Empty() = false for zero-length span")
	}
}
