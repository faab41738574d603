package source

import (
	"fmt"
)

// Span is a half-open [Start, End) byte range within one source.
type Span struct {
	Start uint32
	End   uint32
}

// SpanOf builds a span from int offsets.
func SpanOf(start, end int) Span {
	return Span{Start: mustUint32(start), End: mustUint32(end)}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

func (s Span) ShiftRight(n uint32) Span {
	return Span{Start: s.Start + n, End: s.End + n}
}
