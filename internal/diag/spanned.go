package diag

import (
	"fmt"

	"frontkit/internal/source"
)

// SpansKind tells a renderer how to read the spans of a diagnostic.
type SpansKind uint8

const (
	// SpansError marks every span as an error site. Usually there is one.
	SpansError SpansKind = iota
	// SpansDuplication marks the first span as the original occurrence and
	// every following span as a duplicate of it.
	SpansDuplication
)

func (k SpansKind) String() string {
	switch k {
	case SpansError:
		return "error"
	case SpansDuplication:
		return "duplication"
	}
	return "unknown"
}

// Spanned is implemented by everything a tool reports.
type Spanned interface {
	// SourceID names the cache entry the spans refer to.
	SourceID() source.ID
	// Spans returns a non-empty, ordered list of byte ranges.
	Spans() []source.Span
	SpansKind() SpansKind
}

// Error is a tool-defined error with source locations.
type Error interface {
	error
	Spanned
}

// Warning is a tool-defined warning with source locations.
type Warning interface {
	fmt.Stringer
	Spanned
}

// Coded is optionally implemented by errors and warnings that carry a
// stable identifier such as "GRM2001".
type Coded interface {
	Code() string
}
