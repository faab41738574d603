package diag

import (
	"errors"
	"slices"

	"frontkit/internal/source"
)

// ErrToolFailure is the failure signal returned by Emitter.EmitError.
// Tools propagate it to stop at the first fatal error.
var ErrToolFailure = errors.New("tool reported a fatal error")

// Diagnostic is the record kept by Bag and consumed by renderers.
type Diagnostic struct {
	Severity  Severity
	Code      string
	Source    source.ID
	Spans     []source.Span
	SpansKind SpansKind
	Message   string
}

// Primary returns the first span, or an empty span at 0.
func (d Diagnostic) Primary() source.Span {
	if len(d.Spans) == 0 {
		return source.Span{}
	}
	return d.Spans[0]
}

// FromError snapshots e into a Diagnostic.
func FromError(e Error) Diagnostic {
	return fromSpanned(SevError, e, e.Error())
}

// FromWarning snapshots w into a Diagnostic.
func FromWarning(w Warning) Diagnostic {
	return fromSpanned(SevWarning, w, w.String())
}

func fromSpanned(sev Severity, s Spanned, msg string) Diagnostic {
	d := Diagnostic{
		Severity:  sev,
		Source:    s.SourceID(),
		Spans:     slices.Clone(s.Spans()),
		SpansKind: s.SpansKind(),
		Message:   msg,
	}
	if c, ok := s.(Coded); ok {
		d.Code = c.Code()
	}
	return d
}

// Simple is a ready-made Error and Warning for tools that need nothing more.
type Simple struct {
	ID      source.ID
	Kind    SpansKind
	At      []source.Span
	Msg     string
	CodeStr string
}

func (s Simple) Error() string { return s.Msg }
func (s Simple) String() string { return s.Msg }
func (s Simple) SourceID() source.ID { return s.ID }
func (s Simple) Spans() []source.Span { return s.At }
func (s Simple) SpansKind() SpansKind { return s.Kind }
func (s Simple) Code() string { return s.CodeStr }
