package diag

import "frontkit/internal/source"

type dedupKey struct {
	sev   Severity
	src   source.ID
	start uint32
	end   uint32
	msg   string
}

// DedupSink wraps another Sink and suppresses diagnostics with the same
// severity, source, primary span and message. NoMoreData is forwarded.
type DedupSink struct {
	next Sink
	seen map[dedupKey]struct{}
}

// NewDedupSink returns a Sink that filters out duplicates while
// forwarding unique diagnostics to next.
func NewDedupSink(next Sink) *DedupSink {
	return &DedupSink{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (s *DedupSink) EmitError(e Error) {
	if s.first(SevError, e, e.Error()) && s.next != nil {
		s.next.EmitError(e)
	}
}

func (s *DedupSink) EmitWarning(w Warning) {
	if s.first(SevWarning, w, w.String()) && s.next != nil {
		s.next.EmitWarning(w)
	}
}

func (s *DedupSink) NoMoreData() {
	if f, ok := s.next.(Finalizer); ok {
		f.NoMoreData()
	}
}

func (s *DedupSink) first(sev Severity, sp Spanned, msg string) bool {
	key := dedupKey{sev: sev, src: sp.SourceID(), msg: msg}
	if spans := sp.Spans(); len(spans) > 0 {
		key.start, key.end = spans[0].Start, spans[0].End
	}
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}
