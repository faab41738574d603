package diag

// Sink receives the diagnostics of a tool run.
//
// Implementations are supplied by the caller and may outlive a single run.
type Sink interface {
	EmitError(e Error)
	EmitWarning(w Warning)
}

// Finalizer is implemented by sinks that want to know when a run is over.
// NoMoreData is called exactly once per Emitter wrapping the sink.
type Finalizer interface {
	NoMoreData()
}

// NopSink drops everything.
type NopSink struct{}

func (NopSink) EmitError(Error) {}
func (NopSink) EmitWarning(Warning) {}

// MultiSink fans diagnostics out to several sinks. Its NoMoreData is
// forwarded to every child that is a Finalizer.
type MultiSink []Sink

func (m MultiSink) EmitError(e Error) {
	for _, s := range m {
		if s != nil {
			s.EmitError(e)
		}
	}
}

func (m MultiSink) EmitWarning(w Warning) {
	for _, s := range m {
		if s != nil {
			s.EmitWarning(w)
		}
	}
}

func (m MultiSink) NoMoreData() {
	for _, s := range m {
		if f, ok := s.(Finalizer); ok {
			f.NoMoreData()
		}
	}
}
