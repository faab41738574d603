package diag

import (
	"fmt"

	"frontkit/internal/trace"
)

// Emitter wraps a Sink for the duration of one tool run.
//
// It remembers whether an error or a warning was ever emitted (the flags
// never reset) and finalizes the sink at most once. Emitter is not safe for
// concurrent use.
type Emitter struct {
	sink     Sink
	tracer   trace.Tracer
	tool     string
	errors   int
	warnings int
	closed   bool
}

// EmitterOption configures an Emitter.
type EmitterOption func(*Emitter)

// WithTracer records a debug-level point event for every diagnostic.
func WithTracer(t trace.Tracer) EmitterOption {
	return func(e *Emitter) {
		if t != nil {
			e.tracer = t
		}
	}
}

// WithToolName labels trace events with the tool's name.
func WithToolName(name string) EmitterOption {
	return func(e *Emitter) {
		e.tool = name
	}
}

// NewEmitter wraps sink. A nil sink behaves like NopSink.
func NewEmitter(sink Sink, opts ...EmitterOption) *Emitter {
	if sink == nil {
		sink = NopSink{}
	}
	e := &Emitter{sink: sink, tracer: trace.Nop}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EmitError forwards a fatal error and returns ErrToolFailure, which the
// tool is expected to return immediately.
func (e *Emitter) EmitError(err Error) error {
	e.emitError(err, "fatal")
	return ErrToolFailure
}

// EmitNonFatalError forwards an error the tool can recover from.
// It still counts as an observed error.
func (e *Emitter) EmitNonFatalError(err Error) {
	e.emitError(err, "non-fatal")
}

// EmitWarning forwards a warning.
func (e *Emitter) EmitWarning(w Warning) {
	e.mustBeOpen()
	e.warnings++
	e.point("warning", w.String())
	e.sink.EmitWarning(w)
}

func (e *Emitter) emitError(err Error, kind string) {
	e.mustBeOpen()
	e.errors++
	e.point(kind, err.Error())
	e.sink.EmitError(err)
}

// ObservedError reports whether any error, fatal or not, was emitted.
func (e *Emitter) ObservedError() bool {
	return e.errors > 0
}

// ObservedWarning reports whether any warning was emitted.
func (e *Emitter) ObservedWarning() bool {
	return e.warnings > 0
}

// Counts returns the number of errors and warnings emitted so far.
func (e *Emitter) Counts() (errs, warnings int) {
	return e.errors, e.warnings
}

// Close tells the sink that no more diagnostics will arrive. Only the first
// call reaches the sink.
func (e *Emitter) Close() {
	if e.closed {
		return
	}
	e.closed = true
	if f, ok := e.sink.(Finalizer); ok {
		f.NoMoreData()
	}
}

// Closed reports whether Close has been called.
func (e *Emitter) Closed() bool {
	return e.closed
}

func (e *Emitter) mustBeOpen() {
	if e.closed {
		panic(fmt.Sprintf("diag: emit on closed emitter (tool %q)", e.tool))
	}
}

func (e *Emitter) point(kind, msg string) {
	if !e.tracer.Enabled() {
		return
	}
	name := "diag:" + kind
	if e.tool != "" {
		name = e.tool + ":" + kind
	}
	trace.Point(e.tracer, trace.ScopeNode, name, msg)
}
