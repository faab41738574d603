package trace

import "context"

type tracerKey struct{}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx. A nil t attaches Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// SpanContext is what a context knows about the work it runs under: the
// enclosing span and, once sources are loaded, the driver run.
type SpanContext struct {
	SpanID uint64
	GID    uint64
	// RunID is the session id of the enclosing driver run, or "".
	RunID string
}

type spanKey struct{}

// CurrentSpan returns the span context of ctx; the zero value when none.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	sc, _ := ctx.Value(spanKey{}).(SpanContext)
	return sc
}

// WithSpanContext attaches sc to ctx.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, spanKey{}, sc)
}

// WithRun tags ctx with the id of a driver run. Spans started under the
// returned context carry it as the "run" extra on their end event.
func WithRun(ctx context.Context, runID string) context.Context {
	sc := CurrentSpan(ctx)
	sc.RunID = runID
	return WithSpanContext(ctx, sc)
}
