// Package trace records what a frontkit run is doing.
//
// Tracing is enabled from the CLI:
//
//	frontkit grammar --trace=- --trace-level=phase calc.y
//
// Implementations: Nop (disabled), StreamTracer (writes immediately),
// RingTracer (keeps the last N events for dumps), MultiTracer (fan-out).
//
// Levels gate scopes:
//
//   - LevelPhase: driver runs and their passes (resolve_sources, tool:<name>)
//   - LevelDetail: per-source and per-job events
//   - LevelDebug: one point event per emitted diagnostic
//
// The tracer travels in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.Start(ctx, trace.ScopePass, "resolve_sources")
//	defer span.End("")
package trace
