// Package diag defines how tools report findings and how those findings
// reach the caller.
//
// # Tool side
//
// A tool reports values implementing Error or Warning. Both carry a source
// id and a non-empty list of spans; SpansKind says whether the spans are all
// error sites (SpansError) or an original followed by its duplicates
// (SpansDuplication). Tools may also implement Coded to attach a stable
// identifier. Simple covers the common case.
//
// # Emitter
//
// The driver wraps the caller's Sink in an Emitter for each run:
//
//   - EmitError forwards and returns ErrToolFailure; the tool should return it.
//   - EmitNonFatalError forwards and lets the tool continue.
//   - EmitWarning forwards a warning.
//
// ObservedError and ObservedWarning only ever go from false to true, so an
// output type can use them to certify that a run was clean.
//
// Close finalizes the sink: if the sink implements Finalizer, NoMoreData is
// called once, no matter how often Close is called. The driver defers Close,
// so finalization also happens on early return and panic. Emitting after
// Close panics.
//
// # Sinks
//
// Bag collects Diagnostic records and is the sink used by the CLI and most
// tests. DedupSink filters repeats, MultiSink fans out, NopSink drops.
// Rendering lives in internal/diagfmt; FormatGoldenDiagnostics and
// FormatShortDiagnostics here are the stable one-line forms used by golden
// tests and the "short" CLI format.
package diag
