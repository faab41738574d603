package diag

import (
	"testing"

	"frontkit/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	cache := source.NewCacheWithAllocator(source.NewAllocator())
	s := cache.Begin(source.Input{Path: "/workspace/testdata/golden/sample.y", Text: "a\nb\n"})
	file := s.LoadedSourceIDs()[0]

	diags := []Diagnostic{
		{
			Severity:  SevError,
			Code:      "GRM2002",
			Source:    file,
			Spans:     []source.Span{{Start: 0, End: 1}, {Start: 2, End: 3}},
			SpansKind: SpansDuplication,
			Message:   "first line\nsecond",
		},
		{
			Severity: SevWarning,
			Code:     "GRM3001",
			Source:   file,
			Spans:    []source.Span{{Start: 2, End: 3}},
			Message:  "another",
		},
		{
			Severity: SevError,
			Source:   file + 1000,
			Spans:    []source.Span{{Start: 0, End: 0}},
			Message:  "dropped",
		},
	}

	expected := "error GRM2002 testdata/golden/sample.y:1:1 first line second\n" +
		"note GRM2002 testdata/golden/sample.y:2:1 duplicate here\n" +
		"warning GRM3001 testdata/golden/sample.y:2:1 another"

	if got := FormatGoldenDiagnostics(diags, cache, "/workspace", true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatShortDiagnosticsKeepsUnknown(t *testing.T) {
	cache := source.NewCacheWithAllocator(source.NewAllocator())
	s := cache.Begin(source.Input{Path: "g.y", Text: "x y"})
	id := s.LoadedSourceIDs()[0]

	diags := []Diagnostic{
		{Severity: SevError, Source: id, Spans: []source.Span{{Start: 0, End: 1}, {Start: 2, End: 3}}, Message: "bad"},
		{Severity: SevError, Source: source.NoID, Message: "lost"},
	}

	expected := "error <unknown>:0:0 lost\n" +
		"error g.y:1:1 bad\n" +
		"error g.y:1:3 bad"
	if got := FormatShortDiagnostics(diags, cache, "", false); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}
