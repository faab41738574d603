package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"frontkit/internal/diag"
	"frontkit/internal/source"
)

func TestJSONBasic(t *testing.T) {
	cache, id := setup(t, "lex/input.txt", "a = \"open\nb")
	bag := diag.NewBag(0)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     "LEX1002",
		Source:   id,
		Spans:    []source.Span{{Start: 4, End: 9}},
		Message:  "unterminated string",
	})

	var buf bytes.Buffer
	if err := JSON(&buf, bag, cache, JSONOpts{IncludePositions: true, PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("unexpected count %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Severity != "error" || d.Code != "LEX1002" || d.SpansKind != "error" {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	loc := d.Locations[0]
	if loc.File != "input.txt" || loc.StartLine != 1 || loc.StartCol != 5 || loc.EndCol != 10 {
		t.Errorf("unexpected location %+v", loc)
	}
}

func TestJSONMaxAndUnknown(t *testing.T) {
	cache, id := setup(t, "x", "abc")
	bag := diag.NewBag(0)
	for range 3 {
		bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Source: id + 7, Spans: []source.Span{{Start: 0, End: 1}}, Message: "w"})
	}

	out := BuildDiagnosticsOutput(bag, cache, JSONOpts{Max: 2})
	if out.Count != 2 || out.Dropped != 1 {
		t.Errorf("Count = %d, Dropped = %d", out.Count, out.Dropped)
	}
	if out.Diagnostics[0].Locations[0].File != "<unknown>" {
		t.Errorf("unknown source rendered as %q", out.Diagnostics[0].Locations[0].File)
	}
	if out.Diagnostics[0].Locations[0].StartLine != 0 {
		t.Error("positions included without IncludePositions")
	}
}
