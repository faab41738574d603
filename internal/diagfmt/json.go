package diagfmt

import (
	"encoding/json"
	"io"

	"frontkit/internal/diag"
	"frontkit/internal/source"
)

// LocationJSON is one span of a diagnostic.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// DiagnosticJSON is a diagnostic in JSON form.
type DiagnosticJSON struct {
	Severity  string         `json:"severity"`
	Code      string         `json:"code,omitempty"`
	Message   string         `json:"message"`
	Source    uint64         `json:"source"`
	SpansKind string         `json:"spans_kind"`
	Locations []LocationJSON `json:"locations"`
}

// DiagnosticsOutput is the root of the JSON output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Dropped     int              `json:"dropped,omitempty"`
}

func makeLocation(id source.ID, span source.Span, cache *source.Cache, opts JSONOpts) LocationJSON {
	loc := LocationJSON{
		File:      "<unknown>",
		StartByte: span.Start,
		EndByte:   span.End,
	}
	f, ok := cache.File(id)
	if !ok {
		return loc
	}
	loc.File = opts.PathMode.format(f, opts.BaseDir)

	if opts.IncludePositions {
		startPos, endPos, _ := cache.Resolve(id, span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// BuildDiagnosticsOutput builds the JSON structure without serialising it.
func BuildDiagnosticsOutput(bag *diag.Bag, cache *source.Cache, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for i := range maxItems {
		d := items[i]
		out := DiagnosticJSON{
			Severity:  d.Severity.String(),
			Code:      d.Code,
			Message:   d.Message,
			Source:    uint64(d.Source),
			SpansKind: d.SpansKind.String(),
			Locations: make([]LocationJSON, 0, len(d.Spans)),
		}
		for _, sp := range d.Spans {
			out.Locations = append(out.Locations, makeLocation(d.Source, sp, cache, opts))
		}
		diagnostics = append(diagnostics, out)
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
		Dropped:     bag.Dropped() + len(items) - maxItems,
	}
}

// JSON writes the bag as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, cache *source.Cache, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, cache, opts))
}
