package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"frontkit/internal/source"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatGoldenDiagnostics renders diagnostics into a stable, single-line-per-entry
// representation suitable for golden files. Paths are made relative to baseDir,
// entries whose source is not in cache are dropped, and the extra spans of a
// duplication are listed as notes when includeNotes is set.
func FormatGoldenDiagnostics(diags []Diagnostic, cache *source.Cache, baseDir string, includeNotes bool) string {
	return formatDiagnostics(diags, cache, baseDir, includeNotes, true)
}

// FormatShortDiagnostics is the CLI's short format. Unknown sources are kept
// and printed as "<unknown>".
func FormatShortDiagnostics(diags []Diagnostic, cache *source.Cache, baseDir string, includeNotes bool) string {
	return formatDiagnostics(diags, cache, baseDir, includeNotes, false)
}

func formatDiagnostics(diags []Diagnostic, cache *source.Cache, baseDir string, includeNotes, skipUnknown bool) string {
	if cache == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]goldenDiagnostic, 0, len(diags))
	for i := range diags {
		rendered = appendDiagnostic(rendered, &diags[i], cache, baseDir, includeNotes, skipUnknown)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		b.WriteString(d.Severity)
		if d.Code != "" {
			b.WriteByte(' ')
			b.WriteString(d.Code)
		}
		fmt.Fprintf(&b, " %s:%d:%d %s", d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendDiagnostic(out []goldenDiagnostic, d *Diagnostic, cache *source.Cache, baseDir string, includeNotes, skipUnknown bool) []goldenDiagnostic {
	spans := d.Spans
	if len(spans) == 0 {
		spans = []source.Span{{}}
	}

	for i, sp := range spans {
		dup := i > 0 && d.SpansKind == SpansDuplication
		if dup && !includeNotes {
			break
		}
		loc, ok := resolveSpan(cache, d.Source, sp, baseDir)
		if !ok {
			if skipUnknown {
				return out
			}
			loc = resolvedSpan{Path: "<unknown>"}
		}
		sev := d.Severity.String()
		msg := sanitizeMessage(d.Message)
		if dup {
			sev = "note"
			msg = "duplicate here"
		}
		out = append(out, goldenDiagnostic{
			Severity: sev,
			Code:     d.Code,
			Path:     loc.Path,
			Line:     loc.Line,
			Column:   loc.Column,
			Message:  msg,
		})
	}
	return out
}

type resolvedSpan struct {
	Path   string
	Line   uint32
	Column uint32
}

func resolveSpan(cache *source.Cache, id source.ID, span source.Span, baseDir string) (resolvedSpan, bool) {
	file, ok := cache.File(id)
	if !ok {
		return resolvedSpan{}, false
	}
	start, _, ok := cache.Resolve(id, span)
	if !ok {
		return resolvedSpan{}, false
	}
	path := file.Path
	if baseDir != "" && filepath.IsAbs(path) {
		path = file.FormatPath("relative", baseDir)
	}
	return resolvedSpan{
		Path:   normalizePath(path),
		Line:   start.Line,
		Column: start.Col,
	}, true
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
