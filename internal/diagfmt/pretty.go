package diagfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"frontkit/internal/diag"
	"frontkit/internal/source"
)

type palette struct {
	err, warn, note, path, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		note:   color.New(color.FgCyan, color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue, color.Bold),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.note, p.path, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	if sev == diag.SevError {
		return p.err
	}
	return p.warn
}

// Pretty renders diagnostics for a terminal, in bag order (call bag.Sort
// first for a stable order):
//
//	error[GRM2002]: rule "Expr" is defined more than once
//	  --> calc.y:1:1
//	  |
//	1 | Expr : 'a' ;
//	  | ^^^^ first defined here
//	  = duplicate: calc.y:3:1
func Pretty(w io.Writer, bag *diag.Bag, cache *source.Cache, opts PrettyOpts) error {
	bw := bufio.NewWriter(w)
	pal := newPalette(opts.Color)
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}

	items := bag.Items()
	for i := range items {
		if i > 0 {
			bw.WriteByte('\n')
		}
		renderOne(bw, &items[i], cache, opts, pal)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(bw, "\n... %d more diagnostics not shown\n", n)
	}
	return bw.Flush()
}

func renderOne(w *bufio.Writer, d *diag.Diagnostic, cache *source.Cache, opts PrettyOpts, pal palette) {
	sevc := pal.severity(d.Severity)
	header := d.Severity.String()
	if d.Code != "" {
		header += "[" + d.Code + "]"
	}
	fmt.Fprintf(w, "%s: %s\n", sevc.Sprint(header), pal.path.Sprint(d.Message))

	f, ok := cache.File(d.Source)
	if !ok {
		fmt.Fprintf(w, "  --> <unknown source %s>\n", d.Source)
		return
	}
	path := opts.PathMode.format(f, opts.BaseDir)

	spans := d.Spans
	if len(spans) == 0 {
		spans = []source.Span{{}}
	}

	primary := spans[0]
	start, _, _ := cache.Resolve(d.Source, primary)
	fmt.Fprintf(w, "  %s %s:%d:%d\n", pal.gutter.Sprint("-->"), path, start.Line, start.Col)

	var shown []source.Span
	switch {
	case d.SpansKind == diag.SpansError:
		shown = spans
	case opts.ShowDuplicates:
		shown = spans
	default:
		shown = spans[:1]
	}

	gw := gutterWidth(cache, d.Source, shown)
	blank := strings.Repeat(" ", gw+1) + pal.gutter.Sprint("|")
	fmt.Fprintln(w, blank)
	for i, sp := range shown {
		label := ""
		if d.SpansKind == diag.SpansDuplication && i > 0 {
			label = "duplicate"
		} else if d.SpansKind == diag.SpansDuplication && len(spans) > 1 {
			label = "first defined here"
		}
		renderSnippet(w, f, cache, d.Source, sp, label, gw, opts, pal)
	}

	if d.SpansKind == diag.SpansDuplication && !opts.ShowDuplicates {
		for _, sp := range spans[1:] {
			pos, _, _ := cache.Resolve(d.Source, sp)
			fmt.Fprintf(w, "%s %s %s:%d:%d\n", strings.Repeat(" ", gw), pal.note.Sprint("= duplicate:"), path, pos.Line, pos.Col)
		}
	}
}

func gutterWidth(cache *source.Cache, id source.ID, spans []source.Span) int {
	width := 1
	for _, sp := range spans {
		_, end, _ := cache.Resolve(id, sp)
		width = max(width, len(strconv.FormatUint(uint64(end.Line), 10)))
	}
	return width
}

func renderSnippet(w *bufio.Writer, f *source.File, cache *source.Cache, id source.ID, sp source.Span, label string, gw int, opts PrettyOpts, pal palette) {
	start, end, _ := cache.Resolve(id, sp)

	first := start.Line
	if opts.Context > 0 {
		first = uint32(max(1, int(start.Line)-opts.Context))
	}
	for n := first; n < start.Line; n++ {
		writeLine(w, n, f.Line(n), gw, opts, pal)
	}

	line := f.Line(start.Line)
	writeLine(w, start.Line, line, gw, opts, pal)

	// caret columns are display widths of the expanded line
	col := int(start.Col) - 1
	col = min(max(col, 0), len(line))
	endCol := len(line)
	if end.Line == start.Line {
		endCol = min(max(int(end.Col)-1, col), len(line))
	}
	pad := displayWidth(line[:col], opts.TabWidth)
	width := max(1, displayWidth(line[:endCol], opts.TabWidth)-pad)

	marker := "^" + strings.Repeat("^", width-1)
	fmt.Fprintf(w, "%s %s %s%s",
		strings.Repeat(" ", gw), pal.gutter.Sprint("|"),
		strings.Repeat(" ", pad), pal.caret.Sprint(marker))
	if label != "" {
		fmt.Fprintf(w, " %s", pal.note.Sprint(label))
	}
	w.WriteByte('\n')
}

func writeLine(w *bufio.Writer, n uint32, text string, gw int, opts PrettyOpts, pal palette) {
	num := strconv.FormatUint(uint64(n), 10)
	fmt.Fprintf(w, "%s%s %s %s\n",
		strings.Repeat(" ", gw-len(num)), pal.gutter.Sprint(num), pal.gutter.Sprint("|"),
		expandTabs(text, opts.TabWidth))
}

func expandTabs(s string, tab int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tab - col%tab
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}

func displayWidth(s string, tab int) int {
	return runewidth.StringWidth(expandTabs(s, tab))
}
