package diagfmt

import (
	"fmt"
	"io"

	"frontkit/internal/diag"
	"frontkit/internal/source"
)

// Format selects a renderer.
type Format string

const (
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
	FormatShort  Format = "short"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatPretty, FormatJSON, FormatShort:
		return f, nil
	case "":
		return FormatPretty, nil
	}
	return "", fmt.Errorf("invalid diagnostics format %q (expected: pretty|json|short)", s)
}

// Printer is a diag.Sink that buffers a run's diagnostics and renders them
// when the run is finalized. It can be reused across runs; each
// finalization prints and clears what that run reported.
type Printer struct {
	W      io.Writer
	Cache  *source.Cache
	Format Format
	Pretty PrettyOpts
	JSON   JSONOpts
	// Quiet suppresses warnings in the output; they are still counted.
	Quiet bool

	bag      *diag.Bag
	errs     int
	warnings int
	err      error
}

// NewPrinter creates a printer keeping at most max diagnostics per run.
func NewPrinter(w io.Writer, cache *source.Cache, format Format, max int) *Printer {
	return &Printer{W: w, Cache: cache, Format: format, bag: diag.NewBag(max)}
}

func (p *Printer) EmitError(e diag.Error) {
	p.errs++
	p.bag.EmitError(e)
}

func (p *Printer) EmitWarning(w diag.Warning) {
	p.warnings++
	if !p.Quiet {
		p.bag.EmitWarning(w)
	}
}

// NoMoreData renders the buffered diagnostics.
func (p *Printer) NoMoreData() {
	p.bag.NoMoreData()
	if p.bag.Len() == 0 {
		return
	}
	p.bag.Sort()
	if err := Render(p.W, p.bag, p.Cache, p.Format, p.Pretty, p.JSON); err != nil && p.err == nil {
		p.err = err
	}
	p.bag.Reset()
}

// Counts returns the errors and warnings seen across all runs.
func (p *Printer) Counts() (errs, warnings int) {
	return p.errs, p.warnings
}

// Runs returns how many runs were finalized.
func (p *Printer) Runs() int {
	return p.bag.Finalized()
}

// Err returns the first rendering error.
func (p *Printer) Err() error {
	return p.err
}

// Render writes bag in the given format.
func Render(w io.Writer, bag *diag.Bag, cache *source.Cache, format Format, pretty PrettyOpts, jsonOpts JSONOpts) error {
	switch format {
	case FormatJSON:
		return JSON(w, bag, cache, jsonOpts)
	case FormatShort:
		return Short(w, bag, cache, pretty.BaseDir)
	default:
		return Pretty(w, bag, cache, pretty)
	}
}

// Short writes one line per diagnostic span.
func Short(w io.Writer, bag *diag.Bag, cache *source.Cache, baseDir string) error {
	out := diag.FormatShortDiagnostics(bag.Items(), cache, baseDir, true)
	if out == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
