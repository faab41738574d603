package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"frontkit/internal/diagfmt"
	"frontkit/internal/driver"
	"frontkit/internal/observ"
	"frontkit/internal/source"
)

// outputOptions collects the persistent flags shared by every tool command.
type outputOptions struct {
	quiet     bool
	timings   bool
	max       int
	format    diagfmt.Format
	pathMode  diagfmt.PathMode
	cachePath string
}

func readOutputOptions(cmd *cobra.Command) (outputOptions, error) {
	flags := cmd.Root().PersistentFlags()
	var opts outputOptions
	var err error
	if opts.quiet, err = flags.GetBool("quiet"); err != nil {
		return opts, err
	}
	if opts.timings, err = flags.GetBool("timings"); err != nil {
		return opts, err
	}
	if opts.max, err = flags.GetInt("max-diagnostics"); err != nil {
		return opts, err
	}
	if opts.max < 0 {
		return opts, fmt.Errorf("--max-diagnostics must not be negative")
	}
	format, err := flags.GetString("format")
	if err != nil {
		return opts, err
	}
	if opts.format, err = diagfmt.ParseFormat(format); err != nil {
		return opts, err
	}
	pathMode, err := flags.GetString("path-mode")
	if err != nil {
		return opts, err
	}
	if opts.pathMode, err = diagfmt.ParsePathMode(pathMode); err != nil {
		return opts, err
	}
	if opts.cachePath, err = flags.GetString("cache"); err != nil {
		return opts, err
	}
	return opts, nil
}

// newPrinter returns a sink that renders each run's diagnostics to stderr.
func (o outputOptions) newPrinter(cache *source.Cache) *diagfmt.Printer {
	p := diagfmt.NewPrinter(os.Stderr, cache, o.format, o.max)
	p.Quiet = o.quiet
	p.Pretty = o.prettyOpts()
	p.JSON = o.jsonOpts()
	return p
}

func (o outputOptions) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:    !color.NoColor,
		Context:  1,
		PathMode: o.pathMode,
	}
}

func (o outputOptions) jsonOpts() diagfmt.JSONOpts {
	return diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         o.pathMode,
	}
}

// newTimer returns nil unless --timings is set; the driver skips a nil timer.
func (o outputOptions) newTimer() *observ.Timer {
	if !o.timings {
		return nil
	}
	return observ.NewTimer()
}

func (o outputOptions) printTimings(w io.Writer, timer *observ.Timer) {
	if timer == nil {
		return
	}
	fmt.Fprint(w, timer.Summary())
}

// openCache builds the cache for a run, restoring the --cache snapshot into
// it when one is configured.
func (o outputOptions) openCache() (*source.Cache, *driver.DiskCache, error) {
	cache := source.NewCache()
	if o.cachePath == "" {
		return cache, nil, nil
	}
	dc := driver.OpenDiskCache(o.cachePath)
	if _, err := dc.Load(cache); err != nil {
		return nil, nil, fmt.Errorf("restore %s: %w", o.cachePath, err)
	}
	return cache, dc, nil
}

// saveCache writes the newest entry of every path back to the snapshot.
func saveCache(dc *driver.DiskCache, cache *source.Cache) error {
	if dc == nil {
		return nil
	}
	if err := dc.SaveLatest(cache); err != nil {
		return fmt.Errorf("save %s: %w", dc.Path(), err)
	}
	return nil
}

// summarize prints the final counts line and maps errors to errReported.
func (o outputOptions) summarize(w io.Writer, printer *diagfmt.Printer) error {
	if err := printer.Err(); err != nil {
		return err
	}
	errs, warnings := printer.Counts()
	if !o.quiet && o.format != diagfmt.FormatJSON && (errs > 0 || warnings > 0) {
		fmt.Fprintf(w, "%s, %s\n", plural(errs, "error"), plural(warnings, "warning"))
	}
	if errs > 0 {
		return errReported
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
