package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"frontkit/internal/diag"
	"frontkit/internal/diagfmt"
	"frontkit/internal/grammar"
	"frontkit/internal/lexer"
	"frontkit/internal/observ"
	"frontkit/internal/pipeline"
	"frontkit/internal/project"
	"frontkit/internal/source"
	"frontkit/internal/tool"
	"frontkit/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [DIR]",
	Short: "Run the tool configured in frontkit.toml over its sources",
	Long: `Check looks for frontkit.toml in DIR or its parents and runs the configured
tool once per source file`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "max parallel jobs (0=auto)")
	checkCmd.Flags().String("progress", "auto", "show a progress view (auto|on|off)")
}

// checkRun is one pass of the configured tool over the manifest's sources.
type checkRun struct {
	manifest *project.Manifest
	out      outputOptions
	jobs     int
	progress bool
	// cache is shared by every job when set; jobs then run one at a time.
	cache *source.Cache
	timer *observ.Timer
}

type checkStats struct {
	jobs, failed, errs, warnings int
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	manifest, err := project.Load(dir)
	if err != nil {
		return err
	}
	out, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}
	out = applyManifestOutput(cmd, out, manifest)

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	progressFlag, err := cmd.Flags().GetString("progress")
	if err != nil {
		return err
	}
	mode, err := readUIMode(progressFlag)
	if err != nil {
		return err
	}

	run := checkRun{
		manifest: manifest,
		out:      out,
		jobs:     jobs,
		progress: shouldUseTUI(mode),
		timer:    out.newTimer(),
	}
	cache, dc, err := out.openCache()
	if err != nil {
		return err
	}
	if dc != nil {
		run.cache = cache
	}

	stats, err := run.execute(cmd.Context())
	if err != nil {
		return err
	}
	if dc != nil {
		if err := saveCache(dc, cache); err != nil {
			return err
		}
	}
	out.printTimings(os.Stderr, run.timer)
	if !out.quiet && out.format != diagfmt.FormatJSON {
		fmt.Fprintln(os.Stderr, stats)
	}
	if stats.failed > 0 {
		return errReported
	}
	return nil
}

// applyManifestOutput lets [diagnostics] fill in flags the user did not set.
func applyManifestOutput(cmd *cobra.Command, out outputOptions, m *project.Manifest) outputOptions {
	flags := cmd.Root().PersistentFlags()
	cfg := m.Config.Diagnostics
	if !flags.Changed("format") && cfg.Format != "" {
		out.format = diagfmt.Format(cfg.Format)
	}
	if !flags.Changed("max-diagnostics") && cfg.Max > 0 {
		out.max = cfg.Max
	}
	return out
}

func (s checkStats) String() string {
	return fmt.Sprintf("checked %d sources: %d failed, %s, %s",
		s.jobs, s.failed, plural(s.errs, "error"), plural(s.warnings, "warning"))
}

func (r checkRun) execute(ctx context.Context) (checkStats, error) {
	switch r.manifest.Config.Tool.Name {
	case "lex":
		return runPipeline[*lexer.Output](ctx, r, lexer.Tool{})
	case "grammar":
		return runPipeline[*grammar.Certified](ctx, r, grammar.Tool{})
	}
	return checkStats{}, fmt.Errorf("%s: unknown tool %q", r.manifest.Path, r.manifest.Config.Tool.Name)
}

type pipelineOutcome[Out any] struct {
	results []pipeline.Result[Out]
	err     error
}

func runPipeline[Out any](ctx context.Context, r checkRun, t tool.Tool[Out]) (checkStats, error) {
	params, err := r.manifest.ToolParams()
	if err != nil {
		return checkStats{}, err
	}
	jobs, err := r.manifest.Jobs()
	if err != nil {
		return checkStats{}, err
	}
	names := make([]string, len(jobs))
	for i := range jobs {
		jobs[i].Args.Timer = r.timer
		names[i] = jobs[i].Name
	}

	opts := pipeline.Options{
		Jobs:           r.jobs,
		MaxDiagnostics: r.out.max,
		Cache:          r.cache,
	}
	work := func(sink pipeline.ProgressSink) pipelineOutcome[Out] {
		o := opts
		o.Progress = sink
		results, err := pipeline.Run(ctx, t, params, jobs, o)
		return pipelineOutcome[Out]{results: results, err: err}
	}

	var res pipelineOutcome[Out]
	if r.progress && len(jobs) > 0 {
		title := fmt.Sprintf("%s %s", t.Name(), r.manifest.Config.Package.Name)
		var uiErr error
		res, uiErr = ui.RunWithProgress(os.Stdout, title, names, work)
		if uiErr != nil && res.err == nil {
			res.err = uiErr
		}
	} else {
		res = work(nil)
	}
	if res.err != nil {
		return checkStats{}, res.err
	}

	if err := renderResults(os.Stderr, res.results, r.out); err != nil {
		return checkStats{}, err
	}
	failed, errs, warnings := pipeline.Summary(res.results)
	return checkStats{jobs: len(jobs), failed: failed, errs: errs, warnings: warnings}, nil
}

// renderResults prints each job's diagnostics in job order.
func renderResults[Out any](w io.Writer, results []pipeline.Result[Out], out outputOptions) error {
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			fmt.Fprintf(w, "%s: %v\n", r.Job.Name, r.Err)
			continue
		}
		bag := r.Diags
		if out.quiet {
			bag = errorsOnly(bag)
		}
		if bag.Len() == 0 {
			continue
		}
		bag.Sort()
		if err := diagfmt.Render(w, bag, r.Cache, out.format, out.prettyOpts(), out.jsonOpts()); err != nil {
			return err
		}
	}
	return nil
}

func errorsOnly(bag *diag.Bag) *diag.Bag {
	out := diag.NewBag(0)
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			out.Add(d)
		}
	}
	return out
}
