package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"frontkit/internal/project"
	"frontkit/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] [DIR]",
	Short: "Rerun check whenever a project source changes",
	Long: `Watch runs check once, then again after every change under the project
root. All runs share one source cache. Press Ctrl+C to stop.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Int("jobs", 0, "max parallel jobs (0=auto)")
}

func runWatch(cmd *cobra.Command, args []string) error {
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
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}

	cache, dc, err := out.openCache()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rerun := func(ctx context.Context, m *project.Manifest) {
		run := checkRun{
			manifest: m,
			out:      applyManifestOutput(cmd, out, m),
			jobs:     jobs,
			cache:    cache,
			timer:    out.newTimer(),
		}
		stats, err := run.execute(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "frontkit: %v\n", err)
			return
		}
		if err := saveCache(dc, cache); err != nil {
			fmt.Fprintf(os.Stderr, "frontkit: %v\n", err)
		}
		run.out.printTimings(os.Stderr, run.timer)
		fmt.Fprintf(os.Stderr, "[%s] %s (%d cached sources)\n", time.Now().Format(time.TimeOnly), stats, cache.Len())
	}

	w, err := watch.New(watch.Config{
		Filter:   watchFilter(manifest),
		Debounce: time.Duration(manifest.Config.Watch.DebounceMS) * time.Millisecond,
	})
	if err != nil {
		return err
	}
	defer w.Close()

	rerun(ctx, manifest)
	if !out.quiet {
		fmt.Fprintf(os.Stderr, "watching %s\n", w.Root())
	}
	return w.Run(ctx, func(ctx context.Context, paths []string) {
		if slices.Contains(paths, manifest.Path) {
			reloaded, err := project.LoadFile(manifest.Path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "frontkit: %v\n", err)
				return
			}
			manifest = reloaded
		}
		rerun(ctx, manifest)
	})
}

// watchFilter defaults the include list to the manifest itself plus the
// configured source path and glob.
func watchFilter(m *project.Manifest) watch.Filter {
	cfg := m.Config.Watch
	include := cfg.Include
	if len(include) == 0 {
		include = []string{project.ManifestName}
		if p := m.Config.Sources.Path; p != "" {
			include = append(include, filepath.ToSlash(filepath.Clean(p)))
		}
		if g := m.Config.Sources.Glob; g != "" {
			include = append(include, g)
		}
	}
	return watch.Filter{Root: m.Root, Include: include, Exclude: cfg.Exclude}
}
