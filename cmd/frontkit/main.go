package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"frontkit/internal/version"
)

// errReported means the run's diagnostics were printed and contained errors.
// main exits with status 1 without printing anything more.
var errReported = errors.New("errors reported")

var rootCmd = &cobra.Command{
	Use:           "frontkit",
	Short:         "Source front-end driver and reference tools",
	Long:          `frontkit loads sources, runs a front-end tool over them and reports its diagnostics`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applyColorFlag(cmd); err != nil {
			return err
		}
		traceCleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		profCleanup, err := setupProfiling(cmd)
		if err != nil {
			traceCleanup()
			return err
		}
		cleanup = func() {
			profCleanup()
			traceCleanup()
		}
		return nil
	},
}

// cleanup undoes PersistentPreRunE; main calls it whatever the outcome.
var cleanup = func() {}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(lexCmd)
	rootCmd.AddCommand(grammarCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress warnings and non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show per run (0 = unlimited)")
	flags.String("format", "pretty", "diagnostics format (pretty|json|short)")
	flags.String("path-mode", "auto", "how to print paths (auto|absolute|relative|basename)")
	flags.String("cache", "", "restore and save the source cache snapshot at this path")

	flags.String("trace", "", "write trace events to this file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.Int("trace-ring-size", 4096, "events kept in ring mode")
	flags.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval")

	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")

	err := rootCmd.Execute()
	cleanup()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "frontkit:", err)
		}
		os.Exit(1)
	}
}

func applyColorFlag(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
