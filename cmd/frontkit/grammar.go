package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"frontkit/internal/diag"
	"frontkit/internal/driver"
	"frontkit/internal/grammar"
	"frontkit/internal/tool"
)

var grammarCmd = &cobra.Command{
	Use:   "grammar [flags] [FILE]",
	Short: "Check a yacc-style grammar",
	Long: `Grammar parses a yacc-style grammar and reports duplicate rules,
undefined symbols, start rule problems and unused rules`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGrammar,
}

func init() {
	addSourceFlags(grammarCmd)
	grammarCmd.Flags().String("kind", "grmtools", "grammar flavour (grmtools|eco|original[:useraction|genericparsetree|noaction])")
	grammarCmd.Flags().Bool("summary", false, "print the rule table of a valid grammar")
}

func runGrammar(cmd *cobra.Command, args []string) error {
	out, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}
	srcArgs, err := sourceArgs(cmd, args)
	if err != nil {
		return err
	}
	kindStr, err := cmd.Flags().GetString("kind")
	if err != nil {
		return err
	}
	kind, err := grammar.ParseYaccKind(kindStr)
	if err != nil {
		return err
	}
	summary, err := cmd.Flags().GetBool("summary")
	if err != nil {
		return err
	}

	cache, dc, err := out.openCache()
	if err != nil {
		return err
	}
	timer := out.newTimer()
	srcArgs.Timer = timer
	printer := out.newPrinter(cache)

	params := tool.Params{
		Required: grammar.Args{Kind: kind},
		Optional: grammar.Options{Summary: summary},
	}
	result, err := driver.New[*grammar.Certified](grammar.Tool{}, driver.Args{Optional: srcArgs}, params).
		Run(cmd.Context(), diag.NewDedupSink(printer), cache)
	if err != nil {
		return err
	}

	certified := result.Output
	if g, err := certified.Grammar(); err == nil {
		if !out.quiet {
			fmt.Fprintf(os.Stdout, "%s: %d rules, %d productions, %d terminals\n",
				g.Start, len(g.Nonterminals), len(g.Productions), len(g.Terminals))
		}
		if text, ok := cache.SourceForID(certified.SummaryID); ok {
			fmt.Fprint(os.Stdout, text)
		}
	}

	if err := saveCache(dc, cache); err != nil {
		return err
	}
	out.printTimings(os.Stderr, timer)
	return out.summarize(os.Stderr, printer)
}
