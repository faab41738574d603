package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"frontkit/internal/diag"
	"frontkit/internal/diagfmt"
	"frontkit/internal/driver"
	"frontkit/internal/lexer"
	"frontkit/internal/tool"
)

var lexCmd = &cobra.Command{
	Use:   "lex [flags] [FILE]",
	Short: "Tokenize sources with the reference lexer",
	Long:  `Lex breaks each source into identifiers, keywords, numbers, strings and punctuation`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	addSourceFlags(lexCmd)
	lexCmd.Flags().StringSlice("keywords", nil, "identifiers to report as keywords")
	lexCmd.Flags().String("tokens", "pretty", "token output (pretty|json|none)")
	lexCmd.Flags().Bool("dump", false, "add a token dump of each source to the cache")
}

func runLex(cmd *cobra.Command, args []string) error {
	out, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}
	srcArgs, err := sourceArgs(cmd, args)
	if err != nil {
		return err
	}
	tokensFormat, err := cmd.Flags().GetString("tokens")
	if err != nil {
		return err
	}
	switch tokensFormat {
	case "pretty", "json", "none":
	default:
		return fmt.Errorf("unknown token format: %s", tokensFormat)
	}
	keywords, err := cmd.Flags().GetStringSlice("keywords")
	if err != nil {
		return err
	}
	dump, err := cmd.Flags().GetBool("dump")
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
		Required: struct{}{},
		Optional: lexer.Options{Keywords: keywords, EmitTokenDump: dump},
	}
	result, err := driver.New[*lexer.Output](lexer.Tool{}, driver.Args{Optional: srcArgs}, params).
		Run(cmd.Context(), diag.NewDedupSink(printer), cache)
	if err != nil {
		return err
	}

	switch tokensFormat {
	case "pretty":
		for _, f := range result.Output.Files {
			if len(result.Output.Files) > 1 {
				fmt.Fprintf(os.Stdout, "== %s\n", f.Path)
			}
			if err := diagfmt.FormatTokensPretty(os.Stdout, f.Tokens, cache, f.Source); err != nil {
				return err
			}
		}
	case "json":
		files := make([]diagfmt.FileTokensOutput, 0, len(result.Output.Files))
		for _, f := range result.Output.Files {
			files = append(files, diagfmt.BuildTokensOutput(f.Tokens, cache, f.Source))
		}
		if err := diagfmt.FormatTokensJSON(os.Stdout, files); err != nil {
			return err
		}
	}

	if err := saveCache(dc, cache); err != nil {
		return err
	}
	out.printTimings(os.Stderr, timer)
	return out.summarize(os.Stderr, printer)
}
