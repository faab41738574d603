package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"frontkit/internal/driver"
)

// addSourceFlags registers the flags that select a command's sources.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "path recorded for --text")
	cmd.Flags().String("text", "", "inline source text")
	cmd.Flags().String("glob", "", "read every file under --root matching this doublestar pattern")
	cmd.Flags().String("root", ".", "directory --glob is matched in")
	cmd.Flags().Bool("normalize", false, "strip BOMs, rewrite CRLF and apply NFC before checking")
}

// sourceArgs builds the driver options from the positional FILE argument
// and the source flags. At least one source must be named.
func sourceArgs(cmd *cobra.Command, args []string) (driver.OptionalArgs, error) {
	var opts driver.OptionalArgs
	flags := cmd.Flags()

	name, _ := flags.GetString("name")
	text, _ := flags.GetString("text")
	if flags.Changed("text") {
		if name == "" {
			name = "<inline>"
		}
		opts.NamedString = &driver.NamedString{Path: name, Text: text}
	} else if name != "" {
		return opts, fmt.Errorf("--name requires --text")
	}

	if len(args) > 0 {
		opts.ReadSource = driver.OpenFile(args[0])
	}

	pattern, _ := flags.GetString("glob")
	if pattern != "" {
		root, _ := flags.GetString("root")
		opts.ReadGlob = driver.OpenGlob(root, pattern)
	}

	if opts.NamedString == nil && opts.ReadSource == nil && opts.ReadGlob == nil {
		return opts, fmt.Errorf("no sources: pass FILE, --text or --glob")
	}
	opts.Normalize, _ = flags.GetBool("normalize")
	return opts, nil
}
