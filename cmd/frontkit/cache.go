package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"frontkit/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the source cache snapshot",
}

var cacheShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the entries of the snapshot",
	Args:  cobra.NoArgs,
	RunE:  runCacheShow,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dc, err := diskCacheFromFlags(cmd)
		if err != nil {
			return err
		}
		return dc.Drop()
	},
}

func init() {
	cacheShowCmd.Flags().Bool("json", false, "print the entries as JSON")
	cacheCmd.AddCommand(cacheShowCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

// diskCacheFromFlags opens --cache, or the per-user default location.
func diskCacheFromFlags(cmd *cobra.Command) (*driver.DiskCache, error) {
	path, err := cmd.Root().PersistentFlags().GetString("cache")
	if err != nil {
		return nil, err
	}
	if path == "" {
		if path, err = driver.DefaultCachePath("frontkit"); err != nil {
			return nil, err
		}
	}
	return driver.OpenDiskCache(path), nil
}

type cacheEntryJSON struct {
	ID    uint64 `json:"id"`
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
	Sum   string `json:"xxhash"`
}

func runCacheShow(cmd *cobra.Command, args []string) error {
	dc, err := diskCacheFromFlags(cmd)
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	snap, ok, err := dc.Read()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !ok {
		fmt.Fprintf(out, "no snapshot at %s\n", dc.Path())
		return nil
	}

	if asJSON {
		entries := make([]cacheEntryJSON, 0, len(snap.Entries))
		for _, e := range snap.Entries {
			entries = append(entries, cacheEntryJSON{ID: e.ID, Path: e.Path, Bytes: len(e.Text), Sum: fmt.Sprintf("%016x", e.Sum)})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	fmt.Fprintf(out, "%s: %d entries, saved %s\n", dc.Path(), len(snap.Entries), snap.SavedAt.Local().Format(time.DateTime))
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tBYTES\tXXHASH\tPATH")
	for _, e := range snap.Entries {
		fmt.Fprintf(tw, "%d\t%d\t%016x\t%s\n", e.ID, len(e.Text), e.Sum, e.Path)
	}
	return tw.Flush()
}
