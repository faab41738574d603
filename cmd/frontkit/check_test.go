package main

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/cobra"

	"frontkit/internal/diagfmt"
	"frontkit/internal/project"
	"frontkit/internal/source"
)

func writeProject(t *testing.T, manifest string, files map[string]string) *project.Manifest {
	t.Helper()
	root := t.TempDir()
	files[project.ManifestName] = manifest
	for name, text := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	m, err := project.Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m
}

const grammarProject = `
[package]
name = "calc"

[tool]
name = "grammar"

[sources]
glob = "**/*.y"
`

func TestCheckRunCountsFailures(t *testing.T) {
	m := writeProject(t, grammarProject, map[string]string{
		"ok.y":      "%start E\n%%\nE : 'x' ;\n",
		"sub/bad.y": "%start E\n%%\nE : F ;\n",
	})
	run := checkRun{
		manifest: m,
		out:      outputOptions{format: diagfmt.FormatShort, quiet: true},
	}
	stats, err := run.execute(context.Background())
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stats.jobs != 2 || stats.failed != 1 || stats.errs != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestCheckRunSharedCache(t *testing.T) {
	m := writeProject(t, grammarProject, map[string]string{
		"a.y": "%start A\n%%\nA : 'a' ;\n",
	})
	cache := source.NewCacheWithAllocator(source.NewAllocator())
	run := checkRun{
		manifest: m,
		out:      outputOptions{format: diagfmt.FormatShort},
		cache:    cache,
	}
	for range 2 {
		if _, err := run.execute(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if cache.Len() != 2 {
		t.Errorf("shared cache holds %d entries, want 2", cache.Len())
	}
}

func TestCheckStatsString(t *testing.T) {
	got := checkStats{jobs: 3, failed: 1, errs: 1, warnings: 2}.String()
	if got != "checked 3 sources: 1 failed, 1 error, 2 warnings" {
		t.Errorf("got %q", got)
	}
}

func TestWatchFilterDefaults(t *testing.T) {
	m := writeProject(t, `
[package]
name = "lexers"

[tool]
name = "lex"

[sources]
path = "./main.l"
glob = "lex/**/*.l"
`, map[string]string{"main.l": "a"})
	f := watchFilter(m)
	want := []string{project.ManifestName, "main.l", "lex/**/*.l"}
	if !slices.Equal(f.Include, want) {
		t.Errorf("Include = %v, want %v", f.Include, want)
	}
	if !f.Match(filepath.Join(m.Root, "lex", "x", "y.l")) {
		t.Error("glob source not matched")
	}
	if f.Match(filepath.Join(m.Root, "notes.txt")) {
		t.Error("unrelated file matched")
	}
}

func TestSourceArgs(t *testing.T) {
	newCmd := func(args ...string) *cobra.Command {
		cmd := &cobra.Command{Use: "x"}
		addSourceFlags(cmd)
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatal(err)
		}
		return cmd
	}

	opts, err := sourceArgs(newCmd("--text", "abc"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if opts.NamedString == nil || opts.NamedString.Path != "<inline>" || opts.NamedString.Text != "abc" {
		t.Errorf("NamedString = %+v", opts.NamedString)
	}

	opts, err = sourceArgs(newCmd("--glob", "*.y", "--normalize"), []string{"dir/g.y"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.ReadSource == nil || opts.ReadSource.Name != "dir/g.y" || opts.ReadGlob == nil || !opts.Normalize {
		t.Errorf("opts = %+v", opts)
	}

	if _, err := sourceArgs(newCmd(), nil); err == nil {
		t.Error("expected error without sources")
	}
	if _, err := sourceArgs(newCmd("--name", "n"), []string{"f"}); err == nil {
		t.Error("expected error for --name without --text")
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("expected error")
	}
}
