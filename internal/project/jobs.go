package project

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"frontkit/internal/driver"
	"frontkit/internal/grammar"
	"frontkit/internal/lexer"
	"frontkit/internal/pipeline"
	"frontkit/internal/tool"
)

// Jobs expands the [sources] section into one job per file: the inline
// source first, then path, then every glob match in lexical order. A file
// named by both path and glob is checked once. Job names are paths
// relative to the project root.
func (m *Manifest) Jobs() ([]pipeline.Job, error) {
	src := m.Config.Sources
	view := os.DirFS(m.Root)
	var jobs []pipeline.Job

	if src.Inline != nil {
		jobs = append(jobs, pipeline.Job{
			Name: src.Inline.Name,
			Args: driver.OptionalArgs{
				NamedString: &driver.NamedString{Path: src.Inline.Name, Text: src.Inline.Text},
				Normalize:   src.Normalize,
			},
		})
	}

	var files []string
	if src.Path != "" {
		files = append(files, path.Clean(filepath.ToSlash(src.Path)))
	}
	if src.Glob != "" {
		if !doublestar.ValidatePattern(src.Glob) {
			return nil, fmt.Errorf("%s: [sources].glob: %w", m.Path, doublestar.ErrBadPattern)
		}
		matches, err := doublestar.Glob(view, src.Glob, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("%s: [sources].glob: %w", m.Path, err)
		}
		slices.Sort(matches)
		for _, match := range matches {
			if !slices.Contains(files, match) {
				files = append(files, match)
			}
		}
	}

	for _, f := range files {
		jobs = append(jobs, pipeline.Job{
			Name: f,
			Args: driver.OptionalArgs{
				ReadSource: &driver.ReadSource{View: view, Path: f},
				Normalize:  src.Normalize,
			},
		})
	}
	return jobs, nil
}

// ToolParams builds the parameters of the configured tool.
func (m *Manifest) ToolParams() (tool.Params, error) {
	t := m.Config.Tool
	switch t.Name {
	case "lex":
		return tool.Params{
			Required: struct{}{},
			Optional: lexer.Options{Keywords: t.Keywords, EmitTokenDump: t.TokenDump},
		}, nil
	case "grammar":
		kind, err := grammar.ParseYaccKind(t.Kind)
		if err != nil {
			return tool.Params{}, fmt.Errorf("%s: [tool].kind: %w", m.Path, err)
		}
		return tool.Params{
			Required: grammar.Args{Kind: kind},
			Optional: grammar.Options{Summary: t.Summary},
		}, nil
	}
	return tool.Params{}, fmt.Errorf("%s: unknown tool %q", m.Path, t.Name)
}
