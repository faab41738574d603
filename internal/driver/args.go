package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"frontkit/internal/observ"
	"frontkit/internal/source"
)

// Args configures where the driver takes sources from.
type Args struct {
	Required RequiredArgs
	Optional OptionalArgs
}

// RequiredArgs is reserved; the driver currently requires nothing.
type RequiredArgs struct{}

// OptionalArgs lists the source options. Populated options are resolved in
// field order and each contributes its sources in that order.
type OptionalArgs struct {
	NamedString *NamedString
	ReadSource  *ReadSource
	ReadGlob    *ReadGlob

	// Normalize strips BOMs, rewrites CRLF and applies NFC before insertion.
	Normalize bool
	// Timer, when set, receives the resolve_sources and tool:<name> phases.
	Timer *observ.Timer
}

// NamedString is an inline source.
type NamedString struct {
	Path string
	Text string
}

// ReadSource reads one file from View. Name, when set, is the path recorded
// in the cache instead of Path.
type ReadSource struct {
	View fs.FS
	Path string
	Name string
}

// ReadGlob reads every file in View matching a doublestar pattern such as
// "grammars/**/*.y", in lexical order. Recorded paths are Root joined with
// the match.
type ReadGlob struct {
	View    fs.FS
	Pattern string
	Root    string
}

var (
	errNoView      = errors.New("no view configured")
	errInvalidPath = errors.New("path is not valid within the view")
	errNotUTF8     = errors.New("source is not valid UTF-8")
	errNoMatches   = fmt.Errorf("pattern matched no files: %w", fs.ErrNotExist)
)

// OpenFile returns a ReadSource for a path on the local filesystem.
func OpenFile(p string) *ReadSource {
	dir, base := filepath.Split(p)
	if dir == "" {
		dir = "."
	}
	return &ReadSource{View: os.DirFS(dir), Path: base, Name: p}
}

// OpenGlob returns a ReadGlob over the local directory root.
func OpenGlob(root, pattern string) *ReadGlob {
	return &ReadGlob{View: os.DirFS(root), Pattern: pattern, Root: root}
}

// resolve reads every configured source without touching any cache.
func (o OptionalArgs) resolve() ([]source.Input, error) {
	var inputs []source.Input
	if o.NamedString != nil {
		inputs = append(inputs, source.Input{
			Path:  o.NamedString.Path,
			Text:  o.NamedString.Text,
			Flags: source.FileVirtual,
		})
	}
	if o.ReadSource != nil {
		in, err := o.ReadSource.read()
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	if o.ReadGlob != nil {
		ins, err := o.ReadGlob.read()
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, ins...)
	}
	if o.Normalize {
		for i := range inputs {
			text, flags := source.Normalize(inputs[i].Text)
			inputs[i].Text = text
			inputs[i].Flags |= flags
		}
	}
	return inputs, nil
}

func (r *ReadSource) read() (source.Input, error) {
	name := r.Name
	if name == "" {
		name = r.Path
	}
	if r.View == nil {
		return source.Input{}, configError("read", name, errNoView)
	}
	if !fs.ValidPath(r.Path) {
		return source.Input{}, configError("read", name, errInvalidPath)
	}
	return readInput(r.View, r.Path, name)
}

func (g *ReadGlob) read() ([]source.Input, error) {
	if g.View == nil {
		return nil, configError("glob", g.Pattern, errNoView)
	}
	if !doublestar.ValidatePattern(g.Pattern) {
		return nil, configError("glob", g.Pattern, doublestar.ErrBadPattern)
	}
	matches, err := doublestar.Glob(g.View, g.Pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, ioError("glob", g.Pattern, err)
	}
	if len(matches) == 0 {
		return nil, ioError("glob", g.Pattern, errNoMatches)
	}
	slices.Sort(matches)

	inputs := make([]source.Input, 0, len(matches))
	for _, m := range matches {
		name := m
		if g.Root != "" {
			name = path.Join(filepath.ToSlash(g.Root), m)
		}
		in, err := readInput(g.View, m, name)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func readInput(view fs.FS, p, name string) (source.Input, error) {
	data, err := fs.ReadFile(view, p)
	if err != nil {
		return source.Input{}, ioError("read", name, err)
	}
	if !utf8.Valid(data) {
		return source.Input{}, ioError("read", name, errNotUTF8)
	}
	return source.Input{Path: name, Text: string(data)}, nil
}
