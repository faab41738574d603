package source

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"fortio.org/safecast"
	"github.com/cespare/xxhash/v2"
)

// Cache maps IDs to a path and a source text.
//
// Paths are stored exactly as given; only FormatPath cleans them for
// display. A path can have several entries by having several IDs:
// reloading a file, or recovering a fixed-up copy of it, inserts a new
// entry rather than replacing the old one. Entries are never removed.
//
// Cache performs no filesystem access; loading is the driver's job.
// Changes made during a driver run are tracked in a Session.
type Cache struct {
	alloc *Allocator
	files map[ID]*File
}

// NewCache creates an empty cache drawing IDs from Shared.
func NewCache() *Cache {
	return NewCacheWithAllocator(Shared)
}

// NewCacheWithAllocator creates an empty cache with its own ID source.
// Caches sharing an allocator never hand out the same ID.
func NewCacheWithAllocator(alloc *Allocator) *Cache {
	if alloc == nil {
		alloc = Shared
	}
	return &Cache{
		alloc: alloc,
		files: make(map[ID]*File),
	}
}

// Allocator returns the allocator the cache draws IDs from.
func (c *Cache) Allocator() *Allocator {
	return c.alloc
}

func (c *Cache) insert(path, text string, flags Flags) ID {
	id := c.alloc.Next()
	c.files[id] = &File{
		ID:      id,
		Path:    path,
		Text:    text,
		LineIdx: buildLineIndex(text),
		Digest:  xxhash.Sum64String(text),
		Flags:   flags,
	}
	return id
}

// AddSource inserts text under a fresh ID and records it in session as
// added by the tool, tagged with kind. It is how tools populate the cache
// with generated code. session must not be nil; AddSource panics before
// touching the cache if it is.
func (c *Cache) AddSource(session *Session, path, text string, kind Kind) ID {
	if session == nil {
		panic("source: AddSource called without a session")
	}
	id := c.insert(path, text, FileVirtual)
	session.addSourceID(id, kind)
	return id
}

// Begin inserts the driver-resolved inputs and returns a fresh Session
// listing them, in order, as loaded sources.
func (c *Cache) Begin(inputs ...Input) *Session {
	session := newSession()
	for _, in := range inputs {
		id := c.insert(in.Path, in.Text, in.Flags)
		session.loadSourceID(id)
	}
	return session
}

// SourceForID returns the text for id, or false if this cache never issued it.
func (c *Cache) SourceForID(id ID) (string, bool) {
	f, ok := c.files[id]
	if !ok {
		return "", false
	}
	return f.Text, true
}

// PathForID returns the path for id, or false if this cache never issued it.
func (c *Cache) PathForID(id ID) (string, bool) {
	f, ok := c.files[id]
	if !ok {
		return "", false
	}
	return f.Path, true
}

// SourceIDs returns every ID in the cache. The order is unspecified.
func (c *Cache) SourceIDs() []ID {
	return slices.Collect(maps.Keys(c.files))
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	return len(c.files)
}

// File returns the entry for id. The returned File must not be modified.
func (c *Cache) File(id ID) (*File, bool) {
	f, ok := c.files[id]
	return f, ok
}

// Resolve converts a span of source id into line and column positions.
func (c *Cache) Resolve(id ID, span Span) (start, end LineCol, ok bool) {
	f, found := c.files[id]
	if !found {
		return LineCol{}, LineCol{}, false
	}
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End), true
}

// Line returns the 1-based line lineNum without its trailing newline,
// or "" when the line does not exist.
func (f *File) Line(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}

	lenLineIdx, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenText, err := safecast.Conv[uint32](len(f.Text))
	if err != nil {
		panic(fmt.Errorf("text length overflow: %w", err))
	}

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case lineNum-2 < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}
	if lineNum-1 < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenText
	}
	if start >= lenText {
		return ""
	}
	if end > lenText {
		end = lenText
	}
	return f.Text[start:end]
}

// FormatPath renders the path according to mode:
// "absolute", "relative" (to baseDir, or the working directory), "basename", "auto".
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return normalizePath(abs)
		}
		return normalizePath(f.Path)
	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
		return normalizePath(f.Path)
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return normalizePath(f.Path)
		}
		return filepath.Base(f.Path)
	default:
		return normalizePath(f.Path)
	}
}
