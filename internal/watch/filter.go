package watch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter decides which paths under Root trigger a rerun. Patterns are
// doublestar globs matched against slash-separated paths relative to Root.
type Filter struct {
	Root    string
	Include []string
	Exclude []string
}

// Validate rejects malformed patterns.
func (f Filter) Validate() error {
	for _, p := range append(append([]string(nil), f.Include...), f.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("watch: bad pattern %q", p)
		}
	}
	return nil
}

// Match reports whether a change to path should trigger a rerun.
// Paths outside Root and hidden entries never match.
func (f Filter) Match(path string) bool {
	rel, ok := f.rel(path)
	if !ok {
		return false
	}
	if hidden(rel) {
		return false
	}
	for _, p := range f.Exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return false
		}
	}
	if len(f.Include) == 0 {
		return true
	}
	for _, p := range f.Include {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// skipDir reports whether a directory should not be watched at all.
func (f Filter) skipDir(path string) bool {
	rel, ok := f.rel(path)
	if !ok {
		return true
	}
	if rel == "." {
		return false
	}
	if hidden(rel) {
		return true
	}
	for _, p := range f.Exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, rel+"/"); ok {
			return true
		}
	}
	return false
}

func (f Filter) rel(path string) (string, bool) {
	rel, err := filepath.Rel(f.Root, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

func hidden(rel string) bool {
	for seg := range strings.SplitSeq(rel, "/") {
		if len(seg) > 1 && seg[0] == '.' && seg != ".." {
			return true
		}
	}
	return false
}
