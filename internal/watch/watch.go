// Package watch reruns a callback when files under a directory change.
//
// Events are filtered through a Filter and coalesced: a burst of writes
// produces one callback with the sorted set of changed paths once the
// directory has been quiet for the debounce window.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"frontkit/internal/trace"
)

// DefaultDebounce is used when Config.Debounce is zero.
const DefaultDebounce = 150 * time.Millisecond

type Config struct {
	Filter   Filter
	Debounce time.Duration
}

// Watcher owns one fsnotify watcher over a directory tree.
type Watcher struct {
	cfg Config
	fsw *fsnotify.Watcher
}

// New starts watching cfg.Filter.Root and every non-skipped directory below it.
func New(cfg Config) (*Watcher, error) {
	if err := cfg.Filter.Validate(); err != nil {
		return nil, err
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	root, err := filepath.Abs(cfg.Filter.Root)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	cfg.Filter.Root = root

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	w := &Watcher{cfg: cfg, fsw: fsw}
	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Root returns the absolute watched directory.
func (w *Watcher) Root() string {
	return w.cfg.Filter.Root
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// the directory may vanish between the event and the walk
			if errors.Is(err, fs.ErrNotExist) && path != dir {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		}
		if !d.IsDir() {
			return nil
		}
		if w.cfg.Filter.skipDir(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Run blocks until ctx is done, calling onChange with each debounced batch
// of matching paths. onChange runs on the watcher goroutine; events that
// arrive meanwhile are queued by fsnotify.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, paths []string)) error {
	tracer := trace.FromContext(ctx)
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.cfg.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						trace.Point(tracer, trace.ScopeDriver, "watch_error", err.Error())
					}
					continue
				}
			}
			if !relevant(ev) || !w.cfg.Filter.Match(ev.Name) {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(w.cfg.Debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				// changes were lost; rerun over the root
				pending[w.cfg.Filter.Root] = struct{}{}
				timer.Reset(w.cfg.Debounce)
				continue
			}
			trace.Point(tracer, trace.ScopeDriver, "watch_error", err.Error())

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)
			slices.Sort(paths)
			trace.Point(tracer, trace.ScopeDriver, "watch_flush", fmt.Sprintf("%d paths", len(paths)))
			onChange(ctx, paths)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func relevant(ev fsnotify.Event) bool {
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) ||
		ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}
