package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"

	"frontkit/internal/source"
)

// Current schema version - increment when the snapshot format changes
const diskCacheSchemaVersion uint16 = 1

// ErrSnapshotCorrupt is returned when a snapshot fails its checksums.
var ErrSnapshotCorrupt = errors.New("driver: source snapshot is corrupt")

// DiskCache persists the contents of a source.Cache between processes.
// Safe for concurrent use.
type DiskCache struct {
	mu   sync.RWMutex
	path string
}

// Snapshot is the on-disk form of a cache.
type Snapshot struct {
	Schema  uint16
	SavedAt time.Time
	Entries []SnapshotEntry
}

// SnapshotEntry is one cache entry. ID is the id the entry had when saved;
// restoring never reuses it.
type SnapshotEntry struct {
	ID    uint64
	Path  string
	Text  string
	Flags uint8
	Sum   uint64
}

// Restored describes a snapshot loaded into a cache.
type Restored struct {
	// Session lists the restored entries as loaded sources, in saved-id order.
	Session *source.Session
	// IDs maps saved ids to the fresh ids issued by the target cache.
	IDs map[source.ID]source.ID
}

// OpenDiskCache returns a cache stored at path. Nothing is read yet.
func OpenDiskCache(path string) *DiskCache {
	return &DiskCache{path: path}
}

// DefaultCachePath returns $XDG_CACHE_HOME/<app>/sources.mp, falling back
// to ~/.cache.
func DefaultCachePath(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app, "sources.mp"), nil
}

// Path returns the snapshot file location.
func (c *DiskCache) Path() string {
	return c.path
}

// Save writes every entry of cache, replacing any previous snapshot
// atomically.
func (c *DiskCache) Save(cache *source.Cache) error {
	if c == nil {
		return nil
	}
	ids := cache.SourceIDs()
	slices.Sort(ids)
	return c.write(cache, ids)
}

// SaveLatest is like Save but keeps only the newest entry of each path, so
// a snapshot that is restored and saved again on every run stays bounded.
func (c *DiskCache) SaveLatest(cache *source.Cache) error {
	if c == nil {
		return nil
	}
	ids := cache.SourceIDs()
	slices.Sort(ids)
	newest := make(map[string]int, len(ids))
	kept := ids[:0]
	for _, id := range ids {
		f, _ := cache.File(id)
		if i, seen := newest[f.Path]; seen {
			kept[i] = id
			continue
		}
		newest[f.Path] = len(kept)
		kept = append(kept, id)
	}
	slices.Sort(kept)
	return c.write(cache, kept)
}

func (c *DiskCache) write(cache *source.Cache, ids []source.ID) error {
	snap := Snapshot{Schema: diskCacheSchemaVersion, SavedAt: time.Now().UTC()}
	for _, id := range ids {
		f, _ := cache.File(id)
		snap.Entries = append(snap.Entries, SnapshotEntry{
			ID:    uint64(id),
			Path:  f.Path,
			Text:  f.Text,
			Flags: uint8(f.Flags),
			Sum:   xxhash.Sum64String(f.Text),
		})
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("snapshot dir: %w", err)
	}
	f, err := os.CreateTemp(filepath.Dir(c.path), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmp)
	}()

	if err := msgpack.NewEncoder(f).Encode(&snap); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}

// Read decodes and verifies the snapshot without touching any cache.
// ok is false when no snapshot exists or it was written by another schema.
func (c *DiskCache) Read() (snap *Snapshot, ok bool, err error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	snap = &Snapshot{}
	if err := msgpack.NewDecoder(f).Decode(snap); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrSnapshotCorrupt, err)
	}
	if snap.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	for _, e := range snap.Entries {
		if xxhash.Sum64String(e.Text) != e.Sum {
			return nil, false, fmt.Errorf("%w: entry %d (%s) fails its checksum", ErrSnapshotCorrupt, e.ID, e.Path)
		}
	}
	return snap, true, nil
}

// Load restores the snapshot into cache under fresh ids. It returns nil
// when there is nothing to restore. Either every entry is restored or none.
func (c *DiskCache) Load(cache *source.Cache) (*Restored, error) {
	snap, ok, err := c.Read()
	if err != nil || !ok {
		return nil, err
	}
	inputs := make([]source.Input, len(snap.Entries))
	for i, e := range snap.Entries {
		inputs[i] = source.Input{Path: e.Path, Text: e.Text, Flags: source.Flags(e.Flags)}
	}
	session := cache.Begin(inputs...)
	loaded := session.LoadedSourceIDs()
	ids := make(map[source.ID]source.ID, len(loaded))
	for i, e := range snap.Entries {
		ids[source.ID(e.ID)] = loaded[i]
	}
	return &Restored{Session: session, IDs: ids}, nil
}

// Drop removes the snapshot.
func (c *DiskCache) Drop() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.Remove(c.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
