package driver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"frontkit/internal/source"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	dc := OpenDiskCache(filepath.Join(dir, "nested", "sources.mp"))

	src := source.NewCacheWithAllocator(source.NewAllocator())
	s := src.Begin(source.Input{Path: "a.y", Text: "%%\nA : 'a' ;"})
	gen := src.AddSource(s, "a.summary", "A -> 'a'", "summary")
	if err := dc.Save(src); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// the target allocator has already issued ids, so restored ids differ
	alloc := source.NewAllocator()
	for range 10 {
		alloc.Next()
	}
	dst := source.NewCacheWithAllocator(alloc)
	restored, err := dc.Load(dst)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if restored == nil || len(restored.IDs) != 2 {
		t.Fatalf("restored = %+v", restored)
	}

	newGen, ok := restored.IDs[gen]
	if !ok {
		t.Fatalf("no mapping for %v", gen)
	}
	if newGen == gen {
		t.Error("restore reused a saved id")
	}
	text, _ := dst.SourceForID(newGen)
	path, _ := dst.PathForID(newGen)
	if text != "A -> 'a'" || path != "a.summary" {
		t.Errorf("restored entry = %q at %q", text, path)
	}
	f, _ := dst.File(newGen)
	if f.Flags&source.FileVirtual == 0 {
		t.Error("flags not restored")
	}
	if len(restored.Session.LoadedSourceIDs()) != 2 {
		t.Error("restored entries should be the session's loaded sources")
	}
}

func TestDiskCacheMissing(t *testing.T) {
	dc := OpenDiskCache(filepath.Join(t.TempDir(), "none.mp"))
	restored, err := dc.Load(source.NewCacheWithAllocator(source.NewAllocator()))
	if err != nil || restored != nil {
		t.Errorf("Load on missing snapshot = %+v, %v", restored, err)
	}
	if err := dc.Drop(); err != nil {
		t.Errorf("Drop on missing snapshot: %v", err)
	}
}

func TestDiskCacheCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.mp")
	if err := os.WriteFile(path, []byte("not msgpack at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	dst := source.NewCacheWithAllocator(source.NewAllocator())
	_, err := OpenDiskCache(path).Load(dst)
	if !errors.Is(err, ErrSnapshotCorrupt) {
		t.Errorf("expected ErrSnapshotCorrupt, got %v", err)
	}
	if dst.Len() != 0 {
		t.Error("corrupt snapshot partially restored")
	}
}

func TestDiskCacheDrop(t *testing.T) {
	dc := OpenDiskCache(filepath.Join(t.TempDir(), "s.mp"))
	c := source.NewCacheWithAllocator(source.NewAllocator())
	c.Begin(source.Input{Path: "x", Text: "y"})
	if err := dc.Save(c); err != nil {
		t.Fatal(err)
	}
	if err := dc.Drop(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dc.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("snapshot still present: %v", err)
	}
}

func TestDefaultCachePath(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	p, err := DefaultCachePath("frontkit")
	if err != nil {
		t.Fatal(err)
	}
	if p != filepath.Join("/tmp/xdg", "frontkit", "sources.mp") {
		t.Errorf("DefaultCachePath = %q", p)
	}
}

func TestDiskCacheSaveLatest(t *testing.T) {
	dc := OpenDiskCache(filepath.Join(t.TempDir(), "sources.mp"))

	c := source.NewCacheWithAllocator(source.NewAllocator())
	c.Begin(source.Input{Path: "a.y", Text: "old"}, source.Input{Path: "b.y", Text: "b"})
	c.Begin(source.Input{Path: "a.y", Text: "new"})
	if err := dc.SaveLatest(c); err != nil {
		t.Fatalf("SaveLatest: %v", err)
	}

	snap, ok, err := dc.Read()
	if err != nil || !ok {
		t.Fatalf("Read: %v, %v", ok, err)
	}
	if len(snap.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(snap.Entries))
	}
	texts := map[string]string{}
	for _, e := range snap.Entries {
		texts[e.Path] = e.Text
	}
	if texts["a.y"] != "new" || texts["b.y"] != "b" {
		t.Errorf("unexpected entries %v", texts)
	}
	if snap.Entries[0].ID > snap.Entries[1].ID {
		t.Error("entries not in id order")
	}
}
