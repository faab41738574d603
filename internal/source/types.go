package source

import (
	"fmt"
	"sync/atomic"
)

type (
	// ID is an opaque identifier for one (path, text) entry of a Cache.
	//
	//   - A source text may have multiple IDs.
	//   - An ID refers to exactly one source text.
	ID uint64
	// Flags encodes metadata about a cached source.
	Flags uint8
	// Kind is a tool-defined tag attached to the sources of a Session.
	Kind string
)

// NoID is never issued by an Allocator.
const NoID ID = 0

const (
	// FileVirtual marks a source that was not read from a view (inline or generated).
	FileVirtual Flags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// KindLoaded tags every source the driver loads before the tool runs.
const KindLoaded Kind = "loaded"

func (id ID) String() string {
	return fmt.Sprintf("src#%d", uint64(id))
}

// Allocator issues IDs from a monotonically increasing counter.
// It is safe for concurrent use; Cache and Session are not.
type Allocator struct {
	last atomic.Uint64
}

// NewAllocator returns an allocator whose first ID is 1.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Shared is the process-wide allocator used by NewCache.
var Shared = NewAllocator()

// Next returns a fresh ID. IDs are never reused.
func (a *Allocator) Next() ID {
	return ID(a.last.Add(1))
}

// Last returns the most recently issued ID, or NoID.
func (a *Allocator) Last() ID {
	return ID(a.last.Load())
}

// File captures metadata and content for a single cached source.
type File struct {
	ID      ID
	Path    string
	Text    string
	LineIdx []uint32
	Digest  uint64
	Flags   Flags
}

// LineCol represents a human-readable position in a source.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}

// Input is a source resolved by the driver before the tool runs.
type Input struct {
	Path  string
	Text  string
	Flags Flags
}
