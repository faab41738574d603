package diag

import (
	"fmt"
	"sort"
)

// Bag is a Sink that collects diagnostics in memory.
type Bag struct {
	items     []Diagnostic
	max       int
	dropped   int
	finalized int
	// errs and warnings count every diagnostic offered, kept or dropped.
	errs     int
	warnings int
}

// NewBag creates a bag holding at most max diagnostics; max <= 0 means no limit.
func NewBag(max int) *Bag {
	if max < 0 {
		max = 0
	}
	return &Bag{
		items: make([]Diagnostic, 0, min(max, 64)),
		max:   max,
	}
}

// Add appends d unless the limit has been reached.
// Returns false if the diagnostic was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if d.Severity >= SevError {
		b.errs++
	} else if d.Severity >= SevWarning {
		b.warnings++
	}
	if b.max > 0 && len(b.items) >= b.max {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) EmitError(e Error) {
	b.Add(FromError(e))
}

func (b *Bag) EmitWarning(w Warning) {
	b.Add(FromWarning(w))
}

// NoMoreData counts finalizations; a bag reused across runs sees one per run.
func (b *Bag) NoMoreData() {
	b.finalized++
}

// Finalized returns how many times NoMoreData was called.
func (b *Bag) Finalized() int {
	return b.finalized
}

func (b *Bag) Cap() int {
	return b.max
}

// Dropped returns how many diagnostics were refused because of the limit.
func (b *Bag) Dropped() int {
	return b.dropped
}

// HasErrors reports whether at least one error was offered, including
// errors dropped by the limit.
func (b *Bag) HasErrors() bool {
	return b.errs > 0
}

// HasWarnings reports whether at least one warning or error was offered.
func (b *Bag) HasWarnings() bool {
	return b.errs > 0 || b.warnings > 0
}

// Counts returns the number of errors and warnings offered to the bag.
// Unlike Items, the counts are not affected by the limit.
func (b *Bag) Counts() (errs, warnings int) {
	return b.errs, b.warnings
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the collected diagnostics. The slice must not be modified.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends the diagnostics of other, growing the limit if needed.
func (b *Bag) Merge(other *Bag) {
	newTotal := len(b.items) + len(other.items)
	if b.max > 0 && newTotal > b.max {
		b.max = newTotal
	}
	b.items = append(b.items, other.items...)
	b.errs += other.errs
	b.warnings += other.warnings
	b.dropped += other.dropped
}

// Reset drops the collected diagnostics but keeps the finalization count.
func (b *Bag) Reset() {
	b.items = b.items[:0]
	b.dropped = 0
	b.errs, b.warnings = 0, 0
}

// Sort orders diagnostics by source, start, end, severity (errors first)
// and code so output is deterministic.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Source != dj.Source {
			return di.Source < dj.Source
		}
		pi, pj := di.Primary(), dj.Primary()
		if pi.Start != pj.Start {
			return pi.Start < pj.Start
		}
		if pi.End != pj.End {
			return pi.End < pj.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup removes diagnostics with the same code, source, primary span and message.
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	newitems := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%d:%s:%s", d.Code, d.Source, d.Primary(), d.Message)
		if seen[key] {
			continue
		}
		seen[key] = true
		newitems = append(newitems, d)
	}
	b.items = newitems
}
