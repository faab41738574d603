// Package testkit holds invariant checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"frontkit/internal/diag"
	"frontkit/internal/source"
	"frontkit/internal/token"
)

// CheckRunInvariants verifies the bookkeeping of one finished driver run:
// 1) loaded and added sources are disjoint and all resolvable in cache
// 2) every diagnostic names a known source and has in-bounds spans
// 3) bag was finalized exactly once
func CheckRunInvariants(cache *source.Cache, session *source.Session, bag *diag.Bag) error {
	if cache == nil || session == nil || bag == nil {
		return fmt.Errorf("nil cache, session or bag")
	}

	seen := make(map[source.ID]string)
	check := func(list string, ids []source.ID) error {
		for _, id := range ids {
			if prev, dup := seen[id]; dup {
				return fmt.Errorf("id %v listed as both %s and %s", id, prev, list)
			}
			seen[id] = list
			if _, ok := cache.SourceForID(id); !ok {
				return fmt.Errorf("%s id %v missing from cache", list, id)
			}
		}
		return nil
	}
	if err := check("loaded", session.LoadedSourceIDs()); err != nil {
		return err
	}
	if err := check("added", session.AddedSourceIDs()); err != nil {
		return err
	}

	for i, d := range bag.Items() {
		f, ok := cache.File(d.Source)
		if !ok {
			return fmt.Errorf("diagnostic %d (%q) names unknown source %v", i, d.Message, d.Source)
		}
		if len(d.Spans) == 0 {
			return fmt.Errorf("diagnostic %d (%q) has no spans", i, d.Message)
		}
		if err := checkSpans(f, d.Spans); err != nil {
			return fmt.Errorf("diagnostic %d (%q): %w", i, d.Message, err)
		}
	}

	if n := bag.Finalized(); n != 1 {
		return fmt.Errorf("sink finalized %d times, want 1", n)
	}
	return nil
}

// CheckTokenSpans verifies that toks are ordered, non-overlapping and lie
// within f, and that every token except EOF is non-empty.
func CheckTokenSpans(f *source.File, toks []token.Token) error {
	var prevEnd uint32
	for i, tok := range toks {
		if err := checkSpans(f, []source.Span{tok.Span}); err != nil {
			return fmt.Errorf("token %d (%s): %w", i, tok.Kind, err)
		}
		if tok.Kind != token.EOF && tok.Span.Empty() {
			return fmt.Errorf("token %d (%s) is empty at %v", i, tok.Kind, tok.Span)
		}
		if tok.Span.Start < prevEnd {
			return fmt.Errorf("token %d (%s) at %v overlaps the previous token", i, tok.Kind, tok.Span)
		}
		prevEnd = tok.Span.End
	}
	return nil
}

func checkSpans(f *source.File, spans []source.Span) error {
	textLen, err := safecast.Conv[uint32](len(f.Text))
	if err != nil {
		return fmt.Errorf("text length overflow: %w", err)
	}
	for _, sp := range spans {
		if sp.End < sp.Start {
			return fmt.Errorf("inverted span %v", sp)
		}
		if sp.End > textLen {
			return fmt.Errorf("span %v beyond text length %d", sp, textLen)
		}
	}
	return nil
}
