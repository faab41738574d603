package diag

import (
	"testing"

	"frontkit/internal/source"
)

type codedWarning struct {
	Simple
}

func TestBagCollects(t *testing.T) {
	bag := NewBag(0)
	e := NewEmitter(bag)

	e.EmitNonFatalError(Simple{ID: 3, At: []source.Span{{Start: 1, End: 2}}, Msg: "e", CodeStr: "LEX1001"})
	e.EmitWarning(codedWarning{Simple{ID: 3, At: []source.Span{{Start: 0, End: 0}}, Msg: "w", CodeStr: "LEX3001"}})
	e.Close()

	if bag.Len() != 2 {
		t.Fatalf("Len() = %d", bag.Len())
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Error("bag should report both errors and warnings")
	}
	if bag.Finalized() != 1 {
		t.Errorf("Finalized() = %d", bag.Finalized())
	}
	d := bag.Items()[0]
	if d.Severity != SevError || d.Code != "LEX1001" || d.Source != 3 || d.Message != "e" {
		t.Errorf("unexpected record %+v", d)
	}
	if bag.Items()[1].Code != "LEX3001" {
		t.Errorf("code not taken from embedded Simple: %+v", bag.Items()[1])
	}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	for range 5 {
		bag.Add(Diagnostic{Severity: SevWarning})
	}
	if bag.Len() != 2 || bag.Dropped() != 3 {
		t.Errorf("Len() = %d, Dropped() = %d", bag.Len(), bag.Dropped())
	}
	if bag.HasErrors() {
		t.Error("warnings only bag reports errors")
	}
}

func TestBagCountsSurviveLimit(t *testing.T) {
	bag := NewBag(1)
	bag.Add(Diagnostic{Severity: SevWarning, Message: "w"})
	bag.Add(Diagnostic{Severity: SevError, Message: "e"})

	if bag.Len() != 1 || bag.Dropped() != 1 {
		t.Fatalf("Len() = %d, Dropped() = %d", bag.Len(), bag.Dropped())
	}
	if !bag.HasErrors() {
		t.Error("error dropped by the limit must still count")
	}
	if errs, warnings := bag.Counts(); errs != 1 || warnings != 1 {
		t.Errorf("Counts() = %d, %d; want 1, 1", errs, warnings)
	}
	bag.Reset()
	if bag.HasWarnings() {
		t.Error("Reset should clear the counts")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(0)
	bag.Add(Diagnostic{Severity: SevWarning, Source: 2, Spans: []source.Span{{Start: 0, End: 1}}, Message: "w"})
	bag.Add(Diagnostic{Severity: SevWarning, Source: 1, Spans: []source.Span{{Start: 5, End: 6}}, Message: "late"})
	bag.Add(Diagnostic{Severity: SevWarning, Source: 1, Spans: []source.Span{{Start: 1, End: 2}}, Message: "w"})
	bag.Add(Diagnostic{Severity: SevError, Source: 1, Spans: []source.Span{{Start: 1, End: 2}}, Message: "e"})
	bag.Add(Diagnostic{Severity: SevError, Source: 1, Spans: []source.Span{{Start: 1, End: 2}}, Message: "e"})

	bag.Dedup()
	if bag.Len() != 4 {
		t.Fatalf("Dedup left %d items", bag.Len())
	}
	bag.Sort()

	want := []string{"e", "w", "late", "w"}
	for i, d := range bag.Items() {
		if d.Message != want[i] {
			t.Errorf("item %d = %q, want %q", i, d.Message, want[i])
		}
	}
	if bag.Items()[3].Source != 2 {
		t.Error("source 2 should sort last")
	}
}

func TestBagReuseAcrossRuns(t *testing.T) {
	bag := NewBag(0)
	for range 3 {
		e := NewEmitter(bag)
		e.EmitWarning(simple("w"))
		e.Close()
	}
	if bag.Finalized() != 3 {
		t.Errorf("expected one finalization per emitter, got %d", bag.Finalized())
	}
	bag.Reset()
	if bag.Len() != 0 || bag.Finalized() != 3 {
		t.Errorf("Reset: Len() = %d, Finalized() = %d", bag.Len(), bag.Finalized())
	}
}

func TestBagMerge(t *testing.T) {
	a, b := NewBag(1), NewBag(0)
	a.Add(Diagnostic{Message: "a"})
	b.Add(Diagnostic{Message: "b"})
	b.Add(Diagnostic{Message: "c"})
	a.Merge(b)
	if a.Len() != 3 || a.Cap() != 3 {
		t.Errorf("Merge: Len() = %d, Cap() = %d", a.Len(), a.Cap())
	}
}
