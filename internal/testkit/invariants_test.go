package testkit

import (
	"strings"
	"testing"

	"frontkit/internal/diag"
	"frontkit/internal/source"
	"frontkit/internal/token"
)

func TestCheckRunInvariants(t *testing.T) {
	cache := source.NewCacheWithAllocator(source.NewAllocator())
	session := cache.Begin(source.Input{Path: "a", Text: "abc"})
	id := session.LoadedSourceIDs()[0]
	cache.AddSource(session, "a.out", "x", "generated")

	bag := diag.NewBag(0)
	bag.EmitError(diag.Simple{ID: id, At: []source.Span{{Start: 1, End: 3}}, Msg: "bad"})
	bag.NoMoreData()
	if err := CheckRunInvariants(cache, session, bag); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bag.EmitWarning(diag.Simple{ID: id, At: []source.Span{{Start: 2, End: 9}}, Msg: "long"})
	err := CheckRunInvariants(cache, session, bag)
	if err == nil || !strings.Contains(err.Error(), "beyond text length") {
		t.Errorf("expected out-of-bounds error, got %v", err)
	}
}

func TestCheckRunInvariantsFinalization(t *testing.T) {
	cache := source.NewCacheWithAllocator(source.NewAllocator())
	session := cache.Begin()
	bag := diag.NewBag(0)
	if err := CheckRunInvariants(cache, session, bag); err == nil {
		t.Error("expected error for unfinalized bag")
	}
}

func TestCheckTokenSpans(t *testing.T) {
	cache := source.NewCacheWithAllocator(source.NewAllocator())
	s := cache.Begin(source.Input{Path: "t", Text: "ab cd"})
	f, _ := cache.File(s.LoadedSourceIDs()[0])

	good := []token.Token{
		{Kind: token.Ident, Span: source.Span{Start: 0, End: 2}},
		{Kind: token.Ident, Span: source.Span{Start: 3, End: 5}},
		{Kind: token.EOF, Span: source.Span{Start: 5, End: 5}},
	}
	if err := CheckTokenSpans(f, good); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	overlapping := []token.Token{
		{Kind: token.Ident, Span: source.Span{Start: 0, End: 3}},
		{Kind: token.Ident, Span: source.Span{Start: 2, End: 5}},
	}
	if err := CheckTokenSpans(f, overlapping); err == nil {
		t.Error("expected overlap error")
	}
}
