package lexer_test

import (
	"context"
	"strings"
	"testing"

	"frontkit/internal/diag"
	"frontkit/internal/driver"
	"frontkit/internal/lexer"
	"frontkit/internal/source"
	"frontkit/internal/tool"
)

func runLex(t *testing.T, text string, opts lexer.Options) (*driver.Output[*lexer.Output], *diag.Bag, *source.Cache) {
	t.Helper()
	cache := source.NewCacheWithAllocator(source.NewAllocator())
	bag := diag.NewBag(0)
	d := driver.New[*lexer.Output](lexer.Tool{}, driver.Args{
		Optional: driver.OptionalArgs{NamedString: &driver.NamedString{Path: "in.l", Text: text}},
	}, tool.Params{Optional: opts})
	out, err := d.Run(context.Background(), bag, cache)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out, bag, cache
}

func TestLexToolValid(t *testing.T) {
	out, bag, _ := runLex(t, "if x then 1 # trailing", lexer.Options{Keywords: []string{"if", "then"}})
	if !out.Output.Valid() {
		t.Errorf("expected valid output, diagnostics: %v", bag.Items())
	}
	if out.Output.Count() != 4 {
		t.Errorf("Count() = %d, want 4", out.Output.Count())
	}
	if got := out.Output.Files[0].Path; got != "in.l" {
		t.Errorf("path = %q", got)
	}
	if len(out.Session.AddedSourceIDs()) != 0 {
		t.Error("no dump was requested")
	}
	if bag.Finalized() != 1 {
		t.Errorf("Finalized() = %d", bag.Finalized())
	}
}

func TestLexToolErrorsAreNonFatal(t *testing.T) {
	out, bag, _ := runLex(t, "a ` b \"open", lexer.Options{})
	if out.Output.Valid() {
		t.Error("expected invalid output")
	}
	if bag.Len() != 2 {
		t.Fatalf("diagnostics = %v", bag.Items())
	}
	items := bag.Items()
	if items[0].Code != lexer.CodeUnknownChar || items[1].Code != lexer.CodeUnterminatedString {
		t.Errorf("codes = %q, %q", items[0].Code, items[1].Code)
	}
	for _, d := range items {
		if d.SpansKind != diag.SpansError || d.Severity != diag.SevError {
			t.Errorf("unexpected diagnostic shape %+v", d)
		}
	}
	// lexing continued past both errors
	if out.Output.Count() != 4 {
		t.Errorf("Count() = %d", out.Output.Count())
	}
}

func TestLexToolEmptySourceWarns(t *testing.T) {
	out, bag, _ := runLex(t, "  // nothing here\n", lexer.Options{})
	if !out.Output.Valid() {
		t.Error("a warning must not invalidate the output")
	}
	if bag.Len() != 1 || bag.Items()[0].Severity != diag.SevWarning || bag.Items()[0].Code != lexer.CodeEmptySource {
		t.Errorf("diagnostics = %v", bag.Items())
	}
}

func TestLexToolTokenDump(t *testing.T) {
	out, _, cache := runLex(t, "x = 1\ny", lexer.Options{EmitTokenDump: true})

	added := out.Session.AddedSourceIDs()
	if len(added) != 1 {
		t.Fatalf("AddedSourceIDs() = %v", added)
	}
	if out.Output.Files[0].Dump != added[0] {
		t.Errorf("Dump = %v, want %v", out.Output.Files[0].Dump, added[0])
	}
	if k, _ := out.Session.Kind(added[0]); k != lexer.KindTokens {
		t.Errorf("Kind = %q", k)
	}
	path, _ := cache.PathForID(added[0])
	if path != "in.l.tokens" {
		t.Errorf("dump path = %q", path)
	}
	text, _ := cache.SourceForID(added[0])
	want := strings.Join([]string{
		"1:1\tIdent\t\"x\"",
		"1:3\tPunct\t\"=\"",
		"1:5\tNumber\t\"1\"",
		"2:1\tIdent\t\"y\"",
	}, "\n") + "\n"
	if text != want {
		t.Errorf("dump =\n%s\nwant\n%s", text, want)
	}
}

func TestLexToolRejectsRequiredParams(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unexpected required params")
		}
	}()
	cache := source.NewCacheWithAllocator(source.NewAllocator())
	s := cache.Begin()
	lexer.Tool{}.Init(tool.Params{Required: 42}, cache, diag.NewEmitter(diag.NopSink{}), s)
}
