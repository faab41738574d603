package tool

import (
	"errors"
	"testing"

	"frontkit/internal/diag"
	"frontkit/internal/source"
)

type kind struct{ name string }

type opts struct{ verbose bool }

func TestRequiredAs(t *testing.T) {
	got, err := RequiredAs[kind](Params{Required: kind{"eco"}})
	if err != nil || got.name != "eco" {
		t.Fatalf("RequiredAs = %+v, %v", got, err)
	}

	if _, err := RequiredAs[kind](Params{Required: "eco"}); !errors.Is(err, ErrParams) {
		t.Errorf("expected ErrParams, got %v", err)
	}

	zero, err := RequiredAs[kind](Params{})
	if err != nil || zero != (kind{}) {
		t.Errorf("missing required = %+v, %v", zero, err)
	}
}

func TestOptionalAs(t *testing.T) {
	if o := OptionalAs[opts](Params{Optional: opts{verbose: true}}); !o.verbose {
		t.Error("OptionalAs lost the value")
	}
	if o := OptionalAs[opts](Params{}); o.verbose {
		t.Error("absent optional should be zero")
	}
	if o := OptionalAs[*opts](Params{Optional: 42}); o != nil {
		t.Error("mismatched optional should be zero")
	}
}

func TestFunc(t *testing.T) {
	var tl Tool[int] = Func[int]{
		ToolName: "count",
		Fn: func(_ Params, c *source.Cache, _ *diag.Emitter, s *source.Session) int {
			return len(s.LoadedSourceIDs())
		},
	}
	cache := source.NewCacheWithAllocator(source.NewAllocator())
	s := cache.Begin(source.Input{Path: "a"}, source.Input{Path: "b"})
	if tl.Name() != "count" {
		t.Errorf("Name() = %q", tl.Name())
	}
	if n := tl.Init(Params{}, cache, diag.NewEmitter(nil), s); n != 2 {
		t.Errorf("Init() = %d", n)
	}
}
