package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"testing"
	"testing/fstest"

	"frontkit/internal/diag"
	"frontkit/internal/driver"
	"frontkit/internal/lexer"
	"frontkit/internal/pipeline"
	"frontkit/internal/source"
	"frontkit/internal/tool"
)

type recorder struct {
	mu     sync.Mutex
	events []pipeline.Event
}

func (r *recorder) OnEvent(ev pipeline.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) count(status pipeline.Status) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Status == status {
			n++
		}
	}
	return n
}

func inlineJob(name, text string) pipeline.Job {
	return pipeline.Job{
		Name: name,
		Args: driver.OptionalArgs{NamedString: &driver.NamedString{Path: name, Text: text}},
	}
}

func TestRunKeepsJobOrderAndIDsUnique(t *testing.T) {
	var jobs []pipeline.Job
	for i := range 20 {
		jobs = append(jobs, inlineJob(fmt.Sprintf("f%02d.l", i), "a b c"))
	}
	rec := &recorder{}
	alloc := source.NewAllocator()
	results, err := pipeline.Run(context.Background(), lexer.Tool{}, tool.Params{}, jobs, pipeline.Options{
		Jobs:      4,
		Progress:  rec,
		Allocator: alloc,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	seen := make(map[source.ID]bool)
	for i, r := range results {
		if r.Job.Name != jobs[i].Name {
			t.Errorf("result %d is %q, want %q", i, r.Job.Name, jobs[i].Name)
		}
		if r.Failed() {
			t.Errorf("%s failed: %v %v", r.Job.Name, r.Err, r.Diags.Items())
		}
		id := r.Output.Session.LoadedSourceIDs()[0]
		if seen[id] {
			t.Errorf("ID %v reused across jobs", id)
		}
		seen[id] = true
		if r.Output.Output.Count() != 3 {
			t.Errorf("%s: Count() = %d", r.Job.Name, r.Output.Output.Count())
		}
	}
	if alloc.Last() != source.ID(len(jobs)) {
		t.Errorf("allocator issued %v IDs, want %d", alloc.Last(), len(jobs))
	}
	if q, d := rec.count(pipeline.StatusQueued), rec.count(pipeline.StatusDone); q != len(jobs) || d != len(jobs) {
		t.Errorf("queued=%d done=%d, want %d each", q, d, len(jobs))
	}
}

func TestRunRecordsFailures(t *testing.T) {
	jobs := []pipeline.Job{
		inlineJob("ok.l", "x"),
		inlineJob("bad.l", "x `"),
		{Name: "missing.l", Args: driver.OptionalArgs{ReadSource: &driver.ReadSource{View: fstest.MapFS{}, Path: "missing.l"}}},
	}
	rec := &recorder{}
	results, err := pipeline.Run(context.Background(), lexer.Tool{}, tool.Params{}, jobs, pipeline.Options{Progress: rec})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if results[0].Failed() {
		t.Error("ok.l should not fail")
	}
	if !results[1].Failed() || results[1].Err != nil {
		t.Errorf("bad.l: failed=%v err=%v", results[1].Failed(), results[1].Err)
	}
	if !errors.Is(results[2].Err, fs.ErrNotExist) || results[2].Output != nil {
		t.Errorf("missing.l: err=%v", results[2].Err)
	}
	if rec.count(pipeline.StatusError) != 2 {
		t.Errorf("error events = %d", rec.count(pipeline.StatusError))
	}

	failed, errs, warnings := pipeline.Summary(results)
	if failed != 2 || errs != 1 || warnings != 0 {
		t.Errorf("Summary() = %d, %d, %d", failed, errs, warnings)
	}
}

func TestRunCountsErrorsPastDiagnosticLimit(t *testing.T) {
	warnThenFail := tool.Func[bool]{
		ToolName: "warn-then-fail",
		Fn: func(_ tool.Params, _ *source.Cache, e *diag.Emitter, s *source.Session) bool {
			id := s.LoadedSourceIDs()[0]
			at := []source.Span{{Start: 0, End: 1}}
			e.EmitWarning(diag.Simple{ID: id, At: at, Msg: "first"})
			e.EmitNonFatalError(diag.Simple{ID: id, At: at, Msg: "second"})
			return !e.ObservedError()
		},
	}
	results, err := pipeline.Run(context.Background(), warnThenFail, tool.Params{},
		[]pipeline.Job{inlineJob("a.l", "a")}, pipeline.Options{MaxDiagnostics: 1})
	if err != nil {
		t.Fatal(err)
	}
	r := results[0]
	if r.Diags.Len() != 1 || r.Diags.Dropped() != 1 {
		t.Fatalf("Len() = %d, Dropped() = %d", r.Diags.Len(), r.Diags.Dropped())
	}
	if !r.Failed() {
		t.Error("job whose error was cut by the limit must still fail")
	}
	failed, errs, warnings := pipeline.Summary(results)
	if failed != 1 || errs != 1 || warnings != 1 {
		t.Errorf("Summary() = %d, %d, %d; want 1, 1, 1", failed, errs, warnings)
	}
}

func TestRunSharedCache(t *testing.T) {
	cache := source.NewCacheWithAllocator(source.NewAllocator())
	jobs := []pipeline.Job{inlineJob("a.l", "a"), inlineJob("b.l", "b")}
	results, err := pipeline.Run(context.Background(), lexer.Tool{}, tool.Params{}, jobs, pipeline.Options{Jobs: 8, Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if cache.Len() != 2 {
		t.Errorf("shared cache Len() = %d", cache.Len())
	}
	for _, r := range results {
		if r.Cache != cache {
			t.Errorf("%s used its own cache", r.Job.Name)
		}
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := pipeline.Run(ctx, lexer.Tool{}, tool.Params{}, []pipeline.Job{inlineJob("a.l", "a")}, pipeline.Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v", err)
	}
	if !results[0].Failed() || results[0].Output != nil {
		t.Errorf("canceled job = %+v", results[0])
	}
}

func TestChannelSink(t *testing.T) {
	ch := make(chan pipeline.Event, 1)
	pipeline.ChannelSink{Ch: ch}.OnEvent(pipeline.Event{Job: "x", Status: pipeline.StatusDone})
	if ev := <-ch; ev.Job != "x" {
		t.Errorf("event = %+v", ev)
	}
	pipeline.ChannelSink{}.OnEvent(pipeline.Event{}) // nil channel is a no-op
}
