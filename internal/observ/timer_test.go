package observ

import (
	"strings"
	"sync"
	"testing"
)

func TestTrack(t *testing.T) {
	timer := NewTimer()
	end := timer.Track("resolve_sources")
	end("2 sources")
	timer.Track("tool:lex")("")

	phases := timer.Phases()
	if len(phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(phases))
	}
	if phases[0].Name != "resolve_sources" || phases[0].Note != "2 sources" {
		t.Errorf("unexpected phase %+v", phases[0])
	}

	summary := timer.Summary()
	for _, want := range []string{"timings:", "resolve_sources", "// 2 sources", "total"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestNilTimerTrack(t *testing.T) {
	var timer *Timer
	timer.Track("x")("ignored")
}

func TestEndOutOfRange(t *testing.T) {
	timer := NewTimer()
	timer.End(3, "nothing")
	if r := timer.Report(); len(r.Phases) != 0 || r.TotalMS != 0 {
		t.Errorf("empty timer reported %+v", r)
	}
}

func TestConcurrentPhases(t *testing.T) {
	timer := NewTimer()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			timer.Track("job")("")
		}()
	}
	wg.Wait()
	if n := len(timer.Report().Phases); n != 16 {
		t.Errorf("expected 16 phases, got %d", n)
	}
}
