package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"frontkit/internal/pipeline"
)

func TestProgressModelTracksJobs(t *testing.T) {
	events := make(chan pipeline.Event)
	m := NewProgressModel("check calc", []string{"calc.y", "lex.l"}, events).(*progressModel)

	m.Update(eventMsg{Job: "calc.y", Stage: pipeline.StageTool, Status: pipeline.StatusWorking})
	if got := m.items[0].status; got != "checking" {
		t.Fatalf("status after working event = %q, want checking", got)
	}
	if got := m.percent(); got != 0.25 {
		t.Errorf("percent = %v, want 0.25", got)
	}

	m.Update(eventMsg{Job: "calc.y", Stage: pipeline.StageTool, Status: pipeline.StatusDone, Elapsed: 3 * time.Millisecond})
	m.Update(eventMsg{Job: "lex.l", Stage: pipeline.StageResolve, Status: pipeline.StatusError})
	if m.items[0].status != "done" || m.items[1].status != "error" {
		t.Fatalf("unexpected statuses %q, %q", m.items[0].status, m.items[1].status)
	}
	if m.items[0].note != "3ms" {
		t.Errorf("note = %q, want 3ms", m.items[0].note)
	}
	if got := m.percent(); got != 1.0 {
		t.Errorf("percent = %v, want 1", got)
	}

	// unknown jobs are ignored
	m.Update(eventMsg{Job: "other", Status: pipeline.StatusDone})

	_, cmd := m.Update(doneMsg{})
	if cmd == nil {
		t.Fatal("expected quit command on done")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("done did not quit the program")
	}
	view := m.View()
	for _, want := range []string{"done: check calc", "calc.y", "lex.l", "error"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestProgressModelEmpty(t *testing.T) {
	m := NewProgressModel("nothing", nil, nil)
	if v := m.View(); v != "" {
		t.Errorf("expected empty view, got %q", v)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("a/very/long/path.y", 10); got != "a/very/..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Errorf("truncate = %q", got)
	}
}
