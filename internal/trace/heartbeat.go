package trace

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// runs holds the driver and job spans that have begun but not ended. A
// heartbeat reports them so a hung watch loop or batch job can be named.
var runs = &openRuns{spans: make(map[uint64]openRun)}

type openRun struct {
	name    string
	started time.Time
}

type openRuns struct {
	mu    sync.Mutex
	spans map[uint64]openRun
}

func (r *openRuns) begin(id uint64, name string, at time.Time) {
	r.mu.Lock()
	r.spans[id] = openRun{name: name, started: at}
	r.mu.Unlock()
}

func (r *openRuns) end(id uint64) {
	r.mu.Lock()
	delete(r.spans, id)
	r.mu.Unlock()
}

// oldest returns how many runs are open and the one running longest.
func (r *openRuns) oldest() (n int, run openRun) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.spans {
		if n == 0 || s.started.Before(run.started) {
			run = s
		}
		n++
	}
	return n, run
}

// tracksRun reports whether spans of scope count as runs for heartbeats.
func tracksRun(scope Scope) bool {
	return scope == ScopeDriver || scope == ScopeModule
}

// Heartbeat emits a liveness event every interval, naming the oldest
// driver run or job still in flight.
type Heartbeat struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StartHeartbeat starts emitting heartbeats to tracer. It returns nil when
// tracing is off or interval is not positive; Stop accepts a nil Heartbeat.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	h := &Heartbeat{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for beat := uint64(1); ; beat++ {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				tracer.Emit(heartbeatEvent(beat, now))
			}
		}
	}()
	return h
}

func heartbeatEvent(beat uint64, now time.Time) *Event {
	n, run := runs.oldest()
	ev := &Event{
		Time:   now,
		Seq:    NextSeq(),
		Kind:   KindHeartbeat,
		Scope:  ScopeDriver,
		GID:    getGoroutineID(),
		Name:   "heartbeat",
		Detail: fmt.Sprintf("#%d open=%d", beat, n),
	}
	if n > 0 {
		age := now.Sub(run.started)
		ev.Detail += fmt.Sprintf(" oldest=%s for %s", run.name, age.Round(time.Millisecond))
		ev.Extra = map[string]string{
			"open":      strconv.Itoa(n),
			"oldest":    run.name,
			"oldest_ms": strconv.FormatInt(age.Milliseconds(), 10),
		}
	}
	return ev
}

// Stop ends the heartbeat and waits for its goroutine. It is safe to call
// more than once.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.cancel()
	<-h.done
}
