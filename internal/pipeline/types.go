package pipeline

import (
	"time"

	"frontkit/internal/driver"
)

// Stage describes a phase of one job.
type Stage string

const (
	// StageResolve covers reading the job's sources.
	StageResolve Stage = "resolve"
	// StageTool covers running the tool.
	StageTool Stage = "tool"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	// StatusError means the job failed to load or reported errors.
	StatusError Status = "error"
)

// Event reports progress for a job, or for the whole run when Job is empty.
type Event struct {
	Job     string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. It may be called from several
// goroutines at once.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// Job is the source configuration of one driver run.
type Job struct {
	// Name identifies the job in progress events, usually a source path.
	Name string
	Args driver.OptionalArgs
}
