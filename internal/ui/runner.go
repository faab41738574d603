package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"frontkit/internal/pipeline"
)

// RunWithProgress runs work while rendering its progress events to out.
// work must send its events to the given sink and return when done; the
// channel is closed afterwards. If the UI stops early the remaining events
// are drained so work never blocks.
func RunWithProgress[T any](out io.Writer, title string, jobs []string, work func(pipeline.ProgressSink) T) (T, error) {
	events := make(chan pipeline.Event, 256)
	result := make(chan T, 1)
	go func() {
		result <- work(pipeline.ChannelSink{Ch: events})
		close(events)
	}()

	program := tea.NewProgram(NewProgressModel(title, jobs, events), tea.WithOutput(out))
	_, uiErr := program.Run()
	for range events {
	}
	return <-result, uiErr
}
