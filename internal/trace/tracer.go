package trace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Tracer receives trace events. Implementations must be safe for concurrent
// use; batch jobs trace from several goroutines.
type Tracer interface {
	// Emit records ev. The tracer may restamp ev.Seq.
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	// Enabled reports Level() > LevelOff.
	Enabled() bool
}

// StorageMode selects where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // write each event as it happens
	ModeRing                          // keep the last events, write them on Close
	ModeBoth                          // both of the above
)

func (m StorageMode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeRing:
		return "ring"
	case ModeBoth:
		return "both"
	}
	return "unknown"
}

// ParseMode converts a --trace-mode value.
func ParseMode(s string) (StorageMode, error) {
	switch strings.ToLower(s) {
	case "", "stream":
		return ModeStream, nil
	case "ring":
		return ModeRing, nil
	case "both":
		return ModeBoth, nil
	}
	return ModeStream, fmt.Errorf("invalid trace mode %q (expected stream|ring|both)", s)
}

// DefaultRingSize is the ring capacity when Config.RingSize is not set.
const DefaultRingSize = 4096

// Config describes the tracer built from the --trace flags.
type Config struct {
	Level  Level
	Mode   StorageMode
	Format Format // FormatAuto picks NDJSON for .ndjson, .jsonl and .json paths
	// Output overrides OutputPath. "-" or "" for OutputPath means stderr.
	Output     io.Writer
	OutputPath string
	RingSize   int
}

func (c Config) format() Format {
	if c.Format != FormatAuto {
		return c.Format
	}
	switch strings.ToLower(filepath.Ext(c.OutputPath)) {
	case ".ndjson", ".jsonl", ".json":
		return FormatNDJSON
	}
	return FormatText
}

// New builds the tracer cfg describes. LevelOff yields Nop.
//
// In ring mode the last RingSize events are written to the output when the
// tracer is closed, so a long watch session leaves a short trace behind.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.Mode != ModeStream && cfg.Mode != ModeRing && cfg.Mode != ModeBoth {
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = DefaultRingSize
	}
	w, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.Mode {
	case ModeStream:
		return NewStreamTracer(w, cfg.Level, cfg.format()), nil
	case ModeRing:
		return &ringDump{RingTracer: NewRingTracer(cfg.RingSize, cfg.Level), w: w, format: cfg.format()}, nil
	default:
		stream := NewStreamTracer(w, cfg.Level, cfg.format())
		return NewMultiTracer(cfg.Level, stream, NewRingTracer(cfg.RingSize, cfg.Level)), nil
	}
}

// ringDump writes the ring's contents to w on Close.
type ringDump struct {
	*RingTracer
	w      io.Writer
	format Format
}

func (t *ringDump) Close() error {
	err := t.Dump(t.w, t.format)
	if closer, ok := t.w.(io.Closer); ok {
		err = errors.Join(err, closer.Close())
	}
	return err
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		// hide Close so the tracer never closes stderr
		return struct{ io.Writer }{os.Stderr}, nil
	}
	if dir := filepath.Dir(cfg.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("open trace output: %w", err)
		}
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("open trace output: %w", err)
	}
	return f, nil
}
