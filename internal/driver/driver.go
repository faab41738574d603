// Package driver runs a tool over a set of sources.
//
// A Driver resolves the sources named by its Args, inserts them into the
// caller's cache as the loaded sources of a new Session, wraps the caller's
// sink in a diag.Emitter and calls the tool. The emitter is finalized when
// the tool returns, including when it returns early or panics.
package driver

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"frontkit/internal/diag"
	"frontkit/internal/source"
	"frontkit/internal/tool"
	"frontkit/internal/trace"
)

// Driver couples a tool with its parameters and the driver's own options.
type Driver[Out any] struct {
	Tool       tool.Tool[Out]
	Args       Args
	ToolParams tool.Params
}

// Output is the result of a successful run.
type Output[Out any] struct {
	Output  Out
	Session *source.Session
}

// New builds a Driver.
func New[Out any](t tool.Tool[Out], args Args, params tool.Params) Driver[Out] {
	return Driver[Out]{Tool: t, Args: args, ToolParams: params}
}

// Run resolves the configured sources and runs the tool.
//
// If a source cannot be read, Run returns a *Error before cache or sink are
// touched. Otherwise it always returns the tool's output; whether that
// output is usable is for the tool to say. A panic in the tool propagates
// after the sink has been finalized.
//
// ctx only carries the tracer; Run does not observe cancellation.
func (d Driver[Out]) Run(ctx context.Context, sink diag.Sink, cache *source.Cache) (*Output[Out], error) {
	if d.Tool == nil {
		return nil, configError("run", "", errors.New("no tool configured"))
	}
	if cache == nil {
		return nil, configError("run", "", errors.New("no cache"))
	}
	name := d.Tool.Name()
	opts := d.Args.Optional

	span, ctx := trace.Start(ctx, trace.ScopeDriver, "driver:"+name)
	defer span.End("")

	endResolve := opts.Timer.Track("resolve_sources")
	rspan, _ := trace.Start(ctx, trace.ScopePass, "resolve_sources")
	inputs, err := opts.resolve()
	note := strconv.Itoa(len(inputs)) + " sources"
	if err != nil {
		note = err.Error()
	}
	rspan.End(note)
	endResolve(note)
	if err != nil {
		span.WithExtra("error", err.Error())
		return nil, err
	}

	session := cache.Begin(inputs...)
	span.WithExtra("run", session.RunID())
	ctx = trace.WithRun(ctx, session.RunID())

	emitter := diag.NewEmitter(sink,
		diag.WithTracer(trace.FromContext(ctx)),
		diag.WithToolName(name),
	)
	out := d.runTool(ctx, name, emitter, cache, session)
	return &Output[Out]{Output: out, Session: session}, nil
}

func (d Driver[Out]) runTool(ctx context.Context, name string, emitter *diag.Emitter, cache *source.Cache, session *source.Session) Out {
	defer emitter.Close()

	endTool := d.Args.Optional.Timer.Track("tool:" + name)
	span, _ := trace.Start(ctx, trace.ScopePass, "tool:"+name)
	defer func() {
		errs, warns := emitter.Counts()
		note := fmt.Sprintf("errors=%d warnings=%d added=%d", errs, warns, len(session.AddedSourceIDs()))
		span.End(note)
		endTool(note)
	}()

	return d.Tool.Init(d.ToolParams, cache, emitter, session)
}
