// Package tool defines what the driver runs.
package tool

import (
	"errors"
	"fmt"

	"frontkit/internal/diag"
	"frontkit/internal/source"
)

// Tool is a front-end component (a lexer, a grammar checker, ...) that the
// driver hands loaded sources to.
//
// Init receives the parameters the driver was configured with, the cache
// holding every loaded source, an emitter for diagnostics and the session
// of the current run. The driver finalizes the emitter after Init returns,
// so a tool must not keep it. The returned Out is the tool's result; it may
// use emitter.ObservedError to certify itself.
type Tool[Out any] interface {
	Name() string
	Init(params Params, cache *source.Cache, emitter *diag.Emitter, session *source.Session) Out
}

// Func adapts a function to Tool.
type Func[Out any] struct {
	ToolName string
	Fn       func(Params, *source.Cache, *diag.Emitter, *source.Session) Out
}

func (f Func[Out]) Name() string { return f.ToolName }

func (f Func[Out]) Init(p Params, c *source.Cache, e *diag.Emitter, s *source.Session) Out {
	return f.Fn(p, c, e, s)
}

// Params carries tool-specific parameters. Each tool documents the concrete
// types it expects in Required and Optional.
type Params struct {
	Required any
	Optional any
}

// ErrParams reports a Required value of the wrong type.
var ErrParams = errors.New("tool: unexpected parameter type")

// RequiredAs returns p.Required as T. A nil Required yields the zero T;
// a value of any other type is ErrParams.
func RequiredAs[T any](p Params) (T, error) {
	var zero T
	if p.Required == nil {
		return zero, nil
	}
	v, ok := p.Required.(T)
	if !ok {
		return zero, fmt.Errorf("%w: required is %T, want %T", ErrParams, p.Required, zero)
	}
	return v, nil
}

// OptionalAs returns p.Optional as T, or the zero T when absent or of
// another type.
func OptionalAs[T any](p Params) T {
	v, _ := p.Optional.(T)
	return v
}
