package grammar

import (
	"frontkit/internal/diag"
	"frontkit/internal/source"
	"frontkit/internal/tool"
)

// KindSummary tags generated rule tables added to the cache.
const KindSummary source.Kind = "summary"

// Args are the required parameters of the grammar tool.
type Args struct {
	Kind YaccKind
}

// Options are the optional parameters of the grammar tool.
type Options struct {
	// Summary adds a rule table for the grammar to the cache.
	Summary bool
}

// Certified is the parsed grammar together with the outcome of validation.
type Certified struct {
	ast     *AST
	grammar *Grammar
	valid   bool
	// SummaryID is the generated summary, or source.NoID.
	SummaryID source.ID
}

// Grammar returns the lowered grammar, or diag.ErrToolFailure when any
// error was reported.
func (c *Certified) Grammar() (*Grammar, error) {
	if !c.valid {
		return nil, diag.ErrToolFailure
	}
	return c.grammar, nil
}

// AST returns the parsed grammar. It is available even after errors.
func (c *Certified) AST() *AST {
	return c.ast
}

func (c *Certified) Valid() bool {
	return c.valid
}

// Tool checks the first loaded source as a grammar. Further loaded sources
// are ignored with a warning. With no loaded source the result is an empty
// AST that is not valid.
type Tool struct{}

var _ tool.Tool[*Certified] = Tool{}

func (Tool) Name() string { return "grammar" }

func (Tool) Init(params tool.Params, cache *source.Cache, emitter *diag.Emitter, session *source.Session) *Certified {
	args, err := tool.RequiredAs[Args](params)
	if err != nil {
		panic(err)
	}
	opts := tool.OptionalAs[Options](params)

	ids := session.LoadedSourceIDs()
	if len(ids) == 0 {
		return &Certified{ast: &AST{}}
	}
	for _, extra := range ids[1:] {
		emitter.EmitWarning(diag.Simple{
			ID:      extra,
			Kind:    diag.SpansError,
			At:      []source.Span{{}},
			Msg:     "only one grammar is checked per run; source ignored",
			CodeStr: CodeExtraSource,
		})
	}

	f, _ := cache.File(ids[0])
	ast, serr := parse(f)
	if serr != nil {
		if err := emitter.EmitError(diag.Simple{
			ID:      f.ID,
			Kind:    diag.SpansError,
			At:      []source.Span{serr.span},
			Msg:     serr.msg,
			CodeStr: serr.code,
		}); err != nil {
			return &Certified{ast: ast}
		}
	}

	validate(ast, args.Kind, emitter)

	out := &Certified{ast: ast}
	if opts.Summary {
		out.SummaryID = cache.AddSource(session, f.Path+".summary", Summary(ast, args.Kind), KindSummary)
	}
	out.valid = !emitter.ObservedError()
	if out.valid {
		out.grammar = lower(ast, args.Kind)
	}
	return out
}
