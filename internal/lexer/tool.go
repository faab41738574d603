package lexer

import (
	"fmt"
	"strings"

	"frontkit/internal/diag"
	"frontkit/internal/source"
	"frontkit/internal/token"
	"frontkit/internal/tool"
)

// KindTokens tags token dumps added to the cache.
const KindTokens source.Kind = "tokens"

// Options are the optional parameters of the lex tool. It takes no
// required parameters.
type Options struct {
	Keywords      []string
	EmitTokenDump bool
}

// FileTokens holds the tokens of one loaded source.
type FileTokens struct {
	Source source.ID
	Path   string
	Tokens []token.Token
	// Dump is the ID of the token dump, or source.NoID.
	Dump source.ID
}

// Output is the result of the lex tool.
type Output struct {
	Files []FileTokens
	valid bool
}

// Valid reports whether no error was emitted while lexing.
func (o *Output) Valid() bool { return o.valid }

// Count returns the number of tokens over all files.
func (o *Output) Count() int {
	n := 0
	for _, f := range o.Files {
		n += len(f.Tokens)
	}
	return n
}

// Tool tokenizes every loaded source. '#' and '//' comments are skipped.
type Tool struct{}

var _ tool.Tool[*Output] = Tool{}

func (Tool) Name() string { return "lex" }

func (Tool) Init(params tool.Params, cache *source.Cache, emitter *diag.Emitter, session *source.Session) *Output {
	if _, err := tool.RequiredAs[struct{}](params); err != nil {
		panic(err)
	}
	opts := tool.OptionalAs[Options](params)
	kw := token.NewKeywords(opts.Keywords...)

	out := &Output{}
	for _, id := range session.LoadedSourceIDs() {
		f, ok := cache.File(id)
		if !ok {
			continue
		}
		lx := New(f, Config{
			Reporter:     emitterReporter{emitter: emitter, id: id},
			Keywords:     kw,
			HashComments: true,
		})
		ft := FileTokens{Source: id, Path: f.Path, Tokens: lx.All()}
		if len(ft.Tokens) == 0 {
			emitter.EmitWarning(diag.Simple{
				ID:      id,
				Kind:    diag.SpansError,
				At:      []source.Span{source.SpanOf(0, len(f.Text))},
				Msg:     "empty source",
				CodeStr: CodeEmptySource,
			})
		}
		if opts.EmitTokenDump {
			ft.Dump = cache.AddSource(session, f.Path+".tokens", Dump(cache, id, ft.Tokens), KindTokens)
		}
		out.Files = append(out.Files, ft)
	}
	out.valid = !emitter.ObservedError()
	return out
}

// Dump renders one token per line as "line:col<TAB>Kind<TAB>quoted text".
func Dump(cache *source.Cache, id source.ID, toks []token.Token) string {
	var sb strings.Builder
	for _, tok := range toks {
		start, _, _ := cache.Resolve(id, tok.Span)
		fmt.Fprintf(&sb, "%d:%d\t%s\t%q\n", start.Line, start.Col, tok.Kind, tok.Text)
	}
	return sb.String()
}

type emitterReporter struct {
	emitter *diag.Emitter
	id      source.ID
}

func (r emitterReporter) Report(code string, sp source.Span, msg string) {
	r.emitter.EmitNonFatalError(diag.Simple{
		ID:      r.id,
		Kind:    diag.SpansError,
		At:      []source.Span{sp},
		Msg:     msg,
		CodeStr: code,
	})
}
