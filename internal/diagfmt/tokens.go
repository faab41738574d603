package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"frontkit/internal/source"
	"frontkit/internal/token"
)

type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Line    uint32      `json:"line"`
	Col     uint32      `json:"col"`
	Leading []string    `json:"leading,omitempty"`
}

type FileTokensOutput struct {
	Path   string        `json:"path"`
	Tokens []TokenOutput `json:"tokens"`
}

// FormatTokensPretty prints one token per line in a human-readable form.
func FormatTokensPretty(w io.Writer, tokens []token.Token, cache *source.Cache, id source.ID) error {
	for i, tok := range tokens {
		start, end, _ := cache.Resolve(id, tok.Span)

		var b strings.Builder
		fmt.Fprintf(&b, "%3d: %-10s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(&b, " %q", tok.Text)
		}
		fmt.Fprintf(&b, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		if leading := triviaKinds(tok.Leading); len(leading) > 0 {
			fmt.Fprintf(&b, " (leading: %s)", strings.Join(leading, ", "))
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// BuildTokensOutput converts the tokens of one source for FormatTokensJSON.
func BuildTokensOutput(tokens []token.Token, cache *source.Cache, id source.ID) FileTokensOutput {
	path, _ := cache.PathForID(id)
	out := FileTokensOutput{Path: path, Tokens: make([]TokenOutput, 0, len(tokens))}
	for _, tok := range tokens {
		start, _, _ := cache.Resolve(id, tok.Span)
		out.Tokens = append(out.Tokens, TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Span:    tok.Span,
			Line:    start.Line,
			Col:     start.Col,
			Leading: triviaKinds(tok.Leading),
		})
	}
	return out
}

// FormatTokensJSON writes files as an indented JSON array.
func FormatTokensJSON(w io.Writer, files []FileTokensOutput) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(files)
}

func triviaKinds(trivia []token.Trivia) []string {
	if len(trivia) == 0 {
		return nil
	}
	out := make([]string, 0, len(trivia))
	for _, tr := range trivia {
		out = append(out, tr.Kind.String())
	}
	return out
}
