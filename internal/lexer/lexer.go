package lexer

import (
	"frontkit/internal/source"
	"frontkit/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	cfg    Config
	look   *token.Token   // one-token lookahead
	hold   []token.Trivia // leading trivia collected so far
}

func New(file *source.File, cfg Config) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		cfg:    cfg,
	}
}

// Next returns the next significant token with its Leading trivia.
// After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	// trivia before EOF is dropped
	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch), ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanQuoted('"', token.String)
	case ch == '\'':
		tok = lx.scanQuoted('\'', token.Literal)
	case ch == '%':
		tok = lx.scanPercent()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// All lexes the remaining input. The trailing EOF token is not included.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tok)
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return lx.file.Text[sp.Start:sp.End]
}
