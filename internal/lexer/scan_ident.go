package lexer

import (
	"fmt"

	"frontkit/internal/token"
)

// scanIdentOrKeyword scans an identifier and checks it against the
// configured keyword set. Token.Text is the exact source slice.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	if r, _ := lx.peekRune(); r >= utf8RuneSelf && !isIdentStartRune(r) {
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.report(CodeUnknownChar, sp, fmt.Sprintf("unknown character %q", r))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	lx.bumpRune()

	for !lx.cursor.EOF() {
		// ASCII fast-path
		if b := lx.cursor.Peek(); b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if lx.cfg.Keywords.Lookup(text) {
		return token.Token{Kind: token.Keyword, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
