package lexer

import (
	"frontkit/internal/token"
)

// scanQuoted scans a literal delimited by quote. Escapes are skipped, not
// validated. A newline or EOF before the closing quote is an unterminated
// literal; the token then covers what was read.
func (lx *Lexer) scanQuoted(quote byte, kind token.Kind) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case quote:
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.Peek() == '\n' {
				continue
			}
			lx.cursor.Bump()
			continue
		case '\n':
			return lx.unterminated(start, "newline in literal")
		}
		lx.cursor.Bump()
	}
	return lx.unterminated(start, "unterminated literal")
}

func (lx *Lexer) unterminated(start Mark, msg string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.report(CodeUnterminatedString, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
