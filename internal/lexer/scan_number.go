package lexer

import (
	"frontkit/internal/token"
)

// scanNumber accepts 123, 1_000, 0x1F, 1.5, 1e-3 and 1.5E+10. A malformed
// exponent or an empty hex literal is reported; the token still ends where
// scanning stopped so the lexer can resume.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	emit := func(kind token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
	}
	bad := func(msg string) token.Token {
		tok := emit(token.Invalid)
		lx.report(CodeBadNumber, tok.Span, msg)
		return tok
	}

	if lx.try2('0', 'x') || lx.try2('0', 'X') {
		digits := 0
		for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			if lx.cursor.Bump() != '_' {
				digits++
			}
		}
		if digits == 0 {
			return bad("expected hex digit after 0x")
		}
		return emit(token.Number)
	}

	lx.eatDigits()

	// fraction: "1." followed by a non-digit stays an integer and a '.'
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump()
		lx.eatDigits()
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			return bad("expected digit after exponent")
		}
		lx.eatDigits()
	}
	return emit(token.Number)
}

func (lx *Lexer) eatDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}
