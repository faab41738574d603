package lexer

import (
	"fmt"

	"frontkit/internal/token"
)

// scanPercent handles the yacc section markers: "%%", "%{", "%}" and
// %directives. A lone '%' is ordinary punctuation.
func (lx *Lexer) scanPercent() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}
	switch {
	case lx.try2('%', '%'), lx.try2('%', '{'), lx.try2('%', '}'):
		return emit(token.Punct)
	}
	lx.cursor.Bump()
	if !isIdentStartByte(lx.cursor.Peek()) {
		return emit(token.Punct)
	}
	for isIdentContinueByte(lx.cursor.Peek()) || lx.cursor.Peek() == '-' {
		lx.cursor.Bump()
	}
	return emit(token.Directive)
}

// scanOperatorOrPunct is greedy: three-byte operators first, then two,
// then one.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func() token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Punct, Span: sp, Text: lx.text(sp)}
	}

	switch {
	case lx.try3('.', '.', '.'), lx.try3('.', '.', '='):
		return emit()
	case lx.try2('.', '.'),
		lx.try2(':', ':'),
		lx.try2(':', '='),
		lx.try2('-', '>'),
		lx.try2('=', '>'),
		lx.try2('&', '&'),
		lx.try2('|', '|'),
		lx.try2('=', '='),
		lx.try2('!', '='),
		lx.try2('<', '='),
		lx.try2('>', '='),
		lx.try2('<', '<'),
		lx.try2('>', '>'):
		return emit()
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '+', '-', '*', '/', '%', '=', '!', '<', '>', '&', '|', '^', '~', '?',
		':', ';', ',', '.', '(', ')', '{', '}', '[', ']', '@', '$':
		return emit()
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.report(CodeUnknownChar, sp, fmt.Sprintf("unknown character %q", ch))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
}
