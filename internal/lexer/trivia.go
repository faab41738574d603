package lexer

import (
	"frontkit/internal/token"
)

// collectLeadingTrivia gathers the trivia in front of the next significant token.
//   - runs of ' ', '\t', '\r' become one TriviaSpace
//   - runs of '\n' become one TriviaNewline
//   - //... and, with HashComments, #... up to '\n' are TriviaLineComment
//   - /* ... */ nests; an unclosed one is reported and runs to EOF
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case b == ' ' || b == '\t' || b == '\r':
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\r' {
					break
				}
				lx.cursor.Bump()
			}
			lx.holdTrivia(token.TriviaSpace, start)
			continue

		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.holdTrivia(token.TriviaNewline, start)
			continue

		case b == '#' && lx.cfg.HashComments:
			lx.skipLine()
			lx.holdTrivia(token.TriviaLineComment, start)
			continue

		case b == '/':
			if lx.scanCommentIntoHold() {
				continue
			}
		}
		break
	}
}

func (lx *Lexer) holdTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: lx.text(sp),
	})
}

func (lx *Lexer) skipLine() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

// scanCommentIntoHold handles // and /* */; a lone '/' is left for the
// operator scanner.
func (lx *Lexer) scanCommentIntoHold() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return false
	}
	switch lx.cursor.Peek() {
	case '/':
		lx.skipLine()
		lx.holdTrivia(token.TriviaLineComment, start)
		return true

	case '*':
		lx.cursor.Bump()
		depth := 1
		for !lx.cursor.EOF() && depth > 0 {
			switch {
			case lx.try2('/', '*'):
				depth++
			case lx.try2('*', '/'):
				depth--
			default:
				lx.cursor.Bump()
			}
		}
		if depth > 0 {
			lx.report(CodeUnterminatedComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		}
		lx.holdTrivia(token.TriviaBlockComment, start)
		return true

	default:
		lx.cursor.Reset(start)
		return false
	}
}
