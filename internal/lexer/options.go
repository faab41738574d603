package lexer

import (
	"frontkit/internal/source"
	"frontkit/internal/token"
)

// Reporter receives lexical errors. The lexer only calls it; turning a
// report into a diagnostic is the caller's business.
type Reporter interface {
	Report(code string, span source.Span, msg string)
}

// Config controls a single Lexer.
type Config struct {
	Reporter Reporter // may be nil: errors are dropped, lexing continues
	Keywords token.Keywords
	// HashComments treats '#' up to end of line as a comment.
	HashComments bool
}

func (lx *Lexer) report(code string, sp source.Span, msg string) {
	if lx.cfg.Reporter != nil {
		lx.cfg.Reporter.Report(code, sp, msg)
	}
}
