package token

import (
	"frontkit/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// Is reports whether the token is punctuation or a directive spelled s.
func (t Token) Is(s string) bool {
	return (t.Kind == Punct || t.Kind == Directive) && t.Text == s
}

// IsLiteral reports whether the token is a number, string or quoted literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Number, String, Literal:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Unquote strips the surrounding quotes of a String or Literal token.
// Escapes are kept verbatim.
func (t Token) Unquote() string {
	if (t.Kind == String || t.Kind == Literal) && len(t.Text) >= 2 {
		return t.Text[1 : len(t.Text)-1]
	}
	return t.Text
}
