// Package token defines the tokens produced by internal/lexer.
//
// The token set is deliberately small so one lexer serves both reference
// tools: identifiers, keywords (a per-run set, see Keywords), numbers,
// double-quoted strings, single-quoted literals, %directives and
// punctuation. Whitespace and comments are attached to the following token
// as leading Trivia.
package token
