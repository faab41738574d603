package grammar

import (
	"fmt"

	"frontkit/internal/lexer"
	"frontkit/internal/source"
	"frontkit/internal/token"
)

// syntaxError is the first problem that stopped the parser.
type syntaxError struct {
	code string
	span source.Span
	msg  string
}

type parser struct {
	lx  *lexer.Lexer
	tok token.Token
	ast *AST
	err *syntaxError
}

// Parse parses f. On a syntax error the returned AST holds what was parsed
// before the error.
func parse(f *source.File) (*AST, *syntaxError) {
	p := &parser{ast: &AST{Source: f.ID}}
	p.lx = lexer.New(f, lexer.Config{Reporter: p})
	p.advance()

	p.parseDecls()
	if p.err == nil {
		p.parseRules()
	}
	return p.ast, p.err
}

// Report records lexical errors; the first one ends parsing.
func (p *parser) Report(code string, sp source.Span, msg string) {
	if p.err == nil {
		p.err = &syntaxError{code: code, span: sp, msg: msg}
	}
}

func (p *parser) fail(sp source.Span, format string, args ...any) {
	if p.err == nil {
		p.err = &syntaxError{code: CodeSyntax, span: sp, msg: fmt.Sprintf(format, args...)}
	}
}

func (p *parser) advance() {
	p.tok = p.lx.Next()
}

func (p *parser) failed() bool {
	return p.err != nil
}

func (p *parser) expect(s string) bool {
	if p.tok.Is(s) {
		p.advance()
		return true
	}
	p.fail(p.tok.Span, "expected '%s', found %s", s, describe(p.tok))
	return false
}

func describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", tok.Kind, tok.Text)
}

func (p *parser) parseDecls() {
	for !p.failed() {
		switch {
		case p.tok.Is("%%"):
			p.advance()
			return
		case p.tok.Is("%{"):
			p.skipCodeBlock()
		case p.tok.Kind == token.Directive:
			p.parseDirective()
		case p.tok.Kind == token.EOF:
			p.fail(p.tok.Span, "expected '%%%%' before end of input")
		default:
			p.fail(p.tok.Span, "unexpected %s in declarations", describe(p.tok))
		}
	}
}

func (p *parser) parseDirective() {
	dir := p.tok
	p.advance()
	switch dir.Text {
	case "%start":
		if p.tok.Kind != token.Ident {
			p.fail(p.tok.Span, "expected rule name after %%start, found %s", describe(p.tok))
			return
		}
		p.ast.Starts = append(p.ast.Starts, Name{Text: p.tok.Text, Span: p.tok.Span})
		p.advance()
	case "%token", "%left", "%right", "%nonassoc":
		n := 0
		for p.tok.Kind == token.Ident || p.tok.Kind == token.Literal {
			p.ast.Tokens = append(p.ast.Tokens, Name{Text: p.tok.Unquote(), Span: p.tok.Span})
			p.advance()
			n++
		}
		if n == 0 {
			p.fail(p.tok.Span, "expected token names after %s", dir.Text)
		}
	case "%expect", "%expect-rr":
		if p.tok.Kind != token.Number {
			p.fail(p.tok.Span, "expected a number after %s", dir.Text)
			return
		}
		p.advance()
	default:
		p.fail(dir.Span, "unknown directive %s", dir.Text)
	}
}

// skipCodeBlock skips a %{ ... %} block.
func (p *parser) skipCodeBlock() {
	open := p.tok
	p.advance()
	for !p.failed() && !p.tok.Is("%}") {
		if p.tok.Kind == token.EOF {
			p.fail(open.Span, "unterminated %%{ block")
			return
		}
		p.advance()
	}
	if !p.failed() {
		p.advance()
	}
}

func (p *parser) parseRules() {
	for !p.failed() && p.tok.Kind != token.EOF && !p.tok.Is("%%") {
		if p.tok.Kind != token.Ident {
			p.fail(p.tok.Span, "expected rule name, found %s", describe(p.tok))
			return
		}
		rule := &Rule{Name: Name{Text: p.tok.Text, Span: p.tok.Span}}
		p.advance()
		if !p.expect(":") {
			return
		}
		for {
			alt, ok := p.parseAlt()
			if !ok {
				return
			}
			rule.Alts = append(rule.Alts, alt)
			if p.tok.Is("|") {
				p.advance()
				continue
			}
			break
		}
		if !p.expect(";") {
			return
		}
		p.ast.Rules = append(p.ast.Rules, rule)
	}
}

func (p *parser) parseAlt() (Alt, bool) {
	var alt Alt
	for {
		switch {
		case p.tok.Kind == token.Ident:
			alt.Symbols = append(alt.Symbols, Symbol{Kind: SymRef, Name: p.tok.Text, Span: p.tok.Span})
			p.advance()
		case p.tok.Kind == token.Literal || p.tok.Kind == token.String:
			alt.Symbols = append(alt.Symbols, Symbol{Kind: SymLiteral, Name: p.tok.Unquote(), Span: p.tok.Span})
			p.advance()
		case p.tok.Is("%empty"):
			alt.Empty = true
			p.advance()
		case p.tok.Is("%prec"):
			p.advance()
			sym, ok := p.precSymbol()
			if !ok {
				return alt, false
			}
			alt.Prec = &sym
		case p.tok.Is("{"):
			sp, ok := p.skipAction()
			if !ok {
				return alt, false
			}
			alt.Action = &sp
			return alt, true
		default:
			// the caller expects '|' or ';'
			return alt, true
		}
		if p.failed() {
			return alt, false
		}
	}
}

func (p *parser) precSymbol() (Symbol, bool) {
	switch p.tok.Kind {
	case token.Ident:
		sym := Symbol{Kind: SymRef, Name: p.tok.Text, Span: p.tok.Span}
		p.advance()
		return sym, true
	case token.Literal, token.String:
		sym := Symbol{Kind: SymLiteral, Name: p.tok.Unquote(), Span: p.tok.Span}
		p.advance()
		return sym, true
	}
	p.fail(p.tok.Span, "expected symbol after %%prec, found %s", describe(p.tok))
	return Symbol{}, false
}

// skipAction consumes a brace-balanced action and returns its span.
func (p *parser) skipAction() (source.Span, bool) {
	open := p.tok.Span
	depth := 0
	for {
		switch {
		case p.failed():
			return source.Span{}, false
		case p.tok.Kind == token.EOF:
			p.fail(open, "unterminated action")
			return source.Span{}, false
		case p.tok.Is("{"):
			depth++
		case p.tok.Is("}"):
			depth--
			if depth == 0 {
				sp := open.Cover(p.tok.Span)
				p.advance()
				return sp, true
			}
		}
		p.advance()
	}
}
