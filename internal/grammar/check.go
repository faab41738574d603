package grammar

import (
	"fmt"

	"frontkit/internal/diag"
	"frontkit/internal/source"
)

type checker struct {
	ast     *AST
	kind    YaccKind
	emitter *diag.Emitter

	rules  map[string][]*Rule
	tokens map[string]struct{}
}

// validate reports every semantic problem in ast as a non-fatal error or a
// warning.
func validate(ast *AST, kind YaccKind, emitter *diag.Emitter) {
	c := &checker{
		ast:     ast,
		kind:    kind,
		emitter: emitter,
		rules:   make(map[string][]*Rule, len(ast.Rules)),
		tokens:  make(map[string]struct{}, len(ast.Tokens)),
	}
	for _, r := range ast.Rules {
		c.rules[r.Name.Text] = append(c.rules[r.Name.Text], r)
	}
	for _, t := range ast.Tokens {
		c.tokens[t.Text] = struct{}{}
	}

	c.checkStart()
	c.checkDuplicateRules()
	c.checkReferences()
	c.checkActions()
	c.checkUnused()
}

func (c *checker) errorAt(code string, kind diag.SpansKind, spans []source.Span, format string, args ...any) {
	c.emitter.EmitNonFatalError(diag.Simple{
		ID:      c.ast.Source,
		Kind:    kind,
		At:      spans,
		Msg:     fmt.Sprintf(format, args...),
		CodeStr: code,
	})
}

func (c *checker) warnAt(code string, sp source.Span, format string, args ...any) {
	c.emitter.EmitWarning(diag.Simple{
		ID:      c.ast.Source,
		Kind:    diag.SpansError,
		At:      []source.Span{sp},
		Msg:     fmt.Sprintf(format, args...),
		CodeStr: code,
	})
}

func (c *checker) checkStart() {
	start, ok := c.ast.Start()
	if !ok {
		c.errorAt(CodeMissingStart, diag.SpansError, []source.Span{{}}, "no %%start rule declared")
		return
	}
	if len(c.ast.Starts) > 1 {
		spans := make([]source.Span, 0, len(c.ast.Starts))
		for _, s := range c.ast.Starts {
			spans = append(spans, s.Span)
		}
		c.errorAt(CodeDuplicateStart, diag.SpansDuplication, spans, "%%start declared more than once")
	}
	if _, ok := c.rules[start.Text]; !ok {
		c.errorAt(CodeUnknownStart, diag.SpansError, []source.Span{start.Span}, "start rule '%s' is not defined", start.Text)
	}
}

func (c *checker) checkDuplicateRules() {
	for _, name := range c.ast.RuleNames() {
		defs := c.rules[name]
		if len(defs) < 2 {
			continue
		}
		spans := make([]source.Span, 0, len(defs))
		for _, r := range defs {
			spans = append(spans, r.Name.Span)
		}
		c.errorAt(CodeDuplicateRule, diag.SpansDuplication, spans, "rule '%s' is defined more than once", name)
	}
}

func (c *checker) defined(name string) bool {
	if _, ok := c.rules[name]; ok {
		return true
	}
	_, ok := c.tokens[name]
	return ok
}

func (c *checker) checkReferences() {
	for _, r := range c.ast.Rules {
		for _, alt := range r.Alts {
			for _, sym := range alt.Symbols {
				if sym.Kind == SymRef && !c.defined(sym.Name) {
					c.errorAt(CodeUndefinedSymbol, diag.SpansError, []source.Span{sym.Span}, "undefined symbol '%s'", sym.Name)
				}
			}
			if alt.Prec != nil && alt.Prec.Kind == SymRef {
				if _, ok := c.tokens[alt.Prec.Name]; !ok {
					c.errorAt(CodeUndefinedSymbol, diag.SpansError, []source.Span{alt.Prec.Span}, "%%prec refers to undeclared token '%s'", alt.Prec.Name)
				}
			}
		}
	}
}

func (c *checker) checkActions() {
	if c.kind.AllowsActions() {
		return
	}
	for _, r := range c.ast.Rules {
		for _, alt := range r.Alts {
			if alt.Action != nil {
				c.errorAt(CodeActionNotAllowed, diag.SpansError, []source.Span{*alt.Action}, "actions are not allowed in %s grammars", c.kind)
			}
		}
	}
}

// checkUnused warns about rules unreachable from the start rule and about
// declared tokens no alternative uses. Unreachable rules are only reported
// when the start rule exists.
func (c *checker) checkUnused() {
	usedTokens := make(map[string]struct{})
	for _, r := range c.ast.Rules {
		for _, alt := range r.Alts {
			for _, sym := range alt.Symbols {
				usedTokens[sym.Name] = struct{}{}
			}
			if alt.Prec != nil {
				usedTokens[alt.Prec.Name] = struct{}{}
			}
		}
	}

	if start, ok := c.ast.Start(); ok {
		if _, known := c.rules[start.Text]; known {
			reached := c.reachable(start.Text)
			for _, name := range c.ast.RuleNames() {
				if _, ok := reached[name]; !ok {
					c.warnAt(CodeUnusedRule, c.rules[name][0].Name.Span, "rule '%s' is never used", name)
				}
			}
		}
	}

	seen := make(map[string]struct{}, len(c.ast.Tokens))
	for _, t := range c.ast.Tokens {
		if _, dup := seen[t.Text]; dup {
			continue
		}
		seen[t.Text] = struct{}{}
		if _, ok := usedTokens[t.Text]; !ok {
			c.warnAt(CodeUnusedToken, t.Span, "token '%s' is never used", t.Text)
		}
	}
}

func (c *checker) reachable(start string) map[string]struct{} {
	reached := map[string]struct{}{start: {}}
	work := []string{start}
	for len(work) > 0 {
		name := work[len(work)-1]
		work = work[:len(work)-1]
		for _, r := range c.rules[name] {
			for _, alt := range r.Alts {
				for _, sym := range alt.Symbols {
					if sym.Kind != SymRef {
						continue
					}
					if _, isRule := c.rules[sym.Name]; !isRule {
						continue
					}
					if _, ok := reached[sym.Name]; !ok {
						reached[sym.Name] = struct{}{}
						work = append(work, sym.Name)
					}
				}
			}
		}
	}
	return reached
}
