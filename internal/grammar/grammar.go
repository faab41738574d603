package grammar

import (
	"slices"
	"strings"
)

// Grammar is a validated grammar lowered to flat productions.
type Grammar struct {
	Kind  YaccKind
	Start string
	// Nonterminals are the rule names in definition order.
	Nonterminals []string
	// Terminals are declared tokens and quoted literals, sorted.
	Terminals   []string
	Productions []Production
}

type Production struct {
	LHS       string
	RHS       []Symbol
	HasAction bool
}

func (p Production) String() string {
	if len(p.RHS) == 0 {
		return p.LHS + " -> %empty"
	}
	parts := make([]string, 0, len(p.RHS))
	for _, s := range p.RHS {
		parts = append(parts, s.Display())
	}
	return p.LHS + " -> " + strings.Join(parts, " ")
}

// lower flattens ast. It assumes validation succeeded.
func lower(ast *AST, kind YaccKind) *Grammar {
	g := &Grammar{Kind: kind, Nonterminals: ast.RuleNames()}
	if start, ok := ast.Start(); ok {
		g.Start = start.Text
	}

	terms := make(map[string]struct{})
	for _, t := range ast.Tokens {
		terms[t.Text] = struct{}{}
	}
	for _, r := range ast.Rules {
		for _, alt := range r.Alts {
			for _, s := range alt.Symbols {
				if s.Kind == SymLiteral {
					terms[s.Name] = struct{}{}
				}
			}
			g.Productions = append(g.Productions, Production{
				LHS:       r.Name.Text,
				RHS:       slices.Clone(alt.Symbols),
				HasAction: alt.Action != nil,
			})
		}
	}
	for t := range terms {
		g.Terminals = append(g.Terminals, t)
	}
	slices.Sort(g.Terminals)
	return g
}

// ProductionsFor returns the productions of rule name in order.
func (g *Grammar) ProductionsFor(name string) []Production {
	var out []Production
	for _, p := range g.Productions {
		if p.LHS == name {
			out = append(out, p)
		}
	}
	return out
}
