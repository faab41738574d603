package grammar

import "frontkit/internal/source"

// AST is the parsed form of one grammar source. It is produced even when
// validation fails.
type AST struct {
	Source source.ID
	// Starts holds every %start declaration in source order.
	Starts []Name
	// Tokens holds every terminal declared with %token or a precedence
	// directive.
	Tokens []Name
	Rules  []*Rule
}

// Name is an identifier or literal with its location.
type Name struct {
	Text string
	Span source.Span
}

type Rule struct {
	Name Name
	Alts []Alt
}

type Alt struct {
	Symbols []Symbol
	// Empty is set by an explicit %empty.
	Empty bool
	Prec  *Symbol
	// Action is the span of the { ... } block, if any.
	Action *source.Span
}

type SymbolKind uint8

const (
	// SymRef names a rule or a declared token.
	SymRef SymbolKind = iota
	// SymLiteral is a quoted terminal; Name is unquoted.
	SymLiteral
)

type Symbol struct {
	Kind SymbolKind
	Name string
	Span source.Span
}

// Display renders the symbol the way it appears in a grammar.
func (s Symbol) Display() string {
	if s.Kind == SymLiteral {
		return "'" + s.Name + "'"
	}
	return s.Name
}

// Start returns the first %start declaration.
func (a *AST) Start() (Name, bool) {
	if len(a.Starts) == 0 {
		return Name{}, false
	}
	return a.Starts[0], true
}

// RuleNames returns the distinct rule names in definition order.
func (a *AST) RuleNames() []string {
	seen := make(map[string]struct{}, len(a.Rules))
	var out []string
	for _, r := range a.Rules {
		if _, ok := seen[r.Name.Text]; ok {
			continue
		}
		seen[r.Name.Text] = struct{}{}
		out = append(out, r.Name.Text)
	}
	return out
}
