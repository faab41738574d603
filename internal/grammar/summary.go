package grammar

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Summary renders a rule table for ast. It works on invalid grammars too.
func Summary(ast *AST, kind YaccKind) string {
	var sb strings.Builder
	start := "<none>"
	if s, ok := ast.Start(); ok {
		start = s.Text
	}
	fmt.Fprintf(&sb, "kind: %s\n", kind)
	fmt.Fprintf(&sb, "start: %s\n", start)
	fmt.Fprintf(&sb, "rules: %d\n", len(ast.RuleNames()))
	fmt.Fprintf(&sb, "tokens: %d\n", len(ast.Tokens))

	width := 0
	for _, r := range ast.Rules {
		width = max(width, runewidth.StringWidth(r.Name.Text))
	}

	n := 0
	for _, r := range ast.Rules {
		for i, alt := range r.Alts {
			lhs := r.Name.Text
			if i > 0 {
				lhs = ""
			}
			rhs := make([]string, 0, len(alt.Symbols))
			for _, s := range alt.Symbols {
				rhs = append(rhs, s.Display())
			}
			if len(rhs) == 0 {
				rhs = append(rhs, "%empty")
			}
			line := fmt.Sprintf("%3d  %s : %s", n, runewidth.FillRight(lhs, width), strings.Join(rhs, " "))
			if alt.Action != nil {
				line += "  {action}"
			}
			sb.WriteString(strings.TrimRight(line, " "))
			sb.WriteByte('\n')
			n++
		}
	}
	return sb.String()
}
