package grammar

import (
	"fmt"
	"strings"
)

// Flavor selects the yacc dialect.
type Flavor uint8

const (
	FlavorGrmtools Flavor = iota
	FlavorOriginal
	FlavorEco
)

// ActionKind selects what actions mean in an Original grammar.
type ActionKind uint8

const (
	UserAction ActionKind = iota
	GenericParseTree
	NoAction
)

var actionNames = [...]string{
	UserAction:       "useraction",
	GenericParseTree: "genericparsetree",
	NoAction:         "noaction",
}

func (a ActionKind) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "action(?)"
}

// YaccKind is the dialect a grammar is checked against. The zero value is
// Grmtools.
type YaccKind struct {
	Flavor Flavor
	// Action is only meaningful for FlavorOriginal.
	Action ActionKind
}

var (
	Grmtools = YaccKind{Flavor: FlavorGrmtools}
	Eco      = YaccKind{Flavor: FlavorEco}
)

// Original returns the classic yacc dialect with the given action kind.
func Original(a ActionKind) YaccKind {
	return YaccKind{Flavor: FlavorOriginal, Action: a}
}

func (k YaccKind) String() string {
	switch k.Flavor {
	case FlavorGrmtools:
		return "grmtools"
	case FlavorEco:
		return "eco"
	case FlavorOriginal:
		return "original(" + k.Action.String() + ")"
	}
	return "kind(?)"
}

// AllowsActions reports whether rule alternatives may carry { ... } actions.
func (k YaccKind) AllowsActions() bool {
	switch k.Flavor {
	case FlavorEco:
		return false
	case FlavorOriginal:
		return k.Action != NoAction
	default:
		return true
	}
}

// ParseYaccKind parses "grmtools", "eco", "original" or
// "original:<useraction|genericparsetree|noaction>", case-insensitively.
func ParseYaccKind(s string) (YaccKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	flavor, action, hasAction := strings.Cut(s, ":")
	switch flavor {
	case "", "grmtools":
		if hasAction {
			break
		}
		return Grmtools, nil
	case "eco":
		if hasAction {
			break
		}
		return Eco, nil
	case "original":
		if !hasAction {
			return Original(UserAction), nil
		}
		for i, name := range actionNames {
			if name == action {
				return Original(ActionKind(i)), nil
			}
		}
		return YaccKind{}, fmt.Errorf("unknown action kind %q", action)
	}
	return YaccKind{}, fmt.Errorf("unknown yacc kind %q", s)
}
