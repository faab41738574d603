package token

import "slices"

// Keywords is a case-sensitive keyword set. The zero value has no keywords.
type Keywords struct {
	words map[string]struct{}
}

// NewKeywords builds a set from words; empty strings are ignored.
func NewKeywords(words ...string) Keywords {
	k := Keywords{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		if w != "" {
			k.words[w] = struct{}{}
		}
	}
	return k
}

// Lookup reports whether ident is a keyword.
func (k Keywords) Lookup(ident string) bool {
	_, ok := k.words[ident]
	return ok
}

func (k Keywords) Len() int { return len(k.words) }

// List returns the keywords in sorted order.
func (k Keywords) List() []string {
	out := make([]string, 0, len(k.words))
	for w := range k.words {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}
