package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	Keyword
	Number
	// String is a double-quoted literal; Text includes the quotes.
	String
	// Literal is a single-quoted literal such as 'id' in a grammar.
	Literal
	// Directive is a %-prefixed word such as %start.
	Directive
	// Punct is any operator or punctuation; Text holds the exact spelling.
	Punct
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	Keyword:   "Keyword",
	Number:    "Number",
	String:    "String",
	Literal:   "Literal",
	Directive: "Directive",
	Punct:     "Punct",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}
