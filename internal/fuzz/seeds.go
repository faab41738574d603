package fuzztests

import "testing"

const maxFuzzInput = 1 << 16 // 64 KiB

var lexSeeds = []string{
	"",
	"ident 123 0x1F 1.5e3 \"str\" 'c'",
	"# comment\n// other\nx /* nested /* block */ */ y",
	"\"unterminated",
	"/* open",
	"a := b -> c <<= d ... e",
	"ünïcödé ∑ 1e+ 0x",
	"\uFEFFbom\r\ncrlf",
}

var grammarSeeds = []string{
	"%start E\n%%\nE : E '+' T | T ;\nT : 'id' ;\n",
	"%token NUM\n%left '+'\n%%\nE : E '+' E %prec '+' | NUM { $$ = $1; } ;\n",
	"%%\nA : B ;\nA : %empty ;\n",
	"%start\n%%",
	"%{ code %}\n%%\nS : '(' S ')' | ;\n%%\ntrailer",
	"%unknown\n%%",
	"%%\nA : { unterminated",
}

func addSeeds(f *testing.F, seeds []string) {
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clip(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
