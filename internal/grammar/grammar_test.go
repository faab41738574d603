package grammar

import (
	"slices"
	"strings"
	"testing"

	"frontkit/internal/diag"
	"frontkit/internal/source"
)

func parseText(t *testing.T, text string) (*AST, *syntaxError) {
	t.Helper()
	c := source.NewCacheWithAllocator(source.NewAllocator())
	s := c.Begin(source.Input{Path: "g.y", Text: text})
	f, _ := c.File(s.LoadedSourceIDs()[0])
	return parse(f)
}

func check(t *testing.T, text string, kind YaccKind) *diag.Bag {
	t.Helper()
	ast, serr := parseText(t, text)
	if serr != nil {
		t.Fatalf("unexpected syntax error: %s", serr.msg)
	}
	bag := diag.NewBag(0)
	em := diag.NewEmitter(bag)
	validate(ast, kind, em)
	em.Close()
	return bag
}

func codes(bag *diag.Bag) []string {
	var out []string
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestParseCalc(t *testing.T) {
	ast, serr := parseText(t, "%start Expr\n%%\nExpr : Expr '+' Term | Term ;\nTerm : 'id' ;\n")
	if serr != nil {
		t.Fatalf("syntax error: %s", serr.msg)
	}
	if start, ok := ast.Start(); !ok || start.Text != "Expr" {
		t.Errorf("Start() = %+v, %v", start, ok)
	}
	if !slices.Equal(ast.RuleNames(), []string{"Expr", "Term"}) {
		t.Errorf("RuleNames() = %v", ast.RuleNames())
	}
	expr := ast.Rules[0]
	if len(expr.Alts) != 2 || len(expr.Alts[0].Symbols) != 3 {
		t.Fatalf("unexpected Expr alternatives: %+v", expr.Alts)
	}
	if plus := expr.Alts[0].Symbols[1]; plus.Kind != SymLiteral || plus.Name != "+" {
		t.Errorf("second symbol = %+v", plus)
	}
}

func TestParseDeclarationsAndPrograms(t *testing.T) {
	text := "%{ int x = 0; %}\n%token NUM\n%left '+' '-'\n%expect 0\n%start E\n%%\n" +
		"E : E '+' E %prec '+' | NUM { $$ = $1; } | %empty ;\n%%\nanything after here { is ignored"
	ast, serr := parseText(t, text)
	if serr != nil {
		t.Fatalf("syntax error: %s", serr.msg)
	}
	var toks []string
	for _, n := range ast.Tokens {
		toks = append(toks, n.Text)
	}
	if !slices.Equal(toks, []string{"NUM", "+", "-"}) {
		t.Errorf("tokens = %q", toks)
	}
	alts := ast.Rules[0].Alts
	if alts[0].Prec == nil || alts[0].Prec.Name != "+" {
		t.Errorf("prec = %+v", alts[0].Prec)
	}
	if alts[1].Action == nil {
		t.Error("expected an action on the second alternative")
	}
	if !alts[2].Empty || len(alts[2].Symbols) != 0 {
		t.Errorf("third alternative = %+v", alts[2])
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		code string
		msg  string
	}{
		{"missing separator", "%start A\n", CodeSyntax, "expected '%%' before end of input"},
		{"rule in declarations", "%start A\nA : 'x' ;", CodeSyntax, "unexpected Ident \"A\" in declarations"},
		{"missing colon", "%%\nA 'x' ;", CodeSyntax, "expected ':'"},
		{"missing semicolon", "%%\nA : 'x'", CodeSyntax, "expected ';', found end of input"},
		{"unknown directive", "%bogus\n%%\n", CodeSyntax, "unknown directive %bogus"},
		{"unterminated action", "%%\nA : 'x' { oops ;", CodeSyntax, "unterminated action"},
		{"unterminated literal", "%%\nA : 'x ;\n", "LEX1002", "newline in literal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ast, serr := parseText(t, tt.text)
			if serr == nil {
				t.Fatal("expected a syntax error")
			}
			if ast == nil {
				t.Error("AST must be returned alongside the error")
			}
			if serr.code != tt.code || !strings.Contains(serr.msg, tt.msg) {
				t.Errorf("error = %s %q, want %s containing %q", serr.code, serr.msg, tt.code, tt.msg)
			}
		})
	}
}

func TestValidateDuplicateRule(t *testing.T) {
	bag := check(t, "%start A\n%%\nA : B ;\nB : 'x' ;\nA : 'y' ;\n", Grmtools)
	if !slices.Equal(codes(bag), []string{CodeDuplicateRule}) {
		t.Fatalf("codes = %v", codes(bag))
	}
	d := bag.Items()[0]
	if d.SpansKind != diag.SpansDuplication {
		t.Errorf("SpansKind = %v", d.SpansKind)
	}
	want := []source.Span{{Start: 12, End: 13}, {Start: 30, End: 31}}
	if !slices.Equal(d.Spans, want) {
		t.Errorf("spans = %v, want %v", d.Spans, want)
	}
}

func TestValidateUndefinedSymbol(t *testing.T) {
	bag := check(t, "%start A\n%%\nA : Missing 'x' ;\n", Grmtools)
	if !slices.Equal(codes(bag), []string{CodeUndefinedSymbol}) {
		t.Fatalf("codes = %v", codes(bag))
	}
	if sp := bag.Items()[0].Spans[0]; sp != (source.Span{Start: 16, End: 23}) {
		t.Errorf("span = %v", sp)
	}
}

func TestValidateStart(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"%%\nA : 'x' ;\n", []string{CodeMissingStart}},
		{"%start Nope\n%%\nA : 'x' ;\n", []string{CodeUnknownStart}},
		{"%start A\n%start A\n%%\nA : 'x' ;\n", []string{CodeDuplicateStart}},
	}
	for _, tt := range tests {
		if got := codes(check(t, tt.text, Grmtools)); !slices.Equal(got, tt.want) {
			t.Errorf("%q: codes = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestValidateUnusedAreWarnings(t *testing.T) {
	bag := check(t, "%start A\n%token T U\n%%\nA : T ;\nB : 'b' ;\n", Grmtools)
	if bag.HasErrors() {
		t.Errorf("unexpected errors: %v", bag.Items())
	}
	if !slices.Equal(codes(bag), []string{CodeUnusedRule, CodeUnusedToken}) {
		t.Errorf("codes = %v", codes(bag))
	}
	for _, d := range bag.Items() {
		if d.Severity != diag.SevWarning {
			t.Errorf("%s severity = %v", d.Code, d.Severity)
		}
	}
}

func TestValidateActionsByKind(t *testing.T) {
	text := "%start A\n%%\nA : 'x' { $$ = 1; } ;\n"
	for _, kind := range []YaccKind{Grmtools, Original(UserAction), Original(GenericParseTree)} {
		if bag := check(t, text, kind); bag.Len() != 0 {
			t.Errorf("%s: diagnostics = %v", kind, bag.Items())
		}
	}
	for _, kind := range []YaccKind{Eco, Original(NoAction)} {
		if got := codes(check(t, text, kind)); !slices.Equal(got, []string{CodeActionNotAllowed}) {
			t.Errorf("%s: codes = %v", kind, got)
		}
	}
}

func TestLowerAndSummary(t *testing.T) {
	ast, _ := parseText(t, "%start Expr\n%%\nExpr : Expr '+' Term | Term ;\nTerm : 'id' ;\n")
	g := lower(ast, Grmtools)
	if g.Start != "Expr" || !slices.Equal(g.Terminals, []string{"+", "id"}) {
		t.Errorf("grammar = %+v", g)
	}
	if len(g.Productions) != 3 || g.Productions[0].String() != "Expr -> Expr '+' Term" {
		t.Errorf("productions = %v", g.Productions)
	}
	if got := len(g.ProductionsFor("Expr")); got != 2 {
		t.Errorf("ProductionsFor(Expr) = %d", got)
	}

	sum := Summary(ast, Grmtools)
	for _, want := range []string{
		"kind: grmtools\n",
		"start: Expr\n",
		"rules: 2\n",
		"  0  Expr : Expr '+' Term\n",
		"  2  Term : 'id'\n",
	} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary missing %q:\n%s", want, sum)
		}
	}
}

func TestParseYaccKind(t *testing.T) {
	tests := []struct {
		in   string
		want YaccKind
	}{
		{"", Grmtools},
		{"GrmTools", Grmtools},
		{"eco", Eco},
		{"original", Original(UserAction)},
		{"original:noaction", Original(NoAction)},
		{"original:genericparsetree", Original(GenericParseTree)},
	}
	for _, tt := range tests {
		got, err := ParseYaccKind(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseYaccKind(%q) = %v, %v", tt.in, got, err)
		}
	}
	for _, bad := range []string{"bison", "eco:noaction", "original:weird"} {
		if _, err := ParseYaccKind(bad); err == nil {
			t.Errorf("ParseYaccKind(%q) succeeded", bad)
		}
	}
	if Original(NoAction).String() != "original(noaction)" {
		t.Errorf("String() = %q", Original(NoAction))
	}
}
