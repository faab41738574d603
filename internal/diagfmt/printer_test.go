package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"frontkit/internal/diag"
	"frontkit/internal/source"
)

func TestPrinterRendersOnFinalize(t *testing.T) {
	cache, id := setup(t, "p.y", "x y")
	var buf bytes.Buffer
	p := NewPrinter(&buf, cache, FormatShort, 0)

	e := diag.NewEmitter(p)
	e.EmitWarning(diag.Simple{ID: id, At: []source.Span{{Start: 2, End: 3}}, Msg: "second"})
	e.EmitNonFatalError(diag.Simple{ID: id, At: []source.Span{{Start: 0, End: 1}}, Msg: "first"})
	if buf.Len() != 0 {
		t.Fatal("printer wrote before the run was finalized")
	}
	e.Close()

	want := "error p.y:1:1 first\nwarning p.y:1:3 second\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}

	// a second run prints only its own diagnostics
	buf.Reset()
	e2 := diag.NewEmitter(p)
	e2.EmitWarning(diag.Simple{ID: id, At: []source.Span{{Start: 0, End: 1}}, Msg: "again"})
	e2.Close()
	if strings.Count(buf.String(), "\n") != 1 {
		t.Errorf("second run output:\n%s", buf.String())
	}
	if errs, warns := p.Counts(); errs != 1 || warns != 2 {
		t.Errorf("Counts() = %d, %d", errs, warns)
	}
	if p.Runs() != 2 || p.Err() != nil {
		t.Errorf("Runs() = %d, Err() = %v", p.Runs(), p.Err())
	}
}

func TestPrinterQuiet(t *testing.T) {
	cache, id := setup(t, "q.y", "x")
	var buf bytes.Buffer
	p := NewPrinter(&buf, cache, FormatPretty, 0)
	p.Quiet = true

	e := diag.NewEmitter(p)
	e.EmitWarning(diag.Simple{ID: id, At: []source.Span{{Start: 0, End: 1}}, Msg: "hidden"})
	e.Close()
	if buf.Len() != 0 {
		t.Errorf("quiet printer wrote warnings:\n%s", buf.String())
	}
	if _, warns := p.Counts(); warns != 1 {
		t.Errorf("warnings not counted: %d", warns)
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"pretty", "json", "short", ""} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("sarif"); err == nil {
		t.Error("expected error for unsupported format")
	}
	if m, err := ParsePathMode("relative"); err != nil || m != PathModeRelative {
		t.Errorf("ParsePathMode = %v, %v", m, err)
	}
}
