package main

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/zephyrtronium/calc"
)

func testShell(t *testing.T, cfg config) (*shell, *strings.Builder) {
	t.Helper()
	var b strings.Builder
	sh, err := newShell(&b, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	return sh, &b
}

func TestShellExec(t *testing.T) {
	// Each line runs in order in the same shell.
	lines := []struct {
		in   string
		out  string
		exit bool
	}{
		{"", "", false},
		{"1 + 2", "3\n", false},
		{"a = 5", "5\n", false},
		{"a /= 2.0", "2\n", false},
		{"[variables]", "Variables:\n  a = 2 (integer)\n", false},
		{"[def sq] a*a", "  MACRO {sq} = a * a\n", false},
		{"{sq} + 1", "5\n", false},
		{"[def one uno] 1", "  MACRO {one} = 1\n  MACRO {uno} = 1\n", false},
		{"[defs]", "Macros:\n  MACRO {one} = 1\n  MACRO {sq} = a * a\n  MACRO {uno} = 1\n", false},
		{"[def ] 2", "usage: [def names] expr\n", false},
		{"[def x 2", "usage: [def names] expr\n", false},
		{"[DEL] a", "", false},
		{"[del] a", "no variable \"a\"\n", false},
		{"[variables]", "Variables:\n  <empty>\n", false},
		{"b = 1.5, c = true", "true\n", false},
		{"[clear]", "", false},
		{"[variables]", "Variables:\n  <empty>\n", false},
		{"[bogus]", "unknown command; [help] lists commands\n", false},
		{"[help]", usage, false},
		{"5 / 0", "evaluation error: 0: division by zero: 5 / 0\n5 / 0\n^   ^\n", false},
		{"  [Exit]  ", "", true},
	}
	sh, b := testShell(t, defaultConfig())
	for _, c := range lines {
		b.Reset()
		if exit := sh.exec(c.in); exit != c.exit {
			t.Errorf("%q: wrong exit: want %t, got %t", c.in, c.exit, exit)
		}
		if b.String() != c.out {
			t.Errorf("%q: wrong output:\nwant %q\ngot  %q", c.in, c.out, b.String())
		}
	}
}

func TestShellDebug(t *testing.T) {
	sh, b := testShell(t, defaultConfig())
	sh.ctx.Set("x", calc.Int(3))
	sh.exec("[debug] 2x")
	out := b.String()
	for _, want := range []string{"Tokens:\n", "  [00] 2 ", "  [01] x ", "@ 1..2\n", "Tree:\nBinary * @ 0..2\n", "  Identifier \"x\" @ 1..2\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug output doesn't contain %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n6\n") {
		t.Errorf("debug output doesn't end with result:\n%s", out)
	}

	b.Reset()
	sh.exec("[debug] 1 $")
	if !strings.HasPrefix(b.String(), "lexing error: ") {
		t.Errorf("wrong debug lexing error:\n%s", b.String())
	}
}

func TestShellEcho(t *testing.T) {
	sh, b := testShell(t, defaultConfig())
	sh.echo = true
	sh.exec("1+2(3)")
	if b.String() != "1 + 2 * 3 : 7\n" {
		t.Errorf("wrong output %q", b.String())
	}
}

func TestShellLocale(t *testing.T) {
	cfg := defaultConfig()
	cfg.Locale = "de-DE"
	sh, b := testShell(t, cfg)
	cases := []struct {
		in  string
		out string
	}{
		{"1234567", "1.234.567\n"},
		{"1234567.5", "1.234.567,5\n"},
		{"1 < 2", "true\n"},
	}
	for _, c := range cases {
		b.Reset()
		sh.exec(c.in)
		if b.String() != c.out {
			t.Errorf("%q: wrong output: want %q, got %q", c.in, c.out, b.String())
		}
	}

	cfg.Locale = "!"
	if _, err := newShell(io.Discard, cfg, slog.New(slog.NewTextHandler(io.Discard, nil))); err == nil {
		t.Error("invalid locale gave no error")
	}
}

func TestShellRun(t *testing.T) {
	sh, b := testShell(t, defaultConfig())
	if err := sh.run(strings.NewReader("x = 1\nx += 1\n[exit]\nx += 1\n")); err != nil {
		t.Fatal(err)
	}
	if b.String() != "1\n2\n" {
		t.Errorf("wrong output %q", b.String())
	}
	if x, _ := sh.ctx.Lookup("x"); x != calc.Int(2) {
		t.Errorf("x is %v after exit", x)
	}
}

func TestShellSet(t *testing.T) {
	sh, _ := testShell(t, defaultConfig())
	if err := sh.set("x", "2 ** 10"); err != nil {
		t.Fatal(err)
	}
	if x, _ := sh.ctx.Lookup("x"); x != calc.Int(1024) {
		t.Errorf("x is %v", x)
	}
	if err := sh.set("y", "x +"); err == nil {
		t.Error("malformed value gave no error")
	}
	if _, ok := sh.ctx.Lookup("y"); ok {
		t.Error("malformed value set y")
	}
}
