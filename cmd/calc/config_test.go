package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/zephyrtronium/calc"
)

const testConfig = `
prompt: "calc> "
locale: en-US
vars:
  rate: 7
  total: rate * 100
  scale: 0.5
macros:
  double: total * 2
  half: "{double} * scale"
`

func TestParseConfig(t *testing.T) {
	cfg, err := parseConfig([]byte(testConfig))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prompt != "calc> " {
		t.Errorf("wrong prompt %q", cfg.Prompt)
	}
	if cfg.History != "~/.calc_history" {
		t.Errorf("default history replaced with %q", cfg.History)
	}
	if cfg.Locale != "en-US" {
		t.Errorf("wrong locale %q", cfg.Locale)
	}
	vars, err := pairs(&cfg.Vars)
	if err != nil {
		t.Fatal(err)
	}
	want := [][2]string{{"rate", "7"}, {"total", "rate * 100"}, {"scale", "0.5"}}
	if !reflect.DeepEqual(vars, want) {
		t.Errorf("wrong vars:\n\twant %q\n\tgot  %q", want, vars)
	}
	macros, err := pairs(&cfg.Macros)
	if err != nil {
		t.Fatal(err)
	}
	want = [][2]string{{"double", "total * 2"}, {"half", "{double} * scale"}}
	if !reflect.DeepEqual(macros, want) {
		t.Errorf("wrong macros:\n\twant %q\n\tgot  %q", want, macros)
	}
}

func TestConfigShell(t *testing.T) {
	cfg, err := parseConfig([]byte(testConfig))
	if err != nil {
		t.Fatal(err)
	}
	sh, _ := testShell(t, cfg)
	if v, _ := sh.ctx.Lookup("total"); v != calc.Int(700) {
		t.Errorf("total is %v", v)
	}
	v, err := sh.ctx.Exec("{half}")
	if err != nil {
		t.Fatal(err)
	}
	if v != calc.Float(700) {
		t.Errorf("{half} is %v", v)
	}
}

func TestConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"vars-list", "vars: [1, 2]"},
		{"vars-nested", "vars:\n  a: [1]"},
		{"macros-scalar", "macros: 1"},
		{"var-syntax", "vars:\n  a: 1 +"},
		{"var-undef", "vars:\n  a: b"},
		{"macro-syntax", "macros:\n  m: (1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg, err := parseConfig([]byte(c.doc))
			if err != nil {
				t.Fatal(err)
			}
			if _, err := newShell(io.Discard, cfg, slog.New(slog.NewTextHandler(io.Discard, nil))); err == nil {
				t.Errorf("%q gave no error", c.doc)
			}
		})
	}
	if _, err := parseConfig([]byte("prompt: [")); err == nil {
		t.Error("malformed YAML gave no error")
	}
}

func TestLoadConfig(t *testing.T) {
	name := filepath.Join(t.TempDir(), "calc.yaml")
	if err := os.WriteFile(name, []byte("history: ''\nvars:\n  x: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(name)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.History != "" || cfg.historyPath() != "" {
		t.Errorf("history not disabled: %q", cfg.History)
	}
	if cfg.Prompt != "> " {
		t.Errorf("wrong default prompt %q", cfg.Prompt)
	}
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file gave no error")
	}
}

func TestHistoryPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory:", err)
	}
	cases := []struct {
		hist string
		want string
	}{
		{"", ""},
		{"/var/calc/history", "/var/calc/history"},
		{"~/.calc_history", filepath.Join(home, ".calc_history")},
		{"~", home},
	}
	for _, c := range cases {
		cfg := config{History: c.hist}
		if got := cfg.historyPath(); got != c.want {
			t.Errorf("%q expanded to %q, want %q", c.hist, got, c.want)
		}
	}
}
