package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/zephyrtronium/calc"
)

const usage = `Enter an expression to evaluate it, or a command:
  [exit]             leave the shell
  [variables]        list variables
  [clear]            remove all variables
  [defs]             list macros
  [def names] expr   define each of names as a macro for expr, used as {name}
  [del] name         remove a variable
  [debug] line       show tokens and syntax tree while running line
  [help]             show this message
`

// shell executes lines of input against a persistent context.
type shell struct {
	ctx *calc.Context
	out io.Writer
	// p formats numbers for a locale. If nil, values print as literals.
	p    *message.Printer
	log  *slog.Logger
	echo bool
}

func newShell(out io.Writer, cfg config, logger *slog.Logger) (*shell, error) {
	sh := shell{ctx: calc.NewContext(), out: out, log: logger}
	if cfg.Locale != "" {
		tag, err := language.Parse(cfg.Locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", cfg.Locale, err)
		}
		sh.p = message.NewPrinter(tag)
	}
	vars, err := pairs(&cfg.Vars)
	if err != nil {
		return nil, fmt.Errorf("config vars: %w", err)
	}
	for _, kv := range vars {
		if err := sh.set(kv[0], kv[1]); err != nil {
			return nil, fmt.Errorf("config var %s: %w", kv[0], err)
		}
	}
	macros, err := pairs(&cfg.Macros)
	if err != nil {
		return nil, fmt.Errorf("config macros: %w", err)
	}
	for _, kv := range macros {
		e, err := calc.Parse(kv[1])
		if err != nil {
			return nil, fmt.Errorf("config macro %s: %w", kv[0], err)
		}
		sh.ctx.Define(kv[0], e)
	}
	return &sh, nil
}

// set evaluates src and sets the variable name to the result.
func (sh *shell) set(name, src string) error {
	v, err := sh.ctx.Exec(src)
	if err != nil {
		return err
	}
	sh.ctx.Set(name, v)
	sh.log.Debug("set variable", slog.String("name", name), slog.String("value", v.String()))
	return nil
}

// command reports whether line starts with the bracketed command cmd, ignoring
// case, and returns the rest of the line.
func command(line, cmd string) (string, bool) {
	if len(line) < len(cmd) || !strings.EqualFold(line[:len(cmd)], cmd) {
		return "", false
	}
	return strings.TrimSpace(line[len(cmd):]), true
}

// exec runs one line of input. It reports whether the shell should exit.
func (sh *shell) exec(line string) bool {
	line = strings.TrimSpace(line)
	rest, debug := command(line, "[debug]")
	if debug {
		line = rest
	}
	if line == "" {
		return false
	}
	if _, ok := command(line, "[exit]"); ok {
		return true
	}
	if _, ok := command(line, "[variables]"); ok {
		sh.printVars()
		return false
	}
	if _, ok := command(line, "[clear]"); ok {
		sh.ctx.ClearVars()
		sh.log.Debug("cleared variables")
		return false
	}
	if _, ok := command(line, "[defs]"); ok {
		sh.printDefs(debug)
		return false
	}
	if rest, ok := command(line, "[def "); ok {
		sh.define(rest, debug)
		return false
	}
	if name, ok := command(line, "[del]"); ok {
		if !sh.ctx.Delete(name) {
			fmt.Fprintf(sh.out, "no variable %q\n", name)
		}
		return false
	}
	if _, ok := command(line, "[help]"); ok {
		fmt.Fprint(sh.out, usage)
		return false
	}
	if strings.HasPrefix(line, "[") {
		fmt.Fprintln(sh.out, "unknown command; [help] lists commands")
		return false
	}
	sh.eval(line, debug)
	return false
}

// eval evaluates an expression and prints its result or error.
func (sh *shell) eval(src string, debug bool) {
	if debug {
		toks, err := calc.Tokenize(src)
		if err != nil {
			printError(sh.out, src, err)
			return
		}
		fmt.Fprintln(sh.out, "Tokens:")
		for i, t := range toks {
			fmt.Fprintf(sh.out, "  [%02d] %-20s @ %v\n", i, t.Text(), t.Span)
		}
	}
	e, err := calc.Parse(src)
	if err != nil {
		printError(sh.out, src, err)
		return
	}
	if debug {
		fmt.Fprintln(sh.out, "Tree:")
		e.Dump(sh.out)
	}
	sh.log.Debug("evaluate", slog.String("expr", e.String()), slog.Any("vars", e.Vars()))
	if sh.echo {
		fmt.Fprintf(sh.out, "%v : ", e)
	}
	v, err := sh.ctx.Eval(e)
	if err != nil {
		printError(sh.out, src, err)
		return
	}
	fmt.Fprintln(sh.out, sh.format(v))
}

// define handles [def names] expr. rest is the text after "[def ".
func (sh *shell) define(rest string, debug bool) {
	k := strings.IndexByte(rest, ']')
	if k < 0 {
		fmt.Fprintln(sh.out, "usage: [def names] expr")
		return
	}
	names := strings.Fields(rest[:k])
	src := strings.TrimSpace(rest[k+1:])
	if len(names) == 0 {
		fmt.Fprintln(sh.out, "usage: [def names] expr")
		return
	}
	e, err := calc.Parse(src)
	if err != nil {
		printError(sh.out, src, err)
		return
	}
	for _, name := range names {
		sh.ctx.Define(name, e)
		fmt.Fprintf(sh.out, "  MACRO {%s} = %v\n", name, e)
		if debug {
			e.Dump(sh.out)
		}
	}
}

func (sh *shell) printVars() {
	fmt.Fprintln(sh.out, "Variables:")
	names := sh.ctx.VarNames()
	if len(names) == 0 {
		fmt.Fprintln(sh.out, "  <empty>")
		return
	}
	for _, name := range names {
		v, _ := sh.ctx.Lookup(name)
		fmt.Fprintf(sh.out, "  %s = %s (%v)\n", name, sh.format(v), v.Type())
	}
}

func (sh *shell) printDefs(debug bool) {
	fmt.Fprintln(sh.out, "Macros:")
	names := sh.ctx.MacroNames()
	if len(names) == 0 {
		fmt.Fprintln(sh.out, "  <empty>")
		return
	}
	for _, name := range names {
		e, _ := sh.ctx.Macro(name)
		fmt.Fprintf(sh.out, "  MACRO {%s} = %v\n", name, e)
		if debug {
			e.Dump(sh.out)
		}
	}
}
