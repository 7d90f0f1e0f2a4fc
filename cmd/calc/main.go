package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"
)

func main() {
	log.SetFlags(0)
	var (
		inname, cfgname, locale string
		with                    [][2]string
		echo, verbose           bool
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file with one expression or command per line, - for stdin (default interactive if no args given)")
	flag.StringVar(&cfgname, "config", "", "YAML configuration file")
	flag.StringVar(&locale, "locale", "", "format results for a locale, e.g. de-DE")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.BoolVar(&echo, "echo", false, "print each expression before its result")
	flag.BoolVar(&verbose, "v", false, "log evaluation details")
	flag.Parse()

	opts := slog.HandlerOptions{Level: slog.LevelWarn}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &opts))

	cfg := defaultConfig()
	if cfgname != "" {
		var err error
		cfg, err = loadConfig(cfgname)
		if err != nil {
			log.Fatal(err)
		}
	}
	if locale != "" {
		cfg.Locale = locale
	}
	sh, err := newShell(os.Stdout, cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	sh.echo = echo
	for _, d := range with {
		if err := sh.set(d[0], d[1]); err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
	}

	switch {
	case inname != "":
		f, err := infile(inname)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		if err := sh.run(f); err != nil {
			log.Fatal(err)
		}
	case flag.NArg() > 0:
		for _, arg := range flag.Args() {
			if sh.exec(arg) {
				break
			}
		}
	default:
		repl(sh, cfg, logger)
	}
}

func infile(inname string) (io.ReadCloser, error) {
	if inname == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(inname)
}

// run executes each line of r until the input ends or a line exits.
func (sh *shell) run(r io.Reader) error {
	s := bufio.NewScanner(r)
	for s.Scan() {
		if sh.exec(s.Text()) {
			return nil
		}
	}
	return s.Err()
}

// repl runs an interactive session with line editing and history.
func repl(sh *shell, cfg config, logger *slog.Logger) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	hist := cfg.historyPath()
	if hist != "" {
		if f, err := os.Open(hist); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(hist)
			if err != nil {
				logger.Warn("saving history", slog.String("path", hist), slog.Any("err", err))
				return
			}
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	for {
		line, err := ln.Prompt(cfg.Prompt)
		switch {
		case err == nil:
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Println()
			return
		default:
			logger.Error("reading input", slog.Any("err", err))
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		if sh.exec(line) {
			return
		}
	}
}
