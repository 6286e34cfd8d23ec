// Package main provides the main entry point for the aeon CLI tool.
// It routes subcommands to the front-end: lexing, parsing, and source
// reconstruction from the AST.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/aeon-lang/aeon/internal/cli"
	"github.com/aeon-lang/aeon/internal/format"
	"github.com/aeon-lang/aeon/internal/lexer"
	"github.com/aeon-lang/aeon/internal/parser"
	"github.com/aeon-lang/aeon/internal/version"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	sub := os.Args[1]
	args := os.Args[2:]

	switch sub {
	case "help", "-h", "--help":
		usage()
	case "version", "--version":
		jsonOutput := false
		for _, arg := range args {
			if arg == "--json" || arg == "-j" {
				jsonOutput = true
				break
			}
		}
		cli.PrintVersion("Aeon CLI", jsonOutput)
	case "check":
		runFrontend(sub, args)
	case "fmt":
		runFrontend(sub, args)
	case "tokens":
		runTokens(args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", sub)
		usage()
		os.Exit(1)
	}
}

func usage() {
	cli.PrintUsage("aeon", []cli.CommandInfo{
		{Name: "check", Description: "Parse a source file and report diagnostics"},
		{Name: "fmt", Description: "Parse a source file and print the reconstructed source"},
		{Name: "tokens", Description: "Dump the token sequence of a source file"},
		{Name: "version", Description: "Show version information"},
		{Name: "help", Description: "Show this help"},
	})
}

// runFrontend handles the check and fmt subcommands, which share flags and
// differ only in what they do with a successful parse.
func runFrontend(sub string, args []string) {
	fs := flag.NewFlagSet(sub, flag.ExitOnError)
	verbose := fs.Bool("v", false, "verbose output")
	debug := fs.Bool("d", false, "debug output")
	strict := fs.Bool("strict", false, "require a leading module declaration")
	watch := fs.Bool("w", false, "watch the file and re-run on every change")
	configPath := fs.String("config", "", "path to a JSON config file")
	constraint := fs.String("require-version", "", "fail unless the toolchain satisfies this semver constraint")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		cli.ExitWithError("usage: aeon %s [options] <file.aeon>", sub)
	}
	path := fs.Arg(0)

	cfg, err := cli.LoadConfig(*configPath)
	if err != nil {
		cli.ExitWithError("%v", err)
	}
	logger := cli.NewLogger(*verbose || cfg.Verbose, *debug || cfg.Debug)

	if *constraint != "" {
		ok, err := version.CompatibleWith(*constraint)
		if err != nil {
			cli.ExitWithError("%v", err)
		}
		if !ok {
			cli.ExitWithError("%s does not satisfy %q", version.String(), *constraint)
		}
		logger.Debug("version constraint %q satisfied", *constraint)
	}

	parseCfg := parser.Config{RequireModule: *strict || cfg.RequireModule}
	printOpts := format.Options{IndentSize: cfg.IndentSize, EmptyLineBetweenKinds: true}

	run := func() error {
		return processFile(sub, path, parseCfg, printOpts, logger)
	}

	if *watch {
		if err := watchFile(path, logger, run); err != nil {
			cli.ExitWithError("%v", err)
		}
		return
	}

	cli.HandleError(run(), logger)
}

// processFile parses one source file and either reports success (check) or
// writes the reconstructed source to stdout (fmt).
func processFile(sub, path string, cfg parser.Config, opts format.Options, logger *cli.Logger) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	logger.Debug("read %d bytes from %s", len(source), path)

	ast, err := parser.ParseSourceWithConfig(string(source), cfg)
	if err != nil {
		return diagnostic(path, err)
	}

	switch sub {
	case "fmt":
		fmt.Print(format.NewPrinter(opts).Print(ast))
	default:
		logger.Info("%s: ok", path)
		fmt.Printf("%s: ok\n", path)
	}
	return nil
}

// diagnostic prefixes a front-end error with file:line:col so editors can
// jump to it.
func diagnostic(path string, err error) error {
	var lerr *lexer.LexError
	if errors.As(err, &lerr) {
		return fmt.Errorf("%s:%s: %w", path, lerr.Pos, err)
	}
	var perr *parser.ParseError
	if errors.As(err, &perr) {
		return fmt.Errorf("%s:%s: %w", path, perr.Pos, err)
	}
	return fmt.Errorf("%s: %w", path, err)
}

// watchFile re-runs the given action every time the file is written.
// Watching the directory instead of the file keeps the watch alive across
// editors that replace the file on save.
func watchFile(path string, logger *cli.Logger, run func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	logger.Info("watching %s", path)
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			evAbs, err := filepath.Abs(event.Name)
			if err != nil || evAbs != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("event: %s", event)
			if err := run(); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// runTokens dumps the token sequence of a file, one token per line
func runTokens(args []string) {
	fs := flag.NewFlagSet("tokens", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		cli.ExitWithError("usage: aeon tokens <file.aeon>")
	}
	path := fs.Arg(0)

	source, err := os.ReadFile(path)
	if err != nil {
		cli.ExitWithError("read %s: %v", path, err)
	}

	tokens, err := lexer.Lex(string(source))
	if err != nil {
		cli.HandleError(diagnostic(path, err), nil)
	}

	for _, tok := range tokens {
		fmt.Printf("%s\t%s\t%q\n", tok.Span.Start, tok.Type, tok.Literal)
	}
}
