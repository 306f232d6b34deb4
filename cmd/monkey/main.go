// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"monkey/internal/config"
	"monkey/internal/errors"
	"monkey/internal/evaluator"
	"monkey/internal/object"
	"monkey/internal/parser"
	"monkey/internal/semantic"
	"monkey/repl"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	eval       string
	logLevel   int
	logFile    string
	noColor    bool
	maxDepth   int
	tokens     bool
	check      bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("monkey", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: monkey [flags] [file.mk]")
		fs.PrintDefaults()
	}

	var opts options
	fs.StringVar(&opts.configPath, "config", "", "config file (default $MONKEY_CONFIG or ~/.monkey.yaml)")
	fs.StringVar(&opts.eval, "e", "", "evaluate `code` and print the result")
	fs.IntVar(&opts.logLevel, "log-level", -1, "log verbosity, 0 (quiet) to 5")
	fs.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	fs.IntVar(&opts.maxDepth, "max-depth", -1, "maximum call depth, 0 for no limit")
	fs.BoolVar(&opts.tokens, "tokens", false, "print the tokens of every REPL input")
	fs.BoolVar(&opts.check, "check", false, "report syntax errors and lint warnings without evaluating")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if !cfg.Color {
		color.NoColor = true
	}
	var logFile *string
	if cfg.LogFile != "" {
		logFile = &cfg.LogFile
	}
	commonlog.Configure(cfg.LogLevel, logFile)

	switch {
	case opts.eval != "" && opts.check:
		return checkSource("<eval>", opts.eval, stderr)
	case opts.eval != "":
		return runSource("<eval>", opts.eval, cfg, stdout, stderr, true)
	case fs.NArg() > 0:
		path := fs.Arg(0)
		source, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "failed to read file: %v\n", err)
			return 1
		}
		if opts.check {
			return checkSource(path, string(source), stderr)
		}
		return runSource(path, string(source), cfg, stdout, stderr, false)
	case opts.check:
		fmt.Fprintln(stderr, "-check needs a file or -e")
		return 2
	}

	if f, ok := stdin.(*os.File); ok && isTerminal(f) {
		repl.StartInteractive(cfg)
		return 0
	}
	repl.Start(stdin, stdout, cfg)
	return 0
}

// loadConfig reads the config file, then applies the flags that were set.
func loadConfig(opts options) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.Discover()
	}
	if err != nil {
		return nil, err
	}

	if opts.logLevel >= 0 {
		cfg.LogLevel = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}
	if opts.noColor {
		cfg.Color = false
	}
	if opts.maxDepth >= 0 {
		cfg.MaxDepth = opts.maxDepth
	}
	if opts.tokens {
		cfg.ShowTokens = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// runSource parses and evaluates one program. Syntax errors are all
// reported; evaluation stops at the first runtime error.
func runSource(name, source string, cfg *config.Config, stdout, stderr io.Writer, printResult bool) int {
	startTime := time.Now()
	reporter := errors.NewReporter(name, source)

	res := parser.ParseSource(source)
	if diags := res.Diagnostics(); len(diags) > 0 {
		fmt.Fprint(stderr, reporter.FormatAll(diags))
		return 1
	}

	e := evaluator.New(evaluator.WithOutput(stdout), evaluator.WithMaxDepth(cfg.MaxDepth))
	result, err := e.Eval(res.Program, object.NewEnvironment())
	if err != nil {
		if d, ok := err.(errors.Diagnoser); ok {
			fmt.Fprint(stderr, reporter.Format(d.Diagnostic()))
		} else {
			fmt.Fprintln(stderr, err)
		}
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintln(stderr, red(fmt.Sprintf("Evaluation failed after %s", formatDuration(time.Since(startTime)))))
		return 1
	}

	if printResult {
		fmt.Fprintln(stdout, result.Inspect())
	}
	return 0
}

// checkSource reports syntax errors, or lint warnings for a program that
// parses. Only syntax errors fail the check.
func checkSource(name, source string, stderr io.Writer) int {
	reporter := errors.NewReporter(name, source)

	res := parser.ParseSource(source)
	if diags := res.Diagnostics(); len(diags) > 0 {
		fmt.Fprint(stderr, reporter.FormatAll(diags))
		return 1
	}

	fmt.Fprint(stderr, reporter.FormatAll(semantic.Analyze(res.Program)))
	return 0
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
