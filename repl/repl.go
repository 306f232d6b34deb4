// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"

	"monkey/grammar"
	"monkey/internal/ast"
	"monkey/internal/config"
	"monkey/internal/evaluator"
	"monkey/internal/lexer"
	"monkey/internal/object"
	"monkey/internal/parser"
)

const (
	PROMPT   = ">> "
	CONTINUE = ".. "
)

var log = commonlog.GetLogger("monkey.repl")

const help = `Enter an expression or statement to evaluate it.

Commands:
  :tokens <code>  show the tokens of <code>
  :ast <code>     show the canonical form of <code>
  :env            list the bound names
  :reset          forget every binding
  :help           show this message
  :quit           leave the REPL
`

// Session is one REPL conversation. Bindings made by one input are
// visible to the next.
type Session struct {
	cfg  *config.Config
	out  io.Writer
	env  *object.Environment
	eval *evaluator.Evaluator

	// Suggestions adds "did you mean" lines after runtime errors. Off by
	// default so piped output stays line-for-line compatible.
	Suggestions bool
}

func NewSession(out io.Writer, cfg *config.Config) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Session{cfg: cfg, out: out}
	s.Reset()
	return s
}

// Reset drops every binding.
func (s *Session) Reset() {
	s.env = object.NewEnvironment()
	s.eval = evaluator.New(evaluator.WithOutput(s.out), evaluator.WithMaxDepth(s.cfg.MaxDepth))
}

func (s *Session) Env() *object.Environment {
	return s.env
}

// Eval parses and evaluates line, returning the result's text. The error
// is a parser.ErrorList or an *evaluator.Error.
func (s *Session) Eval(line string) (string, error) {
	program, err := parser.Parse(line)
	if err != nil {
		return "", err
	}

	obj, err := s.eval.Eval(program, s.env)
	if err != nil {
		return "", err
	}
	return obj.Inspect(), nil
}

// Handle runs one complete input, command or code, and writes whatever it
// produces. It reports false once the user asked to quit.
func (s *Session) Handle(input string) bool {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, ":") {
		return s.command(trimmed)
	}

	if s.cfg.ShowTokens {
		s.writeTokens(input)
	}

	result, err := s.Eval(input)
	if err != nil {
		s.writeError(err)
		return true
	}
	fmt.Fprintln(s.out, result)
	return true
}

func (s *Session) command(input string) bool {
	name, arg, _ := strings.Cut(input, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case ":quit", ":q", ":exit":
		return false
	case ":help":
		fmt.Fprint(s.out, help)
	case ":reset":
		s.Reset()
		log.Info("session reset")
	case ":env":
		for _, name := range s.env.Names() {
			val, _ := s.env.Get(name)
			fmt.Fprintf(s.out, "%s = %s\n", name, val.Inspect())
		}
	case ":tokens":
		s.writeTokens(arg)
	case ":ast":
		program, err := parser.Parse(arg)
		if err != nil {
			s.writeError(err)
			break
		}
		fmt.Fprintln(s.out, program.String())
		for _, stmt := range program.Statements {
			fmt.Fprintf(s.out, "  %s %s\n", stmt.NodeType(), ast.Quote(stmt.String()))
		}
	default:
		fmt.Fprintf(s.out, "unknown command %s. Type :help for a list.\n", name)
	}
	return true
}

func (s *Session) writeTokens(src string) {
	tokens, _ := lexer.Tokenize(src)
	for _, tok := range tokens {
		fmt.Fprintf(s.out, "%-10s %-12q %d..%d\n", tok.Type, tok.Literal, tok.Span.Start, tok.Span.End)
	}
	if s.cfg.Color {
		fmt.Fprintln(s.out, grammar.Colorize(src))
	}
}

// writeError prints failures under the "parse errors:" label, which is
// also used for runtime errors.
func (s *Session) writeError(err error) {
	red := fmt.Sprint
	if s.cfg.Color {
		red = color.New(color.FgRed).Sprint
	}

	var parseErrs parser.ErrorList
	if errors.As(err, &parseErrs) {
		for _, pe := range parseErrs {
			fmt.Fprintf(s.out, "parse errors:\n%s\n", red(pe.Message))
		}
		return
	}

	fmt.Fprintf(s.out, "parse errors:\n%s\n", red(err.Error()))
	var rtErr *evaluator.Error
	if s.Suggestions && errors.As(err, &rtErr) {
		for _, suggestion := range rtErr.Suggestions {
			fmt.Fprintln(s.out, suggestion)
		}
	}
}

// Start reads lines from in until EOF or an empty line, printing results
// to out.
func Start(in io.Reader, out io.Writer, cfg *config.Config) {
	if cfg == nil {
		cfg = config.Default()
	}
	session := NewSession(out, cfg)
	scanner := bufio.NewScanner(in)

	log.Debug("session started")
	for {
		fmt.Fprint(out, cfg.Prompt)
		if !scanner.Scan() {
			return
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			fmt.Fprintln(out, "bye")
			return
		}

		if !session.Handle(line) {
			return
		}
	}
}
