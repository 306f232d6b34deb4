package parser

import (
	"sort"
	"strings"

	"monkey/internal/ast"
	"monkey/internal/errors"
	"monkey/internal/lexer"
	"monkey/token"
)

type ErrorKind int

const (
	ExpectedToken ErrorKind = iota
	NoPrefixParseFn
	InvalidIdentifier
	InvalidInteger
	Lexical
)

type ParseError struct {
	Kind    ErrorKind
	Code    string // lexer code, for Lexical errors
	Message string
	Span    token.Span
	Notes   []string
}

func (e ParseError) Error() string { return e.Message }

var kindCodes = map[ErrorKind]string{
	ExpectedToken:     errors.ErrorExpectedToken,
	NoPrefixParseFn:   errors.ErrorNoPrefixParse,
	InvalidIdentifier: errors.ErrorInvalidIdentifier,
	InvalidInteger:    errors.ErrorInvalidInteger,
}

func (e ParseError) Diagnostic() errors.Diagnostic {
	code := kindCodes[e.Kind]
	if e.Kind == Lexical {
		code = e.Code
	}
	b := errors.NewDiagnostic(code, e.Message, e.Span)
	for _, note := range e.Notes {
		b.WithNote(note)
	}
	return b.Build()
}

// ErrorList is every syntax error of one parse, in source order.
type ErrorList []ParseError

func (el ErrorList) Error() string {
	return strings.Join(el.Messages(), "\n")
}

func (el ErrorList) Diagnostics() []errors.Diagnostic {
	out := make([]errors.Diagnostic, len(el))
	for i, e := range el {
		out[i] = e.Diagnostic()
	}
	return out
}

func (el ErrorList) Messages() []string {
	out := make([]string, len(el))
	for i, e := range el {
		out[i] = e.Message
	}
	return out
}

// Incomplete reports whether every error is the input ending too soon,
// meaning more text could still make it valid.
func (el ErrorList) Incomplete(sourceLen int) bool {
	if len(el) == 0 {
		return false
	}
	for _, e := range el {
		if e.Span.Start < sourceLen {
			return false
		}
	}
	return true
}

// ParseResult contains the tree together with all diagnostics, for tools
// that want to show errors from both phases.
type ParseResult struct {
	Program     *ast.Program
	ParseErrors ErrorList
	ScanErrors  []lexer.ScanError
}

// Diagnostics merges scan and parse errors in source order. A parse error
// that only repeats a scan error is left out; its notes move to the scan
// error.
func (r *ParseResult) Diagnostics() []errors.Diagnostic {
	var diags []errors.Diagnostic
	seen := make(map[int]int)

	for _, e := range r.ScanErrors {
		seen[e.Span.Start] = len(diags)
		diags = append(diags, e.Diagnostic())
	}
	for _, e := range r.ParseErrors {
		if i, ok := seen[e.Span.Start]; ok && e.Kind == Lexical {
			diags[i].Notes = append(diags[i].Notes, e.Notes...)
			continue
		}
		diags = append(diags, e.Diagnostic())
	}

	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Span.Start < diags[j].Span.Start
	})
	return diags
}

func ParseSource(source string) *ParseResult {
	l := lexer.New(source)
	p := New(l)
	program := p.ParseProgram()

	return &ParseResult{
		Program:     program,
		ParseErrors: p.Errors(),
		ScanErrors:  l.Errors(),
	}
}

// Parse returns the program, or the ErrorList when anything failed to
// parse.
func Parse(source string) (*ast.Program, error) {
	res := ParseSource(source)
	if len(res.ParseErrors) > 0 {
		return nil, res.ParseErrors
	}
	return res.Program, nil
}
