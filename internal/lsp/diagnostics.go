package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"monkey/internal/errors"
	"monkey/internal/semantic"
)

// diagnostics reports scan errors and parse errors together, ordered by
// position. Lint warnings are only computed for files that parse.
func (d *document) diagnostics() []protocol.Diagnostic {
	found := d.result.Diagnostics()
	if len(found) == 0 {
		found = semantic.Analyze(d.result.Program)
	}

	diagnostics := []protocol.Diagnostic{}
	for _, diag := range found {
		diagnostics = append(diagnostics, d.convert(diag))
	}
	return diagnostics
}

func (d *document) convert(diag errors.Diagnostic) protocol.Diagnostic {
	r := d.toRange(diag.Span)
	// Errors at end of input have an empty span; widen them so editors
	// still draw something.
	if r.Start == r.End && r.Start.Character > 0 {
		r.Start.Character--
	}

	source := "monkey-parser"
	switch {
	case strings.HasPrefix(diag.Code, "E02"):
		source = "monkey-scanner"
	case strings.HasPrefix(diag.Code, "W04"):
		source = "monkey-lint"
	}

	out := protocol.Diagnostic{
		Range:    r,
		Severity: ptrSeverity(severity(diag.Level)),
		Source:   ptrString(source),
		Message:  diag.Message,
	}
	if diag.Code != "" {
		out.Code = &protocol.IntegerOrString{Value: diag.Code}
	}
	return out
}

func severity(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	switch level {
	case errors.Warning:
		return protocol.DiagnosticSeverityWarning
	case errors.Note:
		return protocol.DiagnosticSeverityInformation
	case errors.Help:
		return protocol.DiagnosticSeverityHint
	}
	return protocol.DiagnosticSeverityError
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}
