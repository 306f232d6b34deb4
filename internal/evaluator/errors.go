package evaluator

import (
	"fmt"

	"monkey/internal/errors"
	"monkey/internal/object"
	"monkey/token"
)

// Error is a runtime failure. Evaluation stops at the first one.
type Error struct {
	Code        string
	Message     string
	Span        token.Span
	Suggestions []string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Diagnostic() errors.Diagnostic {
	b := errors.NewDiagnostic(e.Code, e.Message, e.Span)
	for _, s := range e.Suggestions {
		b.WithSuggestion(s)
	}
	if help := errors.Describe(e.Code); help != "" {
		b.WithNote(help)
	}
	return b.Build()
}

func newError(code string, span token.Span, format string, a ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, a...), Span: span}
}

// builtinError is raised inside a builtin, where no span is known yet;
// the call site fills it in.
func builtinError(code, format string, a ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func wrongArgumentCount(want, got int) *Error {
	return builtinError(errors.ErrorWrongArgumentCount, "wrong number of arguments: want=%d, got=%d", want, got)
}

func typeMismatch(span token.Span, op string, left, right object.Object) *Error {
	return newError(errors.ErrorTypeMismatch, span, "type mismatch: %s %s %s", left.Type(), op, right.Type())
}

func unknownInfixOperator(span token.Span, op string, left, right object.Object) *Error {
	return newError(errors.ErrorUnknownOperator, span, "unknown operator: %s %s %s", left.Type(), op, right.Type())
}
