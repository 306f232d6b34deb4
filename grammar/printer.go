package grammar

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/fatih/color"

	"monkey/internal/evaluator"
	"monkey/token"
)

type Class int

const (
	ClassKeyword Class = iota
	ClassBuiltin
	ClassIdentifier
	ClassNumber
	ClassString
	ClassOperator
	ClassPunctuation
	ClassInvalid
)

var classNames = [...]string{
	ClassKeyword:     "keyword",
	ClassBuiltin:     "builtin",
	ClassIdentifier:  "identifier",
	ClassNumber:      "number",
	ClassString:      "string",
	ClassOperator:    "operator",
	ClassPunctuation: "punctuation",
	ClassInvalid:     "invalid",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Highlight is one classified token. Whitespace is never reported.
type Highlight struct {
	Class Class
	Text  string
	Pos   lexer.Position
}

// Span returns the byte range of the token.
func (h Highlight) Span() token.Span {
	return token.Span{Start: h.Pos.Offset, End: h.Pos.Offset + len(h.Text)}
}

var builtins = func() map[string]bool {
	m := make(map[string]bool)
	for _, name := range evaluator.BuiltinNames() {
		m[name] = true
	}
	return m
}()

// Classify splits source into highlighted tokens. It accepts any input.
func Classify(source string) ([]Highlight, error) {
	lex, err := MonkeyLexer.LexString("", source)
	if err != nil {
		return nil, err
	}

	symbols := lexer.SymbolsByRune(MonkeyLexer)
	var out []Highlight
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF() {
			return out, nil
		}

		var class Class
		switch symbols[tok.Type] {
		case "Whitespace":
			continue
		case "Ident":
			class = classifyIdent(tok.Value)
		case "Integer":
			class = ClassNumber
		case "String":
			class = ClassString
		case "Operator":
			class = ClassOperator
		case "Punctuation":
			class = ClassPunctuation
		default:
			class = ClassInvalid
		}
		out = append(out, Highlight{Class: class, Text: tok.Value, Pos: tok.Pos})
	}
}

func classifyIdent(word string) Class {
	if token.LookupIdent(word) != token.IDENT {
		return ClassKeyword
	}
	if builtins[word] {
		return ClassBuiltin
	}
	return ClassIdentifier
}

var classColors = map[Class]*color.Color{
	ClassKeyword:  color.New(color.FgMagenta, color.Bold),
	ClassBuiltin:  color.New(color.FgCyan),
	ClassNumber:   color.New(color.FgYellow),
	ClassString:   color.New(color.FgGreen),
	ClassOperator: color.New(color.FgBlue),
	ClassInvalid:  color.New(color.FgRed, color.Underline),
}

// Colorize returns source with ANSI colors applied per token class. The
// text between tokens is copied unchanged.
func Colorize(source string) string {
	highlights, err := Classify(source)
	if err != nil {
		return source
	}

	var b strings.Builder
	last := 0
	for _, h := range highlights {
		span := h.Span()
		b.WriteString(source[last:span.Start])
		if c, ok := classColors[h.Class]; ok {
			b.WriteString(c.Sprint(h.Text))
		} else {
			b.WriteString(h.Text)
		}
		last = span.End
	}
	b.WriteString(source[last:])
	return b.String()
}
