// Package token SPDX-License-Identifier: Apache-2.0
package token

type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF

	// Identifiers + literals
	IDENT  // add, foobar, x, y ...
	INT    // 1234567890
	STRING // "foo bar"
	TRUE
	FALSE

	// Keywords
	FUNCTION
	LET
	IF
	ELSE
	RETURN

	// Operators
	ASSIGN
	PLUS
	MINUS
	BANG
	ASTERISK
	SLASH

	LT
	GT
	LT_EQ
	GT_EQ
	EQ
	NOT_EQ
	AND
	OR

	// Delimiters
	COMMA
	SEMICOLON
	COLON

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
)

var typeNames = [...]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	IDENT:     "IDENT",
	INT:       "INT",
	STRING:    "STRING",
	TRUE:      "TRUE",
	FALSE:     "FALSE",
	FUNCTION:  "FUNCTION",
	LET:       "LET",
	IF:        "IF",
	ELSE:      "ELSE",
	RETURN:    "RETURN",
	ASSIGN:    "ASSIGN",
	PLUS:      "PLUS",
	MINUS:     "MINUS",
	BANG:      "BANG",
	ASTERISK:  "ASTERISK",
	SLASH:     "SLASH",
	LT:        "LT",
	GT:        "GT",
	LT_EQ:     "LT_EQ",
	GT_EQ:     "GT_EQ",
	EQ:        "EQ",
	NOT_EQ:    "NOT_EQ",
	AND:       "AND",
	OR:        "OR",
	COMMA:     "COMMA",
	SEMICOLON: "SEMICOLON",
	COLON:     "COLON",
	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	LBRACE:    "LBRACE",
	RBRACE:    "RBRACE",
	LBRACKET:  "LBRACKET",
	RBRACKET:  "RBRACKET",
}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "TokenType(?)"
	}
	return typeNames[t]
}

// Source text of every fixed-spelling token.
var fixedText = map[TokenType]string{
	TRUE:      "true",
	FALSE:     "false",
	FUNCTION:  "fn",
	LET:       "let",
	IF:        "if",
	ELSE:      "else",
	RETURN:    "return",
	ASSIGN:    "=",
	PLUS:      "+",
	MINUS:     "-",
	BANG:      "!",
	ASTERISK:  "*",
	SLASH:     "/",
	LT:        "<",
	GT:        ">",
	LT_EQ:     "<=",
	GT_EQ:     ">=",
	EQ:        "==",
	NOT_EQ:    "!=",
	AND:       "&&",
	OR:        "||",
	COMMA:     ",",
	SEMICOLON: ";",
	COLON:     ":",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	LBRACKET:  "[",
	RBRACKET:  "]",
}

// Text returns the spelling of t as it is written in source, or the
// type name for kinds without a fixed spelling.
func (t TokenType) Text() string {
	switch t {
	case EOF:
		return "end of file"
	case IDENT:
		return "identifier"
	case INT:
		return "integer"
	case STRING:
		return "string"
	}
	if s, ok := fixedText[t]; ok {
		return s
	}
	return t.String()
}

// Span is a half-open range of byte offsets into the source.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int { return s.End - s.Start }

// Join returns the smallest span covering both s and o.
func (s Span) Join(o Span) Span {
	out := s
	if o.Start < out.Start {
		out.Start = o.Start
	}
	if o.End > out.End {
		out.End = o.End
	}
	return out
}

type Token struct {
	Type    TokenType
	Literal string
	Span    Span
}

// Display is the form a token takes in diagnostics.
func (t Token) Display() string {
	switch t.Type {
	case IDENT, INT, STRING:
		return t.Literal
	case ILLEGAL:
		return "ILLEGAL"
	}
	return t.Type.Text()
}

var keywords = map[string]TokenType{
	"fn":     FUNCTION,
	"let":    LET,
	"true":   TRUE,
	"false":  FALSE,
	"if":     IF,
	"else":   ELSE,
	"return": RETURN,
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Keywords lists the reserved words in a stable order.
func Keywords() []string {
	return []string{"fn", "let", "true", "false", "if", "else", "return"}
}
