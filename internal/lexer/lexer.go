package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"monkey/internal/errors"
	"monkey/token"
)

type ScanError struct {
	Code    string
	Message string
	Span    token.Span
}

func (e ScanError) Error() string { return e.Message }

func (e ScanError) Diagnostic() errors.Diagnostic {
	return errors.NewDiagnostic(e.Code, e.Message, e.Span).Build()
}

// Lexer produces tokens on demand. Once the input is exhausted every call
// to NextToken returns EOF.
type Lexer struct {
	source  string
	start   int
	current int
	errors  []ScanError
}

func New(source string) *Lexer {
	return &Lexer{source: source}
}

// Tokenize scans the whole source, EOF token included.
func Tokenize(source string) ([]token.Token, []ScanError) {
	l := New(source)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, l.Errors()
		}
	}
}

func (l *Lexer) Errors() []ScanError {
	return l.errors
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()
	l.start = l.current

	if l.isAtEnd() {
		return token.Token{Type: token.EOF, Span: token.Span{Start: l.current, End: l.current}}
	}

	c := l.advance()
	switch c {
	case '(':
		return l.makeToken(token.LPAREN)
	case ')':
		return l.makeToken(token.RPAREN)
	case '{':
		return l.makeToken(token.LBRACE)
	case '}':
		return l.makeToken(token.RBRACE)
	case '[':
		return l.makeToken(token.LBRACKET)
	case ']':
		return l.makeToken(token.RBRACKET)
	case ',':
		return l.makeToken(token.COMMA)
	case ';':
		return l.makeToken(token.SEMICOLON)
	case ':':
		return l.makeToken(token.COLON)
	case '+':
		return l.makeToken(token.PLUS)
	case '-':
		return l.makeToken(token.MINUS)
	case '*':
		return l.makeToken(token.ASTERISK)
	case '/':
		return l.makeToken(token.SLASH)

	// Operators with a two-character variant
	case '=':
		return l.either('=', token.EQ, token.ASSIGN)
	case '!':
		return l.either('=', token.NOT_EQ, token.BANG)
	case '<':
		return l.either('=', token.LT_EQ, token.LT)
	case '>':
		return l.either('=', token.GT_EQ, token.GT)
	case '&':
		return l.pairOnly('&', token.AND)
	case '|':
		return l.pairOnly('|', token.OR)

	case '"':
		return l.scanString()
	}

	return l.scanDefault(c)
}

func (l *Lexer) either(next rune, two, one token.TokenType) token.Token {
	if l.matchNext(next) {
		return l.makeToken(two)
	}
	return l.makeToken(one)
}

// pairOnly handles operators that exist only in doubled form.
func (l *Lexer) pairOnly(next rune, two token.TokenType) token.Token {
	if l.matchNext(next) {
		return l.makeToken(two)
	}
	return l.illegal(errors.ErrorUnexpectedCharacter, fmt.Sprintf("unexpected character: '%s'", l.lexeme()))
}

func (l *Lexer) scanDefault(c rune) token.Token {
	switch {
	case isDigit(c):
		return l.scanNumber()
	case isLetter(c):
		return l.scanIdentifier()
	}
	return l.illegal(errors.ErrorUnexpectedCharacter, fmt.Sprintf("unexpected character: '%s'", l.lexeme()))
}

func (l *Lexer) scanNumber() token.Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	return l.makeToken(token.INT)
}

func (l *Lexer) scanIdentifier() token.Token {
	for isLetter(l.peek()) {
		l.advance()
	}
	return l.makeToken(token.LookupIdent(l.lexeme()))
}

func (l *Lexer) scanString() token.Token {
	var sb strings.Builder
	for !l.isAtEnd() {
		c := l.advance()
		switch c {
		case '"':
			return token.Token{Type: token.STRING, Literal: sb.String(), Span: l.span()}
		case '\\':
			if l.isAtEnd() {
				sb.WriteRune(c)
				continue
			}
			esc := l.advance()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '"', '\\':
				sb.WriteRune(esc)
			default:
				sb.WriteRune(c)
				sb.WriteRune(esc)
			}
		default:
			sb.WriteRune(c)
		}
	}

	return l.illegal(errors.ErrorUnterminatedString, "unterminated string")
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		r, size := utf8.DecodeRuneInString(l.source[l.current:])
		if !unicode.IsSpace(r) {
			return
		}
		l.current += size
	}
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += size
	return r
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return r
}

func (l *Lexer) matchNext(expected rune) bool {
	if l.isAtEnd() || l.peek() != expected {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) lexeme() string {
	return l.source[l.start:l.current]
}

func (l *Lexer) span() token.Span {
	return token.Span{Start: l.start, End: l.current}
}

func (l *Lexer) makeToken(tt token.TokenType) token.Token {
	return token.Token{Type: tt, Literal: l.lexeme(), Span: l.span()}
}

func (l *Lexer) illegal(code, message string) token.Token {
	l.errors = append(l.errors, ScanError{Code: code, Message: message, Span: l.span()})
	return l.makeToken(token.ILLEGAL)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}
