package parser

import (
	"fmt"

	"monkey/token"
)

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()

	switch p.cur.Type {
	case token.LBRACE:
		p.depth++
	case token.RBRACE:
		if p.depth > 0 {
			p.depth--
		}
	}
}

func (p *Parser) curIs(tt token.TokenType) bool {
	return p.cur.Type == tt
}

func (p *Parser) peekIs(tt token.TokenType) bool {
	return p.peek.Type == tt
}

// expectPeek advances only when the next token has the wanted type.
func (p *Parser) expectPeek(tt token.TokenType) bool {
	if p.peekIs(tt) {
		p.nextToken()
		return true
	}
	p.expectedError(tt, p.peek)
	return false
}

func (p *Parser) addError(kind ErrorKind, span token.Span, format string, args ...any) {
	p.errors = append(p.errors, ParseError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	})
}

func (p *Parser) expectedError(want token.TokenType, got token.Token) {
	p.addError(ExpectedToken, got.Span, "expected token: %s got: %s", want.Text(), got.Display())
}

func (p *Parser) invalidIdentifier(got token.Token) {
	p.addError(InvalidIdentifier, got.Span, "invalid identifier %s", got.Display())
}

// noPrefixParseFnError reports a token that cannot start an expression.
// Illegal tokens carry the lexer's own diagnosis, with the usual message
// kept as a note.
func (p *Parser) noPrefixParseFnError(tok token.Token) {
	if tok.Type == token.ILLEGAL {
		for _, se := range p.l.Errors() {
			if se.Span == tok.Span {
				p.errors = append(p.errors, ParseError{
					Kind:    Lexical,
					Code:    se.Code,
					Message: se.Message,
					Span:    se.Span,
					Notes:   []string{fmt.Sprintf("no prefix parse function for %s found", tok.Display())},
				})
				return
			}
		}
	}
	p.addError(NoPrefixParseFn, tok.Span, "no prefix parse function for %s found", tok.Display())
}

// synchronize skips the rest of a broken statement. It stops on the
// statement's ';', or just before a token that begins a new statement or
// closes the enclosing block. Braces nested inside the statement are
// skipped whole.
func (p *Parser) synchronize() {
	base := 0
	if len(p.blocks) > 0 {
		base = p.blocks[len(p.blocks)-1]
	}

	for !p.curIs(token.EOF) {
		if p.depth == base {
			if p.curIs(token.SEMICOLON) {
				return
			}
			switch p.peek.Type {
			case token.LET, token.RETURN, token.EOF:
				return
			case token.RBRACE:
				if base > 0 {
					return
				}
			}
		}
		p.nextToken()
	}
}
