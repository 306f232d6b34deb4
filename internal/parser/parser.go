package parser

import (
	"monkey/internal/ast"
	"monkey/internal/lexer"
	"monkey/token"
)

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

type Parser struct {
	l      *lexer.Lexer
	errors ErrorList

	cur  token.Token
	peek token.Token

	// depth counts the braces open at cur; blocks records the depth
	// inside each block being parsed.
	depth  int
	blocks []int

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:    p.parseIdent,
		token.INT:      p.parseIntegerLit,
		token.STRING:   p.parseStringLit,
		token.TRUE:     p.parseBooleanLit,
		token.FALSE:    p.parseBooleanLit,
		token.BANG:     p.parsePrefixExpr,
		token.MINUS:    p.parsePrefixExpr,
		token.LPAREN:   p.parseGroupedExpr,
		token.IF:       p.parseIfExpr,
		token.FUNCTION: p.parseFunctionLit,
		token.LBRACKET: p.parseArrayLit,
		token.LBRACE:   p.parseHashLit,
	}

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for tt := range precedences {
		p.infixParseFns[tt] = p.parseInfixExpr
	}
	p.infixParseFns[token.LPAREN] = p.parseCallExpr
	p.infixParseFns[token.LBRACKET] = p.parseIndexExpr

	// Read two tokens, so cur and peek are both set
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) Errors() ErrorList {
	return p.errors
}

// ParseProgram parses until EOF. Statements that fail to parse are
// dropped and recorded in Errors.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.curIs(token.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		} else {
			p.synchronize()
		}
		p.nextToken()
	}

	program.Span = token.Span{Start: 0, End: p.cur.Span.End}
	return program
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur.Type {
	case token.LET:
		return p.parseLetStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseLetStmt() ast.Stmt {
	start := p.cur.Span

	if !p.peekIs(token.IDENT) {
		p.invalidIdentifier(p.peek)
		return nil
	}
	p.nextToken()
	name := &ast.Ident{Value: p.cur.Literal, Span: p.cur.Span}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()

	value := p.parseExpression(Lowest)
	if value == nil {
		return nil
	}

	p.skipSemicolon()
	return &ast.LetStmt{Name: name, Value: value, Span: start.Join(p.cur.Span)}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.cur.Span
	p.nextToken()

	value := p.parseExpression(Lowest)
	if value == nil {
		return nil
	}

	p.skipSemicolon()
	return &ast.ReturnStmt{Value: value, Span: start.Join(p.cur.Span)}
}

func (p *Parser) parseExprStmt() ast.Stmt {
	expr := p.parseExpression(Lowest)
	if expr == nil {
		return nil
	}

	p.skipSemicolon()
	return &ast.ExprStmt{Expr: expr, Span: expr.NodeSpan().Join(p.cur.Span)}
}

// parseBlockStmt expects cur on '{' and leaves cur on the matching '}'.
func (p *Parser) parseBlockStmt() *ast.BlockStmt {
	block := &ast.BlockStmt{}
	start := p.cur.Span

	p.blocks = append(p.blocks, p.depth)
	defer func() { p.blocks = p.blocks[:len(p.blocks)-1] }()
	p.nextToken()

	for !p.curIs(token.RBRACE) {
		if p.curIs(token.EOF) {
			p.expectedError(token.RBRACE, p.cur)
			return nil
		}
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		} else {
			p.synchronize()
		}
		p.nextToken()
	}

	block.Span = start.Join(p.cur.Span)
	return block
}

func (p *Parser) skipSemicolon() {
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
}
