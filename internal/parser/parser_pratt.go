package parser

import (
	"strconv"

	"monkey/internal/ast"
	"monkey/token"
)

type Precedence int

const (
	_ Precedence = iota
	Lowest
	LogicalOr   // ||
	LogicalAnd  // &&
	Equals      // ==
	LessGreater // > or <
	Sum         // +
	Product     // *
	Prefix      // -X or !X
	Call        // myFunction(X)
	Index       // array[index]
)

var precedences = map[token.TokenType]Precedence{
	token.OR:       LogicalOr,
	token.AND:      LogicalAnd,
	token.EQ:       Equals,
	token.NOT_EQ:   Equals,
	token.LT:       LessGreater,
	token.GT:       LessGreater,
	token.LT_EQ:    LessGreater,
	token.GT_EQ:    LessGreater,
	token.PLUS:     Sum,
	token.MINUS:    Sum,
	token.SLASH:    Product,
	token.ASTERISK: Product,
	token.LPAREN:   Call,
	token.LBRACKET: Index,
}

func (p *Parser) peekPrecedence() Precedence {
	if prec, ok := precedences[p.peek.Type]; ok {
		return prec
	}
	return Lowest
}

func (p *Parser) curPrecedence() Precedence {
	if prec, ok := precedences[p.cur.Type]; ok {
		return prec
	}
	return Lowest
}

// parseExpression climbs while the next operator binds tighter than prec.
// It returns nil after recording an error.
func (p *Parser) parseExpression(prec Precedence) ast.Expr {
	prefix := p.prefixParseFns[p.cur.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.cur)
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for !p.peekIs(token.SEMICOLON) && prec < p.peekPrecedence() {
		infix := p.infixParseFns[p.peek.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) parseIdent() ast.Expr {
	return &ast.Ident{Value: p.cur.Literal, Span: p.cur.Span}
}

func (p *Parser) parseIntegerLit() ast.Expr {
	value, err := strconv.ParseInt(p.cur.Literal, 10, 64)
	if err != nil {
		p.addError(InvalidInteger, p.cur.Span, "could not parse %s as integer", p.cur.Literal)
		return nil
	}
	return &ast.IntegerLit{Value: value, Span: p.cur.Span}
}

func (p *Parser) parseStringLit() ast.Expr {
	return &ast.StringLit{Value: p.cur.Literal, Span: p.cur.Span}
}

func (p *Parser) parseBooleanLit() ast.Expr {
	return &ast.BooleanLit{Value: p.curIs(token.TRUE), Span: p.cur.Span}
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	op := p.cur
	p.nextToken()

	right := p.parseExpression(Prefix)
	if right == nil {
		return nil
	}
	return &ast.PrefixExpr{Operator: op.Literal, Right: right, Span: op.Span.Join(right.NodeSpan())}
}

func (p *Parser) parseInfixExpr(left ast.Expr) ast.Expr {
	op := p.cur
	prec := p.curPrecedence()
	p.nextToken()

	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return &ast.InfixExpr{
		Left:     left,
		Operator: op.Literal,
		Right:    right,
		Span:     left.NodeSpan().Join(right.NodeSpan()),
	}
}

func (p *Parser) parseGroupedExpr() ast.Expr {
	p.nextToken()

	expr := p.parseExpression(Lowest)
	if expr == nil || !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseIfExpr() ast.Expr {
	start := p.cur.Span

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(Lowest)
	if cond == nil || !p.expectPeek(token.RPAREN) || !p.expectPeek(token.LBRACE) {
		return nil
	}

	cons := p.parseBlockStmt()
	if cons == nil {
		return nil
	}
	expr := &ast.IfExpr{Condition: cond, Consequence: cons}

	if p.peekIs(token.ELSE) {
		p.nextToken()
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		if expr.Alternative = p.parseBlockStmt(); expr.Alternative == nil {
			return nil
		}
	}

	expr.Span = start.Join(p.cur.Span)
	return expr
}

func (p *Parser) parseFunctionLit() ast.Expr {
	start := p.cur.Span

	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	var params []*ast.Ident
	ok := p.parseList(token.RPAREN, func() bool {
		if !p.curIs(token.IDENT) {
			p.invalidIdentifier(p.cur)
			return false
		}
		params = append(params, &ast.Ident{Value: p.cur.Literal, Span: p.cur.Span})
		return true
	})
	if !ok || !p.expectPeek(token.LBRACE) {
		return nil
	}

	body := p.parseBlockStmt()
	if body == nil {
		return nil
	}
	return &ast.FunctionLit{Parameters: params, Body: body, Span: start.Join(p.cur.Span)}
}

func (p *Parser) parseCallExpr(fn ast.Expr) ast.Expr {
	args, ok := p.parseExpressionList(token.RPAREN)
	if !ok {
		return nil
	}
	return &ast.CallExpr{Function: fn, Arguments: args, Span: fn.NodeSpan().Join(p.cur.Span)}
}

func (p *Parser) parseIndexExpr(left ast.Expr) ast.Expr {
	p.nextToken()

	index := p.parseExpression(Lowest)
	if index == nil || !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.IndexExpr{Left: left, Index: index, Span: left.NodeSpan().Join(p.cur.Span)}
}

func (p *Parser) parseArrayLit() ast.Expr {
	start := p.cur.Span

	elements, ok := p.parseExpressionList(token.RBRACKET)
	if !ok {
		return nil
	}
	return &ast.ArrayLit{Elements: elements, Span: start.Join(p.cur.Span)}
}

func (p *Parser) parseHashLit() ast.Expr {
	hash := &ast.HashLit{}
	start := p.cur.Span

	ok := p.parseList(token.RBRACE, func() bool {
		key := p.parseExpression(Lowest)
		if key == nil || !p.expectPeek(token.COLON) {
			return false
		}
		p.nextToken()
		value := p.parseExpression(Lowest)
		if value == nil {
			return false
		}
		hash.Pairs = append(hash.Pairs, ast.HashPair{Key: key, Value: value})
		return true
	})
	if !ok {
		return nil
	}

	hash.Span = start.Join(p.cur.Span)
	return hash
}

func (p *Parser) parseExpressionList(end token.TokenType) ([]ast.Expr, bool) {
	var list []ast.Expr
	ok := p.parseList(end, func() bool {
		expr := p.parseExpression(Lowest)
		if expr == nil {
			return false
		}
		list = append(list, expr)
		return true
	})
	return list, ok
}

// parseList parses comma separated items up to end. It expects cur on the
// opening delimiter; item is called with cur on the item's first token and
// must leave cur on its last. On success cur is on end.
func (p *Parser) parseList(end token.TokenType, item func() bool) bool {
	if p.peekIs(end) {
		p.nextToken()
		return true
	}

	p.nextToken()
	if !item() {
		return false
	}

	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		if !item() {
			return false
		}
	}

	return p.expectPeek(end)
}
