package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// String renders the program in canonical form. Re-parsing the output
// yields a tree that renders identically.
func (p *Program) String() string {
	return joinStatements(p.Statements)
}

func (ls *LetStmt) String() string {
	return fmt.Sprintf("let %s = %s;", ls.Name.String(), exprString(ls.Value))
}

func (rs *ReturnStmt) String() string {
	return fmt.Sprintf("return %s;", exprString(rs.Value))
}

func (es *ExprStmt) String() string {
	return exprString(es.Expr)
}

func (bs *BlockStmt) String() string {
	if len(bs.Statements) == 0 {
		return "{\n}"
	}
	return "{\n" + bs.Inner() + "\n}"
}

// Inner renders the block's statements without the surrounding braces.
func (bs *BlockStmt) Inner() string {
	return joinStatements(bs.Statements)
}

// joinStatements puts one statement per line. An expression statement
// that is followed by another one keeps its semicolon, otherwise the next
// line could be read as its continuation.
func joinStatements(stmts []Stmt) string {
	var b strings.Builder
	for i, s := range stmts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.String())
		if _, ok := s.(*ExprStmt); ok && i < len(stmts)-1 {
			b.WriteString(";")
		}
	}
	return b.String()
}

func (i *Ident) String() string {
	return i.Value
}

func (il *IntegerLit) String() string {
	return strconv.FormatInt(il.Value, 10)
}

func (bl *BooleanLit) String() string {
	return strconv.FormatBool(bl.Value)
}

func (sl *StringLit) String() string {
	return Quote(sl.Value)
}

func (al *ArrayLit) String() string {
	return "[" + joinExprs(al.Elements) + "]"
}

func (hl *HashLit) String() string {
	pairs := make([]string, 0, len(hl.Pairs))
	for _, pair := range hl.Pairs {
		pairs = append(pairs, exprString(pair.Key)+": "+exprString(pair.Value))
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

func (fl *FunctionLit) String() string {
	params := make([]string, 0, len(fl.Parameters))
	for _, p := range fl.Parameters {
		params = append(params, p.String())
	}
	return fmt.Sprintf("fn(%s) %s", strings.Join(params, ", "), fl.Body.String())
}

func (pe *PrefixExpr) String() string {
	return "(" + pe.Operator + exprString(pe.Right) + ")"
}

func (ie *InfixExpr) String() string {
	return "(" + exprString(ie.Left) + " " + ie.Operator + " " + exprString(ie.Right) + ")"
}

func (ie *IfExpr) String() string {
	var b strings.Builder

	b.WriteString("if ")
	switch ie.Condition.(type) {
	case *PrefixExpr, *InfixExpr, *IndexExpr:
		b.WriteString(exprString(ie.Condition))
	default:
		b.WriteString("(" + exprString(ie.Condition) + ")")
	}
	b.WriteString(" ")
	b.WriteString(ie.Consequence.String())

	if ie.Alternative != nil {
		b.WriteString(" else ")
		b.WriteString(ie.Alternative.String())
	}

	return b.String()
}

func (ce *CallExpr) String() string {
	return exprString(ce.Function) + "(" + joinExprs(ce.Arguments) + ")"
}

func (ie *IndexExpr) String() string {
	return "(" + exprString(ie.Left) + "[" + exprString(ie.Index) + "])"
}

// Quote renders s as a string literal using the escapes the lexer reads.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, exprString(e))
	}
	return strings.Join(parts, ", ")
}

func exprString(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	return e.String()
}
