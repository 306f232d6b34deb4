package ast

import "monkey/token"

type NodeType int

const (
	PROGRAM NodeType = iota

	// Statements
	LET_STMT
	RETURN_STMT
	EXPR_STMT
	BLOCK_STMT

	// Expressions
	IDENT
	INTEGER_LIT
	BOOLEAN_LIT
	STRING_LIT
	ARRAY_LIT
	HASH_LIT
	FUNCTION_LIT
	PREFIX_EXPR
	INFIX_EXPR
	IF_EXPR
	CALL_EXPR
	INDEX_EXPR
)

var nodeTypeNames = [...]string{
	PROGRAM:      "PROGRAM",
	LET_STMT:     "LET_STMT",
	RETURN_STMT:  "RETURN_STMT",
	EXPR_STMT:    "EXPR_STMT",
	BLOCK_STMT:   "BLOCK_STMT",
	IDENT:        "IDENT",
	INTEGER_LIT:  "INTEGER_LIT",
	BOOLEAN_LIT:  "BOOLEAN_LIT",
	STRING_LIT:   "STRING_LIT",
	ARRAY_LIT:    "ARRAY_LIT",
	HASH_LIT:     "HASH_LIT",
	FUNCTION_LIT: "FUNCTION_LIT",
	PREFIX_EXPR:  "PREFIX_EXPR",
	INFIX_EXPR:   "INFIX_EXPR",
	IF_EXPR:      "IF_EXPR",
	CALL_EXPR:    "CALL_EXPR",
	INDEX_EXPR:   "INDEX_EXPR",
}

func (n NodeType) String() string {
	if n < 0 || int(n) >= len(nodeTypeNames) {
		return "NodeType(?)"
	}
	return nodeTypeNames[n]
}

// Program is the root of every parse.
type Program struct {
	Statements []Stmt
	Span       token.Span
}

type LetStmt struct {
	Name  *Ident
	Value Expr
	Span  token.Span
}

type ReturnStmt struct {
	Value Expr
	Span  token.Span
}

type ExprStmt struct {
	Expr Expr
	Span token.Span
}

type BlockStmt struct {
	Statements []Stmt
	Span       token.Span
}

type Ident struct {
	Value string
	Span  token.Span
}

type IntegerLit struct {
	Value int64
	Span  token.Span
}

type BooleanLit struct {
	Value bool
	Span  token.Span
}

type StringLit struct {
	Value string
	Span  token.Span
}

type ArrayLit struct {
	Elements []Expr
	Span     token.Span
}

type HashPair struct {
	Key   Expr
	Value Expr
}

// HashLit keeps pairs in source order so printing is deterministic.
type HashLit struct {
	Pairs []HashPair
	Span  token.Span
}

type FunctionLit struct {
	Parameters []*Ident
	Body       *BlockStmt
	Span       token.Span
}

type PrefixExpr struct {
	Operator string
	Right    Expr
	Span     token.Span
}

type InfixExpr struct {
	Left     Expr
	Operator string
	Right    Expr
	Span     token.Span
}

type IfExpr struct {
	Condition   Expr
	Consequence *BlockStmt
	Alternative *BlockStmt // nil without else
	Span        token.Span
}

type CallExpr struct {
	Function  Expr
	Arguments []Expr
	Span      token.Span
}

type IndexExpr struct {
	Left  Expr
	Index Expr
	Span  token.Span
}
