package ast

import "monkey/token"

type Node interface {
	NodeSpan() token.Span
	NodeType() NodeType
	String() string
}

func (p *Program) NodeSpan() token.Span { return p.Span }
func (*Program) NodeType() NodeType     { return PROGRAM }

func (ls *LetStmt) NodeSpan() token.Span { return ls.Span }
func (*LetStmt) NodeType() NodeType      { return LET_STMT }

func (rs *ReturnStmt) NodeSpan() token.Span { return rs.Span }
func (*ReturnStmt) NodeType() NodeType      { return RETURN_STMT }

func (es *ExprStmt) NodeSpan() token.Span { return es.Span }
func (*ExprStmt) NodeType() NodeType      { return EXPR_STMT }

func (bs *BlockStmt) NodeSpan() token.Span { return bs.Span }
func (*BlockStmt) NodeType() NodeType      { return BLOCK_STMT }

func (i *Ident) NodeSpan() token.Span { return i.Span }
func (*Ident) NodeType() NodeType     { return IDENT }

func (il *IntegerLit) NodeSpan() token.Span { return il.Span }
func (*IntegerLit) NodeType() NodeType      { return INTEGER_LIT }

func (bl *BooleanLit) NodeSpan() token.Span { return bl.Span }
func (*BooleanLit) NodeType() NodeType      { return BOOLEAN_LIT }

func (sl *StringLit) NodeSpan() token.Span { return sl.Span }
func (*StringLit) NodeType() NodeType      { return STRING_LIT }

func (al *ArrayLit) NodeSpan() token.Span { return al.Span }
func (*ArrayLit) NodeType() NodeType      { return ARRAY_LIT }

func (hl *HashLit) NodeSpan() token.Span { return hl.Span }
func (*HashLit) NodeType() NodeType      { return HASH_LIT }

func (fl *FunctionLit) NodeSpan() token.Span { return fl.Span }
func (*FunctionLit) NodeType() NodeType      { return FUNCTION_LIT }

func (pe *PrefixExpr) NodeSpan() token.Span { return pe.Span }
func (*PrefixExpr) NodeType() NodeType      { return PREFIX_EXPR }

func (ie *InfixExpr) NodeSpan() token.Span { return ie.Span }
func (*InfixExpr) NodeType() NodeType      { return INFIX_EXPR }

func (ie *IfExpr) NodeSpan() token.Span { return ie.Span }
func (*IfExpr) NodeType() NodeType      { return IF_EXPR }

func (ce *CallExpr) NodeSpan() token.Span { return ce.Span }
func (*CallExpr) NodeType() NodeType      { return CALL_EXPR }

func (ie *IndexExpr) NodeSpan() token.Span { return ie.Span }
func (*IndexExpr) NodeType() NodeType      { return INDEX_EXPR }
