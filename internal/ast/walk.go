package ast

// Walk visits node and its descendants depth-first in source order.
// Returning false from fn skips the children of that node.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		walkStmts(n.Statements, fn)
	case *BlockStmt:
		walkStmts(n.Statements, fn)
	case *LetStmt:
		Walk(n.Name, fn)
		walkExpr(n.Value, fn)
	case *ReturnStmt:
		walkExpr(n.Value, fn)
	case *ExprStmt:
		walkExpr(n.Expr, fn)
	case *ArrayLit:
		walkExprs(n.Elements, fn)
	case *HashLit:
		for _, pair := range n.Pairs {
			walkExpr(pair.Key, fn)
			walkExpr(pair.Value, fn)
		}
	case *FunctionLit:
		for _, p := range n.Parameters {
			Walk(p, fn)
		}
		Walk(n.Body, fn)
	case *PrefixExpr:
		walkExpr(n.Right, fn)
	case *InfixExpr:
		walkExpr(n.Left, fn)
		walkExpr(n.Right, fn)
	case *IfExpr:
		walkExpr(n.Condition, fn)
		Walk(n.Consequence, fn)
		if n.Alternative != nil {
			Walk(n.Alternative, fn)
		}
	case *CallExpr:
		walkExpr(n.Function, fn)
		walkExprs(n.Arguments, fn)
	case *IndexExpr:
		walkExpr(n.Left, fn)
		walkExpr(n.Index, fn)
	}
}

func walkStmts(stmts []Stmt, fn func(Node) bool) {
	for _, s := range stmts {
		Walk(s, fn)
	}
}

func walkExprs(exprs []Expr, fn func(Node) bool) {
	for _, e := range exprs {
		walkExpr(e, fn)
	}
}

// walkExpr guards against typed-nil interfaces from partial trees.
func walkExpr(e Expr, fn func(Node) bool) {
	if e != nil {
		Walk(e, fn)
	}
}

// Enclosing returns the innermost node whose span contains offset, or nil.
func Enclosing(root Node, offset int) Node {
	var found Node
	Walk(root, func(n Node) bool {
		s := n.NodeSpan()
		if offset < s.Start || offset >= s.End {
			return false
		}
		found = n
		return true
	})
	return found
}
