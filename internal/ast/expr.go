package ast

type Expr interface {
	Node
	isExpr()
}

func (*Ident) isExpr() {}

func (*IntegerLit) isExpr() {}

func (*BooleanLit) isExpr() {}

func (*StringLit) isExpr() {}

func (*ArrayLit) isExpr() {}

func (*HashLit) isExpr() {}

func (*FunctionLit) isExpr() {}

func (*PrefixExpr) isExpr() {}

func (*InfixExpr) isExpr() {}

func (*IfExpr) isExpr() {}

func (*CallExpr) isExpr() {}

func (*IndexExpr) isExpr() {}

type Stmt interface {
	Node
	isStmt()
}

func (*LetStmt) isStmt() {}

func (*ReturnStmt) isStmt() {}

func (*ExprStmt) isStmt() {}

func (*BlockStmt) isStmt() {}
