package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monkey/internal/ast"
)

func TestStringHashKey(t *testing.T) {
	hello1 := &String{Value: "Hello World"}
	hello2 := &String{Value: "Hello World"}
	diff1 := &String{Value: "My name is johnny"}

	assert.Equal(t, hello1.HashKey(), hello2.HashKey())
	assert.NotEqual(t, hello1.HashKey(), diff1.HashKey())
}

func TestHashKeysDoNotCollideAcrossTypes(t *testing.T) {
	one := &Integer{Value: 1}
	yes := &Boolean{Value: true}
	str := &String{Value: "1"}

	assert.NotEqual(t, one.HashKey(), yes.HashKey())
	assert.NotEqual(t, one.HashKey(), str.HashKey())
	assert.Equal(t, TRUE.HashKey(), yes.HashKey())
	assert.NotEqual(t, TRUE.HashKey(), FALSE.HashKey())
}

func TestInspect(t *testing.T) {
	tests := []struct {
		obj      Object
		expected string
	}{
		{&Integer{Value: -12}, "-12"},
		{TRUE, "true"},
		{FALSE, "false"},
		{&String{Value: "verbatim \"text\""}, `verbatim "text"`},
		{NULL, "null"},
		{&Array{Elements: []Object{&Integer{Value: 1}, &String{Value: "a"}}}, "[1, a]"},
		{&Array{}, "[]"},
		{&ReturnValue{Value: &Integer{Value: 3}}, "3"},
		{&Builtin{Name: "len"}, "builtin function len"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.obj.Inspect())
	}
}

func TestHashKeepsInsertionOrder(t *testing.T) {
	h := NewHash()
	h.Set(&String{Value: "b"}, &Integer{Value: 2})
	h.Set(&Integer{Value: 1}, TRUE)
	h.Set(&String{Value: "b"}, &Integer{Value: 3})

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "{b: 3, 1: true}", h.Inspect())

	v, ok := h.Get(&String{Value: "b"})
	require.True(t, ok)
	assert.Equal(t, int64(3), v.(*Integer).Value)

	_, ok = h.Get(FALSE)
	assert.False(t, ok)
}

func TestFunctionInspect(t *testing.T) {
	fn := &Function{
		Parameters: []*ast.Ident{{Value: "x"}},
		Body: &ast.BlockStmt{Statements: []ast.Stmt{
			&ast.ExprStmt{Expr: &ast.InfixExpr{
				Left:     &ast.Ident{Value: "x"},
				Operator: "+",
				Right:    &ast.IntegerLit{Value: 2},
			}},
		}},
	}

	assert.Equal(t, "fn(x) {\n(x + 2)\n}", fn.Inspect())
}

func TestIsTruthy(t *testing.T) {
	assert.False(t, IsTruthy(FALSE))
	assert.False(t, IsTruthy(NULL))
	assert.False(t, IsTruthy(&Integer{Value: 0}))

	assert.True(t, IsTruthy(TRUE))
	assert.True(t, IsTruthy(&Integer{Value: -1}))
	assert.True(t, IsTruthy(&String{}))
	assert.True(t, IsTruthy(&Array{}))
}

func TestEnvironmentScopes(t *testing.T) {
	root := NewEnvironment()
	root.Set("a", &Integer{Value: 1})

	child := NewEnclosedEnvironment(root)
	child.Set("b", &Integer{Value: 2})

	v, ok := child.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", v.Inspect())

	_, ok = root.Get("b")
	assert.False(t, ok, "inner bindings must not leak outward")

	child.Set("a", &Integer{Value: 10})
	v, _ = root.Get("a")
	assert.Equal(t, "1", v.Inspect(), "set binds in the current scope only")

	root.Set("c", TRUE)
	_, ok = child.Get("c")
	assert.True(t, ok, "later bindings in an outer scope are visible")

	assert.Equal(t, []string{"a", "b", "c"}, child.Names())
	assert.Same(t, root, child.Outer())
}
