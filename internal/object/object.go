package object

import (
	"strconv"
	"strings"

	"monkey/internal/ast"
)

type ObjectType string

const (
	INTEGER_OBJ      = "INTEGER"
	BOOLEAN_OBJ      = "BOOLEAN"
	STRING_OBJ       = "STRING"
	ARRAY_OBJ        = "ARRAY"
	HASH_OBJ         = "HASH"
	FUNCTION_OBJ     = "FUNCTION"
	BUILTIN_OBJ      = "BUILTIN"
	RETURN_VALUE_OBJ = "RETURN_VALUE"
	NULL_OBJ         = "NULL"
)

var (
	NULL  = &Null{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

type Object interface {
	Type() ObjectType
	Inspect() string
}

// Hashable values may be used as hash keys.
type Hashable interface {
	Object
	HashKey() HashKey
}

// HashKey is comparable, so it can key a Go map directly. Distinct values
// never share a key.
type HashKey struct {
	Type ObjectType
	Int  int64
	Text string
}

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return strconv.FormatInt(i.Value, 10) }
func (i *Integer) HashKey() HashKey { return HashKey{Type: i.Type(), Int: i.Value} }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }
func (b *Boolean) HashKey() HashKey {
	var v int64
	if b.Value {
		v = 1
	}
	return HashKey{Type: b.Type(), Int: v}
}

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }
func (s *String) HashKey() HashKey { return HashKey{Type: s.Type(), Text: s.Value} }

type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "null" }

type Array struct {
	Elements []Object
}

func (a *Array) Type() ObjectType { return ARRAY_OBJ }
func (a *Array) Inspect() string {
	elements := make([]string, 0, len(a.Elements))
	for _, e := range a.Elements {
		elements = append(elements, e.Inspect())
	}
	return "[" + strings.Join(elements, ", ") + "]"
}

type HashPair struct {
	Key   Object
	Value Object
}

// Hash remembers insertion order so Inspect is stable.
type Hash struct {
	Pairs map[HashKey]HashPair
	order []HashKey
}

func NewHash() *Hash {
	return &Hash{Pairs: make(map[HashKey]HashPair)}
}

func (h *Hash) Type() ObjectType { return HASH_OBJ }
func (h *Hash) Inspect() string {
	pairs := make([]string, 0, len(h.order))
	for _, k := range h.order {
		pair := h.Pairs[k]
		pairs = append(pairs, pair.Key.Inspect()+": "+pair.Value.Inspect())
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

// Set is only used while a hash literal is being built; an existing key
// keeps its position and takes the new value.
func (h *Hash) Set(key Hashable, value Object) {
	k := key.HashKey()
	if _, ok := h.Pairs[k]; !ok {
		h.order = append(h.order, k)
	}
	h.Pairs[k] = HashPair{Key: key, Value: value}
}

func (h *Hash) Get(key Hashable) (Object, bool) {
	pair, ok := h.Pairs[key.HashKey()]
	if !ok {
		return nil, false
	}
	return pair.Value, true
}

func (h *Hash) Len() int { return len(h.order) }

type Function struct {
	Parameters []*ast.Ident
	Body       *ast.BlockStmt
	Env        *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	params := make([]string, 0, len(f.Parameters))
	for _, p := range f.Parameters {
		params = append(params, p.String())
	}
	return "fn(" + strings.Join(params, ", ") + ") {\n" + f.Body.Inner() + "\n}"
}

// BuiltinFunction receives already evaluated arguments.
type BuiltinFunction func(args ...Object) (Object, error)

type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin function " + b.Name }

// ReturnValue carries a pending return up to the nearest function call.
type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() ObjectType { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string  { return rv.Value.Inspect() }

func NativeBool(b bool) *Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

// IsTruthy: false, null and 0 are falsy.
func IsTruthy(obj Object) bool {
	switch o := obj.(type) {
	case *Boolean:
		return o.Value
	case *Null:
		return false
	case *Integer:
		return o.Value != 0
	default:
		return true
	}
}
