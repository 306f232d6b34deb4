package evaluator

import (
	"io"
	"os"

	"github.com/tliron/commonlog"

	"monkey/internal/ast"
	"monkey/internal/errors"
	"monkey/internal/object"
	"monkey/token"
)

var log = commonlog.GetLogger("monkey.evaluator")

// Evaluator walks the tree. It is not safe for concurrent use.
type Evaluator struct {
	out      io.Writer
	maxDepth int
	depth    int
	builtins map[string]*object.Builtin
}

type Option func(*Evaluator)

// WithOutput sets where puts writes. The default is stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Evaluator) { e.out = w }
}

// WithMaxDepth turns runaway recursion into a runtime error once more
// than n calls are active. Zero means no limit.
func WithMaxDepth(n int) Option {
	return func(e *Evaluator) { e.maxDepth = n }
}

func New(opts ...Option) *Evaluator {
	e := &Evaluator{out: os.Stdout}
	for _, opt := range opts {
		opt(e)
	}
	e.builtins = newBuiltins(e)
	return e
}

// Eval evaluates node with a default evaluator.
func Eval(node ast.Node, env *object.Environment) (object.Object, error) {
	return New().Eval(node, env)
}

// Eval evaluates node in env. A failed evaluation returns a nil object
// and an *Error.
func (e *Evaluator) Eval(node ast.Node, env *object.Environment) (object.Object, error) {
	e.depth = 0
	obj, err := e.eval(node, env)
	if err != nil {
		return nil, err
	}
	return unwrapReturnValue(obj), nil
}

// BuiltinNames lists the names resolved before the environment.
func BuiltinNames() []string {
	return append([]string(nil), builtinNames...)
}

func (e *Evaluator) eval(node ast.Node, env *object.Environment) (object.Object, *Error) {
	switch node := node.(type) {

	// Statements
	case *ast.Program:
		return e.evalProgram(node, env)

	case *ast.BlockStmt:
		return e.evalBlockStmt(node, env)

	case *ast.ExprStmt:
		return e.eval(node.Expr, env)

	case *ast.ReturnStmt:
		val, err := e.eval(node.Value, env)
		if err != nil {
			return nil, err
		}
		if isReturn(val) {
			return val, nil
		}
		return &object.ReturnValue{Value: val}, nil

	case *ast.LetStmt:
		val, err := e.eval(node.Value, env)
		if err != nil {
			return nil, err
		}
		if isReturn(val) {
			return val, nil
		}
		return env.Set(node.Name.Value, val), nil

	// Expressions
	case *ast.IntegerLit:
		return &object.Integer{Value: node.Value}, nil

	case *ast.BooleanLit:
		return object.NativeBool(node.Value), nil

	case *ast.StringLit:
		return &object.String{Value: node.Value}, nil

	case *ast.Ident:
		return e.evalIdent(node, env)

	case *ast.PrefixExpr:
		right, err := e.eval(node.Right, env)
		if err != nil {
			return nil, err
		}
		if isReturn(right) {
			return right, nil
		}
		return e.evalPrefixExpr(node, right)

	case *ast.InfixExpr:
		return e.evalInfixExpr(node, env)

	case *ast.IfExpr:
		return e.evalIfExpr(node, env)

	case *ast.FunctionLit:
		return &object.Function{Parameters: node.Parameters, Body: node.Body, Env: env}, nil

	case *ast.CallExpr:
		fn, err := e.eval(node.Function, env)
		if err != nil {
			return nil, err
		}
		if isReturn(fn) {
			return fn, nil
		}
		args, ret, err := e.evalExprs(node.Arguments, env)
		if err != nil {
			return nil, err
		}
		if ret != nil {
			return ret, nil
		}
		return e.applyFunction(node, fn, args)

	case *ast.ArrayLit:
		elements, ret, err := e.evalExprs(node.Elements, env)
		if err != nil {
			return nil, err
		}
		if ret != nil {
			return ret, nil
		}
		return &object.Array{Elements: elements}, nil

	case *ast.IndexExpr:
		left, err := e.eval(node.Left, env)
		if err != nil {
			return nil, err
		}
		if isReturn(left) {
			return left, nil
		}
		index, err := e.eval(node.Index, env)
		if err != nil {
			return nil, err
		}
		if isReturn(index) {
			return index, nil
		}
		return evalIndexExpr(node, left, index)

	case *ast.HashLit:
		return e.evalHashLit(node, env)
	}

	return nil, newError("", token.Span{}, "cannot evaluate %T", node)
}

func (e *Evaluator) evalProgram(program *ast.Program, env *object.Environment) (object.Object, *Error) {
	var result object.Object = object.NULL

	for _, stmt := range program.Statements {
		var err *Error
		result, err = e.eval(stmt, env)
		if err != nil {
			return nil, err
		}
		if rv, ok := result.(*object.ReturnValue); ok {
			return rv.Value, nil
		}
	}

	return result, nil
}

// evalBlockStmt hands a pending return up unchanged, so it leaves every
// enclosing block until a function call or the program unwraps it.
func (e *Evaluator) evalBlockStmt(block *ast.BlockStmt, env *object.Environment) (object.Object, *Error) {
	var result object.Object = object.NULL

	for _, stmt := range block.Statements {
		var err *Error
		result, err = e.eval(stmt, env)
		if err != nil {
			return nil, err
		}
		if result.Type() == object.RETURN_VALUE_OBJ {
			return result, nil
		}
	}

	return result, nil
}

func (e *Evaluator) evalIdent(node *ast.Ident, env *object.Environment) (object.Object, *Error) {
	if builtin, ok := e.builtins[node.Value]; ok {
		return builtin, nil
	}
	if val, ok := env.Get(node.Value); ok {
		return val, nil
	}

	err := newError(errors.ErrorIdentifierNotFound, node.Span, "identifier not found: %s", node.Value)
	candidates := append(env.Names(), builtinNames...)
	err.Suggestions = errors.DidYouMean(errors.FindSimilar(node.Value, candidates))
	return nil, err
}

func (e *Evaluator) evalPrefixExpr(node *ast.PrefixExpr, right object.Object) (object.Object, *Error) {
	switch node.Operator {
	case "!":
		return object.NativeBool(!object.IsTruthy(right)), nil
	case "-":
		if i, ok := right.(*object.Integer); ok {
			return &object.Integer{Value: -i.Value}, nil
		}
	}
	return nil, newError(errors.ErrorUnknownOperator, node.Span, "unknown operator: %s%s", node.Operator, right.Type())
}

func (e *Evaluator) evalInfixExpr(node *ast.InfixExpr, env *object.Environment) (object.Object, *Error) {
	left, err := e.eval(node.Left, env)
	if err != nil {
		return nil, err
	}
	if isReturn(left) {
		return left, nil
	}

	switch node.Operator {
	case "&&":
		if !object.IsTruthy(left) {
			return object.FALSE, nil
		}
		return e.evalTruthiness(node.Right, env)
	case "||":
		if object.IsTruthy(left) {
			return object.TRUE, nil
		}
		return e.evalTruthiness(node.Right, env)
	}

	right, err := e.eval(node.Right, env)
	if err != nil {
		return nil, err
	}
	if isReturn(right) {
		return right, nil
	}

	switch {
	case left.Type() != right.Type():
		return nil, typeMismatch(node.Span, node.Operator, left, right)
	case left.Type() == object.INTEGER_OBJ:
		return evalIntegerInfixExpr(node, left.(*object.Integer).Value, right.(*object.Integer).Value)
	case left.Type() == object.BOOLEAN_OBJ:
		return evalBooleanInfixExpr(node, left, right)
	case left.Type() == object.STRING_OBJ && node.Operator == "+":
		return &object.String{Value: left.(*object.String).Value + right.(*object.String).Value}, nil
	}

	return nil, unknownInfixOperator(node.Span, node.Operator, left, right)
}

func (e *Evaluator) evalTruthiness(node ast.Expr, env *object.Environment) (object.Object, *Error) {
	val, err := e.eval(node, env)
	if err != nil {
		return nil, err
	}
	if isReturn(val) {
		return val, nil
	}
	return object.NativeBool(object.IsTruthy(val)), nil
}

func evalIntegerInfixExpr(node *ast.InfixExpr, l, r int64) (object.Object, *Error) {
	switch node.Operator {
	case "+":
		return &object.Integer{Value: l + r}, nil
	case "-":
		return &object.Integer{Value: l - r}, nil
	case "*":
		return &object.Integer{Value: l * r}, nil
	case "/":
		if r == 0 {
			return nil, newError(errors.ErrorDivisionByZero, node.Span, "division by zero")
		}
		return &object.Integer{Value: l / r}, nil
	case "<":
		return object.NativeBool(l < r), nil
	case ">":
		return object.NativeBool(l > r), nil
	case "<=":
		return object.NativeBool(l <= r), nil
	case ">=":
		return object.NativeBool(l >= r), nil
	case "==":
		return object.NativeBool(l == r), nil
	case "!=":
		return object.NativeBool(l != r), nil
	}
	return nil, newError(errors.ErrorUnknownOperator, node.Span,
		"unknown operator: %s %s %s", object.INTEGER_OBJ, node.Operator, object.INTEGER_OBJ)
}

// Booleans are singletons, so identity is equality.
func evalBooleanInfixExpr(node *ast.InfixExpr, left, right object.Object) (object.Object, *Error) {
	switch node.Operator {
	case "==":
		return object.NativeBool(left == right), nil
	case "!=":
		return object.NativeBool(left != right), nil
	}
	return nil, unknownInfixOperator(node.Span, node.Operator, left, right)
}

func (e *Evaluator) evalIfExpr(node *ast.IfExpr, env *object.Environment) (object.Object, *Error) {
	cond, err := e.eval(node.Condition, env)
	if err != nil {
		return nil, err
	}
	if isReturn(cond) {
		return cond, nil
	}

	if object.IsTruthy(cond) {
		return e.eval(node.Consequence, env)
	} else if node.Alternative != nil {
		return e.eval(node.Alternative, env)
	}
	return object.NULL, nil
}

// evalExprs evaluates left to right. A return met on the way stops the
// list and comes back as ret.
func (e *Evaluator) evalExprs(exprs []ast.Expr, env *object.Environment) (result []object.Object, ret object.Object, err *Error) {
	result = make([]object.Object, 0, len(exprs))

	for _, expr := range exprs {
		val, err := e.eval(expr, env)
		if err != nil {
			return nil, nil, err
		}
		if isReturn(val) {
			return nil, val, nil
		}
		result = append(result, val)
	}

	return result, nil, nil
}

func (e *Evaluator) applyFunction(call *ast.CallExpr, fn object.Object, args []object.Object) (object.Object, *Error) {
	switch fn := fn.(type) {
	case *object.Function:
		if len(fn.Parameters) != len(args) {
			err := wrongArgumentCount(len(fn.Parameters), len(args))
			err.Span = call.Span
			return nil, err
		}

		if e.maxDepth > 0 && e.depth >= e.maxDepth {
			return nil, newError(errors.ErrorCallDepthExceeded, call.Span, "maximum call depth exceeded: %d", e.maxDepth)
		}
		e.depth++
		defer func() { e.depth-- }()

		log.Debugf("call %s with %d argument(s) at depth %d", call.Function.String(), len(args), e.depth)

		result, err := e.eval(fn.Body, extendFunctionEnv(fn, args))
		if err != nil {
			return nil, err
		}
		return unwrapReturnValue(result), nil

	case *object.Builtin:
		result, err := fn.Fn(args...)
		if err != nil {
			rtErr, ok := err.(*Error)
			if !ok {
				rtErr = builtinError(errors.ErrorInvalidArgument, "%s", err.Error())
			}
			if rtErr.Span == (token.Span{}) {
				rtErr.Span = call.Span
			}
			return nil, rtErr
		}
		return result, nil
	}

	return nil, newError(errors.ErrorNotAFunction, call.Function.NodeSpan(), "not a function: %s", fn.Type())
}

// extendFunctionEnv makes the call's scope a child of the scope the
// function was defined in, not of the caller's.
func extendFunctionEnv(fn *object.Function, args []object.Object) *object.Environment {
	env := object.NewEnclosedEnvironment(fn.Env)
	for i, param := range fn.Parameters {
		env.Set(param.Value, args[i])
	}
	return env
}

// isReturn reports a pending return. Expressions hand it up untouched so
// it never ends up inside a value or a binding.
func isReturn(obj object.Object) bool {
	_, ok := obj.(*object.ReturnValue)
	return ok
}

func unwrapReturnValue(obj object.Object) object.Object {
	if rv, ok := obj.(*object.ReturnValue); ok {
		return rv.Value
	}
	return obj
}

func evalIndexExpr(node *ast.IndexExpr, left, index object.Object) (object.Object, *Error) {
	switch {
	case left.Type() == object.ARRAY_OBJ && index.Type() == object.INTEGER_OBJ:
		elements := left.(*object.Array).Elements
		i := index.(*object.Integer).Value
		if i < 0 || i >= int64(len(elements)) {
			return object.NULL, nil
		}
		return elements[i], nil

	case left.Type() == object.HASH_OBJ:
		key, ok := index.(object.Hashable)
		if !ok {
			return nil, newError(errors.ErrorUnusableHashKey, node.Index.NodeSpan(), "unusable as hash key: %s", index.Type())
		}
		if val, ok := left.(*object.Hash).Get(key); ok {
			return val, nil
		}
		return object.NULL, nil
	}

	return nil, newError(errors.ErrorIndexNotSupported, node.Span,
		"index operator not supported: %s[%s]", left.Type(), index.Type())
}

func (e *Evaluator) evalHashLit(node *ast.HashLit, env *object.Environment) (object.Object, *Error) {
	hash := object.NewHash()

	for _, pair := range node.Pairs {
		key, err := e.eval(pair.Key, env)
		if err != nil {
			return nil, err
		}
		if isReturn(key) {
			return key, nil
		}

		hashKey, ok := key.(object.Hashable)
		if !ok {
			return nil, newError(errors.ErrorUnusableHashKey, pair.Key.NodeSpan(), "unusable as hash key: %s", key.Type())
		}

		value, err := e.eval(pair.Value, env)
		if err != nil {
			return nil, err
		}
		if isReturn(value) {
			return value, nil
		}

		hash.Set(hashKey, value)
	}

	return hash, nil
}
