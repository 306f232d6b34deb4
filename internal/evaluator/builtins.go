package evaluator

import (
	"fmt"
	"unicode/utf8"

	"monkey/internal/errors"
	"monkey/internal/object"
)

var builtinNames = []string{"len", "first", "last", "rest", "push", "puts"}

func newBuiltins(e *Evaluator) map[string]*object.Builtin {
	fns := map[string]object.BuiltinFunction{
		"len":   builtinLen,
		"first": builtinFirst,
		"last":  builtinLast,
		"rest":  builtinRest,
		"push":  builtinPush,
		"puts":  e.builtinPuts,
	}

	builtins := make(map[string]*object.Builtin, len(fns))
	for name, fn := range fns {
		builtins[name] = &object.Builtin{Name: name, Fn: fn}
	}
	return builtins
}

func builtinLen(args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, wrongArgumentCount(1, len(args))
	}

	switch arg := args[0].(type) {
	case *object.String:
		return &object.Integer{Value: int64(utf8.RuneCountInString(arg.Value))}, nil
	case *object.Array:
		return &object.Integer{Value: int64(len(arg.Elements))}, nil
	}
	return nil, builtinError(errors.ErrorInvalidArgument, "argument to `len` not supported, got %s", args[0].Type())
}

func arrayArg(name string, args []object.Object, want int) (*object.Array, error) {
	if len(args) != want {
		return nil, wrongArgumentCount(want, len(args))
	}
	arr, ok := args[0].(*object.Array)
	if !ok {
		return nil, builtinError(errors.ErrorInvalidArgument, "argument to `%s` must be ARRAY, got %s", name, args[0].Type())
	}
	return arr, nil
}

func builtinFirst(args ...object.Object) (object.Object, error) {
	arr, err := arrayArg("first", args, 1)
	if err != nil {
		return nil, err
	}
	if len(arr.Elements) == 0 {
		return object.NULL, nil
	}
	return arr.Elements[0], nil
}

func builtinLast(args ...object.Object) (object.Object, error) {
	arr, err := arrayArg("last", args, 1)
	if err != nil {
		return nil, err
	}
	if len(arr.Elements) == 0 {
		return object.NULL, nil
	}
	return arr.Elements[len(arr.Elements)-1], nil
}

func builtinRest(args ...object.Object) (object.Object, error) {
	arr, err := arrayArg("rest", args, 1)
	if err != nil {
		return nil, err
	}
	if len(arr.Elements) <= 1 {
		return &object.Array{Elements: []object.Object{}}, nil
	}
	rest := make([]object.Object, len(arr.Elements)-1)
	copy(rest, arr.Elements[1:])
	return &object.Array{Elements: rest}, nil
}

// builtinPush never touches its argument; arrays are values.
func builtinPush(args ...object.Object) (object.Object, error) {
	arr, err := arrayArg("push", args, 2)
	if err != nil {
		return nil, err
	}
	elements := make([]object.Object, len(arr.Elements), len(arr.Elements)+1)
	copy(elements, arr.Elements)
	return &object.Array{Elements: append(elements, args[1])}, nil
}

func (e *Evaluator) builtinPuts(args ...object.Object) (object.Object, error) {
	for _, arg := range args {
		if _, err := fmt.Fprintln(e.out, arg.Inspect()); err != nil {
			return nil, builtinError(errors.ErrorInvalidArgument, "puts: %v", err)
		}
	}
	return object.NULL, nil
}
