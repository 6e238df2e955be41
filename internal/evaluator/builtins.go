package evaluator

import (
	"fmt"

	"github.com/rill-lang/rill/internal/config"
)

// registerBuiltins wires the core builtins into the function table and
// the kernel types' instance scopes. Members registered on an instance
// scope receive the receiver as their first argument.
func registerBuiltins(e *Evaluator) {
	builtinType := &Builtin{Name: config.TypeFuncName, Fn: builtinTypeOf}
	builtinToS := &Builtin{Name: config.ToSFuncName, Fn: builtinToString}

	for _, t := range e.types {
		t.InstanceScope.Define(config.TypeFuncName, builtinType)
		t.InstanceScope.Define(config.ToSFuncName, builtinToS)
	}

	e.funcs.Define(config.TypeFuncName, builtinType)
	e.funcs.Define(config.ToSFuncName, builtinToS)
	e.funcs.Define(config.PrintFuncName, &Builtin{Name: config.PrintFuncName, Fn: builtinPrint})
	e.funcs.Define(config.PutsFuncName, &Builtin{Name: config.PutsFuncName, Fn: builtinPuts})
	e.funcs.Define(config.AssertFuncName, &Builtin{Name: config.AssertFuncName, Fn: builtinAssert})
	e.funcs.Define(config.AssertEqFuncName, &Builtin{Name: config.AssertEqFuncName, Fn: builtinAssertEq})
}

func builtinTypeOf(e *Evaluator, args []Object) (Object, *Error) {
	if len(args) != 1 {
		return nil, newError(ARITY_ERROR, "type expects 1 argument, got %d", len(args))
	}
	return e.TypeOf(args[0]), nil
}

func builtinToString(e *Evaluator, args []Object) (Object, *Error) {
	if len(args) != 1 {
		return nil, newError(ARITY_ERROR, "to_s expects 1 argument, got %d", len(args))
	}
	return &String{Value: stringify(args[0])}, nil
}

func builtinPrint(e *Evaluator, args []Object) (Object, *Error) {
	for i, arg := range args {
		if i > 0 {
			fmt.Fprint(e.Out, " ")
		}
		fmt.Fprint(e.Out, stringify(arg))
	}
	return NIL, nil
}

func builtinPuts(e *Evaluator, args []Object) (Object, *Error) {
	if len(args) == 0 {
		fmt.Fprintln(e.Out)
		return NIL, nil
	}
	for _, arg := range args {
		fmt.Fprintln(e.Out, stringify(arg))
	}
	return NIL, nil
}

func builtinAssert(e *Evaluator, args []Object) (Object, *Error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, newError(ARITY_ERROR, "assert expects 1 or 2 arguments, got %d", len(args))
	}
	if isTruthy(args[0]) {
		return TRUE, nil
	}
	message := "assertion failed"
	if len(args) == 2 {
		message = stringify(args[1])
	}
	return nil, &Error{Kind: ASSERTION_ERROR, Message: message, Left: args[0], Right: TRUE}
}

func builtinAssertEq(e *Evaluator, args []Object) (Object, *Error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, newError(ARITY_ERROR, "assert_eq expects 2 or 3 arguments, got %d", len(args))
	}
	if objectsEqual(args[0], args[1]) {
		return TRUE, nil
	}
	message := fmt.Sprintf("expected %s, got %s", args[1].Inspect(), args[0].Inspect())
	if len(args) == 3 {
		message = fmt.Sprintf("%s: %s", stringify(args[2]), message)
	}
	return nil, &Error{Kind: ASSERTION_ERROR, Message: message, Left: args[0], Right: args[1]}
}
