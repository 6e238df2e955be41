package evaluator

import (
	"fmt"
	"io"
	"os"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/config"
)

// Evaluator is a single-threaded tree-walking interpreter instance. The
// symbol table, function table and kernel type registry are owned by the
// instance; values never cross instances.
type Evaluator struct {
	Out    io.Writer
	ErrOut io.Writer

	// MaxDepth bounds the nesting depth of eval calls, preventing a Go
	// stack overflow from runaway recursion in user programs.
	MaxDepth int

	kernel *Scope
	types  map[string]*Type
	symtab *SymbolTable
	funcs  *FunctionTable
	stack  *Stack

	evalDepth int
}

func New() *Evaluator {
	kernel, types := newKernelScope()
	e := &Evaluator{
		Out:      os.Stdout,
		ErrOut:   os.Stderr,
		MaxDepth: config.MaxEvalDepth,
		kernel:   kernel,
		types:    types,
		symtab:   NewSymbolTable(kernel),
		funcs:    NewFunctionTable(),
		stack:    NewStack(),
	}
	registerBuiltins(e)
	return e
}

// Run evaluates a program and returns its result. With captureErrors the
// error is formatted to ErrOut and the call returns normally; otherwise
// the error propagates to the caller. Either way the scope stack and
// operand stack are restored to their pre-call state on failure.
func (e *Evaluator) Run(program *ast.Program, captureErrors bool) (Object, error) {
	baseStack := e.stack.Len()
	baseDepth := e.symtab.Depth()

	if err := e.eval(program); err != nil {
		e.symtab.PopTo(baseDepth)
		e.stack.Truncate(baseStack)
		if captureErrors {
			e.reportError(program.File, err)
			return NIL, nil
		}
		return nil, err
	}

	return e.stack.Pop(), nil
}

func (e *Evaluator) reportError(file string, err *Error) {
	if file == "" {
		file = "<input>"
	}
	fmt.Fprintf(e.ErrOut, "%s:%d:%d: %s: %s\n", file, err.Line, err.Column, err.Kind, err.Message)
}

// eval dispatches one node, guarding recursion depth and stamping the
// node's source location onto errors that lack one.
func (e *Evaluator) eval(node ast.Node) *Error {
	e.evalDepth++
	defer func() { e.evalDepth-- }()
	if e.evalDepth > e.MaxDepth {
		return newError(RECURSION_LIMIT, "maximum recursion depth exceeded")
	}

	err := e.evalCore(node)
	if err != nil && err.Line == 0 && node != nil {
		tok := node.GetToken()
		err.Line = tok.Line
		err.Column = tok.Column
	}
	return err
}

// evalCore defines the stack effect of every node kind. Each expression
// leaves exactly one value on the operand stack.
func (e *Evaluator) evalCore(node ast.Node) *Error {
	switch node := node.(type) {
	case *ast.Program:
		return e.evalBlock(node.Statements)
	case *ast.Block:
		return e.evalBlock(node.Statements)
	case *ast.ExpressionStatement:
		return e.eval(node.Expression)

	// Literals
	case *ast.IntegerLiteral:
		e.stack.Push(&Integer{Value: node.Value})
		return nil
	case *ast.FloatLiteral:
		e.stack.Push(&Float{Value: node.Value})
		return nil
	case *ast.StringLiteral:
		e.stack.Push(&String{Value: node.Value})
		return nil
	case *ast.SymbolLiteral:
		e.stack.Push(&Symbol{Name: node.Value})
		return nil
	case *ast.BooleanLiteral:
		e.stack.Push(nativeBoolToBooleanObject(node.Value))
		return nil
	case *ast.NilLiteral:
		e.stack.Push(NIL)
		return nil
	case *ast.ListLiteral:
		return e.evalListLiteral(node)
	case *ast.MapLiteral:
		return e.evalMapLiteral(node)

	// References
	case *ast.VariableReference:
		obj, ok := e.symtab.Get(node.Name)
		if !ok {
			return newError(UNDEFINED_VARIABLE, "undefined variable '%s'", node.Name)
		}
		e.stack.Push(obj)
		return nil
	case *ast.ConstReference:
		obj, ok := e.symtab.Get(node.Name)
		if !ok {
			obj, ok = e.kernel.Get(node.Name)
		}
		if !ok {
			return newError(UNDEFINED_VARIABLE, "undefined constant '%s'", node.Name)
		}
		e.stack.Push(obj)
		return nil

	// Assignment and match
	case *ast.SimpleAssignment:
		if err := e.eval(node.Value); err != nil {
			return err
		}
		// Bind to the value on top of the stack: a reference, not a copy.
		e.symtab.Set(node.Name, e.stack.Top(), false)
		return nil
	case *ast.MatchAssign:
		if err := e.eval(node.Value); err != nil {
			return err
		}
		if err := e.matchValue(node.Pattern, e.stack.Top()); err != nil {
			e.stack.Pop()
			return err
		}
		return nil

	// Operators
	case *ast.UnaryExpression:
		return e.evalUnaryExpression(node)
	case *ast.LogicalExpression:
		return e.evalLogicalExpression(node)
	case *ast.EqualityExpression:
		return e.evalEqualityExpression(node)
	case *ast.RelationalExpression:
		return e.evalRelationalExpression(node)
	case *ast.BinaryExpression:
		return e.evalArithmeticExpression(node)

	// Functions
	case *ast.FunctionDefinition:
		fn := &Functor{
			Name:       node.Name,
			Parameters: node.Parameters,
			Body:       node.Body,
			Line:       node.Token.Line,
			Column:     node.Token.Column,
		}
		e.funcs.Define(node.Name, fn)
		e.stack.Push(fn)
		return nil
	case *ast.FunctionCall:
		return e.evalFunctionCall(node)
	case *ast.MemberExpression:
		return e.evalMemberExpression(node)

	// Control flow
	case *ast.UnlessExpression:
		return e.evalUnlessExpression(node)
	case *ast.WhileExpression:
		return e.evalWhileExpression(node)
	case *ast.ReturnStatement:
		if node.Value != nil {
			if err := e.eval(node.Value); err != nil {
				return err
			}
		} else {
			e.stack.Push(NIL)
		}
		return newError(RETURN_SIGNAL, "return outside of function")
	case *ast.BreakStatement:
		return newError(BREAK_SIGNAL, "break outside of loop")
	case *ast.NextStatement:
		return newError(NEXT_SIGNAL, "next outside of loop")

	case *ast.InterpolationExpression:
		// Only meaningful in pattern position; evaluated standalone it is
		// transparent.
		return e.eval(node.Expression)
	}

	return newError(UNSUPPORTED_NODE, "unsupported node %T", node)
}

// evalBlock evaluates children in order, discarding all but the last
// result. An empty block evaluates to nil.
func (e *Evaluator) evalBlock(stmts []ast.Statement) *Error {
	if len(stmts) == 0 {
		e.stack.Push(NIL)
		return nil
	}
	for i, stmt := range stmts {
		if err := e.eval(stmt); err != nil {
			return err
		}
		if i < len(stmts)-1 {
			e.stack.Pop()
		}
	}
	return nil
}

func (e *Evaluator) evalListLiteral(node *ast.ListLiteral) *Error {
	var elems []ast.Expression
	if node.Elements != nil {
		elems = node.Elements.Expressions
	}
	for _, el := range elems {
		if _, ok := el.(*ast.SplatPattern); ok {
			return newError(UNSUPPORTED_OPERATION, "splat is only allowed in patterns")
		}
		if err := e.eval(el); err != nil {
			return err
		}
	}
	items := make([]Object, len(elems))
	for i := len(elems) - 1; i >= 0; i-- {
		items[i] = e.stack.Pop()
	}
	e.stack.Push(NewList(items))
	return nil
}

func (e *Evaluator) evalMapLiteral(node *ast.MapLiteral) *Error {
	m := NewMap()
	for _, pair := range node.Pairs {
		if err := e.eval(pair.Value); err != nil {
			return err
		}
		m.Set(pair.Key, e.stack.Pop())
	}
	e.stack.Push(m)
	return nil
}

func (e *Evaluator) evalUnlessExpression(node *ast.UnlessExpression) *Error {
	if err := e.eval(node.Condition); err != nil {
		return err
	}
	cond := e.stack.Pop()
	if !isTruthy(cond) {
		return e.evalBlock(node.Consequence.Statements)
	}
	if node.Alternative != nil {
		return e.evalBlock(node.Alternative.Statements)
	}
	e.stack.Push(NIL)
	return nil
}

func (e *Evaluator) evalWhileExpression(node *ast.WhileExpression) *Error {
	base := e.stack.Len()
	for {
		if err := e.eval(node.Condition); err != nil {
			return err
		}
		cond := isTruthy(e.stack.Pop())
		if node.Until {
			cond = !cond
		}
		if !cond {
			break
		}

		if err := e.evalBlock(node.Body.Statements); err != nil {
			// break/next abandon the iteration's partial results; any
			// other error (including a return, whose value rides the
			// stack top) unwinds past this loop untouched.
			if err.Kind == BREAK_SIGNAL {
				e.stack.Truncate(base)
				break
			}
			if err.Kind == NEXT_SIGNAL {
				e.stack.Truncate(base)
				continue
			}
			return err
		}
		e.stack.Pop() // discard the iteration's result
	}
	e.stack.Push(NIL)
	return nil
}

func (e *Evaluator) evalFunctionCall(node *ast.FunctionCall) *Error {
	switch callee := node.Callee.(type) {
	case *ast.VariableReference:
		fn, ok := e.funcs.Lookup(callee.Name)
		if !ok {
			return newError(CALL_TARGET_ERROR, "undefined function '%s'", callee.Name)
		}
		argc, err := e.evalArguments(node.Arguments)
		if err != nil {
			return err
		}
		return e.apply(fn, argc)

	case *ast.MemberExpression:
		// The receiver becomes the implicit first argument.
		if err := e.eval(callee.Receiver); err != nil {
			return err
		}
		recv := e.stack.Top()
		member, merr := e.memberLookup(recv, callee.Member)
		if merr != nil {
			e.stack.Pop()
			return merr
		}
		switch member.(type) {
		case *Functor, *Builtin:
		default:
			e.stack.Pop()
			return newError(CALL_TARGET_ERROR, "'%s' on %s is not callable", callee.Member, recv.TypeName())
		}
		argc, err := e.evalArguments(node.Arguments)
		if err != nil {
			return err
		}
		return e.apply(member, argc+1)
	}

	return newError(CALL_TARGET_ERROR, "call target must be an identifier")
}

func (e *Evaluator) evalArguments(args *ast.ExpressionList) (int, *Error) {
	if args == nil {
		return 0, nil
	}
	for _, arg := range args.Expressions {
		if err := e.eval(arg); err != nil {
			return 0, err
		}
	}
	return len(args.Expressions), nil
}

// apply invokes a callable with argc arguments already on the stack,
// leaving the result on top.
func (e *Evaluator) apply(fn Object, argc int) *Error {
	switch fn := fn.(type) {
	case *Builtin:
		args := make([]Object, argc)
		for i := argc - 1; i >= 0; i-- {
			args[i] = e.stack.Pop()
		}
		result, err := fn.Fn(e, args)
		if err != nil {
			return err
		}
		if result == nil {
			result = NIL
		}
		e.stack.Push(result)
		return nil
	case *Functor:
		return e.applyFunctor(fn, argc)
	}
	return newError(CALL_TARGET_ERROR, "%s is not callable", fn.TypeName())
}

func (e *Evaluator) applyFunctor(fn *Functor, argc int) *Error {
	params := fn.Parameters
	splat := len(params) > 0 && params[len(params)-1].Splat
	fixed := len(params)
	if splat {
		fixed--
	}

	if splat {
		if argc < fixed {
			return newError(ARITY_ERROR, "wrong number of arguments for %s: expected at least %d, got %d", fn.Name, fixed, argc)
		}
	} else if argc != len(params) {
		return newError(ARITY_ERROR, "wrong number of arguments for %s: expected %d, got %d", fn.Name, len(params), argc)
	}

	// The splat surplus sits on top of the stack; collect it first.
	var rest []Object
	if splat {
		n := argc - fixed
		rest = make([]Object, n)
		for i := n - 1; i >= 0; i-- {
			rest[i] = e.stack.Pop()
		}
	}

	e.symtab.Push(true)
	defer e.symtab.Pop()

	// Pop arguments in reverse into the formal parameter names.
	for i := fixed - 1; i >= 0; i-- {
		e.symtab.Set(params[i].Name, e.stack.Pop(), true)
	}
	if splat {
		e.symtab.Set(params[len(params)-1].Name, NewList(rest), true)
	}

	base := e.stack.Len()
	if err := e.evalBlock(fn.Body.Statements); err != nil {
		if err.Kind == RETURN_SIGNAL {
			result := e.stack.Pop()
			e.stack.Truncate(base)
			e.stack.Push(result)
			return nil
		}
		return err
	}

	result := e.stack.Pop()
	e.stack.Truncate(base)
	e.stack.Push(result)
	return nil
}

func (e *Evaluator) evalMemberExpression(node *ast.MemberExpression) *Error {
	if err := e.eval(node.Receiver); err != nil {
		return err
	}
	recv := e.stack.Pop()
	member, err := e.memberLookup(recv, node.Member)
	if err != nil {
		return err
	}

	// A callable member reads as a zero-argument method call.
	switch member.(type) {
	case *Functor, *Builtin:
		e.stack.Push(recv)
		return e.apply(member, 1)
	}
	e.stack.Push(member)
	return nil
}

func (e *Evaluator) memberLookup(recv Object, name string) (Object, *Error) {
	obj, ok := e.ScopeOf(recv).Get(name)
	if !ok {
		return nil, newError(UNDEFINED_VARIABLE, "undefined member '%s' for %s", name, recv.TypeName())
	}
	return obj, nil
}
