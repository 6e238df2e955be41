package evaluator

import (
	"math"
	"strings"

	"github.com/rill-lang/rill/internal/ast"
)

func (e *Evaluator) evalUnaryExpression(node *ast.UnaryExpression) *Error {
	if err := e.eval(node.Right); err != nil {
		return err
	}
	right := e.stack.Pop()

	switch node.Operator {
	case "!":
		e.stack.Push(nativeBoolToBooleanObject(!isTruthy(right)))
		return nil
	case "-":
		switch right := right.(type) {
		case *Integer:
			e.stack.Push(&Integer{Value: -right.Value})
			return nil
		case *Float:
			e.stack.Push(&Float{Value: -right.Value})
			return nil
		}
		return newError(UNSUPPORTED_OPERATION, "'-' is not supported for %s", right.TypeName())
	}
	return newError(UNSUPPORTED_OPERATION, "unknown unary operator '%s'", node.Operator)
}

// evalLogicalExpression short-circuits: the right operand is only
// evaluated when the left does not already decide the result. The result
// is the deciding operand, per the truthiness rules.
func (e *Evaluator) evalLogicalExpression(node *ast.LogicalExpression) *Error {
	if err := e.eval(node.Left); err != nil {
		return err
	}
	left := e.stack.Pop()

	switch node.Operator {
	case "&&":
		if !isTruthy(left) {
			e.stack.Push(left)
			return nil
		}
	case "||":
		if isTruthy(left) {
			e.stack.Push(left)
			return nil
		}
	default:
		return newError(UNSUPPORTED_OPERATION, "unknown logical operator '%s'", node.Operator)
	}

	return e.eval(node.Right)
}

func (e *Evaluator) evalEqualityExpression(node *ast.EqualityExpression) *Error {
	if err := e.eval(node.Left); err != nil {
		return err
	}
	if err := e.eval(node.Right); err != nil {
		return err
	}
	right := e.stack.Pop()
	left := e.stack.Pop()

	equal := objectsEqual(left, right)
	if node.Operator == "!=" {
		equal = !equal
	}
	e.stack.Push(nativeBoolToBooleanObject(equal))
	return nil
}

func (e *Evaluator) evalRelationalExpression(node *ast.RelationalExpression) *Error {
	if err := e.eval(node.Left); err != nil {
		return err
	}
	if err := e.eval(node.Right); err != nil {
		return err
	}
	right := e.stack.Pop()
	left := e.stack.Pop()

	if isNumeric(left) && isNumeric(right) {
		l, r := numericValue(left), numericValue(right)
		e.stack.Push(compareOrdered(node.Operator, l, r))
		return nil
	}
	if isString(left) && isString(right) {
		e.stack.Push(compareOrderedStrings(node.Operator, left.(*String).Value, right.(*String).Value))
		return nil
	}
	return newError(UNSUPPORTED_OPERATION, "'%s' is not supported for %s and %s",
		node.Operator, left.TypeName(), right.TypeName())
}

func compareOrdered(op string, l, r float64) *Boolean {
	switch op {
	case "<":
		return nativeBoolToBooleanObject(l < r)
	case "<=":
		return nativeBoolToBooleanObject(l <= r)
	case ">":
		return nativeBoolToBooleanObject(l > r)
	default:
		return nativeBoolToBooleanObject(l >= r)
	}
}

func compareOrderedStrings(op string, l, r string) *Boolean {
	switch op {
	case "<":
		return nativeBoolToBooleanObject(l < r)
	case "<=":
		return nativeBoolToBooleanObject(l <= r)
	case ">":
		return nativeBoolToBooleanObject(l > r)
	default:
		return nativeBoolToBooleanObject(l >= r)
	}
}

func (e *Evaluator) evalArithmeticExpression(node *ast.BinaryExpression) *Error {
	if err := e.eval(node.Left); err != nil {
		return err
	}
	if err := e.eval(node.Right); err != nil {
		return err
	}
	right := e.stack.Pop()
	left := e.stack.Pop()

	result, err := e.evalBinaryOp(node.Operator, left, right)
	if err != nil {
		return err
	}
	e.stack.Push(result)
	return nil
}

func (e *Evaluator) evalBinaryOp(op string, left, right Object) (Object, *Error) {
	switch l := left.(type) {
	case *Integer:
		switch r := right.(type) {
		case *Integer:
			return evalIntegerBinaryOp(op, l.Value, r.Value)
		case *Float:
			return evalFloatBinaryOp(op, float64(l.Value), r.Value)
		}
	case *Float:
		switch r := right.(type) {
		case *Integer:
			return evalFloatBinaryOp(op, l.Value, float64(r.Value))
		case *Float:
			return evalFloatBinaryOp(op, l.Value, r.Value)
		}
	case *String:
		if op == "+" {
			if _, isNil := right.(*Nil); !isNil {
				return &String{Value: l.Value + stringify(right)}, nil
			}
		}
		if op == "*" {
			if r, ok := right.(*Integer); ok {
				if r.Value < 0 {
					return &String{Value: ""}, nil
				}
				return &String{Value: strings.Repeat(l.Value, int(r.Value))}, nil
			}
		}
	}
	return nil, newError(UNSUPPORTED_OPERATION, "'%s' is not supported for %s and %s",
		op, left.TypeName(), right.TypeName())
}

func evalIntegerBinaryOp(op string, l, r int64) (Object, *Error) {
	switch op {
	case "+":
		return &Integer{Value: l + r}, nil
	case "-":
		return &Integer{Value: l - r}, nil
	case "*":
		return &Integer{Value: l * r}, nil
	case "/":
		if r == 0 {
			return nil, newError(DIVISION_BY_ZERO, "integer division by zero")
		}
		// Go's integer division truncates toward zero.
		return &Integer{Value: l / r}, nil
	case "%":
		if r == 0 {
			return nil, newError(DIVISION_BY_ZERO, "integer modulo by zero")
		}
		return &Integer{Value: l % r}, nil
	}
	return nil, newError(UNSUPPORTED_OPERATION, "'%s' is not supported for Integer and Integer", op)
}

func evalFloatBinaryOp(op string, l, r float64) (Object, *Error) {
	switch op {
	case "+":
		return &Float{Value: l + r}, nil
	case "-":
		return &Float{Value: l - r}, nil
	case "*":
		return &Float{Value: l * r}, nil
	case "/":
		return &Float{Value: l / r}, nil
	case "%":
		return &Float{Value: math.Mod(l, r)}, nil
	}
	return nil, newError(UNSUPPORTED_OPERATION, "'%s' is not supported for Float and Float", op)
}

func isNumeric(obj Object) bool {
	switch obj.(type) {
	case *Integer, *Float:
		return true
	}
	return false
}

func isString(obj Object) bool {
	_, ok := obj.(*String)
	return ok
}

func numericValue(obj Object) float64 {
	switch obj := obj.(type) {
	case *Integer:
		return float64(obj.Value)
	case *Float:
		return obj.Value
	}
	return 0
}

// stringify renders a value for string concatenation and print: strings
// appear bare, everything else as its Inspect form.
func stringify(obj Object) string {
	if s, ok := obj.(*String); ok {
		return s.Value
	}
	return obj.Inspect()
}

// objectsEqual implements ==: Int and Float compare equal when
// mathematically equal; all other cross-variant comparisons are unequal.
// Containers compare element-wise, types and instances by identity.
func objectsEqual(a, b Object) bool {
	switch a := a.(type) {
	case *Integer:
		switch b := b.(type) {
		case *Integer:
			return a.Value == b.Value
		case *Float:
			return float64(a.Value) == b.Value
		}
		return false
	case *Float:
		switch b := b.(type) {
		case *Integer:
			return a.Value == float64(b.Value)
		case *Float:
			return a.Value == b.Value
		}
		return false
	case *Boolean:
		b, ok := b.(*Boolean)
		return ok && a.Value == b.Value
	case *Nil:
		_, ok := b.(*Nil)
		return ok
	case *String:
		b, ok := b.(*String)
		return ok && a.Value == b.Value
	case *Symbol:
		b, ok := b.(*Symbol)
		return ok && a.Name == b.Name
	case *List:
		b, ok := b.(*List)
		if !ok || len(a.Elements) != len(b.Elements) {
			return false
		}
		for i, el := range a.Elements {
			if !objectsEqual(el, b.Elements[i]) {
				return false
			}
		}
		return true
	case *Map:
		b, ok := b.(*Map)
		if !ok || a.Len() != b.Len() {
			return false
		}
		for _, key := range a.Keys() {
			av, _ := a.Get(key)
			bv, ok := b.Get(key)
			if !ok || !objectsEqual(av, bv) {
				return false
			}
		}
		return true
	}
	// Type, Instance, Functor, Builtin: identity.
	return a == b
}
