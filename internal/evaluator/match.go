package evaluator

import (
	"github.com/rill-lang/rill/internal/ast"
)

// proposedBinding is a name the match engine wants to bind. Bindings are
// staged into a buffer and committed to the active scope only after the
// whole pattern succeeds, so a failed match binds nothing.
type proposedBinding struct {
	name  string
	value Object
}

// matchValue unifies pattern against val. On success every proposed
// binding is committed to the active scope (create or overwrite); on
// failure the scope is untouched and a MatchError (or the error from an
// interpolated expression) is returned.
func (e *Evaluator) matchValue(pattern ast.Expression, val Object) *Error {
	var binds []proposedBinding
	if err := e.matchPattern(pattern, val, &binds); err != nil {
		return err
	}
	for _, b := range binds {
		e.symtab.Set(b.name, b.value, true)
	}
	return nil
}

func (e *Evaluator) matchPattern(pattern ast.Expression, val Object, binds *[]proposedBinding) *Error {
	switch p := pattern.(type) {
	case *ast.NilLiteral:
		return matchLiteral(NIL, val)
	case *ast.BooleanLiteral:
		return matchLiteral(nativeBoolToBooleanObject(p.Value), val)
	case *ast.IntegerLiteral:
		return matchLiteral(&Integer{Value: p.Value}, val)
	case *ast.FloatLiteral:
		return matchLiteral(&Float{Value: p.Value}, val)
	case *ast.StringLiteral:
		return matchLiteral(&String{Value: p.Value}, val)
	case *ast.SymbolLiteral:
		return matchLiteral(&Symbol{Name: p.Value}, val)

	case *ast.VariableReference:
		// Identifiers always match; _name is the same, just discardable.
		*binds = append(*binds, proposedBinding{name: p.Name, value: val})
		return nil

	case *ast.ConstReference:
		obj, ok := e.symtab.Get(p.Name)
		if !ok {
			obj, ok = e.kernel.Get(p.Name)
		}
		if !ok {
			return newError(UNDEFINED_VARIABLE, "undefined constant '%s'", p.Name)
		}
		return e.matchResolved(obj, val)

	case *ast.InterpolationExpression:
		// Evaluate the expression, then use its result as a type or
		// literal pattern. Interpolation only reads, it never binds.
		if err := e.eval(p.Expression); err != nil {
			return err
		}
		return e.matchResolved(e.stack.Pop(), val)

	case *ast.ListLiteral:
		return e.matchListPattern(p, val, binds)

	case *ast.MapLiteral:
		return e.matchMapPattern(p, val, binds)

	case *ast.SplatPattern:
		return newError(MATCH_ERROR, "splat pattern outside of a list pattern")
	}

	return newError(MATCH_ERROR, "cannot use %s as a pattern", pattern.TokenLiteral())
}

// matchResolved matches val against an already evaluated pattern value: a
// Type does a type check, anything else a literal value match.
func (e *Evaluator) matchResolved(resolved Object, val Object) *Error {
	if t, ok := resolved.(*Type); ok {
		// Exact type match; subtyping is not defined.
		if e.TypeOf(val) != t {
			return newError(MATCH_ERROR, "%s does not match type %s", val.Inspect(), t.Name)
		}
		return nil
	}
	return matchLiteral(resolved, val)
}

func matchLiteral(want, got Object) *Error {
	if !objectsEqual(want, got) {
		return newError(MATCH_ERROR, "%s does not match %s", got.Inspect(), want.Inspect())
	}
	return nil
}

func (e *Evaluator) matchListPattern(p *ast.ListLiteral, val Object, binds *[]proposedBinding) *Error {
	list, ok := val.(*List)
	if !ok {
		return newError(MATCH_ERROR, "cannot destructure %s with a list pattern", val.TypeName())
	}

	var elems []ast.Expression
	if p.Elements != nil {
		elems = p.Elements.Expressions
	}

	splatIdx := -1
	for i, el := range elems {
		if _, ok := el.(*ast.SplatPattern); ok {
			if splatIdx >= 0 {
				return newError(MATCH_ERROR, "at most one splat is allowed in a list pattern")
			}
			splatIdx = i
		}
	}

	if splatIdx < 0 {
		if list.Len() != len(elems) {
			return newError(MATCH_ERROR, "list pattern has %d elements but value has %d", len(elems), list.Len())
		}
		for i, el := range elems {
			if err := e.matchPattern(el, list.Get(i), binds); err != nil {
				return err
			}
		}
		return nil
	}

	fixed := len(elems) - 1
	if list.Len() < fixed {
		return newError(MATCH_ERROR, "list pattern needs at least %d elements but value has %d", fixed, list.Len())
	}

	// Fixed elements match by position from both ends; the splat takes
	// the middle slice.
	for i := 0; i < splatIdx; i++ {
		if err := e.matchPattern(elems[i], list.Get(i), binds); err != nil {
			return err
		}
	}
	tail := len(elems) - splatIdx - 1
	for i := 0; i < tail; i++ {
		pat := elems[len(elems)-1-i]
		if err := e.matchPattern(pat, list.Get(list.Len()-1-i), binds); err != nil {
			return err
		}
	}

	// The splat always wraps its capture in a new List, even a single
	// element that is itself a list.
	mid := make([]Object, 0, list.Len()-fixed)
	for i := splatIdx; i < list.Len()-tail; i++ {
		mid = append(mid, list.Get(i))
	}
	splat := elems[splatIdx].(*ast.SplatPattern)
	*binds = append(*binds, proposedBinding{name: splat.Name, value: NewList(mid)})
	return nil
}

func (e *Evaluator) matchMapPattern(p *ast.MapLiteral, val Object, binds *[]proposedBinding) *Error {
	m, ok := val.(*Map)
	if !ok {
		return newError(MATCH_ERROR, "cannot destructure %s with a map pattern", val.TypeName())
	}

	// Every listed key must be present; extra keys in the value are
	// ignored.
	for _, pair := range p.Pairs {
		entry, ok := m.Get(pair.Key)
		if !ok {
			return newError(MATCH_ERROR, "map has no key '%s'", pair.Key)
		}
		if err := e.matchPattern(pair.Value, entry, binds); err != nil {
			return err
		}
	}
	return nil
}
