package evaluator

import (
	"github.com/rill-lang/rill/internal/config"
)

// kernelTypeNames are the canonical types registered in the kernel scope,
// one per primitive variant plus Type itself and Functor.
var kernelTypeNames = []string{
	config.NilTypeName,
	config.BooleanTypeName,
	config.IntegerTypeName,
	config.FloatTypeName,
	config.StringTypeName,
	config.SymbolTypeName,
	config.ListTypeName,
	config.MapTypeName,
	config.TypeTypeName,
	"Functor",
}

// newKernelScope builds the root scope holding one canonical Type object
// per primitive variant. The returned map indexes the same objects by
// type-name string for the resolver.
func newKernelScope() (*Scope, map[string]*Type) {
	kernel := NewScope(nil, false)
	types := make(map[string]*Type, len(kernelTypeNames))

	for _, name := range kernelTypeNames {
		// Type member scopes stand alone: member lookups must not fall
		// through into the kernel (or user globals) behind it.
		t := &Type{
			Name:          name,
			Scope:         NewScope(nil, false),
			InstanceScope: NewScope(nil, false),
		}
		kernel.Define(name, t)
		types[name] = t
	}

	return kernel, types
}

// TypeOf resolves the canonical Type object for a value. For Type and
// Instance values it is trivially derivable; primitives resolve through
// the kernel scope by type-name string. The result is identity-stable
// across calls.
func (e *Evaluator) TypeOf(obj Object) *Type {
	switch obj := obj.(type) {
	case *Instance:
		return obj.Of
	default:
		return e.types[obj.TypeName()]
	}
}

// ScopeOf resolves the scope of a value: an instance's own scope, a
// type's own scope, and for primitives the instance scope of the
// canonical type.
func (e *Evaluator) ScopeOf(obj Object) *Scope {
	switch obj := obj.(type) {
	case *Instance:
		return obj.Scope
	case *Type:
		return obj.Scope
	default:
		return e.types[obj.TypeName()].InstanceScope
	}
}

// DisallowPrimitives guards instance-scope mutations: only Type and
// Instance values own a writable scope.
func (e *Evaluator) DisallowPrimitives(obj Object, op string) *Error {
	switch obj.(type) {
	case *Instance, *Type:
		return nil
	}
	return newError(UNSUPPORTED_OPERATION, "%s is not supported for primitive %s", op, obj.TypeName())
}
