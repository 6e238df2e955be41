package evaluator

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/config"
)

// Type is a named type object. Its instance scope holds the names visible
// on instances of the type; its own scope holds the type's members.
type Type struct {
	Name          string
	Scope         *Scope
	InstanceScope *Scope
}

func (t *Type) Type() ObjectType { return TYPE_OBJ }
func (t *Type) TypeName() string { return config.TypeTypeName }
func (t *Type) Inspect() string  { return t.Name }
func (t *Type) Hash() uint32     { return hashString(t.Name) }

// Instance is a value of a user-visible type: its type pointer plus its
// own scope of instance variables. Every instance gets a v4 id so object
// identity stays observable without exposing addresses.
type Instance struct {
	Of    *Type
	Scope *Scope
	ID    uuid.UUID
}

func NewInstance(of *Type) *Instance {
	return &Instance{
		Of:    of,
		Scope: NewScope(of.InstanceScope, false),
		ID:    uuid.New(),
	}
}

func (in *Instance) Type() ObjectType { return INSTANCE_OBJ }
func (in *Instance) TypeName() string { return in.Of.Name }
func (in *Instance) Inspect() string {
	return fmt.Sprintf("#<%s %s>", in.Of.Name, in.ID.String()[:8])
}
func (in *Instance) Hash() uint32 {
	return hashString(in.ID.String())
}

// Functor is a callable wrapping a function definition: formal parameters
// plus a body AST.
type Functor struct {
	Name       string
	Parameters []*ast.Parameter
	Body       *ast.Block
	Line       int
	Column     int
}

func (f *Functor) Type() ObjectType { return FUNCTOR_OBJ }
func (f *Functor) TypeName() string { return "Functor" }
func (f *Functor) Inspect() string {
	return fmt.Sprintf("#<functor %s/%d>", f.Name, len(f.Parameters))
}
func (f *Functor) Hash() uint32 { return hashString(f.Name) }

// BuiltinFn is the host-side implementation of a builtin.
type BuiltinFn func(e *Evaluator, args []Object) (Object, *Error)

// Builtin is a callable implemented by the host.
type Builtin struct {
	Name string
	Fn   BuiltinFn
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) TypeName() string { return "Functor" }
func (b *Builtin) Inspect() string  { return fmt.Sprintf("#<builtin %s>", b.Name) }
func (b *Builtin) Hash() uint32     { return hashString(b.Name) }
