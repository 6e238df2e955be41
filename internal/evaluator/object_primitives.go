package evaluator

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rill-lang/rill/internal/config"
)

// Shared singletons; identity never matters for primitives, this just
// avoids churning allocations for the common values.
var (
	NIL   = &Nil{}
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

// Nil is the unit value.
type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) TypeName() string { return config.NilTypeName }
func (n *Nil) Inspect() string  { return "nil" }
func (n *Nil) Hash() uint32     { return 0 }

// Boolean
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) TypeName() string { return config.BooleanTypeName }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }
func (b *Boolean) Hash() uint32 {
	if b.Value {
		return 1
	}
	return 0
}

// Integer
type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) TypeName() string { return config.IntegerTypeName }
func (i *Integer) Inspect() string  { return fmt.Sprintf("%d", i.Value) }
func (i *Integer) Hash() uint32 {
	return uint32(i.Value ^ (i.Value >> 32))
}

// Float
type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) TypeName() string { return config.FloatTypeName }
func (f *Float) Inspect() string  { return fmt.Sprintf("%g", f.Value) }
func (f *Float) Hash() uint32 {
	bits := math.Float64bits(f.Value)
	return uint32(bits ^ (bits >> 32))
}

// String is a UTF-8 byte sequence.
type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) TypeName() string { return config.StringTypeName }
func (s *String) Inspect() string  { return strconv.Quote(s.Value) }
func (s *String) Hash() uint32     { return hashString(s.Value) }

// Symbol is an interned identifier-like token, distinct from String.
type Symbol struct {
	Name string
}

func (s *Symbol) Type() ObjectType { return SYMBOL_OBJ }
func (s *Symbol) TypeName() string { return config.SymbolTypeName }
func (s *Symbol) Inspect() string  { return ":" + s.Name }
func (s *Symbol) Hash() uint32     { return hashString(s.Name) ^ 0x9e3779b9 }

func nativeBoolToBooleanObject(v bool) *Boolean {
	if v {
		return TRUE
	}
	return FALSE
}

// isTruthy: a value is falsey iff it is nil or false. 0, 0.0, "" and []
// are all truthy.
func isTruthy(obj Object) bool {
	switch obj := obj.(type) {
	case *Nil:
		return false
	case *Boolean:
		return obj.Value
	default:
		return true
	}
}
