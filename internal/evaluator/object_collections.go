package evaluator

import (
	"bytes"

	"github.com/rill-lang/rill/internal/config"
)

// List is an ordered sequence of Objects. Insertion order is significant
// and duplicates are allowed.
type List struct {
	Elements []Object
}

func NewList(elements []Object) *List {
	return &List{Elements: elements}
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) TypeName() string { return config.ListTypeName }

func (l *List) Len() int { return len(l.Elements) }

func (l *List) Get(i int) Object {
	if i < 0 || i >= len(l.Elements) {
		return nil
	}
	return l.Elements[i]
}

func (l *List) Inspect() string {
	var out bytes.Buffer
	out.WriteString("[")
	for i, el := range l.Elements {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(el.Inspect())
	}
	out.WriteString("]")
	return out.String()
}

func (l *List) Hash() uint32 {
	h := uint32(1)
	for _, el := range l.Elements {
		h = 31*h + el.Hash()
	}
	return h
}

// Map is a mapping from symbol keys to Objects. Iteration order is
// insertion order.
type Map struct {
	keys    []string
	entries map[string]Object
}

func NewMap() *Map {
	return &Map{entries: make(map[string]Object)}
}

func (m *Map) Type() ObjectType { return MAP_OBJ }
func (m *Map) TypeName() string { return config.MapTypeName }

func (m *Map) Len() int { return len(m.keys) }

// Keys returns the key names in insertion order.
func (m *Map) Keys() []string { return m.keys }

func (m *Map) Get(key string) (Object, bool) {
	obj, ok := m.entries[key]
	return obj, ok
}

// Set inserts or overwrites; a fresh key goes to the end of the order.
func (m *Map) Set(key string, val Object) {
	if _, ok := m.entries[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.entries[key] = val
}

func (m *Map) Inspect() string {
	var out bytes.Buffer
	out.WriteString("{")
	for i, key := range m.keys {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(key)
		out.WriteString(": ")
		out.WriteString(m.entries[key].Inspect())
	}
	out.WriteString("}")
	return out.String()
}

func (m *Map) Hash() uint32 {
	h := uint32(1)
	for _, key := range m.keys {
		h = 31*h + hashString(key)
		h = 31*h + m.entries[key].Hash()
	}
	return h
}
