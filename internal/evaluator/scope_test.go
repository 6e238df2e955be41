package evaluator

import (
	"testing"
)

func TestScopeLookupChain(t *testing.T) {
	outer := NewScope(nil, false)
	outer.Define("a", &Integer{Value: 1})

	inner := NewScope(outer, false)
	if obj, ok := inner.Get("a"); !ok {
		t.Fatal("permissive scope must chain to its parent")
	} else {
		wantInteger(t, obj, 1)
	}

	restricted := NewScope(outer, true)
	if _, ok := restricted.Get("a"); ok {
		t.Fatal("restrictive scope must not chain to its parent")
	}
	restricted.Define("a", &Integer{Value: 2})
	obj, _ := restricted.Get("a")
	wantInteger(t, obj, 2)
}

func TestSymbolTableSet(t *testing.T) {
	root := NewScope(nil, false)
	st := NewSymbolTable(root)

	st.Set("a", &Integer{Value: 1}, false)
	st.Push(false)

	// Without makeNew, assignment mutates the frame that binds the name.
	st.Set("a", &Integer{Value: 2}, false)
	if obj, _ := root.Get("a"); obj.(*Integer).Value != 2 {
		t.Fatal("expected the root binding to be updated")
	}

	// With makeNew, the active frame gets its own binding.
	st.Set("a", &Integer{Value: 3}, true)
	if obj, _ := st.Get("a"); obj.(*Integer).Value != 3 {
		t.Fatal("expected a shadowing binding in the active frame")
	}
	if obj, _ := root.Get("a"); obj.(*Integer).Value != 2 {
		t.Fatal("root binding must be untouched by makeNew")
	}

	if err := st.Pop(); err != nil {
		t.Fatalf("pop: %v", err)
	}
	if obj, _ := st.Get("a"); obj.(*Integer).Value != 2 {
		t.Fatal("shadowing binding must vanish with its frame")
	}
}

func TestRestrictiveFrameSet(t *testing.T) {
	root := NewScope(nil, false)
	st := NewSymbolTable(root)
	st.Set("a", &Integer{Value: 1}, false)

	st.Push(true)
	// The restrictive frame cannot see (or update) the outer binding;
	// the set lands in the active frame instead.
	st.Set("a", &Integer{Value: 9}, false)
	if obj, _ := root.Get("a"); obj.(*Integer).Value != 1 {
		t.Fatal("restrictive frame must not update through to the root")
	}
	if obj, _ := st.Get("a"); obj.(*Integer).Value != 9 {
		t.Fatal("binding must land in the restrictive frame")
	}
}

func TestPopRootUnderflows(t *testing.T) {
	st := NewSymbolTable(NewScope(nil, false))
	err := st.Pop()
	if err == nil || err.Kind != SCOPE_UNDERFLOW {
		t.Fatalf("expected ScopeUnderflow, got %v", err)
	}
}

func TestPopTo(t *testing.T) {
	st := NewSymbolTable(NewScope(nil, false))
	st.Push(true)
	st.Push(false)
	st.Push(true)
	st.PopTo(2)
	if st.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", st.Depth())
	}
	// PopTo never pops the root.
	st.PopTo(0)
	if st.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", st.Depth())
	}
}
