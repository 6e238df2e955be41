package evaluator

import (
	"testing"
)

func TestFunctionDefinitionRegistersAndPushes(t *testing.T) {
	e := New()
	result := testEvalIn(t, e, "def add(x, y) x + y end")
	fn, ok := result.(*Functor)
	if !ok {
		t.Fatalf("def result = %T, want *Functor", result)
	}
	if fn.Name != "add" || len(fn.Parameters) != 2 {
		t.Fatalf("functor = %s", fn.Inspect())
	}
	if !e.funcs.Defined("add") {
		t.Fatal("add not registered in the function table")
	}
}

func TestFunctionCall(t *testing.T) {
	wantInteger(t, testEval(t, "def f(x) x + 1 end; f(2)"), 3)
	wantInteger(t, testEval(t, "def add(x, y) x + y end; add(2, add(3, 4))"), 9)
	wantNil(t, testEval(t, "def noop() end; noop()"))
}

func TestCallFrameIsRestrictive(t *testing.T) {
	e := New()
	testEvalIn(t, e, "def f(x) x + 1 end")
	wantInteger(t, testEvalIn(t, e, "f(2)"), 3)

	// After the call, x is not bound in the caller scope.
	testEvalErr(t, "def f(x) x + 1 end; f(2); x", UNDEFINED_VARIABLE)

	// Caller bindings are invisible inside the frame.
	testEvalErr(t, "hidden = 1; def g() hidden end; g()", UNDEFINED_VARIABLE)
}

func TestFunctionFrameIsPoppedOnError(t *testing.T) {
	e := New()
	depth := e.symtab.Depth()
	if _, err := e.Run(parse(t, "def f(x) x / 0 end; f(1)"), false); err == nil {
		t.Fatal("expected DivisionByZero")
	}
	if e.symtab.Depth() != depth {
		t.Fatalf("scope depth = %d after error, want %d", e.symtab.Depth(), depth)
	}
}

func TestArityErrors(t *testing.T) {
	testEvalErr(t, "def f(x) x end; f()", ARITY_ERROR)
	testEvalErr(t, "def f(x) x end; f(1, 2)", ARITY_ERROR)
	testEvalErr(t, "def f(a, *r) a end; f()", ARITY_ERROR)
}

func TestSplatParameter(t *testing.T) {
	e := New()
	testEvalIn(t, e, "def f(a, *rest) rest end")

	if got := testEvalIn(t, e, "f(1, 2, 3)"); got.Inspect() != "[2, 3]" {
		t.Errorf("f(1, 2, 3) rest = %s, want [2, 3]", got.Inspect())
	}
	// No surplus still yields an empty List.
	if got := testEvalIn(t, e, "f(1)"); got.Inspect() != "[]" {
		t.Errorf("f(1) rest = %s, want []", got.Inspect())
	}
	// The splat wraps like the match-engine splat: no flattening.
	if got := testEvalIn(t, e, "f(1, [2, 3])"); got.Inspect() != "[[2, 3]]" {
		t.Errorf("f(1, [2, 3]) rest = %s, want [[2, 3]]", got.Inspect())
	}
}

func TestReturnUnwinds(t *testing.T) {
	wantInteger(t, testEval(t, `
def clamp(n)
  unless n < 10
    return 10
  end
  n
end
clamp(42)`), 10)

	wantInteger(t, testEval(t, `
def clamp(n)
  unless n < 10
    return 10
  end
  n
end
clamp(7)`), 7)

	wantNil(t, testEval(t, "def f() return end; f()"))
}

func TestReturnFromInsideLoop(t *testing.T) {
	// The return value rides the stack past the loop unharmed.
	wantInteger(t, testEval(t, `
def find(limit)
  n = 0
  while true
    n += 1
    unless n < limit
      return n
    end
  end
end
find(4)`), 4)
}

func TestRecursiveFunction(t *testing.T) {
	wantInteger(t, testEval(t, `
def fact(n)
  unless n > 1
    return 1
  end
  n * fact(n - 1)
end
fact(5)`), 120)
}

func TestFirstDefinitionWins(t *testing.T) {
	// Defining a name again appends; calls keep using the first functor.
	wantInteger(t, testEval(t, "def f() 1 end; def f() 2 end; f()"), 1)
}

func TestCallTargetErrors(t *testing.T) {
	testEvalErr(t, "nope()", CALL_TARGET_ERROR)
	testEvalErr(t, "5()", CALL_TARGET_ERROR)
	testEvalErr(t, "(1 + 2)()", CALL_TARGET_ERROR)
}

func TestKernelTypesVisibleInsideFrames(t *testing.T) {
	// Const lookups fall back to the kernel scope even inside a
	// restrictive call frame.
	result := testEval(t, "def k() String end; k()")
	typ, ok := result.(*Type)
	if !ok || typ.Name != "String" {
		t.Fatalf("k() = %s, want the String type", result.Inspect())
	}
	testEval(t, "def check(v) String =: v end; check(\"ok\")")
}
