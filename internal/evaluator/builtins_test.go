package evaluator

import (
	"bytes"
	"testing"
)

func TestPrintAndPuts(t *testing.T) {
	e := New()
	var out bytes.Buffer
	e.Out = &out

	testEvalIn(t, e, `print("a", 1, :s)`)
	if out.String() != "a 1 :s" {
		t.Errorf("print output = %q", out.String())
	}

	out.Reset()
	testEvalIn(t, e, `puts("x")`)
	if out.String() != "x\n" {
		t.Errorf("puts output = %q", out.String())
	}

	out.Reset()
	testEvalIn(t, e, "puts()")
	if out.String() != "\n" {
		t.Errorf("puts() output = %q", out.String())
	}

	wantNil(t, testEvalIn(t, e, `print("")`))
}

func TestToSAndTypeAsFunctions(t *testing.T) {
	wantString(t, testEval(t, "to_s(42)"), "42")
	wantString(t, testEval(t, "to_s([1])"), "[1]")

	result := testEval(t, `type("x")`)
	typ, ok := result.(*Type)
	if !ok || typ.Name != "String" {
		t.Fatalf("type(\"x\") = %s, want String", result.Inspect())
	}

	testEvalErr(t, "to_s()", ARITY_ERROR)
	testEvalErr(t, "type(1, 2)", ARITY_ERROR)
}

func TestAssert(t *testing.T) {
	wantBoolean(t, testEval(t, "assert(1 == 1)"), true)
	wantBoolean(t, testEval(t, "assert(0)"), true) // 0 is truthy

	err := testEvalErr(t, "assert(1 == 2)", ASSERTION_ERROR)
	if err.Message != "assertion failed" {
		t.Errorf("message = %q", err.Message)
	}

	err = testEvalErr(t, `assert(false, "custom")`, ASSERTION_ERROR)
	if err.Message != "custom" {
		t.Errorf("message = %q", err.Message)
	}
}

func TestAssertEq(t *testing.T) {
	wantBoolean(t, testEval(t, "assert_eq(2 + 2, 4)"), true)
	wantBoolean(t, testEval(t, "assert_eq(1, 1.0)"), true) // numeric cross-equality

	// The failure carries both compared values and a message.
	err := testEvalErr(t, "assert_eq(1, 2)", ASSERTION_ERROR)
	if err.Left == nil || err.Right == nil {
		t.Fatal("assert_eq failure must carry left and right")
	}
	wantInteger(t, err.Left, 1)
	wantInteger(t, err.Right, 2)
	if err.Message != "expected 2, got 1" {
		t.Errorf("message = %q", err.Message)
	}

	err = testEvalErr(t, `assert_eq([1], [2], "lists differ")`, ASSERTION_ERROR)
	if err.Message != "lists differ: expected [2], got [1]" {
		t.Errorf("message = %q", err.Message)
	}
}

func TestAssertionFailureIsCapturable(t *testing.T) {
	// Assertion failures travel the ordinary error channel.
	e := New()
	var sink bytes.Buffer
	e.ErrOut = &sink

	if _, err := e.Run(parse(t, "assert_eq(1, 2)"), true); err != nil {
		t.Fatalf("captured run returned error: %v", err)
	}
	if !bytes.Contains(sink.Bytes(), []byte("AssertionError")) {
		t.Errorf("sink = %q", sink.String())
	}
}
