package evaluator

import (
	"fmt"
)

// ErrorKind classifies runtime errors by what went wrong, not by where.
type ErrorKind string

const (
	MATCH_ERROR           ErrorKind = "MatchError"
	UNDEFINED_VARIABLE    ErrorKind = "UndefinedVariable"
	UNSUPPORTED_OPERATION ErrorKind = "UnsupportedOperation"
	DIVISION_BY_ZERO      ErrorKind = "DivisionByZero"
	CALL_TARGET_ERROR     ErrorKind = "CallTargetError"
	ARITY_ERROR           ErrorKind = "ArityError"
	SCOPE_UNDERFLOW       ErrorKind = "ScopeUnderflow"
	UNSUPPORTED_NODE      ErrorKind = "UnsupportedNode"
	ASSERTION_ERROR       ErrorKind = "AssertionError"
	RECURSION_LIMIT       ErrorKind = "RecursionLimit"

	// Control-flow signals. They ride the error channel so every scope
	// frame unwinds the same way, and are intercepted by the loop or call
	// handler; one reaching the top level is a real error.
	BREAK_SIGNAL  ErrorKind = "BreakSignal"
	NEXT_SIGNAL   ErrorKind = "NextSignal"
	RETURN_SIGNAL ErrorKind = "ReturnSignal"
)

// Error is a runtime error (or control signal) carrying its kind, message
// and source location. Assertion failures also carry the compared values.
type Error struct {
	Kind    ErrorKind
	Message string
	Line    int
	Column  int

	// Left and Right are set for assertion failures.
	Left  Object
	Right Object
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...)}
}
