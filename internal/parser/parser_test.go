package parser

import (
	"testing"

	"github.com/rill-lang/rill/internal/ast"
	"github.com/rill-lang/rill/internal/diagnostics"
	"github.com/rill-lang/rill/internal/lexer"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New(input))
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parse errors for %q: %v", input, p.Errors()[0])
	}
	return program
}

func firstExpression(t *testing.T, input string) ast.Expression {
	t.Helper()
	program := parseProgram(t, input)
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected ExpressionStatement, got %T", program.Statements[0])
	}
	return stmt.Expression
}

func TestSimpleAssignment(t *testing.T) {
	expr := firstExpression(t, "a = 5")
	assign, ok := expr.(*ast.SimpleAssignment)
	if !ok {
		t.Fatalf("expected SimpleAssignment, got %T", expr)
	}
	if assign.Name != "a" {
		t.Errorf("name = %q, want a", assign.Name)
	}
	if lit, ok := assign.Value.(*ast.IntegerLiteral); !ok || lit.Value != 5 {
		t.Errorf("value = %#v, want IntegerLiteral 5", assign.Value)
	}
}

func TestConstAssignment(t *testing.T) {
	expr := firstExpression(t, "A = false")
	assign, ok := expr.(*ast.SimpleAssignment)
	if !ok {
		t.Fatalf("expected SimpleAssignment, got %T", expr)
	}
	if assign.Name != "A" {
		t.Errorf("name = %q, want A", assign.Name)
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	expr := firstExpression(t, "a = b = 1")
	outer, ok := expr.(*ast.SimpleAssignment)
	if !ok {
		t.Fatalf("expected SimpleAssignment, got %T", expr)
	}
	if _, ok := outer.Value.(*ast.SimpleAssignment); !ok {
		t.Fatalf("expected nested SimpleAssignment, got %T", outer.Value)
	}
}

func TestMatchAssign(t *testing.T) {
	expr := firstExpression(t, "[a, b] =: [1, 2]")
	match, ok := expr.(*ast.MatchAssign)
	if !ok {
		t.Fatalf("expected MatchAssign, got %T", expr)
	}
	pattern, ok := match.Pattern.(*ast.ListLiteral)
	if !ok {
		t.Fatalf("pattern is %T, want ListLiteral", match.Pattern)
	}
	if len(pattern.Elements.Expressions) != 2 {
		t.Fatalf("pattern has %d elements, want 2", len(pattern.Elements.Expressions))
	}
}

func TestSplatInListPattern(t *testing.T) {
	expr := firstExpression(t, "[1, *mid, 4] =: x")
	match := expr.(*ast.MatchAssign)
	pattern := match.Pattern.(*ast.ListLiteral)
	splat, ok := pattern.Elements.Expressions[1].(*ast.SplatPattern)
	if !ok {
		t.Fatalf("element 1 is %T, want SplatPattern", pattern.Elements.Expressions[1])
	}
	if splat.Name != "mid" {
		t.Errorf("splat name = %q, want mid", splat.Name)
	}
}

func TestInterpolationPattern(t *testing.T) {
	expr := firstExpression(t, "<int_type> =: 5")
	match := expr.(*ast.MatchAssign)
	interp, ok := match.Pattern.(*ast.InterpolationExpression)
	if !ok {
		t.Fatalf("pattern is %T, want InterpolationExpression", match.Pattern)
	}
	if ref, ok := interp.Expression.(*ast.VariableReference); !ok || ref.Name != "int_type" {
		t.Errorf("inner = %#v, want VariableReference int_type", interp.Expression)
	}
}

func TestMapLiteral(t *testing.T) {
	expr := firstExpression(t, "{a: 1, b: [2]}")
	m, ok := expr.(*ast.MapLiteral)
	if !ok {
		t.Fatalf("expected MapLiteral, got %T", expr)
	}
	if len(m.Pairs) != 2 {
		t.Fatalf("pairs = %d, want 2", len(m.Pairs))
	}
	if m.Pairs[0].Key != "a" || m.Pairs[1].Key != "b" {
		t.Errorf("keys = %q, %q", m.Pairs[0].Key, m.Pairs[1].Key)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	expr := firstExpression(t, "1 + 2 * 3")
	sum, ok := expr.(*ast.BinaryExpression)
	if !ok || sum.Operator != "+" {
		t.Fatalf("expected + at root, got %#v", expr)
	}
	product, ok := sum.Right.(*ast.BinaryExpression)
	if !ok || product.Operator != "*" {
		t.Fatalf("expected * on the right, got %#v", sum.Right)
	}
}

func TestLogicalAndEqualityNodes(t *testing.T) {
	expr := firstExpression(t, "a == 1 && b != 2 || c < 3")
	or, ok := expr.(*ast.LogicalExpression)
	if !ok || or.Operator != "||" {
		t.Fatalf("expected || at root, got %#v", expr)
	}
	and, ok := or.Left.(*ast.LogicalExpression)
	if !ok || and.Operator != "&&" {
		t.Fatalf("expected && on the left, got %#v", or.Left)
	}
	if _, ok := and.Left.(*ast.EqualityExpression); !ok {
		t.Errorf("expected EqualityExpression, got %T", and.Left)
	}
	if _, ok := or.Right.(*ast.RelationalExpression); !ok {
		t.Errorf("expected RelationalExpression, got %T", or.Right)
	}
}

func TestCompoundAssignmentDesugars(t *testing.T) {
	expr := firstExpression(t, "a += 2")
	assign, ok := expr.(*ast.SimpleAssignment)
	if !ok {
		t.Fatalf("expected SimpleAssignment, got %T", expr)
	}
	bin, ok := assign.Value.(*ast.BinaryExpression)
	if !ok || bin.Operator != "+" {
		t.Fatalf("expected + on the value, got %#v", assign.Value)
	}

	expr = firstExpression(t, "a ||= 2")
	assign = expr.(*ast.SimpleAssignment)
	if log, ok := assign.Value.(*ast.LogicalExpression); !ok || log.Operator != "||" {
		t.Fatalf("expected || on the value, got %#v", assign.Value)
	}
}

func TestFunctionDefinition(t *testing.T) {
	expr := firstExpression(t, "def add(x, y) x + y end")
	def, ok := expr.(*ast.FunctionDefinition)
	if !ok {
		t.Fatalf("expected FunctionDefinition, got %T", expr)
	}
	if def.Name != "add" {
		t.Errorf("name = %q, want add", def.Name)
	}
	if len(def.Parameters) != 2 || def.Parameters[0].Name != "x" || def.Parameters[1].Name != "y" {
		t.Fatalf("parameters = %#v", def.Parameters)
	}
	if len(def.Body.Statements) != 1 {
		t.Fatalf("body has %d statements, want 1", len(def.Body.Statements))
	}
}

func TestSplatParameter(t *testing.T) {
	expr := firstExpression(t, "def f(a, *rest)\n  rest\nend")
	def := expr.(*ast.FunctionDefinition)
	if len(def.Parameters) != 2 {
		t.Fatalf("parameters = %d, want 2", len(def.Parameters))
	}
	if !def.Parameters[1].Splat || def.Parameters[1].Name != "rest" {
		t.Errorf("second parameter = %#v, want splat rest", def.Parameters[1])
	}
}

func TestFunctionCallAndMember(t *testing.T) {
	expr := firstExpression(t, "add(1, 2)")
	call, ok := expr.(*ast.FunctionCall)
	if !ok {
		t.Fatalf("expected FunctionCall, got %T", expr)
	}
	if len(call.Arguments.Expressions) != 2 {
		t.Fatalf("arguments = %d, want 2", len(call.Arguments.Expressions))
	}

	expr = firstExpression(t, "1.type")
	member, ok := expr.(*ast.MemberExpression)
	if !ok {
		t.Fatalf("expected MemberExpression, got %T", expr)
	}
	if member.Member != "type" {
		t.Errorf("member = %q, want type", member.Member)
	}
}

func TestControlFlow(t *testing.T) {
	expr := firstExpression(t, "unless a < 3\n  1\nelse\n  2\nend")
	unless, ok := expr.(*ast.UnlessExpression)
	if !ok {
		t.Fatalf("expected UnlessExpression, got %T", expr)
	}
	if unless.Alternative == nil {
		t.Fatal("expected alternative block")
	}

	expr = firstExpression(t, "while a < 3\n  a += 1\nend")
	while, ok := expr.(*ast.WhileExpression)
	if !ok {
		t.Fatalf("expected WhileExpression, got %T", expr)
	}
	if while.Until {
		t.Error("while parsed as until")
	}

	expr = firstExpression(t, "until done\n  step()\nend")
	while = expr.(*ast.WhileExpression)
	if !while.Until {
		t.Error("until not flagged")
	}
}

func TestDoBlock(t *testing.T) {
	expr := firstExpression(t, "do\n  1\n  2\nend")
	block, ok := expr.(*ast.Block)
	if !ok {
		t.Fatalf("expected Block, got %T", expr)
	}
	if len(block.Statements) != 2 {
		t.Fatalf("block has %d statements, want 2", len(block.Statements))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diagnostics.Code
	}{
		{"module Foo", diagnostics.ErrP004},
		{"require \"x\"", diagnostics.ErrP004},
		{"include Bar", diagnostics.ErrP004},
		{"1 = 2", diagnostics.ErrP005},
		{"[1, 2", diagnostics.ErrP001},
		{"def f(*a, b) a end", diagnostics.ErrP001},
		{"a + + 1", diagnostics.ErrP002},
	}

	for _, tt := range tests {
		p := New(lexer.New(tt.input))
		p.ParseProgram()
		errs := p.Errors()
		if len(errs) == 0 {
			t.Errorf("%q: expected a parse error", tt.input)
			continue
		}
		if errs[0].Code != tt.code {
			t.Errorf("%q: code = %s, want %s (%s)", tt.input, errs[0].Code, tt.code, errs[0].Message)
		}
	}
}
