package analyzer

import (
	"strings"
	"testing"

	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/ershov/ast"
)

func ident(name string) ast.Expression {
	return &ast.Identifier{Name: name}
}

func binary(
	op ast.BinaryOperator,
	left ast.Expression,
	right ast.Expression,
) *ast.BinaryExpression {
	return &ast.BinaryExpression{
		Operator: op,
		Left:     left,
		Right:    right,
	}
}

func expectRequirement(t *testing.T, expr ast.Expression, expected int) {
	t.Helper()
	if expr.RegisterRequirement() != expected {
		t.Errorf(
			"%s: expected requirement %d, got %d",
			ast.InfixString(expr),
			expected,
			expr.RegisterRequirement())
	}
}

func TestLabelLeaves(t *testing.T) {
	root := ident("a")
	LabelRegisterRequirements(root)
	expectRequirement(t, root, 1)

	left := ident("a")
	right := &ast.IntLiteral{Value: 2}
	sum := binary(ast.Add, left, right)
	LabelRegisterRequirements(sum)

	expectRequirement(t, left, 1)
	expectRequirement(t, right, 0)
	expectRequirement(t, sum, 1)
}

func TestLabelOperators(t *testing.T) {
	ab := binary(ast.Add, ident("a"), ident("b"))
	cd := binary(ast.Add, ident("c"), ident("d"))
	product := binary(ast.Mul, ab, cd)
	ef := binary(ast.Add, ident("e"), ident("f"))
	diff := binary(ast.Sub, product, ef)
	rightHeavy := binary(ast.Sub, ident("g"), diff)

	LabelRegisterRequirements(rightHeavy)

	expectRequirement(t, ab, 1)
	expectRequirement(t, cd, 1)
	expectRequirement(t, product, 2) // equal operands
	expectRequirement(t, ef, 1)
	expectRequirement(t, diff, 2) // max(2, 1)
	expectRequirement(t, rightHeavy, 2)
}

func TestLabelIsIdempotent(t *testing.T) {
	expr := binary(
		ast.Mul,
		binary(ast.Add, ident("a"), ident("b")),
		binary(ast.Add, ident("c"), ident("d")))

	LabelRegisterRequirements(expr)
	first := ast.TreeString(expr, "")

	LabelRegisterRequirements(expr)
	second := ast.TreeString(expr, "")

	if first != second {
		t.Fatalf("labels changed:\n%s\n---\n%s", first, second)
	}
}

func TestAnalyzeValidExpressions(t *testing.T) {
	exprs := []ast.Expression{
		binary(ast.Add, ident("a"), ident("b")),
		binary(
			ast.Mul,
			binary(ast.Add, ident("a"), ident("b")),
			binary(ast.Add, ident("c"), ident("d"))),
	}

	emitter := &parseutil.Emitter{}
	valid := Analyze(exprs, Options{MaxDepth: 10, PoolSize: 2}, emitter)

	if emitter.HasErrors() {
		t.Fatalf("unexpected errors: %v", emitter.Errors())
	}

	if len(valid) != 2 || valid[0] != exprs[0] || valid[1] != exprs[1] {
		t.Fatalf("unexpected result: %v", valid)
	}

	expectRequirement(t, valid[0], 1)
	expectRequirement(t, valid[1], 2)
}

func TestAnalyzeReportsInvalidExpressions(t *testing.T) {
	deep := ident("z")
	for i := 0; i < 5; i++ {
		deep = binary(ast.Add, deep, ident("z"))
	}

	needsThree := binary(
		ast.Mul,
		binary(
			ast.Mul,
			binary(ast.Add, ident("a"), ident("b")),
			binary(ast.Add, ident("c"), ident("d"))),
		binary(
			ast.Mul,
			binary(ast.Add, ident("e"), ident("f")),
			binary(ast.Add, ident("g"), ident("h"))))

	ok := binary(ast.Sub, ident("x"), ident("y"))

	exprs := []ast.Expression{
		binary("%", ident("a"), ident("b")),
		ok,
		&ast.BinaryExpression{Operator: ast.Add, Left: ident("a")},
		deep,
		needsThree,
		binary(ast.Add, ident(""), ident("b")),
	}

	emitter := &parseutil.Emitter{}
	valid := Analyze(exprs, Options{MaxDepth: 5, PoolSize: 2}, emitter)

	if len(valid) != 1 || valid[0] != ok {
		t.Fatalf("unexpected result: %v", valid)
	}

	errs := emitter.Errors()
	expected := []string{
		"unexpected binary operator (%)",
		"missing right operand",
		"nesting exceeds 5 levels",
		"needs 3 registers, but the register pool has 2",
		"empty identifier name",
	}

	if len(errs) != len(expected) {
		t.Fatalf("expected %d errors, got %d: %v", len(expected), len(errs), errs)
	}

	for idx, err := range errs {
		if !strings.Contains(err.Error(), expected[idx]) {
			t.Errorf("error %d: expected %q in %q", idx, expected[idx], err)
		}
	}
}

func TestAnalyzeUnboundedDepth(t *testing.T) {
	deep := ident("z")
	for i := 0; i < 100; i++ {
		deep = binary(ast.Add, deep, ident("z"))
	}

	emitter := &parseutil.Emitter{}
	valid := Analyze([]ast.Expression{deep}, Options{PoolSize: 1}, emitter)

	if emitter.HasErrors() || len(valid) != 1 {
		t.Fatalf("unexpected errors: %v", emitter.Errors())
	}

	expectRequirement(t, deep, 1)
}
