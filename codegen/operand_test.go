package codegen

import (
	"testing"

	"github.com/pattyshack/ershov/ast"
	"github.com/pattyshack/ershov/platform"
)

func TestOperandText(t *testing.T) {
	cases := []struct {
		name     string
		expr     ast.Expression
		expected string
	}{
		{"int", &ast.IntLiteral{Value: 42}, "42"},
		{"negative int", &ast.IntLiteral{Value: -7}, "-7"},
		{"float", &ast.FloatLiteral{Value: 1.5}, "1.500000"},
		{"float rounding", &ast.FloatLiteral{Value: 0.1234567}, "0.123457"},
		{"identifier", &ast.Identifier{Name: "count"}, "count"},
		{"string", &ast.StringLiteral{Value: "msg"}, "msg"},
		{
			"operator",
			&ast.BinaryExpression{
				Operator: ast.Add,
				Left:     &ast.Identifier{Name: "a"},
				Right:    &ast.Identifier{Name: "b"},
			},
			UnknownOperand,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual := OperandText(c.expr)
			if actual != c.expected {
				t.Errorf("expected %q, got %q", c.expected, actual)
			}
		})
	}
}

func TestMnemonicFor(t *testing.T) {
	cases := map[ast.BinaryOperator]string{
		ast.Add: "add",
		ast.Sub: "sub",
		ast.Mul: "imul",
		ast.Div: "idiv",
		"%":     UnknownMnemonic,
		"":      UnknownMnemonic,
	}

	for op, expected := range cases {
		actual := MnemonicFor(op)
		if actual != expected {
			t.Errorf("%q: expected %q, got %q", op, expected, actual)
		}
	}
}

func TestLeafOperandKind(t *testing.T) {
	if leafOperand(&ast.IntLiteral{Value: 1}).Kind != platform.ImmediateOperand {
		t.Error("int literal should be an immediate")
	}
	if leafOperand(&ast.FloatLiteral{Value: 1}).Kind != platform.ImmediateOperand {
		t.Error("float literal should be an immediate")
	}
	if leafOperand(&ast.Identifier{Name: "x"}).Kind != platform.SymbolOperand {
		t.Error("identifier should be a symbol")
	}
	if leafOperand(&ast.StringLiteral{Value: "x"}).Kind != platform.SymbolOperand {
		t.Error("string literal should be a symbol")
	}
}
