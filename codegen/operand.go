package codegen

import (
	"strconv"

	"github.com/pattyshack/ershov/ast"
	"github.com/pattyshack/ershov/platform"
)

const (
	// Placeholder for operands that are not leaf values.  Well-formed trees
	// never produce it.
	UnknownOperand = "???"

	// Placeholder mnemonic for unrecognized operators.  Generation does not
	// fail on unknown operators; the syntax validator reports them instead.
	UnknownMnemonic = "not_op"
)

var mnemonics = map[ast.BinaryOperator]string{
	ast.Add: "add",
	ast.Sub: "sub",
	ast.Mul: "imul",
	ast.Div: "idiv",
}

const moveMnemonic = "mov"

// Returns the textual operand form of a leaf's value.
func OperandText(expr ast.Expression) string {
	switch node := expr.(type) {
	case *ast.IntLiteral:
		return strconv.FormatInt(node.Value, 10)
	case *ast.FloatLiteral:
		return strconv.FormatFloat(node.Value, 'f', 6, 64)
	case *ast.Identifier:
		return node.Name
	case *ast.StringLiteral:
		return node.Value
	default:
		return UnknownOperand
	}
}

func MnemonicFor(op ast.BinaryOperator) string {
	mnemonic, ok := mnemonics[op]
	if !ok {
		return UnknownMnemonic
	}
	return mnemonic
}

func leafOperand(expr ast.Expression) platform.Operand {
	kind := platform.SymbolOperand
	switch expr.(type) {
	case *ast.IntLiteral, *ast.FloatLiteral:
		kind = platform.ImmediateOperand
	}

	return platform.Operand{
		Kind: kind,
		Text: OperandText(expr),
	}
}
