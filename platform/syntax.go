package platform

import (
	"fmt"

	"github.com/pattyshack/ershov/architecture"
)

type OperandKind string

const (
	RegisterOperand  = OperandKind("register")
	ImmediateOperand = OperandKind("immediate")
	SymbolOperand    = OperandKind("symbol")
)

type Operand struct {
	Kind OperandKind
	Text string
}

func NewRegisterOperand(reg *architecture.Register) Operand {
	return Operand{
		Kind: RegisterOperand,
		Text: reg.Name,
	}
}

// Assembly dialect used for two-operand instruction lines.  Every line
// emitted for a file must use the same syntax.
type Syntax interface {
	Name() string

	// The assembler directive which selects this syntax.
	Directive() string

	// Formats "dest = dest <op> src" (or "dest = src" for mov) without
	// leading indentation.
	Instruction(mnemonic string, src Operand, dest Operand) string
}

const (
	IntelSyntaxName = "intel"
	ATTSyntaxName   = "att"
)

func LookupSyntax(name string) (Syntax, error) {
	switch name {
	case IntelSyntaxName:
		return IntelSyntax{}, nil
	case ATTSyntaxName:
		return ATTSyntax{}, nil
	default:
		return nil, fmt.Errorf("unknown assembly syntax (%s)", name)
	}
}

// Destination first, no register / immediate prefixes.
type IntelSyntax struct{}

var _ Syntax = IntelSyntax{}

func (IntelSyntax) Name() string {
	return IntelSyntaxName
}

func (IntelSyntax) Directive() string {
	return ".intel_syntax noprefix"
}

func (IntelSyntax) Instruction(
	mnemonic string,
	src Operand,
	dest Operand,
) string {
	return mnemonic + " " + dest.Text + ", " + src.Text
}

// Source first, %-prefixed registers, $-prefixed immediates.
type ATTSyntax struct{}

var _ Syntax = ATTSyntax{}

func (ATTSyntax) Name() string {
	return ATTSyntaxName
}

func (ATTSyntax) Directive() string {
	return ".att_syntax prefix"
}

func (syntax ATTSyntax) Instruction(
	mnemonic string,
	src Operand,
	dest Operand,
) string {
	return mnemonic + " " + syntax.operand(src) + ", " + syntax.operand(dest)
}

func (ATTSyntax) operand(operand Operand) string {
	switch operand.Kind {
	case RegisterOperand:
		return "%" + operand.Text
	case ImmediateOperand:
		return "$" + operand.Text
	default:
		return operand.Text
	}
}
