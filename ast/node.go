package ast

import (
	"github.com/pattyshack/gt/parseutil"
)

type Node interface {
	parseutil.Locatable
	Walk(Visitor)
}

type Visitor interface {
	Enter(Node)
	Exit(Node)
}

type Validator interface {
	Validate(*parseutil.Emitter)
}

// An arithmetic expression tree node.  Operator nodes exclusively own their
// operand subtrees.
type Expression interface {
	Node

	IsLeaf() bool

	// The minimum number of registers needed to evaluate the subtree without
	// spilling (aka the Ershov number).  The value is populated by the
	// analyzer before code generation and is never modified by the generator.
	RegisterRequirement() int
	SetRegisterRequirement(int)
}

type expression struct {
	// Internal (set during analysis)
	Requirement int
}

func (expr *expression) RegisterRequirement() int {
	return expr.Requirement
}

func (expr *expression) SetRegisterRequirement(requirement int) {
	expr.Requirement = requirement
}

type leaf struct {
	expression
}

func (leaf) IsLeaf() bool {
	return true
}

type IntLiteral struct {
	leaf
	parseutil.StartEndPos

	Value int64
}

var _ Expression = &IntLiteral{}

func (lit *IntLiteral) Walk(visitor Visitor) {
	visitor.Enter(lit)
	visitor.Exit(lit)
}

type FloatLiteral struct {
	leaf
	parseutil.StartEndPos

	Value float64
}

var _ Expression = &FloatLiteral{}

func (lit *FloatLiteral) Walk(visitor Visitor) {
	visitor.Enter(lit)
	visitor.Exit(lit)
}

// Double-quoted text literal.  The quotes are not part of the value.
type StringLiteral struct {
	leaf
	parseutil.StartEndPos

	Value string
}

var _ Expression = &StringLiteral{}

func (lit *StringLiteral) Walk(visitor Visitor) {
	visitor.Enter(lit)
	visitor.Exit(lit)
}

type Identifier struct {
	leaf
	parseutil.StartEndPos

	Name string
}

var _ Expression = &Identifier{}
var _ Validator = &Identifier{}

func (ident *Identifier) Walk(visitor Visitor) {
	visitor.Enter(ident)
	visitor.Exit(ident)
}

func (ident *Identifier) Validate(emitter *parseutil.Emitter) {
	if ident.Name == "" {
		emitter.Emit(ident.Loc(), "empty identifier name")
	}
}

type BinaryOperator string

const (
	Add = BinaryOperator("+")
	Sub = BinaryOperator("-")
	Mul = BinaryOperator("*")
	Div = BinaryOperator("/")
)

func (op BinaryOperator) IsValid() bool {
	switch op {
	case Add, Sub, Mul, Div:
		return true
	default:
		return false
	}
}

// Expressions of the form: <left> <op> <right>
type BinaryExpression struct {
	expression
	parseutil.StartEndPos

	Operator BinaryOperator

	Left  Expression
	Right Expression
}

var _ Expression = &BinaryExpression{}
var _ Validator = &BinaryExpression{}

func (BinaryExpression) IsLeaf() bool {
	return false
}

func (binary *BinaryExpression) Walk(visitor Visitor) {
	visitor.Enter(binary)
	if binary.Left != nil {
		binary.Left.Walk(visitor)
	}
	if binary.Right != nil {
		binary.Right.Walk(visitor)
	}
	visitor.Exit(binary)
}

func (binary *BinaryExpression) Validate(emitter *parseutil.Emitter) {
	if !binary.Operator.IsValid() {
		emitter.Emit(
			binary.Loc(),
			"unexpected binary operator (%s)",
			binary.Operator)
	}

	if binary.Left == nil {
		emitter.Emit(binary.Loc(), "binary expression missing left operand")
	}

	if binary.Right == nil {
		emitter.Emit(binary.Loc(), "binary expression missing right operand")
	}
}

// Returns the operator node's (left, right) children.  Leaves have no
// children.
func Children(expr Expression) []Expression {
	binary, ok := expr.(*BinaryExpression)
	if !ok {
		return nil
	}
	return []Expression{binary.Left, binary.Right}
}
