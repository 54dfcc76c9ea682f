package codegen

import (
	"fmt"

	"github.com/pattyshack/ershov/architecture"
	"github.com/pattyshack/ershov/ast"
	"github.com/pattyshack/ershov/platform"
)

type generationCase int

const (
	// The expression is a leaf which needs one register.
	leafCase = generationCase(iota)

	// The right operand is a leaf which can be used directly as an
	// instruction operand.
	leafRightOperandCase

	// The right subtree needs at least as many registers as the left
	// subtree.  The right subtree is evaluated first.
	rightFirstCase

	// The left subtree needs more registers than the right subtree.
	leftFirstCase

	// The remaining registers cannot hold the subtrees' results.
	exhaustedCase

	// The expression violates the tree's structural invariants.
	malformedCase
)

func (c generationCase) String() string {
	switch c {
	case leafCase:
		return "leaf"
	case leafRightOperandCase:
		return "leaf-right-operand"
	case rightFirstCase:
		return "right-first"
	case leftFirstCase:
		return "left-first"
	case exhaustedCase:
		return "exhausted"
	default:
		return "malformed"
	}
}

// Number of registers needed to evaluate a binary expression whose operands
// need left and right registers.
func combinedRequirement(left int, right int) int {
	if left == right {
		return left + 1
	}
	return max(left, right)
}

// Selects exactly one generation case, given the number of registers
// currently on the register stack.  Ties between the left and right subtree
// favor right-first evaluation.
func selectCase(expr ast.Expression, available int) generationCase {
	if expr == nil {
		return malformedCase
	}

	if expr.IsLeaf() {
		if expr.RegisterRequirement() == 1 {
			return leafCase
		}
		return malformedCase
	}

	binary, ok := expr.(*ast.BinaryExpression)
	if !ok || binary.Left == nil || binary.Right == nil {
		return malformedCase
	}

	if binary.Right.IsLeaf() && binary.Right.RegisterRequirement() == 0 {
		return leafRightOperandCase
	}

	left := binary.Left.RegisterRequirement()
	right := binary.Right.RegisterRequirement()
	if combinedRequirement(left, right) > available {
		return exhaustedCase
	}

	if left <= right {
		return rightFirstCase
	}

	return leftFirstCase
}

// Generator emits instructions which evaluate an expression into the
// register on top of the register stack, using the fewest registers
// possible (Sethi-Ullman).  The register stack's depth is unchanged after
// each Generate call, including failed calls.
type Generator struct {
	stack  *RegisterStack
	syntax platform.Syntax
	sink   Sink

	maxDepth int // non-positive means unbounded
	depth    int
}

func NewGenerator(
	stack *RegisterStack,
	syntax platform.Syntax,
	sink Sink,
	maxDepth int,
) *Generator {
	return &Generator{
		stack:    stack,
		syntax:   syntax,
		sink:     sink,
		maxDepth: maxDepth,
	}
}

// The expression's register requirements must be populated.
func (gen *Generator) Generate(expr ast.Expression) error {
	return gen.generate(expr)
}

// The register holding the most recently generated expression's value.
func (gen *Generator) ResultRegister() (*architecture.Register, error) {
	return gen.stack.Top()
}

func (gen *Generator) generate(expr ast.Expression) error {
	if expr == nil {
		return fmt.Errorf("%w: nil expression", ErrMalformedExpression)
	}

	if gen.maxDepth > 0 && gen.depth >= gen.maxDepth {
		return fmt.Errorf(
			"%s: %w (%d)",
			expr.Loc(),
			ErrRecursionLimit,
			gen.maxDepth)
	}

	gen.depth++
	defer func() { gen.depth-- }()

	switch selectCase(expr, gen.stack.Depth()) {
	case leafCase:
		return gen.emit(moveMnemonic, leafOperand(expr))
	case leafRightOperandCase:
		return gen.generateLeafRightOperand(expr.(*ast.BinaryExpression))
	case rightFirstCase:
		return gen.generateRightFirst(expr.(*ast.BinaryExpression))
	case leftFirstCase:
		return gen.generateLeftFirst(expr.(*ast.BinaryExpression))
	case exhaustedCase:
		binary := expr.(*ast.BinaryExpression)
		return fmt.Errorf(
			"%s: %w: %s needs %d registers, but only %d are available",
			expr.Loc(),
			ErrRegisterPoolExhausted,
			ast.InfixString(expr),
			combinedRequirement(
				binary.Left.RegisterRequirement(),
				binary.Right.RegisterRequirement()),
			gen.stack.Depth())
	default:
		return fmt.Errorf(
			"%s: %w: %s (register requirement %d)",
			expr.Loc(),
			ErrMalformedExpression,
			ast.InfixString(expr),
			expr.RegisterRequirement())
	}
}

// Emits "top = top <op> src".
func (gen *Generator) emit(mnemonic string, src platform.Operand) error {
	top, err := gen.stack.Top()
	if err != nil {
		return err
	}

	return gen.sink.WriteLine(
		gen.syntax.Instruction(mnemonic, src, platform.NewRegisterOperand(top)))
}

func (gen *Generator) generateLeafRightOperand(
	binary *ast.BinaryExpression,
) error {
	err := gen.generate(binary.Left)
	if err != nil {
		return err
	}

	return gen.emit(MnemonicFor(binary.Operator), leafOperand(binary.Right))
}

// Evaluates the right subtree into the second register, then the left
// subtree into the original top register.  The swap is undone, and the
// borrowed register returned, on every exit path.
func (gen *Generator) generateRightFirst(
	binary *ast.BinaryExpression,
) (
	err error,
) {
	err = gen.stack.SwapTop()
	if err != nil {
		return err
	}
	defer func() {
		swapErr := gen.stack.SwapTop()
		if err == nil {
			err = swapErr
		}
	}()

	err = gen.generate(binary.Right)
	if err != nil {
		return err
	}

	right, err := gen.stack.Pop()
	if err != nil {
		return err
	}
	defer gen.stack.Push(right)

	err = gen.generate(binary.Left)
	if err != nil {
		return err
	}

	return gen.emit(
		MnemonicFor(binary.Operator),
		platform.NewRegisterOperand(right))
}

// Evaluates the left subtree into the top register, then the right subtree
// into the next register, and folds the right result into the left result.
func (gen *Generator) generateLeftFirst(
	binary *ast.BinaryExpression,
) error {
	err := gen.generate(binary.Left)
	if err != nil {
		return err
	}

	left, err := gen.stack.Pop()
	if err != nil {
		return err
	}
	defer gen.stack.Push(left)

	err = gen.generate(binary.Right)
	if err != nil {
		return err
	}

	right, err := gen.stack.Top()
	if err != nil {
		return err
	}

	return gen.sink.WriteLine(
		gen.syntax.Instruction(
			MnemonicFor(binary.Operator),
			platform.NewRegisterOperand(right),
			platform.NewRegisterOperand(left)))
}

// Generates code for one top-level expression on a fresh register stack
// built from pool.  The expression's value ends up in pool[0].
func GenerateExpression(
	expr ast.Expression,
	pool []*architecture.Register,
	syntax platform.Syntax,
	sink Sink,
	maxDepth int,
) error {
	stack := NewRegisterStack(pool)
	err := NewGenerator(stack, syntax, sink, maxDepth).Generate(expr)
	if err != nil {
		return err
	}

	if stack.Depth() != stack.Capacity() {
		panic(fmt.Sprintf(
			"register stack not restored: depth %d, capacity %d",
			stack.Depth(),
			stack.Capacity()))
	}

	return nil
}
