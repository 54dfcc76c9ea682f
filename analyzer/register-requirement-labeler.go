package analyzer

import (
	"github.com/pattyshack/ershov/ast"
)

// Populates every node's register requirement (Ershov number), bottom up:
//
//   - a leaf which is an operator's right operand needs no register of its
//     own, since it is used directly as the instruction's source operand.
//   - every other leaf needs 1 register.
//   - an operator node needs max(left, right) registers when its operands'
//     requirements differ, and left + 1 registers otherwise.
//
// The tree must be structurally valid (see ValidateAstSyntax).
func LabelRegisterRequirements(expr ast.Expression) {
	label(expr, false)
}

func label(expr ast.Expression, isRightOperand bool) int {
	binary, ok := expr.(*ast.BinaryExpression)
	if !ok {
		requirement := 1
		if isRightOperand {
			requirement = 0
		}
		expr.SetRegisterRequirement(requirement)
		return requirement
	}

	left := label(binary.Left, false)
	right := label(binary.Right, true)

	requirement := left + 1
	if left != right {
		requirement = max(left, right)
	}

	binary.SetRegisterRequirement(requirement)
	return requirement
}

type registerRequirementLabeler struct{}

func LabelRegisterRequirementsPass() Pass[ast.Expression] {
	return registerRequirementLabeler{}
}

func (registerRequirementLabeler) Process(expr ast.Expression) {
	LabelRegisterRequirements(expr)
}
