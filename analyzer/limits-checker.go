package analyzer

import (
	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/ershov/ast"
)

type depthChecker struct {
	*parseutil.Emitter

	maxDepth int
	depth    int
	reported bool
}

// Reports expressions nested deeper than maxDepth.  A non-positive maxDepth
// disables the check.
func CheckDepth(emitter *parseutil.Emitter, maxDepth int) Pass[ast.Expression] {
	return &depthChecker{
		Emitter:  emitter,
		maxDepth: maxDepth,
	}
}

func (checker *depthChecker) Process(expr ast.Expression) {
	if checker.maxDepth <= 0 {
		return
	}

	checker.depth = 0
	checker.reported = false
	expr.Walk(checker)
}

func (checker *depthChecker) Enter(node ast.Node) {
	checker.depth++
	if checker.depth > checker.maxDepth && !checker.reported {
		checker.reported = true
		checker.Emit(
			node.Loc(),
			"expression nesting exceeds %d levels",
			checker.maxDepth)
	}
}

func (checker *depthChecker) Exit(node ast.Node) {
	checker.depth--
}

type registerBudgetChecker struct {
	*parseutil.Emitter

	poolSize int
}

// Reports expressions which need more registers than the pool provides.
// Register requirements must already be populated.
func CheckRegisterBudget(
	emitter *parseutil.Emitter,
	poolSize int,
) Pass[ast.Expression] {
	return registerBudgetChecker{
		Emitter:  emitter,
		poolSize: poolSize,
	}
}

func (checker registerBudgetChecker) Process(expr ast.Expression) {
	requirement := expr.RegisterRequirement()
	if requirement > checker.poolSize {
		checker.Emit(
			expr.Loc(),
			"expression needs %d registers, but the register pool has %d "+
				"(spilling is not supported)",
			requirement,
			checker.poolSize)
	}
}
