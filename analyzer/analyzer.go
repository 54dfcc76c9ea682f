package analyzer

import (
	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/ershov/ast"
)

type Options struct {
	// Maximum expression tree depth.  Non-positive means unbounded.
	MaxDepth int

	// Number of registers available for expression evaluation.
	PoolSize int
}

// Validates and annotates the expressions.  Returns the expressions which
// are ready for code generation, in input order.  Diagnostics for the
// remaining expressions are emitted in input order.
func Analyze(
	exprs []ast.Expression,
	options Options,
	emitter *parseutil.Emitter,
) []ast.Expression {
	exprEmitters := make([]*parseutil.Emitter, len(exprs))
	for idx := range exprs {
		exprEmitters[idx] = &parseutil.Emitter{}
	}

	ParallelProcess(
		exprs,
		func(idx int, expr ast.Expression) {
			exprEmitter := exprEmitters[idx]

			passes := [][]Pass[ast.Expression]{
				{ValidateAstSyntax(exprEmitter)},
				{CheckDepth(exprEmitter, options.MaxDepth)},
				{LabelRegisterRequirementsPass()},
				{CheckRegisterBudget(exprEmitter, options.PoolSize)},
			}

			Process(expr, passes, exprEmitter.HasErrors)
		})

	valid := make([]ast.Expression, 0, len(exprs))
	for idx, expr := range exprs {
		exprEmitter := exprEmitters[idx]
		if exprEmitter.HasErrors() {
			emitter.EmitErrors(exprEmitter.Errors()...)
			continue
		}
		valid = append(valid, expr)
	}

	return valid
}
