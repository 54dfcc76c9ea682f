package analyzer

import (
	"github.com/pattyshack/gt/parseutil"

	"github.com/pattyshack/ershov/ast"
)

type astSyntaxValidator struct {
	*parseutil.Emitter
}

func ValidateAstSyntax(emitter *parseutil.Emitter) Pass[ast.Expression] {
	return astSyntaxValidator{
		Emitter: emitter,
	}
}

func (validator astSyntaxValidator) Process(expr ast.Expression) {
	expr.Walk(validator)
}

func (validator astSyntaxValidator) Enter(n ast.Node) {
	switch node := n.(type) {
	case ast.Validator:
		node.Validate(validator.Emitter)
	}
}

func (validator astSyntaxValidator) Exit(node ast.Node) {
}
