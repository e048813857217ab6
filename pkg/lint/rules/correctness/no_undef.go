package correctness

import (
	"fmt"

	"github.com/leapstack-labs/jslint/pkg/ast"
	"github.com/leapstack-labs/jslint/pkg/lint"
)

func init() {
	lint.MustRegister(NoUndef)
}

// NoUndef reports identifiers that resolve to no binding and no known
// global. `typeof x` is allowed because it is the usual feature check.
var NoUndef = lint.Define(lint.RuleDef{
	Code:        "no-undef",
	Tags:        []string{lint.TagRecommended},
	Description: "Disallows the use of undeclared variables.",
	BadExample:  "const total = count + 1;",
	GoodExample: "const count = 0;\nconst total = count + 1;",
	Setup: func() lint.Handler {
		return lint.Handler{CheckFile: checkUndef}
	},
})

func checkUndef(ctx *lint.Context) {
	file := ctx.File()
	for _, ref := range ctx.Scope().References() {
		if !ref.Unresolved() {
			continue
		}
		node := file.Node(ref.Node)
		if isTypeofOperand(node) {
			continue
		}
		ctx.Report(node, "no-undef", fmt.Sprintf("%s is not defined", ref.Name))
	}
}

func isTypeofOperand(n *ast.Node) bool {
	p := n.Parent
	for p != nil && p.Kind == ast.KindParenthesized {
		p = p.Parent
	}
	if p == nil || p.Kind != ast.KindUnary {
		return false
	}
	op := p.ChildByField("operator")
	return op != nil && op.Kind == "typeof"
}
