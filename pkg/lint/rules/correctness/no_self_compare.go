package correctness

import (
	"fmt"

	"github.com/leapstack-labs/jslint/pkg/ast"
	"github.com/leapstack-labs/jslint/pkg/lint"
)

func init() {
	lint.MustRegister(NoSelfCompare)
}

var comparisonOperators = map[string]bool{
	"==": true, "===": true, "!=": true, "!==": true,
	"<": true, "<=": true, ">": true, ">=": true,
}

// NoSelfCompare reports comparisons whose operands are textually identical.
var NoSelfCompare = lint.Define(lint.RuleDef{
	Code:        "no-self-compare",
	Tags:        []string{lint.TagRecommended},
	Description: "Disallows comparing a value with itself. Use Number.isNaN to test for NaN.",
	BadExample:  "if (x === x) {}",
	GoodExample: "if (Number.isNaN(x)) {}",
	Setup: func() lint.Handler {
		return lint.Handler{
			Kinds: []string{ast.KindBinary},
			Enter: func(ctx *lint.Context, n *ast.Node) lint.Action {
				op := n.ChildByField("operator")
				if op == nil || !comparisonOperators[op.Kind] {
					return lint.Continue
				}
				left, right := ast.Unparen(n.ChildByField("left")), ast.Unparen(n.ChildByField("right"))
				if left == nil || right == nil || left.Text() != right.Text() {
					return lint.Continue
				}
				ctx.Report(n, "no-self-compare", fmt.Sprintf("`%s` is compared to itself", left.Text()))
				return lint.Continue
			},
		}
	},
})
