package correctness

import (
	"github.com/leapstack-labs/jslint/pkg/ast"
	"github.com/leapstack-labs/jslint/pkg/lint"
)

func init() {
	lint.MustRegister(NoUnreachable)
}

// NoUnreachable reports statements that no execution path reaches.
var NoUnreachable = lint.Define(lint.RuleDef{
	Code:        "no-unreachable",
	Tags:        []string{lint.TagRecommended},
	Description: "Disallows code that can never execute, such as statements after return or throw.",
	BadExample:  "function f() {\n  return 1;\n  cleanup();\n}",
	GoodExample: "function f() {\n  cleanup();\n  return 1;\n}",
	Setup: func() lint.Handler {
		return lint.Handler{
			EnterNode: func(ctx *lint.Context, n *ast.Node) lint.Action {
				if n.Kind != ast.KindProgram && ctx.ControlFlow().IsUnreachableRoot(n) {
					ctx.Report(n, "no-unreachable", "This statement is unreachable")
					// nested statements are covered by this report
					return lint.SkipChildren
				}
				return lint.Continue
			},
		}
	},
})
