package style

import (
	"fmt"

	"github.com/leapstack-labs/jslint/pkg/ast"
	"github.com/leapstack-labs/jslint/pkg/lint"
)

func init() {
	lint.MustRegister(NoEval)
	lint.MustRegister(NoConsole)
}

// isGlobalRef reports whether the identifier n names the global of the same
// name rather than a local binding.
func isGlobalRef(ctx *lint.Context, n *ast.Node) bool {
	if n == nil || n.Kind != ast.KindIdentifier {
		return false
	}
	ref := ctx.Scope().Resolve(n)
	return ref.Binding == nil
}

// NoEval reports direct calls to eval. A local binding named eval is not
// the global function and is left alone.
var NoEval = lint.Define(lint.RuleDef{
	Code:        "no-eval",
	Tags:        []string{lint.TagRecommended},
	Description: "Disallows the use of eval.",
	BadExample:  "const obj = { x: \"foo\" };\nconst key = \"x\";\nconst value = eval(\"obj.\" + key);",
	GoodExample: "const obj = { x: \"foo\" };\nconst key = \"x\";\nconst value = obj[key];",
	Setup: func() lint.Handler {
		return lint.Handler{
			Kinds: []string{ast.KindCall},
			Enter: func(ctx *lint.Context, n *ast.Node) lint.Action {
				fn := n.ChildByField("function")
				if fn != nil && fn.Text() == "eval" && isGlobalRef(ctx, fn) {
					ctx.ReportWithHint(n, "no-eval", "`eval` call is not allowed", "Remove the use of `eval`")
				}
				return lint.Continue
			},
		}
	},
})

// NoConsole reports calls to methods of the global console object.
var NoConsole = lint.Define(lint.RuleDef{
	Code:        "no-console",
	Description: "Disallows the use of the console global.",
	BadExample:  "console.log(\"debug output\");",
	GoodExample: "logger.debug(\"debug output\");",
	Setup: func() lint.Handler {
		return lint.Handler{
			Kinds: []string{ast.KindMember},
			Enter: func(ctx *lint.Context, n *ast.Node) lint.Action {
				obj := n.ChildByField("object")
				if obj == nil || obj.Text() != "console" || !isGlobalRef(ctx, obj) {
					return lint.Continue
				}
				method := "console"
				if prop := n.ChildByField("property"); prop != nil {
					method += "." + prop.Text()
				}
				ctx.ReportWithHint(n, "no-console",
					fmt.Sprintf("`%s` calls are not allowed.", method),
					"Remove the console call or use a logger")
				return lint.Continue
			},
		}
	},
})
