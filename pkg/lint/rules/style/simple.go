package style

import (
	"fmt"

	"github.com/leapstack-labs/jslint/pkg/ast"
	"github.com/leapstack-labs/jslint/pkg/lint"
	"github.com/leapstack-labs/jslint/pkg/token"
)

func init() {
	lint.MustRegister(NoDebugger)
	lint.MustRegister(NoVar)
	lint.MustRegister(NoWith)
	lint.MustRegister(Eqeqeq)
}

// NoDebugger reports debugger statements.
var NoDebugger = lint.Define(lint.RuleDef{
	Code:        "no-debugger",
	Tags:        []string{lint.TagRecommended},
	Description: "Disallows the use of the debugger statement.",
	BadExample:  "function isLongString(x) {\n  debugger;\n  return x.length > 100;\n}",
	GoodExample: "function isLongString(x) {\n  return x.length > 100;\n}",
	Setup: func() lint.Handler {
		return lint.Handler{
			Kinds: []string{ast.KindDebugger},
			Enter: func(ctx *lint.Context, n *ast.Node) lint.Action {
				ctx.ReportWithHint(n, "no-debugger", "`debugger` statement is not allowed", "Remove the `debugger` statement")
				return lint.Continue
			},
		}
	},
})

// NoVar reports var declarations.
var NoVar = lint.Define(lint.RuleDef{
	Code:        "no-var",
	Tags:        []string{lint.TagRecommended},
	Description: "Enforces the use of block scoped variables over more error prone function scoped variables.",
	BadExample:  "var foo = \"bar\";",
	GoodExample: "const foo = \"bar\";\nlet bar = 1;",
	Setup: func() lint.Handler {
		return lint.Handler{
			Kinds: []string{ast.KindVariableDecl},
			Enter: func(ctx *lint.Context, n *ast.Node) lint.Action {
				// declare var x: T; declares nothing at runtime
				if n.Ancestor(ast.KindAmbient) != nil {
					return lint.Continue
				}
				ctx.AddDiagnosticWithHint(keywordRange(n, "var"), "no-var",
					"`var` keyword is not allowed.",
					"Use `let` or `const` instead")
				return lint.Continue
			},
		}
	},
})

// NoWith reports with statements.
var NoWith = lint.Define(lint.RuleDef{
	Code:        "no-with",
	Tags:        []string{lint.TagRecommended},
	Description: "Disallows the usage of with statements.",
	BadExample:  "with (someVar) {\n  console.log(\"foo\");\n}",
	GoodExample: "console.log(someVar.foo);",
	Setup: func() lint.Handler {
		return lint.Handler{
			Kinds: []string{ast.KindWith},
			Enter: func(ctx *lint.Context, n *ast.Node) lint.Action {
				ctx.Report(n, "no-with", "`with` statement is not allowed")
				return lint.Continue
			},
		}
	},
})

// Eqeqeq reports loose equality comparisons.
var Eqeqeq = lint.Define(lint.RuleDef{
	Code:        "eqeqeq",
	Description: "Enforces the use of type-safe equality operators === and !==.",
	BadExample:  "if (a == 5) {}",
	GoodExample: "if (a === 5) {}",
	Setup: func() lint.Handler {
		return lint.Handler{
			Kinds: []string{ast.KindBinary},
			Enter: func(ctx *lint.Context, n *ast.Node) lint.Action {
				op := n.ChildByField("operator")
				if op == nil || (op.Kind != "==" && op.Kind != "!=") {
					return lint.Continue
				}
				ctx.ReportWithHint(n, "eqeqeq",
					fmt.Sprintf("expected '%s=' and instead saw '%s'.", op.Kind, op.Kind),
					fmt.Sprintf("Use '%s='", op.Kind))
				return lint.Continue
			},
		}
	},
})

// keywordRange returns the range of the anonymous keyword child of n, or
// the range of n itself.
func keywordRange(n *ast.Node, keyword string) token.Range {
	for _, c := range n.Children {
		if !c.Named && c.Kind == keyword {
			return c.Range
		}
	}
	return n.Range
}
