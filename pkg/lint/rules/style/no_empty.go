package style

import (
	"github.com/leapstack-labs/jslint/pkg/ast"
	"github.com/leapstack-labs/jslint/pkg/lint"
)

func init() {
	lint.MustRegister(NoEmpty)
}

// NoEmpty reports blocks and switch statements without statements or
// comments. Function bodies may be empty.
var NoEmpty = lint.Define(lint.RuleDef{
	Code:        "no-empty",
	Tags:        []string{lint.TagRecommended},
	Description: "Disallows empty block statements.",
	BadExample:  "if (foo) {}\ntry {\n  run();\n} catch (e) {}",
	GoodExample: "if (foo) {\n  // intentionally empty\n}\ntry {\n  run();\n} catch (e) {\n  log(e);\n}",
	Setup: func() lint.Handler {
		return lint.Handler{
			Kinds: []string{ast.KindStatementBlock, ast.KindSwitch},
			Enter: func(ctx *lint.Context, n *ast.Node) lint.Action {
				switch n.Kind {
				case ast.KindStatementBlock:
					if isFunctionBody(n) || len(n.NamedChildren()) > 0 || hasComment(ctx, n) {
						return lint.Continue
					}
					ctx.ReportWithHint(n, "no-empty", "Empty block statement", "Add code or comment to the empty block")
				case ast.KindSwitch:
					body := n.ChildByField("body")
					if body == nil || len(body.NamedChildren()) > 0 || hasComment(ctx, body) {
						return lint.Continue
					}
					ctx.ReportWithHint(n, "no-empty", "Empty switch statement", "Add case clauses or remove the switch statement")
				}
				return lint.Continue
			},
		}
	},
})

func isFunctionBody(n *ast.Node) bool {
	p := n.Parent
	return p != nil && n.Field == "body" && (ast.IsFunction(p.Kind) || p.Kind == "class_static_block")
}

func hasComment(ctx *lint.Context, n *ast.Node) bool {
	for _, c := range ctx.AllComments() {
		if n.Range.Encloses(c.Range) {
			return true
		}
		if c.Range.Start >= n.Range.End {
			break
		}
	}
	return false
}
