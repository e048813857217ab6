package correctness

import (
	"fmt"

	"github.com/leapstack-labs/jslint/pkg/ast"
	"github.com/leapstack-labs/jslint/pkg/lint"
)

func init() {
	lint.MustRegister(NoUnusedLabels)
}

// NoUnusedLabels reports labels that no break or continue refers to.
var NoUnusedLabels = lint.Define(lint.RuleDef{
	Code:        "no-unused-labels",
	Tags:        []string{lint.TagRecommended},
	Description: "Disallows labels that are never used by break or continue.",
	BadExample:  "outer: for (const x of xs) {\n  if (x) break;\n}",
	GoodExample: "outer: for (const x of xs) {\n  for (const y of x) {\n    if (y) break outer;\n  }\n}",
	Setup: func() lint.Handler {
		type label struct {
			name string
			used bool
		}
		var labels []label
		return lint.Handler{
			Kinds: []string{ast.KindLabeled, ast.KindBreak, ast.KindContinue},
			Enter: func(_ *lint.Context, n *ast.Node) lint.Action {
				l := n.ChildByField("label")
				if l == nil {
					return lint.Continue
				}
				if n.Kind == ast.KindLabeled {
					labels = append(labels, label{name: l.Text()})
					return lint.Continue
				}
				for i := len(labels) - 1; i >= 0; i-- {
					if labels[i].name == l.Text() {
						labels[i].used = true
						break
					}
				}
				return lint.Continue
			},
			Exit: func(ctx *lint.Context, n *ast.Node) {
				if n.Kind != ast.KindLabeled || n.ChildByField("label") == nil {
					return
				}
				top := labels[len(labels)-1]
				labels = labels[:len(labels)-1]
				if !top.used {
					ctx.ReportWithHint(n.ChildByField("label"), "no-unused-labels",
						fmt.Sprintf("`%s` label is never used", top.name),
						"Remove the label or use it in break/continue")
				}
			},
		}
	},
})
