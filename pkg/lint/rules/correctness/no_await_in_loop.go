package correctness

import (
	"github.com/leapstack-labs/jslint/pkg/ast"
	"github.com/leapstack-labs/jslint/pkg/lint"
)

func init() {
	lint.MustRegister(NoAwaitInLoop)
}

// NoAwaitInLoop reports await expressions that run once per loop iteration.
// Each function starts a fresh frame, so an async callback inside a loop is
// not reported.
var NoAwaitInLoop = lint.Define(lint.RuleDef{
	Code:        "no-await-in-loop",
	Tags:        []string{lint.TagRecommended},
	Description: "Requires awaiting promises after a loop instead of once per iteration.",
	BadExample:  "for (const url of urls) {\n  results.push(await fetch(url));\n}",
	GoodExample: "const results = await Promise.all(urls.map((url) => fetch(url)));",
	Setup: func() lint.Handler {
		// depth of loop parts entered, one entry per function
		frames := []int{0}
		return lint.Handler{
			EnterNode: func(ctx *lint.Context, n *ast.Node) lint.Action {
				switch {
				case ast.IsFunction(n.Kind):
					frames = append(frames, 0)
				case isRepeatedLoopPart(n):
					frames[len(frames)-1]++
				}
				if n.Kind == ast.KindAwait && frames[len(frames)-1] > 0 {
					ctx.ReportWithHint(n, "no-await-in-loop",
						"Unexpected `await` inside a loop.",
						"Remove `await` in loop body, store all promises in the loop body, and then `await Promise.all` them after the loop")
				}
				return lint.Continue
			},
			ExitNode: func(_ *lint.Context, n *ast.Node) {
				switch {
				case ast.IsFunction(n.Kind):
					frames = frames[:len(frames)-1]
				case isRepeatedLoopPart(n):
					frames[len(frames)-1]--
				}
			},
		}
	},
})

// isRepeatedLoopPart reports whether n is a part of a loop that runs on
// every iteration. The initializer of a for loop and the iterated value of a
// for-in/for-of loop run once.
func isRepeatedLoopPart(n *ast.Node) bool {
	p := n.Parent
	if p == nil || !ast.IsLoop(p.Kind) || !n.Named {
		return false
	}
	switch p.Kind {
	case ast.KindFor:
		return n.Field == "body" || n.Field == "condition" || n.Field == "increment"
	case ast.KindForIn:
		return n.Field == "body"
	}
	return n.Field == "body" || n.Field == "condition"
}
