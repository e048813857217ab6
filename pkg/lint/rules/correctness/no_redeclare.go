package correctness

import (
	"fmt"

	"github.com/leapstack-labs/jslint/pkg/lint"
	"github.com/leapstack-labs/jslint/pkg/lint/scope"
)

func init() {
	lint.MustRegister(NoRedeclare)
}

// NoRedeclare reports a name declared twice in the same scope. Declaration
// merging of TypeScript types is allowed.
var NoRedeclare = lint.Define(lint.RuleDef{
	Code:        "no-redeclare",
	Tags:        []string{lint.TagRecommended},
	Description: "Disallows declaring the same variable more than once in a scope.",
	BadExample:  "var a = 3;\nvar a = 10;",
	GoodExample: "var a = 3;\na = 10;",
	Setup: func() lint.Handler {
		return lint.Handler{CheckFile: checkRedeclare}
	},
})

func checkRedeclare(ctx *lint.Context) {
	file := ctx.File()
	for _, r := range ctx.Scope().Redeclarations() {
		if r.Kind == scope.TypeOnly && r.Binding.Kind == scope.TypeOnly {
			continue
		}
		ctx.ReportWithHint(file.Node(r.Decl), "no-redeclare",
			"Redeclaring variables is not allowed",
			fmt.Sprintf("`%s` is already declared as %s", r.Binding.Name, r.Binding.Kind))
	}
}
