package correctness

import (
	"fmt"

	"github.com/leapstack-labs/jslint/pkg/lint"
	"github.com/leapstack-labs/jslint/pkg/lint/scope"
)

func init() {
	lint.MustRegister(NoShadowRestrictedNames)
}

var restrictedNames = map[string]bool{
	"undefined": true,
	"NaN":       true,
	"Infinity":  true,
	"arguments": true,
	"eval":      true,
}

// NoShadowRestrictedNames reports bindings that shadow restricted globals.
var NoShadowRestrictedNames = lint.Define(lint.RuleDef{
	Code:        "no-shadow-restricted-names",
	Tags:        []string{lint.TagRecommended},
	Description: "Disallows naming variables, functions or parameters after restricted globals.",
	BadExample:  "let Infinity = 5;\nfunction NaN() {}",
	GoodExample: "let value = 5;\nfunction isNotANumber() {}",
	Setup: func() lint.Handler {
		return lint.Handler{CheckFile: checkShadowRestricted}
	},
})

func checkShadowRestricted(ctx *lint.Context) {
	tree := ctx.Scope()
	file := ctx.File()
	for i := 1; i <= tree.Len(); i++ {
		s := tree.Get(scope.ID(i))
		for _, b := range s.Bindings() {
			if !restrictedNames[b.Name] || b.Kind == scope.TypeOnly {
				continue
			}
			ctx.ReportWithHint(file.Node(b.Decl), "no-shadow-restricted-names",
				fmt.Sprintf("Shadowing of global property %s", b.Name),
				"Rename the variable")
		}
	}
}
