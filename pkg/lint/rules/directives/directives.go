package directives

import (
	"fmt"
	"math"

	"github.com/leapstack-labs/jslint/pkg/lint"
)

func init() {
	lint.MustRegister(BanUnknownRuleCode)
	lint.MustRegister(BanUntaggedIgnore)
	lint.MustRegister(BanUnusedIgnore)
}

// BanUnknownRuleCode reports directive codes that are not registered.
var BanUnknownRuleCode = lint.Define(lint.RuleDef{
	Code:        "ban-unknown-rule-code",
	Tags:        []string{lint.TagRecommended},
	Priority:    math.MinInt32,
	Description: "Warns the usage of unknown rule codes in ignore directives.",
	BadExample:  "// lint-ignore no-such-rule\nfunction f() {}",
	GoodExample: "// lint-ignore no-empty\nfunction f() {}",
	Setup: func() lint.Handler {
		return lint.Handler{
			CheckDirectives: func(ctx *lint.Context) {
				for _, d := range ctx.IgnoreDirectives() {
					for _, code := range d.Codes() {
						if !ctx.KnownCode(code) {
							ctx.AddDiagnostic(d.Range, "ban-unknown-rule-code", fmt.Sprintf("Unknown rule for code %q", code))
						}
					}
				}
			},
		}
	},
})

// BanUntaggedIgnore reports directives that suppress every code.
var BanUntaggedIgnore = lint.Define(lint.RuleDef{
	Code:        "ban-untagged-ignore",
	Tags:        []string{lint.TagRecommended},
	Description: "Requires ignore directives to name the rules they suppress.",
	BadExample:  "// lint-ignore\nfunction f() {}",
	GoodExample: "// lint-ignore no-empty\nfunction f() {}",
	Setup: func() lint.Handler {
		return lint.Handler{
			CheckDirectives: func(ctx *lint.Context) {
				for _, d := range ctx.IgnoreDirectives() {
					if d.IgnoreAll() {
						ctx.AddDiagnosticWithHint(d.Range, "ban-untagged-ignore",
							"Ignore directive requires lint rule name(s)",
							fmt.Sprintf("Add one or more lint rule names.  E.g. // %s no-var", d.Marker))
					}
				}
			},
		}
	},
})

// BanUnusedIgnore reports directive codes that suppressed nothing. It runs
// after the other directive rules so their suppressed diagnostics count as
// uses. Listing the rule in the file directive silences it.
var BanUnusedIgnore = lint.Define(lint.RuleDef{
	Code:        "ban-unused-ignore",
	Tags:        []string{lint.TagRecommended},
	Priority:    math.MaxInt32,
	Description: "Warns unused ignore directives.",
	BadExample:  "// lint-ignore no-debugger\nconst x = 1;",
	GoodExample: "// lint-ignore no-debugger\ndebugger;",
	Setup: func() lint.Handler {
		return lint.Handler{CheckDirectives: checkUnusedIgnores}
	},
})

func checkUnusedIgnores(ctx *lint.Context) {
	if fd := ctx.FileIgnoreDirective(); fd != nil && fd.HasCode("ban-unused-ignore") {
		return
	}
	for _, d := range ctx.IgnoreDirectives() {
		for _, code := range d.UnusedCodes() {
			// unknown codes are reported by ban-unknown-rule-code
			if !ctx.KnownCode(code) {
				continue
			}
			ctx.AddDiagnostic(d.Range, "ban-unused-ignore", fmt.Sprintf("Ignore for code %q was not used.", code))
		}
	}
}
