package typescript

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/leapstack-labs/jslint/pkg/lint"
)

func init() {
	lint.MustRegister(BanTSComment)
}

var tsDirectives = []string{"expect-error", "ignore", "nocheck"}

// BanTSComment reports compiler suppression comments that carry no
// explanation, such as a bare `// @ts-ignore`.
var BanTSComment = lint.Define(lint.RuleDef{
	Code:        "ban-ts-comment",
	Tags:        []string{lint.TagRecommended},
	Description: "Requires an explanation on TypeScript directive comments that suppress compiler errors.",
	BadExample:  "// @ts-ignore\nconst x: number = \"1\";",
	GoodExample: "// @ts-ignore: legacy value, fixed in the next major\nconst x: number = \"1\";",
	Setup: func() lint.Handler {
		return lint.Handler{CheckFile: checkTSComments}
	},
})

func checkTSComments(ctx *lint.Context) {
	for _, c := range ctx.AllComments() {
		if !c.IsLineComment() {
			continue
		}
		directive, reason, ok := parseTSDirective(c.Body())
		if !ok || reason != "" {
			continue
		}
		ctx.AddDiagnosticWithHint(c.Range, "ban-ts-comment",
			fmt.Sprintf("`@ts-%s` is not allowed without comment", directive),
			fmt.Sprintf("Add an in-line comment explaining the reason for using `@ts-%s`, like `// @ts-%s: <reason>`", directive, directive))
	}
}

// parseTSDirective splits "@ts-ignore: reason" into its directive name and
// explanation.
func parseTSDirective(body string) (directive, reason string, ok bool) {
	body = strings.TrimSpace(body)
	rest, found := strings.CutPrefix(body, "@ts-")
	if !found {
		return "", "", false
	}
	for _, d := range tsDirectives {
		tail, match := strings.CutPrefix(rest, d)
		if !match {
			continue
		}
		if tail != "" && tail[0] != ':' && !unicode.IsSpace(rune(tail[0])) {
			// e.g. @ts-ignored
			return "", "", false
		}
		tail = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tail), ":"))
		return d, tail, true
	}
	return "", "", false
}
