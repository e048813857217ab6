package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/jslint/pkg/lint"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const recommendedMark = "✔️"

// RulesJSON is the JSON output of the rules listing.
type RulesJSON struct {
	Rules []lint.RuleInfo `json:"rules"`
	Count struct {
		Recommended int `json:"recommended"`
		Total       int `json:"total"`
	} `json:"count"`
}

// RenderRules lists rules sorted by code.
func (r *Renderer) RenderRules(rules []lint.Rule) error {
	infos := make([]lint.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, lint.GetRuleInfo(rule))
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Code < infos[j].Code })

	switch r.Mode() {
	case ModeJSON:
		out := RulesJSON{Rules: infos}
		for _, info := range infos {
			if isRecommended(info) {
				out.Count.Recommended++
			}
		}
		out.Count.Total = len(infos)
		return r.JSON(out)
	case ModeCompact:
		r.Println("Available rules (trailing " + recommendedMark + " mark indicates it is included in the recommended rule set):")
		for _, info := range infos {
			line := " - " + info.Code
			if isRecommended(info) {
				line += " " + recommendedMark
			}
			r.Println(line)
		}
		return nil
	}

	s := r.styles
	r.Println("")
	r.Println(s.Header1.Render(fmt.Sprintf("Lint Rules (%d)", len(infos))))
	r.Println("")

	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Code", "Tags", "Description"})
	for _, info := range infos {
		code := info.Code
		if isRecommended(info) {
			code += " " + recommendedMark
		}
		t.AppendRow(table.Row{code, strings.Join(info.Tags, ", "), firstLine(info.Description)})
	}
	t.Render()

	r.Println("")
	r.Println(s.Muted.Render("Use 'jslint rules <code>' for detailed documentation"))
	return nil
}

// RenderRule prints the documentation of one rule.
func (r *Renderer) RenderRule(rule lint.Rule) error {
	info := lint.GetRuleInfo(rule)
	if r.Mode() == ModeJSON {
		return r.JSON(info)
	}

	s := r.styles
	titleCaser := cases.Title(language.English)

	r.Println("")
	r.Println(s.Header1.Render(info.Code))
	r.Println("")
	if len(info.Tags) > 0 {
		tags := make([]string, len(info.Tags))
		for i, tag := range info.Tags {
			tags[i] = titleCaser.String(tag)
		}
		r.Printf("  %s: %s\n", s.Bold.Render("Tags"), strings.Join(tags, ", "))
	}
	r.Printf("  %s: %d\n", s.Bold.Render("Priority"), info.Priority)
	r.Println("")

	if info.Description != "" {
		r.Println(s.Bold.Render("Description"))
		for _, line := range strings.Split(info.Description, "\n") {
			r.Println("  " + line)
		}
		r.Println("")
	}
	if info.BadExample != "" {
		r.Println(s.Bold.Render("Bad Example"))
		for _, line := range strings.Split(info.BadExample, "\n") {
			r.Println(s.Muted.Render("  " + line))
		}
		r.Println("")
	}
	if info.GoodExample != "" {
		r.Println(s.Bold.Render("Good Example"))
		for _, line := range strings.Split(info.GoodExample, "\n") {
			r.Println(s.Success.Render("  " + line))
		}
		r.Println("")
	}
	r.Println(s.Muted.Render("Docs: " + info.DocsURL))
	return nil
}

func isRecommended(info lint.RuleInfo) bool {
	for _, tag := range info.Tags {
		if tag == lint.TagRecommended {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
