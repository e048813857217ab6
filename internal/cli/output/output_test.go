package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/leapstack-labs/jslint/internal/runner"
	"github.com/leapstack-labs/jslint/pkg/lint"
	"github.com/leapstack-labs/jslint/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diag(file, code, msg string, start, end, line, col int) lint.Diagnostic {
	return lint.Diagnostic{
		Code:     code,
		Message:  msg,
		Range:    token.Range{Start: start, End: end},
		Pos:      token.Position{Line: line, Column: col, Offset: start},
		EndPos:   token.Position{Line: line, Column: col + end - start, Offset: end},
		Filename: file,
	}
}

func TestCodeFrame(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		diag  lint.Diagnostic
		lines []frameLine
	}{
		{
			name: "single line",
			src:  "let a = 1;\ndebugger;\n",
			diag: diag("a.js", "no-debugger", "", 11, 20, 2, 1),
			lines: []frameLine{
				{number: 2, text: "debugger;", caret: "^^^^^^^^^"},
			},
		},
		{
			name: "capped multi line",
			src:  "a\nb\nc\nd\ne",
			diag: diag("a.js", "x", "", 0, 9, 1, 1),
			lines: []frameLine{
				{number: 1, text: "a", caret: "^"},
				{number: 2, text: "b", caret: "^"},
				{number: 3, text: "c", caret: "^"},
			},
		},
		{
			name: "tabs",
			src:  "\tfoo;",
			diag: diag("a.js", "x", "", 1, 4, 1, 2),
			lines: []frameLine{
				{number: 1, text: "    foo;", caret: "    ^^^"},
			},
		},
		{
			name: "wide characters",
			src:  "好x",
			diag: diag("a.js", "x", "", 3, 4, 1, 4),
			lines: []frameLine{
				{number: 1, text: "好x", caret: "  ^"},
			},
		},
		{
			name: "empty range at end",
			src:  "a",
			diag: diag("a.js", "x", "", 1, 1, 1, 2),
			lines: []frameLine{
				{number: 1, text: "a", caret: " ^"},
			},
		},
		{
			name: "no source",
			src:  "",
			diag: diag("a.js", "x", "", 0, 0, 1, 1),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.lines, codeFrame([]byte(tt.src), tt.diag))
		})
	}
}

func TestRenderFrame_Gutter(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModePretty)
	lines := r.renderFrame([]frameLine{{number: 10, text: "x;", caret: "^"}})
	assert.Equal(t, []string{"   |", "10 | x;", "   | ^"}, lines)
	assert.Nil(t, r.renderFrame(nil))
}

func testReport() *runner.Report {
	src := []byte("let a = 1;\ndebugger;\n")
	return &runner.Report{
		RunID:    "run-1",
		Duration: 1500 * time.Millisecond,
		Files: []runner.FileResult{
			{
				Path:   "a.js",
				Source: src,
				Result: &lint.Result{
					Diagnostics: []lint.Diagnostic{func() lint.Diagnostic {
						d := diag("a.js", "no-debugger", "`debugger` statement is not allowed", 11, 20, 2, 1)
						d.Hint = "Remove the debugger statement"
						return d
					}()},
					Suppressed: []lint.Diagnostic{diag("a.js", "no-var", "", 0, 3, 1, 1)},
				},
			},
			{Path: "b.js", Result: &lint.Result{}},
			{Path: "c.js", Err: errors.New("permission denied")},
		},
	}
}

func TestRenderReport_Compact(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeCompact)

	require.NoError(t, r.RenderReport(testReport()))

	assert.Contains(t, out.String(), "a.js: line 2, col 1, Error - `debugger` statement is not allowed (no-debugger)\n")
	assert.Contains(t, out.String(), "Found 1 problem (1 suppressed)")
	assert.Contains(t, out.String(), "1 file could not be linted")
	assert.Contains(t, errOut.String(), "c.js: permission denied")
}

func TestRenderReport_Pretty(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModePretty)

	require.NoError(t, r.RenderReport(testReport()))

	got := out.String()
	assert.Contains(t, got, "error[no-debugger]: `debugger` statement is not allowed")
	assert.Contains(t, got, " --> a.js:2:1")
	assert.Contains(t, got, "2 | debugger;")
	assert.Contains(t, got, "  | ^^^^^^^^^")
	assert.Contains(t, got, "= hint: Remove the debugger statement")
	assert.Contains(t, got, "= docs: "+lint.BuildDocURL("no-debugger"))
	assert.Contains(t, got, "Checked 3 files")
	assert.Contains(t, errOut.String(), "error: c.js: permission denied")
}

func TestRenderReport_PrettyEngineCodeHasNoDocs(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &bytes.Buffer{}, ModePretty)

	report := &runner.Report{Config: []lint.Diagnostic{
		diag("rules.star", lint.CodePluginDuplicateRule, "Plugin rule \"x\" is already registered", 0, 0, 1, 1),
	}}
	require.NoError(t, r.RenderReport(report))

	assert.Contains(t, out.String(), "error[plugin-duplicate-rule]")
	assert.NotContains(t, out.String(), "docs:")
	assert.Contains(t, out.String(), "Found 1 problem")
}

func TestRenderReport_Clean(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &bytes.Buffer{}, ModeCompact)

	report := &runner.Report{Files: []runner.FileResult{{Path: "a.js", Result: &lint.Result{}}}}
	require.NoError(t, r.RenderReport(report))

	assert.Equal(t, "Checked 1 file\n", out.String())
}

func TestRenderReport_JSON(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &bytes.Buffer{}, ModeJSON)

	require.NoError(t, r.RenderReport(testReport()))

	var got ReportJSON
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "run-1", got.RunID)
	require.Len(t, got.Diagnostics, 1)
	d := got.Diagnostics[0]
	assert.Equal(t, "a.js", d.Filename)
	assert.Equal(t, "no-debugger", d.Code)
	assert.Equal(t, "Remove the debugger statement", d.Hint)
	assert.Equal(t, PositionJSON{Line: 2, Col: 1, BytePos: 11}, d.Range.Start)
	assert.Equal(t, PositionJSON{Line: 2, Col: 10, BytePos: 20}, d.Range.End)
	assert.Equal(t, []FileErrorJSON{{FilePath: "c.js", Message: "permission denied"}}, got.Errors)
	assert.Equal(t, SummaryJSON{Files: 3, Diagnostics: 1, Suppressed: 1, Errors: 1, DurationMS: 1500}, got.Summary)
}

func TestNewReportJSON_EmptyListsEncodeAsArrays(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &bytes.Buffer{}, ModeJSON)

	require.NoError(t, r.RenderReport(&runner.Report{}))

	assert.Contains(t, out.String(), `"diagnostics": []`)
	assert.Contains(t, out.String(), `"errors": []`)
}

func testRules() []lint.Rule {
	return []lint.Rule{
		lint.Define(lint.RuleDef{Code: "no-var", Description: "Disallows var.\nMore text."}),
		lint.Define(lint.RuleDef{
			Code:        "no-debugger",
			Tags:        []string{lint.TagRecommended},
			Description: "Disallows debugger statements.",
			BadExample:  "debugger;",
			GoodExample: "console.log(1);",
		}),
	}
}

func TestRenderRules_Compact(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &bytes.Buffer{}, ModeCompact)

	require.NoError(t, r.RenderRules(testRules()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Available rules"))
	assert.Equal(t, " - no-debugger "+recommendedMark, lines[1])
	assert.Equal(t, " - no-var", lines[2])
}

func TestRenderRules_Pretty(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &bytes.Buffer{}, ModePretty)

	require.NoError(t, r.RenderRules(testRules()))

	got := out.String()
	assert.Contains(t, got, "Lint Rules (2)")
	assert.Contains(t, got, "no-debugger "+recommendedMark)
	assert.Contains(t, got, "Disallows var.")
	assert.NotContains(t, got, "More text.")
}

func TestRenderRules_JSON(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &bytes.Buffer{}, ModeJSON)

	require.NoError(t, r.RenderRules(testRules()))

	var got RulesJSON
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 2, got.Count.Total)
	assert.Equal(t, 1, got.Count.Recommended)
	require.Len(t, got.Rules, 2)
	assert.Equal(t, "no-debugger", got.Rules[0].Code)
	assert.Equal(t, []string{}, got.Rules[1].Tags)
}

func TestRenderRule(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &bytes.Buffer{}, ModePretty)

	require.NoError(t, r.RenderRule(testRules()[1]))

	got := out.String()
	assert.Contains(t, got, "Tags: Recommended")
	assert.Contains(t, got, "Bad Example")
	assert.Contains(t, got, "  debugger;")
	assert.Contains(t, got, "Docs: "+lint.BuildDocURL("no-debugger"))
}
