package lint

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/jslint/internal/testutil"
	"github.com/leapstack-labs/jslint/pkg/ast"
	"github.com/leapstack-labs/jslint/pkg/lint/ignore"
	"github.com/leapstack-labs/jslint/pkg/parser"
	"github.com/leapstack-labs/jslint/pkg/token"
)

func parse(t *testing.T, filename, src string) *ast.File {
	t.Helper()
	file, err := parser.ParseFile(context.Background(), filename, []byte(src))
	require.NoError(t, err)
	return file
}

func newLinter(t *testing.T, rules ...Rule) *Linter {
	t.Helper()
	reg := newTestRegistry(t, rules...)
	return New(Options{Registry: reg, Rules: NewRuleSet(rules), Logger: testutil.NewTestLogger(t)})
}

func lintSource(t *testing.T, l *Linter, src string) *Result {
	t.Helper()
	res, err := l.Lint(parse(t, "a.js", src))
	require.NoError(t, err)
	return res
}

// callRule reports every call to the named function under code.
func callRule(code, fn string) Rule {
	return Define(RuleDef{
		Code: code,
		Setup: func() Handler {
			return Handler{
				Kinds: []string{ast.KindCall},
				Enter: func(ctx *Context, n *ast.Node) Action {
					if f := n.ChildByField("function"); f != nil && f.Text() == fn {
						ctx.Report(n, code, fn+" called")
					}
					return Continue
				},
			}
		},
	})
}

func messages(diags []Diagnostic) []string {
	var out []string
	for _, d := range diags {
		out = append(out, d.Code+": "+d.Message)
	}
	return out
}

func TestDispatch_EnterExitOrderIsAStack(t *testing.T) {
	var log []string
	tracer := func(code string, priority int) Rule {
		return &mockRule{code: code, priority: priority, handler: Handler{
			Kinds: []string{ast.KindExpressionStmt},
			EnterNode: func(_ *Context, n *ast.Node) Action {
				log = append(log, "enterNode "+code+" "+n.Kind)
				return Continue
			},
			Enter: func(_ *Context, n *ast.Node) Action {
				log = append(log, "enter "+code+" "+n.Kind)
				return Continue
			},
			Exit: func(_ *Context, n *ast.Node) {
				log = append(log, "exit "+code+" "+n.Kind)
			},
			ExitNode: func(_ *Context, n *ast.Node) {
				log = append(log, "exitNode "+code+" "+n.Kind)
			},
		}}
	}
	l := newLinter(t, tracer("second", 1), tracer("first", 0))
	lintSource(t, l, "x;")

	want := []string{
		"enterNode first program",
		"enterNode second program",
		"enterNode first expression_statement",
		"enter first expression_statement",
		"enterNode second expression_statement",
		"enter second expression_statement",
		"enterNode first identifier",
		"enterNode second identifier",
		"exitNode second identifier",
		"exitNode first identifier",
		"exit second expression_statement",
		"exitNode second expression_statement",
		"exit first expression_statement",
		"exitNode first expression_statement",
		"exitNode second program",
		"exitNode first program",
	}
	assert.Equal(t, want, log)
}

func TestDispatch_SkipChildrenIsPerRule(t *testing.T) {
	var skipperSaw, otherSaw []string
	var skipperExits int
	skipper := &mockRule{code: "skipper", handler: Handler{
		EnterNode: func(_ *Context, n *ast.Node) Action {
			skipperSaw = append(skipperSaw, n.Kind)
			if ast.IsFunction(n.Kind) {
				return SkipChildren
			}
			return Continue
		},
		ExitNode: func(_ *Context, n *ast.Node) {
			if ast.IsFunction(n.Kind) {
				skipperExits++
			}
		},
	}}
	other := &mockRule{code: "other", handler: Handler{
		Kinds: []string{ast.KindReturn},
		Enter: func(_ *Context, n *ast.Node) Action {
			otherSaw = append(otherSaw, n.Kind)
			return Continue
		},
	}}

	l := newLinter(t, skipper, other)
	lintSource(t, l, "function f() { return 1; }\nafter;")

	assert.NotContains(t, skipperSaw, ast.KindReturn)
	assert.Contains(t, skipperSaw, ast.KindExpressionStmt, "siblings after the skipped subtree are visited")
	assert.Equal(t, 1, skipperExits)
	assert.Equal(t, []string{ast.KindReturn}, otherSaw)
}

func TestDispatch_CrashIsolation(t *testing.T) {
	var enters int
	fileChecked := false
	crasher := &mockRule{code: "crasher", handler: Handler{
		Kinds: []string{ast.KindCall},
		Enter: func(_ *Context, n *ast.Node) Action {
			enters++
			panic("boom")
		},
		CheckFile: func(*Context) { fileChecked = true },
	}}

	logger, logs := testutil.NewBufferLogger()
	reg := newTestRegistry(t, crasher, callRule("no-foo", "foo"))
	l := New(Options{Registry: reg, Rules: NewRuleSet(reg.All()), Logger: logger})

	res, err := l.Lint(parse(t, "a.js", "foo();\nfoo();\n"))
	require.NoError(t, err)

	assert.Equal(t, 1, enters, "a crashed rule gets no further callbacks")
	assert.False(t, fileChecked)
	assert.Equal(t, []string{
		`internal-rule-error: rule "crasher" crashed: boom`,
		"no-foo: foo called",
		"no-foo: foo called",
	}, messages(res.Diagnostics))
	assert.Contains(t, logs.String(), "rule crashed")
	assert.Contains(t, logs.String(), "rule=crasher")
}

func TestDispatch_CrashInSetup(t *testing.T) {
	bad := Define(RuleDef{Code: "bad", Setup: func() Handler { panic(fmt.Errorf("no setup")) }})
	l := newLinter(t, bad, callRule("no-foo", "foo"))
	res := lintSource(t, l, "foo();")
	assert.Equal(t, []string{
		`internal-rule-error: rule "bad" crashed: no setup`,
		"no-foo: foo called",
	}, messages(res.Diagnostics))
}

func TestLint_ForeignNodeIsFatal(t *testing.T) {
	other := parse(t, "other.js", "a; b; c; d; e; f; g;")
	foreign := &mockRule{code: "foreign", handler: Handler{
		CheckFile: func(ctx *Context) {
			ctx.Scope().Resolve(other.Root.FirstNamedChild(""))
		},
	}}
	l := newLinter(t, foreign)
	res, err := l.Lint(parse(t, "a.js", "x;"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ast.ErrForeignNode)
	assert.Nil(t, res)
}

// unusedIgnoreRule reports line directive codes that suppressed nothing.
func unusedIgnoreRule() Rule {
	return &mockRule{code: "unused-ignore", handler: Handler{
		CheckDirectives: func(ctx *Context) {
			for _, d := range ctx.IgnoreDirectives() {
				if d.Kind != ignore.Line {
					continue
				}
				for _, code := range d.UnusedCodes() {
					ctx.AddDiagnostic(d.Range, "unused-ignore", fmt.Sprintf("Ignore for code %q was not used.", code))
				}
			}
		},
	}}
}

func located(diags []Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, fmt.Sprintf("%d:%d %s: %s", d.Pos.Line, d.Pos.Column, d.Code, d.Message))
	}
	sort.Strings(out)
	return out
}

func TestLint_Conservation(t *testing.T) {
	src := strings.Join([]string{
		"// lint-ignore-file no-bar",
		"foo();",
		"// lint-ignore no-foo",
		"foo(); bar();",
		"// lint-ignore no-foo",
		"bar();",
		"// lint-ignore",
		"foo(); baz();",
		"baz();",
	}, "\n")
	rules := []Rule{callRule("no-foo", "foo"), callRule("no-bar", "bar"), callRule("no-baz", "baz"), unusedIgnoreRule()}

	suppressing := newLinter(t, rules...)
	res := lintSource(t, suppressing, src)

	raw := New(Options{Registry: suppressing.registry, Rules: suppressing.rules, DisableIgnoreDirectives: true})
	all := lintSource(t, raw, src)

	assert.Len(t, all.Diagnostics, 8)
	assert.Empty(t, all.Suppressed)
	assert.Equal(t, located(all.Diagnostics), located(append(append([]Diagnostic{}, res.Diagnostics...), res.Suppressed...)))
	assert.Equal(t, []string{
		"no-foo: foo called",
		`unused-ignore: Ignore for code "no-foo" was not used.`,
		"no-baz: baz called",
	}, messages(res.Diagnostics))
}

func TestLint_DisabledDirectivesStillTrackUsage(t *testing.T) {
	l := New(Options{
		Registry:                newTestRegistry(t, callRule("no-foo", "foo"), unusedIgnoreRule()),
		Rules:                   NewRuleSet([]Rule{callRule("no-foo", "foo"), unusedIgnoreRule()}),
		DisableIgnoreDirectives: true,
		Logger:                  testutil.NewTestLogger(t),
	})
	res := lintSource(t, l, "// lint-ignore no-foo\nfoo();")
	assert.Equal(t, []string{"no-foo: foo called"}, messages(res.Diagnostics))
	assert.Empty(t, res.Suppressed)
}

func TestLint_DiagnosticsSortedByStart(t *testing.T) {
	late := &mockRule{code: "late", handler: Handler{
		CheckFile: func(ctx *Context) {
			ctx.AddDiagnostic(token.Range{Start: 0, End: 1}, "late", "first in file")
		},
	}}
	l := newLinter(t, callRule("no-foo", "foo"), late)
	res := lintSource(t, l, "x;\nfoo();")
	assert.Equal(t, []string{"late: first in file", "no-foo: foo called"}, messages(res.Diagnostics))
	assert.Equal(t, 2, res.Diagnostics[1].Pos.Line)
	assert.Equal(t, "a.js", res.Diagnostics[1].Filename)
}

func TestLint_RangesClampedToFile(t *testing.T) {
	wild := &mockRule{code: "wild", handler: Handler{
		CheckFile: func(ctx *Context) {
			ctx.AddDiagnostic(token.Range{Start: -4, End: 1000}, "wild", "everywhere")
		},
	}}
	res := lintSource(t, newLinter(t, wild), "x;")
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, token.Range{Start: 0, End: 2}, res.Diagnostics[0].Range)
}

func TestLint_PerFileState(t *testing.T) {
	setups := 0
	counting := Define(RuleDef{
		Code: "counting",
		Setup: func() Handler {
			setups++
			seen := 0
			return Handler{
				Kinds: []string{ast.KindExpressionStmt},
				Enter: func(*Context, *ast.Node) Action {
					seen++
					return Continue
				},
				CheckFile: func(ctx *Context) {
					ctx.AddDiagnostic(token.Range{}, "counting", fmt.Sprint(seen))
				},
			}
		},
	})
	l := newLinter(t, counting)
	first := lintSource(t, l, "a; b;")
	second := lintSource(t, l, "a; b;")
	assert.Equal(t, 2, setups)
	assert.Equal(t, messages(first.Diagnostics), messages(second.Diagnostics))
	assert.Equal(t, []string{"counting: 2"}, messages(second.Diagnostics))
}

func TestLint_LazyAnalyses(t *testing.T) {
	var same bool
	probe := &mockRule{code: "probe", handler: Handler{
		CheckFile: func(ctx *Context) {
			same = ctx.Scope() == ctx.Scope() && ctx.ControlFlow() == ctx.ControlFlow()
		},
	}}
	l := newLinter(t, probe)
	file := parse(t, "a.js", "let a = 1;")
	ctx := newContext(l, file)
	assert.Nil(t, ctx.scope)
	assert.Nil(t, ctx.flow)

	lintSource(t, l, "let a = 1;")
	assert.True(t, same)
}

func TestLint_ConcurrentIsolation(t *testing.T) {
	src := "// lint-ignore no-foo\nfoo();\nfoo(); bar();\nfunction f() { return; foo(); }\n"
	l := newLinter(t, callRule("no-foo", "foo"), callRule("no-bar", "bar"))
	file := parse(t, "a.js", src)

	want, err := l.Lint(file)
	require.NoError(t, err)

	results := make([]*Result, 16)
	var g errgroup.Group
	for i := range results {
		g.Go(func() error {
			res, err := l.Lint(file)
			results[i] = res
			return err
		})
	}
	require.NoError(t, g.Wait())
	for _, res := range results {
		assert.Equal(t, want, res)
	}
}

func TestLintSource_ParseError(t *testing.T) {
	l := newLinter(t, callRule("no-foo", "foo"))
	res, err := l.LintSource(context.Background(), "broken.js", []byte("foo(;\n"))
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, CodeParseError, d.Code)
	assert.Equal(t, "broken.js", d.Filename)
	assert.Equal(t, 1, d.Pos.Line)
}

func TestLintSource_UnsupportedLanguage(t *testing.T) {
	l := newLinter(t)
	_, err := l.LintSource(context.Background(), "query.sql", []byte("select 1"))
	assert.ErrorIs(t, err, parser.ErrUnsupportedLanguage)
}

func TestContext_KnownCode(t *testing.T) {
	l := newLinter(t, callRule("no-foo", "foo"))
	ctx := newContext(l, parse(t, "a.js", "x;"))
	assert.True(t, ctx.KnownCode("no-foo"))
	assert.True(t, ctx.KnownCode(CodeInternalRuleError))
	assert.False(t, ctx.KnownCode("no-such-rule"))
}
