package correctness_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/jslint/pkg/lint"
	_ "github.com/leapstack-labs/jslint/pkg/lint/rules" // register rules
)

// runRule lints src with only the given rule enabled.
func runRule(t *testing.T, filename, src, code string) []lint.Diagnostic {
	t.Helper()
	cfg := &lint.Config{Tags: []string{}, Include: []string{code}}
	rules := cfg.RuleSet(nil)
	require.Equal(t, 1, rules.Len(), "rule %s not registered", code)

	res, err := lint.New(lint.Options{Rules: rules}).LintSource(context.Background(), filename, []byte(src))
	require.NoError(t, err)
	for _, d := range res.Diagnostics {
		require.NotEqual(t, lint.CodeInternalRuleError, d.Code, d.Message)
		require.NotEqual(t, lint.CodeParseError, d.Code, d.Message)
	}
	return res.Diagnostics
}

type ruleCase struct {
	name string
	src  string
	want []string // text of each reported range
}

func runCases(t *testing.T, code string, tests []ruleCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := runRule(t, "test.ts", tt.src, code)
			var got []string
			for _, d := range diags {
				assert.Equal(t, code, d.Code)
				got = append(got, tt.src[d.Range.Start:d.Range.End])
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNoUnreachable(t *testing.T) {
	runCases(t, "no-unreachable", []ruleCase{
		{"after return", "function f() { return 1; g(); }", []string{"g();"}},
		{"conditional return", "function f() { if (x) return; g(); }", nil},
		{"breaking infinite loop", "while (true) { break; } g();", nil},
		{"infinite loop", "while (true) { } g();", []string{"g();"}},
		{"hoisted function", "function f() { return g(); function g() {} }", nil},
		{"nested statements reported once", "function f() { throw e; if (a) { b(); } }", []string{"if (a) { b(); }"}},
	})
}

func TestNoUndef(t *testing.T) {
	runCases(t, "no-undef", []ruleCase{
		{"undeclared", "missing();", []string{"missing"}},
		{"declared", "const a = 1; a;", nil},
		{"global", "console.log(Math.max(1, 2));", nil},
		{"typeof check", "if (typeof maybe === 'undefined') {}", nil},
		{"block scoped outside block", "{ let inner = 1; } inner;", []string{"inner"}},
		{"hoisted var", "{ var v = 1; } v;", nil},
		{"type positions", "let a: Foo = bar as Baz;", []string{"bar"}},
		{"arguments", "function f() { return arguments.length; }", nil},
	})
}

func TestNoExAssign(t *testing.T) {
	runCases(t, "no-ex-assign", []ruleCase{
		{"assign", "try {} catch (e) { e = 1; }", []string{"e"}},
		{"destructured", "try {} catch ({ message }) { message = ''; }", []string{"message"}},
		{"shadowed", "try {} catch (e) { let e2 = 1; e2 = 2; }", nil},
		{"read only", "try {} catch (e) { log(e); }", nil},
	})
}

func TestNoConstAssign(t *testing.T) {
	runCases(t, "no-const-assign", []ruleCase{
		{"assign", "const a = 1; a = 2;", []string{"a"}},
		{"compound", "const a = 1; a += 2;", []string{"a"}},
		{"update", "const a = 1; a++;", []string{"a"}},
		{"destructuring target", "const a = 1; [a] = [2];", []string{"a"}},
		{"let", "let a = 1; a = 2;", nil},
		{"shadowing let", "const a = 1; { let a = 2; a = 3; }", nil},
		{"member write", "const o = {}; o.x = 1;", nil},
	})
}

func TestNoFuncAndClassAssign(t *testing.T) {
	runCases(t, "no-func-assign", []ruleCase{
		{"function", "function foo() {} foo = bar;", []string{"foo"}},
		{"function expression", "let foo = function () {}; foo = bar;", nil},
	})
	runCases(t, "no-class-assign", []ruleCase{
		{"class", "class A {} A = 0;", []string{"A"}},
		{"class expression", "let A = class {}; A = 0;", nil},
	})
}

func TestNoGlobalAssign(t *testing.T) {
	runCases(t, "no-global-assign", []ruleCase{
		{"read-only", "Object = null;", []string{"Object"}},
		{"NaN", "NaN = 1;", []string{"NaN"}},
		{"writable", "onload = handler;", nil},
		{"shadowed", "let Object = 1; Object = 2;", nil},
	})
}

func TestNoSelfCompare(t *testing.T) {
	runCases(t, "no-self-compare", []ruleCase{
		{"strict equal", "if (x === x) {}", []string{"x === x"}},
		{"member", "a.b < (a.b);", []string{"a.b < (a.b)"}},
		{"different", "x === y;", nil},
		{"arithmetic", "x + x;", nil},
	})
}

func TestNoAwaitInLoop(t *testing.T) {
	runCases(t, "no-await-in-loop", []ruleCase{
		{"loop body", "async function f() { for (const u of us) { await get(u); } }", []string{"await get(u)"}},
		{"while condition", "async function f() { while (await more()) {} }", []string{"await more()"}},
		{"iterated value", "async function f() { for (const u of await list()) {} }", nil},
		{"after loop", "async function f() { for (const u of us) {} await done(); }", nil},
		{"nested async callback", "for (const u of us) { run(async () => { await get(u); }); }", nil},
	})
}

func TestNoRedeclare(t *testing.T) {
	runCases(t, "no-redeclare", []ruleCase{
		{"var twice", "var a = 3; var a = 10;", []string{"a"}},
		{"var and function", "var f; function f() {}", []string{"f"}},
		{"nested scopes", "let a = 1; { let a = 2; }", nil},
		{"interface merging", "interface A { x: number } interface A { y: number }", nil},
		{"overloads", "function f(a: string): void;\nfunction f(a: number): void;\nfunction f(a: any) {}", nil},
	})
}

func TestConstructorSuper(t *testing.T) {
	runCases(t, "constructor-super", []ruleCase{
		{"missing", "class A extends B { constructor() {} }", []string{"constructor() {}"}},
		{"present", "class A extends B { constructor() { super(); } }", nil},
		{"inside arrow", "class A extends B { constructor() { const f = () => super(); f(); } }", nil},
		{"not derived", "class A { constructor() { super(); } }", []string{"super()"}},
		{"extends null", "class A extends null { constructor() { super(); } }", []string{"super()"}},
		{"no constructor", "class A extends B {}", nil},
		{"implements only", "class A implements I { constructor() {} }", nil},
	})
}

func TestNoThisBeforeSuper(t *testing.T) {
	runCases(t, "no-this-before-super", []ruleCase{
		{"this first", "class A extends B { constructor() { this.a = 0; super(); } }", []string{"this"}},
		{"super member first", "class A extends B { constructor() { super.x(); super(); } }", []string{"super"}},
		{"this in super args", "class A extends B { constructor() { super(this.x); } }", []string{"this"}},
		{"after super", "class A extends B { constructor() { super(); this.a = 0; } }", nil},
		{"not derived", "class A { constructor() { this.a = 0; } }", nil},
		{"nested function", "class A extends B { constructor() { function g() { return this; } super(); } }", nil},
	})
}

func TestNoUnusedLabels(t *testing.T) {
	runCases(t, "no-unused-labels", []ruleCase{
		{"unused", "outer: for (;;) { break; }", []string{"outer"}},
		{"break", "outer: for (;;) { for (;;) { break outer; } }", nil},
		{"continue", "outer: for (;;) { for (;;) { continue outer; } }", nil},
		{"shadowed", "a: { a: { break a; } }", []string{"a"}},
	})
}

func TestNoShadowRestrictedNames(t *testing.T) {
	runCases(t, "no-shadow-restricted-names", []ruleCase{
		{"let", "let Infinity = 5;", []string{"Infinity"}},
		{"function", "function NaN() {}", []string{"NaN"}},
		{"param", "function f(eval) {}", []string{"eval"}},
		{"catch", "try {} catch (arguments) {}", []string{"arguments"}},
		{"allowed", "let value = 5;", nil},
	})
}
