// Package lint is the single-pass rule engine for JavaScript and TypeScript.
//
// # Architecture
//
// The engine is layered leaf to root:
//
//  1. Diagnostics (types.go): immutable findings with a rule code and range
//  2. Registry (registry.go): the catalog of rules, filtered into a RuleSet
//  3. Scope (pkg/lint/scope): lexical scopes, bindings and references
//  4. Control flow (pkg/lint/controlflow): statement reachability
//  5. Ignore directives (pkg/lint/ignore): suppression comments
//  6. Dispatch (dispatch.go, linter.go): one walk per file, fanned out to
//     every rule through a shared Context
//
// Scope and control-flow analyses are built lazily the first time a rule asks
// for them through the Context.
//
// # Rule Registration
//
// Built-in rules register into DefaultRegistry from init() functions when
// their package is imported:
//
//	import _ "github.com/leapstack-labs/jslint/pkg/lint/rules"
//
// # Running Rules
//
//	rules := lint.NewConfig().Disable("no-console").RuleSet(nil)
//	linter := lint.New(lint.Options{Rules: rules, Logger: logger})
//	res, err := linter.LintSource(ctx, "main.ts", src)
//
// A Linter is immutable and may lint many files concurrently.
//
// # Creating Custom Rules
//
// Use RuleDef. Setup runs once per file, so per-file state lives in the
// closure:
//
//	var NoDebugger = lint.Define(lint.RuleDef{
//		Code: "no-debugger",
//		Tags: []string{lint.TagRecommended},
//		Setup: func() lint.Handler {
//			return lint.Handler{
//				Kinds: []string{"debugger_statement"},
//				Enter: func(ctx *lint.Context, n *ast.Node) lint.Action {
//					ctx.Report(n, "no-debugger", "`debugger` statement is not allowed")
//					return lint.Continue
//				},
//			}
//		},
//	})
//
//	func init() {
//		lint.MustRegister(NoDebugger)
//	}
package lint
