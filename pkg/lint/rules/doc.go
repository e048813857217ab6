// Package rules provides the built-in lint rules of jslint.
//
// Rules are organized by category:
//   - correctness: code that is wrong (no-unreachable, no-undef, no-const-assign, ...)
//   - style: legal but discouraged constructs (no-var, eqeqeq, no-debugger, ...)
//   - typescript: TypeScript specific rules (ban-ts-comment)
//   - directives: audits of ignore directives (ban-unused-ignore, ...)
//
// To register all rules with the default lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/leapstack-labs/jslint/pkg/lint/rules"
//
// Individual rule categories can also be imported:
//
//	import _ "github.com/leapstack-labs/jslint/pkg/lint/rules/correctness"
package rules
