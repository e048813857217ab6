// Package correctness provides lint rules that catch code which is wrong
// rather than merely unidiomatic. Most of them ask the scope tree or the
// reachability analysis of the lint context.
//
// Rules in this package:
//   - no-unreachable: statements that can never execute
//   - no-undef: references to undeclared names
//   - no-ex-assign: reassigned catch-clause parameters
//   - no-const-assign: reassigned constants
//   - no-func-assign: reassigned function declarations
//   - no-class-assign: reassigned class declarations
//   - no-global-assign: writes to read-only globals
//   - no-self-compare: comparisons of a value with itself
//   - no-await-in-loop: sequential awaits inside loops
//   - no-redeclare: names declared twice in one scope
//   - constructor-super: missing or invalid super() calls
//   - no-this-before-super: this/super used before super() in constructors
//   - no-unused-labels: labels nothing jumps to
//   - no-shadow-restricted-names: bindings named like restricted globals
package correctness
