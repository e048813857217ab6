// Package style provides lint rules for constructs that are legal but
// discouraged: legacy syntax, loose equality and leftover debugging code.
//
// Rules in this package:
//   - no-debugger: debugger statements
//   - no-var: var declarations
//   - no-with: with statements
//   - no-empty: empty blocks and switch statements
//   - eqeqeq: == and != comparisons
//   - no-eval: calls to the global eval
//   - no-console: calls to console methods
//   - no-inner-declarations: function and var declarations in nested blocks
package style
