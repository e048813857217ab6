// Package directives provides the rules that audit ignore directives. They
// run after the diagnostics of every other rule have been matched against
// the directives, so they see which directives were used.
//
// Rules in this package:
//   - ban-unknown-rule-code: directive codes that name no rule
//   - ban-untagged-ignore: directives without codes
//   - ban-unused-ignore: directive codes that suppressed nothing
package directives
