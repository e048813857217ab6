// Package typescript provides lint rules specific to TypeScript sources.
//
// Rules in this package:
//   - ban-ts-comment: @ts-ignore, @ts-expect-error and @ts-nocheck without
//     an explanation
package typescript
