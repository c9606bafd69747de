// Package diag defines the error and diagnostic model shared by all pipeline phases.
//
// # Error kinds
//
// Failures that abort processing are Go errors with a stable Code:
//
//   - SyntaxError – unexpected or missing content, unterminated blocks and
//     strings, nesting too deep. Carries the stylesheet line and column.
//   - StateError – a contract violation on the AST, e.g. asking a detached
//     node for its group.
//   - ConfigError – a rejected configuration value (unknown browser version,
//     version count out of range, bad writer mode).
//   - ValidationError – a validator plugin rejected the tree.
//
// Every kind unwraps to a sentinel (ErrSyntax, ErrState, ErrConfig,
// ErrValidation) so callers can branch with errors.Is, and to the concrete
// type with errors.As.
//
// # Warnings
//
// Non-fatal findings are Diagnostic records collected in a Bag through a
// Reporter. They never influence control flow; the driver only surfaces them.
//
// Rendering lives in internal/diagfmt.
package diag
