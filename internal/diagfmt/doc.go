// Package diagfmt renders stylekit errors and diagnostics for terminals and
// machines.
package diagfmt
