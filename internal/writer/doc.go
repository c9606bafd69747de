// Package writer turns a syntax tree back into CSS text.
//
// The three modes emit the same tokens in the same order and differ only in
// whitespace: Verbose indents and breaks lines, Inline keeps each top-level
// statement on one line, Compressed drops comments and every optional
// separator.
package writer
