// Package lexer provides Source, the character-level cursor every parser
// combinator reads from.
//
// Source never copies the stylesheet: reads return substrings of the
// original text. Reads are total (an empty string or false at end of input)
// except for enclosed regions - blocks, strings, comments - where running out
// of input is a diag.SyntaxError. Sub-sources created for refinement keep the
// original line/column of their first byte so errors point into the whole
// stylesheet.
package lexer
