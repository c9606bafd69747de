// Package parser holds the parser combinators and the refiner.
//
// Every parser has the same contract: it either reports false without
// consuming input (so the caller can try the next alternative) or consumes
// its construct and broadcasts the node(s) it is responsible for. Missing
// content after the leading token committed to a construct is a fatal
// *diag.SyntaxError.
//
// The first pass is shallow: rules keep raw selectors and raw declaration
// values, at-rules keep raw expressions and blocks. The Refiner parses
// those on demand.
package parser
