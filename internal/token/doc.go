// Package token defines byte-level token predicates used by the Source cursor
// and the parser combinators.
//
// A Token answers one question: does this byte start (or belong to) the
// construct? Tokens compose with Or and Not, and the grammar-level tokens are
// bundled behind Factory so an embedding application can swap delimiters
// without touching the parsers.
package token
