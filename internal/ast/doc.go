// Package ast defines the mutable syntax tree built by the parsers and
// reworked by plugins.
//
// Nodes start as raw syntax (an unparsed RawSyntax span) and are refined on
// demand through the Refiner stored on them at parse time. A node that is
// never refined is written back verbatim.
//
// Sibling ordering is intrusive: nodes embed Groupable and live in exactly
// one Collection at a time. Collection iteration works on a snapshot, so
// plugins may append, prepend and detach siblings while walking a group.
package ast
