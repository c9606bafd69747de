package plugin

import (
	"stylekit/internal/broadcast"
	"stylekit/internal/parser"
)

// NestedAtRules parses the blocks of conditional at-rules (@media,
// @supports and similar) into statements.
type NestedAtRules struct{}

func (NestedAtRules) Name() string { return "nested-at-rules" }

func (NestedAtRules) Register(_ *broadcast.Registry, r *parser.Refiner) error {
	return r.RegisterAtRule("nested-blocks", parser.NestedBlocks)
}

// FontFaces parses @font-face blocks into font descriptors, which are
// then seen by declaration handlers like any other declaration.
type FontFaces struct{}

func (FontFaces) Name() string { return "font-faces" }

func (FontFaces) Register(_ *broadcast.Registry, r *parser.Refiner) error {
	return r.RegisterAtRule("font-face", parser.FontFaceBlocks)
}
