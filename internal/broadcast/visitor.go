package broadcast

import "stylekit/internal/ast"

// Visitor adapts a function to ast.Broadcaster.
type Visitor func(n ast.Syntax)

func (v Visitor) Broadcast(n ast.Syntax) { v(n) }

// Discard drops every node.
var Discard ast.Broadcaster = Visitor(func(ast.Syntax) {})
