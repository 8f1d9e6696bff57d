// Package tree renders the containment hierarchy as a node-link diagram.
//
// # Overview
//
// This package produces a Graphviz view of the address space tree: one box
// per region, edges from parent to contained child. It complements the
// stack view for documents where the nesting structure matters more than
// the proportions.
//
// # Usage
//
// Convert an index to DOT format, then render:
//
//	dot := tree.ToDOT(idx, tree.Options{Detailed: true})
//	svg, err := tree.RenderSVG(dot)
//	png, err := tree.RenderPNG(dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering.
package tree
