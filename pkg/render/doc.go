// Package render provides visualization rendering for address space maps.
//
// # Overview
//
// This package groups the renderers that turn a validated map into visual
// outputs:
//
//   - Proportional stack diagrams (in [stack] subpackage)
//   - Structural tree graphs (in [tree] subpackage)
//
// # Stack Diagrams
//
// The [stack] subpackages render the map as a vertical stack where each
// region's height is proportional to its size, clamped to stay readable.
// [stack/layout] owns extent allocation and the expand/collapse engine;
// [stack/sink] produces JSON snapshots, static SVG, and the self-contained
// interactive HTML page.
//
//	engine := layout.NewEngine(idx, layout.Document())
//	svg, err := sink.RenderSVG(engine)
//
// # Tree Graphs
//
// The [tree] subpackage renders the containment hierarchy as a Graphviz
// diagram. Regions appear as boxes connected by parent-child edges.
//
//	dot := tree.ToDOT(idx, tree.Options{})
//	svg, err := tree.RenderSVG(dot)
//
// [stack]: github.com/matzehuels/memstack/pkg/render/stack
// [stack/layout]: github.com/matzehuels/memstack/pkg/render/stack/layout
// [stack/sink]: github.com/matzehuels/memstack/pkg/render/stack/sink
// [tree]: github.com/matzehuels/memstack/pkg/render/tree
package render
