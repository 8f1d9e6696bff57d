// Package pkg provides the core libraries for memstack address space visualization.
//
// # Overview
//
// Memstack turns hierarchical address space maps (SoC memory layouts, firmware
// partitions, process address spaces) into proportional, explorable stack
// diagrams. The pkg directory is organized into five main areas:
//
//  1. [memmap] - Domain model (range tree, validation, flattening, gaps)
//  2. [render] - Visualization (stack layout engine and sinks, tree graphs)
//  3. [pipeline] - Orchestration (decode → layout → render) with caching
//  4. [cache] / [store] - Infrastructure (artifact cache, document archive)
//  5. [server] - HTTP hosting of decoded documents
//
// # Architecture
//
// The typical data flow through memstack:
//
//	Map file (JSON tree)
//	         ↓
//	    [memmap] package (validate, flatten, synthesize gaps)
//	         ↓
//	    [render/stack/layout] package (fit extents, expand/collapse, settle)
//	         ↓
//	    [render/stack/sink] package (HTML / SVG / JSON snapshots)
//	         ↓
//	    HTML/SVG/JSON/tree output
//
// # Quick Start
//
// Load a map and render the interactive page:
//
//	import (
//	    "github.com/matzehuels/memstack/pkg/io"
//	    "github.com/matzehuels/memstack/pkg/render/stack/sink"
//	)
//
//	// 1. Load and validate
//	_, idx, _ := io.Load("soc.json")
//
//	// 2. Build the document payload
//	doc := io.Export(idx)
//
//	// 3. Render the self-contained page
//	page, _ := sink.RenderHTML(doc)
//
// # Main Packages
//
// ## Domain Model
//
// [memmap] - The range tree and everything derived from it: structural
// validation (containment, sibling overlap), pre-order flattening with
// stable hierarchical IDs, gap synthesis, and address/size formatting.
//
// [io] - Import of map files and the flat document payload exchanged with
// the sinks, the server, and the store.
//
// ## Visualization
//
// [render/stack/layout] - The proportional layout core: fit-to-budget and
// compact extent allocation, the expand/collapse engine, the bottom-up
// settle fixed point, and boundary markers.
//
// [render/stack/sink] - Output formats over a settled engine: JSON
// snapshots, static SVG, and the self-contained interactive HTML page.
//
// [render/tree] - Structural Graphviz diagrams of the range tree.
//
// ## Infrastructure
//
// [pipeline] - The decode → layout → render pipeline used by the CLI and
// the server, with per-stage caching keyed on content hashes.
//
// [cache] - Cache backends (file, Redis, null) and the key derivation for
// the pipeline's document, layout, and artifact stages.
//
// [store] - MongoDB-backed archive for publishing and fetching document
// payloads by ID.
//
// [server] - chi-based HTTP server exposing the interactive page and the
// JSON API for one decoded document.
//
// [config] - TOML configuration with XDG-standard discovery.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/memmap/...       # Specific package
//
// [memmap]: https://pkg.go.dev/github.com/matzehuels/memstack/pkg/memmap
// [io]: https://pkg.go.dev/github.com/matzehuels/memstack/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/memstack/pkg/render
// [render/stack/layout]: https://pkg.go.dev/github.com/matzehuels/memstack/pkg/render/stack/layout
// [render/stack/sink]: https://pkg.go.dev/github.com/matzehuels/memstack/pkg/render/stack/sink
// [render/tree]: https://pkg.go.dev/github.com/matzehuels/memstack/pkg/render/tree
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/memstack/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/memstack/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/memstack/pkg/store
// [server]: https://pkg.go.dev/github.com/matzehuels/memstack/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/memstack/pkg/config
package pkg
