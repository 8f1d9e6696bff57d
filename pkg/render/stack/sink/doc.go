// Package sink renders layout state into output artifacts.
//
// Three sinks are provided:
//
//   - RenderJSON: a serializable snapshot of the realized layout tree,
//     used for caching, the HTTP API, and external tooling.
//   - RenderSVG: a static picture of the current layout state.
//   - RenderHTML: a self-contained interactive page with the document
//     payload embedded; expansion runs client-side.
package sink
