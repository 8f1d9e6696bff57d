// Package layout computes screen-space extents for stack visualizations of
// address space maps.
//
// The package has three parts:
//
//   - Extent allocation: [FitExtents] distributes a fixed budget across one
//     level's items in proportion to their byte sizes, clamped to usable
//     bounds; [CompactExtents] gives every item its minimum, for nested
//     levels where vertical economy matters more than proportionality.
//
//   - The [Engine]: an arena of block records, one per realized item, that
//     owns the expand/collapse state machine and the bottom-up fixed-point
//     relayout that keeps every expanded ancestor large enough for its
//     realized descendants.
//
//   - Boundary markers: [Markers] turns one level's positioned stack into a
//     deduplicated, sorted list of address labels for its block edges.
//
// Extents are abstract units: pixels for document sinks and terminal rows for
// the interactive viewer. A [Profile] bundles the unit-specific constants.
// The engine is purely a data structure: it never touches a rendering
// surface, so sinks, the TUI, and tests all measure the same layout tree.
package layout
