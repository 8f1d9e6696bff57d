// Package memmap defines the range tree model for address space maps.
//
// A map is a tree of named half-open ranges [Start, Start+Size). Children
// subdivide their parent's range and are kept sorted by start address. The
// package provides structural validation (containment and non-overlap),
// flattening into a stable, serializable node list, and synthesis of gap
// ranges for address space a parent covers but no child claims.
//
// The tree is treated as immutable once validated: every downstream consumer
// (layout engine, sinks, server) works from the flattened node list and the
// indices built from it.
package memmap

import "slices"

// Node is a single range in the tree: a named half-open interval
// [Start, Start+Size) with zero or more child ranges.
type Node struct {
	Name     string
	Start    uint64
	Size     uint64
	Children []*Node
}

// End returns the exclusive upper bound of the range.
func (n *Node) End() uint64 { return n.Start + n.Size }

// New constructs a node and sorts its children by start address.
// Child order by ascending start is an invariant of the tree; every
// constructor path must go through here (or call SortChildren itself).
func New(name string, start, size uint64, children ...*Node) *Node {
	n := &Node{Name: name, Start: start, Size: size, Children: children}
	n.SortChildren()
	return n
}

// SortChildren restores the ascending-start ordering invariant, recursively.
func (n *Node) SortChildren() {
	slices.SortStableFunc(n.Children, func(a, b *Node) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		default:
			return 0
		}
	})
	for _, c := range n.Children {
		c.SortChildren()
	}
}
