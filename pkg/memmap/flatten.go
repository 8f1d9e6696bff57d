package memmap

import (
	"fmt"
	"strings"
)

// FlatNode is the serializable projection of one tree node. The flattened
// list is the sole interchange format between the tree model and everything
// downstream: the layout engine, the sinks, the HTTP server, and the
// document store.
type FlatNode struct {
	// ID is a hierarchical path built from "name@0xhex" tokens of the node
	// and its ancestors, for example "SoC/DDR@0x80000000". Unique per node
	// by construction: sibling starts are distinct after validation.
	ID     string `json:"id" bson:"id"`
	Name   string `json:"name" bson:"name"`
	Start  uint64 `json:"start" bson:"start"`
	Size   uint64 `json:"size" bson:"size"`
	End    uint64 `json:"end" bson:"end"`
	Depth  int    `json:"depth" bson:"depth"`
	Parent string `json:"parent,omitempty" bson:"parent,omitempty"`
}

// Flatten produces the depth-first pre-order node list for a validated tree:
// every parent precedes its children, siblings appear in start order. The
// result is deterministic for a given tree.
func Flatten(root *Node) []FlatNode {
	var out []FlatNode
	flatten(root, 0, "", &out)
	return out
}

func flatten(n *Node, depth int, parentID string, out *[]FlatNode) {
	id := strings.TrimPrefix(parentID+"/"+nodeToken(n), "/")
	*out = append(*out, FlatNode{
		ID:     id,
		Name:   n.Name,
		Start:  n.Start,
		Size:   n.Size,
		End:    n.End(),
		Depth:  depth,
		Parent: parentID,
	})
	for _, c := range n.Children {
		flatten(c, depth+1, id, out)
	}
}

// nodeToken builds the per-node ID token. The address keeps Python-style
// minimal lowercase hex so IDs round-trip with documents produced by the
// original tooling.
func nodeToken(n *Node) string { return fmt.Sprintf("%s@%#x", n.Name, n.Start) }

// Index provides constant-time lookups over a flattened node list: node by
// ID and ordered children by parent ID. It is built once and read-only for
// the lifetime of a session.
type Index struct {
	nodes    []FlatNode
	byID     map[string]FlatNode
	byParent map[string][]FlatNode
}

// NewIndex builds the lookup tables for a flattened list. Child slices
// preserve the flattened (start-ascending) sibling order.
func NewIndex(nodes []FlatNode) *Index {
	idx := &Index{
		nodes:    nodes,
		byID:     make(map[string]FlatNode, len(nodes)),
		byParent: make(map[string][]FlatNode),
	}
	for _, n := range nodes {
		idx.byID[n.ID] = n
		if n.Parent != "" {
			idx.byParent[n.Parent] = append(idx.byParent[n.Parent], n)
		}
	}
	return idx
}

// Root returns the first node of the flattened list.
func (idx *Index) Root() FlatNode {
	if len(idx.nodes) == 0 {
		return FlatNode{}
	}
	return idx.nodes[0]
}

// Nodes returns the full flattened list in pre-order.
func (idx *Index) Nodes() []FlatNode { return idx.nodes }

// Node looks up a node by ID.
func (idx *Index) Node(id string) (FlatNode, bool) {
	n, ok := idx.byID[id]
	return n, ok
}

// Children returns the ordered children of the node with the given ID.
func (idx *Index) Children(id string) []FlatNode { return idx.byParent[id] }

// HasChildren reports whether the node with the given ID is drillable.
func (idx *Index) HasChildren(id string) bool { return len(idx.byParent[id]) > 0 }
