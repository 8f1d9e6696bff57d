package layout

import (
	"math"
	"slices"

	"github.com/matzehuels/memstack/pkg/memmap"
)

// Block is one realized item in the layout tree. Non-gap blocks are keyed
// 1:1 to a flat node ID for the lifetime of the level they live in; gap
// blocks exist only while their level is realized.
type Block struct {
	Item memmap.Item

	// Level is the nesting depth of the realized stack the block sits in
	// (0 = top). Distinct from Item.Depth, which is the tree depth.
	Level int

	// Expanded reports whether the block currently shows a nested stack.
	Expanded bool

	// Extent is the block's current allocated extent. Mutated by relayout.
	Extent float64

	// Children is the realized nested level, nil while collapsed.
	Children []*Block
}

// Drillable reports whether the block can be expanded at all. Gap blocks are
// inert: interactions on them are absorbed without a state transition.
func (b *Block) Drillable(idx *memmap.Index) bool {
	return !b.Item.Gap && idx.HasChildren(b.Item.ID)
}

// Engine owns the expand/collapse state machine and the relayout fixed
// point for one document. It is a single-session, single-goroutine data
// structure: only one interaction (plus its settle pass) mutates it at a
// time, and the flattened node list behind it is read-only.
type Engine struct {
	idx  *memmap.Index
	prof Profile

	top    []*Block
	blocks map[string]*Block  // realized non-gap blocks by node ID
	base   map[string]float64 // extent remembered at first layout, write-once per block instance
}

// NewEngine lays out the top level of the document and returns the engine.
// The top level uses the fit-to-budget policy; the budget is raised to the
// level's minimum feasible total when the profile budget is too small.
func NewEngine(idx *memmap.Index, prof Profile) *Engine {
	e := &Engine{
		idx:    idx,
		prof:   prof,
		blocks: make(map[string]*Block),
		base:   make(map[string]float64),
	}

	items := idx.Items(idx.Root().ID)
	budget := math.Max(prof.Budget, MinTotal(items, prof.MinExtent, prof.GapExtent))
	extents := FitExtents(items, prof.MinExtent, prof.MaxExtent, budget, prof.GapExtent)
	e.top = e.realize(items, extents, 0)
	return e
}

// Profile returns the profile the engine was built with.
func (e *Engine) Profile() Profile { return e.prof }

// Index returns the flattened-node index behind the engine.
func (e *Engine) Index() *memmap.Index { return e.idx }

// Top returns the top-level blocks in start order.
func (e *Engine) Top() []*Block { return e.top }

// Block returns the realized block for a node ID, if currently visible.
func (e *Engine) Block(id string) (*Block, bool) {
	b, ok := e.blocks[id]
	return b, ok
}

// Visible returns every realized block in depth-first order: each block
// followed by its realized children. This is the navigation order for the
// interactive viewer.
func (e *Engine) Visible() []*Block {
	var out []*Block
	var walk func(bs []*Block)
	walk = func(bs []*Block) {
		for _, b := range bs {
			out = append(out, b)
			walk(b.Children)
		}
	}
	walk(e.top)
	return out
}

// Toggle flips one block between collapsed and expanded. It returns true if
// a transition happened; interactions on gaps, unknown IDs, or leaf blocks
// are no-ops. The caller must run Settle afterwards so ancestors accommodate
// the change and markers can be recomputed.
func (e *Engine) Toggle(id string) bool {
	b, ok := e.blocks[id]
	if !ok || !b.Drillable(e.idx) {
		return false
	}
	if b.Expanded {
		e.collapse(b)
	} else {
		e.expand(b)
	}
	return true
}

// ExpandAll expands every drillable block at every depth. Returns true if
// anything changed.
func (e *Engine) ExpandAll() bool {
	changed := false
	var walk func(bs []*Block)
	walk = func(bs []*Block) {
		for _, b := range bs {
			if b.Drillable(e.idx) && !b.Expanded {
				e.expand(b)
				changed = true
			}
			walk(b.Children)
		}
	}
	walk(e.top)
	return changed
}

// CollapseAll restores every top-level block to collapsed, discarding (not
// merely hiding) all nested state beneath it. Returns true if anything
// changed.
func (e *Engine) CollapseAll() bool {
	changed := false
	for _, b := range e.top {
		if b.Expanded {
			e.collapse(b)
			changed = true
		}
	}
	return changed
}

// expand materializes the nested level for b: gap synthesis over the node's
// children plus compact allocation. The block's own label/size annotation is
// a rendering concern; the engine only flips state.
func (e *Engine) expand(b *Block) {
	items := e.idx.Items(b.Item.ID)
	extents := CompactExtents(items, e.prof.InnerMinExtent, e.prof.InnerGapExtent)
	b.Children = e.realize(items, extents, b.Level+1)
	b.Expanded = true
}

// collapse discards b's realized subtree and resets the block to the extent
// remembered at its first layout.
func (e *Engine) collapse(b *Block) {
	e.discard(b.Children)
	b.Children = nil
	b.Expanded = false
	b.Extent = e.base[b.Item.ID]
}

// realize creates block records for one level and remembers their base
// extents. The base is written once per block instance and never recomputed;
// collapse restores to it exactly.
func (e *Engine) realize(items []memmap.Item, extents []float64, level int) []*Block {
	blocks := make([]*Block, len(items))
	for i, it := range items {
		b := &Block{Item: it, Level: level, Extent: extents[i]}
		if _, ok := e.base[it.ID]; !ok {
			e.base[it.ID] = extents[i]
		}
		if !it.Gap {
			e.blocks[it.ID] = b
		}
		blocks[i] = b
	}
	return blocks
}

// discard removes a realized subtree from the arena, dropping the base
// entries with it: a re-expanded level starts a fresh block instance.
func (e *Engine) discard(bs []*Block) {
	for _, b := range bs {
		e.discard(b.Children)
		delete(e.base, b.Item.ID)
		if !b.Item.Gap {
			delete(e.blocks, b.Item.ID)
		}
	}
}

// Settle runs the relayout fixed point: every expanded block, deepest level
// first, has its extent recomputed as max(base, content+padding) until no
// block moves by at least the threshold or the pass ceiling is reached.
// A parent's required extent depends on its children's already-settled
// extents, so passes walk deepest level first. Returns the
// number of passes used; hitting the ceiling is a best-effort layout, not an
// error.
func (e *Engine) Settle() int {
	for pass := 0; pass < e.prof.MaxPasses; pass++ {
		expanded := e.expandedDeepestFirst()
		changed := false

		for _, b := range expanded {
			need := math.Round(e.required(b))
			cur := math.Round(b.Extent)
			if math.Abs(cur-need) >= e.prof.Threshold {
				b.Extent = need
				changed = true
			}
		}

		if !changed {
			return pass
		}
	}
	return e.prof.MaxPasses
}

// required is the measure operation for one expanded block: the bottom edge
// of its last realized child plus the fixed inner padding, but never less
// than the block's remembered base.
func (e *Engine) required(b *Block) float64 {
	base := e.base[b.Item.ID]
	if !b.Expanded || len(b.Children) == 0 {
		return base
	}
	content := 0.0
	for _, c := range b.Children {
		content += c.Extent
	}
	return math.Max(base, content+e.prof.InnerPad)
}

// expandedDeepestFirst collects every expanded block ordered by realized
// level, deepest first. Stable within a level so same-depth blocks settle in
// document order.
func (e *Engine) expandedDeepestFirst() []*Block {
	var out []*Block
	var walk func(bs []*Block)
	walk = func(bs []*Block) {
		for _, b := range bs {
			if b.Expanded {
				out = append(out, b)
			}
			walk(b.Children)
		}
	}
	walk(e.top)

	slices.SortStableFunc(out, func(a, b *Block) int { return b.Level - a.Level })
	return out
}
