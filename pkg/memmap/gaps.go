package memmap

import (
	"slices"
	"strconv"
)

// GapName is the display name for synthesized unmapped ranges.
const GapName = "Unmapped / Reserved"

// Item is the transient view-model for one slot in a level's layout pass:
// either a real child node or a synthesized gap. Gaps are never drillable
// and are never persisted.
type Item struct {
	ID    string
	Name  string
	Start uint64
	End   uint64
	Size  uint64
	Gap   bool

	// Depth is the tree depth of the underlying node; for gaps it is the
	// depth the gap is displayed at. Used by renderers for palette lookup.
	Depth int
}

// Gaps computes the complementary set of unmapped sub-ranges of parent not
// covered by any child. Children must be in start order (the flattened order
// guarantees this). The returned gaps are disjoint, do not overlap any child,
// and together with the children exactly tile [parent.Start, parent.End).
//
// A parent with no children yields a single gap spanning its full range, or
// nothing when the parent has zero size.
func Gaps(parent FlatNode, children []FlatNode) []Item {
	var gaps []Item
	cur := parent.Start
	for _, k := range children {
		if k.Start > cur {
			gaps = append(gaps, gap(parent, cur, k.Start))
		}
		cur = max(cur, k.End)
	}
	if cur < parent.End {
		gaps = append(gaps, gap(parent, cur, parent.End))
	}
	return gaps
}

func gap(parent FlatNode, start, end uint64) Item {
	return Item{
		// Decimal start, matching the IDs the original documents carry.
		ID:    parent.ID + "/gap@" + strconv.FormatUint(start, 10),
		Name:  GapName,
		Start: start,
		End:   end,
		Size:  end - start,
		Gap:   true,
		Depth: parent.Depth + 1,
	}
}

// Items returns the full display sequence for one level: the node's children
// and the synthesized gaps between them, merged in start order.
func (idx *Index) Items(id string) []Item {
	parent, ok := idx.Node(id)
	if !ok {
		return nil
	}
	kids := idx.Children(id)

	items := make([]Item, 0, 2*len(kids)+1)
	for _, k := range kids {
		items = append(items, Item{
			ID:    k.ID,
			Name:  k.Name,
			Start: k.Start,
			End:   k.End,
			Size:  k.Size,
			Depth: k.Depth,
		})
	}
	items = append(items, Gaps(parent, kids)...)

	slices.SortStableFunc(items, func(a, b Item) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		default:
			return 0
		}
	})
	return items
}
