package layout

import (
	"math"
	"slices"
)

// DefaultHint marks a boundary whose background falls back to the level-wide
// default instead of a neighboring block's palette entry.
const DefaultHint = -1

// Marker is one address label on a level's boundary lane.
type Marker struct {
	// Pos is the rounded offset of the boundary from the top of the level.
	Pos float64

	// Addr is the address at the boundary.
	Addr uint64

	// Hint is the palette depth of the nearest non-gap neighbor, preferring
	// the next block over the previous one, or DefaultHint when the level
	// has no non-gap block at all. Renderers map it to a background color.
	Hint int
}

// Markers computes the boundary markers for one positioned level: the top
// edge of every block plus the bottom edge of the last one. Boundaries that
// round to the same position are deduplicated keeping the first-seen entry,
// and the result is sorted by position ascending.
//
// Must be called only after the layout has settled; the positions are
// derived from the blocks' current extents.
func Markers(level []*Block) []Marker {
	if len(level) == 0 {
		return nil
	}

	boundaries := make([]Marker, 0, len(level)+1)
	y := 0.0
	for i, b := range level {
		boundaries = append(boundaries, Marker{
			Pos:  math.Round(y),
			Addr: b.Item.Start,
			Hint: hintFor(level, i),
		})
		y += b.Extent
	}
	last := level[len(level)-1]
	boundaries = append(boundaries, Marker{
		Pos:  math.Round(y),
		Addr: last.Item.End,
		Hint: hintFor(level, len(level)-1),
	})

	seen := make(map[int]struct{}, len(boundaries))
	uniq := boundaries[:0]
	for _, m := range boundaries {
		key := int(m.Pos)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		uniq = append(uniq, m)
	}

	slices.SortStableFunc(uniq, func(a, b Marker) int {
		switch {
		case a.Pos < b.Pos:
			return -1
		case a.Pos > b.Pos:
			return 1
		default:
			return 0
		}
	})
	return uniq
}

// hintFor borrows the background of the nearest non-gap block: the block
// itself, then the next sibling, then the previous one.
func hintFor(level []*Block, i int) int {
	if !level[i].Item.Gap {
		return level[i].Item.Depth
	}
	for j := i + 1; j < len(level); j++ {
		if !level[j].Item.Gap {
			return level[j].Item.Depth
		}
	}
	for j := i - 1; j >= 0; j-- {
		if !level[j].Item.Gap {
			return level[j].Item.Depth
		}
	}
	return DefaultHint
}
