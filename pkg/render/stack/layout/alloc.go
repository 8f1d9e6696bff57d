package layout

import (
	"math"

	"github.com/matzehuels/memstack/pkg/memmap"
)

// redistributeGuard bounds the redistribution loop in FitExtents. The loop
// normally terminates in a handful of passes; the guard only matters for
// degenerate inputs.
const redistributeGuard = 2000

// FitExtents implements the fit-to-budget policy for one level of items.
//
// Gaps get exactly gap and their cost is subtracted from budget up front.
// Non-gap items start at floor(size/sumSizes * remaining) and are clamped to
// [min, max]. A redistribution pass then resolves the difference between the
// clamped total and the budget: a deficit is added to items still below max,
// a surplus removed from items still above min, split as evenly as possible
// per pass with earlier items absorbing the remainder. The loop stops when
// the budget is met, nothing remains adjustable, or the guard trips.
//
// Every returned non-gap extent lies in [min, max]; the total approaches the
// budget as closely as the clamp bounds allow. Large ranges visually
// dominate, but no range collapses below a usable minimum or balloons past a
// usable maximum; the true byte-size ratio is only approximate once clamping
// triggers.
func FitExtents(items []memmap.Item, min, max, budget, gap float64) []float64 {
	if len(items) == 0 {
		return nil
	}

	fixedGap := 0.0
	sumSize := 0.0
	for _, it := range items {
		if it.Gap {
			fixedGap += gap
			continue
		}
		sumSize += sizeWeight(it)
	}
	nonGapBudget := math.Max(0, budget-fixedGap)
	if sumSize == 0 {
		sumSize = 1
	}

	extents := make([]float64, len(items))
	for i, it := range items {
		if it.Gap {
			extents[i] = gap
			continue
		}
		e := math.Floor(sizeWeight(it) / sumSize * nonGapBudget)
		extents[i] = math.Min(max, math.Max(min, e))
	}

	total := func() float64 {
		t := 0.0
		for _, e := range extents {
			t += e
		}
		return t
	}
	delta := budget - total()

	for guard := 0; delta != 0 && guard < redistributeGuard; guard++ {
		if delta > 0 {
			grow := adjustable(items, extents, func(i int) bool { return extents[i] < max })
			if len(grow) == 0 {
				break
			}
			step := math.Max(1, math.Floor(delta/float64(len(grow))))
			for _, i := range grow {
				add := math.Min(step, math.Min(max-extents[i], delta))
				extents[i] += add
				delta -= add
				if delta == 0 {
					break
				}
			}
		} else {
			shrink := adjustable(items, extents, func(i int) bool { return extents[i] > min })
			if len(shrink) == 0 {
				break
			}
			need := -delta
			step := math.Max(1, math.Floor(need/float64(len(shrink))))
			for _, i := range shrink {
				sub := math.Min(step, math.Min(extents[i]-min, need))
				extents[i] -= sub
				need -= sub
				delta += sub
				if delta == 0 {
					break
				}
			}
		}
	}

	return extents
}

// CompactExtents implements the compact policy for nested levels: every
// non-gap item gets exactly min, every gap exactly gap.
func CompactExtents(items []memmap.Item, min, gap float64) []float64 {
	extents := make([]float64, len(items))
	for i, it := range items {
		if it.Gap {
			extents[i] = gap
		} else {
			extents[i] = min
		}
	}
	return extents
}

// Total sums a slice of extents.
func Total(extents []float64) float64 {
	t := 0.0
	for _, e := range extents {
		t += e
	}
	return t
}

// MinTotal is the smallest feasible total for a level: every gap at gap,
// every non-gap at min. Budgets below this are raised by the engine.
func MinTotal(items []memmap.Item, min, gap float64) float64 {
	t := 0.0
	for _, it := range items {
		if it.Gap {
			t += gap
		} else {
			t += min
		}
	}
	return t
}

// sizeWeight treats zero-size ranges as one byte so they still get a
// proportional share instead of disappearing.
func sizeWeight(it memmap.Item) float64 {
	if it.Size == 0 {
		return 1
	}
	return float64(it.Size)
}

// adjustable returns the indices of non-gap items the predicate admits, in
// level order. Iteration order is the tie-break: first items get priority
// for the remaining unit on each pass.
func adjustable(items []memmap.Item, extents []float64, ok func(int) bool) []int {
	var idx []int
	for i, it := range items {
		if !it.Gap && ok(i) {
			idx = append(idx, i)
		}
	}
	return idx
}
