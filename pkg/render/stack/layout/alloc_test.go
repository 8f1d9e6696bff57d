package layout

import (
	"testing"

	"github.com/matzehuels/memstack/pkg/memmap"
)

func items(sizes ...uint64) []memmap.Item {
	out := make([]memmap.Item, len(sizes))
	for i, s := range sizes {
		out[i] = memmap.Item{ID: string(rune('a' + i)), Size: s}
	}
	return out
}

func withGap(its []memmap.Item, at int) []memmap.Item {
	out := append([]memmap.Item{}, its...)
	out[at].Gap = true
	out[at].Size = 0
	return out
}

func TestFitExtents(t *testing.T) {
	tests := []struct {
		name     string
		items    []memmap.Item
		min, max float64
		budget   float64
		gap      float64
		wantSum  float64 // 0 means don't check the exact sum
	}{
		{
			name:  "EqualThirds",
			items: items(64, 64, 64),
			min:   10, max: 140, budget: 100, gap: 52,
			wantSum: 100,
		},
		{
			name:  "ProportionalDominance",
			items: items(1024, 64, 64),
			min:   10, max: 1000, budget: 500, gap: 52,
			wantSum: 500,
		},
		{
			name:  "GapsAreFixed",
			items: withGap(items(64, 0, 64), 1),
			min:   52, max: 140, budget: 300, gap: 52,
			wantSum: 300,
		},
		{
			name:  "BudgetBelowFeasible",
			items: items(64, 64, 64),
			min:   52, max: 140, budget: 10, gap: 52,
			// Clamped to min each; budget unreachable, stop at 3*52.
			wantSum: 156,
		},
		{
			name:  "BudgetAboveFeasible",
			items: items(64, 64),
			min:   52, max: 140, budget: 10000, gap: 52,
			// Capped at max each.
			wantSum: 280,
		},
		{
			name:  "ZeroSizeStillVisible",
			items: items(0, 1024),
			min:   52, max: 140, budget: 400, gap: 52,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extents := FitExtents(tt.items, tt.min, tt.max, tt.budget, tt.gap)
			if len(extents) != len(tt.items) {
				t.Fatalf("len = %d, want %d", len(extents), len(tt.items))
			}

			for i, e := range extents {
				if tt.items[i].Gap {
					if e != tt.gap {
						t.Errorf("gap extent = %v, want exactly %v", e, tt.gap)
					}
					continue
				}
				if e < tt.min || e > tt.max {
					t.Errorf("extent[%d] = %v outside [%v, %v]", i, e, tt.min, tt.max)
				}
			}

			if tt.wantSum != 0 {
				if got := Total(extents); got != tt.wantSum {
					t.Errorf("sum = %v, want %v (extents %v)", got, tt.wantSum, extents)
				}
			}
		})
	}
}

// Budget 100, three items sized 1:1:1, min 10, max 140.
// Floor-based split gives 33 each; the redistribution pass hands the
// remaining unit to the first item.
func TestFitExtentsTieBreak(t *testing.T) {
	extents := FitExtents(items(7, 7, 7), 10, 140, 100, 52)
	want := []float64{34, 33, 33}
	for i, w := range want {
		if extents[i] != w {
			t.Fatalf("extents = %v, want %v", extents, want)
		}
	}
}

func TestFitExtentsEmpty(t *testing.T) {
	if got := FitExtents(nil, 10, 100, 500, 52); got != nil {
		t.Errorf("FitExtents(nil) = %v, want nil", got)
	}
}

func TestCompactExtents(t *testing.T) {
	its := withGap(items(64, 0, 1024), 1)
	extents := CompactExtents(its, 44, 38)
	want := []float64{44, 38, 44}
	for i, w := range want {
		if extents[i] != w {
			t.Fatalf("extents = %v, want %v", extents, want)
		}
	}
	if got := MinTotal(its, 44, 38); got != 126 {
		t.Errorf("MinTotal = %v, want 126", got)
	}
}
