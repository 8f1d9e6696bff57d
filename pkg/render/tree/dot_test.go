package tree

import (
	"strings"
	"testing"

	"github.com/matzehuels/memstack/pkg/memmap"
)

func testIndex() *memmap.Index {
	root := memmap.New("SoC", 0, 0x1000_0000,
		memmap.New("Flash", 0x0800_0000, 0x10_0000),
		memmap.New("SRAM", 0x0900_0000, 0x2_0000),
	)
	return memmap.NewIndex(memmap.Flatten(root))
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testIndex(), Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Fatalf("not a digraph: %.30q", dot)
	}
	// One node per region.
	for _, name := range []string{"SoC", "Flash", "SRAM"} {
		if !strings.Contains(dot, name) {
			t.Errorf("missing node %q", name)
		}
	}
	// One edge per containment.
	if got := strings.Count(dot, "->"); got != 2 {
		t.Errorf("edges = %d, want 2", got)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testIndex(), Options{Detailed: true})

	if !strings.Contains(dot, "0x0800_0000") {
		t.Error("detailed labels should carry addresses")
	}
	if !strings.Contains(dot, "1.00 MB") {
		t.Error("detailed labels should carry sizes")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.00 200.00" xmlns="http://www.w3.org/2000/svg">`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.00 200.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="100" height="200"`) {
		t.Errorf("pixel size not aligned: %s", out)
	}
}
