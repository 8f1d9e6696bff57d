package layout

import (
	"testing"

	"github.com/matzehuels/memstack/pkg/memmap"
)

// deepTree builds root -> A -> A0 -> A00 with siblings and gaps at every
// level, so expansion has to propagate growth through several ancestors.
func deepTree() *memmap.Index {
	root := memmap.New("SoC", 0, 0x1000_0000,
		memmap.New("A", 0x0, 0x40_0000,
			memmap.New("A0", 0x0, 0x10_0000,
				memmap.New("A00", 0x0, 0x1000),
				memmap.New("A01", 0x8_0000, 0x1000),
			),
			memmap.New("A1", 0x20_0000, 0x10_0000),
		),
		memmap.New("B", 0x800_0000, 0x100_0000),
	)
	return memmap.NewIndex(memmap.Flatten(root))
}

func blockID(e *Engine, name string) string {
	for _, n := range e.Index().Nodes() {
		if n.Name == name {
			return n.ID
		}
	}
	return ""
}

func TestEngineTopLevel(t *testing.T) {
	e := NewEngine(deepTree(), Document())

	top := e.Top()
	// A, gap, B, gap.
	if len(top) != 4 {
		t.Fatalf("top blocks = %d, want 4", len(top))
	}
	if top[1].Item.Gap != true || top[3].Item.Gap != true {
		t.Fatalf("gap positions wrong: %+v", top)
	}

	prof := e.Profile()
	for _, b := range top {
		if b.Item.Gap {
			if b.Extent != prof.GapExtent {
				t.Errorf("gap extent = %v, want %v", b.Extent, prof.GapExtent)
			}
			continue
		}
		if b.Extent < prof.MinExtent || b.Extent > prof.MaxExtent {
			t.Errorf("block %s extent %v outside clamp", b.Item.Name, b.Extent)
		}
	}
}

func TestToggleRoundTrip(t *testing.T) {
	e := NewEngine(deepTree(), Document())
	id := blockID(e, "A")

	b, _ := e.Block(id)
	base := b.Extent

	if !e.Toggle(id) {
		t.Fatal("expand toggle reported no change")
	}
	e.Settle()

	if !b.Expanded || len(b.Children) == 0 {
		t.Fatal("block not expanded")
	}
	if b.Extent <= base {
		t.Errorf("expanded extent %v not above base %v", b.Extent, base)
	}

	// A0 is realized now and drillable.
	a0, ok := e.Block(blockID(e, "A0"))
	if !ok {
		t.Fatal("A0 not realized after expanding A")
	}
	if !a0.Drillable(e.Index()) {
		t.Fatal("A0 should be drillable")
	}

	if !e.Toggle(id) {
		t.Fatal("collapse toggle reported no change")
	}
	e.Settle()

	if b.Expanded || b.Children != nil {
		t.Fatal("nested state not discarded on collapse")
	}
	if b.Extent != base {
		t.Errorf("collapse restored extent %v, want base %v", b.Extent, base)
	}
	if _, still := e.Block(blockID(e, "A0")); still {
		t.Error("descendant block survived collapse")
	}
}

func TestToggleNoOps(t *testing.T) {
	e := NewEngine(deepTree(), Document())

	// Gaps are inert.
	for _, b := range e.Top() {
		if b.Item.Gap && e.Toggle(b.Item.ID) {
			t.Error("toggling a gap transitioned state")
		}
	}

	// Leaf blocks cannot expand.
	if e.Toggle(blockID(e, "B")) {
		t.Error("toggling a leaf transitioned state")
	}

	// Unknown IDs are ignored.
	if e.Toggle("nope") {
		t.Error("toggling an unknown id transitioned state")
	}
}

func TestNestedGrowthPropagates(t *testing.T) {
	e := NewEngine(deepTree(), Document())
	prof := e.Profile()

	e.Toggle(blockID(e, "A"))
	e.Settle()
	a, _ := e.Block(blockID(e, "A"))
	afterOne := a.Extent

	e.Toggle(blockID(e, "A0"))
	e.Settle()
	a0, _ := e.Block(blockID(e, "A0"))

	// A0 must hold its own children plus padding...
	content := 0.0
	for _, c := range a0.Children {
		content += c.Extent
	}
	if a0.Extent < content+prof.InnerPad {
		t.Errorf("A0 extent %v below content %v + pad", a0.Extent, content)
	}

	// ...and A must have grown to hold the grown A0.
	if a.Extent <= afterOne {
		t.Errorf("ancestor did not grow: %v -> %v", afterOne, a.Extent)
	}
	aContent := 0.0
	for _, c := range a.Children {
		aContent += c.Extent
	}
	if a.Extent < aContent+prof.InnerPad {
		t.Errorf("A extent %v below its content %v + pad", a.Extent, aContent)
	}
}

func TestSettleIsIdempotent(t *testing.T) {
	e := NewEngine(deepTree(), Document())
	e.ExpandAll()
	e.Settle()
	if passes := e.Settle(); passes != 0 {
		t.Errorf("second settle took %d passes, want 0", passes)
	}
}

func TestExpandCollapseAll(t *testing.T) {
	e := NewEngine(deepTree(), Document())

	bases := make(map[string]float64)
	for _, b := range e.Top() {
		bases[b.Item.ID] = b.Extent
	}

	if !e.ExpandAll() {
		t.Fatal("ExpandAll changed nothing")
	}
	e.Settle()

	// Every drillable node is expanded, to full depth.
	for _, name := range []string{"A", "A0"} {
		b, ok := e.Block(blockID(e, name))
		if !ok || !b.Expanded {
			t.Fatalf("%s not expanded after ExpandAll", name)
		}
	}
	if _, ok := e.Block(blockID(e, "A00")); !ok {
		t.Fatal("deepest level not realized")
	}

	if !e.CollapseAll() {
		t.Fatal("CollapseAll changed nothing")
	}
	e.Settle()

	for _, b := range e.Top() {
		if b.Expanded || b.Children != nil {
			t.Errorf("top block %s still expanded", b.Item.Name)
		}
		if b.Extent != bases[b.Item.ID] {
			t.Errorf("top block %s extent %v, want base %v", b.Item.Name, b.Extent, bases[b.Item.ID])
		}
	}
	if len(e.Visible()) != len(e.Top()) {
		t.Errorf("nested blocks survived CollapseAll")
	}
}

func TestVisibleOrder(t *testing.T) {
	e := NewEngine(deepTree(), Document())
	e.Toggle(blockID(e, "A"))
	e.Settle()

	vis := e.Visible()
	// Top: A, gap, B, gap. A's children follow A immediately.
	if vis[0].Item.Name != "A" {
		t.Fatalf("vis[0] = %s, want A", vis[0].Item.Name)
	}
	if vis[1].Level != 1 {
		t.Fatalf("vis[1] level = %d, want 1 (A's first child)", vis[1].Level)
	}
	last := vis[len(vis)-1]
	if last.Level != 0 || !last.Item.Gap {
		t.Fatalf("last visible = %+v, want trailing top-level gap", last.Item)
	}
}
