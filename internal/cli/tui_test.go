package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/memstack/pkg/memmap"
	"github.com/matzehuels/memstack/pkg/render/stack/layout"
)

func stackFixture() *layout.Engine {
	root := memmap.New("SoC", 0, 0x1000,
		memmap.New("Flash", 0, 0x400,
			memmap.New("Boot", 0, 0x100),
		),
		memmap.New("SRAM", 0x800, 0x400),
	)
	idx := memmap.NewIndex(memmap.Flatten(root))
	return layout.NewEngine(idx, layout.Terminal())
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStackModelNavigation(t *testing.T) {
	m := NewStackModel(stackFixture(), "SoC")

	// Only Flash is drillable at the top level (SRAM is a leaf, gaps are inert).
	if len(m.nav) != 1 {
		t.Fatalf("nav length = %d, want 1", len(m.nav))
	}
	if m.nav[0].Item.Name != "Flash" {
		t.Errorf("nav[0] = %q, want Flash", m.nav[0].Item.Name)
	}
}

func TestStackModelToggle(t *testing.T) {
	m := NewStackModel(stackFixture(), "SoC")

	next, _ := m.Update(keyMsg("enter"))
	m = next.(StackModel)

	flash, ok := m.Engine.Block("SoC@0x0/Flash@0x0")
	if !ok {
		t.Fatal("Flash block not found after toggle")
	}
	if !flash.Expanded {
		t.Error("Flash should be expanded after enter")
	}

	// Boot became visible and drillable navigation still points somewhere valid.
	if m.cursor < 0 || m.cursor >= len(m.nav) {
		t.Errorf("cursor %d out of range for nav length %d", m.cursor, len(m.nav))
	}
}

func TestStackModelQuit(t *testing.T) {
	m := NewStackModel(stackFixture(), "SoC")
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
}

func TestStackModelView(t *testing.T) {
	m := NewStackModel(stackFixture(), "SoC")
	view := m.View()

	for _, want := range []string{"SoC", "Flash", "SRAM", memmap.GapName} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	// Closing boundary of the whole space.
	if !strings.Contains(view, "0x0000_1000") {
		t.Errorf("view missing end address, got:\n%s", view)
	}
}
