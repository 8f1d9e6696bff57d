package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/memstack/pkg/memmap"
	"github.com/matzehuels/memstack/pkg/render/stack/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// stackDepthStyles cycles by tree depth, mirroring the diagram palette.
var stackDepthStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(colorCyan),
	lipgloss.NewStyle().Foreground(colorGreen),
	lipgloss.NewStyle().Foreground(colorYellow),
	lipgloss.NewStyle().Foreground(colorBlue),
	lipgloss.NewStyle().Foreground(colorWhite),
}

// =============================================================================
// StackModel - Interactive stack browsing
// =============================================================================

// StackModel is the bubbletea model for browsing a map as a proportional
// stack. Navigation moves over drillable regions only; gaps are shown but
// never selectable.
type StackModel struct {
	Engine *layout.Engine
	Title  string

	// nav is the current navigation order: visible drillable blocks in
	// depth-first order. Rebuilt after every state transition.
	nav    []*layout.Block
	cursor int
}

// NewStackModel creates a stack browsing model over a fresh engine.
func NewStackModel(engine *layout.Engine, title string) StackModel {
	m := StackModel{Engine: engine, Title: title}
	m.rebuildNav()
	return m
}

func (m *StackModel) rebuildNav() {
	m.nav = m.nav[:0]
	for _, b := range m.Engine.Visible() {
		if b.Drillable(m.Engine.Index()) {
			m.nav = append(m.nav, b)
		}
	}
	if m.cursor >= len(m.nav) {
		m.cursor = len(m.nav) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m StackModel) Init() tea.Cmd {
	return nil
}

func (m StackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.nav)-1 {
				m.cursor++
			}
		case "enter", " ":
			if len(m.nav) > 0 {
				b := m.nav[m.cursor]
				if m.Engine.Toggle(b.Item.ID) {
					m.Engine.Settle()
					m.rebuildNav()
				}
			}
		case "E":
			if m.Engine.ExpandAll() {
				m.Engine.Settle()
				m.rebuildNav()
			}
		case "C":
			if m.Engine.CollapseAll() {
				m.Engine.Settle()
				m.rebuildNav()
			}
		}
	}
	return m, nil
}

func (m StackModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ expand/collapse  E expand all  C collapse all  q quit"))
	b.WriteString("\n\n")

	m.renderLevel(&b, m.Engine.Top(), 0)

	// Closing boundary of the whole space.
	end := m.Engine.Index().Root().End
	b.WriteString(listDimStyle.Render(memmap.FormatAddr(end)))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, max(len(m.nav), 1))))

	return b.String()
}

// renderLevel draws one realized level: each block gets rows proportional
// to its settled extent, with its start address on the top boundary.
func (m StackModel) renderLevel(b *strings.Builder, level []*layout.Block, indent int) {
	pad := strings.Repeat(" ", indent)
	for _, blk := range level {
		selected := m.isSelected(blk)
		style := stackDepthStyles[blk.Item.Depth%len(stackDepthStyles)]
		if blk.Item.Gap {
			style = listDimStyle
		}
		if selected {
			style = listSelectedStyle
		}

		cursor := "  "
		if selected {
			cursor = "▸ "
		}
		marker := "  "
		if blk.Drillable(m.Engine.Index()) {
			marker = "− "
			if !blk.Expanded {
				marker = "+ "
			}
		}

		addr := listDimStyle.Render(memmap.FormatAddr(blk.Item.Start))
		name := blk.Item.Name
		size := listDimStyle.Render(memmap.FormatSize(blk.Item.Size))
		b.WriteString(fmt.Sprintf("%s%s%s %s %s\n", pad, cursor, addr, style.Render(marker+name), size))

		if blk.Expanded {
			m.renderLevel(b, blk.Children, indent+4)
			continue
		}
		for i := 1; i < blockRows(blk); i++ {
			b.WriteString(pad + "  " + style.Render("│") + "\n")
		}
	}
}

func (m StackModel) isSelected(blk *layout.Block) bool {
	return len(m.nav) > 0 && m.nav[m.cursor] == blk
}

// blockRows converts a settled extent to terminal rows, at least one.
func blockRows(b *layout.Block) int {
	rows := int(math.Round(b.Extent))
	if rows < 1 {
		rows = 1
	}
	return rows
}
