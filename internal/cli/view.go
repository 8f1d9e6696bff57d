package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/memstack/pkg/io"
	"github.com/matzehuels/memstack/pkg/render/stack/layout"
)

// viewCommand creates the view command for interactive terminal browsing.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view <file>",
		Short: "Browse a map interactively in the terminal",
		Long: `View lays out the map with the terminal profile and opens an interactive
browser: regions are drawn with heights proportional to their sizes, and
composite regions can be expanded in place to reveal their internal
layout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, idx, err := io.Load(args[0])
			if err != nil {
				return err
			}

			engine := layout.NewEngine(idx, layout.Terminal())
			model := NewStackModel(engine, root.Name)

			p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}
