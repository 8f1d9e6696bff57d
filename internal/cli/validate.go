package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/memstack/pkg/errors"
	"github.com/matzehuels/memstack/pkg/io"
	"github.com/matzehuels/memstack/pkg/memmap"
)

// validateCommand creates the validate command for checking map files.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a map file against the containment and overlap rules",
		Long: `Validate reads an address space map and reports every violation of the
structural rules: children must lie inside their parent's range, and
siblings must not overlap. All violations are reported at once, not just
the first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := io.ImportJSON(args[0])
			if err != nil {
				return err
			}

			violations := memmap.Validate(root)
			if len(violations) == 0 {
				flat := memmap.Flatten(root)
				printSuccess("%s is valid", args[0])
				printDetail("%d regions, %s total", len(flat), memmap.FormatSize(root.Size))
				return nil
			}

			printError("%s has %d violation(s)", args[0], len(violations))
			for _, v := range violations {
				printDetail("%s", v.Message)
			}
			return errors.FromViolations(violations)
		},
	}
}
