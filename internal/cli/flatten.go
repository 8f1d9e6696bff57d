package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/memstack/pkg/io"
	"github.com/matzehuels/memstack/pkg/memmap"
)

// flattenCommand creates the flatten command that emits the document payload.
func (c *CLI) flattenCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "flatten <file>",
		Short: "Emit the flattened document payload for a map file",
		Long: `Flatten validates the map and writes its pre-order flattened form as
JSON: one record per region with stable hierarchical IDs, absolute
ranges, and depths. This is the payload the renderers and the HTTP API
consume.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := newProgress(loggerFromContext(cmd.Context()))

			_, idx, err := io.Load(args[0])
			if err != nil {
				return err
			}
			doc := io.Export(idx)
			prog.done(fmt.Sprintf("Flattened %d regions", len(doc.Nodes)))

			data, err := io.MarshalDocument(doc)
			if err != nil {
				return err
			}

			if output == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printSuccess("Flattened %s", args[0])
			printDetail("%d regions, %s total", len(doc.Nodes), memmap.FormatSize(doc.Root.Size))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
