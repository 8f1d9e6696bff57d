package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/memstack/pkg/io"
	"github.com/matzehuels/memstack/pkg/memmap"
	"github.com/matzehuels/memstack/pkg/store"
)

// publishCommand creates the publish command for archiving a document.
func (c *CLI) publishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "publish <file>",
		Short: "Validate a map file and archive its document in the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))

			_, idx, err := io.Load(args[0])
			if err != nil {
				return err
			}
			doc := io.Export(idx)

			st, err := store.Connect(ctx, c.cfg.Store.MongoURI, c.cfg.Store.Database, c.cfg.Store.Collection)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			if err := st.Publish(ctx, doc); err != nil {
				return err
			}
			prog.done("Published document")
			printSuccess("Published %s", args[0])
			printKeyValue("Document ID", doc.DocumentID)
			printKeyValue("Regions", fmt.Sprintf("%d", len(doc.Nodes)))
			printNextStep("Fetch it", appName+" fetch "+doc.DocumentID)
			return nil
		},
	}
}

// fetchCommand creates the fetch command for retrieving an archived document.
func (c *CLI) fetchCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "fetch <document-id>",
		Short: "Fetch an archived document payload from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := store.Connect(ctx, c.cfg.Store.MongoURI, c.cfg.Store.Database, c.cfg.Store.Collection)
			if err != nil {
				return err
			}
			defer st.Close(ctx)

			doc, err := st.Fetch(ctx, args[0])
			if err != nil {
				return err
			}

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
			printSuccess("Fetched %s", doc.Root.Name)
			printDetail("%d regions, %s total", len(doc.Nodes), memmap.FormatSize(doc.Root.Size))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
