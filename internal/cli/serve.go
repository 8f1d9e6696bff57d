package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/memstack/pkg/io"
	"github.com/matzehuels/memstack/pkg/pipeline"
	"github.com/matzehuels/memstack/pkg/server"
)

// serveCommand creates the serve command for hosting a map over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		theme   string
		profile string
		budget  int
		depth   int
		title   string
	)

	cmd := &cobra.Command{
		Use:   "serve <file>",
		Short: "Serve a map as an interactive page over HTTP",
		Long: `Serve decodes and validates a map file once, then hosts it: the index
page is the interactive diagram, and /api/nodes and /api/layout expose
the document payload and the settled layout as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			_, idx, err := io.Load(args[0])
			if err != nil {
				return err
			}
			doc := io.Export(idx)

			opts := c.pipelineOptions(args[0])
			opts.Depth = depth
			opts.Title = title
			opts.Formats = []string{pipeline.FormatHTML}
			if theme != "" {
				opts.Theme = theme
			}
			if profile != "" {
				opts.Profile = profile
			}
			if budget > 0 {
				opts.Budget = budget
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			printInfo("Serving %s on http://%s", args[0], addr)
			printDetail("%d regions", len(doc.Nodes))

			srv := server.New(doc, opts, c.Logger)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	cmd.Flags().StringVar(&theme, "theme", "", "color theme: dark (default), light")
	cmd.Flags().StringVar(&profile, "profile", "", "layout profile: document (default), terminal")
	cmd.Flags().IntVar(&budget, "budget", 0, "vertical budget in layout units (0 uses the profile default)")
	cmd.Flags().IntVar(&depth, "depth", 0, "pre-expand drillable regions up to this depth")
	cmd.Flags().StringVar(&title, "title", "", "page title (default: root region name)")
	return cmd
}
