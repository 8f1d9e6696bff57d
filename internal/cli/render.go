package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/memstack/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file path (or base path for multiple formats)
	formats string // comma-separated output formats
	theme   string // color theme: "dark" or "light"
	profile string // layout profile: "document" or "terminal"
	budget  int    // vertical budget override in layout units
	depth   int    // pre-expand drillable regions up to this depth
	title   string // page title override for HTML output
	noCache bool   // bypass the cache entirely
	refresh bool   // recompute and overwrite cached entries
}

// renderCommand creates the render command for generating diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a map file as an interactive or static diagram",
		Long: `Render decodes a map file, computes the proportional stack layout, and
writes one artifact per requested format. The html format is a
self-contained interactive page; svg and json are static snapshots of
the collapsed (or depth-expanded) state; tree and png are structural
graphs of the containment hierarchy.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): html (default), svg, json, tree, png (comma-separated)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "color theme: dark (default), light")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "layout profile: document (default), terminal")
	cmd.Flags().IntVar(&opts.budget, "budget", 0, "vertical budget in layout units (0 uses the profile default)")
	cmd.Flags().IntVar(&opts.depth, "depth", 0, "pre-expand drillable regions up to this depth")
	cmd.Flags().StringVar(&opts.title, "title", "", "page title for HTML output (default: root region name)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the cache entirely")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute and overwrite cached entries")
	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	popts := c.pipelineOptions(input)
	popts.Refresh = opts.refresh
	popts.Depth = opts.depth
	popts.Title = opts.title
	popts.Formats = parseFormats(opts.formats, pipeline.FormatHTML)
	if opts.theme != "" {
		popts.Theme = opts.theme
	}
	if opts.profile != "" {
		popts.Profile = opts.profile
	}
	if opts.budget > 0 {
		popts.Budget = opts.budget
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s", input))
	spin.Start()
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spin.StopWithError(fmt.Sprintf("Rendering %s failed", input))
		return err
	}
	spin.StopWithSuccess(fmt.Sprintf("Rendered %s", input))

	cached := result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
	printStats(result.Stats.NodeCount, result.Stats.SettlePasses, cached)

	paths, err := writeArtifacts(input, opts.output, popts.Formats, result.Artifacts)
	if err != nil {
		return err
	}
	for _, p := range paths {
		printFile(p)
	}
	logger.Debugf("Wrote %d artifact(s)", len(paths))

	if len(popts.Formats) == 1 && popts.Formats[0] == pipeline.FormatHTML {
		printNextStep("Open it", "open "+paths[0])
	}
	return nil
}

// writeArtifacts writes one file per format and returns the written paths.
// With a single format the output path is used as-is; with several, it is
// treated as a base path and each file gets the format's extension.
func writeArtifacts(input, output string, formats []string, artifacts map[string][]byte) ([]string, error) {
	base := artifactBase(output, input)
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + pipeline.Extension(format)
		if format == pipeline.FormatTree {
			// The tree artifact is also SVG; suffix it so it never
			// clobbers the stack SVG.
			path = base + "_tree" + pipeline.Extension(format)
		}
		if len(formats) == 1 && output != "" {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// artifactBase derives the base output path from the output and input paths.
// An empty output falls back to the input name without its extension; a
// format extension on the output is stripped.
func artifactBase(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
