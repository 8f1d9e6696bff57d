package pipeline

import (
	"github.com/matzehuels/memstack/pkg/errors"
	"github.com/matzehuels/memstack/pkg/io"
	"github.com/matzehuels/memstack/pkg/render/stack/sink"
	"github.com/matzehuels/memstack/pkg/render/tree"
)

// RenderFromLayout generates artifacts for every requested format. Each
// format rebuilds its engine from the document and the same options, so the
// geometry always agrees with the layout stage's snapshot.
func RenderFromLayout(doc io.Document, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	theme := sink.ThemeByName(opts.Theme)
	title := opts.Title
	if title == "" {
		title = doc.Root.Name
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			e, _ := BuildEngine(DocumentIndex(doc), opts)
			data, err := sink.RenderJSON(e,
				sink.WithJSONProfile(opts.Profile), sink.WithJSONTheme(opts.Theme))
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal snapshot")
			}
			artifacts[format] = data

		case FormatHTML:
			page, err := sink.RenderHTML(doc, sink.WithHTMLTheme(theme), sink.WithHTMLTitle(title))
			if err != nil {
				return nil, err
			}
			artifacts[format] = page

		case FormatSVG:
			e, _ := BuildEngine(DocumentIndex(doc), opts)
			artifacts[format] = sink.RenderSVG(e, sink.WithSVGTheme(theme), sink.WithSVGTitle(title))

		case FormatTree:
			dot := tree.ToDOT(DocumentIndex(doc), tree.Options{Detailed: true})
			svg, err := tree.RenderSVG(dot)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render tree")
			}
			artifacts[format] = svg

		case FormatPNG:
			dot := tree.ToDOT(DocumentIndex(doc), tree.Options{Detailed: true})
			png, err := tree.RenderPNG(dot)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render tree png")
			}
			artifacts[format] = png

		default:
			return nil, ValidateFormat(format)
		}
	}
	return artifacts, nil
}

// Extension returns the output file extension for a format.
func Extension(format string) string {
	switch format {
	case FormatHTML:
		return ".html"
	case FormatJSON:
		return ".json"
	case FormatSVG, FormatTree:
		return ".svg"
	case FormatPNG:
		return ".png"
	default:
		return "." + format
	}
}
