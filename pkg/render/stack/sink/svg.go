package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/memstack/pkg/memmap"
	"github.com/matzehuels/memstack/pkg/render/stack/layout"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme Theme
	width float64
	title string
}

// WithSVGTheme selects the color theme.
func WithSVGTheme(t Theme) SVGOption { return func(r *svgRenderer) { r.theme = t } }

// WithSVGWidth overrides the diagram width in pixels.
func WithSVGWidth(w float64) SVGOption { return func(r *svgRenderer) { r.width = w } }

// WithSVGTitle sets the document title rendered above the stack.
func WithSVGTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

const (
	markerLaneW = 128.0
	childInset  = 12.0
	titleH      = 34.0
)

// RenderSVG draws the settled layout as a static SVG snapshot. The picture
// reflects the engine's current expansion state; it has no interactivity.
func RenderSVG(e *layout.Engine, opts ...SVGOption) []byte {
	r := svgRenderer{theme: Dark(), width: 760}
	for _, opt := range opts {
		opt(&r)
	}

	top := e.Top()
	pad := e.Profile().InnerPad
	height := titleH + totalExtent(top) + 24

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="ui-monospace, monospace">`+"\n",
		r.width, height, r.width, height)
	fmt.Fprintf(&buf, `<rect width="%.1f" height="%.1f" fill="%s"/>`+"\n", r.width, height, r.theme.Background)

	if r.title != "" {
		fmt.Fprintf(&buf, `<text x="%.1f" y="22" fill="%s" font-size="15">%s</text>`+"\n",
			markerLaneW, r.theme.Text, html.EscapeString(r.title))
	}

	x := markerLaneW
	w := r.width - markerLaneW - 16
	renderLevel(&buf, &r, top, x, titleH, w, pad)
	renderMarkerLane(&buf, &r, layout.Markers(top), titleH)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderLevel draws one positioned stack. Children of an expanded block are
// placed at its bottom edge; the space above them holds the block's label.
func renderLevel(buf *bytes.Buffer, r *svgRenderer, level []*layout.Block, x, y, w, pad float64) {
	for _, b := range level {
		renderBlock(buf, r, b, x, y, w)
		if b.Expanded && len(b.Children) > 0 {
			childY := y + b.Extent - totalExtent(b.Children)
			if childY < y+pad {
				childY = y + pad
			}
			renderLevel(buf, r, b.Children, x+childInset, childY, w-2*childInset, pad)
		}
		y += b.Extent
	}
}

func renderBlock(buf *bytes.Buffer, r *svgRenderer, b *layout.Block, x, y, w float64) {
	t := r.theme
	fill := t.DepthColor(b.Item.Depth)
	if b.Item.Gap {
		fill = t.GapFill
	}
	fmt.Fprintf(buf, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		x, y, w, b.Extent, fill, t.Border)

	if b.Extent < 14 {
		return
	}
	textColor := t.Text
	if b.Item.Gap {
		textColor = t.GapText
	}
	label := fmt.Sprintf("%s  %s", b.Item.Name, memmap.FormatSize(b.Item.Size))
	fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" fill="%s" font-size="12">%s</text>`+"\n",
		x+8, y+14, textColor, html.EscapeString(label))
}

// renderMarkerLane draws the top-level boundary addresses left of the stack.
func renderMarkerLane(buf *bytes.Buffer, r *svgRenderer, marks []layout.Marker, yOff float64) {
	t := r.theme
	for _, m := range marks {
		y := yOff + m.Pos
		fmt.Fprintf(buf, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
			markerLaneW-10, y, markerLaneW, y, t.Marker)
		fmt.Fprintf(buf, `<text x="%.1f" y="%.1f" fill="%s" font-size="10" text-anchor="end">%s</text>`+"\n",
			markerLaneW-14, y+3, t.Muted, memmap.FormatAddr(m.Addr))
	}
}
