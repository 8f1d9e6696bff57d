package sink

import (
	"encoding/json"

	"github.com/matzehuels/memstack/pkg/memmap"
	"github.com/matzehuels/memstack/pkg/render/stack/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	profile string
	theme   string
}

// WithJSONProfile records the layout profile name in the output for
// round-trip rendering.
func WithJSONProfile(name string) JSONOption {
	return func(r *jsonRenderer) { r.profile = name }
}

// WithJSONTheme records the theme name in the output.
func WithJSONTheme(name string) JSONOption {
	return func(r *jsonRenderer) { r.theme = name }
}

// Snapshot is the serialized layout state: the realized block tree with
// extents, plus boundary markers per positioned level.
type Snapshot struct {
	Profile string          `json:"profile,omitempty"`
	Theme   string          `json:"theme,omitempty"`
	Budget  float64         `json:"budget"`
	Total   float64         `json:"total"`
	Blocks  []SnapshotBlock `json:"blocks"`
	Markers []MarkerRecord  `json:"markers"`
}

// SnapshotBlock is one realized block. Children are present only while the
// block is expanded; Markers carry the child level's boundary lane.
type SnapshotBlock struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Start    uint64          `json:"start"`
	End      uint64          `json:"end"`
	Size     uint64          `json:"size"`
	Gap      bool            `json:"gap,omitempty"`
	Depth    int             `json:"depth"`
	Expanded bool            `json:"expanded,omitempty"`
	Extent   float64         `json:"extent"`
	Children []SnapshotBlock `json:"children,omitempty"`
	Markers  []MarkerRecord  `json:"markers,omitempty"`
}

// MarkerRecord is one boundary marker with its formatted address attached.
type MarkerRecord struct {
	Pos   float64 `json:"pos"`
	Addr  uint64  `json:"addr"`
	Label string  `json:"label"`
	Hint  int     `json:"hint"`
}

// Capture builds a snapshot from the engine's current state. It must be
// called after Settle so positions are final.
func Capture(e *layout.Engine) Snapshot {
	top := e.Top()
	return Snapshot{
		Budget:  e.Profile().Budget,
		Total:   totalExtent(top),
		Blocks:  snapshotLevel(top),
		Markers: markerRecords(layout.Markers(top)),
	}
}

// RenderJSON exports the settled layout as a pretty-printed JSON document.
// The snapshot is the interchange format between the engine and everything
// that cannot run it: caching, the HTTP API, external tooling.
func RenderJSON(e *layout.Engine, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	snap := Capture(e)
	snap.Profile = r.profile
	snap.Theme = r.theme
	return json.MarshalIndent(snap, "", "  ")
}

func snapshotLevel(level []*layout.Block) []SnapshotBlock {
	out := make([]SnapshotBlock, len(level))
	for i, b := range level {
		sb := SnapshotBlock{
			ID:       b.Item.ID,
			Name:     b.Item.Name,
			Start:    b.Item.Start,
			End:      b.Item.End,
			Size:     b.Item.Size,
			Gap:      b.Item.Gap,
			Depth:    b.Item.Depth,
			Expanded: b.Expanded,
			Extent:   b.Extent,
		}
		if b.Expanded {
			sb.Children = snapshotLevel(b.Children)
			sb.Markers = markerRecords(layout.Markers(b.Children))
		}
		out[i] = sb
	}
	return out
}

func markerRecords(ms []layout.Marker) []MarkerRecord {
	out := make([]MarkerRecord, len(ms))
	for i, m := range ms {
		out[i] = MarkerRecord{
			Pos:   m.Pos,
			Addr:  m.Addr,
			Label: memmap.FormatAddr(m.Addr),
			Hint:  m.Hint,
		}
	}
	return out
}

func totalExtent(level []*layout.Block) float64 {
	total := 0.0
	for _, b := range level {
		total += b.Extent
	}
	return total
}
