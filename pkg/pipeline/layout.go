package pipeline

import (
	"github.com/matzehuels/memstack/pkg/io"
	"github.com/matzehuels/memstack/pkg/memmap"
	"github.com/matzehuels/memstack/pkg/render/stack/layout"
	"github.com/matzehuels/memstack/pkg/render/stack/sink"
)

// profileByName resolves a profile name. Callers validate the name first;
// unknown names fall back to the document profile.
func profileByName(name string) layout.Profile {
	if name == "terminal" {
		return layout.Terminal()
	}
	return layout.Document()
}

// BuildEngine realizes and settles the layout for a document: the engine a
// render stage or an interactive session starts from. Returns the engine and
// the number of settle passes used.
func BuildEngine(idx *memmap.Index, opts Options) (*layout.Engine, int) {
	prof := profileByName(opts.Profile)
	if opts.Budget > 0 {
		prof.Budget = float64(opts.Budget)
	}

	e := layout.NewEngine(idx, prof)
	expandToDepth(e, opts.Depth)
	passes := e.Settle()
	return e, passes
}

// expandToDepth pre-expands every drillable block whose region sits at or
// above the requested tree depth. Expansion realizes new levels, so the walk
// repeats until a sweep changes nothing.
func expandToDepth(e *layout.Engine, depth int) {
	if depth <= 0 {
		return
	}
	for {
		changed := false
		for _, b := range e.Visible() {
			if b.Item.Depth <= depth && b.Drillable(e.Index()) && !b.Expanded {
				if e.Toggle(b.Item.ID) {
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}

// GenerateLayout computes the settled layout snapshot for a document.
func GenerateLayout(doc io.Document, opts Options) (sink.Snapshot, int) {
	e, passes := BuildEngine(DocumentIndex(doc), opts)
	snap := sink.Capture(e)
	snap.Profile = opts.Profile
	snap.Theme = opts.Theme
	return snap, passes
}
