package layout

// Profile bundles the extent constants for one rendering surface. All values
// share one abstract unit (pixels for documents, rows for the terminal).
type Profile struct {
	// MinExtent and MaxExtent clamp top-level non-gap blocks.
	MinExtent float64
	MaxExtent float64

	// GapExtent is the fixed extent of a top-level gap block.
	GapExtent float64

	// InnerMinExtent and InnerGapExtent size nested levels, which use the
	// compact policy instead of proportional allocation.
	InnerMinExtent float64
	InnerGapExtent float64

	// Budget is the total extent the top level should fill. The engine
	// raises it to the level's minimum feasible total when necessary.
	Budget float64

	// InnerPad is the fixed padding an expanded block adds around its
	// nested stack when measuring required extent.
	InnerPad float64

	// MaxPasses bounds the relayout fixed-point iteration. Non-convergence
	// leaves the closest-achieved layout in place.
	MaxPasses int

	// Threshold is the extent delta below which a block counts as settled.
	Threshold float64
}

// Document is the profile for pixel-based sinks (HTML, SVG). The constants
// match the documents produced by the original tooling.
func Document() Profile {
	return Profile{
		MinExtent:      52,
		MaxExtent:      140,
		GapExtent:      52,
		InnerMinExtent: 44,
		InnerGapExtent: 44,
		Budget:         900,
		InnerPad:       20,
		MaxPasses:      60,
		Threshold:      1,
	}
}

// Terminal is the profile for the interactive viewer, in rows.
func Terminal() Profile {
	return Profile{
		MinExtent:      3,
		MaxExtent:      9,
		GapExtent:      2,
		InnerMinExtent: 2,
		InnerGapExtent: 2,
		Budget:         36,
		InnerPad:       2,
		MaxPasses:      60,
		Threshold:      1,
	}
}
