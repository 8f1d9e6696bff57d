package sink

// Theme is the color set shared by the SVG and HTML sinks. Depth colors
// cycle when nesting goes deeper than the palette.
type Theme struct {
	Name       string
	Background string
	Surface    string
	Text       string
	Muted      string
	Marker     string
	GapFill    string
	GapText    string
	Border     string
	Depth      []string
}

// Dark is the default theme.
func Dark() Theme {
	return Theme{
		Name:       "dark",
		Background: "#14161b",
		Surface:    "#1c1f26",
		Text:       "#e6e9ef",
		Muted:      "#8b93a3",
		Marker:     "#6b7385",
		GapFill:    "#21242c",
		GapText:    "#596073",
		Border:     "#30343f",
		Depth:      []string{"#2d4f6b", "#3b5e48", "#5e4a3b", "#553b5e", "#3b555e"},
	}
}

// Light is the print-friendly theme.
func Light() Theme {
	return Theme{
		Name:       "light",
		Background: "#ffffff",
		Surface:    "#f4f5f7",
		Text:       "#1f2430",
		Muted:      "#6a7180",
		Marker:     "#8a00a0",
		GapFill:    "#ededf0",
		GapText:    "#9aa0ad",
		Border:     "#c9ccd4",
		Depth:      []string{"#cfe3f5", "#d7ecdc", "#f5e4cf", "#ecd7f0", "#d7e9f0"},
	}
}

// ThemeByName resolves a theme name, defaulting to dark.
func ThemeByName(name string) Theme {
	if name == "light" {
		return Light()
	}
	return Dark()
}

// DepthColor returns the fill for a nesting level.
func (t Theme) DepthColor(level int) string {
	if len(t.Depth) == 0 {
		return t.Surface
	}
	return t.Depth[level%len(t.Depth)]
}
