package sink

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/memstack/pkg/io"
	"github.com/matzehuels/memstack/pkg/memmap"
	"github.com/matzehuels/memstack/pkg/render/stack/layout"
)

func fixture(t *testing.T) (*memmap.Index, *layout.Engine) {
	t.Helper()
	root := memmap.New("SoC", 0, 0x1000_0000,
		memmap.New("A", 0x0, 0x40_0000,
			memmap.New("A0", 0x0, 0x10_0000),
		),
		memmap.New("B", 0x800_0000, 0x100_0000),
	)
	idx := memmap.NewIndex(memmap.Flatten(root))
	return idx, layout.NewEngine(idx, layout.Document())
}

func TestRenderJSONSnapshot(t *testing.T) {
	_, e := fixture(t)
	e.Settle()

	data, err := RenderJSON(e, WithJSONProfile("document"), WithJSONTheme("dark"))
	if err != nil {
		t.Fatal(err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if snap.Profile != "document" || snap.Theme != "dark" {
		t.Errorf("profile/theme = %q/%q", snap.Profile, snap.Theme)
	}
	// A, gap, B, gap.
	if len(snap.Blocks) != 4 {
		t.Fatalf("top blocks = %d, want 4", len(snap.Blocks))
	}
	if snap.Blocks[1].Name != memmap.GapName || !snap.Blocks[1].Gap {
		t.Errorf("second block should be a gap: %+v", snap.Blocks[1])
	}
	// Boundary lane has formatted addresses.
	if len(snap.Markers) == 0 {
		t.Fatal("no markers")
	}
	if snap.Markers[0].Label != "0x0000_0000" {
		t.Errorf("first marker label = %q", snap.Markers[0].Label)
	}

	// Expanded blocks carry their child level and its markers.
	var aID string
	for _, n := range e.Index().Nodes() {
		if n.Name == "A" {
			aID = n.ID
		}
	}
	e.Toggle(aID)
	e.Settle()
	data, err = RenderJSON(e)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}
	if !snap.Blocks[0].Expanded || len(snap.Blocks[0].Children) == 0 {
		t.Fatalf("block A should be expanded with children: %+v", snap.Blocks[0])
	}
	if len(snap.Blocks[0].Markers) == 0 {
		t.Error("expanded block should carry child markers")
	}
}

func TestRenderSVG(t *testing.T) {
	_, e := fixture(t)
	e.Settle()

	out := RenderSVG(e, WithSVGTitle("SoC"), WithSVGTheme(Light()))
	svg := string(out)

	if !strings.HasPrefix(svg, "<svg ") {
		t.Fatalf("not an SVG document: %.40q", svg)
	}
	if !strings.Contains(svg, "</svg>") {
		t.Error("unterminated SVG")
	}
	for _, want := range []string{"SoC", "A", "B", memmap.GapName, "0x0000_0000", "0x1000_0000"} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderSVGEscapesLabels(t *testing.T) {
	root := memmap.New("a<b>&c", 0, 0x1000)
	idx := memmap.NewIndex(memmap.Flatten(root))
	e := layout.NewEngine(idx, layout.Document())

	out := RenderSVG(e, WithSVGTitle("a<b>&c"))
	if bytes.Contains(out, []byte("a<b>")) {
		t.Error("label not escaped")
	}
	if !bytes.Contains(out, []byte("a&lt;b&gt;&amp;c")) {
		t.Error("escaped label missing")
	}
}

func TestRenderHTML(t *testing.T) {
	idx, _ := fixture(t)
	doc := io.Export(idx)

	out, err := RenderHTML(doc, WithHTMLTheme(Dark()))
	if err != nil {
		t.Fatal(err)
	}
	page := string(out)

	if !strings.Contains(page, "<title>SoC</title>") {
		t.Error("title not set from root name")
	}
	if !strings.Contains(page, doc.DocumentID) {
		t.Error("payload not embedded")
	}
	if !strings.Contains(page, `"nodes"`) {
		t.Error("node list not embedded")
	}
	// Engine constants must match the layout package so client and server
	// agree on geometry.
	if !strings.Contains(page, "var MIN = 52, MAX = 140") {
		t.Error("profile constants missing from script")
	}
}

func TestRenderHTMLEscapesScriptBreakout(t *testing.T) {
	root := memmap.New("</script><script>alert(1)</script>", 0, 0x1000)
	idx := memmap.NewIndex(memmap.Flatten(root))
	doc := io.Export(idx)

	out, err := RenderHTML(doc, WithHTMLTitle("x"))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(out, []byte(`"name": "</script>`)) {
		t.Error("payload can break out of the embed block")
	}
}

func TestThemeByName(t *testing.T) {
	if ThemeByName("light").Name != "light" {
		t.Error("light theme not resolved")
	}
	if ThemeByName("anything").Name != "dark" {
		t.Error("unknown themes should fall back to dark")
	}
}
