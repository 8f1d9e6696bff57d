package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/memstack/pkg/cache"
	"github.com/matzehuels/memstack/pkg/errors"
	"github.com/matzehuels/memstack/pkg/io"
	"github.com/matzehuels/memstack/pkg/render/stack/sink"
)

const mapJSON = `{
	"name": "SoC", "start": 0, "size": "0x1000_0000",
	"children": [
		{"name": "A", "start": "0x0", "size": "0x40_0000",
		 "children": [{"name": "A0", "start": "0x0", "size": "0x10_0000"}]},
		{"name": "B", "start": "0x800_0000", "size": "0x100_0000"}
	]
}`

func writeMap(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Input:   writeMap(t, mapJSON),
		Formats: []string{FormatJSON, FormatHTML},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.NodeCount != 4 {
		t.Errorf("nodes = %d, want 4", result.Stats.NodeCount)
	}
	if result.DocumentHash == "" {
		t.Error("document hash not set")
	}
	if len(result.Artifacts[FormatJSON]) == 0 || len(result.Artifacts[FormatHTML]) == 0 {
		t.Error("artifacts missing")
	}
	// Top level: A, gap, B, gap.
	if len(result.Snapshot.Blocks) != 4 {
		t.Errorf("top blocks = %d, want 4", len(result.Snapshot.Blocks))
	}
	if result.CacheInfo.DecodeHit || result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Error("nothing should hit a null cache")
	}
}

func TestExecuteCaching(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	opts := Options{Input: writeMap(t, mapJSON), Formats: []string{FormatJSON}}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss")
	}

	second, err := r.Execute(context.Background(), Options{Input: opts.Input, Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.DecodeHit || !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit every stage: %+v", second.CacheInfo)
	}
	if string(second.Artifacts[FormatJSON]) != string(first.Artifacts[FormatJSON]) {
		t.Error("cached artifact differs from rendered one")
	}

	// Refresh bypasses the cache.
	third, err := r.Execute(context.Background(), Options{Input: opts.Input, Formats: []string{FormatJSON}, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.DecodeHit || third.CacheInfo.LayoutHit {
		t.Errorf("refresh should miss: %+v", third.CacheInfo)
	}
}

func TestExecuteRejectsInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()
	ctx := context.Background()
	input := writeMap(t, mapJSON)

	tests := []struct {
		name string
		opts Options
		want errors.Code
	}{
		{"NoInput", Options{}, errors.ErrCodeInvalidInput},
		{"BadFormat", Options{Input: input, Formats: []string{"pdf"}}, errors.ErrCodeInvalidFormat},
		{"BadTheme", Options{Input: input, Theme: "sepia"}, errors.ErrCodeInvalidTheme},
		{"BadProfile", Options{Input: input, Profile: "poster"}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(ctx, tt.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("code = %q, want %q", errors.GetCode(err), tt.want)
			}
		})
	}
}

func TestExecuteReportsViolations(t *testing.T) {
	bad := `{"name":"SoC","start":0,"size":16,"children":[
		{"name":"a","start":0,"size":8},
		{"name":"b","start":4,"size":8}
	]}`
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	_, err := r.Execute(context.Background(), Options{Input: writeMap(t, bad)})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("code = %q", errors.GetCode(err))
	}
}

func TestDepthPreExpansion(t *testing.T) {
	doc, _, err := Decode(Options{Input: writeMap(t, mapJSON)})
	if err != nil {
		t.Fatal(err)
	}

	flat, _ := GenerateLayout(doc, Options{Profile: DefaultProfile})
	if flat.Blocks[0].Expanded {
		t.Error("depth 0 should stay collapsed")
	}

	deep, _ := GenerateLayout(doc, Options{Profile: DefaultProfile, Depth: 1})
	if !deep.Blocks[0].Expanded {
		t.Error("depth 1 should expand block A")
	}
	// A0 has no children, so nothing deeper can expand.
	for _, c := range deep.Blocks[0].Children {
		if c.Expanded {
			t.Errorf("leaf %q should not expand", c.Name)
		}
	}
}

func TestExtension(t *testing.T) {
	cases := map[string]string{
		FormatHTML: ".html",
		FormatJSON: ".json",
		FormatSVG:  ".svg",
		FormatTree: ".svg",
	}
	for format, want := range cases {
		if got := Extension(format); got != want {
			t.Errorf("Extension(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestRunnerScopesCacheKeysByDocument(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	keyOpts := cache.LayoutKeyOpts{Profile: DefaultProfile}

	base := r.Keyer.LayoutKey("hash", keyOpts)
	scoped := r.keyerFor(io.Document{DocumentID: "doc-1"}).LayoutKey("hash", keyOpts)
	if scoped != "doc-1:"+base {
		t.Errorf("scoped key = %q, want %q", scoped, "doc-1:"+base)
	}

	// Without a document ID the base keyer is used unchanged.
	if got := r.keyerFor(io.Document{}).LayoutKey("hash", keyOpts); got != base {
		t.Errorf("unscoped key = %q, want %q", got, base)
	}
}

func TestJSONArtifactRecordsOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Input:   writeMap(t, mapJSON),
		Formats: []string{FormatJSON},
		Profile: "terminal",
		Theme:   "light",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	var snap sink.Snapshot
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &snap); err != nil {
		t.Fatalf("unmarshal json artifact: %v", err)
	}
	if snap.Profile != "terminal" {
		t.Errorf("profile = %q, want terminal", snap.Profile)
	}
	if snap.Theme != "light" {
		t.Errorf("theme = %q, want light", snap.Theme)
	}
	if len(snap.Blocks) != 4 {
		t.Errorf("top blocks = %d, want 4", len(snap.Blocks))
	}
}
