package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/memstack/pkg/errors"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Theme != def.Theme || cfg.Cache.Backend != def.Cache.Backend {
		t.Errorf("missing file should return defaults, got %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
theme = "light"
format = "svg"

[layout]
profile = "terminal"
budget = 48

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/1"

[store]
mongo_uri = "mongodb://localhost:27017"
database = "maps"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "light" {
		t.Errorf("theme = %q", cfg.Theme)
	}
	if cfg.Layout.Profile != "terminal" || cfg.Layout.Budget != 48 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisURL != "redis://localhost:6379/1" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Store.Database != "maps" {
		t.Errorf("store = %+v", cfg.Store)
	}
	// Unset fields keep defaults
	if cfg.Store.Collection != "documents" {
		t.Errorf("collection should default: %q", cfg.Store.Collection)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    errors.Code
	}{
		{"BadTheme", `theme = "sepia"`, errors.ErrCodeInvalidTheme},
		{"BadBackend", "[cache]\nbackend = \"memcached\"", errors.ErrCodeInvalidConfig},
		{"BadProfile", "[layout]\nprofile = \"poster\"", errors.ErrCodeInvalidConfig},
		{"BadTOML", `theme = `, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("code = %q, want %q (%v)", errors.GetCode(err), tt.want, err)
			}
		})
	}
}
