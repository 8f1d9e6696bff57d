// Package config loads the optional user configuration file.
//
// The file lives at ~/.config/memstack/config.toml (or under $XDG_CONFIG_HOME
// when set). Every field has a default, so a missing file is not an error.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/memstack/pkg/errors"
)

// Config is the full user configuration.
type Config struct {
	// Theme selects the render theme: "dark" or "light".
	Theme string `toml:"theme"`

	// Format is the default render format.
	Format string `toml:"format"`

	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
}

// LayoutConfig overrides layout profile parameters. Zero values keep the
// profile defaults.
type LayoutConfig struct {
	// Profile selects the base profile: "document" or "terminal".
	Profile string `toml:"profile"`

	// Budget overrides the total extent budget.
	Budget int `toml:"budget"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	// Backend is "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir is the file cache directory. Defaults to ~/.cache/memstack.
	Dir string `toml:"dir"`

	// RedisURL is the connection URL for the redis backend.
	RedisURL string `toml:"redis_url"`
}

// StoreConfig points at the document archive.
type StoreConfig struct {
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Theme:  "dark",
		Format: "html",
		Layout: LayoutConfig{Profile: "document"},
		Cache:  CacheConfig{Backend: "file"},
		Store: StoreConfig{
			Database:   "memstack",
			Collection: "documents",
		},
	}
}

// Path returns the config file location, honoring XDG_CONFIG_HOME.
func Path() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "memstack", "config.toml")
}

// Load reads the config file at path, falling back to Path() when path is
// empty. A missing file returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Theme {
	case "dark", "light":
	default:
		return errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q (valid: dark, light)", c.Theme)
	}
	switch c.Cache.Backend {
	case "file", "redis", "none":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (valid: file, redis, none)", c.Cache.Backend)
	}
	switch c.Layout.Profile {
	case "document", "terminal":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown layout profile %q (valid: document, terminal)", c.Layout.Profile)
	}
	return nil
}

// CacheDir returns the configured file cache directory, defaulting to
// ~/.cache/memstack.
func (c Config) CacheDir() string {
	if c.Cache.Dir != "" {
		return c.Cache.Dir
	}
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ".memstack-cache"
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "memstack")
}
