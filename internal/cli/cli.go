// Package cli implements the memstack command-line interface.
//
// This package provides commands for validating and flattening address
// space maps, rendering them as interactive or static diagrams, browsing
// them in the terminal, serving them over HTTP, and archiving them in a
// document store. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - validate: Check a map file against the containment and overlap rules
//   - flatten: Emit the flattened document payload
//   - render: Generate HTML, SVG, JSON, or tree visualizations
//   - view: Browse a map interactively in the terminal
//   - serve: Serve a map over HTTP
//   - publish/fetch: Archive documents in the configured store
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/memstack/pkg/buildinfo"
	"github.com/matzehuels/memstack/pkg/cache"
	"github.com/matzehuels/memstack/pkg/config"
	"github.com/matzehuels/memstack/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "memstack"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cfg     config.Config
	cfgPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Memstack visualizes address space maps as interactive stack diagrams",
		Long:         `Memstack is a CLI tool for turning hierarchical address space maps (SoC memory layouts, firmware partitions, process address spaces) into proportional, explorable stack diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.cfgPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.cfgPath, "config", "", "config file (default ~/.config/memstack/config.toml)")

	// Register all subcommands
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.flattenCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.publishCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use, honoring the configured
// cache backend.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.cfg.Cache.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if c.cfg.Cache.Backend == "redis" {
		return cache.NewRedisCache(ctx, c.cfg.Cache.RedisURL)
	}
	dir, err := cacheDir(c.cfg)
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory: the configured one, or the XDG
// standard (~/.cache/memstack/).
func cacheDir(cfg config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions builds pipeline options from config defaults; flags
// override the zero fields afterwards.
func (c *CLI) pipelineOptions(input string) pipeline.Options {
	return pipeline.Options{
		Input:   input,
		Profile: c.cfg.Layout.Profile,
		Budget:  c.cfg.Layout.Budget,
		Theme:   c.cfg.Theme,
		Logger:  c.Logger,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s, fallback string) []string {
	if s == "" {
		return []string{fallback}
	}
	return strings.Split(s, ",")
}
