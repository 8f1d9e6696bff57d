package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/memstack/pkg/cache"
	"github.com/matzehuels/memstack/pkg/errors"
	"github.com/matzehuels/memstack/pkg/io"
	"github.com/matzehuels/memstack/pkg/observability"
	"github.com/matzehuels/memstack/pkg/render/stack/sink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete decode → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Decode
	decodeStart := time.Now()
	observability.Pipeline().OnDecodeStart(ctx, opts.Input)
	doc, docHash, decodeHit, err := r.DecodeWithCacheInfo(ctx, opts)
	result.Stats.DecodeTime = time.Since(decodeStart)
	observability.Pipeline().OnDecodeComplete(ctx, opts.Input, len(doc.Nodes), result.Stats.DecodeTime, err)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.DocumentHash = docHash
	result.Stats.NodeCount = len(doc.Nodes)
	result.CacheInfo.DecodeHit = decodeHit

	r.Logger.Info("decoded map",
		"input", opts.Input,
		"nodes", len(doc.Nodes),
		"duration", result.Stats.DecodeTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Profile, len(doc.Nodes))
	snap, passes, layoutHit, err := r.LayoutWithCacheInfo(ctx, doc, docHash, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	observability.Pipeline().OnLayoutComplete(ctx, opts.Profile, passes, result.Stats.LayoutTime, err)
	if err != nil {
		return nil, err
	}
	result.Snapshot = snap
	result.Stats.SettlePasses = passes
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"profile", opts.Profile,
		"blocks", len(snap.Blocks),
		"passes", passes,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, snap, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// DecodeWithCacheInfo decodes with caching and returns cache hit info.
// The cached value is the document payload keyed by the raw input hash, so
// edits to the file always miss.
func (r *Runner) DecodeWithCacheInfo(ctx context.Context, opts Options) (io.Document, string, bool, error) {
	if err := opts.ValidateForDecode(); err != nil {
		return io.Document{}, "", false, err
	}
	r.applyLogger(&opts)

	doc, docHash, err := Decode(opts)
	if err != nil {
		return io.Document{}, "", false, err
	}

	cacheKey := r.Keyer.DocumentKey(docHash)
	if !opts.Refresh {
		if data, hit, getErr := r.Cache.Get(ctx, cacheKey); getErr == nil && hit {
			var cached io.Document
			if json.Unmarshal(data, &cached) == nil {
				observability.Cache().OnCacheHit(ctx, "document")
				return cached, docHash, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "document")
	}

	if data, mErr := json.Marshal(doc); mErr == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLDocument)
		observability.Cache().OnCacheSet(ctx, "document", len(data))
	}
	return doc, docHash, false, nil
}

// Decode is a convenience wrapper that discards the cache hit info.
func (r *Runner) Decode(ctx context.Context, opts Options) (io.Document, string, error) {
	doc, docHash, _, err := r.DecodeWithCacheInfo(ctx, opts)
	return doc, docHash, err
}

// LayoutWithCacheInfo computes the layout snapshot with caching and returns
// cache hit info plus the settle pass count (zero on a hit).
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, doc io.Document, docHash string, opts Options) (sink.Snapshot, int, bool, error) {
	opts.SetLayoutDefaults()
	if err := ValidateProfile(opts.Profile); err != nil {
		return sink.Snapshot{}, 0, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.keyerFor(doc).LayoutKey(docHash, opts.LayoutKeyOpts())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached sink.Snapshot
			if json.Unmarshal(data, &cached) == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, 0, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	snap, passes := GenerateLayout(doc, opts)
	if data, err := json.Marshal(snap); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}
	return snap, passes, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc io.Document, snap sink.Snapshot, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	if err := ValidateTheme(opts.Theme); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	snapData, err := json.Marshal(snap)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize snapshot for cache key")
	}
	layoutHash := cache.Hash(snapData)
	keyer := r.keyerFor(doc)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		cacheKey := keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}

	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		start := time.Now()
		observability.Pipeline().OnRenderStart(ctx, format)
		out, err := RenderFromLayout(doc, singleFormat(opts, format))
		observability.Pipeline().OnRenderComplete(ctx, format, artifactLen(out, format), time.Since(start), err)
		if err != nil {
			return nil, false, err
		}
		rendered[format] = out[format]
	}

	for format, data := range rendered {
		cacheKey := keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, doc io.Document, snap sink.Snapshot, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, snap, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// keyerFor scopes layout and artifact keys to one document, so a shared
// backend (Redis across server instances) keeps documents isolated. The
// document cache preserves the UUID, so repeated runs over the same input
// land in the same scope.
func (r *Runner) keyerFor(doc io.Document) cache.Keyer {
	if doc.DocumentID == "" {
		return r.Keyer
	}
	return cache.NewScopedKeyer(r.Keyer, doc.DocumentID+":")
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func singleFormat(opts Options, format string) Options {
	opts.Formats = []string{format}
	return opts
}

func artifactLen(out map[string][]byte, format string) int {
	if out == nil {
		return 0
	}
	return len(out[format])
}
