package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/magnitude/pkg/cache"
	"github.com/matzehuels/magnitude/pkg/dataset"
	"github.com/matzehuels/magnitude/pkg/observability"
	"github.com/matzehuels/magnitude/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
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

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	datasets, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Datasets = datasets
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.SectionCount = len(datasets)
	result.Stats.EntryCount = len(dataset.Flatten(datasets))
	result.CacheInfo.LoadHit = loadHit

	r.Logger.Info("loaded datasets",
		"sources", len(datasets),
		"entries", result.Stats.EntryCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	sections, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, datasets, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Document = Document(sections, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.MaxLanes = result.Document.MaxLanes()
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"sections", len(sections),
		"lanes", result.Stats.MaxLanes,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Document, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if data, ok := artifacts[FormatHTML]; ok {
		if err := json.Unmarshal(data, &result.Artifact); err != nil {
			return nil, fmt.Errorf("render: decode html artifact: %w", err)
		}
	}
	result.JSON = artifacts[FormatJSON]
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads datasets with caching and returns cache hit info.
// Sources are always read; only decoding and validation are skipped on a hit.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (datasets []dataset.Dataset, hit bool, err error) {
	r.applyLogger(&opts)
	names := opts.SourceNames()

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, names)
	start := time.Now()
	defer func() {
		hooks.OnLoadComplete(ctx, names, len(dataset.Flatten(datasets)), time.Since(start), err)
	}()

	sources, err := readSources(opts)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.DatasetKey(cache.HashValues(sources))

	if !opts.Refresh {
		if data, ok := r.get(ctx, cache.KeyTypeDataset, cacheKey); ok {
			var cached []dataset.Dataset
			if err := json.Unmarshal(data, &cached); err == nil {
				r.Logger.Debug("dataset cache hit", "sources", len(sources))
				return cached, true, nil
			}
		}
	}

	datasets, err = decodeSources(sources)
	if err != nil {
		return nil, false, err
	}
	if data, err := json.Marshal(datasets); err == nil {
		r.set(ctx, cache.KeyTypeDataset, cacheKey, data, cache.TTLDataset)
	}
	return datasets, false, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) ([]dataset.Dataset, error) {
	datasets, _, err := r.LoadWithCacheInfo(ctx, opts)
	return datasets, err
}

// GenerateLayoutWithCacheInfo lays out every dataset with caching and returns cache hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, datasets []dataset.Dataset, opts Options) ([]render.Section, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	datasetHash := cache.HashValues(datasets)
	cacheKey := r.Keyer.LayoutKey(datasetHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, ok := r.get(ctx, cache.KeyTypeLayout, cacheKey); ok {
			var cached []render.Section
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
	}

	hooks := observability.Pipeline()
	sections := make([]render.Section, 0, len(datasets))
	for _, ds := range datasets {
		hooks.OnLayoutStart(ctx, ds.Title, len(ds.Entries))
		start := time.Now()
		section, err := LayoutDataset(ds, opts.MinSeparation)
		hooks.OnLayoutComplete(ctx, ds.Title, section.Lanes(), time.Since(start), err)
		if err != nil {
			return nil, false, err
		}
		r.Logger.Debug("placed dataset",
			"title", ds.Title,
			"entries", len(section.Entries),
			"decades", section.Scale.Span(),
			"lanes", section.Lanes())
		sections = append(sections, section)
	}

	if data, err := json.Marshal(sections); err == nil {
		r.set(ctx, cache.KeyTypeLayout, cacheKey, data, cache.TTLLayout)
	}
	return sections, false, nil
}

// GenerateLayout is a convenience wrapper that calls GenerateLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, datasets []dataset.Dataset, opts Options) ([]render.Section, error) {
	sections, _, err := r.GenerateLayoutWithCacheInfo(ctx, datasets, opts)
	return sections, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc render.Document, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	tmpl, err := opts.LoadTemplate()
	if err != nil {
		return nil, false, err
	}
	templateHash := cache.HashValues(tmpl.Fragments())

	docData, err := json.Marshal(doc)
	if err != nil {
		return nil, false, fmt.Errorf("serialize document for cache key: %w", err)
	}
	docHash := cache.Hash(docData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format, templateHash))
			data, ok := r.get(ctx, cache.KeyTypeArtifact, cacheKey)
			if !ok {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	for _, format := range opts.Formats {
		hooks.OnRenderStart(ctx, format)
		start := time.Now()
		rendered, err := Render(doc, tmpl, Options{Formats: []string{format}})
		data := rendered[format]
		hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data

		cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format, templateHash))
		r.set(ctx, cache.KeyTypeArtifact, cacheKey, data, cache.TTLArtifact)
	}
	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// get reads a cache entry and reports the outcome to the cache hooks.
// Backend errors are logged and treated as misses.
func (r *Runner) get(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

// set writes a cache entry. Write failures are logged, not returned.
func (r *Runner) set(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
