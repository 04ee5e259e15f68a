// Package pipeline provides the load → layout → render pipeline for magnitude.
//
// The CLI commands (render, inspect, browse, serve) all run the same stages
// through a [Runner], so caching and defaults behave identically everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode dataset sources and check label uniqueness
//  2. Layout: Normalize each dataset, build its scale and resolve lanes
//  3. Render: Fill the templates (HTML) or export the document (JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Sources: []string{"lengths.yml", "times.yml"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html := result.Artifact.Markup
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/magnitude/pkg/cache"
	"github.com/matzehuels/magnitude/pkg/dataset"
	"github.com/matzehuels/magnitude/pkg/errors"
	"github.com/matzehuels/magnitude/pkg/layout"
	"github.com/matzehuels/magnitude/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for every command
// =============================================================================

const (
	// DefaultMinSeparation is the smallest axis distance, as a fraction of
	// the axis length, between two entries sharing a lane.
	DefaultMinSeparation = 0.05

	// DefaultHTMLPath is where the page is written when no path is given.
	DefaultHTMLPath = "orders-of-magnitude.html"

	// DefaultCSSPath is where the stylesheet is written when no path is given.
	DefaultCSSPath = "orders-of-magnitude.css"
)

// Format constants for output formats.
const (
	FormatHTML = "html"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
type Options struct {
	// Load options
	Sources []string `json:"sources,omitempty"` // Empty selects the embedded datasets
	Refresh bool     `json:"refresh,omitempty"` // Ignore cached results

	// Layout options
	MinSeparation float64 `json:"min_separation,omitempty"` // Zero selects DefaultMinSeparation

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Title       string   `json:"title,omitempty"`
	HTMLPath    string   `json:"html,omitempty"`
	CSSPath     string   `json:"css,omitempty"`
	CSSHref     string   `json:"css_href,omitempty"` // Overrides the href derived from HTMLPath and CSSPath
	TemplateDir string   `json:"templates,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger      `json:"-"`
	Template *render.Template `json:"-"` // Takes precedence over TemplateDir

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Datasets are the decoded sources in source order.
	Datasets []dataset.Dataset

	// Document is the laid-out page.
	Document render.Document

	// Artifact is the rendered page and stylesheet (FormatHTML).
	Artifact render.Artifact

	// JSON is the exported document (FormatJSON).
	JSON []byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EntryCount   int
	SectionCount int
	MaxLanes     int
	LoadTime     time.Duration
	LayoutTime   time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether decoded datasets came from cache
	LayoutHit bool // Whether the laid-out sections came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: html, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every option and applies defaults for the
// full pipeline. Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	if o.MinSeparation == 0 {
		o.MinSeparation = DefaultMinSeparation
	}
	o.setLogger()
	return layout.ValidateSeparation(o.MinSeparation)
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHTML}
	}
	if o.Title == "" {
		o.Title = render.DefaultTitle
	}
	if o.HTMLPath == "" {
		o.HTMLPath = DefaultHTMLPath
	}
	if o.CSSPath == "" {
		o.CSSPath = DefaultCSSPath
	}
	o.setLogger()

	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	for _, p := range []string{o.HTMLPath, o.CSSPath} {
		if err := errors.ValidateOutputPath(p); err != nil {
			return err
		}
	}
	return nil
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// UsesBuiltin reports whether the embedded datasets are used.
func (o *Options) UsesBuiltin() bool {
	return len(o.Sources) == 0
}

// SourceNames returns the configured sources, or the embedded dataset names.
func (o *Options) SourceNames() []string {
	if o.UsesBuiltin() {
		return dataset.BuiltinSources
	}
	return o.Sources
}

// StylesheetHref returns the href written into the page.
func (o *Options) StylesheetHref() string {
	if o.CSSHref != "" {
		return o.CSSHref
	}
	return render.StylesheetHref(o.HTMLPath, o.CSSPath)
}

// LoadTemplate returns the template to render with.
func (o *Options) LoadTemplate() (render.Template, error) {
	if o.Template != nil {
		return *o.Template, nil
	}
	if o.TemplateDir == "" {
		return render.DefaultTemplate(), nil
	}
	t, err := render.LoadDir(o.TemplateDir)
	if err != nil {
		return render.Template{}, fmt.Errorf("load templates: %w", err)
	}
	return t, nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{MinSeparation: o.MinSeparation}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format, templateHash string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Title: o.Title}
	if format == FormatHTML {
		opts.CSSHref = o.StylesheetHref()
		opts.TemplateHash = templateHash
	}
	return opts
}
