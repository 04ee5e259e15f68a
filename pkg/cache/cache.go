// Package cache stores intermediate and final pipeline results.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// for shared caches, and [NullCache] when caching is disabled. Keys come
// from a [Keyer] so callers never build key strings by hand.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found. A miss is
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// TTLs per stage.
const (
	TTLDataset  = 7 * 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Key types reported to observability hooks.
const (
	KeyTypeDataset  = "dataset"
	KeyTypeLayout   = "layout"
	KeyTypeArtifact = "artifact"
)

// LayoutKeyOpts holds the options that influence a layout.
type LayoutKeyOpts struct {
	MinSeparation float64 `json:"min_separation"`
}

// ArtifactKeyOpts holds the options that influence a rendered artifact.
type ArtifactKeyOpts struct {
	Format       string `json:"format"`
	Title        string `json:"title,omitempty"`
	CSSHref      string `json:"css_href,omitempty"`
	TemplateHash string `json:"template_hash,omitempty"`
}

// Keyer generates cache keys for each pipeline stage.
type Keyer interface {
	// DatasetKey keys decoded datasets by the hash of their sources.
	DatasetKey(sourceHash string) string

	// LayoutKey keys laid-out sections by dataset hash and layout options.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys rendered output by layout hash and render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces keys of the form "stage:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DatasetKey implements Keyer.
func (DefaultKeyer) DatasetKey(sourceHash string) string {
	return KeyTypeDataset + ":" + sourceHash
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey(KeyTypeLayout, datasetHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, layoutHash, opts)
}
