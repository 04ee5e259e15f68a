package cache

import (
	"context"
	"time"
)

// NullCache disables caching: every Get misses and writes are dropped.
// The CLI selects it for --no-cache and when no cache directory exists.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return &NullCache{}
}

func (c *NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (c *NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (c *NullCache) Delete(context.Context, string) error { return nil }

// Clear reports zero removed entries.
func (c *NullCache) Clear() (int, error) { return 0, nil }

func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
