package cache

import (
	"context"
	"time"

	"github.com/matzehuels/coalition/pkg/observability"
)

// NullCache is the cache behind orders.cache = "none". Lookups miss and
// writes vanish; misses still reach the cache hooks.
type NullCache struct{}

func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(ctx context.Context, _ string) ([]byte, bool, error) {
	observability.Cache().OnCacheMiss(ctx, "null")
	return nil, false, nil
}

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}
