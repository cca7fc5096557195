// Package cache stores derived artifacts between runs.
//
// The main tenant is the order-set provider: a materialized list of
// elimination orders is expensive to build for large candidate counts and
// never changes for a given (candidates, limit, seed) triple, so it is
// generated once and reused.
//
// # Backends
//
//   - [FileCache]: one file per entry under a directory, for CLI use
//   - [RedisCache]: a shared Redis instance, for many concurrent runs
//   - [NullCache]: stores nothing, for tests or --cache none
//
// Keys come from a [Keyer] so every backend lays data out the same way.
// Transient Redis failures are retried with [DefaultBackoff].
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value and true on a hit, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
