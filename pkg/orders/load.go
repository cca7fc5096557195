package orders

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/coalition/pkg/cache"
)

// DefaultTTL is how long a materialized order list stays cached.
const DefaultTTL = 30 * 24 * time.Hour

// LoadOptions configures [Load].
type LoadOptions struct {
	Candidates int
	// Limit caps the materialized list. Zero selects the lazy [Full] set and
	// skips the cache entirely.
	Limit int
	Seed  uint64

	Cache  cache.Cache
	Keyer  cache.Keyer
	TTL    time.Duration
	Logger *log.Logger
}

// Load returns the order set described by opts, consulting the cache for
// materialized lists. The bool result reports a cache hit.
func Load(ctx context.Context, opts LoadOptions) (Set, bool, error) {
	if opts.Limit <= 0 {
		f, err := NewFull(opts.Candidates)
		return f, false, err
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.TTL == 0 {
		opts.TTL = DefaultTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	key := opts.Keyer.OrdersKey(cache.OrdersKeyOpts{
		Candidates: opts.Candidates,
		Limit:      opts.Limit,
		Seed:       opts.Seed,
	})

	if data, hit, err := opts.Cache.Get(ctx, key); err == nil && hit {
		var l List
		if err := l.UnmarshalBinary(data); err == nil && l.Candidates() == opts.Candidates {
			logger.Debug("order set cache hit", "key", key, "orders", l.Len())
			return &l, true, nil
		}
		logger.Warn("discarding unreadable cached order set", "key", key)
	} else if err != nil {
		logger.Warn("order cache lookup failed", "error", err)
	}

	start := time.Now()
	l, err := Generate(opts.Candidates, opts.Limit, opts.Seed)
	if err != nil {
		return nil, false, err
	}
	logger.Debug("generated order set", "orders", l.Len(), "elapsed", time.Since(start))

	if data, err := l.MarshalBinary(); err == nil {
		if err := opts.Cache.Set(ctx, key, data, opts.TTL); err != nil {
			logger.Warn("order cache write failed", "error", err)
		}
	}
	return l, false, nil
}
