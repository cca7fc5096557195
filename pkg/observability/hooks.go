// Package observability lets the search and cache packages report events
// without depending on a metrics backend.
//
// Hooks are process-wide. The CLI installs the Prometheus hooks from the prom
// subpackage when a metrics file is requested, and chains its own hooks with
// [MultiSearchHooks] to drive the live progress view:
//
//	observability.SetSearchHooks(observability.MultiSearchHooks{metrics, view})
//	defer observability.Reset()
package observability

import (
	"context"
	"sync"
	"time"
)

// AttemptOutcome classifies one manipulation attempt.
type AttemptOutcome string

const (
	// OutcomeInfeasible: the coalition ran out of free ballots.
	OutcomeInfeasible AttemptOutcome = "infeasible"
	// OutcomeUnchanged: the manipulated profile elects the same winner.
	OutcomeUnchanged AttemptOutcome = "unchanged"
	// OutcomeChanged: the manipulated profile elects a different winner.
	OutcomeChanged AttemptOutcome = "changed"
)

// SearchHooks receives events from the manipulation search.
type SearchHooks interface {
	// OnSearchStart fires when attempts for a coalition size begin.
	OnSearchStart(ctx context.Context, coalitionSize, attempts int)

	// OnAttempt fires after every attempt.
	OnAttempt(ctx context.Context, coalitionSize int, outcome AttemptOutcome)

	// OnSearchComplete fires when a coalition size is exhausted or succeeds.
	OnSearchComplete(ctx context.Context, coalitionSize int, found bool, duration time.Duration, err error)
}

// CacheHooks receives events from the order-set caches. backend is "file"
// or "redis".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, backend string)
	OnCacheMiss(ctx context.Context, backend string)
	// OnCacheSet reports a write of size bytes.
	OnCacheSet(ctx context.Context, backend string, size int)
}

// NoopSearchHooks discards search events.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnSearchStart(context.Context, int, int)                           {}
func (NoopSearchHooks) OnAttempt(context.Context, int, AttemptOutcome)                    {}
func (NoopSearchHooks) OnSearchComplete(context.Context, int, bool, time.Duration, error) {}

// NoopCacheHooks discards cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// MultiSearchHooks forwards every event to each of its members in order.
type MultiSearchHooks []SearchHooks

func (m MultiSearchHooks) OnSearchStart(ctx context.Context, size, attempts int) {
	for _, h := range m {
		h.OnSearchStart(ctx, size, attempts)
	}
}

func (m MultiSearchHooks) OnAttempt(ctx context.Context, size int, outcome AttemptOutcome) {
	for _, h := range m {
		h.OnAttempt(ctx, size, outcome)
	}
}

func (m MultiSearchHooks) OnSearchComplete(ctx context.Context, size int, found bool, d time.Duration, err error) {
	for _, h := range m {
		h.OnSearchComplete(ctx, size, found, d, err)
	}
}

var (
	searchHooks SearchHooks = NoopSearchHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetSearchHooks installs h for every later search. nil is ignored.
func SetSearchHooks(h SearchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		searchHooks = h
	}
}

// SetCacheHooks installs h for every later cache operation. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Search returns the registered search hooks.
func Search() SearchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return searchHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	searchHooks = NoopSearchHooks{}
	cacheHooks = NoopCacheHooks{}
}
