package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Memory is an in-memory TTL cache for computed values of one type.
//
// Contract:
// - Concurrency: safe for concurrent use; GetOrCompute deduplicates
//   concurrent misses for the same key into a single computation.
// - Staleness: an entry older than the TTL is treated as a miss. Stale
//   entries are not actively evicted; they are overwritten on the next
//   successful computation.
// - Errors: failed computations are never stored.
type Memory[V any] struct {
	policy Policy

	mu      sync.RWMutex
	entries map[string]entry[V]
	group   singleflight.Group
}

type entry[V any] struct {
	value     V
	createdAt time.Time
}

// NewMemory creates a new in-memory cache with the given policy.
func NewMemory[V any](policy Policy) *Memory[V] {
	return &Memory[V]{
		policy:  policy,
		entries: make(map[string]entry[V]),
	}
}

// Get retrieves a value. Returns the zero value and false on miss or when
// the entry's age has reached the TTL.
func (c *Memory[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !c.fresh(e) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// GetOrCompute returns the cached value for key if fresh, otherwise runs
// compute, stores its result, and returns it. Concurrent callers that miss
// on the same key share one in-flight computation.
func (c *Memory[V]) GetOrCompute(ctx context.Context, key string, compute func(context.Context) (V, error)) (V, error) {
	if !c.policy.ShouldCache() {
		return compute(ctx)
	}

	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// A caller that lost the race may find the winner's entry.
		if v, ok := c.Get(key); ok {
			return v, nil
		}

		v, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

// Set stores a value. With caching disabled this is a no-op.
func (c *Memory[V]) Set(key string, value V) {
	if !c.policy.ShouldCache() {
		return
	}

	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, createdAt: time.Now()}
	c.mu.Unlock()
}

// Delete removes a value. Idempotent - no error on miss.
func (c *Memory[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *Memory[V]) fresh(e entry[V]) bool {
	return time.Since(e.createdAt) < c.policy.TTL
}
