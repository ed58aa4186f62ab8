package service

import (
	"sync"
	"time"
)

// SnapshotCache keeps one value for ttl.
type SnapshotCache[T any] struct {
	mu       sync.RWMutex
	value    T
	valid    bool
	cachedAt time.Time
	ttl      time.Duration
}

func NewSnapshotCache[T any](ttl time.Duration) *SnapshotCache[T] {
	return &SnapshotCache[T]{ttl: ttl}
}

func (c *SnapshotCache[T]) Get() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid || time.Since(c.cachedAt) > c.ttl {
		var zero T
		return zero, false
	}
	return c.value, true
}

func (c *SnapshotCache[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	c.valid = true
	c.cachedAt = time.Now()
}

func (c *SnapshotCache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.value = zero
	c.valid = false
}
