package cache

import (
	"context"
	"sync"
	"time"
)

// Counter counts hits per key in fixed windows. Hit returns the count for
// the window the hit falls into, including that hit.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
	Close() error
}

type memoryWindow struct {
	count   int64
	resetAt time.Time
}

// MemoryCounter keeps window counters in process memory. Counts are not
// shared between instances.
type MemoryCounter struct {
	mu        sync.Mutex
	windows   map[string]*memoryWindow
	now       func() time.Time
	nextSweep time.Time
}

// NewMemoryCounter creates an empty in-process counter
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		windows: make(map[string]*memoryWindow),
		now:     time.Now,
	}
}

// Hit implements Counter
func (c *MemoryCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.After(c.nextSweep) {
		for k, w := range c.windows {
			if !now.Before(w.resetAt) {
				delete(c.windows, k)
			}
		}
		c.nextSweep = now.Add(window)
	}

	w, ok := c.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &memoryWindow{resetAt: now.Add(window)}
		c.windows[key] = w
	}
	w.count++
	return w.count, nil
}

// Close implements Counter
func (c *MemoryCounter) Close() error { return nil }

var _ Counter = (*MemoryCounter)(nil)
