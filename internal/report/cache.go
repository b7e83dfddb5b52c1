package report

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tierline-lab/tierline/internal/core/commission"
	"github.com/tierline-lab/tierline/internal/core/hierarchy"
)

// Cache stores finished computations by key. A Cache error is never fatal to a
// request: the service logs it and recomputes.
type Cache interface {
	Get(ctx context.Context, key string) (*Computation, bool, error)
	Set(ctx context.Context, key string, comp *Computation) error
}

// CacheKey identifies a computation by everything its result depends on: the date
// range, the active rule's identity and content, the rate values and the total policy.
func CacheKey(r hierarchy.DateRange, rule commission.Rule, rates commission.Rates, policy hierarchy.TotalPolicy) string {
	fp := rule.Fingerprint
	if len(fp) > 16 {
		fp = fp[:16]
	}
	return fmt.Sprintf("network|%s|%s@%s|%s|%s", r.Key(), rule.ID, fp, rates.Fingerprint(), policy.Name())
}

// MemoryCache is a TTL cache bounded by capacity with least-recently-used eviction.
// Entries are replaced on write, never mutated.
type MemoryCache struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	entries  map[string]*list.Element
	order    *list.List
	nowFn    func() time.Time
}

type memoryEntry struct {
	key       string
	comp      *Computation
	expiresAt time.Time
}

// NewMemoryCache creates a MemoryCache. capacity < 1 is treated as 1.
func NewMemoryCache(ttl time.Duration, capacity int) *MemoryCache {
	if capacity < 1 {
		capacity = 1
	}
	return &MemoryCache{
		ttl:      ttl,
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		nowFn:    time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (c *MemoryCache) WithClock(nowFn func() time.Time) *MemoryCache {
	c.nowFn = nowFn
	return c
}

func (c *MemoryCache) Get(_ context.Context, key string) (*Computation, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}

	entry := elem.Value.(*memoryEntry)
	if !c.nowFn().Before(entry.expiresAt) {
		delete(c.entries, key)
		c.order.Remove(elem)
		return nil, false, nil
	}

	c.order.MoveToFront(elem)
	return entry.comp, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, comp *Computation) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &memoryEntry{key: key, comp: comp, expiresAt: c.nowFn().Add(c.ttl)}

	if elem, ok := c.entries[key]; ok {
		elem.Value = entry
		c.order.MoveToFront(elem)
		return nil
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			delete(c.entries, oldest.Value.(*memoryEntry).key)
			c.order.Remove(oldest)
		}
	}

	c.entries[key] = c.order.PushFront(entry)
	return nil
}

// Len returns the number of stored entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// NoopCache disables caching.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (*Computation, bool, error) { return nil, false, nil }

func (NoopCache) Set(context.Context, string, *Computation) error { return nil }
