package cache

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/cuemby/addoncrawl/pkg/access"
	"github.com/cuemby/addoncrawl/pkg/log"
	"github.com/cuemby/addoncrawl/pkg/model"
)

// Cache is a mapping from access.Descriptor to model.Result with a
// time-to-live per entry and an approximate-LRU capacity bound. It is
// safe for concurrent use; a single mutex serializes every operation,
// which is acceptable because a lookup is cheap relative to the
// resolver call it's standing in for.
type Cache struct {
	ttl time.Duration

	mu       sync.Mutex
	store    *lru.Cache
	poisoned bool
}

type entry struct {
	result   model.Result
	storedAt time.Time
}

// New builds a Cache with the given lifetime and capacity. A capacity
// of 0 falls back to 1 (golang-lru rejects non-positive sizes).
func New(ttl time.Duration, capacity int) *Cache {
	if capacity <= 0 {
		capacity = 1
	}
	store, err := lru.New(capacity)
	if err != nil {
		// Only returns an error for capacity <= 0, which is excluded above.
		panic(err)
	}
	return &Cache{ttl: ttl, store: store}
}

// Get returns the cached result for d, if any entry exists and has not
// expired. A poisoned cache (see the package doc) always misses.
func (c *Cache) Get(d access.Descriptor) (result model.Result, ok bool) {
	defer c.recoverToPoisoned("get")

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.poisoned {
		return model.Result{}, false
	}

	key := d.CacheKey()
	raw, found := c.store.Get(key)
	if !found {
		return model.Result{}, false
	}

	e := raw.(entry)
	if time.Since(e.storedAt) > c.ttl {
		c.store.Remove(key)
		return model.Result{}, false
	}
	// Cloned rather than handed out by reference: the scheduler's
	// child-enumeration mutates a leaf in place (ListItem.Extend) and
	// outlives any lock this cache could hand out, so a shared Page
	// would race across concurrent hits on the same descriptor.
	return e.result.Clone(), true
}

// Set inserts result keyed by the exact descriptor supplied. Per
// spec.md §3, the cache never stores a failure: callers only call Set
// after a successful resolve.
func (c *Cache) Set(d access.Descriptor, result model.Result) {
	defer c.recoverToPoisoned("set")

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.poisoned {
		return
	}
	c.store.Add(d.CacheKey(), entry{result: result, storedAt: time.Now()})
}

func (c *Cache) recoverToPoisoned(op string) {
	if r := recover(); r != nil {
		c.mu.Lock()
		c.poisoned = true
		c.mu.Unlock()
		log.WithComponent("cache").Error().
			Interface("panic", r).
			Str("op", op).
			Msg("cache lock poisoned, degrading to always-miss")
	}
}
