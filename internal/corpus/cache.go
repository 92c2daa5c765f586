package corpus

import (
	"container/list"
	"sync"
)

// queryCache is a bounded, mutex-guarded cache keyed by query string.
// When capacity is exceeded the oldest entry is evicted, so the cache
// never grows without bound no matter how many distinct queries the
// process serves. The cache is owned by its Provider; there is no
// package-level instance.
type queryCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = oldest
}

type cacheEntry struct {
	key   string
	value interface{}
}

func newQueryCache(capacity int) *queryCache {
	if capacity <= 0 {
		capacity = 64
	}
	return &queryCache{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// get returns the cached value for key, if present.
func (c *queryCache) get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		return el.Value.(*cacheEntry).value, true
	}
	return nil, false
}

// put stores value under key, evicting the oldest entry at capacity.
func (c *queryCache) put(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).value = value
		return
	}
	if c.order.Len() >= c.capacity {
		oldest := c.order.Front()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheEntry).key)
		}
	}
	c.entries[key] = c.order.PushBack(&cacheEntry{key: key, value: value})
}

// clear drops every entry.
func (c *queryCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element)
	c.order.Init()
}

// len returns the current entry count.
func (c *queryCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
