package loader

import (
	"sync"
	"time"

	"github.com/geoatlas/activity-map/internal/domain"
)

// cacheKey identifies one version of a source file. A rewrite changes
// mtime or size, producing a new key and invalidating the old entry.
type cacheKey struct {
	path    string
	modTime time.Time
	size    int64
}

// datasetCache is a thread-safe LRU of normalized datasets keyed by file
// identity. Process lifetime, no TTL; eviction only by capacity.
type datasetCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[cacheKey]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   cacheKey
	value domain.Dataset
	prev  *entry
	next  *entry
}

func newDatasetCache(maxEntries int) *datasetCache {
	return &datasetCache{
		maxEntries: maxEntries,
		entries:    make(map[cacheKey]*entry),
	}
}

func (c *datasetCache) get(key cacheKey) (domain.Dataset, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.Dataset{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *datasetCache) put(key cacheKey, value domain.Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	// A rewrite of the same path leaves a stale entry under the old key;
	// drop it eagerly so capacity is not wasted on unreachable versions.
	for k, e := range c.entries {
		if k.path == key.path {
			delete(c.entries, k)
			c.remove(e)
		}
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *datasetCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *datasetCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *datasetCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *datasetCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
