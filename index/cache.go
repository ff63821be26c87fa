package index

import (
	"dggsvt/common"
	"math"
	"slices"
	"sync"
	"time"
)

type cacheKey struct {
	fid  FeatureID
	cell common.Index
}

// lruFragmentCache is a simple LRU (least recently used) cache for query results. It has an internal locking mechanism
// and can be used in concurrent goroutines. The eviction strategy uses the UTC nanoseconds as measurement for the
// recency of entries. The timestamp gets updated on reads and writes.
type lruFragmentCache struct {
	fragments       map[cacheKey][]Fragment
	lastAccessTimes map[cacheKey]int64 // Key to UTC nanos of last access
	fragmentsMutex  *sync.Mutex
	maxSize         int // Maximum number of entries this cache should hold
}

func newLruCache(maxSize int) *lruFragmentCache {
	return &lruFragmentCache{
		fragments:       map[cacheKey][]Fragment{},
		lastAccessTimes: map[cacheKey]int64{},
		fragmentsMutex:  &sync.Mutex{},
		maxSize:         maxSize,
	}
}

// get returns a copy of the cached fragments. The boolean is false when nothing is cached for the key.
func (c *lruFragmentCache) get(key cacheKey) ([]Fragment, bool) {
	c.fragmentsMutex.Lock()
	defer c.fragmentsMutex.Unlock()

	fragments, ok := c.fragments[key]
	if !ok {
		return nil, false
	}

	c.lastAccessTimes[key] = time.Now().UTC().UnixNano()
	return slices.Clone(fragments), true
}

// insert adds the fragments to the cache. If the cache is full, the entry that hasn't been used longest will be
// evicted from the cache.
func (c *lruFragmentCache) insert(key cacheKey, fragments []Fragment) {
	if c.maxSize <= 0 {
		return
	}

	c.fragmentsMutex.Lock()
	defer c.fragmentsMutex.Unlock()

	if _, ok := c.fragments[key]; !ok && len(c.fragments) >= c.maxSize {
		// Cache is full -> evict entry that has been unused the longest
		longestUnusedKey := c.getMinEntry()
		delete(c.fragments, longestUnusedKey)
		delete(c.lastAccessTimes, longestUnusedKey)
	}

	c.lastAccessTimes[key] = time.Now().UTC().UnixNano()
	c.fragments[key] = slices.Clone(fragments)
}

func (c *lruFragmentCache) size() int {
	c.fragmentsMutex.Lock()
	defer c.fragmentsMutex.Unlock()

	return len(c.fragments)
}

func (c *lruFragmentCache) clear() {
	c.fragmentsMutex.Lock()
	defer c.fragmentsMutex.Unlock()

	clear(c.fragments)
	clear(c.lastAccessTimes)
}

// getMinEntry returns the entry that hasn't been used longest. This function does NOT use locking and is meant for
// internal use only!
func (c *lruFragmentCache) getMinEntry() cacheKey {
	minTimestamp := int64(math.MaxInt64)
	var minKey cacheKey

	for key, timestamp := range c.lastAccessTimes {
		if timestamp < minTimestamp {
			minTimestamp = timestamp
			minKey = key
		}
	}

	return minKey
}
