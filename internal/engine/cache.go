package engine

import (
	"container/list"
	"strings"
	"sync"

	"github.com/andeslegal/consulta/internal/models"
)

// DefaultCacheSize bounds the answer cache.
const DefaultCacheSize = 50

// AnswerCache is an LRU cache of response envelopes keyed by the normalized
// question text.
type AnswerCache struct {
	capacity int
	cache    map[string]*list.Element
	lru      *list.List
	mu       sync.RWMutex
}

type cacheEntry struct {
	key   string
	value *models.ResponseEnvelope
}

// NewAnswerCache creates a cache with the given capacity. A non-positive
// capacity uses the default.
func NewAnswerCache(capacity int) *AnswerCache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &AnswerCache{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		lru:      list.New(),
	}
}

// CacheKey normalizes a question into its cache key.
func CacheKey(question string) string {
	return strings.ToLower(strings.TrimSpace(question))
}

// Get returns a copy of the cached envelope for key if present. It takes the
// write lock because a hit moves the entry to the front of the LRU list.
func (c *AnswerCache) Get(key string) (*models.ResponseEnvelope, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		cp := *elem.Value.(*cacheEntry).value
		return &cp, true
	}
	return nil, false
}

// Set stores a copy of the envelope for key, evicting the oldest entry if at
// capacity.
func (c *AnswerCache) Set(key string, env *models.ResponseEnvelope) {
	cp := *env

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[key]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*cacheEntry).value = &cp
		return
	}

	entry := &cacheEntry{key: key, value: &cp}
	elem := c.lru.PushFront(entry)
	c.cache[key] = elem

	if c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		if oldest != nil {
			c.lru.Remove(oldest)
			delete(c.cache, oldest.Value.(*cacheEntry).key)
		}
	}
}

// Len returns the number of cached answers.
func (c *AnswerCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Len()
}
