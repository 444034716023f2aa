package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// DefaultMemoryBytes bounds a MemoryCache created with a non-positive limit.
const DefaultMemoryBytes = 64 << 20

// MemoryCache is an in-process LRU bounded by total payload size. It is safe
// for concurrent use.
type MemoryCache struct {
	mu      sync.Mutex
	limit   int
	size    int
	order   *list.List // front is most recently used
	entries map[string]*list.Element
	now     func() time.Time
}

type memEntry struct {
	key       string
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache creates a cache holding at most limit bytes of payload.
func NewMemoryCache(limit int) *MemoryCache {
	if limit <= 0 {
		limit = DefaultMemoryBytes
	}
	return &MemoryCache{
		limit:   limit,
		order:   list.New(),
		entries: make(map[string]*list.Element),
		now:     time.Now,
	}
}

// Get returns a copy-free view of the stored bytes. Callers must not modify it.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	e := el.Value.(*memEntry)
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		c.remove(el)
		return nil, false, nil
	}
	c.order.MoveToFront(el)
	return e.data, true, nil
}

// Set stores data, evicting least recently used entries to stay under the
// limit. Entries larger than the limit are not stored.
func (c *MemoryCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	if len(data) > c.limit {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.remove(el)
	}
	e := &memEntry{key: key, data: data}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.entries[key] = c.order.PushFront(e)
	c.size += len(data)
	for c.size > c.limit {
		c.remove(c.order.Back())
	}
	return nil
}

// Delete removes key.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.remove(el)
	}
	return nil
}

// Len returns the number of stored entries.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close drops every entry.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	clear(c.entries)
	c.size = 0
	return nil
}

func (c *MemoryCache) remove(el *list.Element) {
	e := c.order.Remove(el).(*memEntry)
	delete(c.entries, e.key)
	c.size -= len(e.data)
}

var _ Cache = (*MemoryCache)(nil)
