package draft

import (
	"fmt"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Cache keeps msgpack-encoded snapshots of unsaved board edits. Every entry
// carries an explicit expiry timestamp, checked on each read; stale entries
// are purged lazily when found.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// NewCache creates a cache whose entries expire after ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Key builds the cache key for one match instance.
func Key(matchID string, matchNumber int) string {
	return fmt.Sprintf("%s#%d", matchID, matchNumber)
}

// Put stores a snapshot under the given key.
func (c *Cache) Put(key string, v any) error {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode draft snapshot: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{data: data, expiresAt: c.now().Add(c.ttl)}
	return nil
}

// Get decodes the snapshot stored under key into v. Returns false when no
// live entry exists; an expired entry is deleted on the spot.
func (c *Cache) Get(key string, v any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return false, nil
	}

	if err := msgpack.Unmarshal(e.data, v); err != nil {
		return false, fmt.Errorf("failed to decode draft snapshot: %w", err)
	}
	return true, nil
}

// Delete drops the snapshot stored under key, if any.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
