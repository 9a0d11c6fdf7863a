package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Gouterman/stencil/cache"
	"github.com/Gouterman/stencil/data"
	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultSize = 1024

// Cache keeps at most size entries in process memory, evicting the least
// recently used one first.
type Cache struct {
	mu     sync.RWMutex
	closed bool

	entries *lru.Cache[string, string]
}

var _ cache.Cache = (*Cache)(nil)

func New(size int) (*Cache, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: cache size must be positive, got %d", data.ErrInvalid, size)
	}

	entries, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}

	return &Cache{
		entries: entries,
	}, nil
}

// Returns the identifier name defined for this cache
func (*Cache) Name() string {
	return "memory"
}

func (c *Cache) Open(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = false
	return nil
}

func (c *Cache) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.Purge()
	c.closed = true
	return nil
}

func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return "", false, data.ErrClosed
	}

	value, ok := c.entries.Get(key)
	return value, ok, nil
}

func (c *Cache) Put(ctx context.Context, key, value string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return data.ErrClosed
	}

	c.entries.Add(key, value)
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return data.ErrClosed
	}

	c.entries.Remove(key)
	return nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.entries.Len()
}
