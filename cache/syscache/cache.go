package syscache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/Gouterman/stencil/cache"
	"github.com/Gouterman/stencil/data"
	"github.com/Gouterman/stencil/sys"
)

const DefaultDir = "/.stencil/cache"

// Cache stores every entry as a file below dir of a CompilerSystem, so a
// build cache lives next to the sources it was computed from.
type Cache struct {
	sys sys.CompilerSystem
	dir string
}

var _ cache.Cache = (*Cache)(nil)

func New(s sys.CompilerSystem, dir string) *Cache {
	if dir == "" {
		dir = DefaultDir
	}

	return &Cache{
		sys: s,
		dir: sys.Normalize(dir),
	}
}

// Returns the identifier name defined for this cache
func (*Cache) Name() string {
	return "syscache"
}

func (c *Cache) Open(ctx context.Context) error {
	if !c.sys.MakeDirectory(ctx, c.dir, sys.MakeDirectoryOptions{Recursive: true}) {
		return fmt.Errorf("%w: unable to create '%s' on %s", data.ErrCacheUnavailable, c.dir, c.sys.Name())
	}

	return nil
}

func (c *Cache) Close(ctx context.Context) error {
	return nil
}

func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	value, ok := c.sys.ReadFile(ctx, c.path(key))
	return value, ok, nil
}

func (c *Cache) Put(ctx context.Context, key, value string) error {
	if !c.sys.WriteFile(ctx, c.path(key), value) {
		return fmt.Errorf("%w: unable to write '%s'", data.ErrCacheUnavailable, key)
	}

	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	c.sys.Remove(ctx, c.path(key))
	return nil
}

// path maps key onto a flat file name, keys may contain any character
func (c *Cache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return sys.Join(c.dir, hex.EncodeToString(sum[:]))
}
