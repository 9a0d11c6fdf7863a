package cache_test

import (
	"os"
	"testing"

	"github.com/Gouterman/stencil/cache"
	"github.com/Gouterman/stencil/cache/consul"
	"github.com/Gouterman/stencil/cache/memory"
	"github.com/Gouterman/stencil/cache/postgres"
	"github.com/Gouterman/stencil/cache/s3"
	"github.com/Gouterman/stencil/cache/sqlite"
	"github.com/Gouterman/stencil/cache/syscache"
	"github.com/Gouterman/stencil/data"
	sysmemory "github.com/Gouterman/stencil/sys/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCacheFactory creates a new cache instance for testing.
type TestCacheFactory func(t *testing.T) (cache.Cache, error)

// GetTestCacheFactories returns every cache implementation available in this environment.
// Network-backed caches are only included when their address is configured.
func GetTestCacheFactories() map[string]TestCacheFactory {
	factories := map[string]TestCacheFactory{
		"memory": func(t *testing.T) (cache.Cache, error) {
			return memory.New(memory.DefaultSize)
		},
		"syscache": func(t *testing.T) (cache.Cache, error) {
			return syscache.New(sysmemory.New(), ""), nil
		},
		"sqlite": func(t *testing.T) (cache.Cache, error) {
			return sqlite.New(":memory:")
		},
	}

	if url := os.Getenv("STENCIL_TEST_POSTGRES_URL"); url != "" {
		factories["postgres"] = func(t *testing.T) (cache.Cache, error) {
			return postgres.New(t.Context(), url)
		}
	}
	if addr := os.Getenv("STENCIL_TEST_CONSUL_ADDR"); addr != "" {
		factories["consul"] = func(t *testing.T) (cache.Cache, error) {
			return consul.New(&consul.Config{
				Address: addr,
				Prefix:  "stencil/test/" + uuid.NewString(),
			})
		}
	}
	if endpoint := os.Getenv("STENCIL_TEST_S3_ENDPOINT"); endpoint != "" {
		factories["s3"] = func(t *testing.T) (cache.Cache, error) {
			return s3.New(&s3.Config{
				Endpoint:  endpoint,
				Bucket:    os.Getenv("STENCIL_TEST_S3_BUCKET"),
				AccessKey: os.Getenv("STENCIL_TEST_S3_ACCESS_KEY"),
				SecretKey: os.Getenv("STENCIL_TEST_S3_SECRET_KEY"),
				Prefix:    "stencil/test/" + uuid.NewString(),
			})
		}
	}

	return factories
}

func TestAllCaches_Operations(t *testing.T) {
	for name, factory := range GetTestCacheFactories() {
		t.Run(name, func(tst *testing.T) {
			ctx := tst.Context()

			c, err := factory(tst)
			require.NoError(tst, err)
			require.Equal(tst, name, c.Name())

			require.NoError(tst, c.Open(ctx))
			defer c.Close(ctx)

			// Keys are shared between test runs on network caches
			key := "/src/" + uuid.NewString() + ".css"

			_, ok, err := c.Get(ctx, key)
			require.NoError(tst, err)
			assert.False(tst, ok)

			require.NoError(tst, c.Put(ctx, key, "a{}"))
			value, ok, err := c.Get(ctx, key)
			require.NoError(tst, err)
			require.True(tst, ok)
			assert.Equal(tst, "a{}", value)

			require.NoError(tst, c.Put(ctx, key, "b{}"))
			value, _, err = c.Get(ctx, key)
			require.NoError(tst, err)
			assert.Equal(tst, "b{}", value)

			require.NoError(tst, c.Delete(ctx, key))
			_, ok, err = c.Get(ctx, key)
			require.NoError(tst, err)
			assert.False(tst, ok)

			// Deleting a missing key is not an error
			assert.NoError(tst, c.Delete(ctx, key))
		})
	}
}

func TestMemoryCache_Eviction(t *testing.T) {
	ctx := t.Context()

	c, err := memory.New(2)
	require.NoError(t, err)

	require.NoError(t, c.Put(ctx, "a", "1"))
	require.NoError(t, c.Put(ctx, "b", "2"))
	_, _, _ = c.Get(ctx, "a")
	require.NoError(t, c.Put(ctx, "c", "3"))

	assert.Equal(t, 2, c.Len())
	_, ok, _ := c.Get(ctx, "b")
	assert.False(t, ok, "least recently used entry is evicted")
	_, ok, _ = c.Get(ctx, "a")
	assert.True(t, ok)
}

func TestMemoryCache_Lifecycle(t *testing.T) {
	ctx := t.Context()

	_, err := memory.New(0)
	assert.ErrorIs(t, err, data.ErrInvalid)

	c, err := memory.New(8)
	require.NoError(t, err)
	require.NoError(t, c.Put(ctx, "a", "1"))
	require.NoError(t, c.Close(ctx))

	_, _, err = c.Get(ctx, "a")
	assert.ErrorIs(t, err, data.ErrClosed)
	assert.ErrorIs(t, c.Put(ctx, "a", "1"), data.ErrClosed)

	require.NoError(t, c.Open(ctx))
	_, ok, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok, "closing purges the cache")
}

func TestSysCache_StoresBelowDir(t *testing.T) {
	ctx := t.Context()
	s := sysmemory.New()

	c := syscache.New(s, "/tmp/cache")
	require.NoError(t, c.Open(ctx))
	require.NoError(t, c.Put(ctx, "/src/cmp.tsx", "compiled"))

	files := s.ListDirectory(ctx, "/tmp/cache")
	require.Len(t, files, 1)

	content, ok := s.ReadFile(ctx, files[0])
	require.True(t, ok)
	assert.Equal(t, "compiled", content)
}

func TestS3Cache_RequiresBucket(t *testing.T) {
	_, err := s3.New(&s3.Config{Endpoint: "localhost:9000"})
	assert.ErrorIs(t, err, data.ErrInvalid)

	_, err = s3.New(nil)
	assert.ErrorIs(t, err, data.ErrInvalid)
}
