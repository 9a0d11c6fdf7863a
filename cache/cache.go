package cache

import "context"

// Cache is the key/value store shared by every plugin hook of a build.
// A missing key is reported through the boolean result, never as an error.
type Cache interface {
	// Returns the identifier name defined for this cache
	Name() string

	// Open is part of the lifecycle behaviour and gets called before the first build.
	Open(ctx context.Context) error
	// Close is part of the lifecycle behaviour and gets called when the compiler is closed.
	Close(ctx context.Context) error

	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
