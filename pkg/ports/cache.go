package ports

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by ValueCache.Get when the key is not cached.
var ErrCacheMiss = errors.New("cache miss")

// ValueCache defines the interface for caching resolved token values.
// Keys are fully-qualified lookup keys ("sheet:path"); values are the
// resolved terminals, JSON-encodable.
type ValueCache interface {
	// Get retrieves a cached value. Returns ErrCacheMiss if absent.
	Get(ctx context.Context, key string) (any, error)

	// Set stores a resolved value.
	Set(ctx context.Context, key string, value any) error

	// Delete removes a single entry.
	Delete(ctx context.Context, key string) error

	// Flush removes every entry owned by this cache. Called on reload so
	// stale resolutions never outlive the sheets they came from.
	Flush(ctx context.Context) error
}
