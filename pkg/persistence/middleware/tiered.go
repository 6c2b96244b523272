package middleware

import (
	"context"
	"errors"

	"github.com/danilucaci/stylemap/pkg/ports"
)

type tieredMiddleware struct {
	front ports.ValueCache
	next  ports.ValueCache
}

// NewTieredMiddleware creates a middleware that puts a fast front cache
// (typically in-process memory) in front of the wrapped cache
// (typically Redis). Reads are served from the front tier when
// possible; hits on the back tier are promoted. Writes, deletes, and
// flushes go to both tiers.
func NewTieredMiddleware(front ports.ValueCache) Middleware {
	return func(next ports.ValueCache) ports.ValueCache {
		return &tieredMiddleware{front: front, next: next}
	}
}

func (m *tieredMiddleware) Get(ctx context.Context, key string) (any, error) {
	if value, err := m.front.Get(ctx, key); err == nil {
		return value, nil
	} else if !errors.Is(err, ports.ErrCacheMiss) {
		return nil, err
	}

	value, err := m.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	// Promote to the front tier. A failed promotion does not fail the
	// read.
	_ = m.front.Set(ctx, key, value)
	return value, nil
}

func (m *tieredMiddleware) Set(ctx context.Context, key string, value any) error {
	if err := m.front.Set(ctx, key, value); err != nil {
		return err
	}
	return m.next.Set(ctx, key, value)
}

func (m *tieredMiddleware) Delete(ctx context.Context, key string) error {
	if err := m.front.Delete(ctx, key); err != nil {
		return err
	}
	return m.next.Delete(ctx, key)
}

func (m *tieredMiddleware) Flush(ctx context.Context) error {
	if err := m.front.Flush(ctx); err != nil {
		return err
	}
	return m.next.Flush(ctx)
}
