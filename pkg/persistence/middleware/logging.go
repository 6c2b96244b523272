package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/danilucaci/stylemap/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.ValueCache
	logger *slog.Logger
}

// NewLoggingMiddleware creates a middleware that logs every cache
// operation with its outcome and duration at debug level.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.ValueCache) ports.ValueCache {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) Get(ctx context.Context, key string) (any, error) {
	start := time.Now()
	value, err := m.next.Get(ctx, key)
	switch {
	case errors.Is(err, ports.ErrCacheMiss):
		m.logger.Debug("cache miss", "key", key, "duration", time.Since(start))
	case err != nil:
		m.logger.Warn("cache get failed", "key", key, "err", err)
	default:
		m.logger.Debug("cache hit", "key", key, "duration", time.Since(start))
	}
	return value, err
}

func (m *loggingMiddleware) Set(ctx context.Context, key string, value any) error {
	err := m.next.Set(ctx, key, value)
	if err != nil {
		m.logger.Warn("cache set failed", "key", key, "err", err)
	} else {
		m.logger.Debug("cache set", "key", key)
	}
	return err
}

func (m *loggingMiddleware) Delete(ctx context.Context, key string) error {
	err := m.next.Delete(ctx, key)
	if err != nil {
		m.logger.Warn("cache delete failed", "key", key, "err", err)
	}
	return err
}

func (m *loggingMiddleware) Flush(ctx context.Context) error {
	err := m.next.Flush(ctx)
	if err != nil {
		m.logger.Warn("cache flush failed", "err", err)
	} else {
		m.logger.Debug("cache flushed")
	}
	return err
}
