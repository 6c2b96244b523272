package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/danilucaci/stylemap/pkg/ports"
)

// RunValueCacheContract is a reusable test suite that verifies an adapter
// complies with ports.ValueCache.
func RunValueCacheContract(t *testing.T, cache ports.ValueCache) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get_Miss", func(t *testing.T) {
		_, err := cache.Get(ctx, "base:never.stored")
		if !errors.Is(err, ports.ErrCacheMiss) {
			t.Fatalf("expected ErrCacheMiss, got %v", err)
		}
	})

	t.Run("Set_Get", func(t *testing.T) {
		if err := cache.Set(ctx, "base:color.primary", "#0066ff"); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		got, err := cache.Get(ctx, "base:color.primary")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got != "#0066ff" {
			t.Errorf("got %v, want #0066ff", got)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		if err := cache.Set(ctx, "base:spacing", "4px"); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		if err := cache.Set(ctx, "base:spacing", "8px"); err != nil {
			t.Fatalf("overwrite failed: %v", err)
		}
		got, err := cache.Get(ctx, "base:spacing")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got != "8px" {
			t.Errorf("got %v, want 8px", got)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := cache.Set(ctx, "base:doomed", true); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		if err := cache.Delete(ctx, "base:doomed"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		_, err := cache.Get(ctx, "base:doomed")
		if !errors.Is(err, ports.ErrCacheMiss) {
			t.Fatalf("expected ErrCacheMiss after delete, got %v", err)
		}
	})

	t.Run("Delete_Missing_Is_Noop", func(t *testing.T) {
		if err := cache.Delete(ctx, "base:never.stored"); err != nil {
			t.Errorf("deleting a missing key should not error, got %v", err)
		}
	})

	t.Run("Flush", func(t *testing.T) {
		if err := cache.Set(ctx, "base:a", 1); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		if err := cache.Set(ctx, "base:b", 2); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		if err := cache.Flush(ctx); err != nil {
			t.Fatalf("flush failed: %v", err)
		}
		for _, key := range []string{"base:a", "base:b"} {
			if _, err := cache.Get(ctx, key); !errors.Is(err, ports.ErrCacheMiss) {
				t.Errorf("key %s survived flush: %v", key, err)
			}
		}
	})
}
