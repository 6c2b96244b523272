package resolver

import (
	"context"
	"testing"

	"github.com/danilucaci/stylemap/pkg/adapters/memory"
	"github.com/danilucaci/stylemap/pkg/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, sheets map[string]tokens.Mapping, opts ...EngineOption) *Engine {
	t.Helper()
	loader, err := memory.NewFromSheets(sheets)
	require.NoError(t, err)

	engine, err := NewEngine(context.Background(), loader, opts...)
	require.NoError(t, err)
	return engine
}

func baseSheets() map[string]tokens.Mapping {
	return map[string]tokens.Mapping{
		"default": {
			"color": map[string]any{
				"brand": map[string]any{
					"primary": "#0066ff",
				},
				"border": "{color.brand.primary}",
			},
			"button": map[string]any{
				"outline": "1px solid {color.border}",
			},
			"spacing": map[string]any{
				"base": "4px",
			},
		},
		"dark": {
			"color": map[string]any{
				"bg": "#111",
			},
		},
	}
}

func TestEngine_Resolve(t *testing.T) {
	engine := newTestEngine(t, baseSheets())
	ctx := context.Background()

	t.Run("terminal value", func(t *testing.T) {
		v, err := engine.Resolve(ctx, "", "spacing.base")
		require.NoError(t, err)
		assert.Equal(t, "4px", v)
	})

	t.Run("named sheet", func(t *testing.T) {
		v, err := engine.Resolve(ctx, "dark", "color.bg")
		require.NoError(t, err)
		assert.Equal(t, "#111", v)
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := engine.Resolve(ctx, "", "color.missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("descend past terminal", func(t *testing.T) {
		_, err := engine.Resolve(ctx, "", "spacing.base.px")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing sheet", func(t *testing.T) {
		_, err := engine.Resolve(ctx, "nope", "spacing.base")
		assert.ErrorIs(t, err, ErrSheetNotFound)
	})

	t.Run("empty path segment", func(t *testing.T) {
		_, err := engine.Resolve(ctx, "", "color..primary")
		assert.ErrorIs(t, err, tokens.ErrEmptyKey)
	})
}

func TestEngine_AliasExpansion(t *testing.T) {
	engine := newTestEngine(t, baseSheets())
	ctx := context.Background()

	t.Run("whole-string alias keeps type", func(t *testing.T) {
		v, err := engine.Resolve(ctx, "", "color.border")
		require.NoError(t, err)
		assert.Equal(t, "#0066ff", v)
	})

	t.Run("embedded alias substitutes text", func(t *testing.T) {
		v, err := engine.Resolve(ctx, "", "button.outline")
		require.NoError(t, err)
		assert.Equal(t, "1px solid #0066ff", v)
	})

	t.Run("mapping values resolve recursively", func(t *testing.T) {
		v, err := engine.Resolve(ctx, "", "button")
		require.NoError(t, err)
		m, ok := v.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "1px solid #0066ff", m["outline"])
	})

	t.Run("disabled aliases return raw strings", func(t *testing.T) {
		raw := newTestEngine(t, baseSheets(), WithoutAliases())
		v, err := raw.Resolve(ctx, "", "color.border")
		require.NoError(t, err)
		assert.Equal(t, "{color.brand.primary}", v)
	})
}

func TestEngine_AliasFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("broken alias", func(t *testing.T) {
		engine := newTestEngine(t, map[string]tokens.Mapping{
			"default": {"a": "{missing.path}"},
		})
		_, err := engine.Resolve(ctx, "", "a")
		var broken *BrokenAliasError
		require.ErrorAs(t, err, &broken)
		assert.Equal(t, "missing.path", broken.Target)
	})

	t.Run("cycle", func(t *testing.T) {
		engine := newTestEngine(t, map[string]tokens.Mapping{
			"default": {
				"a": "{b}",
				"b": "{a}",
			},
		})
		_, err := engine.Resolve(ctx, "", "a")
		var cycle *AliasCycleError
		assert.ErrorAs(t, err, &cycle)
	})

	t.Run("self reference", func(t *testing.T) {
		engine := newTestEngine(t, map[string]tokens.Mapping{
			"default": {"a": "{a}"},
		})
		_, err := engine.Resolve(ctx, "", "a")
		var cycle *AliasCycleError
		assert.ErrorAs(t, err, &cycle)
	})

	t.Run("mapping embedded in string", func(t *testing.T) {
		engine := newTestEngine(t, map[string]tokens.Mapping{
			"default": {
				"group": map[string]any{"x": 1},
				"bad":   "prefix {group} suffix",
			},
		})
		_, err := engine.Resolve(ctx, "", "bad")
		assert.ErrorContains(t, err, "cannot embed")
	})
}

func TestEngine_CheckAliases(t *testing.T) {
	engine := newTestEngine(t, map[string]tokens.Mapping{
		"default": {
			"ok":     "{target}",
			"target": "#fff",
			"broken": "{nowhere}",
			"loop":   "{loop}",
		},
	})

	errs := engine.CheckAliases("default")
	assert.Len(t, errs, 2)

	errs = engine.CheckAliases("ghost")
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrSheetNotFound)
}

func TestEngine_Cache(t *testing.T) {
	cache := memory.NewCache()
	hits := 0
	engine := newTestEngine(t, baseSheets(),
		WithCache(cache),
		WithHooks(tokens.LifecycleHooks{
			OnLookup: func(_ context.Context, ev tokens.LookupEvent) {
				if ev.CacheHit {
					hits++
				}
			},
		}),
	)
	ctx := context.Background()

	v, err := engine.Resolve(ctx, "", "color.border")
	require.NoError(t, err)
	assert.Equal(t, "#0066ff", v)
	assert.Equal(t, 0, hits)

	v, err = engine.Resolve(ctx, "", "color.border")
	require.NoError(t, err)
	assert.Equal(t, "#0066ff", v)
	assert.Equal(t, 1, hits)

	// Reload flushes the cache.
	require.NoError(t, engine.Reload(ctx))
	_, err = engine.Resolve(ctx, "", "color.border")
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

func TestEngine_Hooks(t *testing.T) {
	var lookups, misses int
	engine := newTestEngine(t, baseSheets(), WithHooks(tokens.LifecycleHooks{
		OnLookup: func(_ context.Context, ev tokens.LookupEvent) { lookups++ },
		OnMiss:   func(_ context.Context, ev tokens.LookupEvent) { misses++ },
	}))
	ctx := context.Background()

	_, _ = engine.Resolve(ctx, "", "spacing.base")
	_, _ = engine.Resolve(ctx, "", "nope")

	assert.Equal(t, 1, lookups)
	assert.Equal(t, 1, misses)
}

func TestEngine_SheetsAndFlatten(t *testing.T) {
	engine := newTestEngine(t, baseSheets())

	assert.Equal(t, []string{"dark", "default"}, engine.Sheets())

	flat, err := engine.Flatten(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "1px solid #0066ff", flat["button.outline"])
	assert.Equal(t, "#0066ff", flat["color.border"])

	_, err = engine.Flatten(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestEngine_SheetCopyIsolation(t *testing.T) {
	engine := newTestEngine(t, baseSheets())

	m, err := engine.Sheet("")
	require.NoError(t, err)
	require.NoError(t, tokens.Set(m, "#f00", "color", "brand", "primary"))

	v, err := engine.Resolve(context.Background(), "", "color.brand.primary")
	require.NoError(t, err)
	assert.Equal(t, "#0066ff", v, "mutating a returned sheet must not affect the engine")
}

func TestEngine_CustomSeparator(t *testing.T) {
	engine := newTestEngine(t, baseSheets(), WithSeparator("/"))

	v, err := engine.Resolve(context.Background(), "", "color/brand/primary")
	require.NoError(t, err)
	assert.Equal(t, "#0066ff", v)
}

func TestEngine_WatchUnsupported(t *testing.T) {
	engine := newTestEngine(t, baseSheets())
	_, err := engine.Watch(context.Background())
	assert.ErrorIs(t, err, ErrNotWatchable)
}
