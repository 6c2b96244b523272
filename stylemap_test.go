package stylemap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danilucaci/stylemap"
	"github.com/danilucaci/stylemap/pkg/adapters/memory"
	"github.com/danilucaci/stylemap/pkg/schema"
	"github.com/danilucaci/stylemap/pkg/tokens"
)

func newTestResolver(t *testing.T, opts ...stylemap.Option) *stylemap.Resolver {
	t.Helper()

	loader, err := memory.NewFromSheets(map[string]tokens.Mapping{
		"default": {
			"palette": tokens.Mapping{
				"primary": tokens.Mapping{
					"500": "#0d6efd",
					"900": "#031633",
				},
			},
			"button": tokens.Mapping{
				"background": "{palette.primary.500}",
				"padding":    tokens.Mapping{"x": "12px", "y": "8px"},
			},
			"spacing": tokens.Mapping{"unit": 4},
		},
		"dark": {
			"palette": tokens.Mapping{
				"primary": tokens.Mapping{"500": "#6ea8fe"},
			},
		},
	})
	require.NoError(t, err)

	res, err := stylemap.New(context.Background(), "", append([]stylemap.Option{stylemap.WithLoader(loader)}, opts...)...)
	require.NoError(t, err)
	return res
}

func TestNewRequiresDirOrLoader(t *testing.T) {
	_, err := stylemap.New(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dir is required")
}

func TestGetDeepPath(t *testing.T) {
	res := newTestResolver(t)
	ctx := context.Background()

	v, err := res.Get(ctx, "palette.primary.500")
	require.NoError(t, err)
	assert.Equal(t, "#0d6efd", v)
}

func TestGetSingleKeyReturnsSubtree(t *testing.T) {
	res := newTestResolver(t)

	v, err := res.Get(context.Background(), "button.padding")
	require.NoError(t, err)

	m, ok := v.(tokens.Mapping)
	require.True(t, ok, "expected a nested mapping, got %T", v)
	assert.Equal(t, "12px", m["x"])
}

func TestGetExpandsAliases(t *testing.T) {
	res := newTestResolver(t)

	v, err := res.Get(context.Background(), "button.background")
	require.NoError(t, err)
	assert.Equal(t, "#0d6efd", v)
}

func TestWithoutAliasesReturnsRawValue(t *testing.T) {
	res := newTestResolver(t, stylemap.WithoutAliases())

	v, err := res.Get(context.Background(), "button.background")
	require.NoError(t, err)
	assert.Equal(t, "{palette.primary.500}", v)
}

func TestGetMissingKey(t *testing.T) {
	res := newTestResolver(t)

	_, err := res.Get(context.Background(), "palette.primary.950")
	require.ErrorIs(t, err, stylemap.ErrNotFound)
}

func TestGetTraversalThroughLeaf(t *testing.T) {
	res := newTestResolver(t)

	// "unit" is a scalar; descending past it is a missing path, not a panic.
	_, err := res.Get(context.Background(), "spacing.unit.px")
	require.ErrorIs(t, err, stylemap.ErrNotFound)
}

func TestGetFromNamedSheet(t *testing.T) {
	res := newTestResolver(t)
	ctx := context.Background()

	v, err := res.GetFrom(ctx, "dark", "palette.primary.500")
	require.NoError(t, err)
	assert.Equal(t, "#6ea8fe", v)

	_, err = res.GetFrom(ctx, "nope", "palette.primary.500")
	require.ErrorIs(t, err, stylemap.ErrSheetNotFound)
}

func TestGetDefault(t *testing.T) {
	res := newTestResolver(t)
	ctx := context.Background()

	v, err := res.GetDefault(ctx, "palette.primary.950", "#000000")
	require.NoError(t, err)
	assert.Equal(t, "#000000", v)

	v, err = res.GetDefault(ctx, "palette.primary.500", "#000000")
	require.NoError(t, err)
	assert.Equal(t, "#0d6efd", v)
}

func TestDecodeIntoStruct(t *testing.T) {
	res := newTestResolver(t)

	var padding struct {
		X string `mapstructure:"x"`
		Y string `mapstructure:"y"`
	}
	err := res.Decode(context.Background(), "", "button.padding", &padding)
	require.NoError(t, err)
	assert.Equal(t, "12px", padding.X)
	assert.Equal(t, "8px", padding.Y)
}

func TestSheetsSorted(t *testing.T) {
	res := newTestResolver(t)
	assert.Equal(t, []string{"dark", "default"}, res.Sheets())
}

func TestSheetReturnsDetachedCopy(t *testing.T) {
	res := newTestResolver(t)

	doc, err := res.Sheet("default")
	require.NoError(t, err)

	doc["palette"] = "clobbered"

	v, err := res.Get(context.Background(), "palette.primary.500")
	require.NoError(t, err)
	assert.Equal(t, "#0d6efd", v)
}

func TestFlatten(t *testing.T) {
	res := newTestResolver(t)

	flat, err := res.Flatten(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, "#0d6efd", flat["palette.primary.500"])
	assert.Equal(t, "#0d6efd", flat["button.background"], "flatten resolves aliases")
}

func TestValidate(t *testing.T) {
	res := newTestResolver(t)

	s := schema.Schema{
		"palette.primary.500": schema.Color(),
		"spacing.unit":        schema.Number(),
	}
	require.NoError(t, res.Validate("default", s))

	bad := schema.Schema{"spacing.unit": schema.Color()}
	err := res.Validate("default", bad)
	require.Error(t, err)
}

func TestCheckAliasesReportsBrokenReference(t *testing.T) {
	loader, err := memory.NewFromMap(tokens.Mapping{
		"a": "{missing.path}",
	})
	require.NoError(t, err)

	res, err := stylemap.New(context.Background(), "", stylemap.WithLoader(loader))
	require.NoError(t, err)

	errs := res.CheckAliases("default")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "missing.path")
}

func TestWatchUnsupportedLoader(t *testing.T) {
	res := newTestResolver(t)

	_, err := res.Watch(context.Background())
	require.ErrorIs(t, err, stylemap.ErrNotWatchable)
}

func TestCustomSeparator(t *testing.T) {
	res := newTestResolver(t, stylemap.WithSeparator("/"))

	v, err := res.Get(context.Background(), "palette/primary/500")
	require.NoError(t, err)
	assert.Equal(t, "#0d6efd", v)
}

func TestWithDefaultSheet(t *testing.T) {
	res := newTestResolver(t, stylemap.WithDefaultSheet("dark"))

	v, err := res.Get(context.Background(), "palette.primary.500")
	require.NoError(t, err)
	assert.Equal(t, "#6ea8fe", v)
}
