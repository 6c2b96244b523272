package tokens

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nested() Mapping {
	return Mapping{
		"a": map[string]any{
			"b": map[string]any{
				"c": 5,
			},
		},
		"color": map[string]any{
			"brand": map[string]any{
				"primary": "#0066ff",
			},
		},
		"weight": 400,
	}
}

func TestGet(t *testing.T) {
	m := nested()

	tests := []struct {
		name   string
		keys   []string
		want   any
		wantOK bool
	}{
		{"single key present", []string{"weight"}, 400, true},
		{"deep path", []string{"a", "b", "c"}, 5, true},
		{"deep string value", []string{"color", "brand", "primary"}, "#0066ff", true},
		{"missing at first level", []string{"nope"}, nil, false},
		{"missing at nested level", []string{"a", "x"}, nil, false},
		{"descend past terminal", []string{"a", "b", "c", "d"}, nil, false},
		{"descend through scalar", []string{"weight", "anything"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Get(m, tt.keys...)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGet_EmptyPathIsIdentity(t *testing.T) {
	m := nested()
	got, ok := Get(m)
	require.True(t, ok)
	assert.Equal(t, any(m), got)
}

func TestGet_IntermediateMapping(t *testing.T) {
	m := nested()
	got, ok := Get(m, "a", "b")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"c": 5}, got)
}

func TestGet_OrderSensitive(t *testing.T) {
	m := Mapping{
		"a": map[string]any{"b": 1},
		"b": map[string]any{"a": 2},
	}

	ab, ok := Get(m, "a", "b")
	require.True(t, ok)
	ba, ok := Get(m, "b", "a")
	require.True(t, ok)
	assert.NotEqual(t, ab, ba)
}

func TestGet_DoesNotMutate(t *testing.T) {
	m := nested()
	_, _ = Get(m, "a", "b", "c")
	_, _ = Get(m, "missing", "x")
	assert.Equal(t, nested(), m)
}

func TestLookup_ErrorKinds(t *testing.T) {
	m := nested()

	_, err := Lookup(m, "a", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.Contains(t, err.Error(), `"a.x"`)

	_, err = Lookup(m, "a", "b", "c", "d")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotAMapping)
	assert.Contains(t, err.Error(), `"a.b.c"`)

	v, err := Lookup(m, "a", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestSet(t *testing.T) {
	m := Mapping{}

	require.NoError(t, Set(m, "#fff", "color", "bg"))
	v, ok := Get(m, "color", "bg")
	require.True(t, ok)
	assert.Equal(t, "#fff", v)

	// Overwrites a terminal on the way down.
	require.NoError(t, Set(m, 1, "color", "bg", "alpha"))
	v, ok = Get(m, "color", "bg", "alpha")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	assert.Error(t, Set(m, "x"))
	assert.ErrorIs(t, Set(m, "x", "a", "", "c"), ErrEmptyKey)
}

func TestMerge(t *testing.T) {
	dst := Mapping{
		"color": map[string]any{"bg": "#fff", "fg": "#000"},
		"sizes": []any{1, 2},
	}
	src := Mapping{
		"color": map[string]any{"fg": "#111"},
		"sizes": []any{3},
		"extra": true,
	}

	Merge(dst, src)

	assert.Equal(t, "#fff", dst["color"].(map[string]any)["bg"])
	assert.Equal(t, "#111", dst["color"].(map[string]any)["fg"])
	assert.Equal(t, []any{3}, dst["sizes"])
	assert.Equal(t, true, dst["extra"])
}

func TestMerge_CopiesNewSubtrees(t *testing.T) {
	src := Mapping{"a": map[string]any{"b": 1}}
	dst := Mapping{}

	Merge(dst, src)
	require.NoError(t, Set(dst, 2, "a", "b"))

	v, _ := Get(src, "a", "b")
	assert.Equal(t, 1, v, "merge must not alias src subtrees into dst")
}

func TestFlatten(t *testing.T) {
	flat := Flatten(nested(), "")
	assert.Equal(t, map[string]any{
		"a.b.c":               5,
		"color.brand.primary": "#0066ff",
		"weight":              400,
	}, flat)

	slash := Flatten(nested(), "/")
	assert.Contains(t, slash, "color/brand/primary")
}

func TestWalk_SortedOrder(t *testing.T) {
	var paths []string
	Walk(nested(), func(p KeyPath, _ any) {
		paths = append(paths, p.String())
	})
	assert.Equal(t, []string{"a.b.c", "color.brand.primary", "weight"}, paths)
}

func TestClone(t *testing.T) {
	m := nested()
	cp := Clone(m)

	require.NoError(t, Set(cp, "#ff0000", "color", "brand", "primary"))
	v, _ := Get(m, "color", "brand", "primary")
	assert.Equal(t, "#0066ff", v)

	assert.Nil(t, Clone(nil))
}

func TestParsePath(t *testing.T) {
	assert.Equal(t, KeyPath{"a", "b", "c"}, ParsePath("a.b.c"))
	assert.Equal(t, KeyPath(nil), ParsePath(""))
	assert.Equal(t, KeyPath{"a", "b"}, ParsePathSep("a/b", "/"))
	assert.Equal(t, "a.b.c", KeyPath{"a", "b", "c"}.String())

	require.True(t, errors.Is(KeyPath{"a", ""}.Validate(), ErrEmptyKey))
	assert.NoError(t, KeyPath{"a", "b"}.Validate())
}

func TestKeyPath_Child(t *testing.T) {
	base := KeyPath{"a"}
	c1 := base.Child("b")
	c2 := base.Child("c")
	assert.Equal(t, KeyPath{"a", "b"}, c1)
	assert.Equal(t, KeyPath{"a", "c"}, c2)
}
