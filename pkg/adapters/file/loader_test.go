package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danilucaci/stylemap/pkg/adapters/file"
	"github.com/danilucaci/stylemap/pkg/tokens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSheet(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "base.yaml", `
color:
  brand:
    primary: "#0066ff"
spacing:
  base: 4px
`)
	writeSheet(t, dir, "typography.json", `{"font": {"family": "Inter", "weights": [400, 700]}}`)
	writeSheet(t, dir, "notes.txt", "ignored")

	loader, err := file.New(dir)
	require.NoError(t, err)

	sheets, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, sheets, 2)

	v, ok := tokens.Get(sheets["base"], "color", "brand", "primary")
	require.True(t, ok)
	assert.Equal(t, "#0066ff", v)

	v, ok = tokens.Get(sheets["typography"], "font", "family")
	require.True(t, ok)
	assert.Equal(t, "Inter", v)
}

func TestLoader_MetaHeader(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "whatever.yaml", `
$meta:
  name: brand
  version: "2.1"
color:
  bg: "#fff"
`)

	loader, err := file.New(dir)
	require.NoError(t, err)

	sheets, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Contains(t, sheets, "brand")

	// The $meta block must not leak into the token tree.
	_, ok := tokens.Get(sheets["brand"], "$meta")
	assert.False(t, ok)
}

func TestLoader_Extends(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "base.yaml", `
color:
  bg: "#fff"
  fg: "#000"
`)
	writeSheet(t, dir, "dark.yaml", `
$meta:
  extends: base
color:
  bg: "#111"
`)

	loader, err := file.New(dir)
	require.NoError(t, err)

	sheets, err := loader.Load(context.Background())
	require.NoError(t, err)

	// Overridden in dark.
	v, _ := tokens.Get(sheets["dark"], "color", "bg")
	assert.Equal(t, "#111", v)

	// Inherited from base.
	v, _ = tokens.Get(sheets["dark"], "color", "fg")
	assert.Equal(t, "#000", v)

	// Base stays untouched.
	v, _ = tokens.Get(sheets["base"], "color", "bg")
	assert.Equal(t, "#fff", v)
}

func TestLoader_ExtendsChain(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "base.yaml", `
spacing:
  unit: 4px
color:
  fg: "#000"
`)
	writeSheet(t, dir, "brand.yaml", `
$meta:
  extends: base
color:
  fg: "#0066ff"
`)
	writeSheet(t, dir, "dark.yaml", `
$meta:
  extends: brand
color:
  bg: "#111"
`)

	loader, err := file.New(dir)
	require.NoError(t, err)

	// Merge order over the extends map is not deterministic, so a single
	// load can get lucky. Load repeatedly to cover the grandchild-first
	// orderings too.
	for i := 0; i < 20; i++ {
		sheets, err := loader.Load(context.Background())
		require.NoError(t, err)

		v, ok := tokens.Get(sheets["dark"], "spacing", "unit")
		require.True(t, ok, "load %d: dark lost the transitive base token", i)
		assert.Equal(t, "4px", v)

		v, _ = tokens.Get(sheets["dark"], "color", "fg")
		assert.Equal(t, "#0066ff", v)

		v, _ = tokens.Get(sheets["dark"], "color", "bg")
		assert.Equal(t, "#111", v)
	}
}

func TestLoader_ExtendsErrors(t *testing.T) {
	t.Run("unknown base", func(t *testing.T) {
		dir := t.TempDir()
		writeSheet(t, dir, "dark.yaml", "$meta:\n  extends: missing\ncolor: {}\n")

		loader, err := file.New(dir)
		require.NoError(t, err)
		_, err = loader.Load(context.Background())
		assert.ErrorContains(t, err, "unknown sheet")
	})

	t.Run("cycle", func(t *testing.T) {
		dir := t.TempDir()
		writeSheet(t, dir, "a.yaml", "$meta:\n  extends: b\nx: 1\n")
		writeSheet(t, dir, "b.yaml", "$meta:\n  extends: a\ny: 2\n")

		loader, err := file.New(dir)
		require.NoError(t, err)
		_, err = loader.Load(context.Background())
		assert.ErrorContains(t, err, "cycle")
	})
}

func TestLoader_Errors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := file.New(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("empty directory", func(t *testing.T) {
		loader, err := file.New(t.TempDir())
		require.NoError(t, err)
		_, err = loader.Load(context.Background())
		assert.ErrorContains(t, err, "no sheet files")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeSheet(t, dir, "bad.yaml", "color: [unclosed")
		loader, err := file.New(dir)
		require.NoError(t, err)
		_, err = loader.Load(context.Background())
		assert.Error(t, err)
	})

	t.Run("duplicate sheet names", func(t *testing.T) {
		dir := t.TempDir()
		writeSheet(t, dir, "a.yaml", "$meta:\n  name: base\nx: 1\n")
		writeSheet(t, dir, "base.yaml", "y: 2\n")
		loader, err := file.New(dir)
		require.NoError(t, err)
		_, err = loader.Load(context.Background())
		assert.ErrorContains(t, err, "duplicate")
	})
}

func TestLoader_Watch(t *testing.T) {
	dir := t.TempDir()
	writeSheet(t, dir, "base.yaml", "color:\n  bg: \"#fff\"\n")

	loader, err := file.New(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := loader.Watch(ctx)
	require.NoError(t, err)

	writeSheet(t, dir, "base.yaml", "color:\n  bg: \"#000\"\n")

	select {
	case _, ok := <-ch:
		require.True(t, ok, "watch channel closed unexpectedly")
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}

	cancel()

	// Channel closes after cancellation.
	select {
	case _, ok := <-ch:
		if ok {
			// A buffered notification may still be in flight; the next
			// receive observes the close.
			_, ok = <-ch
			assert.False(t, ok)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}
