/*
Package tokens defines the core value model for style maps: nested mappings
of design tokens (colors, dimensions, arbitrary scalars) addressed by key
paths.

The package is the dependency-free heart of stylemap. Everything else
(loaders, the resolver, the adapters) is built on top of the three primitives
defined here:

  - Mapping: a nested map[string]any holding token values.
  - KeyPath: an ordered sequence of keys describing a descent path.
  - Get / Lookup: deep retrieval of the value at the end of a path.

Lookups are permissive: a missing key or a descent through a terminal value
degrades to absence, never to a panic. This mirrors how style maps are
consumed — a missing token falls back to a default, it does not crash the
render.
*/
package tokens
