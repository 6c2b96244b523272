/*
Package stylemap is a design-token resolution engine for nested style
maps, designed for theming pipelines, design-system tooling, and any
application that reads configuration shaped as deeply nested mappings.

It separates the token documents ("sheets") from the resolution engine
and side-effects (caching, watching). Sheets are plain nested mappings;
the engine handles deep lookup, {alias} expansion, inheritance between
sheets, and validation.

# Concept

A token sheet is a nested string-keyed mapping. Any value can reference
another token with an {alias} expression, and sheets can extend one
another. The resolver navigates dotted paths through this structure,
expanding aliases and caching resolved values. This hexagonal layout
keeps the core decoupled from adapters (filesystem, Redis, HTTP, MCP),
so the same resolver can back a CLI, a service, or an agent tool.

# Key Features

  - Deep lookup: resolve "palette.primary.500" through arbitrarily
    nested sheets, with absence reported rather than panicking.
  - Alias expansion: {palette.primary.500} references are chased with
    cycle detection, whole-value or embedded in strings.
  - Sheet inheritance: a sheet can extend a base sheet; overrides are
    deep-merged.
  - Pluggable caching: resolved values can be cached in memory or
    Redis.
  - Live reload: sheets on disk are watched and hot-swapped.

# Usage

Initialize the resolver against a directory of YAML or JSON sheets.
You can use the default filesystem loader or inject a custom one.

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/danilucaci/stylemap"
	)

	func main() {
		ctx := context.Background()

		res, err := stylemap.New(ctx, "./theme")
		if err != nil {
			log.Fatal(err)
		}

		v, err := res.Get(ctx, "palette.primary.500")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(v)
	}

For lower-level access without an engine, the pkg/tokens package
exposes the raw mapping operations (Get, Lookup, Set, Merge, Flatten).
*/
package stylemap
