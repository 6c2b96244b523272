// Package dsl provides a fluent builder for constructing token sheets
// in code, compiling them into an in-memory loader. It is the
// programmatic alternative to authoring YAML or JSON sheet files,
// useful for tests and embedded defaults.
package dsl
