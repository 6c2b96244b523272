/*
Package ports defines the driven ports (interfaces) for the stylemap resolver.

These interfaces decouple the core lookup logic from external implementations,
allowing the resolver to work with various sheet sources and cache backends.

# Key Interfaces

  - SheetLoader: Responsible for loading token sheets (e.g., from files or memory).
  - ValueCache: Responsible for caching resolved token values.
  - Watchable: Optional capability of loaders that can signal backend changes.
*/
package ports
