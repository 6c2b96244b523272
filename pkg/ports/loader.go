package ports

import (
	"context"

	"github.com/danilucaci/stylemap/pkg/tokens"
)

// SheetLoader defines how the resolver retrieves token sheets.
// This allows the storage layer (files, memory, anything else) to be decoupled.
type SheetLoader interface {
	// Load returns all sheets keyed by name. Implementations return fresh
	// mappings on every call; the resolver owns the returned data.
	Load(ctx context.Context) (map[string]tokens.Mapping, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used for hot-reload or dev-mode functionality.
type Watchable interface {
	// Watch returns a channel that is signaled when the underlying sheets change.
	// It abstracts away the specific event details, signaling only that a reload
	// is required.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
