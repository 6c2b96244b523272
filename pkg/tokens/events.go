package tokens

import (
	"context"
	"time"
)

// LookupEvent describes a single token resolution for observability hooks.
type LookupEvent struct {
	Sheet    string        `json:"sheet"`
	Path     string        `json:"path"`
	Duration time.Duration `json:"duration"`
	CacheHit bool          `json:"cache_hit,omitempty"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for resolver observability.
// Nil members are skipped.
type LifecycleHooks struct {
	OnLookup func(context.Context, LookupEvent)
	OnMiss   func(context.Context, LookupEvent)
	OnReload func(ctx context.Context, sheets int)
}
