package middleware

import "github.com/danilucaci/stylemap/pkg/ports"

// Middleware allows wrapping a ValueCache to add behavior.
type Middleware func(ports.ValueCache) ports.ValueCache

// Chain applies middlewares to a cache in order, so the first listed
// middleware observes operations first.
func Chain(cache ports.ValueCache, middlewares ...Middleware) ports.ValueCache {
	for i := len(middlewares) - 1; i >= 0; i-- {
		cache = middlewares[i](cache)
	}
	return cache
}
