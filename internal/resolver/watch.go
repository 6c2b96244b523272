package resolver

import (
	"context"

	"github.com/danilucaci/stylemap/pkg/ports"
)

// Watch forwards change notifications from the loader, reloading the sheet
// snapshot before each signal so receivers always observe fresh data.
// Returns ErrNotWatchable when the loader cannot signal changes.
func (e *Engine) Watch(ctx context.Context) (<-chan struct{}, error) {
	watchable, ok := e.loader.(ports.Watchable)
	if !ok {
		return nil, ErrNotWatchable
	}

	source, err := watchable.Watch(ctx)
	if err != nil {
		return nil, err
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-source:
				if !ok {
					return
				}
				if err := e.Reload(ctx); err != nil {
					e.logger.Error("hot reload failed", "err", err)
					continue
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()
	return ch, nil
}
