package file

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval coalesces bursts of events (editors often write a file
// several times in quick succession) into a single reload signal.
const debounceInterval = 100 * time.Millisecond

// Watch implements ports.Watchable. It signals the returned channel when a
// sheet file in the directory is created, written, renamed or removed.
// The watcher shuts down when ctx is cancelled.
func (l *Loader) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(l.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", l.dir, err)
	}

	ch := make(chan struct{}, 1)

	go func() {
		defer watcher.Close()
		defer close(ch)

		var timer *time.Timer
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		fire := func() {
			select {
			case ch <- struct{}{}:
			default:
				// A reload is already pending; collapsing is fine.
			}
		}

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isSheetFile(event.Name) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				l.logger.Debug("sheet change detected", "file", filepath.Base(event.Name), "op", event.Op.String())
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounceInterval, fire)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				l.logger.Warn("sheet watcher error", "err", err)
			}
		}
	}()

	return ch, nil
}

func isSheetFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
