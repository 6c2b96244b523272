package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/danilucaci/stylemap"
	"github.com/danilucaci/stylemap/internal/presentation/tui"
	"github.com/danilucaci/stylemap/internal/validator"
)

// RunWatch executes stylemap in development mode, reloading sheets on
// file changes. When paths are given, their resolved values are
// reprinted after every reload; otherwise a sheet summary is shown.
func RunWatch(opts RunOptions, paths []string) error {
	logger := NewLogger(opts.Debug)
	tui.PrintBanner(stylemap.Version)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	res, err := BuildResolver(sigCtx, opts, logger)
	if err != nil {
		return err
	}

	events, err := res.Watch(sigCtx)
	if err != nil {
		return fmt.Errorf("watch mode unavailable: %w", err)
	}

	logger.Info("Starting Watcher", "path", opts.Dir)
	printSystemMessage("Watching '%s' for sheet changes. Ctrl+C to stop.", opts.Dir)

	printSnapshot(sigCtx, res, paths)

	for {
		select {
		case <-sigCtx.Done():
			if sig := sigCtx.Signal(); sig != nil {
				printSystemMessage("Received %v, stopping watcher.", sig)
			}
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			logger.Info("Sheets reloaded")
			printSystemMessage("Sheets reloaded.")
			printSnapshot(sigCtx, res, paths)
		}
	}
}

func printSnapshot(ctx context.Context, res *stylemap.Resolver, paths []string) {
	if err := validator.ValidateSheets(res); err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v\n", err)
	}

	if len(paths) == 0 {
		for _, name := range res.Sheets() {
			flat, err := res.Flatten(ctx, name)
			if err != nil {
				fmt.Fprintf(os.Stderr, "flatten %s: %v\n", name, err)
				continue
			}
			fmt.Printf("%s: %d tokens\n", name, len(flat))
		}
		return
	}

	for _, path := range paths {
		value, err := res.Get(ctx, path)
		if err != nil {
			fmt.Printf("%s = <error: %v>\n", path, err)
			continue
		}
		fmt.Printf("%s = %v\n", path, value)
	}
}
