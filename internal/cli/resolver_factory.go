package cli

import (
	"context"
	"fmt"
	"log/slog"

	backend "github.com/redis/go-redis/v9"

	"github.com/danilucaci/stylemap"
	redisCache "github.com/danilucaci/stylemap/pkg/adapters/redis"
)

// RunOptions contains the shared configuration for the CLI commands.
type RunOptions struct {
	Dir       string
	Sheet     string
	Separator string
	NoAliases bool
	RedisURL  string
	Debug     bool
}

// BuildResolver initializes a stylemap resolver with standard CLI
// conventions.
func BuildResolver(ctx context.Context, opts RunOptions, logger *slog.Logger) (*stylemap.Resolver, error) {
	resolverOpts := []stylemap.Option{
		stylemap.WithLogger(logger),
	}

	if opts.Sheet != "" {
		resolverOpts = append(resolverOpts, stylemap.WithDefaultSheet(opts.Sheet))
	}
	if opts.Separator != "" {
		resolverOpts = append(resolverOpts, stylemap.WithSeparator(opts.Separator))
	}
	if opts.NoAliases {
		resolverOpts = append(resolverOpts, stylemap.WithoutAliases())
	}

	// Optional Redis value cache for long-running modes (serve, mcp).
	if opts.RedisURL != "" {
		ropts, err := backend.ParseURL(opts.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client := backend.NewClient(ropts)
		resolverOpts = append(resolverOpts, stylemap.WithCache(redisCache.NewFromClient(client)))
		logger.Info("Redis value cache enabled", "addr", ropts.Addr)
	}

	res, err := stylemap.New(ctx, opts.Dir, resolverOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing resolver: %w", err)
	}

	return res, nil
}
