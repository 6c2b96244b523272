package stylemap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/mitchellh/mapstructure"

	"github.com/danilucaci/stylemap/internal/resolver"
	"github.com/danilucaci/stylemap/pkg/adapters/file"
	"github.com/danilucaci/stylemap/pkg/ports"
	"github.com/danilucaci/stylemap/pkg/schema"
	"github.com/danilucaci/stylemap/pkg/tokens"
)

// Sentinel errors surfaced by Resolver methods. Use errors.Is to
// distinguish a missing token from structural failures.
var (
	ErrNotFound      = resolver.ErrNotFound
	ErrSheetNotFound = resolver.ErrSheetNotFound
	ErrNotWatchable  = resolver.ErrNotWatchable
)

// Resolver is the high-level entry point for the stylemap library.
// It wraps the internal resolver engine and provides a simplified API
// for consumers.
type Resolver struct {
	engine     *resolver.Engine
	loader     ports.SheetLoader
	cache      ports.ValueCache
	hooks      tokens.LifecycleHooks
	logger     *slog.Logger
	engineOpts []resolver.EngineOption
	Name       string
}

// Option defines a functional option for configuring the Resolver.
type Option func(*Resolver)

// WithLoader injects a custom SheetLoader, bypassing the default
// filesystem initialization.
func WithLoader(l ports.SheetLoader) Option {
	return func(r *Resolver) {
		r.loader = l
	}
}

// WithCache enables resolved-value caching through the given backend.
func WithCache(c ports.ValueCache) Option {
	return func(r *Resolver) {
		r.cache = c
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks tokens.LifecycleHooks) Option {
	return func(r *Resolver) {
		r.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the resolver.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithSeparator changes the key separator used in path expressions
// (default: ".").
func WithSeparator(sep string) Option {
	return func(r *Resolver) {
		r.engineOpts = append(r.engineOpts, resolver.WithSeparator(sep))
	}
}

// WithoutAliases disables {reference} expansion. Values are returned
// exactly as authored.
func WithoutAliases() Option {
	return func(r *Resolver) {
		r.engineOpts = append(r.engineOpts, resolver.WithoutAliases())
	}
}

// WithDefaultSheet configures which sheet Get consults (default: "default").
func WithDefaultSheet(name string) Option {
	return func(r *Resolver) {
		r.engineOpts = append(r.engineOpts, resolver.WithDefaultSheet(name))
	}
}

// New initializes a new stylemap Resolver.
// By default, it loads token sheets from the given directory.
// If the WithLoader option is provided, dir can be empty and the
// filesystem is skipped.
func New(ctx context.Context, dir string, opts ...Option) (*Resolver, error) {
	res := &Resolver{}

	// Apply options first to check if a loader is provided
	for _, opt := range opts {
		opt(res)
	}

	// If no loader was injected, initialize the default file adapter
	if res.loader == nil {
		if dir == "" {
			return nil, fmt.Errorf("dir is required when no custom loader is provided")
		}

		absPath, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}

		res.Name = filepath.Base(absPath)

		loader, err := file.New(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sheet directory: %w", err)
		}
		res.loader = loader
	} else if dir != "" {
		// A custom loader still gets a descriptive label from the path.
		res.Name = filepath.Base(dir)
	}

	// Ensure logger is initialized (so we don't pass nil to the engine,
	// which would overwrite its default)
	if res.logger == nil {
		res.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Enrich logger with the collection name if available
	if res.Name != "" {
		res.logger = res.logger.With("collection", res.Name)
	}

	engineOpts := []resolver.EngineOption{
		resolver.WithLogger(res.logger),
		resolver.WithHooks(res.hooks),
	}
	if res.cache != nil {
		engineOpts = append(engineOpts, resolver.WithCache(res.cache))
	}
	// Append user-defined engine options (like WithSeparator)
	engineOpts = append(engineOpts, res.engineOpts...)

	engine, err := resolver.NewEngine(ctx, res.loader, engineOpts...)
	if err != nil {
		return nil, err
	}
	res.engine = engine

	return res, nil
}

// Get resolves a dotted path expression against the default sheet.
// Aliases are expanded unless WithoutAliases was set.
func (r *Resolver) Get(ctx context.Context, path string) (any, error) {
	return r.engine.Resolve(ctx, "", path)
}

// GetFrom resolves a dotted path expression against a named sheet.
func (r *Resolver) GetFrom(ctx context.Context, sheet, path string) (any, error) {
	return r.engine.Resolve(ctx, sheet, path)
}

// GetDefault resolves a path and returns fallback when the path is
// absent. Errors other than a missing key (broken aliases, unknown
// sheets) are still reported.
func (r *Resolver) GetDefault(ctx context.Context, path string, fallback any) (any, error) {
	v, err := r.engine.Resolve(ctx, "", path)
	if err != nil {
		if resolver.IsNotFound(err) {
			return fallback, nil
		}
		return nil, err
	}
	return v, nil
}

// Decode resolves a path on the given sheet and decodes the resulting
// value into out, which must be a pointer. Nested mappings map onto
// struct fields via `mapstructure` tags.
func (r *Resolver) Decode(ctx context.Context, sheet, path string, out any) error {
	v, err := r.engine.Resolve(ctx, sheet, path)
	if err != nil {
		return err
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode %q: %w", path, err)
	}
	return nil
}

// Sheets returns the names of all loaded sheets, sorted.
func (r *Resolver) Sheets() []string {
	return r.engine.Sheets()
}

// Sheet returns a deep copy of the raw (unresolved) mapping for a
// named sheet.
func (r *Resolver) Sheet(name string) (tokens.Mapping, error) {
	return r.engine.Sheet(name)
}

// Flatten returns every leaf of a sheet keyed by its dotted path,
// with aliases resolved.
func (r *Resolver) Flatten(ctx context.Context, sheet string) (map[string]any, error) {
	return r.engine.Flatten(ctx, sheet)
}

// Validate checks a sheet against a schema. The returned error
// aggregates every violation.
func (r *Resolver) Validate(sheet string, s schema.Schema) error {
	doc, err := r.engine.Sheet(sheet)
	if err != nil {
		return err
	}
	return schema.Validate(s, doc)
}

// CheckAliases walks a sheet and reports every broken or cyclic
// {reference} without resolving values.
func (r *Resolver) CheckAliases(sheet string) []error {
	return r.engine.CheckAliases(sheet)
}

// Reload re-reads all sheets from the loader and flushes the value
// cache.
func (r *Resolver) Reload(ctx context.Context) error {
	return r.engine.Reload(ctx)
}

// Watch returns a channel that signals after the underlying sheets
// change and have been reloaded. Returns an error if the loader does
// not support watching.
func (r *Resolver) Watch(ctx context.Context) (<-chan struct{}, error) {
	return r.engine.Watch(ctx)
}

// Loader returns the underlying SheetLoader used by the resolver.
func (r *Resolver) Loader() ports.SheetLoader {
	return r.loader
}
