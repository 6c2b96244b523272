package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/danilucaci/stylemap/pkg/ports"
	"github.com/danilucaci/stylemap/pkg/tokens"
)

// DefaultSheet is the sheet consulted when the caller names none.
const DefaultSheet = "default"

// Engine resolves token paths against loaded sheets. It owns an immutable
// snapshot of the sheets, swapped atomically on Reload, so lookups are safe
// for concurrent callers.
type Engine struct {
	loader       ports.SheetLoader
	cache        ports.ValueCache
	logger       *slog.Logger
	hooks        tokens.LifecycleHooks
	separator    string
	aliases      bool
	defaultSheet string

	mu     sync.RWMutex
	sheets map[string]tokens.Mapping
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithCache installs a resolved-value cache.
func WithCache(cache ports.ValueCache) EngineOption {
	return func(e *Engine) {
		e.cache = cache
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks tokens.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithSeparator changes the path segment separator (default ".").
func WithSeparator(sep string) EngineOption {
	return func(e *Engine) {
		e.separator = sep
	}
}

// WithoutAliases disables {path} reference expansion; values are returned raw.
func WithoutAliases() EngineOption {
	return func(e *Engine) {
		e.aliases = false
	}
}

// WithDefaultSheet changes the sheet used when the caller names none.
func WithDefaultSheet(name string) EngineOption {
	return func(e *Engine) {
		e.defaultSheet = name
	}
}

// NewEngine creates an engine and performs the initial sheet load.
func NewEngine(ctx context.Context, loader ports.SheetLoader, opts ...EngineOption) (*Engine, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}

	e := &Engine{
		loader:       loader,
		logger:       slog.Default(),
		separator:    tokens.DefaultSeparator,
		aliases:      true,
		defaultSheet: DefaultSheet,
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.Reload(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// Reload re-runs the loader and swaps the sheet snapshot atomically.
// The value cache is flushed so stale resolutions never survive a reload.
func (e *Engine) Reload(ctx context.Context) error {
	sheets, err := e.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load sheets: %w", err)
	}

	e.mu.Lock()
	e.sheets = sheets
	e.mu.Unlock()

	if e.cache != nil {
		if err := e.cache.Flush(ctx); err != nil {
			e.logger.Warn("failed to flush value cache after reload", "err", err)
		}
	}

	e.logger.Debug("sheets reloaded", "count", len(sheets))
	if e.hooks.OnReload != nil {
		e.hooks.OnReload(ctx, len(sheets))
	}
	return nil
}

// Sheets returns the loaded sheet names in sorted order.
func (e *Engine) Sheets() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.sheets))
	for name := range e.sheets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sheet returns a deep copy of a loaded sheet.
func (e *Engine) Sheet(name string) (tokens.Mapping, error) {
	if name == "" {
		name = e.defaultSheet
	}

	e.mu.RLock()
	root, ok := e.sheets[name]
	e.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return tokens.Clone(root), nil
}

// Flatten returns the fully resolved sheet as dotted path -> terminal value.
func (e *Engine) Flatten(ctx context.Context, sheet string) (map[string]any, error) {
	if sheet == "" {
		sheet = e.defaultSheet
	}

	e.mu.RLock()
	root, ok := e.sheets[sheet]
	e.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	if !e.aliases {
		return tokens.Flatten(tokens.Clone(root), e.separator), nil
	}

	resolved, err := e.resolveValue(sheet, root, root, nil, nil)
	if err != nil {
		return nil, err
	}
	m, ok := resolved.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("sheet %q did not resolve to a mapping", sheet)
	}
	return tokens.Flatten(m, e.separator), nil
}

// Resolve looks up the value at pathExpr in the named sheet, expanding
// aliases unless disabled. Absence is reported as ErrNotFound, never a panic.
func (e *Engine) Resolve(ctx context.Context, sheet, pathExpr string) (any, error) {
	if sheet == "" {
		sheet = e.defaultSheet
	}
	start := time.Now()

	cacheKey := sheet + ":" + pathExpr
	if e.cache != nil {
		if value, err := e.cache.Get(ctx, cacheKey); err == nil {
			e.emitLookup(ctx, tokens.LookupEvent{Sheet: sheet, Path: pathExpr, Duration: time.Since(start), CacheHit: true})
			return value, nil
		} else if !errors.Is(err, ports.ErrCacheMiss) {
			e.logger.Warn("value cache read failed", "key", cacheKey, "err", err)
		}
	}

	value, err := e.resolve(sheet, pathExpr)
	ev := tokens.LookupEvent{Sheet: sheet, Path: pathExpr, Duration: time.Since(start), Err: err}
	if err != nil {
		e.emitMiss(ctx, ev)
		return nil, err
	}
	e.emitLookup(ctx, ev)

	if e.cache != nil {
		if cerr := e.cache.Set(ctx, cacheKey, value); cerr != nil {
			e.logger.Warn("value cache write failed", "key", cacheKey, "err", cerr)
		}
	}
	return value, nil
}

func (e *Engine) resolve(sheet, pathExpr string) (any, error) {
	e.mu.RLock()
	root, ok := e.sheets[sheet]
	e.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	path := tokens.ParsePathSep(pathExpr, e.separator)
	if err := path.Validate(); err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", pathExpr, err)
	}

	value, found := tokens.Get(root, path...)
	if !found {
		return nil, fmt.Errorf("%w: %q in sheet %q", ErrNotFound, pathExpr, sheet)
	}

	if !e.aliases {
		return detach(value), nil
	}
	return e.resolveValue(sheet, root, value, path, nil)
}

func (e *Engine) emitLookup(ctx context.Context, ev tokens.LookupEvent) {
	if e.hooks.OnLookup != nil {
		e.hooks.OnLookup(ctx, ev)
	}
}

func (e *Engine) emitMiss(ctx context.Context, ev tokens.LookupEvent) {
	e.logger.Debug("lookup miss", "sheet", ev.Sheet, "path", ev.Path, "err", ev.Err)
	if e.hooks.OnMiss != nil {
		e.hooks.OnMiss(ctx, ev)
	}
}

// detach deep-copies mapping results so callers cannot mutate the snapshot.
func detach(v any) any {
	if m, ok := v.(map[string]any); ok {
		return tokens.Clone(m)
	}
	return v
}
