package file

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/danilucaci/stylemap/pkg/tokens"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// metaKey is the reserved top-level key carrying sheet metadata.
const metaKey = "$meta"

// SheetMeta is the optional header of a sheet file, stored under "$meta".
// Extends names another sheet whose tokens form the merge base for this one.
type SheetMeta struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Extends string `mapstructure:"extends"`
}

// Loader implements ports.SheetLoader on a directory of YAML/JSON files.
// Each *.yaml, *.yml or *.json file is one sheet, named by its basename
// unless the $meta header overrides it.
type Loader struct {
	dir    string
	logger *slog.Logger
}

type Option func(*Loader)

// WithLogger sets a structured logger for load diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New creates a sheet loader rooted at dir.
func New(dir string, opts ...Option) (*Loader, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sheet directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("sheet directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("sheet path is not a directory: %s", abs)
	}

	l := &Loader{dir: abs, logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Dir returns the absolute sheet directory.
func (l *Loader) Dir() string {
	return l.dir
}

// Load reads every sheet file in the directory, applies $meta extends
// merging, and returns the named sheets.
func (l *Loader) Load(ctx context.Context) (map[string]tokens.Mapping, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet directory: %w", err)
	}

	sheets := make(map[string]tokens.Mapping)
	extends := make(map[string]string)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" && ext != ".json" {
			continue
		}

		root, meta, err := l.loadFile(filepath.Join(l.dir, name))
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}

		sheetName := strings.TrimSuffix(name, ext)
		if meta.Name != "" {
			sheetName = meta.Name
		}
		if _, dup := sheets[sheetName]; dup {
			return nil, fmt.Errorf("duplicate sheet name %q", sheetName)
		}

		sheets[sheetName] = root
		if meta.Extends != "" {
			extends[sheetName] = meta.Extends
		}
		l.logger.Debug("sheet loaded", "sheet", sheetName, "file", name, "version", meta.Version)
	}

	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheet files found in %s", l.dir)
	}

	if err := applyExtends(sheets, extends); err != nil {
		return nil, err
	}

	return sheets, nil
}

// loadFile parses a single sheet file and splits off its $meta header.
func (l *Loader) loadFile(path string) (tokens.Mapping, SheetMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, SheetMeta{}, fmt.Errorf("failed to read: %w", err)
	}

	var raw map[string]any
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, SheetMeta{}, fmt.Errorf("failed to parse JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, SheetMeta{}, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	if raw == nil {
		raw = map[string]any{}
	}

	var meta SheetMeta
	if rawMeta, ok := raw[metaKey]; ok {
		if err := mapstructure.Decode(rawMeta, &meta); err != nil {
			return nil, SheetMeta{}, fmt.Errorf("invalid %s block: %w", metaKey, err)
		}
		delete(raw, metaKey)
	}

	return normalize(raw), meta, nil
}

// applyExtends merges each extending sheet on top of its base.
// A sheet may extend a sheet that itself extends another; chains are
// resolved base-first. Cycles and unknown bases are errors.
func applyExtends(sheets map[string]tokens.Mapping, extends map[string]string) error {
	resolved := make(map[string]bool)

	var resolve func(name string, trail []string) error
	resolve = func(name string, trail []string) error {
		if resolved[name] {
			return nil
		}
		base, ok := extends[name]
		if !ok {
			resolved[name] = true
			return nil
		}
		for _, seen := range trail {
			if seen == name {
				return fmt.Errorf("extends cycle through sheet %q", name)
			}
		}
		if _, ok := sheets[base]; !ok {
			return fmt.Errorf("sheet %q extends unknown sheet %q", name, base)
		}
		if err := resolve(base, append(trail, name)); err != nil {
			return err
		}

		// Fetch the base only after its own chain has been merged,
		// otherwise a stale snapshot drops transitive tokens.
		merged := tokens.Clone(sheets[base])
		tokens.Merge(merged, sheets[name])
		sheets[name] = merged
		resolved[name] = true
		return nil
	}

	for name := range extends {
		if err := resolve(name, nil); err != nil {
			return err
		}
	}
	return nil
}

// normalize rewrites YAML's map[any]any shapes (nested keys that are not
// strings) into map[string]any so the tokens package can descend.
func normalize(raw map[string]any) tokens.Mapping {
	out := make(tokens.Mapping, len(raw))
	for k, v := range raw {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		return normalize(tv)
	case map[any]any:
		m := make(tokens.Mapping, len(tv))
		for k, val := range tv {
			m[fmt.Sprintf("%v", k)] = normalizeValue(val)
		}
		return m
	case []any:
		for i, e := range tv {
			tv[i] = normalizeValue(e)
		}
		return tv
	default:
		return v
	}
}
