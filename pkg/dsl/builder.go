package dsl

import (
	"fmt"

	"github.com/danilucaci/stylemap/pkg/adapters/memory"
	"github.com/danilucaci/stylemap/pkg/tokens"
)

// Builder manages the sheet construction.
type Builder struct {
	sheets map[string]*SheetBuilder
	order  []string
	errs   []error
}

// New creates a new sheet builder.
func New() *Builder {
	return &Builder{
		sheets: make(map[string]*SheetBuilder),
	}
}

// Sheet creates a new named sheet in the collection.
// If the sheet already exists, it returns the existing builder.
func (b *Builder) Sheet(name string) *SheetBuilder {
	if sb, ok := b.sheets[name]; ok {
		return sb
	}
	sb := &SheetBuilder{
		name:    name,
		root:    tokens.Mapping{},
		builder: b,
	}
	b.sheets[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Build compiles the sheets into a memory Loader.
// Any error recorded while setting tokens fails the build.
func (b *Builder) Build() (*memory.Loader, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("sheet construction failed: %v", b.errs[0])
	}

	sheets := make(map[string]tokens.Mapping, len(b.sheets))
	for name, sb := range b.sheets {
		sheets[name] = sb.root
	}

	loader, err := memory.NewFromSheets(sheets)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}

// SheetBuilder provides a fluent API for populating a sheet.
type SheetBuilder struct {
	name    string
	root    tokens.Mapping
	builder *Builder
}

// Set assigns a value at a dotted path, creating intermediate groups
// as needed. An existing scalar on the way is replaced by a group.
// Invalid paths record an error that surfaces at Build time.
func (s *SheetBuilder) Set(path string, value any) *SheetBuilder {
	keys := tokens.ParsePath(path)
	if err := tokens.Set(s.root, value, keys...); err != nil {
		s.builder.errs = append(s.builder.errs, fmt.Errorf("sheet %q: set %q: %w", s.name, path, err))
	}
	return s
}

// Ref assigns an alias at a dotted path referencing another token.
// Ref("button.bg", "palette.primary.500") is shorthand for
// Set("button.bg", "{palette.primary.500}").
func (s *SheetBuilder) Ref(path, target string) *SheetBuilder {
	return s.Set(path, "{"+target+"}")
}

// Group populates a subtree in one call. The given mapping is grafted
// at the dotted path.
func (s *SheetBuilder) Group(path string, group tokens.Mapping) *SheetBuilder {
	return s.Set(path, group)
}

// Sheet starts a new sheet, allowing chained multi-sheet construction.
func (s *SheetBuilder) Sheet(name string) *SheetBuilder {
	return s.builder.Sheet(name)
}

// Build compiles all sheets in the collection.
func (s *SheetBuilder) Build() (*memory.Loader, error) {
	return s.builder.Build()
}
