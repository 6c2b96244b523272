package memory

import (
	"context"
	"fmt"

	"github.com/danilucaci/stylemap/pkg/tokens"
)

// Loader implements ports.SheetLoader using in-memory mappings.
type Loader struct {
	sheets map[string]tokens.Mapping
}

// NewFromSheets creates a Loader from named sheet mappings.
// This avoids the file system entirely, improving DX for tests and
// embedded use.
func NewFromSheets(sheets map[string]tokens.Mapping) (*Loader, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("at least one sheet is required")
	}
	for name := range sheets {
		if name == "" {
			return nil, fmt.Errorf("sheet missing name")
		}
	}
	return &Loader{sheets: sheets}, nil
}

// NewFromMap creates a single-sheet Loader named "default".
func NewFromMap(root tokens.Mapping) (*Loader, error) {
	return NewFromSheets(map[string]tokens.Mapping{"default": root})
}

// Load returns deep copies of the configured sheets so callers can never
// mutate the loader's backing data.
func (l *Loader) Load(ctx context.Context) (map[string]tokens.Mapping, error) {
	out := make(map[string]tokens.Mapping, len(l.sheets))
	for name, m := range l.sheets {
		out[name] = tokens.Clone(m)
	}
	return out, nil
}
