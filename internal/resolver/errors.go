package resolver

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no token exists at the requested path.
var ErrNotFound = errors.New("token not found")

// ErrSheetNotFound is returned when the requested sheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrNotWatchable is returned by Watch when the configured loader cannot
// signal changes.
var ErrNotWatchable = errors.New("loader does not support watching")

// IsNotFound reports whether err indicates a missing token or sheet,
// as opposed to a structural problem like a broken alias.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrSheetNotFound)
}

// AliasCycleError reports a reference chain that loops back on itself.
type AliasCycleError struct {
	Sheet string
	Trail []string
}

func (e *AliasCycleError) Error() string {
	return fmt.Sprintf("alias cycle in sheet %q: %v", e.Sheet, e.Trail)
}

// BrokenAliasError reports a reference to a path that does not resolve.
type BrokenAliasError struct {
	Sheet  string
	Source string // path of the value holding the reference
	Target string // referenced path that failed to resolve
}

func (e *BrokenAliasError) Error() string {
	return fmt.Sprintf("broken alias in sheet %q: %s references %s", e.Sheet, e.Source, e.Target)
}
