package tokens

import "errors"

// ErrKeyNotFound is returned when a key in the path does not exist at its
// nesting level.
var ErrKeyNotFound = errors.New("key not found")

// ErrNotAMapping is returned when a descent is required but the current
// value is a terminal (scalar or list), not a nested mapping.
var ErrNotAMapping = errors.New("value is not a mapping")

// ErrEmptyKey is returned when a path contains an empty key segment.
var ErrEmptyKey = errors.New("empty key in path")
