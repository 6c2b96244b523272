package tokens

import "strings"

// DefaultSeparator is the segment separator used by ParsePath.
const DefaultSeparator = "."

// KeyPath is an ordered sequence of keys describing a descent through
// nested Mappings. The zero value (empty path) addresses the root itself.
type KeyPath []string

// ParsePath splits a dotted path expression ("color.brand.primary") into a
// KeyPath. Empty expressions yield an empty path.
func ParsePath(expr string) KeyPath {
	return ParsePathSep(expr, DefaultSeparator)
}

// ParsePathSep splits a path expression using a custom separator.
func ParsePathSep(expr, sep string) KeyPath {
	if expr == "" {
		return nil
	}
	return KeyPath(strings.Split(expr, sep))
}

// String renders the path back to its dotted form.
func (p KeyPath) String() string {
	return strings.Join(p, DefaultSeparator)
}

// Child returns a new path with an extra trailing key. The receiver is not
// modified; the result does not share backing storage with it.
func (p KeyPath) Child(key string) KeyPath {
	next := make(KeyPath, 0, len(p)+1)
	next = append(next, p...)
	return append(next, key)
}

// Validate reports whether every segment of the path is non-empty.
func (p KeyPath) Validate() error {
	for _, k := range p {
		if k == "" {
			return ErrEmptyKey
		}
	}
	return nil
}
