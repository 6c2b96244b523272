package tokens

import (
	"fmt"
	"sort"
)

// Mapping is a nested associative container of token values. Values are
// scalars (string, number, bool, ...), slices, or further Mappings.
type Mapping = map[string]any

// Get descends through nested mappings one key at a time and returns the
// value at the end of the path. The second return is false when any key is
// absent at its level, or when a descent hits a terminal value before the
// keys are exhausted.
//
// An empty key list returns root itself.
func Get(root Mapping, keys ...string) (any, bool) {
	var cursor any = root
	for _, key := range keys {
		m, ok := asMapping(cursor)
		if !ok {
			return nil, false
		}
		cursor, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cursor, true
}

// Lookup is the error-reporting variant of Get. It distinguishes a key
// missing at its level (ErrKeyNotFound) from a descent blocked by a terminal
// value (ErrNotAMapping). Both are returned, never panicked, and both mean
// "no value here" to a permissive caller.
func Lookup(root Mapping, keys ...string) (any, error) {
	var cursor any = root
	for i, key := range keys {
		m, ok := asMapping(cursor)
		if !ok {
			return nil, fmt.Errorf("at %q: %w", KeyPath(keys[:i]).String(), ErrNotAMapping)
		}
		cursor, ok = m[key]
		if !ok {
			return nil, fmt.Errorf("at %q: %w", KeyPath(keys[:i+1]).String(), ErrKeyNotFound)
		}
	}
	return cursor, nil
}

// Set writes value at the end of the path, creating intermediate mappings
// as needed. An existing terminal on the way is replaced by a mapping.
// Setting with an empty path is an error (the root cannot be replaced).
func Set(root Mapping, value any, keys ...string) error {
	if len(keys) == 0 {
		return fmt.Errorf("set requires at least one key")
	}
	if err := KeyPath(keys).Validate(); err != nil {
		return err
	}
	cursor := root
	for _, key := range keys[:len(keys)-1] {
		next, ok := asMapping(cursor[key])
		if !ok {
			next = make(Mapping)
			cursor[key] = next
		}
		cursor = next
	}
	cursor[keys[len(keys)-1]] = value
	return nil
}

// Merge deep-merges src into dst. Nested mappings are merged recursively;
// scalars and slices are replaced by the src value.
func Merge(dst, src Mapping) {
	if src == nil {
		return
	}
	for k, v := range src {
		if mv, ok := asMapping(v); ok {
			if existing, ok2 := asMapping(dst[k]); ok2 {
				Merge(existing, mv)
				continue
			}
			cp := make(Mapping)
			Merge(cp, mv)
			dst[k] = cp
			continue
		}
		dst[k] = v
	}
}

// Flatten returns a map from dotted path expression to terminal value.
// Empty nested mappings do not appear in the result.
func Flatten(root Mapping, sep string) map[string]any {
	if sep == "" {
		sep = DefaultSeparator
	}
	out := make(map[string]any)
	Walk(root, func(path KeyPath, value any) {
		out[joinPath(path, sep)] = value
	})
	return out
}

// Walk visits every terminal value depth-first in sorted key order,
// invoking fn with the full path to the value.
func Walk(root Mapping, fn func(path KeyPath, value any)) {
	walk(root, nil, fn)
}

func walk(m Mapping, prefix KeyPath, fn func(KeyPath, any)) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		path := prefix.Child(k)
		if child, ok := asMapping(m[k]); ok {
			walk(child, path, fn)
			continue
		}
		fn(path, m[k])
	}
}

// Clone returns a deep copy of root. Nested mappings and slices are copied;
// scalar values are shared (they are immutable to the caller anyway).
func Clone(root Mapping) Mapping {
	if root == nil {
		return nil
	}
	out := make(Mapping, len(root))
	for k, v := range root {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch tv := v.(type) {
	case Mapping:
		return Clone(tv)
	case []any:
		cp := make([]any, len(tv))
		for i, e := range tv {
			cp[i] = cloneValue(e)
		}
		return cp
	default:
		return v
	}
}

func joinPath(p KeyPath, sep string) string {
	out := ""
	for i, k := range p {
		if i > 0 {
			out += sep
		}
		out += k
	}
	return out
}

// asMapping reports whether v can be descended into. YAML decoding already
// normalizes to map[string]any, so only that shape qualifies.
func asMapping(v any) (Mapping, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}
