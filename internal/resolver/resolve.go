package resolver

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/danilucaci/stylemap/pkg/tokens"
)

// aliasRe matches {path.to.token} references inside string values.
// Path segments follow the same charset as token keys.
var aliasRe = regexp.MustCompile(`\{([A-Za-z0-9_$-]+(?:[./][A-Za-z0-9_$-]+)*)\}`)

// maxAliasDepth bounds chained references. Anything deeper is almost
// certainly a modelling mistake even when it is not a strict cycle.
const maxAliasDepth = 32

// resolveValue expands alias references in value, recursing through nested
// mappings and lists. sourcePath is the path of the value being resolved
// (used in error reporting); trail carries the chain of alias targets
// already being expanded, for cycle detection.
func (e *Engine) resolveValue(sheet string, root tokens.Mapping, value any, sourcePath tokens.KeyPath, trail []string) (any, error) {
	if len(trail) > maxAliasDepth {
		return nil, &AliasCycleError{Sheet: sheet, Trail: trail}
	}

	switch tv := value.(type) {
	case string:
		return e.resolveString(sheet, root, tv, sourcePath, trail)

	case map[string]any:
		out := make(tokens.Mapping, len(tv))
		for k, v := range tv {
			resolved, err := e.resolveValue(sheet, root, v, sourcePath.Child(k), trail)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil

	case []any:
		out := make([]any, len(tv))
		for i, v := range tv {
			resolved, err := e.resolveValue(sheet, root, v, sourcePath, trail)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil

	default:
		return value, nil
	}
}

// resolveString expands alias references inside a string value. A string
// that is exactly one reference resolves to the referenced value with its
// type intact; references embedded in a larger string are substituted
// textually and must point at terminals.
func (e *Engine) resolveString(sheet string, root tokens.Mapping, s string, sourcePath tokens.KeyPath, trail []string) (any, error) {
	matches := aliasRe.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	// Whole-string reference: keep the referenced value's type.
	if len(matches) == 1 && matches[0][0] == 0 && matches[0][1] == len(s) {
		target := s[matches[0][2]:matches[0][3]]
		return e.resolveAlias(sheet, root, target, sourcePath, trail)
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m[0]])

		target := s[m[2]:m[3]]
		resolved, err := e.resolveAlias(sheet, root, target, sourcePath, trail)
		if err != nil {
			return nil, err
		}
		if _, isMap := resolved.(map[string]any); isMap {
			return nil, fmt.Errorf("alias %q in %q resolves to a mapping, cannot embed in string", target, sourcePath.String())
		}
		fmt.Fprintf(&b, "%v", resolved)

		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String(), nil
}

// resolveAlias follows one {target} reference.
func (e *Engine) resolveAlias(sheet string, root tokens.Mapping, target string, sourcePath tokens.KeyPath, trail []string) (any, error) {
	for _, seen := range trail {
		if seen == target {
			return nil, &AliasCycleError{Sheet: sheet, Trail: append(trail, target)}
		}
	}

	value, found := tokens.Get(root, tokens.ParsePathSep(target, e.separator)...)
	if !found {
		return nil, &BrokenAliasError{Sheet: sheet, Source: sourcePath.String(), Target: target}
	}

	return e.resolveValue(sheet, root, value, tokens.ParsePathSep(target, e.separator), append(trail, target))
}

// CheckAliases walks every string value of the named sheet and verifies
// that each alias reference resolves without breaks or cycles. All
// failures are collected, not just the first.
func (e *Engine) CheckAliases(sheet string) []error {
	e.mu.RLock()
	root, ok := e.sheets[sheet]
	e.mu.RUnlock()

	if !ok {
		return []error{fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)}
	}

	var errs []error
	tokens.Walk(root, func(path tokens.KeyPath, value any) {
		s, isString := value.(string)
		if !isString || !aliasRe.MatchString(s) {
			return
		}
		if _, err := e.resolveString(sheet, root, s, path, nil); err != nil {
			errs = append(errs, err)
		}
	})
	return errs
}
