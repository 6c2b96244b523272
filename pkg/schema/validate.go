package schema

import (
	"github.com/danilucaci/stylemap/pkg/tokens"
)

// Schema is a map of dotted token paths to their expected types.
// Example: {"color.brand.primary": Color(), "spacing.base": Dimension()}
type Schema map[string]Type

// Validate checks that every path declared in the schema exists in the
// token document and conforms to its declared type.
// Returns an error aggregating all failures found.
func Validate(schema Schema, doc tokens.Mapping) error {
	if len(schema) == 0 {
		// No schema = no validation
		return nil
	}

	var errs []error

	for path, typ := range schema {
		value, ok := tokens.Get(doc, tokens.ParsePath(path)...)
		if !ok {
			errs = append(errs, &ValidationError{
				Path:   path,
				Reason: "required",
			})
			continue
		}

		if err := typ.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Path:   path,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}

// ValidatePaths validates only the given paths against the schema.
// Paths not declared in the schema are reported as errors.
func ValidatePaths(schema Schema, doc tokens.Mapping, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	var errs []error

	for _, path := range paths {
		typ, declared := schema[path]
		if !declared {
			errs = append(errs, &ValidationError{
				Path:   path,
				Reason: "not declared in schema",
			})
			continue
		}

		value, ok := tokens.Get(doc, tokens.ParsePath(path)...)
		if !ok {
			errs = append(errs, &ValidationError{
				Path:   path,
				Reason: "required",
			})
			continue
		}

		if err := typ.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Path:   path,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}
