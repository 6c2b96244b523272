package validator

import (
	"fmt"
	"strings"

	"github.com/danilucaci/stylemap/pkg/schema"
	"github.com/danilucaci/stylemap/pkg/tokens"
)

const typesKey = "$types"

// Resolver is the subset of the stylemap resolver the validator needs.
type Resolver interface {
	Sheets() []string
	Sheet(name string) (tokens.Mapping, error)
	CheckAliases(sheet string) []error
}

// ValidateSheets checks every loaded sheet for broken or cyclic alias
// references. Sheets that declare a "$types" block are additionally
// validated against it: each entry maps a dotted token path to a type
// name ("color", "dimension", "[string]", ...).
func ValidateSheets(res Resolver) error {
	var errors []string

	for _, name := range res.Sheets() {
		for _, err := range res.CheckAliases(name) {
			errors = append(errors, err.Error())
		}

		doc, err := res.Sheet(name)
		if err != nil {
			errors = append(errors, fmt.Sprintf("failed to read sheet '%s': %v", name, err))
			continue
		}

		if err := validateTypes(name, doc); err != nil {
			errors = append(errors, err.Error())
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}
	return nil
}

func validateTypes(sheet string, doc tokens.Mapping) error {
	raw, ok := doc[typesKey]
	if !ok {
		return nil
	}

	block, ok := raw.(tokens.Mapping)
	if !ok {
		return fmt.Errorf("sheet '%s': %s must be a mapping of path to type name", sheet, typesKey)
	}

	typeMap := make(map[string]string, len(block))
	for path, v := range block {
		typeName, ok := v.(string)
		if !ok {
			return fmt.Errorf("sheet '%s': %s entry %q must be a type name string", sheet, typesKey, path)
		}
		typeMap[path] = typeName
	}

	s, err := schema.ParseTypeMap(typeMap)
	if err != nil {
		return fmt.Errorf("sheet '%s': invalid %s block: %w", sheet, typesKey, err)
	}

	// The $types block itself is not token data.
	data := tokens.Clone(doc)
	delete(data, typesKey)

	if err := schema.Validate(s, data); err != nil {
		return fmt.Errorf("sheet '%s': %w", sheet, err)
	}
	return nil
}
