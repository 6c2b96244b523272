package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// Type defines the contract for token value validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "color").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// --- Built-in Type Implementations ---

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	_, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// NumberType validates numeric values. YAML decodes integers to int and
// reals to float64; JSON decodes everything to float64. Both are accepted.
type NumberType struct{}

func (t *NumberType) Name() string { return "number" }

func (t *NumberType) Validate(value any) error {
	switch value.(type) {
	case int, int8, int16, int32, int64, float32, float64:
		return nil
	default:
		return fmt.Errorf("expected number, got %T", value)
	}
}

// BoolType validates boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Validate(value any) error {
	_, ok := value.(bool)
	if !ok {
		return fmt.Errorf("expected bool, got %T", value)
	}
	return nil
}

var (
	hexColorRe  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	funcColorRe = regexp.MustCompile(`^(?:rgb|rgba|hsl|hsla)\(`)
	dimensionRe = regexp.MustCompile(`^-?(?:\d+|\d*\.\d+)(px|em|rem|pt|vh|vw|ch|ex|%)$`)
)

// ColorType validates CSS color literals: #rgb/#rrggbb(aa) hex forms and
// the rgb()/rgba()/hsl()/hsla() functional forms.
type ColorType struct{}

func (t *ColorType) Name() string { return "color" }

func (t *ColorType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected color string, got %T", value)
	}
	s = strings.TrimSpace(s)
	if hexColorRe.MatchString(s) {
		return nil
	}
	if funcColorRe.MatchString(s) && strings.HasSuffix(s, ")") {
		return nil
	}
	return fmt.Errorf("invalid color literal: %q", s)
}

// DimensionType validates a number with a CSS unit, e.g. "4px", "1.5rem",
// "100%". Bare numbers are rejected: a dimension without a unit is ambiguous.
type DimensionType struct{}

func (t *DimensionType) Name() string { return "dimension" }

func (t *DimensionType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected dimension string, got %T", value)
	}
	if !dimensionRe.MatchString(strings.TrimSpace(s)) {
		return fmt.Errorf("invalid dimension: %q", s)
	}
	return nil
}

// ListType validates slices of a specific element type.
type ListType struct {
	elemType Type
}

func (t *ListType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *ListType) Validate(value any) error {
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("expected list, got %T", value)
	}
	for i, elem := range items {
		if err := t.elemType.Validate(elem); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// MapType validates that a value is itself a nested mapping.
type MapType struct{}

func (t *MapType) Name() string { return "map" }

func (t *MapType) Validate(value any) error {
	_, ok := value.(map[string]any)
	if !ok {
		return fmt.Errorf("expected mapping, got %T", value)
	}
	return nil
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Number creates a numeric type validator.
func Number() Type { return &NumberType{} }

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// Color creates a color literal validator.
func Color() Type { return &ColorType{} }

// Dimension creates a dimension (number + unit) validator.
func Dimension() Type { return &DimensionType{} }

// Map creates a nested-mapping validator.
func Map() Type { return &MapType{} }

// List creates a list validator for elements of the given type.
func List(elemType Type) Type {
	return &ListType{elemType: elemType}
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}

// ParseType converts a string type name to a Type.
// Supports "string", "number", "bool", "color", "dimension", "map" and
// list forms like "[color]".
func ParseType(typeStr string) (Type, error) {
	if len(typeStr) > 2 && typeStr[0] == '[' && typeStr[len(typeStr)-1] == ']' {
		elemType, err := ParseType(typeStr[1 : len(typeStr)-1])
		if err != nil {
			return nil, err
		}
		return List(elemType), nil
	}

	switch typeStr {
	case "string":
		return String(), nil
	case "number":
		return Number(), nil
	case "bool":
		return Bool(), nil
	case "color":
		return Color(), nil
	case "dimension":
		return Dimension(), nil
	case "map":
		return Map(), nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", typeStr)
	}
}

// ParseTypeMap converts a map of token paths to type strings into a Schema.
// Example: {"color.brand.primary": "color", "spacing.base": "dimension"}
func ParseTypeMap(typeMap map[string]string) (Schema, error) {
	result := make(Schema)
	for path, typeStr := range typeMap {
		t, err := ParseType(typeStr)
		if err != nil {
			return nil, fmt.Errorf("path %s: %w", path, err)
		}
		result[path] = t
	}
	return result, nil
}
