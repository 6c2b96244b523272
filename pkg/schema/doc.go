// Package schema provides type validation for style-map token values.
//
// It defines a small type system tailored to design tokens: alongside the
// usual scalars (string, number, bool) it knows about colors (hex and
// functional notation) and dimensions (a number with a CSS unit). Schemas
// map dotted token paths to types, enabling validation of a whole token
// document in one call:
//
//	s := schema.Schema{
//	    "color.brand.primary": schema.Color(),
//	    "spacing.base":        schema.Dimension(),
//	    "font.weights":        schema.List(schema.Number()),
//	}
//
//	if err := schema.Validate(s, doc); err != nil {
//	    // err aggregates every failing path
//	}
//
// Schemas can also be parsed from plain string maps ("color", "dimension",
// "[number]", ...) so a schema can live in a YAML file next to the tokens
// it describes. Custom validators cover anything domain-specific.
package schema
