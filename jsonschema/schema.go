package jsonschema

import (
	gojson "github.com/goccy/go-json"
)

// Schema is the JSON Schema document representation produced by the compiler.
// Field order mirrors the usual keyword grouping; zero values are omitted so
// fragments stay minimal and byte-identical across rebuilds.
type Schema struct {
	// Root-only keywords. Nested fragments never set these.
	Version string             `json:"$schema,omitempty"`
	ID      string             `json:"$id,omitempty"`
	Ref     string             `json:"$ref,omitempty"`
	Defs    map[string]*Schema `json:"$defs,omitempty"`

	// Annotations
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Core
	Type    string `json:"type,omitempty"`
	Format  string `json:"format,omitempty"`
	Enum    []any  `json:"enum,omitempty"`
	Const   any    `json:"const,omitempty"`
	Default any    `json:"default,omitempty"`

	// String
	MinLength any    `json:"minLength,omitempty"`
	MaxLength any    `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	// Numeric
	Minimum          any `json:"minimum,omitempty"`
	Maximum          any `json:"maximum,omitempty"`
	ExclusiveMinimum any `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum any `json:"exclusiveMaximum,omitempty"`
	MultipleOf       any `json:"multipleOf,omitempty"`

	// Array. Items holds either a single *Schema (uniform element type) or a
	// []*Schema (tuple positional slots); AdditionalItems holds a bool or a
	// *Schema and mirrors the tuple rest policy.
	Items           any  `json:"items,omitempty"`
	AdditionalItems any  `json:"additionalItems,omitempty"`
	MinItems        any  `json:"minItems,omitempty"`
	MaxItems        any  `json:"maxItems,omitempty"`
	UniqueItems     bool `json:"uniqueItems,omitempty"`

	// Object
	Properties           map[string]*Schema  `json:"properties,omitempty"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties any                 `json:"additionalProperties,omitempty"`
	MinProperties        *int                `json:"minProperties,omitempty"`
	MaxProperties        *int                `json:"maxProperties,omitempty"`
	DependentRequired    map[string][]string `json:"dependentRequired,omitempty"`
	PatternProperties    map[string]*Schema  `json:"patternProperties,omitempty"`

	// Composition
	AnyOf []*Schema `json:"anyOf,omitempty"`
	AllOf []*Schema `json:"allOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`
}

// Marshal serializes the document. Map keys serialize in sorted order, so the
// output is deterministic for a given schema.
func (s *Schema) Marshal() ([]byte, error) {
	return gojson.Marshal(s)
}

// MarshalIndent serializes the document with indentation.
func (s *Schema) MarshalIndent() ([]byte, error) {
	return gojson.MarshalIndent(s, "", "  ")
}

// Draft $schema URIs addressable by short name.
const (
	Draft04URI = "http://json-schema.org/draft-04/schema#"
	Draft06URI = "http://json-schema.org/draft-06/schema#"
	Draft07URI = "http://json-schema.org/draft-07/schema#"
	Draft2019  = "https://json-schema.org/draft/2019-09/schema"
	Draft2020  = "https://json-schema.org/draft/2020-12/schema"
)

// VersionURI resolves a draft name to its $schema URI. Full URIs pass
// through; "none" and "" resolve to "" (keyword omitted); unknown names pass
// through verbatim so callers can use custom meta-schemas.
func VersionURI(name string) string {
	switch name {
	case "", "none":
		return ""
	case "draft-04", "draft4":
		return Draft04URI
	case "draft-06", "draft6":
		return Draft06URI
	case "draft-07", "draft7":
		return Draft07URI
	case "draft-2019-09", "2019-09":
		return Draft2019
	case "draft-2020-12", "2020-12":
		return Draft2020
	default:
		return name
	}
}
