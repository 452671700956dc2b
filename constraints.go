package schemac

// Constraints carries the per-property constraint map declared alongside a
// type. Keys come from the closed vocabulary below; builders reject unknown
// keys for their category and shape-incompatible values at compile time.
type Constraints map[string]any

// Constraint keys shared by the document builder and the validation adapter.
const (
	// metadata
	OptTitle       = "title"
	OptDescription = "description"

	// declaration behavior
	OptOptional = "optional" // exclude from required
	OptValidate = "validate" // false disables runtime validators for the property
	OptRef      = "ref"      // per-property override of the use-references default
	OptAs       = "as"       // JSON key rename; validation still targets the declared name

	// value constraints
	OptEnum    = "enum"
	OptConst   = "const"
	OptDefault = "default"

	// string constraints
	OptMinLength = "minLength"
	OptMaxLength = "maxLength"
	OptPattern   = "pattern"
	OptFormat    = "format"

	// numeric constraints
	OptMinimum          = "minimum"
	OptMaximum          = "maximum"
	OptExclusiveMinimum = "exclusiveMinimum"
	OptExclusiveMaximum = "exclusiveMaximum"
	OptMultipleOf       = "multipleOf"

	// array constraints
	OptMinItems    = "minItems"
	OptMaxItems    = "maxItems"
	OptUniqueItems = "uniqueItems"
)

// Bool reads a boolean-valued constraint, returning def when absent or not a
// bool.
func (c Constraints) Bool(key string, def bool) bool {
	if v, ok := c[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Has reports whether the key is present.
func (c Constraints) Has(key string) bool {
	_, ok := c[key]
	return ok
}

// String reads a string-valued constraint, returning "" when absent or not a
// string.
func (c Constraints) String(key string) string {
	if v, ok := c[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
