package schemac

// ObjectKeywords carries the schema-level declarations shared by the document
// builder and the validation adapter. PatternProperties and
// AdditionalProperties shape the document only; the runtime adapter does not
// consume them.
type ObjectKeywords struct {
	MinProperties     *int
	MaxProperties     *int
	DependentRequired map[string][]string

	// PatternProperties maps property-name patterns to value types.
	PatternProperties map[string]*Type
	// AdditionalProperties overrides the configuration default: nil leaves
	// the default in effect, a bool is emitted verbatim, a *Type compiles
	// into a sub-schema.
	AdditionalProperties any
}

// Adapter is the contract for validation back ends. The default adapter lives
// in the validator package; NoopAdapter disables runtime validation; custom
// back ends plug in through Config.
//
// Apply registers zero or more validators for one property on the host's
// validator set. ApplySchemaLevel registers object-level validators. Both
// return an error only for invalid schema declarations, never for invalid
// data.
type Adapter interface {
	Apply(host *Model, name string, typ *Type, cons Constraints, cfg Config) error
	ApplySchemaLevel(host *Model, kw ObjectKeywords, cfg Config) error
}

// NoopAdapter registers nothing. Compiled models carry an empty validator set
// and report every instance as valid.
type NoopAdapter struct{}

func (NoopAdapter) Apply(*Model, string, *Type, Constraints, Config) error { return nil }

func (NoopAdapter) ApplySchemaLevel(*Model, ObjectKeywords, Config) error { return nil }
