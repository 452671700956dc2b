package schemac

// Config carries the compilation defaults that used to live in ambient global
// state. It is threaded explicitly through the accumulator into both back
// ends.
type Config struct {
	// AdditionalProperties is the document default when a schema declares no
	// explicit policy: nil omits the keyword, a bool is emitted verbatim, and
	// a *Type is compiled into a sub-schema (typed additional properties).
	AdditionalProperties any

	// NilableImpliesOptional excludes nilable properties from the required
	// list. Off by default: nilable and optional are orthogonal, so a
	// nilable-but-required property must still be present (with an explicit
	// null).
	NilableImpliesOptional bool

	// UseReferences emits nested models as $ref/$defs instead of inlining.
	// A per-property "ref" constraint overrides this.
	UseReferences bool

	// PreferExternalRef points $ref at the target model's external $id when
	// the target declares one; otherwise the local pointer is used silently.
	PreferExternalRef bool

	// BaseURI, when set, auto-generates a root $id for models without an
	// explicit one.
	BaseURI string

	// SchemaID is the global default root $id, used when neither an explicit
	// id nor a base URI applies.
	SchemaID string

	// SchemaVersion names the root $schema: a draft name ("draft-07",
	// "draft-2020-12", ...), a full URI, or "none" to omit the keyword.
	SchemaVersion string

	// Adapter is the validation back end. Nil selects the default adapter;
	// NoopAdapter disables runtime validation entirely.
	Adapter Adapter
}

// SchemaVersionNone disables $schema emission.
const SchemaVersionNone = "none"

// DefaultConfig returns the process-wide compilation defaults.
func DefaultConfig() Config {
	return Config{
		SchemaVersion: "draft-2020-12",
	}
}
