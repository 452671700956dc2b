package schemac

// Kind identifies a TypeDescriptor category. The set is closed; every builder
// and the validation adapter switch exhaustively over it.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindNumber
	KindBoolean
	KindNull
	KindDate
	KindDateTime
	KindTime
	KindObject // broad fallback for unrecognized inputs
	KindNilable
	KindArray
	KindTuple
	KindUnion
	KindComposition
	KindModel
)

// CompositionMode selects the JSON Schema composition keyword.
type CompositionMode int

const (
	CompositionAnyOf CompositionMode = iota
	CompositionAllOf
	CompositionOneOf
)

// Keyword returns the JSON Schema keyword for the mode.
func (m CompositionMode) Keyword() string {
	switch m {
	case CompositionAllOf:
		return "allOf"
	case CompositionOneOf:
		return "oneOf"
	default:
		return "anyOf"
	}
}

// RestPolicy describes how a tuple treats elements beyond its positional
// slots. A nil policy leaves excess elements unconstrained.
type RestPolicy struct {
	Closed bool  // no excess elements allowed (additionalItems: false)
	Elem   *Type // excess elements must match this type
}

// Type is the closed descriptor consumed by both compiler back ends. Exactly
// the fields relevant to Kind are populated; the rest stay zero.
//
// Invariants: a Nilable never wraps another Nilable (the constructor
// flattens), and a Tuple carries at least one positional slot (enforced at
// build time).
type Type struct {
	Kind    Kind
	Inner   *Type           // KindNilable wrapped type, KindArray element type
	Slots   []*Type         // KindTuple positional slots
	Rest    *RestPolicy     // KindTuple rest policy; nil = unconstrained
	Members []*Type         // KindUnion members
	Mode    CompositionMode // KindComposition
	Models  []*Model        // KindComposition members
	Model   *Model          // KindModel target; nil means the enclosing model (self reference)
}

// String returns a string scalar descriptor.
func String() *Type { return &Type{Kind: KindString} }

// Integer returns an integer scalar descriptor.
func Integer() *Type { return &Type{Kind: KindInteger} }

// Number returns a number scalar descriptor.
func Number() *Type { return &Type{Kind: KindNumber} }

// Boolean returns a boolean scalar descriptor.
func Boolean() *Type { return &Type{Kind: KindBoolean} }

// Null returns a null scalar descriptor.
func Null() *Type { return &Type{Kind: KindNull} }

// Date returns a date descriptor (string with format "date").
func Date() *Type { return &Type{Kind: KindDate} }

// DateTime returns a date-time descriptor (string with format "date-time").
func DateTime() *Type { return &Type{Kind: KindDateTime} }

// Time returns a time descriptor (string with format "time").
func Time() *Type { return &Type{Kind: KindTime} }

// Object returns the broad object descriptor used for untyped values.
func Object() *Type { return &Type{Kind: KindObject} }

// Nilable wraps inner so that null becomes an admissible value. Wrapping a
// nilable type is a no-op.
func Nilable(inner *Type) *Type {
	if inner == nil {
		return &Type{Kind: KindNilable, Inner: Object()}
	}
	if inner.Kind == KindNilable {
		return inner
	}
	return &Type{Kind: KindNilable, Inner: inner}
}

// ArrayOf returns a typed-array descriptor with a uniform element type.
func ArrayOf(elem *Type) *Type {
	if elem == nil {
		elem = Object()
	}
	return &Type{Kind: KindArray, Inner: elem}
}

// TupleOf returns a tuple descriptor with the given positional slots and an
// unconstrained rest policy. Use WithRest or Closed to constrain excess
// elements.
func TupleOf(slots ...*Type) *Type {
	return &Type{Kind: KindTuple, Slots: slots}
}

// WithRest constrains tuple elements beyond the positional slots to the
// given type. It returns the receiver for chaining.
func (t *Type) WithRest(elem *Type) *Type {
	if t.Kind == KindTuple {
		t.Rest = &RestPolicy{Elem: elem}
	}
	return t
}

// Closed forbids tuple elements beyond the positional slots. It returns the
// receiver for chaining.
func (t *Type) Closed() *Type {
	if t.Kind == KindTuple {
		t.Rest = &RestPolicy{Closed: true}
	}
	return t
}

// UnionOf returns a union descriptor over the given member types. The
// classifier collapses degenerate unions (all-boolean members, null members).
func UnionOf(members ...*Type) *Type {
	return &Type{Kind: KindUnion, Members: members}
}

// AnyOf returns an anyOf composition over the given models.
func AnyOf(models ...*Model) *Type {
	return &Type{Kind: KindComposition, Mode: CompositionAnyOf, Models: models}
}

// AllOf returns an allOf composition over the given models.
func AllOf(models ...*Model) *Type {
	return &Type{Kind: KindComposition, Mode: CompositionAllOf, Models: models}
}

// OneOf returns a oneOf composition over the given models.
func OneOf(models ...*Model) *Type {
	return &Type{Kind: KindComposition, Mode: CompositionOneOf, Models: models}
}

// Ref returns a descriptor referencing another compiled model.
func Ref(m *Model) *Type { return &Type{Kind: KindModel, Model: m} }

// SelfRef returns a descriptor referencing the enclosing model. It compiles
// to {"$ref": "#"} and validates recursively against the model's own
// validator set.
func SelfRef() *Type { return &Type{Kind: KindModel} }

// Scalar reports whether the kind is one of the scalar categories.
func (k Kind) Scalar() bool {
	switch k {
	case KindString, KindInteger, KindNumber, KindBoolean, KindNull, KindDate, KindDateTime, KindTime:
		return true
	}
	return false
}
