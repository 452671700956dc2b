package dsl

import (
	schemac "github.com/schemac/schemac"
	js "github.com/schemac/schemac/jsonschema"
)

// buildFragment turns one (type, constraint-map) pair into its schema
// fragment. Constraint keys are validated against the type category before
// anything is emitted; the builders shape the document only and leave
// value-level checking (pattern validity, format semantics) to the
// validation adapter.
func buildFragment(name string, t *schemac.Type, cons schemac.Constraints, st *buildState, cfg schemac.Config) (*js.Schema, error) {
	switch t.Kind {
	case schemac.KindString:
		return buildString(name, cons)
	case schemac.KindInteger, schemac.KindNumber:
		return buildNumeric(name, t.Kind, cons)
	case schemac.KindBoolean:
		return buildBare(name, "boolean", schemac.KindBoolean, cons)
	case schemac.KindNull:
		return buildBare(name, "null", schemac.KindNull, cons)
	case schemac.KindDate:
		return buildFormatted(name, "date", schemac.KindDate, cons)
	case schemac.KindDateTime:
		return buildFormatted(name, "date-time", schemac.KindDateTime, cons)
	case schemac.KindTime:
		return buildFormatted(name, "time", schemac.KindTime, cons)
	case schemac.KindObject:
		if err := checkConstraints(name, "object", t.Kind, cons); err != nil {
			return nil, err
		}
		out := &js.Schema{Type: "object"}
		applyCommon(out, cons)
		return out, nil
	case schemac.KindNilable:
		return buildNilable(name, t, cons, st, cfg)
	case schemac.KindArray:
		return buildArray(name, t, cons, st, cfg)
	case schemac.KindTuple:
		return buildTuple(name, t, cons, st, cfg)
	case schemac.KindUnion:
		return buildUnion(name, t, cons, st, cfg)
	case schemac.KindComposition:
		return buildComposition(name, t, cons, st, cfg)
	case schemac.KindModel:
		return buildModelFragment(name, t, cons, st, cfg)
	default:
		return nil, &schemac.ConstraintError{Property: name, Constraint: "type",
			Expected: "a known type category", Actual: t.Kind}
	}
}

func buildString(name string, cons schemac.Constraints) (*js.Schema, error) {
	if err := checkConstraints(name, "string", schemac.KindString, cons); err != nil {
		return nil, err
	}
	out := &js.Schema{Type: "string"}
	out.MinLength = cons[schemac.OptMinLength]
	out.MaxLength = cons[schemac.OptMaxLength]
	out.Pattern = cons.String(schemac.OptPattern)
	out.Format = cons.String(schemac.OptFormat)
	applyCommon(out, cons)
	return out, nil
}

func buildNumeric(name string, kind schemac.Kind, cons schemac.Constraints) (*js.Schema, error) {
	// integer vs number comes from the declared kind, never from the
	// constraint values
	category := "number"
	if kind == schemac.KindInteger {
		category = "integer"
	}
	if err := checkConstraints(name, category, kind, cons); err != nil {
		return nil, err
	}
	out := &js.Schema{Type: category}
	out.Minimum = cons[schemac.OptMinimum]
	out.Maximum = cons[schemac.OptMaximum]
	out.ExclusiveMinimum = cons[schemac.OptExclusiveMinimum]
	out.ExclusiveMaximum = cons[schemac.OptExclusiveMaximum]
	out.MultipleOf = cons[schemac.OptMultipleOf]
	applyCommon(out, cons)
	return out, nil
}

func buildBare(name, typ string, kind schemac.Kind, cons schemac.Constraints) (*js.Schema, error) {
	if err := checkConstraints(name, typ, kind, cons); err != nil {
		return nil, err
	}
	out := &js.Schema{Type: typ}
	applyCommon(out, cons)
	return out, nil
}

func buildFormatted(name, format string, kind schemac.Kind, cons schemac.Constraints) (*js.Schema, error) {
	if err := checkConstraints(name, format, kind, cons); err != nil {
		return nil, err
	}
	out := &js.Schema{Type: "string", Format: format}
	applyCommon(out, cons)
	return out, nil
}

func buildArray(name string, t *schemac.Type, cons schemac.Constraints, st *buildState, cfg schemac.Config) (*js.Schema, error) {
	if err := checkConstraints(name, "array", t.Kind, cons); err != nil {
		return nil, err
	}
	items, err := buildTypeSchema(t.Inner, st, cfg)
	if err != nil {
		return nil, err
	}
	out := &js.Schema{Type: "array", Items: items}
	out.MinItems = cons[schemac.OptMinItems]
	out.MaxItems = cons[schemac.OptMaxItems]
	out.UniqueItems = cons.Bool(schemac.OptUniqueItems, false)
	applyCommon(out, cons)
	return out, nil
}

func buildTuple(name string, t *schemac.Type, cons schemac.Constraints, st *buildState, cfg schemac.Config) (*js.Schema, error) {
	if err := checkConstraints(name, "tuple", t.Kind, cons); err != nil {
		return nil, err
	}
	if len(t.Slots) == 0 {
		return nil, &schemac.ConstraintError{Property: name, Constraint: "tuple",
			Expected: "at least one positional slot", Actual: 0}
	}
	slots := make([]*js.Schema, len(t.Slots))
	for i, s := range t.Slots {
		ss, err := buildTypeSchema(s, st, cfg)
		if err != nil {
			return nil, err
		}
		slots[i] = ss
	}
	out := &js.Schema{Type: "array", Items: slots}
	if t.Rest != nil {
		if t.Rest.Closed {
			out.AdditionalItems = false
		} else if t.Rest.Elem != nil {
			rs, err := buildTypeSchema(t.Rest.Elem, st, cfg)
			if err != nil {
				return nil, err
			}
			out.AdditionalItems = rs
		}
	}
	out.MinItems = cons[schemac.OptMinItems]
	out.MaxItems = cons[schemac.OptMaxItems]
	out.UniqueItems = cons.Bool(schemac.OptUniqueItems, false)
	applyCommon(out, cons)
	return out, nil
}

func buildNilable(name string, t *schemac.Type, cons schemac.Constraints, st *buildState, cfg schemac.Config) (*js.Schema, error) {
	// Split the map: value constraints travel into the inner branch, the
	// meta keys stay on the anyOf wrapper.
	inner := schemac.Constraints{}
	meta := schemac.Constraints{}
	for k, v := range cons {
		switch k {
		case schemac.OptTitle, schemac.OptDescription, schemac.OptDefault,
			schemac.OptOptional, schemac.OptValidate, schemac.OptAs:
			meta[k] = v
		default:
			inner[k] = v
		}
	}
	innerFrag, err := buildFragment(name, t.Inner, inner, st, cfg)
	if err != nil {
		return nil, err
	}
	out := &js.Schema{AnyOf: []*js.Schema{innerFrag, {Type: "null"}}}
	out.Title = meta.String(schemac.OptTitle)
	out.Description = meta.String(schemac.OptDescription)
	out.Default = meta[schemac.OptDefault]
	return out, nil
}

func buildUnion(name string, t *schemac.Type, cons schemac.Constraints, st *buildState, cfg schemac.Config) (*js.Schema, error) {
	if err := checkConstraints(name, "union", t.Kind, cons); err != nil {
		return nil, err
	}
	members := make([]*js.Schema, len(t.Members))
	for i, m := range t.Members {
		ms, err := buildTypeSchema(m, st, cfg)
		if err != nil {
			return nil, err
		}
		members[i] = ms
	}
	out := &js.Schema{AnyOf: members}
	applyCommon(out, cons)
	return out, nil
}

func buildComposition(name string, t *schemac.Type, cons schemac.Constraints, st *buildState, cfg schemac.Config) (*js.Schema, error) {
	if err := checkConstraints(name, "composition", t.Kind, cons); err != nil {
		return nil, err
	}
	useRef := shouldUseRef(cons, cfg)
	members := make([]*js.Schema, len(t.Models))
	for i, m := range t.Models {
		ms, err := resolveModelSchema(m, st, useRef, cfg)
		if err != nil {
			return nil, err
		}
		members[i] = ms
	}
	out := &js.Schema{}
	switch t.Mode {
	case schemac.CompositionAllOf:
		out.AllOf = members
	case schemac.CompositionOneOf:
		out.OneOf = members
	default:
		out.AnyOf = members
	}
	applyCommon(out, cons)
	return out, nil
}

func buildModelFragment(name string, t *schemac.Type, cons schemac.Constraints, st *buildState, cfg schemac.Config) (*js.Schema, error) {
	if err := checkConstraints(name, "model", t.Kind, cons); err != nil {
		return nil, err
	}
	resolved, err := resolveModelSchema(t.Model, st, shouldUseRef(cons, cfg), cfg)
	if err != nil {
		return nil, err
	}
	if resolved.Ref != "" {
		// Reference fragment: the pointer plus any property-local
		// annotations. The ref override flag never reaches the document.
		return buildRefFragment(resolved.Ref, cons), nil
	}
	// Inline: property-local annotations win over the model's own.
	if title := cons.String(schemac.OptTitle); title != "" {
		resolved.Title = title
	}
	if desc := cons.String(schemac.OptDescription); desc != "" {
		resolved.Description = desc
	}
	if d, ok := cons[schemac.OptDefault]; ok {
		resolved.Default = d
	}
	return resolved, nil
}

// buildTypeSchema renders a bare type (no property constraints) into its
// schema: array items, tuple slots, union members, typed rest elements, and
// typed additional properties all route through here.
func buildTypeSchema(t *schemac.Type, st *buildState, cfg schemac.Config) (*js.Schema, error) {
	if t == nil {
		return &js.Schema{Type: "object"}, nil
	}
	switch t.Kind {
	case schemac.KindString:
		return &js.Schema{Type: "string"}, nil
	case schemac.KindInteger:
		return &js.Schema{Type: "integer"}, nil
	case schemac.KindNumber:
		return &js.Schema{Type: "number"}, nil
	case schemac.KindBoolean:
		return &js.Schema{Type: "boolean"}, nil
	case schemac.KindNull:
		return &js.Schema{Type: "null"}, nil
	case schemac.KindDate:
		return &js.Schema{Type: "string", Format: "date"}, nil
	case schemac.KindDateTime:
		return &js.Schema{Type: "string", Format: "date-time"}, nil
	case schemac.KindTime:
		return &js.Schema{Type: "string", Format: "time"}, nil
	case schemac.KindObject:
		return &js.Schema{Type: "object"}, nil
	case schemac.KindNilable:
		inner, err := buildTypeSchema(t.Inner, st, cfg)
		if err != nil {
			return nil, err
		}
		return &js.Schema{AnyOf: []*js.Schema{inner, {Type: "null"}}}, nil
	case schemac.KindArray:
		items, err := buildTypeSchema(t.Inner, st, cfg)
		if err != nil {
			return nil, err
		}
		return &js.Schema{Type: "array", Items: items}, nil
	case schemac.KindTuple:
		return buildTuple("", t, nil, st, cfg)
	case schemac.KindUnion:
		return buildUnion("", t, nil, st, cfg)
	case schemac.KindComposition:
		return buildComposition("", t, nil, st, cfg)
	case schemac.KindModel:
		return resolveModelSchema(t.Model, st, cfg.UseReferences, cfg)
	default:
		return &js.Schema{Type: "object"}, nil
	}
}

// applyCommon copies the shared annotation/value keys onto the fragment.
func applyCommon(out *js.Schema, cons schemac.Constraints) {
	if len(cons) == 0 {
		return
	}
	if title := cons.String(schemac.OptTitle); title != "" {
		out.Title = title
	}
	if desc := cons.String(schemac.OptDescription); desc != "" {
		out.Description = desc
	}
	if e, ok := cons[schemac.OptEnum]; ok {
		if vals, ok := e.([]any); ok {
			out.Enum = vals
		}
	}
	if c, ok := cons[schemac.OptConst]; ok {
		out.Const = c
	}
	if d, ok := cons[schemac.OptDefault]; ok {
		out.Default = d
	}
}
