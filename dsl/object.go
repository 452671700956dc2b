package dsl

import (
	schemac "github.com/schemac/schemac"
	js "github.com/schemac/schemac/jsonschema"
)

// maxBuildDepth bounds recursive document building, converting a pathological
// declaration graph into a reported error instead of a stack overflow.
const maxBuildDepth = 100

// buildState tracks one root document compilation: the shared $defs
// collection and the in-progress visitation set that turns revisits into
// references instead of infinite re-inlining.
type buildState struct {
	root     *schemac.Model
	visiting map[*schemac.Model]bool
	pending  map[*schemac.Model]bool // revisited while in progress; def filled on completion
	defs     map[string]*js.Schema
	depth    int
}

// compileDocument builds both document forms for the model: the root
// (carrying $schema/$id when resolved) and the nested fragment (which never
// does).
func compileDocument(m *schemac.Model) (*js.Schema, *js.Schema, error) {
	st := &buildState{
		root:     m,
		visiting: map[*schemac.Model]bool{},
		pending:  map[*schemac.Model]bool{},
		defs:     map[string]*js.Schema{},
	}
	obj, err := buildObjectSchema(m, st)
	if err != nil {
		return nil, nil, err
	}
	if len(st.defs) > 0 {
		obj.Defs = st.defs
	}
	root := *obj
	root.Version = m.Version()
	root.ID = m.ID()
	return &root, obj, nil
}

// buildObjectSchema compiles one object-level schema: per-property fragments,
// the required list in declaration order, renames, object-level keywords, and
// the additional-properties policy.
func buildObjectSchema(m *schemac.Model, st *buildState) (*js.Schema, error) {
	st.depth++
	defer func() { st.depth-- }()
	if st.depth > maxBuildDepth {
		return nil, &schemac.DepthError{Limit: maxBuildDepth}
	}
	st.visiting[m] = true
	defer delete(st.visiting, m)

	cfg := m.Config()
	out := &js.Schema{Type: "object"}
	out.Title = m.Title()
	out.Description = m.Description()

	props := make(map[string]*js.Schema, len(m.Properties()))
	var required []string
	for _, p := range m.Properties() {
		frag, err := buildFragment(p.Name, p.Type, p.Constraints, st, cfg)
		if err != nil {
			return nil, err
		}
		key := p.Name
		if as := p.Constraints.String(schemac.OptAs); as != "" {
			key = as
		}
		props[key] = frag
		if isRequired(p, cfg) {
			required = append(required, key)
		}
	}
	out.Properties = props
	out.Required = required

	kw := m.Keywords()
	out.MinProperties = kw.MinProperties
	out.MaxProperties = kw.MaxProperties
	if len(kw.DependentRequired) > 0 {
		out.DependentRequired = kw.DependentRequired
	}
	if len(kw.PatternProperties) > 0 {
		pp := make(map[string]*js.Schema, len(kw.PatternProperties))
		for pattern, t := range kw.PatternProperties {
			s, err := buildTypeSchema(t, st, cfg)
			if err != nil {
				return nil, err
			}
			pp[pattern] = s
		}
		out.PatternProperties = pp
	}

	ap := kw.AdditionalProperties
	if ap == nil {
		ap = cfg.AdditionalProperties
	}
	switch v := ap.(type) {
	case nil:
		// keyword omitted
	case bool:
		out.AdditionalProperties = v
	case *schemac.Type:
		s, err := buildTypeSchema(v, st, cfg)
		if err != nil {
			return nil, err
		}
		out.AdditionalProperties = s
	default:
		return nil, &schemac.ConstraintError{Property: m.Name(), Constraint: "additionalProperties",
			Expected: "a bool or a *Type", Actual: ap}
	}

	// A model revisited while this frame was open was emitted as a local
	// reference; satisfy it now.
	if st.pending[m] && st.defs[m.Name()] == nil {
		st.defs[m.Name()] = out
	}
	return out, nil
}

// isRequired applies the required policy: properties are required unless
// marked optional, or nilable under the nilable-implies-optional flag.
// Nilable and optional stay orthogonal by default: a nilable-but-required
// property must be present with an explicit null.
func isRequired(p schemac.Property, cfg schemac.Config) bool {
	if p.Constraints.Bool(schemac.OptOptional, false) {
		return false
	}
	if p.Type.Kind == schemac.KindNilable && cfg.NilableImpliesOptional {
		return false
	}
	return true
}
