package dsl

import (
	schemac "github.com/schemac/schemac"
	js "github.com/schemac/schemac/jsonschema"
)

// shouldUseRef decides whether a nested model is referenced or inlined: the
// per-property override always wins, otherwise the configured default
// applies.
func shouldUseRef(cons schemac.Constraints, cfg schemac.Config) bool {
	if cons.Has(schemac.OptRef) {
		return cons.Bool(schemac.OptRef, false)
	}
	return cfg.UseReferences
}

func localPointer(name string) string { return "#/$defs/" + name }

// buildRefFragment merges the pointer with the property-local annotations.
// The override flag itself is stripped and never leaks into the document.
func buildRefFragment(pointer string, cons schemac.Constraints) *js.Schema {
	out := &js.Schema{Ref: pointer}
	out.Title = cons.String(schemac.OptTitle)
	out.Description = cons.String(schemac.OptDescription)
	return out
}

// resolveModelSchema renders a reference to another model. Self references
// and references back to the root compile to "#". A model revisited while
// its own frame is still open short-circuits to a local pointer, which keeps
// cyclic declaration graphs bounded. With references enabled the target
// registers into the root's $defs exactly once, no matter how many
// properties point at it. An external pointer is used only when preferred
// and the target actually declares an external id; otherwise the local
// pointer is the silent fallback.
func resolveModelSchema(target *schemac.Model, st *buildState, useRef bool, cfg schemac.Config) (*js.Schema, error) {
	if target == nil || target == st.root {
		return &js.Schema{Ref: "#"}, nil
	}
	if st.visiting[target] {
		st.pending[target] = true
		return &js.Schema{Ref: localPointer(target.Name())}, nil
	}
	if useRef {
		if cfg.PreferExternalRef && target.ID() != "" {
			return &js.Schema{Ref: target.ID()}, nil
		}
		if _, ok := st.defs[target.Name()]; !ok {
			built, err := buildObjectSchema(target, st)
			if err != nil {
				return nil, err
			}
			st.defs[target.Name()] = built
		}
		return &js.Schema{Ref: localPointer(target.Name())}, nil
	}
	return buildObjectSchema(target, st)
}
