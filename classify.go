package schemac

import "strings"

// Classify normalizes the varied type inputs accepted by the declaration
// surface into the closed Type vocabulary. It accepts *Type values (which are
// normalized), *Model references, and scalar names as strings. Anything
// unrecognized classifies as the broad object type; Classify never fails, so
// incompatible constraints surface later, loudly, in the builders.
func Classify(v any) *Type {
	switch t := v.(type) {
	case *Type:
		if t == nil {
			return Object()
		}
		return normalizeType(t)
	case *Model:
		if t == nil {
			return Object()
		}
		return Ref(t)
	case string:
		return scalarByName(t)
	default:
		return Object()
	}
}

// normalizeType collapses degenerate shapes: nested nilables, all-boolean
// unions, unions with null members, and single-member unions.
func normalizeType(t *Type) *Type {
	if t == nil {
		return Object()
	}
	switch t.Kind {
	case KindNilable:
		inner := normalizeType(t.Inner)
		if inner.Kind == KindNilable {
			return inner
		}
		if inner.Kind == KindNull {
			return &Type{Kind: KindNull}
		}
		return &Type{Kind: KindNilable, Inner: inner}
	case KindArray:
		return &Type{Kind: KindArray, Inner: normalizeType(t.Inner)}
	case KindTuple:
		slots := make([]*Type, len(t.Slots))
		for i, s := range t.Slots {
			slots[i] = normalizeType(s)
		}
		rest := t.Rest
		if rest != nil && rest.Elem != nil {
			rest = &RestPolicy{Closed: rest.Closed, Elem: normalizeType(rest.Elem)}
		}
		return &Type{Kind: KindTuple, Slots: slots, Rest: rest}
	case KindUnion:
		return normalizeUnion(t)
	default:
		return t
	}
}

func normalizeUnion(t *Type) *Type {
	members := make([]*Type, 0, len(t.Members))
	nilable := false
	allBool := len(t.Members) > 0
	for _, m := range t.Members {
		if m == nil {
			continue
		}
		nm := normalizeType(m)
		if nm.Kind == KindNull {
			nilable = true
			continue
		}
		if nm.Kind == KindNilable {
			nilable = true
			nm = nm.Inner
		}
		if nm.Kind != KindBoolean {
			allBool = false
		}
		members = append(members, nm)
	}
	var out *Type
	switch {
	case len(members) == 0:
		if nilable {
			return &Type{Kind: KindNull}
		}
		return Object()
	case allBool:
		// A union of booleans is the boolean alias, not a real union.
		out = Boolean()
	case len(members) == 1:
		out = members[0]
	default:
		out = &Type{Kind: KindUnion, Members: members}
	}
	if nilable {
		return Nilable(out)
	}
	return out
}

func scalarByName(name string) *Type {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "string", "str", "text":
		return String()
	case "integer", "int":
		return Integer()
	case "number", "float", "double", "decimal":
		return Number()
	case "boolean", "bool":
		return Boolean()
	case "null", "nil":
		return Null()
	case "date":
		return Date()
	case "date-time", "datetime", "timestamp":
		return DateTime()
	case "time":
		return Time()
	default:
		return Object()
	}
}
