package validator

import (
	"fmt"
	"math/big"
	"unicode/utf8"

	schemac "github.com/schemac/schemac"
	"github.com/schemac/schemac/internal/equality"
)

// checkValue dispatches the value-level checks for a present non-null value.
// The constraint map applies here only; element and member checks deeper in
// the structure are bare type checks.
func (r *propRule) checkValue(path string, t *schemac.Type, v any) schemac.Issues {
	switch t.Kind {
	case schemac.KindString:
		return r.checkString(path, v)
	case schemac.KindInteger, schemac.KindNumber:
		return r.checkNumeric(path, t.Kind, v)
	case schemac.KindBoolean:
		if _, ok := v.(bool); !ok {
			return schemac.Issues{r.typeIssue(path, "boolean", v)}
		}
		return r.checkEnumConst(path, v)
	case schemac.KindNull:
		return schemac.Issues{r.typeIssue(path, "null", v)}
	case schemac.KindDate, schemac.KindDateTime, schemac.KindTime:
		return r.checkFormatted(path, t.Kind, v)
	case schemac.KindObject:
		return r.checkEnumConst(path, v)
	case schemac.KindNilable:
		return r.checkValue(path, t.Inner, v)
	case schemac.KindArray:
		return r.checkArray(path, t, v)
	case schemac.KindTuple:
		return r.checkTuple(path, t, v)
	case schemac.KindUnion:
		return r.checkUnion(path, t, v)
	case schemac.KindComposition:
		return r.checkComposition(path, t, v)
	case schemac.KindModel:
		return r.checkModelValue(path, r.modelTarget(t.Model), v)
	default:
		return nil
	}
}

func (r *propRule) checkString(path string, v any) schemac.Issues {
	s, ok := v.(string)
	if !ok {
		return schemac.Issues{r.typeIssue(path, "string", v)}
	}
	var iss schemac.Issues
	n := utf8.RuneCountInString(s)
	if r.minLen != nil && n < *r.minLen {
		iss = append(iss, newIssue(path, schemac.CodeTooShort, map[string]any{"min": *r.minLen, "got": n}))
	}
	if r.maxLen != nil && n > *r.maxLen {
		iss = append(iss, newIssue(path, schemac.CodeTooLong, map[string]any{"max": *r.maxLen, "got": n}))
	}
	if r.pattern != nil && !r.pattern.MatchString(s) {
		iss = append(iss, newIssue(path, schemac.CodePattern, map[string]any{"pattern": r.pattern.String()}))
	}
	if f := r.cons.String(schemac.OptFormat); f != "" {
		// Unrecognized formats pass, matching annotation-only format
		// semantics.
		if check, known := formatChecks[f]; known && !check(s) {
			iss = append(iss, newIssue(path, schemac.CodeInvalidFormat, map[string]any{"format": f}))
		}
	}
	return append(iss, r.checkEnumConst(path, v)...)
}

func (r *propRule) checkNumeric(path string, kind schemac.Kind, v any) schemac.Issues {
	rv, ok := equality.Rat(v)
	if !ok {
		return schemac.Issues{r.typeIssue(path, "number", v)}
	}
	if kind == schemac.KindInteger && !rv.IsInt() {
		return schemac.Issues{r.typeIssue(path, "integer", v)}
	}
	var iss schemac.Issues
	if r.min != nil && rv.Cmp(r.min) < 0 {
		iss = append(iss, newIssue(path, schemac.CodeTooSmall, map[string]any{"min": r.cons[schemac.OptMinimum], "got": v}))
	}
	if r.xmin != nil && rv.Cmp(r.xmin) <= 0 {
		iss = append(iss, newIssue(path, schemac.CodeTooSmall,
			map[string]any{"min": r.cons[schemac.OptExclusiveMinimum], "exclusive": true, "got": v}))
	}
	if r.max != nil && rv.Cmp(r.max) > 0 {
		iss = append(iss, newIssue(path, schemac.CodeTooBig, map[string]any{"max": r.cons[schemac.OptMaximum], "got": v}))
	}
	if r.xmax != nil && rv.Cmp(r.xmax) >= 0 {
		iss = append(iss, newIssue(path, schemac.CodeTooBig,
			map[string]any{"max": r.cons[schemac.OptExclusiveMaximum], "exclusive": true, "got": v}))
	}
	if r.mult != nil {
		if q := new(big.Rat).Quo(rv, r.mult); !q.IsInt() {
			iss = append(iss, newIssue(path, schemac.CodeNotMultiple,
				map[string]any{"multipleOf": r.cons[schemac.OptMultipleOf], "got": v}))
		}
	}
	return append(iss, r.checkEnumConst(path, v)...)
}

func (r *propRule) checkFormatted(path string, kind schemac.Kind, v any) schemac.Issues {
	s, ok := v.(string)
	if !ok {
		return schemac.Issues{r.typeIssue(path, "string", v)}
	}
	format := "date"
	switch kind {
	case schemac.KindDateTime:
		format = "date-time"
	case schemac.KindTime:
		format = "time"
	}
	var iss schemac.Issues
	if !formatChecks[format](s) {
		iss = append(iss, newIssue(path, schemac.CodeInvalidFormat, map[string]any{"format": format}))
	}
	return append(iss, r.checkEnumConst(path, v)...)
}

func (r *propRule) checkEnumConst(path string, v any) schemac.Issues {
	var iss schemac.Issues
	if e, ok := r.cons[schemac.OptEnum]; ok {
		if vals, ok := e.([]any); ok {
			found := false
			for _, cand := range vals {
				eq, err := equality.Equal(v, cand)
				if err != nil {
					return append(iss, depthIssue(path))
				}
				if eq {
					found = true
					break
				}
			}
			if !found {
				iss = append(iss, newIssue(path, schemac.CodeNotIncluded, map[string]any{"enum": vals, "got": v}))
			}
		}
	}
	if c, ok := r.cons[schemac.OptConst]; ok {
		eq, err := equality.Equal(v, c)
		if err != nil {
			return append(iss, depthIssue(path))
		}
		if !eq {
			iss = append(iss, newIssue(path, schemac.CodeNotEqual, map[string]any{"expected": c, "got": v}))
		}
	}
	return iss
}

func (r *propRule) checkArray(path string, t *schemac.Type, v any) schemac.Issues {
	list, ok := v.([]any)
	if !ok {
		return schemac.Issues{r.typeIssue(path, "array", v)}
	}
	iss := r.checkListBounds(path, list)
	elem := t.Inner
	if elem == nil {
		return append(iss, r.checkEnumConst(path, v)...)
	}
	for i, ev := range list {
		ep := fmt.Sprintf("%s[%d]", path, i)
		if elem.Kind == schemac.KindModel {
			target := r.modelTarget(elem.Model)
			m, ok := ev.(map[string]any)
			if !ok {
				iss = append(iss, r.typeIssue(ep, "object", ev))
				continue
			}
			iss = append(iss, target.Validate(m).Prefixed(ep)...)
			continue
		}
		if !r.matches(elem, ev) {
			iss = append(iss, r.typeIssue(ep, typeLabel(elem), ev))
		}
	}
	return append(iss, r.checkEnumConst(path, v)...)
}

func (r *propRule) checkTuple(path string, t *schemac.Type, v any) schemac.Issues {
	list, ok := v.([]any)
	if !ok {
		return schemac.Issues{r.typeIssue(path, "array", v)}
	}
	iss := r.checkListBounds(path, list)
	// Unreached positional slots impose no constraint; minItems expresses a
	// length floor when one is wanted.
	for i, slot := range t.Slots {
		if i >= len(list) {
			break
		}
		if !r.matches(slot, list[i]) {
			iss = append(iss, r.typeIssue(fmt.Sprintf("%s[%d]", path, i), typeLabel(slot), list[i]))
		}
	}
	if len(list) > len(t.Slots) && t.Rest != nil {
		if t.Rest.Closed {
			iss = append(iss, newIssue(path, schemac.CodeExtraItems,
				map[string]any{"max": len(t.Slots), "got": len(list)}))
		} else if t.Rest.Elem != nil {
			for i := len(t.Slots); i < len(list); i++ {
				if !r.matches(t.Rest.Elem, list[i]) {
					iss = append(iss, r.typeIssue(fmt.Sprintf("%s[%d]", path, i), typeLabel(t.Rest.Elem), list[i]))
				}
			}
		}
	}
	return append(iss, r.checkEnumConst(path, v)...)
}

func (r *propRule) checkListBounds(path string, list []any) schemac.Issues {
	var iss schemac.Issues
	if r.minItems != nil && len(list) < *r.minItems {
		iss = append(iss, newIssue(path, schemac.CodeTooFewItems, map[string]any{"min": *r.minItems, "got": len(list)}))
	}
	if r.maxItems != nil && len(list) > *r.maxItems {
		iss = append(iss, newIssue(path, schemac.CodeTooManyItems, map[string]any{"max": *r.maxItems, "got": len(list)}))
	}
	if r.cons.Bool(schemac.OptUniqueItems, false) {
		dup, err := equality.HasDuplicates(list)
		if err != nil {
			iss = append(iss, depthIssue(path))
		} else if dup {
			iss = append(iss, newIssue(path, schemac.CodeNotUnique, nil))
		}
	}
	return iss
}

func (r *propRule) checkUnion(path string, t *schemac.Type, v any) schemac.Issues {
	for _, m := range t.Members {
		if r.matches(m, v) {
			return r.checkEnumConst(path, v)
		}
	}
	return schemac.Issues{r.typeIssue(path, unionLabel(t), v)}
}

func (r *propRule) checkComposition(path string, t *schemac.Type, v any) schemac.Issues {
	m, ok := v.(map[string]any)
	if !ok {
		return schemac.Issues{r.typeIssue(path, "object", v)}
	}
	matched := 0
	var iss schemac.Issues
	for _, model := range t.Models {
		target := r.modelTarget(model)
		sub := target.Validate(m)
		if len(sub) == 0 {
			matched++
		} else if t.Mode == schemac.CompositionAllOf {
			iss = append(iss, sub.Prefixed(path)...)
		}
	}
	switch t.Mode {
	case schemac.CompositionAllOf:
		// iss already carries the failing members
	case schemac.CompositionOneOf:
		if matched == 0 {
			iss = append(iss, newIssue(path, schemac.CodeNoMatch, nil))
		} else if matched > 1 {
			iss = append(iss, newIssue(path, schemac.CodeAmbiguous, map[string]any{"matched": matched}))
		}
	default:
		if matched == 0 {
			iss = append(iss, newIssue(path, schemac.CodeNoMatch, nil))
		}
	}
	return append(iss, r.checkEnumConst(path, v)...)
}

// checkModelValue recurses into a nested object. When the nested object is
// required and every reported violation is a missing property on an
// effectively empty value, the violations collapse into a single blank on the
// parent path.
func (r *propRule) checkModelValue(path string, target *schemac.Model, v any) schemac.Issues {
	m, ok := v.(map[string]any)
	if !ok {
		return schemac.Issues{r.typeIssue(path, "object", v)}
	}
	iss := target.Validate(m)
	switch {
	case len(iss) == 0:
		iss = nil
	case r.required && allBlank(iss) && emptyValues(m):
		iss = schemac.Issues{newIssue(path, schemac.CodeBlank, nil)}
	default:
		iss = iss.Prefixed(path)
	}
	return append(iss, r.checkEnumConst(path, v)...)
}

func allBlank(iss schemac.Issues) bool {
	for _, it := range iss {
		if it.Code != schemac.CodeBlank {
			return false
		}
	}
	return true
}

func emptyValues(m map[string]any) bool {
	for _, v := range m {
		switch t := v.(type) {
		case nil:
		case string:
			if t != "" {
				return false
			}
		case []any:
			if len(t) != 0 {
				return false
			}
		case map[string]any:
			if len(t) != 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// matches is the bare type check used for array elements, tuple slots, union
// members, and rest elements. It carries no constraint map.
func (r *propRule) matches(t *schemac.Type, v any) bool {
	if t == nil {
		return true
	}
	switch t.Kind {
	case schemac.KindString:
		_, ok := v.(string)
		return ok
	case schemac.KindInteger:
		rv, ok := equality.Rat(v)
		return ok && rv.IsInt()
	case schemac.KindNumber:
		_, ok := equality.Rat(v)
		return ok
	case schemac.KindBoolean:
		_, ok := v.(bool)
		return ok
	case schemac.KindNull:
		return v == nil
	case schemac.KindDate, schemac.KindDateTime, schemac.KindTime:
		s, ok := v.(string)
		if !ok {
			return false
		}
		switch t.Kind {
		case schemac.KindDate:
			return formatChecks["date"](s)
		case schemac.KindDateTime:
			return formatChecks["date-time"](s)
		default:
			return formatChecks["time"](s)
		}
	case schemac.KindObject:
		return true
	case schemac.KindNilable:
		return v == nil || r.matches(t.Inner, v)
	case schemac.KindArray:
		list, ok := v.([]any)
		if !ok {
			return false
		}
		for _, ev := range list {
			if !r.matches(t.Inner, ev) {
				return false
			}
		}
		return true
	case schemac.KindTuple:
		list, ok := v.([]any)
		if !ok {
			return false
		}
		for i, slot := range t.Slots {
			if i >= len(list) {
				break
			}
			if !r.matches(slot, list[i]) {
				return false
			}
		}
		if len(list) > len(t.Slots) && t.Rest != nil {
			if t.Rest.Closed {
				return false
			}
			if t.Rest.Elem != nil {
				for i := len(t.Slots); i < len(list); i++ {
					if !r.matches(t.Rest.Elem, list[i]) {
						return false
					}
				}
			}
		}
		return true
	case schemac.KindUnion:
		for _, m := range t.Members {
			if r.matches(m, v) {
				return true
			}
		}
		return false
	case schemac.KindComposition:
		m, ok := v.(map[string]any)
		if !ok {
			return false
		}
		matched := 0
		for _, model := range t.Models {
			if r.modelTarget(model).Valid(m) {
				matched++
			}
		}
		switch t.Mode {
		case schemac.CompositionAllOf:
			return matched == len(t.Models)
		case schemac.CompositionOneOf:
			return matched == 1
		default:
			return matched > 0
		}
	case schemac.KindModel:
		m, ok := v.(map[string]any)
		return ok && r.modelTarget(t.Model).Valid(m)
	default:
		return true
	}
}

func (r *propRule) typeIssue(path, expected string, got any) schemac.Issue {
	return newIssue(path, schemac.CodeInvalidType, map[string]any{"expected": expected, "got": typeName(got)})
}

func typeName(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		if rv, ok := equality.Rat(t); ok {
			if rv.IsInt() {
				return "integer"
			}
			return "number"
		}
		return fmt.Sprintf("%T", v)
	}
}

func typeLabel(t *schemac.Type) string {
	switch t.Kind {
	case schemac.KindString:
		return "string"
	case schemac.KindInteger:
		return "integer"
	case schemac.KindNumber:
		return "number"
	case schemac.KindBoolean:
		return "boolean"
	case schemac.KindNull:
		return "null"
	case schemac.KindDate:
		return "date"
	case schemac.KindDateTime:
		return "date-time"
	case schemac.KindTime:
		return "time"
	case schemac.KindNilable:
		return typeLabel(t.Inner) + "|null"
	case schemac.KindArray:
		return "array"
	case schemac.KindTuple:
		return "tuple"
	case schemac.KindUnion:
		return unionLabel(t)
	case schemac.KindModel, schemac.KindComposition:
		return "object"
	default:
		return "object"
	}
}

func unionLabel(t *schemac.Type) string {
	label := ""
	for i, m := range t.Members {
		if i > 0 {
			label += "|"
		}
		label += typeLabel(m)
	}
	return label
}
