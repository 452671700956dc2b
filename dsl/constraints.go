package dsl

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"

	schemac "github.com/schemac/schemac"
)

// Constraint keys every category accepts.
var commonKeys = []string{
	schemac.OptTitle, schemac.OptDescription,
	schemac.OptOptional, schemac.OptValidate, schemac.OptAs,
	schemac.OptEnum, schemac.OptConst, schemac.OptDefault,
}

var allowedByCategory = map[string][]string{
	"string": {schemac.OptMinLength, schemac.OptMaxLength, schemac.OptPattern, schemac.OptFormat},
	"integer": {schemac.OptMinimum, schemac.OptMaximum,
		schemac.OptExclusiveMinimum, schemac.OptExclusiveMaximum, schemac.OptMultipleOf},
	"number": {schemac.OptMinimum, schemac.OptMaximum,
		schemac.OptExclusiveMinimum, schemac.OptExclusiveMaximum, schemac.OptMultipleOf},
	"boolean":     {},
	"null":        {},
	"date":        {},
	"date-time":   {},
	"time":        {},
	"object":      {},
	"array":       {schemac.OptMinItems, schemac.OptMaxItems, schemac.OptUniqueItems},
	"tuple":       {schemac.OptMinItems, schemac.OptMaxItems, schemac.OptUniqueItems},
	"union":       {},
	"composition": {schemac.OptRef},
	"model":       {schemac.OptRef},
}

func allowedKeys(category string) map[string]struct{} {
	keys := make(map[string]struct{}, len(commonKeys)+4)
	for _, k := range commonKeys {
		keys[k] = struct{}{}
	}
	for _, k := range allowedByCategory[category] {
		keys[k] = struct{}{}
	}
	return keys
}

// checkConstraints validates the constraint map against the type category:
// unknown keys and shape-incompatible values fail compilation. Keys are
// walked in sorted order so the first reported error is deterministic.
func checkConstraints(prop, category string, kind schemac.Kind, cons schemac.Constraints) error {
	if len(cons) == 0 {
		return nil
	}
	allowed := allowedKeys(category)
	keys := make([]string, 0, len(cons))
	for k := range cons {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, ok := allowed[k]; !ok {
			return &schemac.UnknownOptionError{Property: prop, Option: k, Category: category}
		}
		if err := checkShape(prop, k, cons[k], kind); err != nil {
			return err
		}
	}
	return nil
}

func checkShape(prop, key string, v any, kind schemac.Kind) error {
	switch key {
	case schemac.OptMinLength, schemac.OptMaxLength, schemac.OptMinItems, schemac.OptMaxItems:
		if !isIntValue(v) {
			return &schemac.ConstraintError{Property: prop, Constraint: key, Expected: "an integer", Actual: v}
		}
	case schemac.OptMinimum, schemac.OptMaximum, schemac.OptExclusiveMinimum,
		schemac.OptExclusiveMaximum, schemac.OptMultipleOf:
		if !isNumericValue(v) {
			return &schemac.ConstraintError{Property: prop, Constraint: key, Expected: "a number", Actual: v}
		}
	case schemac.OptPattern, schemac.OptFormat, schemac.OptAs, schemac.OptTitle, schemac.OptDescription:
		if _, ok := v.(string); !ok {
			return &schemac.ConstraintError{Property: prop, Constraint: key, Expected: "a string", Actual: v}
		}
	case schemac.OptOptional, schemac.OptValidate, schemac.OptRef, schemac.OptUniqueItems:
		if _, ok := v.(bool); !ok {
			return &schemac.ConstraintError{Property: prop, Constraint: key, Expected: "a boolean", Actual: v}
		}
	case schemac.OptEnum:
		vals, ok := v.([]any)
		if !ok {
			return &schemac.ConstraintError{Property: prop, Constraint: key, Expected: "an array of values", Actual: v}
		}
		for _, e := range vals {
			if !scalarCompatible(kind, e) {
				return &schemac.ConstraintError{Property: prop, Constraint: key,
					Expected: "values matching the declared type", Actual: e}
			}
		}
	case schemac.OptConst, schemac.OptDefault:
		if !scalarCompatible(kind, v) {
			return &schemac.ConstraintError{Property: prop, Constraint: key,
				Expected: "a value matching the declared type", Actual: v}
		}
	}
	return nil
}

// scalarCompatible checks enum/const/default values against scalar kinds.
// Compound kinds accept any value; the runtime checks take over there.
func scalarCompatible(kind schemac.Kind, v any) bool {
	switch kind {
	case schemac.KindString, schemac.KindDate, schemac.KindDateTime, schemac.KindTime:
		_, ok := v.(string)
		return ok
	case schemac.KindInteger:
		return isIntValue(v)
	case schemac.KindNumber:
		return isNumericValue(v)
	case schemac.KindBoolean:
		_, ok := v.(bool)
		return ok
	case schemac.KindNull:
		return v == nil
	default:
		return true
	}
}

func isIntValue(v any) bool {
	switch t := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float64:
		return math.Trunc(t) == t
	case float32:
		return math.Trunc(float64(t)) == float64(t)
	case json.Number:
		_, err := t.Int64()
		return err == nil
	default:
		return false
	}
}

func isNumericValue(v any) bool {
	switch t := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	case json.Number:
		_, err := strconv.ParseFloat(t.String(), 64)
		return err == nil
	default:
		return false
	}
}
