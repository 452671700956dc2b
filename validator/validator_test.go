package validator_test

import (
	"encoding/json"
	"testing"

	schemac "github.com/schemac/schemac"
	"github.com/schemac/schemac/dsl"
)

func bareConfig() schemac.Config {
	return schemac.Config{SchemaVersion: schemac.SchemaVersionNone}
}

func hasIssue(iss schemac.Issues, path, code string) bool {
	for _, it := range iss {
		if it.Path == path && it.Code == code {
			return true
		}
	}
	return false
}

func TestValidate_NumericBounds(t *testing.T) {
	m := dsl.Define("User").
		Property("age", schemac.Integer(), schemac.Constraints{"minimum": 0, "maximum": 120}).
		MustBuild(bareConfig())

	if iss := m.Validate(map[string]any{"age": 42}); len(iss) != 0 {
		t.Fatalf("42 expected valid, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"age": -1}); !hasIssue(iss, "age", schemac.CodeTooSmall) {
		t.Fatalf("-1 expected too_small, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"age": 150}); !hasIssue(iss, "age", schemac.CodeTooBig) {
		t.Fatalf("150 expected too_big, got %v", iss)
	}
	if iss := m.Validate(map[string]any{}); !hasIssue(iss, "age", schemac.CodeBlank) {
		t.Fatalf("missing expected blank, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"age": "old"}); !hasIssue(iss, "age", schemac.CodeInvalidType) {
		t.Fatalf("string expected invalid_type, got %v", iss)
	}
	// booleans never coerce into numbers
	if iss := m.Validate(map[string]any{"age": true}); !hasIssue(iss, "age", schemac.CodeInvalidType) {
		t.Fatalf("true expected invalid_type, got %v", iss)
	}
	// json.Number flows through the same numeric tower
	if iss := m.Validate(map[string]any{"age": json.Number("120")}); len(iss) != 0 {
		t.Fatalf("json.Number(120) expected valid, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"age": 1.5}); !hasIssue(iss, "age", schemac.CodeInvalidType) {
		t.Fatalf("1.5 expected invalid_type for integer, got %v", iss)
	}
}

func TestValidate_AccumulatesAllViolations(t *testing.T) {
	m := dsl.Define("User").
		Property("name", schemac.String(), schemac.Constraints{"minLength": 3}).
		Property("age", schemac.Integer(), schemac.Constraints{"minimum": 0}).
		MustBuild(bareConfig())

	iss := m.Validate(map[string]any{"name": "ab", "age": -1})
	if len(iss) != 2 {
		t.Fatalf("expected both violations, got %v", iss)
	}
	if !hasIssue(iss, "name", schemac.CodeTooShort) || !hasIssue(iss, "age", schemac.CodeTooSmall) {
		t.Fatalf("unexpected issues: %v", iss)
	}
}

func TestValidate_OptionalArray(t *testing.T) {
	m := dsl.Define("Post").
		Property("tags", schemac.ArrayOf(schemac.String()),
			schemac.Constraints{"optional": true, "uniqueItems": true, "maxItems": 3}).
		MustBuild(bareConfig())

	if iss := m.Validate(map[string]any{}); len(iss) != 0 {
		t.Fatalf("absent optional expected valid, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"tags": []any{}}); len(iss) != 0 {
		t.Fatalf("empty list expected valid, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"tags": []any{"a", "b"}}); len(iss) != 0 {
		t.Fatalf("expected valid, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"tags": []any{"a", "a"}}); !hasIssue(iss, "tags", schemac.CodeNotUnique) {
		t.Fatalf("expected not_unique, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"tags": []any{"a", "b", "c", "d"}}); !hasIssue(iss, "tags", schemac.CodeTooManyItems) {
		t.Fatalf("expected too_many_items, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"tags": []any{"a", 1}}); !hasIssue(iss, "tags[1]", schemac.CodeInvalidType) {
		t.Fatalf("expected invalid_type at tags[1], got %v", iss)
	}
	// optional governs key absence only; a present null on a non-nilable
	// declaration is still blank
	if iss := m.Validate(map[string]any{"tags": nil}); !hasIssue(iss, "tags", schemac.CodeBlank) {
		t.Fatalf("present null expected blank, got %v", iss)
	}
}

func TestValidate_RequiredArrayNil(t *testing.T) {
	m := dsl.Define("Post").
		Property("tags", schemac.ArrayOf(schemac.String())).
		MustBuild(bareConfig())

	if iss := m.Validate(map[string]any{"tags": nil}); !hasIssue(iss, "tags", schemac.CodeBlank) {
		t.Fatalf("nil required array expected blank, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"tags": []any{}}); len(iss) != 0 {
		t.Fatalf("empty required array expected valid, got %v", iss)
	}
}

func TestValidate_ClosedTuple(t *testing.T) {
	m := dsl.Define("Pair").
		Property("flags", schemac.TupleOf(schemac.Boolean(), schemac.Boolean()).Closed(),
			schemac.Constraints{"optional": true}).
		MustBuild(bareConfig())

	if iss := m.Validate(map[string]any{"flags": []any{true, false}}); len(iss) != 0 {
		t.Fatalf("expected valid, got %v", iss)
	}
	// unreached positional slots impose no constraint
	if iss := m.Validate(map[string]any{"flags": []any{true}}); len(iss) != 0 {
		t.Fatalf("short tuple expected valid, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"flags": []any{}}); len(iss) != 0 {
		t.Fatalf("empty tuple expected valid, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"flags": []any{true, false, nil}}); !hasIssue(iss, "flags", schemac.CodeExtraItems) {
		t.Fatalf("expected extra_items, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"flags": []any{1, false}}); !hasIssue(iss, "flags[0]", schemac.CodeInvalidType) {
		t.Fatalf("expected invalid_type at flags[0], got %v", iss)
	}
}

func TestValidate_TupleLengthFloor(t *testing.T) {
	// minItems expresses the length floor the positional slots do not
	m := dsl.Define("Pair").
		Property("flags", schemac.TupleOf(schemac.Boolean(), schemac.Boolean()).Closed(),
			schemac.Constraints{"minItems": 2}).
		MustBuild(bareConfig())

	if iss := m.Validate(map[string]any{"flags": []any{true}}); !hasIssue(iss, "flags", schemac.CodeTooFewItems) {
		t.Fatalf("expected too_few_items from minItems, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"flags": []any{true, false}}); len(iss) != 0 {
		t.Fatalf("expected valid, got %v", iss)
	}
}

func TestValidate_TypedRest(t *testing.T) {
	m := dsl.Define("Row").
		Property("cells", schemac.TupleOf(schemac.String()).WithRest(schemac.Integer())).
		MustBuild(bareConfig())

	if iss := m.Validate(map[string]any{"cells": []any{"id", 1, 2}}); len(iss) != 0 {
		t.Fatalf("expected valid, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"cells": []any{"id", 1, "x"}}); !hasIssue(iss, "cells[2]", schemac.CodeInvalidType) {
		t.Fatalf("expected invalid_type at cells[2], got %v", iss)
	}
}

func TestValidate_NilableOrthogonality(t *testing.T) {
	m := dsl.Define("Person").
		Property("nick", schemac.Nilable(schemac.String()), schemac.Constraints{"minLength": 2}).
		MustBuild(bareConfig())

	// required nilable: the key must be present, null is fine
	if iss := m.Validate(map[string]any{}); !hasIssue(iss, "nick", schemac.CodeBlank) {
		t.Fatalf("absent expected blank, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"nick": nil}); len(iss) != 0 {
		t.Fatalf("explicit null expected valid, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"nick": "jo"}); len(iss) != 0 {
		t.Fatalf("expected valid, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"nick": "j"}); !hasIssue(iss, "nick", schemac.CodeTooShort) {
		t.Fatalf("expected too_short, got %v", iss)
	}
}

func TestValidate_StringFormats(t *testing.T) {
	m := dsl.Define("Contact").
		Property("email", schemac.String(), schemac.Constraints{"format": "email"}).
		Property("ref", schemac.String(), schemac.Constraints{"format": "made-up", "optional": true}).
		MustBuild(bareConfig())

	if iss := m.Validate(map[string]any{"email": "a@example.com"}); len(iss) != 0 {
		t.Fatalf("expected valid, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"email": "not-an-email"}); !hasIssue(iss, "email", schemac.CodeInvalidFormat) {
		t.Fatalf("expected invalid_format, got %v", iss)
	}
	// unknown formats are annotations and always pass
	if iss := m.Validate(map[string]any{"email": "a@example.com", "ref": "anything"}); len(iss) != 0 {
		t.Fatalf("unknown format expected to pass, got %v", iss)
	}
	// required empty string reports blank, not too_short
	if iss := m.Validate(map[string]any{"email": ""}); !hasIssue(iss, "email", schemac.CodeBlank) {
		t.Fatalf("empty string expected blank, got %v", iss)
	}
}

func TestValidate_DateKinds(t *testing.T) {
	m := dsl.Define("Event").
		Property("day", schemac.Date()).
		Property("at", schemac.DateTime(), schemac.Constraints{"optional": true}).
		MustBuild(bareConfig())

	if iss := m.Validate(map[string]any{"day": "2026-08-30", "at": "2026-08-30T12:00:00Z"}); len(iss) != 0 {
		t.Fatalf("expected valid, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"day": "08/30/2026"}); !hasIssue(iss, "day", schemac.CodeInvalidFormat) {
		t.Fatalf("expected invalid_format, got %v", iss)
	}
}

func TestValidate_EnumAndConst(t *testing.T) {
	m := dsl.Define("Setting").
		Property("level", schemac.Integer(), schemac.Constraints{"enum": []any{1, 2, 3}}).
		Property("kind", schemac.String(), schemac.Constraints{"const": "fixed", "optional": true}).
		MustBuild(bareConfig())

	// 1.0 matches 1 through the numeric tower
	if iss := m.Validate(map[string]any{"level": 1.0}); len(iss) != 0 {
		t.Fatalf("1.0 expected to match enum 1, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"level": 4}); !hasIssue(iss, "level", schemac.CodeNotIncluded) {
		t.Fatalf("expected not_included, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"level": 2, "kind": "other"}); !hasIssue(iss, "kind", schemac.CodeNotEqual) {
		t.Fatalf("expected not_equal, got %v", iss)
	}
}

func TestValidate_EnumOnCompoundValues(t *testing.T) {
	m := dsl.Define("Move").
		Property("pair", schemac.ArrayOf(schemac.Integer()),
			schemac.Constraints{"enum": []any{[]any{1, 2}, []any{3, 4}}}).
		MustBuild(bareConfig())

	if iss := m.Validate(map[string]any{"pair": []any{1, 2}}); len(iss) != 0 {
		t.Fatalf("expected valid, got %v", iss)
	}
	// numeric tower applies inside compound values too
	if iss := m.Validate(map[string]any{"pair": []any{1.0, 2}}); len(iss) != 0 {
		t.Fatalf("expected 1.0 to match enum 1, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"pair": []any{1, 3}}); !hasIssue(iss, "pair", schemac.CodeNotIncluded) {
		t.Fatalf("expected not_included, got %v", iss)
	}
}

func TestValidate_MultipleOf(t *testing.T) {
	m := dsl.Define("Price").
		Property("cents", schemac.Integer(), schemac.Constraints{"multipleOf": 5}).
		Property("amount", schemac.Number(),
			schemac.Constraints{"multipleOf": json.Number("0.1"), "optional": true}).
		MustBuild(bareConfig())

	if iss := m.Validate(map[string]any{"cents": 10}); len(iss) != 0 {
		t.Fatalf("10 expected valid, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"cents": 7}); !hasIssue(iss, "cents", schemac.CodeNotMultiple) {
		t.Fatalf("7 expected not_a_multiple, got %v", iss)
	}
	// exact decimal arithmetic: 0.3 is a multiple of 0.1
	if iss := m.Validate(map[string]any{"cents": 5, "amount": json.Number("0.3")}); len(iss) != 0 {
		t.Fatalf("0.3 expected multiple of 0.1, got %v", iss)
	}
}

func TestValidate_NestedModel(t *testing.T) {
	profile := dsl.Define("Profile").
		Property("city", schemac.String()).
		Property("zip", schemac.String(), schemac.Constraints{"minLength": 5}).
		MustBuild(bareConfig())

	m := dsl.Define("User").
		Property("profile", profile).
		MustBuild(bareConfig())

	// an effectively empty nested object collapses into one blank on the parent
	iss := m.Validate(map[string]any{"profile": map[string]any{}})
	if len(iss) != 1 || !hasIssue(iss, "profile", schemac.CodeBlank) {
		t.Fatalf("expected single blank at profile, got %v", iss)
	}
	iss = m.Validate(map[string]any{"profile": map[string]any{"city": "", "zip": nil}})
	if len(iss) != 1 || !hasIssue(iss, "profile", schemac.CodeBlank) {
		t.Fatalf("expected single blank at profile, got %v", iss)
	}

	// partial values recurse with dotted paths
	iss = m.Validate(map[string]any{"profile": map[string]any{"city": "Tokyo", "zip": "123"}})
	if !hasIssue(iss, "profile.zip", schemac.CodeTooShort) {
		t.Fatalf("expected too_short at profile.zip, got %v", iss)
	}

	if iss := m.Validate(map[string]any{"profile": "downtown"}); !hasIssue(iss, "profile", schemac.CodeInvalidType) {
		t.Fatalf("expected invalid_type, got %v", iss)
	}
}

func TestValidate_NestedBlankCollapseEmptyContainers(t *testing.T) {
	profile := dsl.Define("Profile").
		Property("city", schemac.String()).
		Property("tags", schemac.ArrayOf(schemac.String())).
		MustBuild(bareConfig())

	m := dsl.Define("User").
		Property("profile", profile).
		MustBuild(bareConfig())

	// empty containers count as empty for the collapse
	iss := m.Validate(map[string]any{"profile": map[string]any{"city": "", "tags": []any{}}})
	if len(iss) != 1 || !hasIssue(iss, "profile", schemac.CodeBlank) {
		t.Fatalf("expected single blank at profile, got %v", iss)
	}
}

func TestValidate_ArrayOfModels(t *testing.T) {
	item := dsl.Define("Item").
		Property("sku", schemac.String()).
		MustBuild(bareConfig())

	m := dsl.Define("Order").
		Property("items", schemac.ArrayOf(schemac.Ref(item))).
		MustBuild(bareConfig())

	iss := m.Validate(map[string]any{"items": []any{
		map[string]any{"sku": "a-1"},
		map[string]any{},
	}})
	if !hasIssue(iss, "items[1].sku", schemac.CodeBlank) {
		t.Fatalf("expected blank at items[1].sku, got %v", iss)
	}
}

func TestValidate_SelfReference(t *testing.T) {
	m := dsl.Define("Node").
		Property("value", schemac.Integer()).
		Property("next", schemac.SelfRef(), schemac.Constraints{"optional": true}).
		MustBuild(bareConfig())

	ok := map[string]any{"value": 1, "next": map[string]any{"value": 2}}
	if iss := m.Validate(ok); len(iss) != 0 {
		t.Fatalf("expected valid, got %v", iss)
	}
	bad := map[string]any{"value": 1, "next": map[string]any{"value": "two"}}
	if iss := m.Validate(bad); !hasIssue(iss, "next.value", schemac.CodeInvalidType) {
		t.Fatalf("expected invalid_type at next.value, got %v", iss)
	}
}

func TestValidate_Compositions(t *testing.T) {
	cat := dsl.Define("Cat").Property("meow", schemac.Boolean()).MustBuild(bareConfig())
	dog := dsl.Define("Dog").Property("bark", schemac.Boolean()).MustBuild(bareConfig())
	cfg := bareConfig()
	cfg.AdditionalProperties = false

	anyPet := dsl.Define("AnyPet").
		Property("pet", schemac.AnyOf(cat, dog)).
		MustBuild(cfg)
	if iss := anyPet.Validate(map[string]any{"pet": map[string]any{"meow": true}}); len(iss) != 0 {
		t.Fatalf("expected valid, got %v", iss)
	}
	if iss := anyPet.Validate(map[string]any{"pet": map[string]any{"quack": true}}); !hasIssue(iss, "pet", schemac.CodeNoMatch) {
		t.Fatalf("expected no_match, got %v", iss)
	}

	onePet := dsl.Define("OnePet").
		Property("pet", schemac.OneOf(cat, dog)).
		MustBuild(cfg)
	// matches both branches: each model only requires its own property
	both := map[string]any{"meow": true, "bark": true}
	if iss := onePet.Validate(map[string]any{"pet": both}); !hasIssue(iss, "pet", schemac.CodeAmbiguous) {
		t.Fatalf("expected ambiguous, got %v", iss)
	}

	fullPet := dsl.Define("FullPet").
		Property("pet", schemac.AllOf(cat, dog)).
		MustBuild(cfg)
	iss := fullPet.Validate(map[string]any{"pet": map[string]any{"meow": true}})
	if !hasIssue(iss, "pet.bark", schemac.CodeBlank) {
		t.Fatalf("expected blank at pet.bark, got %v", iss)
	}
}

func TestValidate_SchemaLevelKeywords(t *testing.T) {
	m := dsl.Define("Payment").
		Property("credit_card", schemac.String(), schemac.Constraints{"optional": true}).
		Property("billing_address", schemac.String(), schemac.Constraints{"optional": true}).
		Property("active", schemac.Boolean(), schemac.Constraints{"optional": true}).
		MinProperties(1).
		DependentRequired("credit_card", "billing_address").
		MustBuild(bareConfig())

	// false is a present value, nil is not
	if iss := m.Validate(map[string]any{"active": false}); len(iss) != 0 {
		t.Fatalf("false expected to count as present, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"active": nil}); !hasIssue(iss, "", schemac.CodeTooFewProperties) {
		t.Fatalf("nil expected to count as absent, got %v", iss)
	}

	// the dependency fires only when the trigger carries a value
	iss := m.Validate(map[string]any{"credit_card": "4111"})
	if !hasIssue(iss, "billing_address", schemac.CodeRequiredDependency) {
		t.Fatalf("expected required_dependency, got %v", iss)
	}
	iss = m.Validate(map[string]any{"credit_card": nil, "active": true})
	if hasIssue(iss, "billing_address", schemac.CodeRequiredDependency) {
		t.Fatalf("nil trigger must not fire the dependency, got %v", iss)
	}
	if !hasIssue(iss, "credit_card", schemac.CodeBlank) {
		t.Fatalf("present null expected blank, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"credit_card": "4111", "billing_address": "1 Main St"}); len(iss) != 0 {
		t.Fatalf("satisfied dependency expected valid, got %v", iss)
	}
}

func TestValidate_Disabled(t *testing.T) {
	m := dsl.Define("Loose").
		Property("age", schemac.Integer(), schemac.Constraints{"minimum": 0, "validate": false}).
		MustBuild(bareConfig())

	if iss := m.Validate(map[string]any{"age": -100}); len(iss) != 0 {
		t.Fatalf("disabled validation expected to pass, got %v", iss)
	}
	if n := m.Validators().Len(); n != 0 {
		t.Fatalf("expected no registered rules, got %d", n)
	}
}

func TestValidate_RenamedPropertyUsesInternalName(t *testing.T) {
	m := dsl.Define("User").
		Property("userName", schemac.String(), schemac.Constraints{"as": "user_name", "minLength": 2}).
		MustBuild(bareConfig())

	// the document key is renamed but rules keep addressing the declared name
	if iss := m.Validate(map[string]any{"userName": "jo"}); len(iss) != 0 {
		t.Fatalf("expected valid, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"user_name": "jo"}); !hasIssue(iss, "userName", schemac.CodeBlank) {
		t.Fatalf("expected blank at userName, got %v", iss)
	}
}

func TestValidate_Union(t *testing.T) {
	m := dsl.Define("Flex").
		Property("id", schemac.UnionOf(schemac.String(), schemac.Integer())).
		MustBuild(bareConfig())

	if iss := m.Validate(map[string]any{"id": "abc"}); len(iss) != 0 {
		t.Fatalf("string expected valid, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"id": 7}); len(iss) != 0 {
		t.Fatalf("int expected valid, got %v", iss)
	}
	if iss := m.Validate(map[string]any{"id": true}); !hasIssue(iss, "id", schemac.CodeInvalidType) {
		t.Fatalf("bool expected invalid_type, got %v", iss)
	}
}
