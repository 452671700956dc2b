package dsl_test

import (
	"encoding/json"
	"testing"

	jsv "github.com/santhosh-tekuri/jsonschema/v5"

	schemac "github.com/schemac/schemac"
	"github.com/schemac/schemac/dsl"
)

// Both back ends compile from the same declaration, so an independent JSON
// Schema engine evaluating the emitted document must agree with the runtime
// validator set on every instance.
func TestRoundTrip_DocumentAgreesWithValidators(t *testing.T) {
	m := dsl.Define("User").
		Property("name", schemac.String(), schemac.Constraints{"minLength": 1, "maxLength": 10}).
		Property("age", schemac.Integer(), schemac.Constraints{"minimum": 0, "maximum": 120}).
		Property("tags", schemac.ArrayOf(schemac.String()),
			schemac.Constraints{"optional": true, "uniqueItems": true}).
		Property("nick", schemac.Nilable(schemac.String()), schemac.Constraints{"optional": true}).
		MustBuild(schemac.Config{SchemaVersion: "draft-07"})

	doc, err := m.JSON()
	if err != nil {
		t.Fatalf("serialize err: %v", err)
	}
	compiled, err := jsv.CompileString("user.json", string(doc))
	if err != nil {
		t.Fatalf("compile emitted document: %v", err)
	}

	cases := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"full valid", `{"name":"ann","age":30,"tags":["a","b"],"nick":null}`, true},
		{"minimal valid", `{"name":"ann","age":0}`, true},
		{"age below minimum", `{"name":"ann","age":-1}`, false},
		{"age above maximum", `{"name":"ann","age":150}`, false},
		{"age wrong type", `{"name":"ann","age":"old"}`, false},
		{"name too short", `{"name":"","age":30}`, false},
		{"name missing", `{"age":30}`, false},
		{"duplicate tags", `{"name":"ann","age":30,"tags":["a","a"]}`, false},
		{"tag wrong type", `{"name":"ann","age":30,"tags":[1]}`, false},
		{"nilable set", `{"name":"ann","age":30,"nick":"a"}`, true},
	}
	for _, tc := range cases {
		var plain any
		if err := json.Unmarshal([]byte(tc.raw), &plain); err != nil {
			t.Fatalf("%s: unmarshal: %v", tc.name, err)
		}
		schemaVerdict := compiled.Validate(plain) == nil

		instance, err := schemac.ParseInstance([]byte(tc.raw))
		if err != nil {
			t.Fatalf("%s: parse instance: %v", tc.name, err)
		}
		runtimeVerdict := m.Valid(instance)

		if schemaVerdict != tc.valid || runtimeVerdict != tc.valid {
			t.Fatalf("%s: schema=%v runtime=%v want %v (issues=%v)",
				tc.name, schemaVerdict, runtimeVerdict, tc.valid, m.Validate(instance))
		}
	}
}
