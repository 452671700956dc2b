// Package schemac compiles declarative model definitions into two artifacts
// that stay semantically consistent:
//
//   - a JSON Schema document (jsonschema.Schema), wire-compatible with
//     third-party validators, and
//   - a set of runtime validators (ValidatorSet) accumulating violations as
//     Issues (property path, code, message) instead of raising.
//
// Design policy:
//   - Keep only public types in the root package; detailed implementations
//     live under dsl/, validator/, and internal/.
//   - Both back ends consume the same classified Type and constraint map, so
//     the document and the validators cannot drift apart.
//   - Configuration is an explicit value threaded through compilation, not
//     ambient global state.
//
// Typical usage:
//
//	user := dsl.Define("User").
//	    Property("name", schemac.String(), schemac.Constraints{"minLength": 1}).
//	    Property("age", schemac.Integer(), schemac.Constraints{"minimum": 0, "maximum": 120}).
//	    MustBuild(schemac.DefaultConfig())
//
//	doc, err := user.JSON()
//	iss := user.Validate(instance)
package schemac
