// Package dsl is the declaration surface of the compiler. A Define builder
// accumulates ordered property declarations and schema-level keywords, and
// Build consumes the accumulator exactly once to produce a compiled
// schemac.Model: the JSON Schema document and the registered validator set.
//
// Example:
//
//	user := dsl.Define("User").
//	    Property("name", schemac.String(), schemac.Constraints{"minLength": 1}).
//	    Property("age", schemac.Integer(), schemac.Constraints{"minimum": 0, "maximum": 120}).
//	    Property("tags", schemac.ArrayOf(schemac.String()), schemac.Constraints{"optional": true}).
//	    MustBuild(schemac.DefaultConfig())
package dsl
