// Package validator is the default validation back end. It translates each
// property declaration into a registered rule that mirrors the JSON Schema
// document produced for the same declaration: a value the rules accept is a
// value the document accepts.
//
// Rules accumulate every violation instead of failing fast, and report them
// as schemac.Issues with paths pointing at the offending property ("age",
// "profile.city", "tags[2]").
package validator
