package dsl_test

import (
	"errors"
	"testing"

	schemac "github.com/schemac/schemac"
	"github.com/schemac/schemac/dsl"
)

func TestBuild_InvalidPropertyName(t *testing.T) {
	_, err := dsl.Define("Bad").
		Property("1st", schemac.String()).
		Build(bareConfig())
	var nameErr *schemac.InvalidPropertyNameError
	if !errors.As(err, &nameErr) {
		t.Fatalf("expected InvalidPropertyNameError, got %v", err)
	}
	if nameErr.Name != "1st" {
		t.Fatalf("name=%q want %q", nameErr.Name, "1st")
	}
}

func TestBuild_DuplicatePropertyName(t *testing.T) {
	_, err := dsl.Define("Bad").
		Property("a", schemac.String()).
		Property("a", schemac.Integer()).
		Build(bareConfig())
	var nameErr *schemac.InvalidPropertyNameError
	if !errors.As(err, &nameErr) {
		t.Fatalf("expected InvalidPropertyNameError, got %v", err)
	}
}

func TestBuild_UnknownOption(t *testing.T) {
	_, err := dsl.Define("Bad").
		Property("age", schemac.Integer(), schemac.Constraints{"minLength": 1}).
		Build(bareConfig())
	var optErr *schemac.UnknownOptionError
	if !errors.As(err, &optErr) {
		t.Fatalf("expected UnknownOptionError, got %v", err)
	}
	if optErr.Property != "age" || optErr.Option != "minLength" {
		t.Fatalf("unexpected error detail: %+v", optErr)
	}
}

func TestBuild_ConstraintShape(t *testing.T) {
	_, err := dsl.Define("Bad").
		Property("name", schemac.String(), schemac.Constraints{"minLength": "one"}).
		Build(bareConfig())
	var consErr *schemac.ConstraintError
	if !errors.As(err, &consErr) {
		t.Fatalf("expected ConstraintError, got %v", err)
	}

	_, err = dsl.Define("Bad").
		Property("age", schemac.Integer(), schemac.Constraints{"enum": []any{1, "two"}}).
		Build(bareConfig())
	if !errors.As(err, &consErr) {
		t.Fatalf("expected ConstraintError for mixed enum, got %v", err)
	}
}

func TestBuild_EmptyTuple(t *testing.T) {
	_, err := dsl.Define("Bad").
		Property("pair", schemac.TupleOf()).
		Build(bareConfig())
	var consErr *schemac.ConstraintError
	if !errors.As(err, &consErr) {
		t.Fatalf("expected ConstraintError, got %v", err)
	}
}

func TestBuild_InvalidPattern(t *testing.T) {
	_, err := dsl.Define("Bad").
		Property("name", schemac.String(), schemac.Constraints{"pattern": "("}).
		Build(bareConfig())
	var consErr *schemac.ConstraintError
	if !errors.As(err, &consErr) {
		t.Fatalf("expected ConstraintError, got %v", err)
	}
	if consErr.Constraint != "pattern" {
		t.Fatalf("constraint=%q want pattern", consErr.Constraint)
	}
}

func TestBuild_ConsumedOnce(t *testing.T) {
	b := dsl.Define("User").Property("a", schemac.String())
	if _, err := b.Build(bareConfig()); err != nil {
		t.Fatalf("first build err: %v", err)
	}
	if _, err := b.Build(bareConfig()); err == nil {
		t.Fatalf("expected second build to fail")
	}
}

func TestBuild_ScalarNamesAndModels(t *testing.T) {
	profile := dsl.Define("Profile").Property("city", schemac.String()).MustBuild(bareConfig())
	m := dsl.Define("User").
		Property("name", "string").
		Property("home", profile, schemac.Constraints{"optional": true}).
		MustBuild(bareConfig())
	if got := m.Properties()[0].Type.Kind; got != schemac.KindString {
		t.Fatalf("kind=%v want string", got)
	}
	if got := m.Properties()[1].Type.Kind; got != schemac.KindModel {
		t.Fatalf("kind=%v want model", got)
	}
}
