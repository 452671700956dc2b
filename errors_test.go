package schemac_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	schemac "github.com/schemac/schemac"
)

func TestIssues_Prefixed(t *testing.T) {
	iss := schemac.Issues{
		{Path: "city", Code: schemac.CodeBlank},
		{Path: "[2]", Code: schemac.CodeInvalidType},
		{Path: "", Code: schemac.CodeNoMatch},
	}
	got := iss.Prefixed("profile")
	if got[0].Path != "profile.city" {
		t.Fatalf("path=%q want profile.city", got[0].Path)
	}
	if got[1].Path != "profile[2]" {
		t.Fatalf("path=%q want profile[2]", got[1].Path)
	}
	if got[2].Path != "profile" {
		t.Fatalf("path=%q want profile", got[2].Path)
	}
}

func TestIssues_ErrorSummary(t *testing.T) {
	var iss schemac.Issues
	for i := 0; i < 5; i++ {
		iss = schemac.AppendIssues(iss, schemac.Issue{Path: fmt.Sprintf("p%d", i), Code: schemac.CodeBlank})
	}
	msg := iss.Error()
	if !strings.Contains(msg, "blank at p0") {
		t.Fatalf("summary missing first issue: %q", msg)
	}
	if !strings.Contains(msg, "total 5") {
		t.Fatalf("summary missing total: %q", msg)
	}
}

func TestAsIssues(t *testing.T) {
	var err error = schemac.Issues{{Path: "a", Code: schemac.CodeBlank}}
	iss, ok := schemac.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected extraction, got ok=%v iss=%v", ok, iss)
	}
	if _, ok := schemac.AsIssues(nil); ok {
		t.Fatalf("nil error must not extract")
	}
}

func TestParseInstance(t *testing.T) {
	m, err := schemac.ParseInstance([]byte(`{"age": 42, "rate": 0.5}`))
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if _, ok := m["age"].(json.Number); !ok {
		t.Fatalf("expected json.Number, got %T", m["age"])
	}
	if _, err := schemac.ParseInstance([]byte(`[1,2]`)); err == nil {
		t.Fatalf("expected error for non-object instance")
	}
}
