package schemac

import (
	"errors"
	"fmt"
	"strings"
)

// Violation codes (exported consts for IDE completion and type safety by convention)
const (
	CodeBlank       = "blank"
	CodeInvalidType = "invalid_type"
	CodeTooShort    = "too_short"
	CodeTooLong     = "too_long"
	CodeTooSmall    = "too_small"
	CodeTooBig      = "too_big"
	CodeNotMultiple = "not_a_multiple"
	CodePattern     = "pattern"
	// Format/pattern issues on string-typed properties
	CodeInvalidFormat = "invalid_format"
	// Enum / const
	CodeNotIncluded = "not_included"
	CodeNotEqual    = "not_equal"
	// Arrays
	CodeTooFewItems  = "too_few_items"
	CodeTooManyItems = "too_many_items"
	CodeNotUnique    = "not_unique"
	CodeExtraItems   = "extra_items"
	// Object-level
	CodeTooFewProperties   = "too_few_properties"
	CodeTooManyProperties  = "too_many_properties"
	CodeRequiredDependency = "required_dependency"
	// Compositions
	CodeNoMatch   = "no_match"
	CodeAmbiguous = "ambiguous"
	// Structural walks
	CodeDepthExceeded = "depth_exceeded"
)

// Issue represents a single runtime validation violation. Violations are
// data, not exceptions: a validation pass collects every applicable Issue
// before reporting.
type Issue struct {
	Path    string // property path: dotted for nested objects ("profile.city"), bracketed for array elements ("items[2]")
	Code    string // one of the codes listed above
	Message string
	// Params carries structured parameters (e.g., {"min":1, "max":10, "got":42})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation violations that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. blank at age
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Prefixed returns a copy of the issues with every path re-attached under the
// parent path: dotted for object nesting, verbatim for bracketed segments.
func (iss Issues) Prefixed(parent string) Issues {
	if parent == "" || len(iss) == 0 {
		return iss
	}
	out := make(Issues, len(iss))
	for i, it := range iss {
		p := it.Path
		switch {
		case p == "":
			p = parent
		case p[0] == '[':
			p = parent + p
		default:
			p = parent + "." + p
		}
		out[i] = Issue{Path: p, Code: it.Code, Message: it.Message, Params: it.Params}
	}
	return out
}

// ---- compile-time errors ----
//
// These indicate a programming mistake in a schema declaration. They are
// never recovered automatically; building the schema fails loudly.

// ConstraintError reports a constraint whose value is shape-incompatible with
// the declared property type.
type ConstraintError struct {
	Property   string
	Constraint string
	Expected   string // description of the expected value shape
	Actual     any
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("schemac: property %q: constraint %q expects %s, got %#v",
		e.Property, e.Constraint, e.Expected, e.Actual)
}

// UnknownOptionError reports a constraint key that is not recognized for the
// property's type category.
type UnknownOptionError struct {
	Property string
	Option   string
	Category string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("schemac: property %q: unknown option %q for %s type",
		e.Property, e.Option, e.Category)
}

// InvalidPropertyNameError reports a property name that is not a usable
// identifier, or a duplicate declaration within the same schema.
type InvalidPropertyNameError struct {
	Name   string
	Reason string
}

func (e *InvalidPropertyNameError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("schemac: invalid property name %q: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("schemac: invalid property name %q", e.Name)
}

// DepthError reports pathological nesting during a structural walk. The walk
// is aborted and the error reported instead of overflowing the stack.
type DepthError struct {
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("schemac: maximum nesting depth %d exceeded", e.Limit)
}
