package validator

import (
	"fmt"
	"math/big"
	"regexp"
	"sort"

	schemac "github.com/schemac/schemac"
	"github.com/schemac/schemac/i18n"
	"github.com/schemac/schemac/internal/equality"
)

// Adapter is the default validation back end.
type Adapter struct{}

// New returns the default adapter.
func New() *Adapter { return &Adapter{} }

var _ schemac.Adapter = (*Adapter)(nil)

// Apply compiles one property declaration into a validation rule and
// registers it on the host. Constraint values that cannot be compiled (an
// invalid pattern, a non-positive multipleOf) fail here, at declaration time.
func (a *Adapter) Apply(host *schemac.Model, name string, typ *schemac.Type, cons schemac.Constraints, cfg schemac.Config) error {
	if typ == nil {
		typ = schemac.Object()
	}
	if !cons.Bool(schemac.OptValidate, true) {
		return nil
	}
	r := &propRule{host: host, cfg: cfg, name: name, typ: typ, cons: cons}
	r.required = requiredFor(typ, cons, cfg)
	if err := r.prepare(); err != nil {
		return err
	}
	host.Validators().Add(r.validate)
	return nil
}

// ApplySchemaLevel registers the object-level rules: property counting and
// dependent requirements. Pattern and additional properties shape the
// document only.
func (a *Adapter) ApplySchemaLevel(host *schemac.Model, kw schemac.ObjectKeywords, cfg schemac.Config) error {
	set := host.Validators()
	if kw.MinProperties != nil || kw.MaxProperties != nil {
		min, max := kw.MinProperties, kw.MaxProperties
		set.Add(func(instance map[string]any) schemac.Issues {
			n := 0
			for _, v := range instance {
				if v != nil {
					n++
				}
			}
			var iss schemac.Issues
			if min != nil && n < *min {
				iss = append(iss, newIssue("", schemac.CodeTooFewProperties, map[string]any{"min": *min, "got": n}))
			}
			if max != nil && n > *max {
				iss = append(iss, newIssue("", schemac.CodeTooManyProperties, map[string]any{"max": *max, "got": n}))
			}
			return iss
		})
	}
	if len(kw.DependentRequired) > 0 {
		deps := kw.DependentRequired
		triggers := make([]string, 0, len(deps))
		for t := range deps {
			triggers = append(triggers, t)
		}
		sort.Strings(triggers)
		set.Add(func(instance map[string]any) schemac.Issues {
			var iss schemac.Issues
			for _, trigger := range triggers {
				tv, ok := instance[trigger]
				if !ok || tv == nil {
					continue
				}
				for _, dep := range deps[trigger] {
					if dv, present := instance[dep]; !present || dv == nil {
						iss = append(iss, newIssue(dep, schemac.CodeRequiredDependency,
							map[string]any{"dependency": trigger}))
					}
				}
			}
			return iss
		})
	}
	return nil
}

// requiredFor mirrors the document builder's required policy so that both
// back ends agree on which properties may be absent.
func requiredFor(typ *schemac.Type, cons schemac.Constraints, cfg schemac.Config) bool {
	if cons.Bool(schemac.OptOptional, false) {
		return false
	}
	if typ.Kind == schemac.KindNilable && cfg.NilableImpliesOptional {
		return false
	}
	return true
}

// propRule is one compiled property rule. Constraint values are converted
// once, at declaration time; validation touches only the prepared fields.
type propRule struct {
	host *schemac.Model
	cfg  schemac.Config
	name string
	typ  *schemac.Type
	cons schemac.Constraints

	required bool
	pattern  *regexp.Regexp

	minLen, maxLen     *int
	minItems, maxItems *int

	min, max   *big.Rat
	xmin, xmax *big.Rat
	mult       *big.Rat
}

func (r *propRule) prepare() error {
	if p := r.cons.String(schemac.OptPattern); p != "" {
		re, err := regexp.Compile(p)
		if err != nil {
			return &schemac.ConstraintError{Property: r.name, Constraint: schemac.OptPattern,
				Expected: "a valid regular expression", Actual: p}
		}
		r.pattern = re
	}
	r.minLen = intBound(r.cons[schemac.OptMinLength])
	r.maxLen = intBound(r.cons[schemac.OptMaxLength])
	r.minItems = intBound(r.cons[schemac.OptMinItems])
	r.maxItems = intBound(r.cons[schemac.OptMaxItems])
	r.min = ratBound(r.cons[schemac.OptMinimum])
	r.max = ratBound(r.cons[schemac.OptMaximum])
	r.xmin = ratBound(r.cons[schemac.OptExclusiveMinimum])
	r.xmax = ratBound(r.cons[schemac.OptExclusiveMaximum])
	if m, ok := r.cons[schemac.OptMultipleOf]; ok {
		rv, ok := equality.Rat(m)
		if !ok || rv.Sign() <= 0 {
			return &schemac.ConstraintError{Property: r.name, Constraint: schemac.OptMultipleOf,
				Expected: "a positive number", Actual: m}
		}
		r.mult = rv
	}
	return nil
}

// intBound converts a length/count bound. Negative or non-integer bounds are
// vacuous and compile to no check.
func intBound(v any) *int {
	if v == nil {
		return nil
	}
	n, ok := intFrom(v)
	if !ok || n < 0 {
		return nil
	}
	return &n
}

func ratBound(v any) *big.Rat {
	if v == nil {
		return nil
	}
	if rv, ok := equality.Rat(v); ok {
		return rv
	}
	return nil
}

func intFrom(v any) (int, bool) {
	rv, ok := equality.Rat(v)
	if !ok || !rv.IsInt() {
		return 0, false
	}
	return int(rv.Num().Int64()), true
}

// validate is the registered rule body: presence first, then value checks on
// a present non-null value.
func (r *propRule) validate(instance map[string]any) schemac.Issues {
	v, ok := instance[r.name]
	if !ok {
		if r.required {
			return schemac.Issues{newIssue(r.name, schemac.CodeBlank, nil)}
		}
		return nil
	}
	if v == nil {
		// An explicit null satisfies nilable and null declarations. For any
		// other declared type a present null is a blank value even when the
		// property is optional: optional governs key absence only.
		if r.typ.Kind == schemac.KindNilable || r.typ.Kind == schemac.KindNull {
			return nil
		}
		return schemac.Issues{newIssue(r.name, schemac.CodeBlank, nil)}
	}
	t := r.typ
	if t.Kind == schemac.KindNilable {
		t = t.Inner
	}
	if s, isStr := v.(string); isStr && s == "" && r.required && stringKind(t.Kind) {
		return schemac.Issues{newIssue(r.name, schemac.CodeBlank, nil)}
	}
	return r.checkValue(r.name, t, v)
}

func stringKind(k schemac.Kind) bool {
	switch k {
	case schemac.KindString, schemac.KindDate, schemac.KindDateTime, schemac.KindTime:
		return true
	}
	return false
}

func (r *propRule) modelTarget(m *schemac.Model) *schemac.Model {
	if m == nil {
		return r.host
	}
	return m
}

// newIssue builds an Issue carrying both the structured params and the
// translated message.
func newIssue(path, code string, params map[string]any) schemac.Issue {
	var data map[string]string
	if len(params) > 0 {
		data = make(map[string]string, len(params))
		for k, v := range params {
			data[k] = fmt.Sprint(v)
		}
	}
	return schemac.Issue{Path: path, Code: code, Message: i18n.T(code, data), Params: params}
}

func depthIssue(path string) schemac.Issue {
	return newIssue(path, schemac.CodeDepthExceeded, map[string]any{"limit": equality.MaxDepth})
}
