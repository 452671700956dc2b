package dsl

import (
	"errors"
	"regexp"

	schemac "github.com/schemac/schemac"
	"github.com/schemac/schemac/validator"
)

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Builder is the schema definition accumulator. Properties and keywords are
// collected in declaration order; Build consumes the accumulator exactly
// once.
type Builder struct {
	name        string
	props       []schemac.Property
	seen        map[string]struct{}
	kw          schemac.ObjectKeywords
	title       string
	description string
	version     string
	id          string
	built       bool
	err         error // first declaration-time error
}

// Define starts a schema definition block for the named model.
func Define(name string) *Builder {
	return &Builder{name: name, seen: map[string]struct{}{}}
}

// Property declares a property with its type and optional constraint map.
// The type may be a *schemac.Type, a *schemac.Model, or a scalar name;
// anything else classifies as the broad object type. Invalid or duplicate
// names are rejected at declaration time.
func (b *Builder) Property(name string, typ any, cons ...schemac.Constraints) *Builder {
	if b.err == nil && !identRE.MatchString(name) {
		b.err = &schemac.InvalidPropertyNameError{Name: name, Reason: "not a valid identifier"}
	}
	if _, dup := b.seen[name]; dup && b.err == nil {
		b.err = &schemac.InvalidPropertyNameError{Name: name, Reason: "already declared"}
	}
	b.seen[name] = struct{}{}
	var c schemac.Constraints
	if len(cons) > 0 {
		c = cons[0]
	}
	b.props = append(b.props, schemac.Property{Name: name, Type: schemac.Classify(typ), Constraints: c})
	return b
}

// Title sets the schema title.
func (b *Builder) Title(t string) *Builder { b.title = t; return b }

// Description sets the schema description.
func (b *Builder) Description(d string) *Builder { b.description = d; return b }

// SchemaVersion overrides the configured $schema for this model. Accepts a
// draft name, a full URI, or schemac.SchemaVersionNone.
func (b *Builder) SchemaVersion(v string) *Builder { b.version = v; return b }

// ID sets the explicit root $id.
func (b *Builder) ID(id string) *Builder { b.id = id; return b }

// MinProperties sets the minimum number of present properties.
func (b *Builder) MinProperties(n int) *Builder { b.kw.MinProperties = &n; return b }

// MaxProperties sets the maximum number of present properties.
func (b *Builder) MaxProperties(n int) *Builder { b.kw.MaxProperties = &n; return b }

// DependentRequired declares that when key is present, deps must be present
// too.
func (b *Builder) DependentRequired(key string, deps ...string) *Builder {
	if b.kw.DependentRequired == nil {
		b.kw.DependentRequired = map[string][]string{}
	}
	b.kw.DependentRequired[key] = deps
	return b
}

// PatternProperty maps a property-name pattern to a value type.
func (b *Builder) PatternProperty(pattern string, typ any) *Builder {
	if b.kw.PatternProperties == nil {
		b.kw.PatternProperties = map[string]*schemac.Type{}
	}
	b.kw.PatternProperties[pattern] = schemac.Classify(typ)
	return b
}

// AdditionalProperties overrides the configured default: a bool is emitted
// verbatim, a *schemac.Type compiles into a sub-schema.
func (b *Builder) AdditionalProperties(v any) *Builder {
	if t, ok := v.(*schemac.Type); ok {
		b.kw.AdditionalProperties = t
	} else {
		b.kw.AdditionalProperties = v
	}
	return b
}

// Build consumes the accumulator and compiles the model: every property
// fragment is built and merged into the document, and the configured
// validation back end registers the validator set. Compilation errors are
// fatal and indicate a mistake in the declaration.
func (b *Builder) Build(cfg schemac.Config) (*schemac.Model, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.built {
		return nil, errors.New("dsl: schema definition already built")
	}
	b.built = true

	m := schemac.NewModel(b.name, b.props, b.kw, cfg, b.id, b.version, b.title, b.description)

	root, fragment, err := compileDocument(m)
	if err != nil {
		return nil, err
	}

	adapter := cfg.Adapter
	if adapter == nil {
		adapter = validator.New()
	}
	for _, p := range b.props {
		if err := adapter.Apply(m, p.Name, p.Type, p.Constraints, cfg); err != nil {
			return nil, err
		}
	}
	if err := adapter.ApplySchemaLevel(m, b.kw, cfg); err != nil {
		return nil, err
	}

	m.SetDocument(root, fragment)
	return m, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild(cfg schemac.Config) *schemac.Model {
	m, err := b.Build(cfg)
	if err != nil {
		panic(err)
	}
	return m
}
