// Package modelyaml imports declarative model definitions from YAML. A
// document carries one model: its properties with type nodes and constraint
// maps, plus the object-level keywords. Multi-document files compile in
// order, and later documents may reference earlier models by name.
package modelyaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	schemac "github.com/schemac/schemac"
	"github.com/schemac/schemac/dsl"
)

type modelDoc struct {
	Name          string        `yaml:"name"`
	Title         string        `yaml:"title"`
	Description   string        `yaml:"description"`
	ID            string        `yaml:"id"`
	SchemaVersion string        `yaml:"schemaVersion"`
	Properties    []propertyDoc `yaml:"properties"`

	MinProperties        *int                `yaml:"minProperties"`
	MaxProperties        *int                `yaml:"maxProperties"`
	DependentRequired    map[string][]string `yaml:"dependentRequired"`
	AdditionalProperties any                 `yaml:"additionalProperties"`
}

type propertyDoc struct {
	Name        string         `yaml:"name"`
	Type        any            `yaml:"type"`
	Constraints map[string]any `yaml:"constraints"`
}

// Import compiles the first YAML document in data into a model.
func Import(data []byte, cfg schemac.Config) (*schemac.Model, error) {
	models, err := ImportAll(data, cfg)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, errors.New("modelyaml: no model document found")
	}
	return models[0], nil
}

// ImportAll compiles every document in a multi-document YAML stream, in
// order. Type nodes may reference previously compiled models by name.
func ImportAll(data []byte, cfg schemac.Config) ([]*schemac.Model, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	registry := map[string]*schemac.Model{}
	var models []*schemac.Model
	for {
		var doc modelDoc
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("modelyaml: decode: %w", err)
		}
		if doc.Name == "" {
			return nil, errors.New("modelyaml: model document missing name")
		}
		m, err := compileDoc(doc, registry, cfg)
		if err != nil {
			return nil, err
		}
		registry[doc.Name] = m
		models = append(models, m)
	}
	return models, nil
}

func compileDoc(doc modelDoc, registry map[string]*schemac.Model, cfg schemac.Config) (*schemac.Model, error) {
	b := dsl.Define(doc.Name)
	if doc.Title != "" {
		b.Title(doc.Title)
	}
	if doc.Description != "" {
		b.Description(doc.Description)
	}
	if doc.ID != "" {
		b.ID(doc.ID)
	}
	if doc.SchemaVersion != "" {
		b.SchemaVersion(doc.SchemaVersion)
	}
	for _, p := range doc.Properties {
		t, err := buildType(doc.Name, p.Name, p.Type, registry)
		if err != nil {
			return nil, err
		}
		if len(p.Constraints) > 0 {
			b.Property(p.Name, t, schemac.Constraints(normalizeValue(p.Constraints).(map[string]any)))
		} else {
			b.Property(p.Name, t)
		}
	}
	if doc.MinProperties != nil {
		b.MinProperties(*doc.MinProperties)
	}
	if doc.MaxProperties != nil {
		b.MaxProperties(*doc.MaxProperties)
	}
	for key, deps := range doc.DependentRequired {
		b.DependentRequired(key, deps...)
	}
	if doc.AdditionalProperties != nil {
		switch v := doc.AdditionalProperties.(type) {
		case bool:
			b.AdditionalProperties(v)
		default:
			t, err := buildType(doc.Name, "additionalProperties", v, registry)
			if err != nil {
				return nil, err
			}
			b.AdditionalProperties(t)
		}
	}
	return b.Build(cfg)
}

// buildType resolves one YAML type node. A scalar string is a type name, or
// the name of a previously compiled model. A mapping selects a compound form
// by its single recognized key.
func buildType(model, prop string, node any, registry map[string]*schemac.Model) (*schemac.Type, error) {
	switch t := node.(type) {
	case nil:
		return schemac.Object(), nil
	case string:
		if m, ok := registry[t]; ok {
			return schemac.Ref(m), nil
		}
		return schemac.Classify(t), nil
	case map[string]any:
		return buildCompoundType(model, prop, t, registry)
	default:
		return nil, fmt.Errorf("modelyaml: %s.%s: unsupported type node %T", model, prop, node)
	}
}

func buildCompoundType(model, prop string, node map[string]any, registry map[string]*schemac.Model) (*schemac.Type, error) {
	if elem, ok := node["array"]; ok {
		et, err := buildType(model, prop, elem, registry)
		if err != nil {
			return nil, err
		}
		return schemac.ArrayOf(et), nil
	}
	if slots, ok := node["tuple"]; ok {
		list, ok := slots.([]any)
		if !ok {
			return nil, fmt.Errorf("modelyaml: %s.%s: tuple expects a sequence of type nodes", model, prop)
		}
		st := make([]*schemac.Type, len(list))
		for i, s := range list {
			t, err := buildType(model, prop, s, registry)
			if err != nil {
				return nil, err
			}
			st[i] = t
		}
		tup := schemac.TupleOf(st...)
		if rest, ok := node["rest"]; ok {
			switch rv := rest.(type) {
			case bool:
				if !rv {
					tup.Closed()
				}
			default:
				rt, err := buildType(model, prop, rest, registry)
				if err != nil {
					return nil, err
				}
				tup.WithRest(rt)
			}
		}
		return tup, nil
	}
	if inner, ok := node["nilable"]; ok {
		it, err := buildType(model, prop, inner, registry)
		if err != nil {
			return nil, err
		}
		return schemac.Nilable(it), nil
	}
	if name, ok := node["model"]; ok {
		s, ok := name.(string)
		if !ok {
			return nil, fmt.Errorf("modelyaml: %s.%s: model expects a name", model, prop)
		}
		m, ok := registry[s]
		if !ok {
			return nil, fmt.Errorf("modelyaml: %s.%s: unknown model %q", model, prop, s)
		}
		return schemac.Ref(m), nil
	}
	if members, ok := node["union"]; ok {
		list, ok := members.([]any)
		if !ok {
			return nil, fmt.Errorf("modelyaml: %s.%s: union expects a sequence of type nodes", model, prop)
		}
		mt := make([]*schemac.Type, len(list))
		for i, mm := range list {
			t, err := buildType(model, prop, mm, registry)
			if err != nil {
				return nil, err
			}
			mt[i] = t
		}
		return schemac.UnionOf(mt...), nil
	}
	for key, mode := range compositionKeys {
		names, ok := node[key]
		if !ok {
			continue
		}
		list, ok := names.([]any)
		if !ok {
			return nil, fmt.Errorf("modelyaml: %s.%s: %s expects a sequence of model names", model, prop, key)
		}
		ms := make([]*schemac.Model, len(list))
		for i, n := range list {
			s, ok := n.(string)
			if !ok {
				return nil, fmt.Errorf("modelyaml: %s.%s: %s expects model names", model, prop, key)
			}
			m, found := registry[s]
			if !found {
				return nil, fmt.Errorf("modelyaml: %s.%s: unknown model %q", model, prop, s)
			}
			ms[i] = m
		}
		switch mode {
		case schemac.CompositionAllOf:
			return schemac.AllOf(ms...), nil
		case schemac.CompositionOneOf:
			return schemac.OneOf(ms...), nil
		default:
			return schemac.AnyOf(ms...), nil
		}
	}
	return nil, fmt.Errorf("modelyaml: %s.%s: unrecognized type node", model, prop)
}

var compositionKeys = map[string]schemac.CompositionMode{
	"anyOf": schemac.CompositionAnyOf,
	"allOf": schemac.CompositionAllOf,
	"oneOf": schemac.CompositionOneOf,
}

// normalizeValue converts YAML-decoded values (which may contain
// map[any]any) into JSON-like values recursively.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = normalizeValue(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = normalizeValue(vv)
		}
		return out
	default:
		return v
	}
}
