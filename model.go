package schemac

import (
	"strings"

	gojson "github.com/goccy/go-json"

	js "github.com/schemac/schemac/jsonschema"
)

// Property is one immutable declaration inside a model: a name, a classified
// type, and its constraint map. Declaration order is preserved; it determines
// the required-list order and validator registration order.
type Property struct {
	Name        string
	Type        *Type
	Constraints Constraints
}

// Model is the compiled artifact owning both back-end outputs: the JSON
// Schema document and the validator set. Models are built exactly once, at
// declaration time, and are immutable afterwards; concurrent validation of
// different instances against the same model is safe.
type Model struct {
	name        string
	title       string
	description string
	props       []Property
	keywords    ObjectKeywords
	cfg         Config

	id      string // resolved external $id ("" when none)
	version string // resolved $schema URI ("" when omitted)

	doc      *js.Schema // root document
	fragment *js.Schema // nested form: never carries $schema/$id
	set      ValidatorSet
	sealed   bool
}

// NewModel creates the artifact shell the builders fill in. The explicit id
// takes precedence over a base-URI generated one, which takes precedence over
// the global default.
func NewModel(name string, props []Property, kw ObjectKeywords, cfg Config, id, version, title, description string) *Model {
	m := &Model{
		name:        name,
		title:       title,
		description: description,
		props:       props,
		keywords:    kw,
		cfg:         cfg,
	}
	m.id = resolveID(name, id, cfg)
	if version == "" {
		version = cfg.SchemaVersion
	}
	m.version = js.VersionURI(version)
	return m
}

func resolveID(name, explicit string, cfg Config) string {
	if explicit != "" {
		return explicit
	}
	if cfg.BaseURI != "" {
		return strings.TrimRight(cfg.BaseURI, "/") + "/" + name + ".json"
	}
	return cfg.SchemaID
}

// Name returns the model name (used for $defs keys).
func (m *Model) Name() string { return m.name }

// Title returns the schema title.
func (m *Model) Title() string { return m.title }

// Description returns the schema description.
func (m *Model) Description() string { return m.description }

// Properties returns the ordered property declarations.
func (m *Model) Properties() []Property { return m.props }

// Keywords returns the object-level keyword declarations.
func (m *Model) Keywords() ObjectKeywords { return m.keywords }

// Config returns the configuration the model was compiled with.
func (m *Model) Config() Config { return m.cfg }

// ID returns the resolved external $id, or "" when the model has none.
func (m *Model) ID() string { return m.id }

// Version returns the resolved $schema URI, or "" when omitted.
func (m *Model) Version() string { return m.version }

// Validators returns the model's validator set. The adapter registers rules
// on it during compilation.
func (m *Model) Validators() *ValidatorSet { return &m.set }

// Document returns the memoized root JSON Schema document.
func (m *Model) Document() *js.Schema { return m.doc }

// Fragment returns the nested form of the document: identical to the root
// except it never emits $schema or $id.
func (m *Model) Fragment() *js.Schema { return m.fragment }

// SetDocument installs both document forms. A model is compiled exactly once;
// a second call panics, matching the declare-once lifecycle.
func (m *Model) SetDocument(root, fragment *js.Schema) {
	if m.sealed {
		panic("schemac: model " + m.name + " compiled twice")
	}
	m.doc = root
	m.fragment = fragment
	m.sealed = true
}

// Validate runs every registered validator against the instance and returns
// the accumulated violations. An empty result means the instance is valid.
func (m *Model) Validate(instance map[string]any) Issues {
	return m.set.Validate(instance)
}

// Valid reports whether the instance passes every registered validator.
func (m *Model) Valid(instance map[string]any) bool {
	return len(m.Validate(instance)) == 0
}

// JSON serializes the root document.
func (m *Model) JSON() ([]byte, error) {
	return gojson.Marshal(m.doc)
}

// JSONIndent serializes the root document with indentation.
func (m *Model) JSONIndent() ([]byte, error) {
	return gojson.MarshalIndent(m.doc, "", "  ")
}
