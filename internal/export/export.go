package export

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"substruct-generator/internal/naming"
	"substruct-generator/internal/plan"
)

// Version of the document layout.
const Version = "1"

// Document is the exported form of a set of patch schemas.
type Document struct {
	Version   string          `yaml:"version"`
	Session   string          `yaml:"session,omitempty"`
	Patches   []Patch         `yaml:"patches"`
	Names     []naming.Entry  `yaml:"names,omitempty"`
	Behaviors []KindBehaviors `yaml:"behaviors,omitempty"`
}

// Patch is one exported patch type.
type Patch struct {
	Record      string  `yaml:"record"`
	Name        string  `yaml:"name"`
	Fingerprint string  `yaml:"fingerprint"`
	Fields      []Field `yaml:"fields"`
}

// Field is one exported field plan.
type Field struct {
	Name string    `yaml:"name"`
	Kind plan.Kind `yaml:"kind"`
	// Type is the declared value type, or the target record of a nested plan.
	Type string `yaml:"type,omitempty"`
	// PatchType is the patch-side type of the field.
	PatchType string `yaml:"patch_type"`
	Nested    string `yaml:"nested,omitempty"`
}

// KindBehaviors is the behavior table row set of one plan kind.
type KindBehaviors struct {
	Kind       plan.Kind `yaml:"kind"`
	Operations []Rule    `yaml:"operations"`
}

// Rule describes how one operation treats a field of the enclosing kind.
type Rule struct {
	Operation plan.Operation `yaml:"op"`
	Behavior  string         `yaml:"behavior"`
}

// Option tunes a document.
type Option func(*Document)

// WithSession stamps the document with a session id.
func WithSession(id string) Option {
	return func(d *Document) { d.Session = id }
}

// WithNames records the resolved names of a registry.
func WithNames(r *naming.Registry) Option {
	return func(d *Document) { d.Names = r.Entries() }
}

// FromSchemas exports schemas in the given order. The behavior table lists
// only the kinds that appear in the schemas, in declaration order.
func FromSchemas(schemas []*plan.Schema, opts ...Option) *Document {
	doc := &Document{
		Version: Version,
		Patches: make([]Patch, 0, len(schemas)),
	}

	used := map[plan.Kind]bool{}

	for _, s := range schemas {
		p := Patch{
			Record:      s.Record,
			Name:        s.Name,
			Fingerprint: s.Fingerprint(),
			Fields:      make([]Field, 0, s.Len()),
		}

		for _, f := range s.Fields {
			p.Fields = append(p.Fields, Field{
				Name:      f.Name,
				Kind:      f.Kind,
				Type:      f.Type,
				PatchType: f.TypeString(),
				Nested:    f.NestedName,
			})
			used[f.Kind] = true
		}

		doc.Patches = append(doc.Patches, p)
	}

	for _, k := range plan.Kinds {
		if used[k] {
			doc.Behaviors = append(doc.Behaviors, behaviorsOf(k))
		}
	}

	for _, opt := range opts {
		opt(doc)
	}

	return doc
}

func behaviorsOf(k plan.Kind) KindBehaviors {
	kb := KindBehaviors{Kind: k, Operations: make([]Rule, 0, len(plan.Operations))}
	for _, op := range plan.Operations {
		kb.Operations = append(kb.Operations, Rule{Operation: op, Behavior: plan.Behavior(k, op)})
	}

	return kb
}

// Lookup returns the exported patch of the named record.
func (d *Document) Lookup(record string) (Patch, bool) {
	for _, p := range d.Patches {
		if p.Record == record {
			return p, true
		}
	}

	return Patch{}, false
}

// Marshal renders the document as YAML.
func Marshal(doc *Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// Write renders the document as YAML to w.
func Write(w io.Writer, doc *Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}

	_, err = w.Write(data)

	return err
}

// WriteFile writes the document to path.
func WriteFile(path string, doc *Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
