package plan

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"
)

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind is the patch shape chosen for a field.
type Kind int

const (
	_ Kind = iota // zero value is invalid

	KindDirect           // direct
	KindSettable         // settable
	KindSettableNullable // settable_nullable
	KindSettableOpaque   // settable_opaque
	KindSettableNested   // settable_nested
)

// Kinds lists every valid kind in declaration order.
var Kinds = []Kind{KindDirect, KindSettable, KindSettableNullable, KindSettableOpaque, KindSettableNested}

// IsDirect reports whether the field is carried as a bare, always-set value.
func (k Kind) IsDirect() bool {
	return k == KindDirect
}

// MarshalYAML implements yaml.Marshaler.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// FieldPlan is the canonical form of one patch field.
type FieldPlan struct {
	// Name of the field, shared by the record and the patch.
	Name string
	// Kind of patch shape.
	Kind Kind
	// Type is the value type T, or the target record for nested plans.
	// Empty for opaque plans.
	Type string
	// NestedName is the resolved name of the referenced patch type.
	NestedName string
	// Nested is the child schema of a nested plan.
	Nested *Schema
}

// TypeString renders the patch-side type of the field.
func (p FieldPlan) TypeString() string {
	switch p.Kind {
	case KindDirect:
		return p.Type
	case KindSettable:
		return "Settable[" + p.Type + "]"
	case KindSettableNullable:
		return "Settable[*" + p.Type + "]"
	case KindSettableOpaque:
		return "Settable[opaque]"
	case KindSettableNested:
		return "Settable[" + p.NestedName + "]"
	default:
		return p.Kind.String()
	}
}

// Schema is a resolved patch type: its name and ordered field plans.
type Schema struct {
	// Record is the source record the patch applies to.
	Record string
	// Name is the resolved patch type name.
	Name string
	// Fields in declaration order.
	Fields []FieldPlan

	index map[string]int
}

// NewSchema assembles a schema. Validation is the builder's job.
func NewSchema(record, name string, fields []FieldPlan) *Schema {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.Name] = i
	}

	return &Schema{
		Record: record,
		Name:   name,
		Fields: fields,
		index:  index,
	}
}

// Lookup returns the plan of the named field and its position.
func (s *Schema) Lookup(name string) (FieldPlan, int, bool) {
	i, ok := s.index[name]
	if !ok {
		return FieldPlan{}, -1, false
	}

	return s.Fields[i], i, true
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.Fields)
}

// DirectCount returns the number of Direct fields.
func (s *Schema) DirectCount() int {
	n := 0

	for _, f := range s.Fields {
		if f.Kind.IsDirect() {
			n++
		}
	}

	return n
}

// Dependencies returns the child schemas referenced by nested fields, in
// field order, without repeats.
func (s *Schema) Dependencies() []*Schema {
	var (
		out  []*Schema
		seen = map[*Schema]bool{}
	)

	for _, f := range s.Fields {
		if f.Nested == nil || seen[f.Nested] {
			continue
		}

		seen[f.Nested] = true
		out = append(out, f.Nested)
	}

	return out
}

// Fingerprint is a stable 64-bit hash of the schema shape, including the
// shape of every nested schema. Regenerating from unchanged descriptors yields
// the same fingerprint.
func (s *Schema) Fingerprint() string {
	return fmt.Sprintf("%016x", xxh3.HashString(s.canonical()))
}

func (s *Schema) canonical() string {
	var sb strings.Builder

	sb.WriteString(s.Record)
	sb.WriteByte('=')
	sb.WriteString(s.Name)

	for _, f := range s.Fields {
		sb.WriteByte('|')
		sb.WriteString(f.Name)
		sb.WriteByte(':')
		sb.WriteString(f.Kind.String())
		sb.WriteByte(':')
		sb.WriteString(f.Type)

		if f.Nested != nil {
			sb.WriteByte('{')
			sb.WriteString(f.NestedName)
			sb.WriteByte('=')
			sb.WriteString(f.Nested.canonical())
			sb.WriteByte('}')
		}
	}

	return sb.String()
}

func (s *Schema) String() string {
	parts := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		parts = append(parts, f.Name+" "+f.TypeString())
	}

	return s.Name + "{" + strings.Join(parts, ", ") + "}"
}
