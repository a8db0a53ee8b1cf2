package descriptor

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"substruct-generator/internal/common"
)

// File is the root of a descriptor file.
type File struct {
	Version string   `yaml:"version"`
	Records []Record `yaml:"records"`
}

// Record describes one source record and its naming configuration.
type Record struct {
	// Name is the source record identity, referenced by nested fields.
	Name string `yaml:"name"`
	// PatchName overrides the generated patch type name.
	PatchName string `yaml:"patch_name,omitempty"`
	// Fields in declaration order. Skipped fields are kept here and dropped
	// by Tagged.
	Fields []Field `yaml:"fields"`
}

// Tagged returns the descriptors that take part in generation.
func (r Record) Tagged() []Field {
	out := make([]Field, 0, len(r.Fields))

	for _, f := range r.Fields {
		if f.Kind == KindSkip {
			continue
		}

		out = append(out, f)
	}

	return out
}

// Field is a single field descriptor.
type Field struct {
	Name  string `yaml:"name"`
	Shape Shape  `yaml:"type"`
	Kind  Kind   `yaml:"kind,omitempty"`
	// Wrap defaults to true when nil.
	Wrap *bool `yaml:"wrap,omitempty"`
	// NestedType overrides the name of the referenced patch type.
	NestedType string `yaml:"nested_type,omitempty"`
}

// Wrapped reports the effective wrap flag.
func (f Field) Wrapped() bool {
	return f.Wrap == nil || *f.Wrap
}

// NoWrap is a convenience for building unwrapped descriptors in code.
func NoWrap() *bool {
	b := false
	return &b
}

// Kind is the requested update kind of a field.
type Kind int

const (
	KindPrimitive Kind = iota
	KindJSON
	KindNested
	KindSkip
)

var kindNames = map[Kind]string{
	KindPrimitive: "primitive",
	KindJSON:      "json",
	KindNested:    "nested",
	KindSkip:      "skip",
}

// String returns the descriptor-file spelling of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return common.UnknownStr
}

// ParseKind parses the descriptor-file spelling of a kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}

	return 0, fmt.Errorf("invalid kind %q (expected primitive, json, nested or skip)", s)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	if s == "" {
		*k = KindPrimitive
		return nil
	}

	parsed, err := ParseKind(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*k = parsed

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// ShapeKind distinguishes the declared shapes of a field.
type ShapeKind int

const (
	ShapeScalar ShapeKind = iota
	ShapeOption
	ShapeOpaque
)

// OpaqueTypeNames are the declared type names denoting the opaque value type.
var OpaqueTypeNames = []string{"opaque", "json.RawMessage"}

// Shape is the declared shape of a field: Scalar(T), OptionOf(T) or the
// opaque value type.
type Shape struct {
	Kind ShapeKind
	// Type is T; empty for the opaque shape.
	Type string
}

// Scalar returns the shape Scalar(t).
func Scalar(t string) Shape { return Shape{Kind: ShapeScalar, Type: t} }

// OptionOf returns the shape OptionOf(t).
func OptionOf(t string) Shape { return Shape{Kind: ShapeOption, Type: t} }

// Opaque returns the opaque value shape.
func Opaque() Shape { return Shape{Kind: ShapeOpaque} }

// ParseShape parses a declared type spelling.
func ParseShape(s string) (Shape, error) {
	s = strings.TrimSpace(s)

	for _, name := range OpaqueTypeNames {
		if s == name {
			return Opaque(), nil
		}
	}

	if inner, ok := strings.CutPrefix(s, "*"); ok {
		inner = strings.TrimSpace(inner)
		if inner == "" || strings.HasPrefix(inner, "*") {
			return Shape{}, fmt.Errorf("invalid optional type %q", s)
		}

		return OptionOf(inner), nil
	}

	if s == "" {
		return Shape{}, fmt.Errorf("empty type")
	}

	return Scalar(s), nil
}

// String returns the declared type spelling.
func (s Shape) String() string {
	switch s.Kind {
	case ShapeScalar:
		return s.Type
	case ShapeOption:
		return "*" + s.Type
	case ShapeOpaque:
		return OpaqueTypeNames[0]
	default:
		return common.UnknownStr
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Shape) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return err
	}

	parsed, err := ParseShape(str)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*s = parsed

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s Shape) MarshalYAML() (any, error) {
	return s.String(), nil
}
