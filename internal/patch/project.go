package patch

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"substruct-generator/internal/opaque"
)

// Entry is one field of a projection.
type Entry struct {
	Name string
	// Text is the canonical text of a scalar entry.
	Text string
	// Block marks a nested entry; its content is Nested.
	Block  bool
	Nested Projection
}

// Projection is the ordered textual view of a patch.
type Projection []Entry

// Project renders the present fields, and every Direct field, in schema
// order. Nested patches render as nested blocks.
func (p *Patch) Project() Projection {
	out := Projection{}

	for i, f := range p.schema.Fields {
		st := p.states[i]
		if !st.present {
			continue
		}

		if st.nested != nil {
			out = append(out, Entry{Name: f.Name, Block: true, Nested: st.nested.Project()})
			continue
		}

		out = append(out, Entry{Name: f.Name, Text: text(st)})
	}

	return out
}

func text(st State) string {
	switch v := st.value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case opaque.Value:
		return v.String()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Lookup returns the entry of the named field.
func (pr Projection) Lookup(name string) (Entry, bool) {
	for _, e := range pr {
		if e.Name == name {
			return e, true
		}
	}

	return Entry{}, false
}

// Names returns the field names in order.
func (pr Projection) Names() []string {
	names := make([]string, len(pr))
	for i, e := range pr {
		names[i] = e.Name
	}

	return names
}

// String renders the projection as indented "name: text" lines.
func (pr Projection) String() string {
	var sb strings.Builder

	pr.write(&sb, 0)

	return sb.String()
}

func (pr Projection) write(sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, e := range pr {
		switch {
		case e.Block && len(e.Nested) == 0:
			fmt.Fprintf(sb, "%s%s: {}\n", indent, e.Name)
		case e.Block:
			fmt.Fprintf(sb, "%s%s:\n", indent, e.Name)
			e.Nested.write(sb, depth+1)
		default:
			fmt.Fprintf(sb, "%s%s: %s\n", indent, e.Name, e.Text)
		}
	}
}

// MarshalYAML renders the projection as an ordered mapping of strings.
func (pr Projection) MarshalYAML() (any, error) {
	return pr.node(), nil
}

func (pr Projection) node() *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, e := range pr {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Name}

		var val *yaml.Node
		if e.Block {
			val = e.Nested.node()
		} else {
			val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Text}
		}

		n.Content = append(n.Content, key, val)
	}

	return n
}
