package patch

import (
	"errors"
	"fmt"

	"substruct-generator/internal/plan"
	"substruct-generator/internal/record"
)

var (
	// ErrArity is returned when a constructor gets the wrong number of values.
	ErrArity = errors.New("wrong number of field values")
	// ErrInvalidState is returned when a state does not fit its field plan.
	ErrInvalidState = errors.New("invalid field state")
	// ErrUnknownField is returned for field names the schema does not declare.
	ErrUnknownField = errors.New("unknown field")
	// ErrMissingField is returned when a record lacks a Direct field.
	ErrMissingField = errors.New("record is missing field")
	// ErrSchemaMismatch is returned when combining patches of different schemas.
	ErrSchemaMismatch = errors.New("patch schemas differ")
)

func invalid(f plan.FieldPlan, reason string) error {
	return fmt.Errorf("field %q (%s): %s: %w", f.Name, f.Kind, reason, ErrInvalidState)
}

// Patch is an instance of a patch type.
type Patch struct {
	schema *plan.Schema
	states []State
}

// New constructs a patch from one value per field, in schema order. Direct
// fields take the bare value, every other field takes a State.
func New(s *plan.Schema, values ...any) (*Patch, error) {
	if len(values) != s.Len() {
		return nil, fmt.Errorf("%s takes %d values, got %d: %w", s.Name, s.Len(), len(values), ErrArity)
	}

	p := &Patch{schema: s, states: make([]State, s.Len())}

	for i, f := range s.Fields {
		var st State

		if f.Kind.IsDirect() {
			if _, ok := values[i].(State); ok {
				return nil, invalid(f, "direct fields take a bare value, not a state")
			}

			st = Set(values[i])
		} else {
			v, ok := values[i].(State)
			if !ok {
				return nil, invalid(f, fmt.Sprintf("expected a state, got %T", values[i]))
			}

			st = v
		}

		if err := check(f, st); err != nil {
			return nil, err
		}

		p.states[i] = st
	}

	return p, nil
}

// Zero returns the default patch: every field absent, Direct fields at the
// zero value of their declared type.
func Zero(s *plan.Schema) *Patch {
	p := &Patch{schema: s, states: make([]State, s.Len())}

	for i, f := range s.Fields {
		if f.Kind.IsDirect() {
			p.states[i] = Set(record.Zero(f.Type))
		}
	}

	return p
}

// NoChangeFrom returns the patch that changes nothing in r: every field
// absent, Direct fields carrying their current value forward.
func NoChangeFrom(s *plan.Schema, r record.Record) (*Patch, error) {
	p := &Patch{schema: s, states: make([]State, s.Len())}

	for i, f := range s.Fields {
		if !f.Kind.IsDirect() {
			continue
		}

		v, ok := r.Get(f.Name)
		if !ok {
			return nil, fmt.Errorf("%s: field %q: %w", s.Record, f.Name, ErrMissingField)
		}

		p.states[i] = Set(v)
	}

	return p, nil
}

// FromRecord converts a record into a patch. It is NoChangeFrom.
func FromRecord(s *plan.Schema, r record.Record) (*Patch, error) {
	return NoChangeFrom(s, r)
}

// Schema returns the schema of the patch.
func (p *Patch) Schema() *plan.Schema {
	return p.schema
}

// State returns the state of the named field.
func (p *Patch) State(name string) (State, bool) {
	_, i, ok := p.schema.Lookup(name)
	if !ok {
		return State{}, false
	}

	return p.states[i], true
}

// With returns a copy of the patch with the named field set to st. Direct
// fields take Set(value).
func (p *Patch) With(name string, st State) (*Patch, error) {
	f, i, ok := p.schema.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%s: %q: %w", p.schema.Name, name, ErrUnknownField)
	}

	if err := check(f, st); err != nil {
		return nil, err
	}

	out := p.clone()
	out.states[i] = st

	return out, nil
}

func (p *Patch) clone() *Patch {
	states := make([]State, len(p.states))
	copy(states, p.states)

	return &Patch{schema: p.schema, states: states}
}

// IsEmpty reports whether no wrapped field is present. Direct fields are
// ignored.
func (p *Patch) IsEmpty() bool {
	for i, f := range p.schema.Fields {
		if !f.Kind.IsDirect() && p.states[i].present {
			return false
		}
	}

	return true
}

// FieldCount counts present fields, Direct fields included.
func (p *Patch) FieldCount() int {
	n := 0

	for _, st := range p.states {
		if st.present {
			n++
		}
	}

	return n
}

// HasField reports whether the named field is present. Direct fields are
// always present; unknown names are not.
func (p *Patch) HasField(name string) bool {
	st, ok := p.State(name)
	return ok && st.present
}

// Clear returns a patch with every wrapped field absent and every Direct
// field reset to its zero value.
func (p *Patch) Clear() *Patch {
	return Zero(p.schema)
}

// Equal reports whether two patches describe the same changes.
func (p *Patch) Equal(o *Patch) bool {
	if p == nil || o == nil {
		return p == o
	}

	if p.schema != o.schema {
		return false
	}

	for i := range p.states {
		if !p.states[i].Equal(o.states[i]) {
			return false
		}
	}

	return true
}

// Merge combines two patches of one schema field by field: b's state wins
// where present, a's state is kept otherwise. Nested fields present on both
// sides are merged recursively. Direct fields take b's value.
func Merge(a, b *Patch) (*Patch, error) {
	if a.schema != b.schema {
		return nil, fmt.Errorf("merge %s with %s: %w", a.schema.Name, b.schema.Name, ErrSchemaMismatch)
	}

	out := a.clone()

	for i, f := range a.schema.Fields {
		sa, sb := a.states[i], b.states[i]

		switch {
		case !sb.present:
			continue
		case f.Kind == plan.KindSettableNested && sa.present:
			merged, err := Merge(sa.nested, sb.nested)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}

			out.states[i] = SetNested(merged)
		default:
			out.states[i] = sb
		}
	}

	return out, nil
}

// Merge is Merge(p, other).
func (p *Patch) Merge(other *Patch) (*Patch, error) {
	return Merge(p, other)
}
