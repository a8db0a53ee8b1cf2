package patch

import (
	"substruct-generator/internal/opaque"
	"substruct-generator/internal/plan"
	"substruct-generator/internal/record"
)

// State is the update state of one field.
type State struct {
	present bool
	null    bool
	value   any
	nested  *Patch
}

// Absent leaves the field unchanged.
func Absent() State {
	return State{}
}

// Set sets the field to v.
func Set(v any) State {
	return State{present: true, value: v}
}

// SetNull sets a nullable field to null.
func SetNull() State {
	return State{present: true, null: true}
}

// SetOpaque sets an opaque field to an encoded value.
func SetOpaque(v opaque.Value) State {
	return State{present: true, value: v}
}

// SetNested applies p to the nested sub-record.
func SetNested(p *Patch) State {
	return State{present: true, nested: p}
}

// Present reports whether the state carries a change.
func (s State) Present() bool { return s.present }

// Null reports whether the state sets a nullable field to null.
func (s State) Null() bool { return s.null }

// Value returns the carried value; nil for absent, null and nested states.
func (s State) Value() any { return s.value }

// Nested returns the carried nested patch.
func (s State) Nested() *Patch { return s.nested }

// Equal reports whether two states describe the same change.
func (s State) Equal(o State) bool {
	if s.present != o.present || s.null != o.null {
		return false
	}

	if s.nested != nil || o.nested != nil {
		return s.nested.Equal(o.nested)
	}

	if sv, ok := s.value.(opaque.Value); ok {
		ov, ok := o.value.(opaque.Value)
		return ok && opaque.Equal(sv, ov)
	}

	return record.Equal(s.value, o.value)
}

// check validates a state against the plan it is stored under.
func check(f plan.FieldPlan, s State) error {
	if f.Kind.IsDirect() {
		if !s.present || s.null || s.nested != nil {
			return invalid(f, "direct fields take a bare value")
		}

		return nil
	}

	if !s.present {
		return nil
	}

	switch f.Kind {
	case plan.KindSettable:
		if s.null || s.nested != nil {
			return invalid(f, "settable fields take a value")
		}
	case plan.KindSettableNullable:
		if s.nested != nil {
			return invalid(f, "nullable fields take a value or null")
		}
	case plan.KindSettableOpaque:
		if _, ok := s.value.(opaque.Value); !ok || s.null || s.nested != nil {
			return invalid(f, "opaque fields take an opaque value")
		}
	case plan.KindSettableNested:
		if s.nested == nil {
			return invalid(f, "nested fields take a nested patch")
		}

		if s.nested.schema != f.Nested {
			return invalid(f, "nested patch is of "+s.nested.schema.Name+", want "+f.NestedName)
		}
	default:
		return invalid(f, "unknown plan kind "+f.Kind.String())
	}

	return nil
}
