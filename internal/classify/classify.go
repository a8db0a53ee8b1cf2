// Package classify turns field descriptors into field plans.
package classify

import (
	"substruct-generator/internal/descriptor"
	"substruct-generator/internal/diagnostic"
	"substruct-generator/internal/plan"
)

// Field classifies one descriptor of the given record. Nested plans come back
// with Type set to the target record; binding the child schema and its name
// is left to the naming resolver.
//
// Rules are checked in order and the first match wins:
//  1. json on the opaque type itself is rejected
//  2. nested yields SettableNested, wrap is ignored
//  3. json yields SettableOpaque, wrap is ignored
//  4. primitive on an optional yields SettableNullable, wrap is ignored
//  5. primitive on a scalar with wrap yields Settable
//  6. primitive on a scalar without wrap yields Direct
//
// A scalar or optional shape without a type name is never classified.
func Field(record string, fd descriptor.Field) (plan.FieldPlan, error) {
	shape := fd.Shape

	if shape.Kind != descriptor.ShapeOpaque && shape.Type == "" {
		return plan.FieldPlan{}, unsupported(record, fd, "field declares no type")
	}

	switch {
	case fd.Kind == descriptor.KindJSON && shape.Kind == descriptor.ShapeOpaque:
		return plan.FieldPlan{}, diagnostic.Errorf(diagnostic.CodeRedundantOpaqueWrap, record, fd.Name,
			"%s is already an opaque value, declare it as a primitive field", shape)

	case fd.Kind == descriptor.KindNested:
		if shape.Kind != descriptor.ShapeScalar || shape.Type == "" {
			return plan.FieldPlan{}, unsupported(record, fd, "nested fields must declare a record type")
		}

		return plan.FieldPlan{Name: fd.Name, Kind: plan.KindSettableNested, Type: shape.Type}, nil

	case fd.Kind == descriptor.KindJSON:
		return plan.FieldPlan{Name: fd.Name, Kind: plan.KindSettableOpaque, Type: shape.Type}, nil

	case fd.Kind == descriptor.KindPrimitive && shape.Kind == descriptor.ShapeOption:
		return plan.FieldPlan{Name: fd.Name, Kind: plan.KindSettableNullable, Type: shape.Type}, nil

	case fd.Kind == descriptor.KindPrimitive && shape.Kind == descriptor.ShapeScalar && fd.Wrapped():
		return plan.FieldPlan{Name: fd.Name, Kind: plan.KindSettable, Type: shape.Type}, nil

	case fd.Kind == descriptor.KindPrimitive && shape.Kind == descriptor.ShapeScalar:
		return plan.FieldPlan{Name: fd.Name, Kind: plan.KindDirect, Type: shape.Type}, nil
	}

	return plan.FieldPlan{}, unsupported(record, fd, "no classification rule matches")
}

func unsupported(record string, fd descriptor.Field, reason string) error {
	return diagnostic.Errorf(diagnostic.CodeUnsupportedFieldShape, record, fd.Name,
		"%s (kind %s, type %s, wrap %t)", reason, fd.Kind, fd.Shape, fd.Wrapped())
}

// Fields classifies descriptors in order and stops at the first error.
func Fields(record string, fds []descriptor.Field) ([]plan.FieldPlan, error) {
	plans := make([]plan.FieldPlan, 0, len(fds))

	for _, fd := range fds {
		p, err := Field(record, fd)
		if err != nil {
			return nil, err
		}

		plans = append(plans, p)
	}

	return plans, nil
}
