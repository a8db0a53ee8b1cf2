package patch

import (
	"fmt"
	"sort"

	"substruct-generator/internal/common"
	"substruct-generator/internal/opaque"
	"substruct-generator/internal/plan"
	"substruct-generator/internal/record"
)

// Decode builds a patch from a plain document, such as a decoded YAML or
// JSON object. It starts from NoChangeFrom(base), or from Zero when base is
// nil, and sets every field the document names:
//   - a value sets the field
//   - null on a nullable field sets it to null
//   - any value on an opaque field is encoded
//   - an object on a nested field is decoded against the sub-record of base
func Decode(s *plan.Schema, doc map[string]any, base record.Record) (*Patch, error) {
	var (
		p   *Patch
		err error
	)

	if base == nil {
		p = Zero(s)
	} else if p, err = NoChangeFrom(s, base); err != nil {
		return nil, err
	}

	var unknown []string

	for k := range doc {
		if _, _, ok := s.Lookup(k); !ok {
			unknown = append(unknown, k)
		}
	}

	sort.Strings(unknown)

	if name, ok := common.First(unknown); ok {
		return nil, fmt.Errorf("%s: %q: %w", s.Name, name, ErrUnknownField)
	}

	for i, f := range s.Fields {
		v, ok := doc[f.Name]
		if !ok {
			continue
		}

		st, err := decodeField(f, v, base)
		if err != nil {
			return nil, err
		}

		if err := check(f, st); err != nil {
			return nil, err
		}

		p.states[i] = st
	}

	return p, nil
}

func decodeField(f plan.FieldPlan, v any, base record.Record) (State, error) {
	switch f.Kind {
	case plan.KindDirect:
		return Set(v), nil
	case plan.KindSettable:
		if v == nil {
			return State{}, invalid(f, "null is only accepted by nullable fields")
		}

		return Set(v), nil
	case plan.KindSettableNullable:
		if v == nil {
			return SetNull(), nil
		}

		return Set(v), nil
	case plan.KindSettableOpaque:
		enc, err := opaque.Encode(v)
		if err != nil {
			return State{}, fmt.Errorf("field %q: %w", f.Name, err)
		}

		return SetOpaque(enc), nil
	case plan.KindSettableNested:
		sub, ok := record.As(v)
		if !ok {
			return State{}, invalid(f, fmt.Sprintf("expected an object, got %T", v))
		}

		var subBase record.Record

		if base != nil && base[f.Name] != nil {
			b, err := base.Sub(f.Name)
			if err != nil {
				return State{}, err
			}

			subBase = b
		}

		np, err := Decode(f.Nested, sub, subBase)
		if err != nil {
			return State{}, fmt.Errorf("field %q: %w", f.Name, err)
		}

		return SetNested(np), nil
	default:
		return State{}, invalid(f, "unknown plan kind")
	}
}
