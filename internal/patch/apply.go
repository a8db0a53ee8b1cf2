package patch

import (
	"fmt"

	"substruct-generator/internal/opaque"
	"substruct-generator/internal/plan"
	"substruct-generator/internal/record"
)

// WouldChange reports whether applying the patch to r would alter at least
// one field. It compares the value Apply would write against the current one.
func (p *Patch) WouldChange(r record.Record) (bool, error) {
	for i, f := range p.schema.Fields {
		st := p.states[i]
		if !st.present {
			continue
		}

		cur, ok := r.Get(f.Name)
		if !ok {
			return true, nil
		}

		if f.Kind == plan.KindSettableNested {
			if cur == nil {
				return true, nil
			}

			sub, err := r.Sub(f.Name)
			if err != nil {
				return false, fmt.Errorf("%s: %w", p.schema.Record, err)
			}

			changed, err := st.nested.WouldChange(sub)
			if err != nil || changed {
				return changed, err
			}

			continue
		}

		next, err := newValue(f, st, cur)
		if err != nil {
			return false, err
		}

		if !record.Equal(next, cur) {
			return true, nil
		}
	}

	return false, nil
}

// Apply returns a copy of r with the patch applied. r is left untouched.
func (p *Patch) Apply(r record.Record) (record.Record, error) {
	out := r.Clone()
	if out == nil {
		out = record.Record{}
	}

	if err := p.apply(out, false); err != nil {
		return nil, err
	}

	return out, nil
}

// ApplyInPlace applies the patch to r, mutating it and its sub-records.
func (p *Patch) ApplyInPlace(r record.Record) error {
	return p.apply(r, true)
}

func (p *Patch) apply(dst record.Record, inPlace bool) error {
	for i, f := range p.schema.Fields {
		st := p.states[i]
		if !st.present {
			continue
		}

		cur := dst[f.Name]

		if f.Kind == plan.KindSettableNested {
			sub, err := dst.Sub(f.Name)
			if err != nil {
				return fmt.Errorf("%s: %w", p.schema.Record, err)
			}

			if inPlace && cur != nil {
				if err := st.nested.apply(sub, true); err != nil {
					return err
				}

				continue
			}

			next, err := st.nested.Apply(sub)
			if err != nil {
				return err
			}

			dst[f.Name] = sameMapType(cur, next)

			continue
		}

		next, err := newValue(f, st, cur)
		if err != nil {
			return err
		}

		dst[f.Name] = next
	}

	return nil
}

// newValue is the value a present, non-nested state writes over cur.
func newValue(f plan.FieldPlan, st State, cur any) (any, error) {
	switch {
	case st.null:
		return nil, nil
	case f.Kind == plan.KindSettableOpaque:
		v, err := opaque.DecodeAs(st.value.(opaque.Value), cur)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}

		return v, nil
	default:
		return st.value, nil
	}
}

// sameMapType keeps a sub-record in the map type it was stored as.
func sameMapType(orig any, r record.Record) any {
	if _, ok := orig.(map[string]any); ok {
		return map[string]any(r)
	}

	return r
}
