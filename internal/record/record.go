// Package record is the dynamic record model patches are applied to.
//
// A record is a map from field name to value. A nested sub-record is itself a
// Record (or a plain map[string]any), and a nullable field holds nil for null.
// Fields a schema does not declare are carried through untouched.
package record

import (
	"fmt"
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// Record is a single record value.
type Record map[string]any

// As converts a field value to a Record if it is one.
func As(v any) (Record, bool) {
	switch r := v.(type) {
	case Record:
		return r, true
	case map[string]any:
		return Record(r), true
	default:
		return nil, false
	}
}

// Get returns the value of a field and whether it is set.
func (r Record) Get(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}

// Sub returns the nested record stored in field name. A missing or nil field
// yields an empty record.
func (r Record) Sub(name string) (Record, error) {
	v, ok := r[name]
	if !ok || v == nil {
		return Record{}, nil
	}

	sub, ok := As(v)
	if !ok {
		return nil, fmt.Errorf("field %q holds %T, not a record", name, v)
	}

	return sub, nil
}

// Clone copies the record and every nested sub-record map, keeping each
// sub-record in the map type it was stored as. Leaf values are shared: a patch
// replaces them and never mutates them.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}

	out := make(Record, len(r))

	for k, v := range r {
		switch sub := v.(type) {
		case Record:
			out[k] = sub.Clone()
		case map[string]any:
			out[k] = map[string]any(Record(sub).Clone())
		default:
			out[k] = v
		}
	}

	return out
}

var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

// Equal is the value equality used to detect changes.
func Equal(a, b any) bool {
	ra, okA := As(a)
	rb, okB := As(b)

	if okA && okB {
		return cmp.Equal(map[string]any(ra), map[string]any(rb), exportAll)
	}

	return cmp.Equal(a, b, exportAll)
}

var zeros = map[string]any{
	"string":  "",
	"bool":    false,
	"int":     0,
	"int8":    int8(0),
	"int16":   int16(0),
	"int32":   int32(0),
	"int64":   int64(0),
	"uint":    uint(0),
	"uint8":   uint8(0),
	"uint16":  uint16(0),
	"uint32":  uint32(0),
	"uint64":  uint64(0),
	"float32": float32(0),
	"float64": float64(0),
	"byte":    byte(0),
	"rune":    rune(0),
}

// Zero returns the zero value of a declared type name. Types without a known
// zero (records, slices, maps, pointers) yield nil.
func Zero(typ string) any {
	return zeros[typ]
}
