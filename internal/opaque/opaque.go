// Package opaque implements the opaque value field kind: a serialized value
// the patch engine stores and compares without interpreting it.
package opaque

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

// Value is an encoded opaque value.
type Value []byte

// Codec converts typed values to and from their opaque form.
type Codec interface {
	Encode(v any) (Value, error)
	Decode(data Value, target any) error
}

// JSON is the default codec.
var JSON Codec = jsonCodec{}

type jsonCodec struct{}

func (jsonCodec) Encode(v any) (Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode opaque value: %w", err)
	}

	return Value(data), nil
}

func (jsonCodec) Decode(data Value, target any) error {
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode opaque value: %w", err)
	}

	return nil
}

// Encode encodes v with the default codec.
func Encode(v any) (Value, error) {
	return JSON.Encode(v)
}

// MustEncode is Encode for values known to be encodable, such as literals
// in tests and examples.
func MustEncode(v any) Value {
	out, err := Encode(v)
	if err != nil {
		panic(err)
	}

	return out
}

// DecodeAs decodes v into a fresh value of the dynamic type of like. A nil
// like decodes into the generic form (maps, slices, float64, string, bool).
func DecodeAs(v Value, like any) (any, error) {
	if like == nil {
		var out any
		if err := JSON.Decode(v, &out); err != nil {
			return nil, err
		}

		return out, nil
	}

	ptr := reflect.New(reflect.TypeOf(like))
	if err := JSON.Decode(v, ptr.Interface()); err != nil {
		return nil, err
	}

	return ptr.Elem().Interface(), nil
}

// Equal reports whether two encoded values denote the same value, ignoring
// formatting and key order.
func Equal(a, b Value) bool {
	if bytes.Equal(a, b) {
		return true
	}

	da, errA := DecodeAs(a, nil)
	db, errB := DecodeAs(b, nil)

	if errA != nil || errB != nil {
		return false
	}

	return cmp.Equal(da, db)
}

// String returns the encoded text.
func (v Value) String() string {
	return string(v)
}

// MarshalYAML renders the decoded form so exported documents stay readable.
func (v Value) MarshalYAML() (any, error) {
	return DecodeAs(v, nil)
}
