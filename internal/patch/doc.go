// Package patch implements the operations of a patch type over a resolved
// schema.
//
// A Patch holds one State per schema field. A state is absent (no change) or
// present; a present state carries a value, null (nullable fields only) or a
// nested patch (nested fields only). Direct fields are always present.
//
// Operations never mutate the patches they are given. Apply returns a new
// record; ApplyInPlace is the mutating variant with the same outcome.
//
// Counting rule: Direct fields are always set. FieldCount and HasField count
// them, IsEmpty ignores them because they carry no intent to change.
package patch
