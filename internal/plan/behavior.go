package plan

// Operation names an operation of a patch type.
type Operation string

const (
	OpConstruct    Operation = "construct"
	OpNoChangeFrom Operation = "no_change_from"
	OpIsEmpty      Operation = "is_empty"
	OpFieldCount   Operation = "field_count"
	OpHasField     Operation = "has_field"
	OpClear        Operation = "clear"
	OpMerge        Operation = "merge"
	OpWouldChange  Operation = "would_change"
	OpApply        Operation = "apply"
	OpProject      Operation = "project"
)

// Operations lists every operation in the order they are documented.
var Operations = []Operation{
	OpConstruct, OpNoChangeFrom, OpIsEmpty, OpFieldCount, OpHasField,
	OpClear, OpMerge, OpWouldChange, OpApply, OpProject,
}

// behavior of the wrapped kinds that share one rule set.
var wrapped = map[Operation]string{
	OpConstruct:    "takes a state, absent or present",
	OpNoChangeFrom: "absent",
	OpIsEmpty:      "empty unless present",
	OpFieldCount:   "counts when present",
	OpHasField:     "true when present",
	OpClear:        "absent",
	OpMerge:        "right state when present, else left",
	OpWouldChange:  "present value differs from record value",
	OpApply:        "present value replaces record value",
	OpProject:      "canonical text when present",
}

var behaviors = map[Kind]map[Operation]string{
	KindDirect: {
		OpConstruct:    "takes the bare value",
		OpNoChangeFrom: "record value",
		OpIsEmpty:      "ignored",
		OpFieldCount:   "always counts",
		OpHasField:     "always true",
		OpClear:        "zero value of the declared type",
		OpMerge:        "right value",
		OpWouldChange:  "value differs from record value",
		OpApply:        "value replaces record value",
		OpProject:      "canonical text, always",
	},
	KindSettable: wrapped,
	KindSettableNullable: overlay(wrapped, map[Operation]string{
		OpConstruct:   "takes a state: absent, null or present",
		OpWouldChange: "null differs from a set record value, a present value differs from record value",
		OpApply:       "null clears the record value, a present value replaces it",
		OpProject:     "null or canonical text when present",
	}),
	KindSettableOpaque: overlay(wrapped, map[Operation]string{
		OpWouldChange: "opaque value differs from the encoded record value",
		OpApply:       "opaque value decoded into the record value type",
		OpProject:     "encoded text when present",
	}),
	KindSettableNested: overlay(wrapped, map[Operation]string{
		OpConstruct:   "takes a state holding a nested patch",
		OpMerge:       "nested merge when both present, else right state when present, else left",
		OpWouldChange: "nested would_change against the sub-record",
		OpApply:       "nested apply to the sub-record",
		OpProject:     "nested projection block when present",
	}),
}

func overlay(base, over map[Operation]string) map[Operation]string {
	out := make(map[Operation]string, len(base))
	for k, v := range base {
		out[k] = v
	}

	for k, v := range over {
		out[k] = v
	}

	return out
}

// Behavior describes how operation op treats a field of kind k.
func Behavior(k Kind, op Operation) string {
	return behaviors[k][op]
}
