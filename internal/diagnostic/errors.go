package diagnostic

import (
	"errors"
	"fmt"
)

// Code identifies the rule a diagnostic reports on.
type Code string

const (
	CodeNoFieldsTagged        Code = "no_fields_tagged"
	CodeDuplicateFieldName    Code = "duplicate_field_name"
	CodeUnsupportedFieldShape Code = "unsupported_field_shape"
	CodeRedundantOpaqueWrap   Code = "redundant_opaque_wrap"
	CodeNestedNameConflict    Code = "nested_name_conflict"
	CodeCyclicNesting         Code = "cyclic_nesting"
	CodeUnknownNestedRecord   Code = "unknown_nested_record"
	CodeDuplicateRecord       Code = "duplicate_record"
	CodeDuplicatePatchName    Code = "duplicate_patch_name"

	CodeIgnoredSetting Code = "ignored_setting"
	CodeInternal       Code = "internal"
)

var (
	ErrNoFieldsTagged        = errors.New("no fields tagged")
	ErrDuplicateFieldName    = errors.New("duplicate field name")
	ErrUnsupportedFieldShape = errors.New("unsupported field shape")
	ErrRedundantOpaqueWrap   = errors.New("redundant opaque wrap")
	ErrNestedNameConflict    = errors.New("nested name conflict")
	ErrCyclicNesting         = errors.New("cyclic nesting")
	ErrUnknownNestedRecord   = errors.New("unknown nested record")
	ErrDuplicateRecord       = errors.New("duplicate record")
	ErrDuplicatePatchName    = errors.New("duplicate patch name")
)

var sentinels = map[Code]error{
	CodeNoFieldsTagged:        ErrNoFieldsTagged,
	CodeDuplicateFieldName:    ErrDuplicateFieldName,
	CodeUnsupportedFieldShape: ErrUnsupportedFieldShape,
	CodeRedundantOpaqueWrap:   ErrRedundantOpaqueWrap,
	CodeNestedNameConflict:    ErrNestedNameConflict,
	CodeCyclicNesting:         ErrCyclicNesting,
	CodeUnknownNestedRecord:   ErrUnknownNestedRecord,
	CodeDuplicateRecord:       ErrDuplicateRecord,
	CodeDuplicatePatchName:    ErrDuplicatePatchName,
}

// Error is a structural generation error. It unwraps to the sentinel for its
// code and, when set, to the cause.
type Error struct {
	Code    Code
	Record  string
	Field   string
	Message string
	Cause   error
}

// Errorf builds a structural error for the given record and field.
func Errorf(code Code, record, field, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Record:  record,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	msg := format(e.Code, e.Message, e.Record, e.Field)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

func (e *Error) Unwrap() []error {
	var errs []error
	if s, ok := sentinels[e.Code]; ok {
		errs = append(errs, s)
	}

	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}

	return errs
}

// Wrap attaches a cause to the error and returns it.
func (e *Error) Wrap(cause error) *Error {
	e.Cause = cause
	return e
}
