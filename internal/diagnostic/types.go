package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"substruct-generator/internal/common"
)

// Diagnostics holds all diagnostic information from a lint or build pass.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code Code
	// Message is the human-readable description.
	Message string
	// Record names the record description this relates to (if any).
	Record string
	// FieldPath identifies which field this relates to (if any).
	FieldPath string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code Code, message, record, fieldPath string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity:  DiagnosticError,
		Code:      code,
		Message:   message,
		Record:    record,
		FieldPath: fieldPath,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code Code, message, record, fieldPath string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:  DiagnosticWarning,
		Code:      code,
		Message:   message,
		Record:    record,
		FieldPath: fieldPath,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code Code, message, record, fieldPath string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity:  DiagnosticInfo,
		Code:      code,
		Message:   message,
		Record:    record,
		FieldPath: fieldPath,
	})
}

// AddErr records err as an error diagnostic. Structural errors keep their
// code and attribution, joined errors are split, and a wrapped structural
// error keeps its code under the wrapping message. Anything else is filed
// under CodeInternal.
func (d *Diagnostics) AddErr(err error) {
	if err == nil {
		return
	}

	if se, ok := err.(*Error); ok {
		d.AddError(se.Code, se.Message, se.Record, se.Field)
		return
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			d.AddErr(e)
		}

		return
	}

	code := CodeInternal

	var se *Error
	if errors.As(err, &se) {
		code = se.Code
	}

	d.AddError(code, err.Error(), "", "")
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	return format(d.Code, d.Message, d.Record, d.FieldPath)
}

func format(code Code, message, record, field string) string {
	var prefix []string
	if record != "" {
		prefix = append(prefix, "["+record+"]")
	}

	if field != "" {
		prefix = append(prefix, field)
	}

	msg := message
	if code != "" {
		msg = fmt.Sprintf("[%s] %s", code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
