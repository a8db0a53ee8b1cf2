package descriptor

import (
	"fmt"

	"substruct-generator/internal/diagnostic"
)

// Lint reports settings that generation silently ignores, and descriptors too
// malformed to classify. Structural rules (classification, naming, cycles) are
// enforced by the schema builder, not here.
func Lint(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError(diagnostic.CodeInternal, "descriptor file is nil", "", "")
		return res
	}

	if f.Version != "1" {
		res.AddError(diagnostic.CodeInternal, fmt.Sprintf("unsupported descriptor version %q", f.Version), "", "")
	}

	for _, r := range f.Records {
		if r.Name == "" {
			res.AddError(diagnostic.CodeInternal, "record without a name", "", "")
			continue
		}

		for _, fd := range r.Fields {
			lintField(res, r.Name, fd)
		}
	}

	return res
}

func lintField(res *diagnostic.Diagnostics, record string, fd Field) {
	if fd.Name == "" {
		res.AddError(diagnostic.CodeInternal, "field without a name", record, "")
		return
	}

	if fd.Kind == KindSkip {
		return
	}

	if fd.Shape.Kind != ShapeOpaque && fd.Shape.Type == "" {
		res.AddError(diagnostic.CodeInternal, "field without a type", record, fd.Name)
	}

	switch {
	case fd.Wrap != nil && (fd.Kind == KindNested || fd.Kind == KindJSON):
		res.AddWarning(diagnostic.CodeIgnoredSetting,
			fmt.Sprintf("wrap is ignored for %s fields, they are always optional", fd.Kind), record, fd.Name)
	case !fd.Wrapped() && fd.Kind == KindPrimitive && fd.Shape.Kind == ShapeOption:
		res.AddWarning(diagnostic.CodeIgnoredSetting,
			"wrap: false is ignored for optional values, they always use the nullable form", record, fd.Name)
	}

	if fd.NestedType != "" && fd.Kind != KindNested {
		res.AddWarning(diagnostic.CodeIgnoredSetting,
			"nested_type is only used by nested fields", record, fd.Name)
	}
}
