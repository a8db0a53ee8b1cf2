package schema

import (
	"substruct-generator/internal/common"
	"substruct-generator/internal/diagnostic"
	"substruct-generator/internal/plan"
)

// Build validates plans and assembles the schema of one record.
func Build(record, name string, plans []plan.FieldPlan) (*plan.Schema, error) {
	if common.IsEmpty(plans) {
		return nil, diagnostic.Errorf(diagnostic.CodeNoFieldsTagged, record, "",
			"no fields are tagged, at least one field must be tagged to generate %s", name)
	}

	if dups := common.Duplicates(plans, func(p plan.FieldPlan) string { return p.Name }); len(dups) > 0 {
		return nil, diagnostic.Errorf(diagnostic.CodeDuplicateFieldName, record, dups[0],
			"field %q is declared more than once", dups[0])
	}

	fields := make([]plan.FieldPlan, len(plans))
	copy(fields, plans)

	return plan.NewSchema(record, name, fields), nil
}
