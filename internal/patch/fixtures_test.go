package patch

import (
	"substruct-generator/internal/plan"
)

func userSchema() *plan.Schema {
	return plan.NewSchema("User", "UserSubstruct", []plan.FieldPlan{
		{Name: "name", Kind: plan.KindSettable, Type: "string"},
		{Name: "active", Kind: plan.KindSettable, Type: "bool"},
	})
}

func prefsSchema() *plan.Schema {
	return plan.NewSchema("Prefs", "PrefsSubstruct", []plan.FieldPlan{
		{Name: "theme", Kind: plan.KindSettableNullable, Type: "string"},
	})
}

type settings struct {
	Theme string `json:"theme"`
	Size  int    `json:"size"`
}

func addressSchema() *plan.Schema {
	return plan.NewSchema("Address", "AddressSubstruct", []plan.FieldPlan{
		{Name: "street", Kind: plan.KindSettable, Type: "string"},
		{Name: "city", Kind: plan.KindSettable, Type: "string"},
	})
}

// accountSchema mixes every plan kind.
func accountSchema(address *plan.Schema) *plan.Schema {
	return plan.NewSchema("Account", "AccountSubstruct", []plan.FieldPlan{
		{Name: "id", Kind: plan.KindDirect, Type: "int"},
		{Name: "name", Kind: plan.KindSettable, Type: "string"},
		{Name: "nickname", Kind: plan.KindSettableNullable, Type: "string"},
		{Name: "settings", Kind: plan.KindSettableOpaque, Type: "Settings"},
		{Name: "address", Kind: plan.KindSettableNested, Type: "Address", NestedName: address.Name, Nested: address},
	})
}
