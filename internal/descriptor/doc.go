// Package descriptor defines field descriptors and record descriptions, the
// input of the substruct generator, and their YAML file form.
//
// # File layout
//
//	version: "1"
//	records:
//	  - name: Person
//	    patch_name: PersonBuilder   # optional, defaults to PersonSubstruct
//	    fields:
//	      - name: name
//	        type: string            # kind defaults to primitive, wrap to true
//	      - name: nickname
//	        type: "*string"         # optional value: three-way nullable patch
//	      - name: id
//	        type: int
//	        wrap: false             # carried as a bare value
//	      - name: settings
//	        type: Settings
//	        kind: json              # opaque serialized value
//	      - name: address
//	        type: Address
//	        kind: nested
//	        nested_type: AddressBuilder
//	      - name: password
//	        type: string
//	        kind: skip              # untagged, invisible downstream
//
// # Declared shapes
//
//   - "T": a scalar of type T
//   - "*T": an optional T
//   - "opaque" or "json.RawMessage": the opaque value type itself
package descriptor
