// Package plan holds the resolved representation consumed by the patch
// engine and by export: field plans, patch schemas and the behavior table.
//
// A schema is produced by the schema builder:
//  1. Every tagged field descriptor is classified into a FieldPlan
//  2. Nested plans are bound to the child schema and its resolved name
//  3. The ordered plans and the resolved patch name form a Schema
//
// Schemas are immutable once built and safe to share between goroutines.
package plan
