// Package schema assembles patch schemas from record descriptions.
//
// Build is the pure assembly step for one record. A Session resolves a batch
// of records: it orders them so every nested child is built before its
// parents, rejects cyclic nesting, classifies each field, resolves names
// through the session's naming registry, and builds independent records of
// one dependency level concurrently.
//
// A failure is fatal to the record it occurs in and to every record nesting
// it, directly or transitively. Unrelated records in the same batch still
// build.
package schema
