// Package diagnostic provides structured warnings and errors for the
// substruct generator.
//
// Key capabilities:
//   - Structural generation errors with one sentinel per rule, usable with errors.Is
//   - Record and field attribution for every message
//   - Lint warnings collected alongside errors
package diagnostic
