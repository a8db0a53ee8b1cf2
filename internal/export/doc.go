// Package export renders resolved patch schemas as a YAML document: one
// entry per patch type with its fields, plan kinds and fingerprint, the
// names the registry resolved, and the behavior table of every plan kind
// in use.
package export
