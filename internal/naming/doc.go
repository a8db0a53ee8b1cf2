// Package naming resolves patch type names.
//
// A record's own patch name is its explicit override, or the record name
// followed by a suffix ("Substruct" by default). A nested field references
// the child's patch by a per-field override, or by the child's resolved name.
//
// The Registry remembers, for one build session, which name every record was
// resolved to and which override parents asked for. The first override
// requested for a record wins; a different parent asking for a different
// override fails instead of shadowing it.
package naming
