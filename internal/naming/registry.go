package naming

import (
	"sort"
	"sync"

	"substruct-generator/internal/diagnostic"
)

// DefaultSuffix is appended to a record name when no override is given.
const DefaultSuffix = "Substruct"

// StructName computes the patch type name of a record.
func StructName(record, override, suffix string) string {
	if override != "" {
		return override
	}

	return record + suffix
}

// Entry is one resolution recorded in the registry.
type Entry struct {
	// Record is the target record identity.
	Record string `yaml:"record"`
	// Override is the reference name requested by a parent, if any.
	Override string `yaml:"override,omitempty"`
	// Name is the resolved name references use.
	Name string `yaml:"name"`
}

type target struct {
	name      string
	override  string
	requester string
}

// Registry is the session-scoped naming cache. It is safe for concurrent use;
// every read-then-insert happens under one lock.
type Registry struct {
	mu      sync.Mutex
	targets map[string]*target
	owners  map[string]string // patch name -> record
	refs    map[string]string // granted override -> referenced record
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		targets: map[string]*target{},
		owners:  map[string]string{},
		refs:    map[string]string{},
	}
}

// Define records the resolved patch name of a record. Defining the same
// record twice under one name is a no-op. A name already granted as a
// reference override for another record is a conflict.
func (r *Registry) Define(record, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.owners[name]; ok && owner != record {
		return diagnostic.Errorf(diagnostic.CodeDuplicatePatchName, record, "",
			"patch name %q is already used by record %q", name, owner)
	}

	if ref, ok := r.refs[name]; ok && ref != record {
		return diagnostic.Errorf(diagnostic.CodeNestedNameConflict, record, "",
			"patch name %q is already used to reference record %q", name, ref)
	}

	if t, ok := r.targets[record]; ok {
		if t.name != name {
			return diagnostic.Errorf(diagnostic.CodeDuplicatePatchName, record, "",
				"record already resolved to %q, cannot rename to %q", t.name, name)
		}

		return nil
	}

	r.targets[record] = &target{name: name}
	r.owners[name] = record

	return nil
}

// Lookup returns the resolved patch name of a record.
func (r *Registry) Lookup(record string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.targets[record]
	if !ok {
		return "", false
	}

	return t.name, true
}

// Reference resolves the name field of record parent uses to refer to the
// patch type of record child. The child must already be defined.
func (r *Registry) Reference(parent, field, child, override string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.targets[child]
	if !ok {
		return "", diagnostic.Errorf(diagnostic.CodeUnknownNestedRecord, parent, field,
			"record %q has not been resolved", child)
	}

	if override == "" {
		return t.name, nil
	}

	if owner, ok := r.owners[override]; ok && owner != child {
		return "", diagnostic.Errorf(diagnostic.CodeNestedNameConflict, parent, field,
			"override %q for record %q is the patch name of record %q", override, child, owner)
	}

	if ref, ok := r.refs[override]; ok && ref != child {
		return "", diagnostic.Errorf(diagnostic.CodeNestedNameConflict, parent, field,
			"override %q for record %q already references record %q", override, child, ref)
	}

	switch {
	case t.override == "":
		t.override = override
		t.requester = parent
	case t.override != override && t.requester != parent:
		return "", diagnostic.Errorf(diagnostic.CodeNestedNameConflict, parent, field,
			"record %q is already referenced as %q by %q, cannot reference it as %q",
			child, t.override, t.requester, override)
	}

	r.refs[override] = child

	return override, nil
}

// Entries returns a snapshot of every resolution, sorted by record.
func (r *Registry) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, 0, len(r.targets))
	for rec, t := range r.targets {
		out = append(out, Entry{Record: rec, Override: t.override, Name: t.name})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Record < out[j].Record })

	return out
}
