package schema

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"substruct-generator/internal/classify"
	"substruct-generator/internal/descriptor"
	"substruct-generator/internal/diagnostic"
	"substruct-generator/internal/naming"
	"substruct-generator/internal/plan"
)

// Session is one generation session. Schemas built by earlier Build calls
// stay visible to later ones, so a batch may nest records resolved before.
type Session struct {
	id          uuid.UUID
	suffix      string
	concurrency int
	registry    *naming.Registry
	log         *zap.SugaredLogger

	mu      sync.Mutex
	schemas map[string]*plan.Schema
}

// Option configures a Session.
type Option func(*Session)

// WithSuffix sets the suffix of default patch names.
func WithSuffix(suffix string) Option {
	return func(s *Session) { s.suffix = suffix }
}

// WithLogger sets the session logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Session) { s.log = log }
}

// WithRegistry shares a naming registry with the session.
func WithRegistry(r *naming.Registry) Option {
	return func(s *Session) { s.registry = r }
}

// WithConcurrency bounds how many records of one level build at once.
// Values below one mean unbounded.
func WithConcurrency(n int) Option {
	return func(s *Session) { s.concurrency = n }
}

// NewSession returns a session with an empty registry.
func NewSession(opts ...Option) *Session {
	s := &Session{
		id:       uuid.New(),
		suffix:   naming.DefaultSuffix,
		registry: naming.NewRegistry(),
		log:      zap.NewNop().Sugar(),
		schemas:  map[string]*plan.Schema{},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.log = s.log.With("session", s.id.String())

	return s
}

// ID identifies the session in logs and exported documents.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Registry returns the session's naming registry.
func (s *Session) Registry() *naming.Registry {
	return s.registry
}

// Schema returns the schema resolved for a record.
func (s *Session) Schema(record string) (*plan.Schema, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.schemas[record]

	return sc, ok
}

// Schemas returns every schema resolved so far, sorted by record.
func (s *Session) Schemas() []*plan.Schema {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*plan.Schema, 0, len(s.schemas))
	for _, sc := range s.schemas {
		out = append(out, sc)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Record < out[j].Record })

	return out
}

// batch is the dependency view of one Build call.
type batch struct {
	records []descriptor.Record
	index   map[string]int
	deps    [][]int
	failed  []error
	built   []*plan.Schema
}

// Build resolves a batch of record descriptions. It returns the schemas that
// built, in input order, and the joined errors of those that did not.
func (s *Session) Build(ctx context.Context, records []descriptor.Record) ([]*plan.Schema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.plan(records)
	if err != nil {
		return nil, err
	}

	levels, err := topoLevels(len(records), func(i int) []int {
		if b.failed[i] != nil {
			return nil
		}

		var live []int

		for _, d := range b.deps[i] {
			if b.failed[d] == nil {
				live = append(live, d)
			}
		}

		return live
	})
	if err != nil {
		return nil, fmt.Errorf("order records: %w", err)
	}

	for _, level := range levels {
		if err := s.buildLevel(ctx, b, level); err != nil {
			return nil, err
		}
	}

	var (
		out  []*plan.Schema
		errs []error
	)

	for i := range records {
		if b.failed[i] != nil {
			errs = append(errs, b.failed[i])
			continue
		}

		out = append(out, b.built[i])
	}

	return out, errors.Join(errs...)
}

// plan indexes the batch, computes dependency edges, and marks records on a
// nesting cycle or nesting an unknown record as failed.
func (s *Session) plan(records []descriptor.Record) (*batch, error) {
	b := &batch{
		records: records,
		index:   make(map[string]int, len(records)),
		deps:    make([][]int, len(records)),
		failed:  make([]error, len(records)),
		built:   make([]*plan.Schema, len(records)),
	}

	for i, r := range records {
		if _, ok := b.index[r.Name]; ok {
			return nil, diagnostic.Errorf(diagnostic.CodeDuplicateRecord, r.Name, "",
				"record %q is described more than once", r.Name)
		}

		if _, ok := s.schemas[r.Name]; ok {
			return nil, diagnostic.Errorf(diagnostic.CodeDuplicateRecord, r.Name, "",
				"record %q was already resolved in this session", r.Name)
		}

		b.index[r.Name] = i
	}

	names := make(map[string]int, len(records))

	for i, r := range records {
		name := naming.StructName(r.Name, r.PatchName, s.suffix)
		if j, ok := names[name]; ok {
			b.failed[i] = diagnostic.Errorf(diagnostic.CodeDuplicatePatchName, r.Name, "",
				"patch name %q is already used by record %q", name, records[j].Name)

			continue
		}

		names[name] = i
	}

	for i, r := range records {
		for _, fd := range r.Tagged() {
			if fd.Kind != descriptor.KindNested || fd.Shape.Kind != descriptor.ShapeScalar {
				continue
			}

			if d, ok := b.index[fd.Shape.Type]; ok {
				b.deps[i] = append(b.deps[i], d)
				continue
			}

			if _, ok := s.schemas[fd.Shape.Type]; !ok && b.failed[i] == nil {
				b.failed[i] = diagnostic.Errorf(diagnostic.CodeUnknownNestedRecord, r.Name, fd.Name,
					"nested record %q is not described", fd.Shape.Type)
			}
		}
	}

	cycles := findCycles(len(records), func(i int) []int { return b.deps[i] })
	for i, cycle := range cycles {
		path := cyclePath(cycle, func(j int) string { return records[j].Name })
		b.failed[i] = diagnostic.Errorf(diagnostic.CodeCyclicNesting, records[i].Name, "",
			"record nests itself: %s", path)
	}

	return b, nil
}

func (s *Session) buildLevel(ctx context.Context, b *batch, level []int) error {
	g, ctx := errgroup.WithContext(ctx)
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}

	results := make([]*plan.Schema, len(level))
	errs := make([]error, len(level))

	for k, i := range level {
		if b.failed[i] != nil {
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[k], errs[k] = s.buildRecord(b, i)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for k, i := range level {
		if b.failed[i] != nil {
			continue
		}

		if errs[k] != nil {
			b.failed[i] = errs[k]
			s.log.Debugw("record failed", "record", b.records[i].Name, "error", errs[k])

			continue
		}

		b.built[i] = results[k]
		s.schemas[b.records[i].Name] = results[k]
	}

	return nil
}

// buildRecord classifies, names and assembles one record. Children are
// already built or failed when it runs.
func (s *Session) buildRecord(b *batch, i int) (*plan.Schema, error) {
	r := b.records[i]
	tagged := r.Tagged()
	name := naming.StructName(r.Name, r.PatchName, s.suffix)

	plans, err := classify.Fields(r.Name, tagged)
	if err != nil {
		return nil, err
	}

	for k := range plans {
		p := &plans[k]
		if p.Kind != plan.KindSettableNested {
			continue
		}

		child, err := s.child(b, p.Type)
		if err != nil {
			return nil, fmt.Errorf("record %q field %q: %w", r.Name, p.Name, err)
		}

		ref, err := s.registry.Reference(r.Name, p.Name, p.Type, tagged[k].NestedType)
		if err != nil {
			return nil, err
		}

		p.Nested = child
		p.NestedName = ref
	}

	sc, err := Build(r.Name, name, plans)
	if err != nil {
		return nil, err
	}

	if err := s.registry.Define(r.Name, name); err != nil {
		return nil, err
	}

	s.log.Debugw("record resolved",
		"record", r.Name,
		"patch", name,
		"fields", sc.Len(),
		"fingerprint", sc.Fingerprint())

	return sc, nil
}

func (s *Session) child(b *batch, record string) (*plan.Schema, error) {
	if i, ok := b.index[record]; ok {
		if b.failed[i] != nil {
			return nil, b.failed[i]
		}

		return b.built[i], nil
	}

	if sc, ok := s.schemas[record]; ok {
		return sc, nil
	}

	return nil, diagnostic.Errorf(diagnostic.CodeUnknownNestedRecord, record, "", "record is not described")
}
