package vtab

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/masmgr/gitsql/internal/git"
)

// Relation is a named table the engine can query.
type Relation interface {
	// Schema describes the relation's columns.
	Schema() Schema
	// PlanBinding negotiates which offered constraints are bound before iteration.
	PlanBinding(constraints []Constraint) Plan
	// Open creates a new, unbound cursor.
	Open() (Cursor, error)
}

// Cursor iterates the rows of one relation.
type Cursor interface {
	// Filter binds args (ascending hidden column order) and materializes
	// the rows. It may be called repeatedly; each call starts from scratch.
	Filter(mode BindMode, args []any) error
	Next() error
	EOF() bool
	// Column returns the value of column i of the current row.
	Column(i int) (any, error)
	Rowid() (int64, error)
	Close() error
}

// Opener opens the history source behind a cursor.
type Opener func(path string) (git.Source, error)

// Options configures the relations.
type Options struct {
	// DefaultRepository is used when no repository is bound.
	DefaultRepository string
	// Filter restricts the files reported by the stats relation.
	Filter *git.PathFilter
	// Open overrides how sources are opened.
	Open   Opener
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.DefaultRepository == "" {
		o.DefaultRepository = "."
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Open == nil {
		filter := o.Filter
		o.Open = func(path string) (git.Source, error) {
			src, err := git.OpenSource(path, git.SourceOptions{Filter: filter})
			if err != nil {
				return nil, err
			}
			return src, nil
		}
	}
	return o
}

// Registry holds relations by name.
type Registry struct {
	relations map[string]Relation
	order     []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{relations: make(map[string]Relation)}
}

// DefaultRegistry registers commits, commit and stats.
func DefaultRegistry(opts Options) *Registry {
	r := NewRegistry()
	for _, rel := range []Relation{
		NewCommitsRelation(opts),
		NewCommitRelation(opts),
		NewStatsRelation(opts),
	} {
		// Names are distinct, so Register cannot fail here.
		_ = r.Register(rel)
	}
	return r
}

// Register adds rel under its schema name.
func (r *Registry) Register(rel Relation) error {
	name := rel.Schema().Name
	if _, exists := r.relations[name]; exists {
		return fmt.Errorf("relation %q already registered", name)
	}
	r.relations[name] = rel
	r.order = append(r.order, name)
	return nil
}

// Lookup returns the relation registered as name.
func (r *Registry) Lookup(name string) (Relation, bool) {
	rel, ok := r.relations[name]
	return rel, ok
}

// Relations returns the relations in registration order.
func (r *Registry) Relations() []Relation {
	out := make([]Relation, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.relations[name])
	}
	return out
}
