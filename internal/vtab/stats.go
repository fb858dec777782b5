package vtab

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/masmgr/gitsql/internal/git"
)

// Column positions of the stats relation.
const (
	colFileName = iota
	colAdditions
	colDeletions
	colStatsRepository
	colStatsHash
)

var statsHidden = HiddenColumns{Repository: colStatsRepository, Revision: colStatsHash}

// StatsRelation exposes per-file line statistics of one commit.
type StatsRelation struct {
	schema Schema
	opts   Options
}

// NewStatsRelation creates the "stats" relation.
func NewStatsRelation(opts Options) *StatsRelation {
	return &StatsRelation{
		schema: Schema{
			Name: "stats",
			Columns: []Column{
				{Name: "file_name", Type: TypeText},
				{Name: "additions", Type: TypeInteger},
				{Name: "deletions", Type: TypeInteger},
				{Name: "repository", Type: TypeHidden},
				{Name: "hash", Type: TypeHidden},
			},
		},
		opts: opts.withDefaults(),
	}
}

// Schema returns the relation schema.
func (r *StatsRelation) Schema() Schema {
	return r.schema
}

// PlanBinding plans the repository and hash parameters.
func (r *StatsRelation) PlanBinding(constraints []Constraint) Plan {
	plan := PlanBinding(constraints, statsHidden)
	r.opts.Logger.Debug("planned binding",
		zap.String("relation", r.schema.Name),
		zap.Int("constraints", len(constraints)),
		zap.Stringer("mode", plan.Mode),
		zap.Ints("columns", plan.Columns),
	)
	return plan
}

// Open returns an unbound cursor.
func (r *StatsRelation) Open() (Cursor, error) {
	return &statsCursor{rel: r}, nil
}

type statsCursor struct {
	rowCursor
	rel  *StatsRelation
	rows []git.FileDelta
	// hash echoed in the hash column
	hash string
}

func (c *statsCursor) Filter(mode BindMode, args []any) error {
	c.unbind()
	c.rows = nil
	c.hash = ""

	b, err := Bind(mode, statsHidden, args)
	if err != nil {
		return err
	}

	opts := c.rel.opts
	src, err := opts.Open(b.RepositoryPath(opts.DefaultRepository))
	if err != nil {
		return err
	}

	hash := b.RevisionOrHead()
	if b.Revision == nil {
		if hash, err = src.HeadHash(); err != nil {
			return err
		}
	}

	rows, err := src.Stats(hash)
	if err != nil {
		return err
	}

	c.rows = rows
	c.hash = hash
	c.bind(b, src, len(rows))

	opts.Logger.Debug("filtered",
		zap.String("relation", c.rel.schema.Name),
		zap.Stringer("mode", mode),
		zap.String("repository", src.Path()),
		zap.String("hash", hash),
		zap.Int("rows", len(rows)),
	)
	return nil
}

func (c *statsCursor) Next() error {
	return c.advance()
}

func (c *statsCursor) EOF() bool {
	return c.atEnd()
}

func (c *statsCursor) Column(i int) (any, error) {
	if c.EOF() {
		return nil, ErrNoRow
	}
	d := c.rows[c.pos]

	switch i {
	case colFileName:
		return d.Path, nil
	case colAdditions:
		return int64(d.Additions), nil
	case colDeletions:
		return int64(d.Deletions), nil
	case colStatsRepository:
		return nullable(c.binding.Repository), nil
	case colStatsHash:
		return c.hash, nil
	default:
		return nil, fmt.Errorf("%s: column %d out of range", c.rel.schema.Name, i)
	}
}
