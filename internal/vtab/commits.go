package vtab

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/masmgr/gitsql/internal/git"
)

// Column positions of the commits and commit relations.
const (
	colHash = iota
	colMessage
	colAuthorName
	colAuthorEmail
	colAuthorWhen
	colCommitterName
	colCommitterEmail
	colCommitterWhen
	colIsMerge
	colParent1
	colParent2
	colCommitsRepository
	colCommitsRevision
)

var commitsHidden = HiddenColumns{Repository: colCommitsRepository, Revision: colCommitsRevision}

func commitsSchema(name string) Schema {
	return Schema{
		Name: name,
		Columns: []Column{
			{Name: "hash", Type: TypeText},
			{Name: "message", Type: TypeText},
			{Name: "author_name", Type: TypeText},
			{Name: "author_email", Type: TypeText},
			{Name: "author_when", Type: TypeDateTime},
			{Name: "committer_name", Type: TypeText},
			{Name: "committer_email", Type: TypeText},
			{Name: "committer_when", Type: TypeDateTime},
			{Name: "is_merge", Type: TypeBool},
			{Name: "parent_1", Type: TypeText},
			{Name: "parent_2", Type: TypeText},
			{Name: "repository", Type: TypeHidden},
			{Name: "revision", Type: TypeHidden},
		},
	}
}

// CommitsRelation exposes commit history. With a bound revision, the
// "commits" relation walks the ancestry of that revision; the "commit_info"
// relation returns the revision's commit alone.
type CommitsRelation struct {
	schema Schema
	single bool
	opts   Options
}

// NewCommitsRelation creates the "commits" relation.
func NewCommitsRelation(opts Options) *CommitsRelation {
	return &CommitsRelation{schema: commitsSchema("commits"), opts: opts.withDefaults()}
}

// NewCommitRelation creates the single-commit "commit_info" relation.
func NewCommitRelation(opts Options) *CommitsRelation {
	return &CommitsRelation{schema: commitsSchema("commit_info"), single: true, opts: opts.withDefaults()}
}

// Schema returns the relation schema.
func (r *CommitsRelation) Schema() Schema {
	return r.schema
}

// PlanBinding plans the repository and revision parameters.
func (r *CommitsRelation) PlanBinding(constraints []Constraint) Plan {
	plan := PlanBinding(constraints, commitsHidden)
	r.opts.Logger.Debug("planned binding",
		zap.String("relation", r.schema.Name),
		zap.Int("constraints", len(constraints)),
		zap.Stringer("mode", plan.Mode),
		zap.Ints("columns", plan.Columns),
	)
	return plan
}

// Open returns an unbound cursor.
func (r *CommitsRelation) Open() (Cursor, error) {
	return &commitsCursor{rel: r}, nil
}

type commitsCursor struct {
	rowCursor
	rel  *CommitsRelation
	rows []git.CommitRecord
}

func (c *commitsCursor) Filter(mode BindMode, args []any) error {
	c.unbind()
	c.rows = nil

	b, err := Bind(mode, commitsHidden, args)
	if err != nil {
		return err
	}

	opts := c.rel.opts
	src, err := opts.Open(b.RepositoryPath(opts.DefaultRepository))
	if err != nil {
		return err
	}

	var rows []git.CommitRecord
	if c.rel.single {
		rec, err := src.Lookup(b.RevisionOrHead())
		if err != nil {
			return err
		}
		rows = []git.CommitRecord{rec}
	} else {
		rows, err = src.Walk(b.RevisionOrHead())
		if err != nil {
			return err
		}
	}

	c.rows = rows
	c.bind(b, src, len(rows))

	opts.Logger.Debug("filtered",
		zap.String("relation", c.rel.schema.Name),
		zap.Stringer("mode", mode),
		zap.String("repository", src.Path()),
		zap.String("revision", b.RevisionOrHead()),
		zap.Int("rows", len(rows)),
	)
	return nil
}

func (c *commitsCursor) Next() error {
	return c.advance()
}

// EOF reports the end of the rows. A bound single-commit cursor has exactly
// one row no matter what the source returned.
func (c *commitsCursor) EOF() bool {
	if c.rel.single && c.binding.Revision != nil && c.state != stateUnbound {
		return c.pos >= 1 || len(c.rows) == 0
	}
	return c.atEnd()
}

func (c *commitsCursor) Column(i int) (any, error) {
	if c.EOF() {
		return nil, ErrNoRow
	}
	rec := c.rows[c.pos]

	switch i {
	case colHash:
		return rec.Hash, nil
	case colMessage:
		return nullable(rec.Message), nil
	case colAuthorName:
		return nullable(rec.Author.Name), nil
	case colAuthorEmail:
		return nullable(rec.Author.Email), nil
	case colAuthorWhen:
		return rec.Author.When, nil
	case colCommitterName:
		return nullable(rec.Committer.Name), nil
	case colCommitterEmail:
		return nullable(rec.Committer.Email), nil
	case colCommitterWhen:
		return rec.Committer.When, nil
	case colIsMerge:
		return rec.IsMerge(), nil
	case colParent1:
		return nullable(rec.Parent(0)), nil
	case colParent2:
		return nullable(rec.Parent(1)), nil
	case colCommitsRepository:
		return nullable(c.binding.Repository), nil
	case colCommitsRevision:
		return nullable(c.binding.Revision), nil
	default:
		return nil, fmt.Errorf("%s: column %d out of range", c.rel.schema.Name, i)
	}
}
