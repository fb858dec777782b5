//go:build sqlite_vtable

package sqlitevt

import (
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/masmgr/gitsql/internal/vtab"
)

// module adapts a vtab.Relation to an eponymous-only SQLite module: the
// table exists under the relation's name without CREATE VIRTUAL TABLE.
type module struct {
	rel vtab.Relation
}

func (m *module) EponymousOnlyModule() {}

func (m *module) Create(c *sqlite3.SQLiteConn, args []string) (sqlite3.VTab, error) {
	return m.Connect(c, args)
}

func (m *module) Connect(c *sqlite3.SQLiteConn, args []string) (sqlite3.VTab, error) {
	if err := c.DeclareVTab(m.rel.Schema().SQL()); err != nil {
		return nil, fmt.Errorf("failed to declare %s: %w", m.rel.Schema().Name, err)
	}
	return &table{rel: m.rel}, nil
}

func (m *module) DestroyModule() {}

type table struct {
	rel vtab.Relation
}

func (t *table) BestIndex(cst []sqlite3.InfoConstraint, ob []sqlite3.InfoOrderBy) (*sqlite3.IndexResult, error) {
	constraints := make([]vtab.Constraint, len(cst))
	for i, c := range cst {
		op := vtab.OpOther
		if c.Op == sqlite3.OpEQ {
			op = vtab.OpEQ
		}
		constraints[i] = vtab.Constraint{Column: c.Column, Op: op, Usable: c.Usable}
	}

	plan := t.rel.PlanBinding(constraints)
	used := make([]bool, len(cst))
	for i := range cst {
		used[i] = plan.Used(i)
	}

	cost, rows := estimate(plan.Mode)
	return &sqlite3.IndexResult{
		Used:          used,
		IdxNum:        int(plan.Mode),
		IdxStr:        encodeSlots(plan),
		EstimatedCost: cost,
		EstimatedRows: rows,
	}, nil
}

func (t *table) Open() (sqlite3.VTabCursor, error) {
	cur, err := t.rel.Open()
	if err != nil {
		return nil, err
	}
	return &cursor{cur: cur}, nil
}

func (t *table) Disconnect() error { return nil }
func (t *table) Destroy() error    { return nil }

type cursor struct {
	cur vtab.Cursor
}

func (c *cursor) Filter(idxNum int, idxStr string, vals []any) error {
	args, err := reorderArgs(idxStr, vals)
	if err != nil {
		return err
	}
	return c.cur.Filter(vtab.BindMode(idxNum), args)
}

func (c *cursor) Next() error { return c.cur.Next() }

func (c *cursor) EOF() bool { return c.cur.EOF() }

func (c *cursor) Column(ctx *sqlite3.SQLiteContext, col int) error {
	v, err := c.cur.Column(col)
	if err != nil {
		return err
	}

	switch x := v.(type) {
	case nil:
		ctx.ResultNull()
	case string:
		ctx.ResultText(x)
	case int64:
		ctx.ResultInt64(x)
	case bool:
		ctx.ResultBool(x)
	case time.Time:
		ctx.ResultText(x.UTC().Format(time.RFC3339))
	default:
		return fmt.Errorf("column %d: unsupported value type %T", col, v)
	}
	return nil
}

func (c *cursor) Rowid() (int64, error) { return c.cur.Rowid() }

func (c *cursor) Close() error { return c.cur.Close() }
