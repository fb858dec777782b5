package vtab

import (
	"fmt"
	"sort"
)

// ResultSet is a fully read query result.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// Scan runs rel without an SQL engine: each entry of params becomes an
// equality constraint on the hidden column of that name, and the cursor is
// driven through the same plan, filter and iterate calls an engine makes.
// The visible columns of every row are collected.
func Scan(rel Relation, params map[string]string) (*ResultSet, error) {
	schema := rel.Schema()

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	constraints := make([]Constraint, 0, len(names))
	for _, name := range names {
		idx := schema.Index(name)
		if idx < 0 || !schema.Columns[idx].Hidden() {
			return nil, fmt.Errorf("%s: %q is not a parameter column", schema.Name, name)
		}
		constraints = append(constraints, Constraint{Column: idx, Op: OpEQ, Usable: true})
	}

	plan := rel.PlanBinding(constraints)
	args := make([]any, len(plan.Columns))
	for i, name := range names {
		if !plan.Used(i) {
			return nil, fmt.Errorf("%w: %s: parameter %q was not bound", ErrConstraintBinding, schema.Name, name)
		}
		args[plan.Argv[i]-1] = params[name]
	}

	cur, err := rel.Open()
	if err != nil {
		return nil, err
	}
	defer cur.Close()

	if err := cur.Filter(plan.Mode, args); err != nil {
		return nil, err
	}

	visible := schema.VisibleColumns()
	rs := &ResultSet{Columns: make([]string, len(visible))}
	for i, idx := range visible {
		rs.Columns[i] = schema.Columns[idx].Name
	}

	for !cur.EOF() {
		row := make([]any, len(visible))
		for i, idx := range visible {
			v, err := cur.Column(idx)
			if err != nil {
				return nil, err
			}
			row[i] = v
		}
		rs.Rows = append(rs.Rows, row)
		if err := cur.Next(); err != nil {
			return nil, err
		}
	}

	return rs, nil
}
