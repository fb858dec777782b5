package vtab

import "sort"

// Op is the comparison operator of a constraint offered by the engine.
type Op int

const (
	OpOther Op = iota
	OpEQ
)

// Constraint is one predicate the engine offers to push down.
type Constraint struct {
	Column int
	Op     Op
	Usable bool
}

// HiddenColumns names the two parameter columns of a relation.
type HiddenColumns struct {
	Repository int
	Revision   int
}

// BindMode classifies which parameters a query supplies.
type BindMode int

const (
	Unbound BindMode = iota
	RevisionBound
	RepositoryBound
	BothBound
)

// String returns a string representation of the bind mode.
func (m BindMode) String() string {
	switch m {
	case Unbound:
		return "unbound"
	case RevisionBound:
		return "revision-bound"
	case RepositoryBound:
		return "repository-bound"
	case BothBound:
		return "both-bound"
	default:
		return "unknown"
	}
}

// Arity returns the number of arguments Filter receives in this mode.
func (m BindMode) Arity() int {
	switch m {
	case RevisionBound, RepositoryBound:
		return 1
	case BothBound:
		return 2
	default:
		return 0
	}
}

// Plan is the outcome of the binding negotiation.
type Plan struct {
	Mode BindMode
	// Argv holds, per offered constraint, the 1-based argument slot its
	// value occupies at Filter time; 0 means the constraint is not consumed.
	Argv []int
	// Columns holds the column bound by each argument slot, ascending.
	Columns []int
}

// Used reports whether constraint i is consumed by the plan.
func (p Plan) Used(i int) bool {
	return i < len(p.Argv) && p.Argv[i] > 0
}

// PlanBinding chooses a bind mode from the usable equality constraints on
// the hidden columns. Other constraints are left to the engine. Slots are
// assigned in ascending column order, so they do not depend on the order
// the constraints were offered in.
func PlanBinding(constraints []Constraint, hidden HiddenColumns) Plan {
	plan := Plan{Mode: Unbound, Argv: make([]int, len(constraints))}

	var bound []int
	for i, c := range constraints {
		if !c.Usable || c.Op != OpEQ {
			continue
		}
		if c.Column != hidden.Repository && c.Column != hidden.Revision {
			continue
		}
		bound = append(bound, i)
	}

	sort.SliceStable(bound, func(a, b int) bool {
		return constraints[bound[a]].Column < constraints[bound[b]].Column
	})

	cols := make([]int, len(bound))
	for i, idx := range bound {
		cols[i] = constraints[idx].Column
	}

	switch {
	case len(cols) == 1 && cols[0] == hidden.Revision:
		plan.Mode = RevisionBound
	case len(cols) == 1 && cols[0] == hidden.Repository:
		plan.Mode = RepositoryBound
	case len(cols) == 2 && cols[0] != cols[1]:
		plan.Mode = BothBound
	default:
		return plan
	}

	for slot, idx := range bound {
		plan.Argv[idx] = slot + 1
	}
	plan.Columns = cols
	return plan
}
