package vtab

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"
)

// --- Generators ---

func genConstraint() *rapid.Generator[Constraint] {
	return rapid.Custom(func(t *rapid.T) Constraint {
		return Constraint{
			Column: rapid.IntRange(0, 12).Draw(t, "column"),
			Op:     rapid.SampledFrom([]Op{OpEQ, OpOther}).Draw(t, "op"),
			Usable: rapid.Bool().Draw(t, "usable"),
		}
	})
}

func genConstraints() *rapid.Generator[[]Constraint] {
	return rapid.SliceOfN(genConstraint(), 0, 8)
}

func boundColumns(cs []Constraint, p Plan) []int {
	var cols []int
	for i := range cs {
		if p.Used(i) {
			cols = append(cols, cs[i].Column)
		}
	}
	return cols
}

// --- Property Tests ---

func TestRapidPlanBinding_Deterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cs := genConstraints().Draw(t, "constraints")
		a := PlanBinding(cs, testHidden)
		b := PlanBinding(cs, testHidden)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("plans differ: %+v vs %+v", a, b)
		}
	})
}

func TestRapidPlanBinding_OrderIndependent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cs := genConstraints().Draw(t, "constraints")
		perm := rapid.Permutation(cs).Draw(t, "permutation")

		a := PlanBinding(cs, testHidden)
		b := PlanBinding(perm, testHidden)
		if a.Mode != b.Mode {
			t.Fatalf("mode %s vs %s after permutation", a.Mode, b.Mode)
		}
		if !reflect.DeepEqual(a.Columns, b.Columns) {
			t.Fatalf("columns %v vs %v after permutation", a.Columns, b.Columns)
		}
	})
}

func TestRapidPlanBinding_SlotsAscendByColumn(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cs := genConstraints().Draw(t, "constraints")
		p := PlanBinding(cs, testHidden)

		if len(p.Argv) != len(cs) {
			t.Fatalf("len(Argv) = %d, expected %d", len(p.Argv), len(cs))
		}
		if len(p.Columns) != p.Mode.Arity() {
			t.Fatalf("%s plan binds %d columns", p.Mode, len(p.Columns))
		}
		for i := 1; i < len(p.Columns); i++ {
			if p.Columns[i-1] >= p.Columns[i] {
				t.Fatalf("columns not strictly ascending: %v", p.Columns)
			}
		}
		for i, slot := range p.Argv {
			if slot == 0 {
				continue
			}
			if p.Columns[slot-1] != cs[i].Column {
				t.Fatalf("slot %d holds column %d, constraint %d is on column %d", slot, p.Columns[slot-1], i, cs[i].Column)
			}
			if !cs[i].Usable || cs[i].Op != OpEQ {
				t.Fatalf("unusable constraint %d assigned slot %d", i, slot)
			}
		}
	})
}

func TestRapidPlanBinding_ModeMatchesBoundSet(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cs := genConstraints().Draw(t, "constraints")
		p := PlanBinding(cs, testHidden)
		cols := boundColumns(cs, p)

		var want BindMode
		switch {
		case len(cols) == 0:
			want = Unbound
		case len(cols) == 2:
			want = BothBound
		case cols[0] == testHidden.Revision:
			want = RevisionBound
		default:
			want = RepositoryBound
		}
		if p.Mode != want {
			t.Fatalf("mode = %s, bound columns %v imply %s", p.Mode, cols, want)
		}
		for _, c := range cols {
			if c != testHidden.Repository && c != testHidden.Revision {
				t.Fatalf("visible column %d was bound", c)
			}
		}
	})
}
