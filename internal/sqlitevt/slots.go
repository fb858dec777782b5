package sqlitevt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/masmgr/gitsql/internal/vtab"
)

// encodeSlots records, for each constraint the engine will pass a value for,
// the argument slot that value belongs in. SQLite hands Filter its values in
// constraint order, which is not necessarily ascending column order.
func encodeSlots(plan vtab.Plan) string {
	var parts []string
	for i := range plan.Argv {
		if plan.Used(i) {
			parts = append(parts, strconv.Itoa(plan.Argv[i]))
		}
	}
	return strings.Join(parts, ",")
}

// reorderArgs moves the Filter values into slot order.
func reorderArgs(idxStr string, vals []any) ([]any, error) {
	if idxStr == "" {
		if len(vals) != 0 {
			return nil, fmt.Errorf("%w: %d unexpected arguments", vtab.ErrConstraintBinding, len(vals))
		}
		return nil, nil
	}

	parts := strings.Split(idxStr, ",")
	if len(parts) != len(vals) {
		return nil, fmt.Errorf("%w: plan expects %d arguments, got %d", vtab.ErrConstraintBinding, len(parts), len(vals))
	}

	args := make([]any, len(vals))
	for k, p := range parts {
		slot, err := strconv.Atoi(p)
		if err != nil || slot < 1 || slot > len(vals) {
			return nil, fmt.Errorf("%w: invalid slot %q", vtab.ErrConstraintBinding, p)
		}
		args[slot-1] = vals[k]
	}
	return args, nil
}

// estimate returns the cost and row estimates handed to the SQLite planner.
// Unbound scans are priced high so that joins bind the hidden columns.
func estimate(mode vtab.BindMode) (cost, rows float64) {
	switch mode {
	case vtab.BothBound:
		return 10, 100
	case vtab.RevisionBound, vtab.RepositoryBound:
		return 1e3, 1e3
	default:
		return 1e6, 1e5
	}
}
