// Package entropy measures how evenly a commit's churn is spread over files.
package entropy

import (
	"math"

	"github.com/masmgr/gitsql/internal/git"
)

// ChangeEntropy returns the normalized Shannon entropy of the per-file churn
// of one commit (Hassan 2009, "Predicting Faults Using the Complexity of Code
// Changes"):
//   - 0 = focused change (single file or all changes in one file)
//   - 1 = highly dispersed change (changes evenly distributed)
func ChangeEntropy(deltas []git.FileDelta) float64 {
	var acc Accumulator
	for _, d := range deltas {
		acc.Add(d.Additions, d.Deletions)
	}
	return acc.Value()
}

// Accumulator computes ChangeEntropy one file at a time. The zero value is
// ready to use.
type Accumulator struct {
	churns []int
	total  int
}

// Add records one file's added and deleted lines.
func (a *Accumulator) Add(additions, deletions int) {
	churn := additions + deletions
	a.churns = append(a.churns, churn)
	a.total += churn
}

// Files returns the number of files recorded.
func (a *Accumulator) Files() int {
	return len(a.churns)
}

// Value returns the normalized entropy of the recorded files.
func (a *Accumulator) Value() float64 {
	n := len(a.churns)
	if n <= 1 {
		// Single file change has no distribution, entropy is 0
		return 0.0
	}

	if a.total == 0 {
		// No actual changes, treat as uniform distribution
		return 1.0
	}

	// Shannon entropy: -Σ(p_i × log2(p_i))
	entropy := 0.0
	for _, churn := range a.churns {
		if churn > 0 {
			p := float64(churn) / float64(a.total)
			entropy -= p * math.Log2(p)
		}
	}

	// Normalize by maximum possible entropy (log2(n) for n files)
	normalized := entropy / math.Log2(float64(n))

	if normalized < 0 {
		return 0.0
	}
	if normalized > 1 {
		return 1.0
	}
	return normalized
}
