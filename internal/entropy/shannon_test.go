package entropy

import (
	"math"
	"testing"

	"github.com/masmgr/gitsql/internal/git"
)

func TestChangeEntropy_EmptyChanges(t *testing.T) {
	result := ChangeEntropy(nil)
	if result != 0.0 {
		t.Errorf("ChangeEntropy(nil) = %f, expected 0.0", result)
	}

	result = ChangeEntropy([]git.FileDelta{})
	if result != 0.0 {
		t.Errorf("ChangeEntropy([]) = %f, expected 0.0", result)
	}
}

func TestChangeEntropy_SingleFile(t *testing.T) {
	changes := []git.FileDelta{
		{Path: "file1.go", Additions: 10, Deletions: 5},
	}
	result := ChangeEntropy(changes)
	if result != 0.0 {
		t.Errorf("ChangeEntropy(single file) = %f, expected 0.0", result)
	}
}

func TestChangeEntropy_UniformDistribution(t *testing.T) {
	// Two files with equal churn → maximum entropy = 1.0
	changes := []git.FileDelta{
		{Path: "file1.go", Additions: 10, Deletions: 10},
		{Path: "file2.go", Additions: 10, Deletions: 10},
	}
	result := ChangeEntropy(changes)
	if math.Abs(result-1.0) > 0.001 {
		t.Errorf("ChangeEntropy(uniform 2 files) = %f, expected 1.0", result)
	}

	// Three files with equal churn → maximum entropy = 1.0
	changes3 := []git.FileDelta{
		{Path: "file1.go", Additions: 5, Deletions: 5},
		{Path: "file2.go", Additions: 5, Deletions: 5},
		{Path: "file3.go", Additions: 5, Deletions: 5},
	}
	result3 := ChangeEntropy(changes3)
	if math.Abs(result3-1.0) > 0.001 {
		t.Errorf("ChangeEntropy(uniform 3 files) = %f, expected 1.0", result3)
	}
}

func TestChangeEntropy_SkewedDistribution(t *testing.T) {
	// One file dominates → low entropy
	changes := []git.FileDelta{
		{Path: "file1.go", Additions: 100, Deletions: 0},
		{Path: "file2.go", Additions: 1, Deletions: 0},
	}
	result := ChangeEntropy(changes)
	if result >= 0.2 {
		t.Errorf("ChangeEntropy(skewed) = %f, expected < 0.2", result)
	}
}

func TestChangeEntropy_ZeroChurn(t *testing.T) {
	// Multiple files all with zero churn → 1.0
	changes := []git.FileDelta{
		{Path: "file1.go", Additions: 0, Deletions: 0},
		{Path: "file2.go", Additions: 0, Deletions: 0},
	}
	result := ChangeEntropy(changes)
	if result != 1.0 {
		t.Errorf("ChangeEntropy(zero churn) = %f, expected 1.0", result)
	}
}

func TestChangeEntropy_BoundedRange(t *testing.T) {
	testCases := [][]git.FileDelta{
		{{Path: "a.go", Additions: 1, Deletions: 0}},
		{
			{Path: "a.go", Additions: 50, Deletions: 50},
			{Path: "b.go", Additions: 1, Deletions: 0},
		},
		{
			{Path: "a.go", Additions: 10, Deletions: 0},
			{Path: "b.go", Additions: 10, Deletions: 0},
			{Path: "c.go", Additions: 10, Deletions: 0},
			{Path: "d.go", Additions: 10, Deletions: 0},
		},
	}

	for i, changes := range testCases {
		result := ChangeEntropy(changes)
		if result < 0.0 || result > 1.0 {
			t.Errorf("Case %d: ChangeEntropy() = %f, expected in [0, 1]", i, result)
		}
	}
}

func TestAccumulator_MatchesChangeEntropy(t *testing.T) {
	changes := []git.FileDelta{
		{Path: "a.go", Additions: 0, Deletions: 1},
		{Path: "b.go", Additions: 2, Deletions: 0},
	}

	var acc Accumulator
	if acc.Value() != 0.0 {
		t.Errorf("zero Accumulator Value() = %f, expected 0.0", acc.Value())
	}
	for _, c := range changes {
		acc.Add(c.Additions, c.Deletions)
	}

	if acc.Files() != 2 {
		t.Errorf("Files() = %d, expected 2", acc.Files())
	}
	if got, want := acc.Value(), ChangeEntropy(changes); got != want {
		t.Errorf("Value() = %f, ChangeEntropy() = %f", got, want)
	}
	if math.Abs(acc.Value()-0.9183) > 0.001 {
		t.Errorf("Value() = %f, expected about 0.9183", acc.Value())
	}
}
