package git

import (
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// DiffAggregator computes per-file line statistics for single commits.
type DiffAggregator struct {
	repo   *Repository
	filter *PathFilter
	opts   DiffOptions
}

// NewDiffAggregator creates an aggregator over repo. filter may be nil.
func NewDiffAggregator(repo *Repository, filter *PathFilter) *DiffAggregator {
	return &DiffAggregator{repo: repo, filter: filter, opts: StatsDiffOptions()}
}

// Stats resolves revision (HEAD when empty) and returns one FileDelta per
// file with at least one counted line, sorted by path.
//
// The compared trees depend on the parent count:
//   - root commit: its own tree against itself, always empty
//   - one parent: parent tree to commit tree
//   - merge: first parent's tree to second parent's tree
//
// Commits with more than two parents are rejected.
func (a *DiffAggregator) Stats(revision string) ([]FileDelta, error) {
	c, err := a.repo.Resolve(revision)
	if err != nil {
		return nil, err
	}
	return a.CommitStats(c)
}

// CommitStats is Stats for an already resolved commit.
func (a *DiffAggregator) CommitStats(c *object.Commit) ([]FileDelta, error) {
	from, to, err := a.comparisonTrees(c)
	if err != nil {
		return nil, err
	}

	events, err := a.repo.DiffTrees(from, to, a.opts)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]*FileDelta)
	for _, ev := range events {
		if ev.Kind == LineContext {
			continue
		}
		ok, err := a.filter.Match(ev.Path)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		d, exists := counts[ev.Path]
		if !exists {
			d = &FileDelta{Path: ev.Path}
			counts[ev.Path] = d
		}
		switch ev.Kind {
		case LineAddition:
			d.Additions++
		case LineDeletion:
			d.Deletions++
		}
	}

	deltas := make([]FileDelta, 0, len(counts))
	for _, d := range counts {
		deltas = append(deltas, *d)
	}
	sort.Slice(deltas, func(i, j int) bool {
		return deltas[i].Path < deltas[j].Path
	})
	return deltas, nil
}

func (a *DiffAggregator) comparisonTrees(c *object.Commit) (from, to *object.Tree, err error) {
	switch n := len(c.ParentHashes); n {
	case 0:
		tree, err := a.repo.Tree(c)
		if err != nil {
			return nil, nil, err
		}
		return tree, tree, nil
	case 1:
		to, err = a.repo.Tree(c)
		if err != nil {
			return nil, nil, err
		}
		from, err = a.repo.ParentTree(c, 0)
		if err != nil {
			return nil, nil, err
		}
		return from, to, nil
	case 2:
		from, err = a.repo.ParentTree(c, 0)
		if err != nil {
			return nil, nil, err
		}
		to, err = a.repo.ParentTree(c, 1)
		if err != nil {
			return nil, nil, err
		}
		return from, to, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s has %d parents", ErrUnsupportedMergeTopology, c.Hash, n)
	}
}
