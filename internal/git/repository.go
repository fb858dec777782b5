package git

import (
	"container/heap"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repository is a read-only handle on a repository rooted at a filesystem path.
type Repository struct {
	path string
	repo *gogit.Repository
}

// Open opens the repository containing path.
func Open(path string) (*Repository, error) {
	if path == "" {
		path = "."
	}
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRepositoryOpen, path, err)
	}
	return &Repository{path: path, repo: repo}, nil
}

// Path returns the path the repository was opened with.
func (r *Repository) Path() string {
	return r.path
}

// Head returns the commit HEAD points at.
func (r *Repository) Head() (*object.Commit, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("%w: HEAD: %w", ErrRevisionResolution, err)
	}
	c, err := r.repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("%w: HEAD: %w", ErrRevisionResolution, err)
	}
	return c, nil
}

// Resolve resolves a revision expression (hash, abbreviated hash, branch,
// tag, HEAD~n, ...) to a commit. An empty revision resolves to HEAD.
func (r *Repository) Resolve(revision string) (*object.Commit, error) {
	if revision == "" {
		return r.Head()
	}
	h, err := r.repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrRevisionResolution, revision, err)
	}
	c, err := r.repo.CommitObject(*h)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrRevisionResolution, revision, err)
	}
	return c, nil
}

// Ancestors returns start and every commit reachable from it through any
// parent edge, each exactly once, in topological order: a commit always comes
// before its parents. Among commits whose children have all been emitted, the
// newest committer time goes first and ties are broken by hash.
func (r *Repository) Ancestors(start *object.Commit) ([]*object.Commit, error) {
	seen := map[plumbing.Hash]*object.Commit{start.Hash: start}
	children := make(map[plumbing.Hash]int)
	queue := []*object.Commit{start}

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, ph := range c.ParentHashes {
			children[ph]++
			if _, ok := seen[ph]; ok {
				continue
			}
			p, err := r.repo.CommitObject(ph)
			if err != nil {
				return nil, fmt.Errorf("%w: parent %s of %s: %w", ErrRevisionResolution, ph, c.Hash, err)
			}
			seen[ph] = p
			queue = append(queue, p)
		}
	}

	ordered := make([]*object.Commit, 0, len(seen))
	ready := &commitHeap{start}
	for ready.Len() > 0 {
		c := heap.Pop(ready).(*object.Commit)
		ordered = append(ordered, c)
		for _, ph := range c.ParentHashes {
			children[ph]--
			if children[ph] == 0 {
				heap.Push(ready, seen[ph])
			}
		}
	}

	return ordered, nil
}

// Tree returns the tree of a commit.
func (r *Repository) Tree(c *object.Commit) (*object.Tree, error) {
	t, err := r.repo.TreeObject(c.TreeHash)
	if err != nil {
		return nil, fmt.Errorf("%w: tree %s of %s: %w", ErrTreeLookup, c.TreeHash, c.Hash, err)
	}
	return t, nil
}

// ParentTree returns the tree of the i-th parent of c.
func (r *Repository) ParentTree(c *object.Commit, i int) (*object.Tree, error) {
	if i >= len(c.ParentHashes) {
		return nil, fmt.Errorf("%w: %s has no parent %d", ErrTreeLookup, c.Hash, i)
	}
	p, err := r.repo.CommitObject(c.ParentHashes[i])
	if err != nil {
		return nil, fmt.Errorf("%w: parent %s of %s: %w", ErrTreeLookup, c.ParentHashes[i], c.Hash, err)
	}
	return r.Tree(p)
}

// DiffTrees compares two trees and returns the line-level change events
// going from "from" to "to". Events of one file are contiguous; files are
// reported in the order go-git yields changes.
func (r *Repository) DiffTrees(from, to *object.Tree, opts DiffOptions) ([]LineEvent, error) {
	changes, err := object.DiffTree(from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiffComputation, err)
	}

	var events []LineEvent
	for _, change := range changes {
		path := change.To.Name
		if path == "" {
			path = change.From.Name
		}

		fromMode, toMode := change.From.TreeEntry.Mode, change.To.TreeEntry.Mode
		if fromMode == filemode.Submodule || toMode == filemode.Submodule {
			if !opts.IgnoreSubmodules {
				events = append(events, submoduleEvents(path, change)...)
			}
			continue
		}

		if opts.IgnoreFileMode && change.From.TreeEntry.Hash == change.To.TreeEntry.Hash {
			continue
		}

		fromFile, toFile, err := change.Files()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDiffComputation, path, err)
		}

		oldText, binary, err := fileText(fromFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDiffComputation, path, err)
		}
		if binary {
			continue
		}
		newText, binary, err := fileText(toFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDiffComputation, path, err)
		}
		if binary {
			continue
		}

		events = append(events, DiffLines(path, oldText, newText, opts)...)
	}

	return events, nil
}

// fileText returns the contents of f; a nil file reads as empty.
func fileText(f *object.File) (string, bool, error) {
	if f == nil {
		return "", false, nil
	}
	binary, err := f.IsBinary()
	if err != nil {
		return "", false, err
	}
	if binary {
		return "", true, nil
	}
	s, err := f.Contents()
	return s, false, err
}

func submoduleEvents(path string, change *object.Change) []LineEvent {
	var events []LineEvent
	if !change.From.TreeEntry.Hash.IsZero() {
		events = append(events, LineEvent{Path: path, Kind: LineDeletion, Text: "Subproject commit " + change.From.TreeEntry.Hash.String()})
	}
	if !change.To.TreeEntry.Hash.IsZero() {
		events = append(events, LineEvent{Path: path, Kind: LineAddition, Text: "Subproject commit " + change.To.TreeEntry.Hash.String()})
	}
	return events
}

// commitHeap orders ready commits newest first.
type commitHeap []*object.Commit

func (h commitHeap) Len() int { return len(h) }

func (h commitHeap) Less(i, j int) bool {
	ti, tj := h[i].Committer.When, h[j].Committer.When
	if !ti.Equal(tj) {
		return ti.After(tj)
	}
	return h[i].Hash.String() < h[j].Hash.String()
}

func (h commitHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *commitHeap) Push(x any) { *h = append(*h, x.(*object.Commit)) }

func (h *commitHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}
