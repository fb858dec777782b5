// Package gittest builds throwaway repositories for tests.
package gittest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repo is a temporary repository with a worktree.
type Repo struct {
	Dir  string
	Repo *gogit.Repository

	tb testing.TB
	wt *gogit.Worktree
}

// New initializes an empty repository in a temp dir.
func New(tb testing.TB) *Repo {
	tb.Helper()

	dir := tb.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		tb.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		tb.Fatalf("Worktree: %v", err)
	}
	return &Repo{Dir: dir, Repo: repo, tb: tb, wt: wt}
}

// Write writes content to rel and stages it.
func (r *Repo) Write(rel, content string) {
	r.tb.Helper()
	full := filepath.Join(r.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.tb.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		r.tb.Fatalf("WriteFile: %v", err)
	}
	if _, err := r.wt.Add(rel); err != nil {
		r.tb.Fatalf("Add: %v", err)
	}
}

// Remove deletes rel from the worktree and the index.
func (r *Repo) Remove(rel string) {
	r.tb.Helper()
	if _, err := r.wt.Remove(rel); err != nil {
		r.tb.Fatalf("Remove: %v", err)
	}
}

// Signature returns the identity used by Commit.
func Signature(when time.Time) *object.Signature {
	return &object.Signature{
		Name:  "Test Author",
		Email: "test@example.com",
		When:  when,
	}
}

// Commit records the index as a new commit. Without explicit parents the
// commit goes on top of HEAD.
func (r *Repo) Commit(msg string, when time.Time, parents ...plumbing.Hash) plumbing.Hash {
	r.tb.Helper()
	return r.CommitAs(msg, Signature(when), parents...)
}

// CommitAs is Commit with an explicit author and committer signature.
func (r *Repo) CommitAs(msg string, sig *object.Signature, parents ...plumbing.Hash) plumbing.Hash {
	r.tb.Helper()
	h, err := r.wt.Commit(msg, &gogit.CommitOptions{
		Author:            sig,
		Committer:         sig,
		Parents:           parents,
		AllowEmptyCommits: true,
	})
	if err != nil {
		r.tb.Fatalf("Commit: %v", err)
	}
	return h
}

// MergeHistory holds the commits created by NewMergeHistory.
type MergeHistory struct {
	Root  plumbing.Hash // base.txt
	Left  plumbing.Hash // root + left.txt
	Right plumbing.Hash // root + right.txt, not containing left.txt
	Merge plumbing.Hash // parents Left, Right
}

// NewMergeHistory builds a diamond:
//
//	Root <- Left  <- Merge
//	     <- Right <-
//
// HEAD ends on Merge.
func NewMergeHistory(tb testing.TB) (*Repo, MergeHistory) {
	tb.Helper()

	r := New(tb)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	var h MergeHistory
	r.Write("base.txt", "one\ntwo\n")
	h.Root = r.Commit("root\n", base)

	r.Write("left.txt", "left\n")
	h.Left = r.Commit("left\n", base.Add(time.Hour))

	r.Remove("left.txt")
	r.Write("right.txt", "right 1\nright 2\n")
	h.Right = r.Commit("right\n", base.Add(2*time.Hour), h.Root)

	r.Write("left.txt", "left\n")
	h.Merge = r.Commit("merge\n", base.Add(3*time.Hour), h.Left, h.Right)

	return r, h
}
