package git

import (
	"time"
	"unicode/utf8"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// HashLength is the length of a hex-encoded commit hash.
const HashLength = 40

// Signature represents an author or committer identity.
// Name and Email are nil when the signature carries no usable value.
type Signature struct {
	Name  *string
	Email *string
	When  time.Time
}

// CommitRecord is a detached snapshot of a commit.
type CommitRecord struct {
	Hash      string
	Message   *string
	Author    Signature
	Committer Signature
	Parents   []string
}

// IsMerge reports whether the commit has exactly two parents.
func (c CommitRecord) IsMerge() bool {
	return len(c.Parents) == 2
}

// Parent returns the hash of the i-th parent, or nil if there is none.
func (c CommitRecord) Parent(i int) *string {
	if i < 0 || i >= len(c.Parents) {
		return nil
	}
	p := c.Parents[i]
	return &p
}

// FileDelta holds the line counts for one file changed by a commit.
type FileDelta struct {
	Path      string
	Additions int
	Deletions int
}

// Churn returns total lines changed (added + deleted).
func (f FileDelta) Churn() int {
	return f.Additions + f.Deletions
}

// newCommitRecord snapshots a go-git commit.
func newCommitRecord(c *object.Commit) CommitRecord {
	parents := make([]string, 0, len(c.ParentHashes))
	for _, h := range c.ParentHashes {
		parents = append(parents, h.String())
	}

	return CommitRecord{
		Hash:      c.Hash.String(),
		Message:   optionalText(c.Message, true),
		Author:    newSignature(c.Author),
		Committer: newSignature(c.Committer),
		Parents:   parents,
	}
}

func newSignature(s object.Signature) Signature {
	return Signature{
		Name:  optionalText(s.Name, false),
		Email: optionalText(s.Email, false),
		When:  s.When.UTC(),
	}
}

// optionalText returns nil for values that cannot be represented as text.
// Empty strings are kept only when allowEmpty is set.
func optionalText(s string, allowEmpty bool) *string {
	if !utf8.ValidString(s) {
		return nil
	}
	if s == "" && !allowEmpty {
		return nil
	}
	return &s
}
