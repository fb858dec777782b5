package git

// Source defines the read-only history operations the relations consume.
// This abstraction allows the cursors to be tested without a repository.
type Source interface {
	// Path returns the repository path the source was opened with.
	Path() string
	// Walk returns every commit reachable from revision, HEAD when empty.
	Walk(revision string) ([]CommitRecord, error)
	// Lookup returns the single commit revision resolves to.
	Lookup(revision string) (CommitRecord, error)
	// Stats returns per-file line statistics of the commit revision resolves to.
	Stats(revision string) ([]FileDelta, error)
	// HeadHash returns the hash HEAD resolves to.
	HeadHash() (string, error)
}

// SourceOptions configures OpenSource.
type SourceOptions struct {
	Filter *PathFilter
}

// RepositorySource is the go-git backed Source.
type RepositorySource struct {
	repo       *Repository
	walker     *HistoryWalker
	aggregator *DiffAggregator
}

// OpenSource opens the repository at path and wires a walker and an aggregator to it.
func OpenSource(path string, opts SourceOptions) (*RepositorySource, error) {
	repo, err := Open(path)
	if err != nil {
		return nil, err
	}
	return &RepositorySource{
		repo:       repo,
		walker:     NewHistoryWalker(repo),
		aggregator: NewDiffAggregator(repo, opts.Filter),
	}, nil
}

// Path returns the repository path.
func (s *RepositorySource) Path() string { return s.repo.Path() }

// Walk delegates to the history walker.
func (s *RepositorySource) Walk(revision string) ([]CommitRecord, error) {
	return s.walker.Walk(revision)
}

// Lookup delegates to the history walker.
func (s *RepositorySource) Lookup(revision string) (CommitRecord, error) {
	return s.walker.Lookup(revision)
}

// Stats delegates to the diff aggregator.
func (s *RepositorySource) Stats(revision string) ([]FileDelta, error) {
	return s.aggregator.Stats(revision)
}

// HeadHash returns the hash of the HEAD commit.
func (s *RepositorySource) HeadHash() (string, error) {
	c, err := s.repo.Head()
	if err != nil {
		return "", err
	}
	return c.Hash.String(), nil
}

// Compile-time interface conformance check.
var _ Source = (*RepositorySource)(nil)
