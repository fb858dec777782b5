package git

// HistoryWalker materializes commit history from a repository.
type HistoryWalker struct {
	repo *Repository
}

// NewHistoryWalker creates a walker over repo.
func NewHistoryWalker(repo *Repository) *HistoryWalker {
	return &HistoryWalker{repo: repo}
}

// Walk resolves revision (HEAD when empty) and returns a snapshot of every
// commit reachable from it, the starting commit first. The whole history is
// read before Walk returns.
func (w *HistoryWalker) Walk(revision string) ([]CommitRecord, error) {
	start, err := w.repo.Resolve(revision)
	if err != nil {
		return nil, err
	}

	commits, err := w.repo.Ancestors(start)
	if err != nil {
		return nil, err
	}

	records := make([]CommitRecord, 0, len(commits))
	for _, c := range commits {
		records = append(records, newCommitRecord(c))
	}
	return records, nil
}

// Lookup resolves revision (HEAD when empty) to a single commit without
// expanding its ancestry.
func (w *HistoryWalker) Lookup(revision string) (CommitRecord, error) {
	c, err := w.repo.Resolve(revision)
	if err != nil {
		return CommitRecord{}, err
	}
	return newCommitRecord(c), nil
}
