package git

// MockSource is a test double for RepositorySource.
// It serves predefined commits and statistics without needing a Git repository.
type MockSource struct {
	RepoPath string
	Head     string
	Commits  map[string][]CommitRecord // keyed by revision, "" for HEAD
	Deltas   map[string][]FileDelta    // keyed by revision, "" for HEAD
	Error    error
}

// Path returns the configured path.
func (m *MockSource) Path() string { return m.RepoPath }

// Walk returns the predefined commits for revision or the error.
func (m *MockSource) Walk(revision string) ([]CommitRecord, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	records, ok := m.Commits[revision]
	if !ok {
		return nil, ErrRevisionResolution
	}
	return records, nil
}

// Lookup returns the first predefined commit for revision.
func (m *MockSource) Lookup(revision string) (CommitRecord, error) {
	records, err := m.Walk(revision)
	if err != nil {
		return CommitRecord{}, err
	}
	if len(records) == 0 {
		return CommitRecord{}, ErrRevisionResolution
	}
	return records[0], nil
}

// Stats returns the predefined deltas for revision or the error.
func (m *MockSource) Stats(revision string) ([]FileDelta, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	deltas, ok := m.Deltas[revision]
	if !ok {
		return nil, ErrRevisionResolution
	}
	return deltas, nil
}

// HeadHash returns the configured head hash.
func (m *MockSource) HeadHash() (string, error) {
	if m.Error != nil {
		return "", m.Error
	}
	return m.Head, nil
}

// Compile-time interface conformance check.
var _ Source = (*MockSource)(nil)
