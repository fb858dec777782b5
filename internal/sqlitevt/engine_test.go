//go:build sqlite_vtable

package sqlitevt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masmgr/gitsql/internal/bugfix"
	"github.com/masmgr/gitsql/internal/git"
	"github.com/masmgr/gitsql/internal/gittest"
	"github.com/masmgr/gitsql/internal/vtab"
)

func openEngine(t *testing.T, dir string, detector *bugfix.Detector) *Engine {
	t.Helper()
	e, err := Open(Options{
		Registry: vtab.DefaultRegistry(vtab.Options{DefaultRepository: dir}),
		Bugfix:   detector,
	})
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func column(rs *vtab.ResultSet, i int) []any {
	out := make([]any, len(rs.Rows))
	for r, row := range rs.Rows {
		out[r] = row[i]
	}
	return out
}

func TestEngine_CommitsInHistoryOrder(t *testing.T) {
	repo, h := gittest.NewMergeHistory(t)
	e := openEngine(t, repo.Dir, nil)

	rs, err := e.Query(context.Background(), "SELECT hash, is_merge, parent_2 FROM commits")
	require.NoError(t, err)

	assert.Equal(t, []string{"hash", "is_merge", "parent_2"}, rs.Columns)
	assert.Equal(t, []any{h.Merge.String(), h.Right.String(), h.Left.String(), h.Root.String()}, column(rs, 0))
	assert.Equal(t, []any{int64(1), int64(0), int64(0), int64(0)}, column(rs, 1))
	assert.Equal(t, []any{h.Right.String(), nil, nil, nil}, column(rs, 2))
}

func TestEngine_BoundParameters(t *testing.T) {
	repo, h := gittest.NewMergeHistory(t)
	e := openEngine(t, ".", nil)
	ctx := context.Background()

	rs, err := e.Query(ctx, "SELECT count(*) FROM commits WHERE repository = ?", repo.Dir)
	require.NoError(t, err)
	assert.Equal(t, int64(4), rs.Rows[0][0])

	rs, err = e.Query(ctx, "SELECT hash FROM commits WHERE revision = ? AND repository = ?", h.Left.String(), repo.Dir)
	require.NoError(t, err)
	assert.Equal(t, []any{h.Left.String(), h.Root.String()}, column(rs, 0))

	rs, err = e.Query(ctx, "SELECT hash, revision FROM commit_info(?, ?)", repo.Dir, h.Right.String())
	require.NoError(t, err)
	require.Len(t, rs.Rows, 1)
	assert.Equal(t, []any{h.Right.String(), h.Right.String()}, rs.Rows[0])
}

func TestEngine_CommitInfoYieldsOneRow(t *testing.T) {
	repo, h := gittest.NewMergeHistory(t)
	e := openEngine(t, repo.Dir, nil)
	ctx := context.Background()

	// Merge has three ancestors; only the commit itself is returned.
	rs, err := e.Query(ctx, "SELECT hash, is_merge, parent_1, parent_2 FROM commit_info WHERE revision = ?", h.Merge.String())
	require.NoError(t, err)
	assert.Equal(t, [][]any{{h.Merge.String(), int64(1), h.Left.String(), h.Right.String()}}, rs.Rows)

	rs, err = e.Query(ctx, "SELECT count(*) FROM commit_info")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rs.Rows[0][0])

	rs, err = e.Query(ctx,
		"SELECT c.hash, count(s.file_name) FROM commit_info c JOIN stats s ON s.hash = c.hash WHERE c.revision = ? GROUP BY c.hash",
		h.Merge.String())
	require.NoError(t, err)
	assert.Equal(t, [][]any{{h.Merge.String(), int64(2)}}, rs.Rows)
}

func TestEngine_StatsTableValued(t *testing.T) {
	repo, h := gittest.NewMergeHistory(t)
	e := openEngine(t, ".", nil)

	rs, err := e.Query(context.Background(),
		"SELECT file_name, additions, deletions, hash FROM stats(?, ?) ORDER BY file_name",
		repo.Dir, h.Merge.String())
	require.NoError(t, err)
	assert.Equal(t, [][]any{
		{"left.txt", int64(0), int64(1), h.Merge.String()},
		{"right.txt", int64(2), int64(0), h.Merge.String()},
	}, rs.Rows)
}

func TestEngine_JoinMatchesDirectStats(t *testing.T) {
	repo, _ := gittest.NewMergeHistory(t)
	e := openEngine(t, repo.Dir, nil)

	rs, err := e.Query(context.Background(), `
		SELECT c.hash, s.file_name, sum(s.additions), sum(s.deletions)
		FROM commits c JOIN stats s ON s.hash = c.hash
		GROUP BY c.hash, s.file_name`)
	require.NoError(t, err)

	src, err := git.OpenSource(repo.Dir, git.SourceOptions{})
	require.NoError(t, err)
	commits, err := src.Walk("")
	require.NoError(t, err)

	expected := map[[2]string][2]int64{}
	for _, c := range commits {
		deltas, err := src.Stats(c.Hash)
		require.NoError(t, err)
		for _, d := range deltas {
			expected[[2]string{c.Hash, d.Path}] = [2]int64{int64(d.Additions), int64(d.Deletions)}
		}
	}

	got := map[[2]string][2]int64{}
	for _, row := range rs.Rows {
		got[[2]string{row[0].(string), row[1].(string)}] = [2]int64{row[2].(int64), row[3].(int64)}
	}
	assert.Equal(t, expected, got)
}

func TestEngine_FirstCommitSnapshot(t *testing.T) {
	repo := gittest.New(t)
	repo.Write("README.md", "hello\n")
	when := time.Date(2022, 7, 1, 17, 55, 57, 0, time.UTC)
	hash := repo.Commit("First commit\n", when)

	e := openEngine(t, repo.Dir, nil)
	rs, err := e.Query(context.Background(),
		"SELECT message, author_when, committer_when FROM commit_info WHERE revision = ?", hash.String())
	require.NoError(t, err)
	require.Len(t, rs.Rows, 1)
	assert.Equal(t, []any{"First commit\n", "2022-07-01T17:55:57Z", "2022-07-01T17:55:57Z"}, rs.Rows[0])
}

func TestEngine_IsBugfix(t *testing.T) {
	repo := gittest.New(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.Write("a.txt", "a\n")
	repo.Commit("initial import\n", base)
	repo.Write("a.txt", "b\n")
	repo.Commit("Fix crash on empty input\n", base.Add(time.Hour))
	repo.Write("a.txt", "c\n")
	repo.Commit("bug: wrong default\n", base.Add(2*time.Hour))

	detector, err := bugfix.NewDetector([]string{`\bfix\b`, `\bbug\b`})
	require.NoError(t, err)
	e := openEngine(t, repo.Dir, detector)

	rs, err := e.Query(context.Background(), "SELECT count(*) FROM commits WHERE is_bugfix(message)")
	require.NoError(t, err)
	assert.Equal(t, int64(2), rs.Rows[0][0])

	rs, err = e.Query(context.Background(), "SELECT is_bugfix(NULL)")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rs.Rows[0][0])
}

func TestEngine_ChangeEntropy(t *testing.T) {
	repo, h := gittest.NewMergeHistory(t)
	e := openEngine(t, repo.Dir, nil)
	ctx := context.Background()

	// Churn of 1 and 2 lines over two files.
	rs, err := e.Query(ctx, "SELECT change_entropy(additions, deletions) FROM stats(?, ?)", repo.Dir, h.Merge.String())
	require.NoError(t, err)
	assert.InDelta(t, 0.9183, rs.Rows[0][0], 0.001)

	rs, err = e.Query(ctx, "SELECT change_entropy(additions, deletions) FROM stats WHERE hash = ?", h.Right.String())
	require.NoError(t, err)
	assert.Equal(t, 0.0, rs.Rows[0][0])
}

func TestEngine_FilterErrorsAbortQuery(t *testing.T) {
	repo, _ := gittest.NewMergeHistory(t)
	e := openEngine(t, repo.Dir, nil)
	ctx := context.Background()

	_, err := e.Query(ctx, "SELECT hash FROM commits WHERE revision = ?", "does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "revision resolution failed")

	_, err = e.Query(ctx, "SELECT hash FROM commits WHERE repository = ?", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repository open failed")
}

func TestEngine_SeparateEngines(t *testing.T) {
	left, lh := gittest.NewMergeHistory(t)
	right, _ := gittest.NewMergeHistory(t)
	right.Write("extra.txt", "extra\n")
	extra := right.Commit("extra\n", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

	a := openEngine(t, left.Dir, nil)
	b := openEngine(t, right.Dir, nil)

	ra, err := a.Query(context.Background(), "SELECT hash FROM commits LIMIT 1")
	require.NoError(t, err)
	rb, err := b.Query(context.Background(), "SELECT hash FROM commits LIMIT 1")
	require.NoError(t, err)

	assert.Equal(t, lh.Merge.String(), ra.Rows[0][0])
	assert.Equal(t, extra.String(), rb.Rows[0][0])
}
