//go:build sqlite_vtable

package sqlitevt

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/masmgr/gitsql/internal/entropy"
	"github.com/masmgr/gitsql/internal/vtab"
)

// database/sql drivers are registered globally and cannot be removed, so
// every Engine gets its own driver name.
var driverSeq atomic.Int64

// Engine is an in-memory SQLite database with the relations attached.
type Engine struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open creates an Engine.
func Open(opts Options) (*Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := opts.Registry
	if registry == nil {
		registry = vtab.DefaultRegistry(vtab.Options{Logger: logger})
	}
	detector := opts.Bugfix

	name := fmt.Sprintf("sqlite3_gitsql_%d", driverSeq.Add(1))
	sql.Register(name, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			for _, rel := range registry.Relations() {
				if err := conn.CreateModule(rel.Schema().Name, &module{rel: rel}); err != nil {
					return fmt.Errorf("failed to register %s: %w", rel.Schema().Name, err)
				}
			}
			if err := conn.RegisterAggregator("change_entropy", newEntropyAggregator, true); err != nil {
				return fmt.Errorf("failed to register change_entropy: %w", err)
			}
			if detector != nil {
				if err := conn.RegisterFunc("is_bugfix", detector.MatchValue, true); err != nil {
					return fmt.Errorf("failed to register is_bugfix: %w", err)
				}
			}
			return nil
		},
	})

	db, err := sql.Open(name, ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	logger.Debug("sqlite engine ready", zap.String("driver", name), zap.Int("tables", len(registry.Relations())))
	return &Engine{db: db, logger: logger}, nil
}

// Query runs query and reads the full result. TEXT values are returned as
// strings, DATETIME columns as RFC 3339 text.
func (e *Engine) Query(ctx context.Context, query string, args ...any) (*vtab.ResultSet, error) {
	start := time.Now()

	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	rs := &vtab.ResultSet{Columns: cols}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range vals {
			vals[i] = normalize(v)
		}
		rs.Rows = append(rs.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	e.logger.Debug("query finished",
		zap.String("sql", query),
		zap.Int("rows", len(rs.Rows)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return rs, nil
}

// Close closes the database.
func (e *Engine) Close() error {
	return e.db.Close()
}

// entropyAggregator backs change_entropy(additions, deletions), one call per
// file row.
type entropyAggregator struct {
	acc entropy.Accumulator
}

func newEntropyAggregator() *entropyAggregator {
	return &entropyAggregator{}
}

func (a *entropyAggregator) Step(additions, deletions int64) {
	a.acc.Add(int(additions), int(deletions))
}

func (a *entropyAggregator) Done() float64 {
	return a.acc.Value()
}

func normalize(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	default:
		return v
	}
}
