//go:build !sqlite_vtable

package sqlitevt

import (
	"context"

	"github.com/masmgr/gitsql/internal/vtab"
)

// Engine is unavailable in this build.
type Engine struct{}

// Open always fails with ErrEngineUnavailable.
func Open(opts Options) (*Engine, error) {
	return nil, ErrEngineUnavailable
}

// Query always fails with ErrEngineUnavailable.
func (e *Engine) Query(ctx context.Context, query string, args ...any) (*vtab.ResultSet, error) {
	return nil, ErrEngineUnavailable
}

// Close is a no-op.
func (e *Engine) Close() error { return nil }
