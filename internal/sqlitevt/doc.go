// Package sqlitevt registers the relations of package vtab as SQLite
// eponymous virtual tables and runs SQL over them.
//
// The SQLite bridge needs cgo and the sqlite_vtable build tag:
//
//	go build -tags sqlite_vtable ./...
//
// Without the tag, Open returns ErrEngineUnavailable.
package sqlitevt

import (
	"errors"

	"go.uber.org/zap"

	"github.com/masmgr/gitsql/internal/bugfix"
	"github.com/masmgr/gitsql/internal/vtab"
)

// ErrEngineUnavailable is returned by Open in builds without SQLite virtual
// table support.
var ErrEngineUnavailable = errors.New("sqlite engine not available: rebuild with -tags sqlite_vtable")

// Options configures an Engine.
type Options struct {
	// Registry holds the relations exposed as tables.
	Registry *vtab.Registry
	// Bugfix backs the is_bugfix SQL function. Nil leaves it unregistered.
	Bugfix *bugfix.Detector
	Logger *zap.Logger
}
