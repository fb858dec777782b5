package vtab

import (
	"errors"
	"fmt"

	"github.com/masmgr/gitsql/internal/git"
)

// ErrNoRow is returned when a column is read without a current row.
var ErrNoRow = errors.New("cursor has no current row")

type cursorState int

const (
	stateUnbound cursorState = iota
	stateBound
	stateExhausted
)

func (s cursorState) String() string {
	switch s {
	case stateUnbound:
		return "unbound"
	case stateBound:
		return "bound"
	case stateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// rowCursor carries the iteration state shared by all cursors.
type rowCursor struct {
	state   cursorState
	binding QueryBinding
	source  git.Source
	pos     int
	size    int
}

// unbind drops everything a previous Filter produced.
func (c *rowCursor) unbind() {
	c.state = stateUnbound
	c.binding = QueryBinding{}
	c.source = nil
	c.pos = 0
	c.size = 0
}

func (c *rowCursor) bind(b QueryBinding, src git.Source, size int) {
	c.binding = b
	c.source = src
	c.pos = 0
	c.size = size
	c.state = stateBound
	if size == 0 {
		c.state = stateExhausted
	}
}

func (c *rowCursor) advance() error {
	if c.state == stateUnbound {
		return fmt.Errorf("next on %s cursor", c.state)
	}
	if c.pos < c.size {
		c.pos++
	}
	if c.pos >= c.size {
		c.state = stateExhausted
	}
	return nil
}

func (c *rowCursor) atEnd() bool {
	return c.state != stateBound || c.pos >= c.size
}

// Rowid returns a constant: rows of these relations have no stable identity.
func (c *rowCursor) Rowid() (int64, error) {
	return 1, nil
}

// Close releases the source.
func (c *rowCursor) Close() error {
	c.unbind()
	return nil
}

// nullable maps an absent text value to SQL NULL.
func nullable(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
