package git

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// LineKind classifies a line-level diff event.
type LineKind int

const (
	LineContext LineKind = iota
	LineAddition
	LineDeletion
)

// String returns a string representation of the line kind.
func (k LineKind) String() string {
	switch k {
	case LineContext:
		return "context"
	case LineAddition:
		return "addition"
	case LineDeletion:
		return "deletion"
	default:
		return "unknown"
	}
}

// LineEvent is a single line produced by comparing two trees.
// Path is the post-image path, or the pre-image path for deleted files.
type LineEvent struct {
	Path string
	Kind LineKind
	Text string
}

// DiffOptions configures how two trees are compared.
type DiffOptions struct {
	IgnoreBlankLines       bool
	IgnoreFileMode         bool
	ContextLines           int
	IgnoreWhitespace       bool // ignore all whitespace
	IgnoreWhitespaceChange bool // ignore changes in amount of whitespace
	IgnoreWhitespaceEOL    bool // ignore whitespace at end of line
	IgnoreSubmodules       bool
}

// StatsDiffOptions returns the fixed option set used for file statistics.
func StatsDiffOptions() DiffOptions {
	return DiffOptions{
		IgnoreBlankLines:       true,
		IgnoreFileMode:         true,
		ContextLines:           0,
		IgnoreWhitespace:       true,
		IgnoreWhitespaceChange: true,
		IgnoreWhitespaceEOL:    true,
		IgnoreSubmodules:       true,
	}
}

// DiffLines compares two versions of one file line by line.
// Lines are matched on their whitespace-normalized form, so a line whose
// only change is whitespace is not reported under IgnoreWhitespace.
func DiffLines(path, oldText, newText string, opts DiffOptions) []LineEvent {
	a, b := splitLines(oldText), splitLines(newText)
	if len(a) == 0 && len(b) == 0 {
		return nil
	}

	m := difflib.NewMatcherWithJunk(normalizeLines(a, opts), normalizeLines(b, opts), false, nil)
	codes := m.GetOpCodes()

	var events []LineEvent
	emit := func(kind LineKind, lines []string) {
		for _, line := range lines {
			events = append(events, LineEvent{Path: path, Kind: kind, Text: line})
		}
	}

	for k, c := range codes {
		if c.Tag == 'e' {
			for _, i := range contextRange(c, k, len(codes), opts.ContextLines) {
				emit(LineContext, b[c.J1+i:c.J1+i+1])
			}
			continue
		}

		// A change is dropped only when every line it touches is blank.
		deleted, inserted := a[c.I1:c.I2], b[c.J1:c.J2]
		if opts.IgnoreBlankLines && allBlank(deleted) && allBlank(inserted) {
			continue
		}
		emit(LineDeletion, deleted)
		emit(LineAddition, inserted)
	}

	return events
}

// contextRange returns the offsets inside an equal block that lie within n
// lines of a neighbouring change.
func contextRange(c difflib.OpCode, k, total, n int) []int {
	size := c.J2 - c.J1
	if n <= 0 || size == 0 {
		return nil
	}
	keep := make([]bool, size)
	if k > 0 {
		for i := 0; i < n && i < size; i++ {
			keep[i] = true
		}
	}
	if k < total-1 {
		for i := size - 1; i >= 0 && i >= size-n; i-- {
			keep[i] = true
		}
	}
	var offsets []int
	for i, ok := range keep {
		if ok {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

func allBlank(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

func normalizeLines(lines []string, opts DiffOptions) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = normalizeLine(line, opts)
	}
	return out
}

func normalizeLine(line string, opts DiffOptions) string {
	switch {
	case opts.IgnoreWhitespace:
		return strings.Join(strings.Fields(line), "")
	case opts.IgnoreWhitespaceChange:
		return strings.Join(strings.Fields(line), " ")
	case opts.IgnoreWhitespaceEOL:
		return strings.TrimRight(line, " \t\r")
	default:
		return line
	}
}
