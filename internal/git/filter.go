package git

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PathFilter selects file paths by doublestar glob patterns.
// Excludes win over includes; no include patterns means include everything.
type PathFilter struct {
	Include []string
	Exclude []string

	cache map[string]bool
}

// NewPathFilter validates the patterns and returns a filter.
func NewPathFilter(include, exclude []string) (*PathFilter, error) {
	for _, p := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	return &PathFilter{Include: include, Exclude: exclude, cache: make(map[string]bool)}, nil
}

// Match reports whether path passes the filter. A nil filter matches everything.
func (f *PathFilter) Match(path string) (bool, error) {
	if f == nil || (len(f.Include) == 0 && len(f.Exclude) == 0) {
		return true, nil
	}

	// Normalize path separators
	path = strings.ReplaceAll(path, "\\", "/")

	if f.cache != nil {
		if v, ok := f.cache[path]; ok {
			return v, nil
		}
	}

	v, err := f.match(path)
	if err != nil {
		return false, err
	}
	if f.cache != nil {
		f.cache[path] = v
	}
	return v, nil
}

func (f *PathFilter) match(path string) (bool, error) {
	for _, pattern := range f.Exclude {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		if matched {
			return false, nil
		}
	}

	if len(f.Include) == 0 {
		return true, nil
	}

	for _, pattern := range f.Include {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			return false, fmt.Errorf("include pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}

	return false, nil
}
