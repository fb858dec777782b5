package bugfix

import (
	"regexp"
	"strings"
)

// Detector detects bugfix commits by matching commit messages against regex patterns.
type Detector struct {
	patterns []*regexp.Regexp
}

// NewDetector creates a new Detector from a list of regex pattern strings.
// Patterns are compiled as case-insensitive. Returns an error if any pattern fails to compile.
func NewDetector(patterns []string) (*Detector, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		// Add case-insensitive flag if not already present
		if !strings.HasPrefix(p, "(?i)") {
			p = "(?i)" + p
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, re)
	}
	return &Detector{patterns: compiled}, nil
}

// IsBugfix returns true if the given commit message matches any of the detector's patterns.
func (d *Detector) IsBugfix(message string) bool {
	for _, re := range d.patterns {
		if re.MatchString(message) {
			return true
		}
	}
	return false
}

// MatchValue is IsBugfix for a value coming out of a query engine: text and
// blobs are matched, NULL and anything else never is.
func (d *Detector) MatchValue(message any) bool {
	switch v := message.(type) {
	case string:
		return d.IsBugfix(v)
	case []byte:
		if v == nil {
			return false
		}
		return d.IsBugfix(string(v))
	default:
		return false
	}
}
