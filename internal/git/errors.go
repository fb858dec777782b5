package git

import "errors"

// Error kinds surfaced by the walker and the aggregator.
// Returned errors wrap one of these together with the underlying cause.
var (
	ErrRepositoryOpen           = errors.New("repository open failed")
	ErrRevisionResolution       = errors.New("revision resolution failed")
	ErrTreeLookup               = errors.New("tree lookup failed")
	ErrDiffComputation          = errors.New("diff computation failed")
	ErrUnsupportedMergeTopology = errors.New("unsupported merge topology")
)
