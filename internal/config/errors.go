package config

import "errors"

// Configuration validation errors, returned by Config.Validate.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate so callers can use
// errors.Is for programmatic handling while keeping readable messages.
var (
	// ErrNoSeeds is returned when no seed URL is provided by flags or the
	// job file.
	ErrNoSeeds = errors.New("no seed URLs: provide URLs as arguments or in a job file")

	// ErrInvalidTimeout is returned when the timeout is negative.
	// A zero timeout is valid: it yields an immediately-expired deadline
	// and an empty crawl.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidMaxDepth is returned when the maximum depth is negative.
	// Zero is valid and crawls nothing.
	ErrInvalidMaxDepth = errors.New("invalid max depth: must be non-negative")

	// ErrInvalidPopularWordCount is returned when the ranked-list size is
	// not positive.
	ErrInvalidPopularWordCount = errors.New("invalid popular word count: must be positive")

	// ErrInvalidParallelism is returned when the requested worker count is
	// not positive.
	ErrInvalidParallelism = errors.New("invalid parallelism: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
