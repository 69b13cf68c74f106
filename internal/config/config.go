package config

import (
	"path/filepath"
	"runtime"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. These match the behavior of a short,
// polite crawl and can all be overridden by CLI flags or a job file.
const (
	// DefaultTimeout bounds the wall clock of a whole crawl run. The
	// deadline derived from it is re-checked at every crawl task, so a run
	// never overshoots it by more than one in-flight fetch per branch.
	DefaultTimeout = 30 * time.Second

	// DefaultFetchTimeout bounds a single page fetch. A slow server must
	// not be able to consume the whole run budget with one request.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultMaxDepth of 3 reaches seeds, their links, and the links of
	// those links. Deeper crawls grow exponentially with page fan-out.
	DefaultMaxDepth = 3

	// DefaultPopularWordCount is how many ranked words the result keeps.
	DefaultPopularWordCount = 10

	// AppName is the application name used for XDG directory paths.
	AppName = "wordcrawl"
)

// Config holds all options for a crawl run. It is populated from CLI
// flags and an optional YAML job file, then passed through the
// application by dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested
// sub-structs. The number of knobs is manageable, and nesting would add
// complexity without benefit.
type Config struct {
	// Seeds are the starting URLs of the crawl.
	Seeds []string

	// Timeout is the wall-clock budget for the whole run.
	Timeout time.Duration

	// FetchTimeout bounds each individual page fetch.
	FetchTimeout time.Duration

	// MaxDepth is the recursion ceiling. 0 fetches nothing, 1 fetches the
	// seeds only.
	MaxDepth int

	// PopularWordCount limits the ranked word list in the result.
	PopularWordCount int

	// Parallelism is the requested number of concurrent fetches. The
	// effective value is capped at the hardware parallelism.
	Parallelism int

	// IgnoredURLs are regular expressions excluding URLs from the crawl.
	// Each pattern must match the entire URL to exclude it.
	IgnoredURLs []string

	// IgnoredWords are regular expressions excluding words from page word
	// counts (stop words, boilerplate). Full-word match, like IgnoredURLs.
	IgnoredWords []string

	// Verbose enables debug-level log output.
	Verbose bool

	// JSONReport selects JSON result output instead of the human-readable
	// text report. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown result output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output path for the result report. Empty means
	// stdout.
	ReportFile string

	// ProfileFile is where the profiling report is appended after the
	// run. Empty disables profiling.
	ProfileFile string

	// JobFilePath is the path to a YAML crawl job file. If empty, the
	// tool searches for .wordcrawl in the current and home directories.
	JobFilePath string

	// DBDir is the directory holding the SQLite run-history database.
	// Empty disables persistence.
	DBDir string

	// SaveToDB indicates whether the run is recorded in the history
	// database. Set automatically when DBDir is configured.
	SaveToDB bool
}

// NewConfig creates a Config with safe defaults. Many defaults are
// non-zero, so relying on zero values would be wrong; the constructor
// also documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		Timeout:          DefaultTimeout,
		FetchTimeout:     DefaultFetchTimeout,
		MaxDepth:         DefaultMaxDepth,
		PopularWordCount: DefaultPopularWordCount,
		Parallelism:      runtime.NumCPU(),
	}
}

// XDGDataDir returns the XDG data directory for wordcrawl.
// On Linux: ~/.local/share/wordcrawl
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// It runs once after flag and job-file parsing, before any crawling, so
// bad input fails fast with a specific sentinel error.
func (c *Config) Validate() error {
	if len(c.Seeds) == 0 {
		return ErrNoSeeds
	}
	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}
	if c.FetchTimeout < 0 {
		return ErrInvalidTimeout
	}
	if c.MaxDepth < 0 {
		return ErrInvalidMaxDepth
	}
	if c.PopularWordCount <= 0 {
		return ErrInvalidPopularWordCount
	}
	if c.Parallelism <= 0 {
		return ErrInvalidParallelism
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
