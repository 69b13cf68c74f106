package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultJobFile is the default crawl job file name.
const DefaultJobFile = ".wordcrawl"

// ErrJobFileNotFound is returned when the job file does not exist.
// Callers decide whether that is fatal based on whether the path was
// explicitly given by the user.
var ErrJobFileNotFound = errors.New("crawl job file not found")

// JobFile is the on-disk description of a crawl run. Every field is
// optional; CLI flags take precedence over job-file values.
type JobFile struct {
	// Seeds are the starting URLs.
	Seeds []string `yaml:"seeds,omitempty"`

	// Timeout is the wall-clock budget, in Go duration syntax ("30s").
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// FetchTimeout bounds each individual page fetch.
	FetchTimeout time.Duration `yaml:"fetchTimeout,omitempty"`

	// MaxDepth is the recursion ceiling.
	MaxDepth int `yaml:"maxDepth,omitempty"`

	// PopularWordCount limits the ranked word list.
	PopularWordCount int `yaml:"popularWordCount,omitempty"`

	// Parallelism is the requested concurrent fetch count.
	Parallelism int `yaml:"parallelism,omitempty"`

	// IgnoredURLs excludes matching URLs from the crawl (full match).
	IgnoredURLs []string `yaml:"ignoredUrls,omitempty"`

	// IgnoredWords excludes matching words from the counts (full match).
	IgnoredWords []string `yaml:"ignoredWords,omitempty"`

	// ResultPath is where the report is written. Empty means stdout.
	ResultPath string `yaml:"resultPath,omitempty"`

	// ProfileOutputPath is where the profiling report is appended.
	ProfileOutputPath string `yaml:"profileOutputPath,omitempty"`
}

// LoadJobFile loads a crawl job from a YAML file.
// A missing file yields ErrJobFileNotFound.
func LoadJobFile(path string) (*JobFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided job path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrJobFileNotFound
		}
		return nil, err
	}

	var jf JobFile
	if err := yaml.Unmarshal(data, &jf); err != nil {
		return nil, err
	}
	return &jf, nil
}

// FindJobFile searches for the job file in the following order:
//  1. If jobPath is specified, use it directly
//  2. .wordcrawl in the current directory
//  3. .wordcrawl in the user's home directory
//
// Returns the path if found, or empty string if not.
func FindJobFile(jobPath string) string {
	if jobPath != "" {
		if _, err := os.Stat(jobPath); err == nil {
			return jobPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultJobFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, DefaultJobFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// Apply folds job-file values into the config. Only fields the config
// still carries at their zero/default value are overridden, because CLI
// flags have already been applied and must win.
func (jf *JobFile) Apply(cfg *Config, defaults *Config) {
	if len(cfg.Seeds) == 0 {
		cfg.Seeds = jf.Seeds
	}
	if cfg.Timeout == defaults.Timeout && jf.Timeout != 0 {
		cfg.Timeout = jf.Timeout
	}
	if cfg.FetchTimeout == defaults.FetchTimeout && jf.FetchTimeout != 0 {
		cfg.FetchTimeout = jf.FetchTimeout
	}
	if cfg.MaxDepth == defaults.MaxDepth && jf.MaxDepth != 0 {
		cfg.MaxDepth = jf.MaxDepth
	}
	if cfg.PopularWordCount == defaults.PopularWordCount && jf.PopularWordCount != 0 {
		cfg.PopularWordCount = jf.PopularWordCount
	}
	if cfg.Parallelism == defaults.Parallelism && jf.Parallelism != 0 {
		cfg.Parallelism = jf.Parallelism
	}
	if len(cfg.IgnoredURLs) == 0 {
		cfg.IgnoredURLs = jf.IgnoredURLs
	}
	if len(cfg.IgnoredWords) == 0 {
		cfg.IgnoredWords = jf.IgnoredWords
	}
	if cfg.ReportFile == "" {
		cfg.ReportFile = jf.ResultPath
	}
	if cfg.ProfileFile == "" {
		cfg.ProfileFile = jf.ProfileOutputPath
	}
}
