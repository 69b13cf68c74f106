package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig tests the default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.Timeout != DefaultTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultTimeout, cfg.Timeout)
	}
	if cfg.MaxDepth != DefaultMaxDepth {
		t.Errorf("expected max depth %d, got %d", DefaultMaxDepth, cfg.MaxDepth)
	}
	if cfg.PopularWordCount != DefaultPopularWordCount {
		t.Errorf("expected popular word count %d, got %d", DefaultPopularWordCount, cfg.PopularWordCount)
	}
	if cfg.Parallelism < 1 {
		t.Errorf("expected positive default parallelism, got %d", cfg.Parallelism)
	}
}

// TestConfigValidate tests validation rules.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := NewConfig()
		cfg.Seeds = []string{"http://site.test/"}
		return cfg
	}

	t.Run("valid config passes", func(t *testing.T) {
		t.Parallel()
		if err := valid().Validate(); err != nil {
			t.Errorf("expected valid config, got %v", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{
			name:   "no seeds",
			mutate: func(c *Config) { c.Seeds = nil },
			want:   ErrNoSeeds,
		},
		{
			name:   "negative timeout",
			mutate: func(c *Config) { c.Timeout = -time.Second },
			want:   ErrInvalidTimeout,
		},
		{
			name:   "negative depth",
			mutate: func(c *Config) { c.MaxDepth = -1 },
			want:   ErrInvalidMaxDepth,
		},
		{
			name:   "zero popular word count",
			mutate: func(c *Config) { c.PopularWordCount = 0 },
			want:   ErrInvalidPopularWordCount,
		},
		{
			name:   "zero parallelism",
			mutate: func(c *Config) { c.Parallelism = 0 },
			want:   ErrInvalidParallelism,
		},
		{
			name:   "conflicting report formats",
			mutate: func(c *Config) { c.JSONReport, c.MarkdownReport = true, true },
			want:   ErrConflictingReportFormats,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	t.Run("zero timeout is allowed", func(t *testing.T) {
		t.Parallel()

		cfg := valid()
		cfg.Timeout = 0
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected zero timeout to validate, got %v", err)
		}
	})
}

// TestLoadJobFile tests the YAML job file loader.
func TestLoadJobFile(t *testing.T) {
	t.Parallel()

	t.Run("loads a full job file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "job.yaml")
		job := `seeds:
  - http://site.test/
  - http://other.test/
timeout: 45s
maxDepth: 4
popularWordCount: 20
parallelism: 8
ignoredUrls:
  - "http://site\\.test/login"
ignoredWords:
  - "the"
resultPath: out.json
profileOutputPath: profile.txt
`
		if err := os.WriteFile(path, []byte(job), 0600); err != nil {
			t.Fatalf("failed to write job file: %v", err)
		}

		jf, err := LoadJobFile(path)
		if err != nil {
			t.Fatalf("failed to load: %v", err)
		}

		if len(jf.Seeds) != 2 {
			t.Errorf("expected 2 seeds, got %d", len(jf.Seeds))
		}
		if jf.Timeout != 45*time.Second {
			t.Errorf("expected 45s timeout, got %v", jf.Timeout)
		}
		if jf.MaxDepth != 4 || jf.PopularWordCount != 20 || jf.Parallelism != 8 {
			t.Errorf("unexpected numeric fields: %+v", jf)
		}
		if jf.ResultPath != "out.json" || jf.ProfileOutputPath != "profile.txt" {
			t.Errorf("unexpected paths: %+v", jf)
		}
	})

	t.Run("missing file returns ErrJobFileNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadJobFile(filepath.Join(t.TempDir(), "absent.yaml"))
		if !errors.Is(err, ErrJobFileNotFound) {
			t.Errorf("expected ErrJobFileNotFound, got %v", err)
		}
	})

	t.Run("malformed YAML returns an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("seeds: [unclosed"), 0600); err != nil {
			t.Fatalf("failed to write job file: %v", err)
		}
		if _, err := LoadJobFile(path); err == nil {
			t.Error("expected error for malformed YAML")
		}
	})
}

// TestJobFileApply tests flag-over-file precedence.
func TestJobFileApply(t *testing.T) {
	t.Parallel()

	t.Run("fills defaults without clobbering flags", func(t *testing.T) {
		t.Parallel()

		jf := &JobFile{
			Seeds:       []string{"http://file.test/"},
			Timeout:     time.Minute,
			MaxDepth:    7,
			Parallelism: 2,
		}

		defaults := NewConfig()
		cfg := NewConfig()
		cfg.MaxDepth = 1 // explicitly set by flag

		jf.Apply(cfg, defaults)

		if len(cfg.Seeds) != 1 || cfg.Seeds[0] != "http://file.test/" {
			t.Errorf("expected seeds from file, got %v", cfg.Seeds)
		}
		if cfg.Timeout != time.Minute {
			t.Errorf("expected timeout from file, got %v", cfg.Timeout)
		}
		if cfg.MaxDepth != 1 {
			t.Errorf("expected flag depth to win, got %d", cfg.MaxDepth)
		}
		if cfg.Parallelism != 2 {
			t.Errorf("expected parallelism from file, got %d", cfg.Parallelism)
		}
	})
}

// TestFindJobFile tests the search order.
func TestFindJobFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit path is returned when it exists", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "job.yaml")
		if err := os.WriteFile(path, []byte("seeds: []"), 0600); err != nil {
			t.Fatalf("failed to write job file: %v", err)
		}
		if got := FindJobFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("missing explicit path returns empty", func(t *testing.T) {
		t.Parallel()

		if got := FindJobFile(filepath.Join(t.TempDir(), "absent.yaml")); got != "" {
			t.Errorf("expected empty path, got %q", got)
		}
	})
}
