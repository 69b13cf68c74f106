package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/nao1215/wordcrawl/internal/config"
	"github.com/nao1215/wordcrawl/internal/crawler"
	"github.com/nao1215/wordcrawl/internal/database"
	"github.com/nao1215/wordcrawl/internal/log"
	"github.com/nao1215/wordcrawl/internal/model"
	"github.com/nao1215/wordcrawl/internal/profile"
	"github.com/nao1215/wordcrawl/internal/report"
	"github.com/spf13/cobra"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [url...]",
		Short: "Crawl web pages and rank the most popular words",
		Long: `Crawl fetches the given seed URLs concurrently, follows links up to
the configured depth, and counts word occurrences across every visited
page. The run stops when its wall-clock budget elapses; pages already
being fetched are allowed to finish, and their words still count.

Examples:
  # Crawl a single site with defaults (30s budget, depth 3)
  wordcrawl crawl https://example.com

  # Deep crawl with a one minute budget and the 20 most popular words
  wordcrawl crawl -t 1m -d 5 --top 20 https://example.com

  # Skip binary assets and common stop words
  wordcrawl crawl --ignore-url '.*\.(png|jpe?g|gif|css|js)' \
    --ignore-word 'the' --ignore-word 'and' https://example.com

  # Write a JSON report and append a profiling summary
  wordcrawl crawl -j -o result.json --profile profile.txt https://example.com

Job file (.wordcrawl) example:
  seeds:
    - https://example.com
  timeout: 45s
  maxDepth: 4
  popularWordCount: 15
  ignoredWords:
    - the
    - and`,
		Args: cobra.ArbitraryArgs,
		RunE: runCrawlCmd,
	}

	// Crawl behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Wall-clock budget for the whole crawl")
	cmd.Flags().DurationP("fetch-timeout", "T", config.DefaultFetchTimeout,
		"Timeout for each individual page fetch")
	cmd.Flags().IntP("depth", "d", config.DefaultMaxDepth,
		"Maximum crawl recursion depth (1 fetches the seeds only)")
	cmd.Flags().Int("top", config.DefaultPopularWordCount,
		"Number of ranked words to keep in the result")
	cmd.Flags().IntP("parallelism", "p", runtime.NumCPU(),
		"Number of concurrent fetches (capped at the CPU count)")
	cmd.Flags().StringArray("ignore-url", nil,
		"Regular expression excluding matching URLs from the crawl (full match, repeatable)")
	cmd.Flags().StringArray("ignore-word", nil,
		"Regular expression excluding matching words from the counts (full match, repeatable)")

	// Job file
	cmd.Flags().StringP("config", "c", "",
		"Crawl job file path (default: .wordcrawl in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Profiling
	cmd.Flags().String("profile", "",
		"Append a fetch and crawl timing report to the given file")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags and the optional job file
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runCrawl(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags and the crawl
// job file. Flags win over job-file values, which win over defaults.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.FetchTimeout, err = cmd.Flags().GetDuration("fetch-timeout")
	if err != nil {
		return nil, err
	}

	cfg.MaxDepth, err = cmd.Flags().GetInt("depth")
	if err != nil {
		return nil, err
	}

	cfg.PopularWordCount, err = cmd.Flags().GetInt("top")
	if err != nil {
		return nil, err
	}

	cfg.Parallelism, err = cmd.Flags().GetInt("parallelism")
	if err != nil {
		return nil, err
	}

	cfg.IgnoredURLs, err = cmd.Flags().GetStringArray("ignore-url")
	if err != nil {
		return nil, err
	}

	cfg.IgnoredWords, err = cmd.Flags().GetStringArray("ignore-word")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.ProfileFile, err = cmd.Flags().GetString("profile")
	if err != nil {
		return nil, err
	}

	cfg.JobFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Positional arguments are the seed URLs. They must be set before the
	// job file is applied so that flag-level seeds take precedence.
	cfg.Seeds = args

	// Load the crawl job file.
	// If the user explicitly specified a path, a missing file is an error.
	// If no path was given, a missing file just means flag-only operation.
	explicitJobPath := cfg.JobFilePath != ""
	jobPath := config.FindJobFile(cfg.JobFilePath)

	if jobPath != "" {
		jf, err := config.LoadJobFile(jobPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load job file %s: %w", jobPath, err)
		}
		jf.Apply(cfg, config.NewConfig())
	} else if explicitJobPath {
		return nil, fmt.Errorf("%w: %s", config.ErrJobFileNotFound, cfg.JobFilePath)
	}

	// Always save to database using XDG data directory
	cfg.SaveToDB = true
	cfg.DBDir = config.XDGDataDir()

	return cfg, nil
}

// runCrawl executes the crawl.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	ignoredURLs, err := crawler.CompileIgnoredPatterns(cfg.IgnoredURLs)
	if err != nil {
		return fmt.Errorf("invalid URL ignore pattern: %w", err)
	}
	ignoredWords, err := crawler.CompileIgnoredPatterns(cfg.IgnoredWords)
	if err != nil {
		return fmt.Errorf("invalid word ignore pattern: %w", err)
	}

	// Open database connection if saving is enabled
	var db *database.CrawlDB
	if cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)
	}

	var source crawler.PageSource = crawler.NewHTTPSource(
		&http.Client{Timeout: cfg.FetchTimeout},
		crawler.WithIgnoredWords(ignoredWords),
	)

	// Profiling wraps the page source and the crawler in timing
	// decorators; the report is appended to the profile file afterwards.
	var prof *profile.Profiler
	if cfg.ProfileFile != "" {
		prof = profile.New()
		source = prof.WrapSource(source)
	}

	var web crawler.WebCrawler = crawler.New(source,
		crawler.WithTimeout(cfg.Timeout),
		crawler.WithMaxDepth(cfg.MaxDepth),
		crawler.WithPopularWordCount(cfg.PopularWordCount),
		crawler.WithParallelism(cfg.Parallelism),
		crawler.WithIgnoredURLs(ignoredURLs),
		crawler.WithLogger(logger),
	)
	if prof != nil {
		wrapped, err := prof.Wrap(web)
		if err != nil {
			return fmt.Errorf("failed to enable profiling: %w", err)
		}
		web = wrapped.(crawler.WebCrawler)
	}

	logger.Info("starting crawl",
		"seeds", cfg.Seeds,
		"maxDepth", cfg.MaxDepth,
		"timeout", cfg.Timeout,
		"parallelism", web.MaxParallelism(),
	)

	fmt.Printf("Crawling %d seed(s)...\n", len(cfg.Seeds))
	result := web.Crawl(ctx, cfg.Seeds)
	fmt.Printf("Crawl completed in %s (%d URLs visited)\n\n",
		result.Elapsed.Round(time.Millisecond), result.URLsVisited)

	// Generate and output report
	if err := outputResult(cfg, result); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	// Save to database if enabled
	if db != nil {
		if id, err := db.SaveRun(ctx, result); err != nil {
			logger.Error("failed to save crawl run", "error", err)
		} else {
			logger.Info("crawl run saved to database", "id", id)
		}
	}

	// Append the profiling report after everything else so the timings
	// cover the complete run.
	if prof != nil {
		if err := prof.WriteReportFile(cfg.ProfileFile); err != nil {
			return fmt.Errorf("failed to write profile report: %w", err)
		}
		logger.Info("profile report appended", "path", cfg.ProfileFile)
	}

	return nil
}

// outputResult outputs the crawl result in the requested format.
func outputResult(cfg *config.Config, result *model.CrawlResult) error {
	// Determine output destination
	var output *os.File
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewTextWriter(output)
	}

	_, err := writer.Write(result)
	return err
}
