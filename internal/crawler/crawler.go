package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/nao1215/wordcrawl/internal/model"
	"github.com/nao1215/wordcrawl/internal/wordcount"
)

// WebCrawler is the public contract of the crawl coordinator.
// Crawl never fails: an empty or entirely unfetchable seed set still
// produces a valid, possibly-empty result.
type WebCrawler interface {
	// Crawl fetches pages starting from the seed URLs, recursively follows
	// discovered links, and returns the aggregated result.
	Crawl(ctx context.Context, seeds []string) *model.CrawlResult

	// MaxParallelism reports the hardware concurrency available to the crawl.
	MaxParallelism() int
}

// Crawler coordinates a depth-bounded, deadline-bounded concurrent crawl.
// It implements WebCrawler.
type Crawler struct {
	// source turns a URL into links and per-page word counts.
	// It is treated as an opaque blocking call.
	source PageSource

	// timeout is the wall-clock budget for the whole run. The deadline is
	// computed once at the start of Crawl and inherited unchanged by every
	// descendant task.
	timeout time.Duration

	// maxDepth is the recursion ceiling. Depth decreases by one per link
	// edge; a task at depth 0 does nothing.
	maxDepth int

	// popularWordCount is the size of the ranked top-N word list.
	popularWordCount int

	// parallelism is the requested worker count. The effective pool size
	// is min(parallelism, MaxParallelism()).
	parallelism int

	// ignoredURLs are consulted before claiming any URL. Patterns must be
	// anchored; CompileIgnoredPatterns takes care of that.
	ignoredURLs []*regexp.Regexp

	// logger receives per-node debug events and run summaries.
	logger *slog.Logger

	// now is the clock. Injectable so deadline behavior is testable.
	now func() time.Time
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithTimeout sets the wall-clock budget for a crawl run.
func WithTimeout(d time.Duration) Option {
	return func(c *Crawler) {
		c.timeout = d
	}
}

// WithMaxDepth sets the recursion ceiling.
// 0 means no page is fetched at all, 1 means seeds only, and so on.
func WithMaxDepth(depth int) Option {
	return func(c *Crawler) {
		c.maxDepth = depth
	}
}

// WithPopularWordCount sets how many ranked words the result carries.
func WithPopularWordCount(n int) Option {
	return func(c *Crawler) {
		c.popularWordCount = n
	}
}

// WithParallelism sets the requested number of concurrent fetches.
// The effective value never exceeds the hardware parallelism.
func WithParallelism(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.parallelism = n
		}
	}
}

// WithIgnoredURLs sets the URL patterns excluded from the crawl.
// Use CompileIgnoredPatterns to build them from configuration strings.
func WithIgnoredURLs(patterns []*regexp.Regexp) Option {
	return func(c *Crawler) {
		c.ignoredURLs = patterns
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Crawler) {
		c.logger = logger
	}
}

// WithClock overrides the time source. Tests use this to make the
// deadline cutoff deterministic.
func WithClock(now func() time.Time) Option {
	return func(c *Crawler) {
		c.now = now
	}
}

// New creates a Crawler reading pages from the given source.
func New(source PageSource, opts ...Option) *Crawler {
	c := &Crawler{
		source:           source,
		timeout:          30 * time.Second,
		maxDepth:         3,
		popularWordCount: 10,
		parallelism:      runtime.NumCPU(),
		now:              time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// MaxParallelism reports the hardware concurrency of the host.
func (c *Crawler) MaxParallelism() int {
	return runtime.NumCPU()
}

// crawlRun holds the state shared by every task of a single run.
// The deadline and ignored patterns are immutable for the run; the
// ledger and aggregator are internally synchronized.
type crawlRun struct {
	deadline time.Time
	ledger   *VisitLedger
	agg      *CountAggregator

	// fetchSlots bounds how many fetches run in parallel. It is held only
	// for the duration of the blocking fetch, never across the ledger or
	// aggregator critical sections.
	fetchSlots *semaphore.Weighted
}

// Crawl launches one crawl task per seed and blocks until the entire
// transitive task forest has finished, then assembles the result from
// the final ledger and aggregator state.
func (c *Crawler) Crawl(ctx context.Context, seeds []string) *model.CrawlResult {
	started := c.now()

	poolSize := min(c.parallelism, c.MaxParallelism())
	if poolSize < 1 {
		poolSize = 1
	}

	run := &crawlRun{
		deadline:   started.Add(c.timeout),
		ledger:     NewVisitLedger(),
		agg:        NewCountAggregator(),
		fetchSlots: semaphore.NewWeighted(int64(poolSize)),
	}

	c.logger.Debug("starting crawl",
		"seeds", len(seeds),
		"maxDepth", c.maxDepth,
		"timeout", c.timeout,
		"parallelism", poolSize,
	)

	var wg sync.WaitGroup
	for _, seed := range seeds {
		wg.Add(1)
		go func(seed string) {
			defer wg.Done()
			c.visit(ctx, run, seed, c.maxDepth)
		}(seed)
	}
	wg.Wait()

	// The forest has joined; the aggregator is immutable from here on.
	result := &model.CrawlResult{
		WordCounts:  []model.WordCount{},
		URLsVisited: run.ledger.Size(),
		Seeds:       seeds,
		StartedAt:   started,
		Elapsed:     c.now().Sub(started),
	}

	// Nothing to rank when no page yielded any words.
	if run.agg.Len() > 0 {
		result.WordCounts = wordcount.Rank(run.agg.Snapshot(), c.popularWordCount)
	}

	c.logger.Debug("crawl complete",
		"urlsVisited", result.URLsVisited,
		"distinctWords", run.agg.Len(),
		"elapsed", result.Elapsed,
	)

	return result
}

// visit is one recursive crawl task: process the URL at the remaining
// depth, then spawn a child task per discovered link and wait for all of
// them. Every failing check is a silent prune, not an error, and the
// checks run in a fixed order: depth, deadline, ignored patterns, claim.
//
// The claim happens before the fetch, so two branches racing on the same
// URL may both pass the earlier checks but only one ever fetches.
func (c *Crawler) visit(ctx context.Context, run *crawlRun, pageURL string, depth int) {
	if depth <= 0 {
		return
	}
	if !c.now().Before(run.deadline) {
		return
	}
	for _, pattern := range c.ignoredURLs {
		if pattern.MatchString(pageURL) {
			return
		}
	}
	if !run.ledger.Claim(pageURL) {
		return
	}

	page := c.fetch(ctx, run, pageURL)

	run.agg.Merge(page.WordCounts)

	var wg sync.WaitGroup
	for _, link := range page.Links {
		wg.Add(1)
		go func(link string) {
			defer wg.Done()
			c.visit(ctx, run, link, depth-1)
		}(link)
	}
	wg.Wait()
}

// fetch reads the page from the source under a fetch slot. An
// unfetchable page degrades to an empty leaf: no words, no links, but
// the URL stays claimed and counted.
func (c *Crawler) fetch(ctx context.Context, run *crawlRun, pageURL string) *model.Page {
	if err := run.fetchSlots.Acquire(ctx, 1); err != nil {
		// Context cancelled while waiting for a slot.
		c.logger.Debug("fetch slot unavailable", "url", pageURL, "error", err)
		return &model.Page{URL: pageURL}
	}
	page, err := c.source.Fetch(ctx, pageURL)
	run.fetchSlots.Release(1)

	if err != nil {
		c.logger.Debug("page unavailable", "url", pageURL, "error", err)
		return &model.Page{URL: pageURL}
	}
	return page
}

// CompileIgnoredPatterns compiles configuration strings into anchored
// regular expressions. Anchoring enforces the full-string match
// semantics of the ignore list: a pattern excludes a URL only when it
// matches the entire URL, never a substring.
func CompileIgnoredPatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`\A(?:` + p + `)\z`)
		if err != nil {
			return nil, fmt.Errorf("invalid ignored URL pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}
