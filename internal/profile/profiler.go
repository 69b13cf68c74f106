package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/nao1215/wordcrawl/internal/crawler"
	"github.com/nao1215/wordcrawl/internal/model"
)

// ErrNotProfiled is returned by Wrap when the value exposes no profiled
// operations. Wrapping such a value would silently measure nothing, so
// it is an invalid argument rather than a no-op.
var ErrNotProfiled = errors.New("type exposes no profiled operations")

// Profiler aggregates call timings by operation name. It is safe for
// concurrent use; decorated operations record from whatever goroutine
// runs them.
type Profiler struct {
	mu        sync.Mutex
	stats     map[string]*operationStats
	startedAt time.Time
	now       func() time.Time
}

// operationStats accumulates the timings of one named operation.
type operationStats struct {
	calls   int
	elapsed time.Duration
}

// ProfilerOption configures a Profiler.
type ProfilerOption func(*Profiler)

// WithClock overrides the time source, for deterministic tests.
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// New creates an empty Profiler. The report header records the creation
// time as the start of the profiled run.
func New(opts ...ProfilerOption) *Profiler {
	p := &Profiler{
		stats: make(map[string]*operationStats),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.startedAt = p.now()
	return p
}

// record adds one call of the named operation.
func (p *Profiler) record(operation string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.stats[operation]
	if !ok {
		s = &operationStats{}
		p.stats[operation] = s
	}
	s.calls++
	s.elapsed += elapsed
}

// Wrap decorates the value with timing interception when it implements
// a profiled capability set. The returned value implements the same
// interface and forwards every call to the original.
//
// WebCrawler is checked before PageSource so a value implementing both
// is profiled at the coarser operation.
func (p *Profiler) Wrap(v any) (any, error) {
	switch impl := v.(type) {
	case crawler.WebCrawler:
		return &profiledCrawler{profiler: p, next: impl}, nil
	case crawler.PageSource:
		return &profiledSource{profiler: p, next: impl}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotProfiled, v)
	}
}

// WrapSource is a type-safe convenience for the common case of
// profiling a page source.
func (p *Profiler) WrapSource(source crawler.PageSource) crawler.PageSource {
	return &profiledSource{profiler: p, next: source}
}

// profiledSource times every fetch.
type profiledSource struct {
	profiler *Profiler
	next     crawler.PageSource
}

// Fetch forwards to the wrapped source, recording elapsed wall-clock
// time whether or not the fetch succeeds.
func (s *profiledSource) Fetch(ctx context.Context, pageURL string) (*model.Page, error) {
	start := s.profiler.now()
	page, err := s.next.Fetch(ctx, pageURL)
	s.profiler.record("PageSource.Fetch", s.profiler.now().Sub(start))
	return page, err
}

// profiledCrawler times whole crawl runs.
type profiledCrawler struct {
	profiler *Profiler
	next     crawler.WebCrawler
}

// Crawl forwards to the wrapped crawler, recording the run duration.
func (c *profiledCrawler) Crawl(ctx context.Context, seeds []string) *model.CrawlResult {
	start := c.profiler.now()
	result := c.next.Crawl(ctx, seeds)
	c.profiler.record("WebCrawler.Crawl", c.profiler.now().Sub(start))
	return result
}

// MaxParallelism forwards without timing; it is a constant lookup.
func (c *profiledCrawler) MaxParallelism() int {
	return c.next.MaxParallelism()
}

// WriteReport writes the aggregated timings: a timestamped header
// followed by one line per operation, sorted by name.
func (p *Profiler) WriteReport(w io.Writer) error {
	p.mu.Lock()
	names := make([]string, 0, len(p.stats))
	for name := range p.stats {
		names = append(names, name)
	}
	slices.Sort(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		s := p.stats[name]
		lines = append(lines, fmt.Sprintf("  %-24s calls: %-6d total: %s", name, s.calls, s.elapsed))
	}
	p.mu.Unlock()

	if _, err := fmt.Fprintf(w, "Run at %s\n", p.startedAt.Format(time.RFC1123)); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// WriteReportFile appends the report to the file at path, creating it
// if needed. Appending never touches previously written report content,
// so a failed write cannot corrupt earlier runs.
func (p *Profiler) WriteReportFile(path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return fmt.Errorf("failed to open profile report: %w", err)
	}
	defer f.Close()

	if err := p.WriteReport(f); err != nil {
		return fmt.Errorf("failed to write profile report: %w", err)
	}
	return nil
}
