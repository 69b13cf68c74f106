package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/nao1215/wordcrawl/internal/model"
)

// PageSource turns a URL into a parsed page: the links it carries and
// its per-page word counts. Implementations must be safe for concurrent
// use and must not block indefinitely; any internal timeout is the
// source's responsibility.
//
// A non-nil error means the page is unfetchable. The crawl core treats
// that as a leaf with no links and no words, never as a failure of the
// run.
type PageSource interface {
	Fetch(ctx context.Context, pageURL string) (*model.Page, error)
}

// Default HTTPSource settings.
const (
	// DefaultUserAgent identifies wordcrawl in HTTP requests. A descriptive
	// User-Agent lets operators recognize crawler traffic in their logs.
	DefaultUserAgent = "wordcrawl/1.0 (+https://github.com/nao1215/wordcrawl)"

	// DefaultMaxBodySize limits how much of a response body is read.
	// 5MB covers any reasonable HTML page while bounding memory use.
	DefaultMaxBodySize = 5 * 1024 * 1024
)

// HTTPSource fetches pages over HTTP and parses them for links and
// words. It is the production PageSource.
type HTTPSource struct {
	// client performs the requests. Callers supply it so tests can point
	// the source at an httptest server and production can tune timeouts.
	client *http.Client

	// userAgent is sent with every request.
	userAgent string

	// maxBodySize caps how many bytes of a response body are read.
	maxBodySize int64

	// ignoredWords are skipped during word extraction. Patterns are
	// matched against the whole normalized word.
	ignoredWords []*regexp.Regexp
}

// SourceOption configures an HTTPSource.
type SourceOption func(*HTTPSource)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) SourceOption {
	return func(s *HTTPSource) {
		s.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size to read.
func WithMaxBodySize(size int64) SourceOption {
	return func(s *HTTPSource) {
		if size > 0 {
			s.maxBodySize = size
		}
	}
}

// WithIgnoredWords sets word patterns excluded from page word counts.
// Use CompileIgnoredPatterns to build them from configuration strings.
func WithIgnoredWords(patterns []*regexp.Regexp) SourceOption {
	return func(s *HTTPSource) {
		s.ignoredWords = patterns
	}
}

// NewHTTPSource creates an HTTP page source using the given client.
// The client should carry its own request timeout; the crawl core
// assumes Fetch cannot hang forever.
func NewHTTPSource(client *http.Client, opts ...SourceOption) *HTTPSource {
	s := &HTTPSource{
		client:      client,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Fetch retrieves and parses a single page.
// Non-HTML responses yield a page with a content hash but no links or
// words. Error statuses (4xx/5xx) make the page unfetchable.
func (s *HTTPSource) Fetch(ctx context.Context, pageURL string) (*model.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodySize))
	if err != nil {
		return nil, err
	}

	page := &model.Page{URL: pageURL}
	page.ComputeHash(body)

	if !strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return page, nil
	}

	parser, err := NewParser(pageURL, s.ignoredWords)
	if err != nil {
		return page, nil
	}
	parsed, err := parser.Parse(strings.NewReader(string(body)))
	if err != nil {
		return page, nil
	}

	page.Title = parsed.Title
	page.Links = parsed.Links
	page.WordCounts = parsed.WordCounts
	return page, nil
}
