package crawler

import (
	"slices"
	"sync"
)

// VisitLedger is a concurrency-safe set of URLs already claimed for
// processing. Entries are never removed; a URL is in the ledger exactly
// when some crawl task passed every cutoff check and began processing it.
//
// Design decision: We use a mutex over a plain map rather than sync.Map
// because the critical section is a single test-and-insert and the
// access pattern (many writes, one final read) gains nothing from
// sync.Map's read-optimized design.
type VisitLedger struct {
	mu   sync.Mutex
	urls map[string]struct{}
}

// NewVisitLedger creates an empty ledger.
func NewVisitLedger() *VisitLedger {
	return &VisitLedger{urls: make(map[string]struct{})}
}

// Claim atomically records the URL and reports whether this call was the
// first to do so. Exactly one caller ever receives true for a given URL,
// no matter how many goroutines race on it.
func (l *VisitLedger) Claim(url string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.urls[url]; ok {
		return false
	}
	l.urls[url] = struct{}{}
	return true
}

// Size returns the number of distinct URLs claimed so far.
func (l *VisitLedger) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.urls)
}

// URLs returns the claimed URLs in sorted order.
// Sorting makes persistence and test output deterministic.
func (l *VisitLedger) URLs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	urls := make([]string, 0, len(l.urls))
	for u := range l.urls {
		urls = append(urls, u)
	}
	slices.Sort(urls)
	return urls
}
