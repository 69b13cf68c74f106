package crawler

import "sync"

// CountAggregator accumulates word counts merged from every processed
// page. Merges are additive and commutative, so concurrent tasks may
// merge in any order without affecting the final totals.
//
// Snapshot is only meaningful after the whole crawl forest has joined;
// the coordinator guarantees that barrier before reading.
type CountAggregator struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewCountAggregator creates an empty aggregator.
func NewCountAggregator() *CountAggregator {
	return &CountAggregator{counts: make(map[string]int)}
}

// Merge adds each per-page count to the running total for that word,
// creating entries as needed. Counts only ever increase; an existing
// total is never replaced, only added to.
func (a *CountAggregator) Merge(pageCounts map[string]int) {
	if len(pageCounts) == 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for word, count := range pageCounts {
		a.counts[word] += count
	}
}

// Snapshot returns a copy of the aggregated counts.
// The copy is safe to hand to the ranking transform after the barrier.
func (a *CountAggregator) Snapshot() map[string]int {
	a.mu.Lock()
	defer a.mu.Unlock()

	snapshot := make(map[string]int, len(a.counts))
	for word, count := range a.counts {
		snapshot[word] = count
	}
	return snapshot
}

// Len returns the number of distinct words aggregated so far.
func (a *CountAggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.counts)
}
