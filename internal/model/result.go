package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// WordCount is a single word together with its aggregated count.
// Slices of WordCount carry ranking order, which a plain map cannot.
type WordCount struct {
	// Word is the normalized (lowercased) word.
	Word string `json:"word"`

	// Count is the total number of occurrences across all visited pages.
	Count int `json:"count"`
}

// CrawlResult is the final outcome of a crawl run.
//
// Design decision: WordCounts is an ordered slice rather than a map
// because the ranking order (descending count, ties broken
// lexicographically) is part of the result contract and Go maps do not
// preserve iteration order.
type CrawlResult struct {
	// WordCounts holds the top-N ranked words. It is empty (not nil-checked
	// by callers) when no page yielded any words; in that case ranking was
	// never performed.
	WordCounts []WordCount `json:"wordCounts"`

	// URLsVisited is the number of distinct URLs claimed during the run.
	// It equals the final size of the visit ledger exactly, including URLs
	// whose fetch failed after they were claimed.
	URLsVisited int `json:"urlsVisited"`

	// Seeds are the starting URLs the run was launched with.
	Seeds []string `json:"seeds,omitempty"`

	// StartedAt is when the crawl began.
	StartedAt time.Time `json:"startedAt,omitzero"`

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed,omitempty"`
}

// MarshalJSON renders WordCounts as a JSON object whose key order follows
// the ranking. encoding/json would sort map keys alphabetically, losing
// the rank order, so the object is assembled by hand.
func (r *CrawlResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"wordCounts":{`)
	for i, wc := range r.WordCounts {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(wc.Word)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		count, err := json.Marshal(wc.Count)
		if err != nil {
			return nil, err
		}
		buf.Write(count)
	}
	buf.WriteString(`},"urlsVisited":`)
	visited, err := json.Marshal(r.URLsVisited)
	if err != nil {
		return nil, err
	}
	buf.Write(visited)

	if len(r.Seeds) > 0 {
		buf.WriteString(`,"seeds":`)
		seeds, err := json.Marshal(r.Seeds)
		if err != nil {
			return nil, err
		}
		buf.Write(seeds)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// TotalWords returns the sum of all ranked counts.
// Useful for report summaries.
func (r *CrawlResult) TotalWords() int {
	total := 0
	for _, wc := range r.WordCounts {
		total += wc.Count
	}
	return total
}
