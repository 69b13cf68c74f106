package wordcount

import (
	"slices"
	"strings"

	"github.com/nao1215/wordcrawl/internal/model"
)

// Rank orders the aggregated counts by descending count, breaking ties
// lexicographically ascending by word, and truncates the result to at
// most limit entries.
//
// A non-positive limit or empty input returns an empty slice. The input
// map is never modified.
func Rank(counts map[string]int, limit int) []model.WordCount {
	if limit <= 0 || len(counts) == 0 {
		return []model.WordCount{}
	}

	ranked := make([]model.WordCount, 0, len(counts))
	for word, count := range counts {
		ranked = append(ranked, model.WordCount{Word: word, Count: count})
	}

	slices.SortFunc(ranked, func(a, b model.WordCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Word, b.Word)
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
