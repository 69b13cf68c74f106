package wordcount

import (
	"testing"

	"github.com/nao1215/wordcrawl/internal/model"
)

// TestRank tests the ranking transform.
func TestRank(t *testing.T) {
	t.Parallel()

	t.Run("orders by descending count", func(t *testing.T) {
		t.Parallel()

		counts := map[string]int{"low": 1, "high": 10, "mid": 5}
		got := Rank(counts, 3)

		want := []model.WordCount{
			{Word: "high", Count: 10},
			{Word: "mid", Count: 5},
			{Word: "low", Count: 1},
		}
		if len(got) != len(want) {
			t.Fatalf("expected %d entries, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("entry %d: expected %+v, got %+v", i, want[i], got[i])
			}
		}
	})

	t.Run("breaks ties lexicographically and truncates to limit", func(t *testing.T) {
		t.Parallel()

		counts := map[string]int{"a": 5, "b": 5, "c": 1}
		got := Rank(counts, 2)

		if len(got) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(got))
		}
		if got[0].Word != "a" || got[0].Count != 5 {
			t.Errorf("expected first entry {a 5}, got %+v", got[0])
		}
		if got[1].Word != "b" || got[1].Count != 5 {
			t.Errorf("expected second entry {b 5}, got %+v", got[1])
		}
	})

	t.Run("never returns more than limit entries", func(t *testing.T) {
		t.Parallel()

		counts := map[string]int{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5}
		if got := Rank(counts, 3); len(got) != 3 {
			t.Errorf("expected 3 entries, got %d", len(got))
		}
	})

	t.Run("empty input returns empty slice", func(t *testing.T) {
		t.Parallel()

		if got := Rank(map[string]int{}, 10); len(got) != 0 {
			t.Errorf("expected empty result, got %v", got)
		}
	})

	t.Run("non-positive limit returns empty slice", func(t *testing.T) {
		t.Parallel()

		if got := Rank(map[string]int{"a": 1}, 0); len(got) != 0 {
			t.Errorf("expected empty result for limit 0, got %v", got)
		}
		if got := Rank(map[string]int{"a": 1}, -1); len(got) != 0 {
			t.Errorf("expected empty result for negative limit, got %v", got)
		}
	})
}
