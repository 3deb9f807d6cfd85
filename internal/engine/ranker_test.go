package engine

import (
	"testing"
	"time"

	"github.com/questfeed/hashtag-engine/internal/models"
)

func statsFor(tag models.HashTag, trendScore float64, totalCount int, lastUsedAt time.Time) models.HashtagStats {
	return models.HashtagStats{
		Hashtag:    tag,
		TrendScore: trendScore,
		TotalCount: totalCount,
		LastUsedAt: lastUsedAt,
	}
}

func TestRecencyScore_Buckets(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		lastUsed time.Time
		expected float64
	}{
		{"within hour", now.Add(-30 * time.Minute), 1.0},
		{"within six hours", now.Add(-5 * time.Hour), 0.8},
		{"within day", now.Add(-23 * time.Hour), 0.6},
		{"within week", now.Add(-100 * time.Hour), 0.4},
		{"older", now.Add(-400 * time.Hour), 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RecencyScore(tt.lastUsed, now); got != tt.expected {
				t.Errorf("RecencyScore = %f, expected %f", got, tt.expected)
			}
		})
	}
}

func TestSearchScore_WeightedBlend(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	stats := statsFor("#카페", 50.0, 100, now.Add(-30*time.Minute))

	// Exact query: similarity 1.0, popularity 0.5, recency 1.0.
	got := SearchScore("#카페", stats, DefaultSearchWeights, now)
	expected := 1.0*0.5 + 0.5*0.3 + 1.0*0.2
	if diff := got - expected; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("SearchScore = %f, expected %f", got, expected)
	}
}

func TestSearchScore_PopularityClamped(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	stats := statsFor("#카페", 5000.0, 100, now)

	got := SearchScore("#카페", stats, SearchWeights{Popularity: 1.0}, now)
	if got != 1.0 {
		t.Errorf("Expected popularity component clamped to 1.0, got %f", got)
	}
}

func TestSortResults_Criteria(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	candidates := []models.HashtagStats{
		statsFor("#바다", 5.0, 300, now.Add(-48*time.Hour)),
		statsFor("#카페", 80.0, 50, now.Add(-1*time.Minute)),
		statsFor("#운동", 40.0, 900, now.Add(-10*time.Hour)),
	}

	tests := []struct {
		name      string
		criterion models.SortCriterion
		expected  []models.HashTag
	}{
		{"popularity", models.SortByPopularity, []models.HashTag{"#카페", "#운동", "#바다"}},
		{"recent", models.SortByRecent, []models.HashTag{"#카페", "#운동", "#바다"}},
		{"alphabetical", models.SortByAlphabetical, []models.HashTag{"#바다", "#운동", "#카페"}},
		{"usage count", models.SortByUsageCount, []models.HashTag{"#운동", "#바다", "#카페"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sorted := SortResults(candidates, "#카페", tt.criterion, now)
			for i, expected := range tt.expected {
				if sorted[i].Hashtag != expected {
					t.Errorf("Position %d: got %q, expected %q", i, sorted[i].Hashtag, expected)
				}
			}
		})
	}
}

func TestSortResults_RelevancePutsQueryMatchFirst(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	candidates := []models.HashtagStats{
		statsFor("#등산모임", 10.0, 50, now.Add(-72*time.Hour)),
		statsFor("#카페라떼", 10.0, 50, now.Add(-72*time.Hour)),
	}

	sorted := SortResults(candidates, "#카페", models.SortByRelevance, now)
	if sorted[0].Hashtag != "#카페라떼" {
		t.Errorf("Expected query match first, got %q", sorted[0].Hashtag)
	}
}

func TestSortResults_RecentBreaksTrendScoreTie(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	older := statsFor("#아침", 30.0, 10, now.Add(-10*time.Hour))
	newer := statsFor("#저녁", 30.0, 10, now.Add(-1*time.Hour))

	sorted := SortResults([]models.HashtagStats{older, newer}, "", models.SortByRecent, now)
	if sorted[0].Hashtag != "#저녁" {
		t.Errorf("Expected more recently used hashtag first, got %q", sorted[0].Hashtag)
	}
}

func TestSortResults_IsPermutation(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	candidates := []models.HashtagStats{
		statsFor("#a", 1.0, 1, now),
		statsFor("#b", 2.0, 2, now),
		statsFor("#c", 3.0, 3, now),
		statsFor("#d", 4.0, 4, now),
	}

	criteria := []models.SortCriterion{
		models.SortByRelevance, models.SortByPopularity, models.SortByRecent,
		models.SortByAlphabetical, models.SortByUsageCount,
	}

	for _, criterion := range criteria {
		sorted := SortResults(candidates, "#b", criterion, now)
		if len(sorted) != len(candidates) {
			t.Fatalf("%s: expected %d results, got %d", criterion, len(candidates), len(sorted))
		}
		seen := make(map[models.HashTag]int)
		for _, stats := range sorted {
			seen[stats.Hashtag]++
		}
		for _, stats := range candidates {
			if seen[stats.Hashtag] != 1 {
				t.Errorf("%s: %q appears %d times", criterion, stats.Hashtag, seen[stats.Hashtag])
			}
		}
	}
}

func TestSortResults_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	candidates := []models.HashtagStats{
		statsFor("#z", 1.0, 1, now),
		statsFor("#a", 2.0, 2, now),
	}

	_ = SortResults(candidates, "", models.SortByAlphabetical, now)
	if candidates[0].Hashtag != "#z" {
		t.Error("SortResults mutated its input slice")
	}
}
