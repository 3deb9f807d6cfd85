package engine

import (
	"sort"
	"time"

	"github.com/questfeed/hashtag-engine/internal/models"
)

// SearchWeights blends the three components of a search-relevance score.
type SearchWeights struct {
	Similarity float64
	Popularity float64
	Recency    float64
}

// DefaultSearchWeights is the standard relevance blend.
var DefaultSearchWeights = SearchWeights{
	Similarity: 0.5,
	Popularity: 0.3,
	Recency:    0.2,
}

// SearchScore combines textual similarity, popularity, and recency into a
// single relevance score for a query against one hashtag's stats.
func SearchScore(query string, stats models.HashtagStats, weights SearchWeights, now time.Time) float64 {
	similarityScore := Similarity(query, stats.Hashtag.String())
	popularityScore := clamp(stats.TrendScore/100.0, 0.0, 1.0)
	recencyScore := RecencyScore(stats.LastUsedAt, now)

	return similarityScore*weights.Similarity +
		popularityScore*weights.Popularity +
		recencyScore*weights.Recency
}

// RecencyScore buckets hours-since-last-use into a [0.2, 1.0] score.
func RecencyScore(lastUsedAt, now time.Time) float64 {
	hours := now.Sub(lastUsedAt).Hours()
	switch {
	case hours <= 1:
		return 1.0
	case hours <= 6:
		return 0.8
	case hours <= 24:
		return 0.6
	case hours <= 168:
		return 0.4
	default:
		return 0.2
	}
}

// SortResults orders a copy of the candidates by the given criterion. The
// output is always a permutation of the input; ties keep input order.
func SortResults(candidates []models.HashtagStats, query string, criterion models.SortCriterion, now time.Time) []models.HashtagStats {
	sorted := make([]models.HashtagStats, len(candidates))
	copy(sorted, candidates)

	switch criterion {
	case models.SortByPopularity:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].TrendScore > sorted[j].TrendScore
		})
	case models.SortByRecent:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].LastUsedAt.After(sorted[j].LastUsedAt)
		})
	case models.SortByAlphabetical:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Hashtag < sorted[j].Hashtag
		})
	case models.SortByUsageCount:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].TotalCount > sorted[j].TotalCount
		})
	default: // relevance
		scores := make([]float64, len(sorted))
		for i, stats := range sorted {
			scores[i] = SearchScore(query, stats, DefaultSearchWeights, now)
		}
		indices := make([]int, len(sorted))
		for i := range indices {
			indices[i] = i
		}
		sort.SliceStable(indices, func(i, j int) bool {
			return scores[indices[i]] > scores[indices[j]]
		})
		reordered := make([]models.HashtagStats, len(sorted))
		for i, idx := range indices {
			reordered[i] = sorted[idx]
		}
		sorted = reordered
	}

	return sorted
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
