package engine

import (
	"sort"
	"time"

	"github.com/questfeed/hashtag-engine/internal/models"
)

// Recommendation score blend: category preference carries the same weight
// as popularity, with recency as a tie-breaker component.
const (
	recommendCategoryWeight   = 0.4
	recommendPopularityWeight = 0.4
	recommendRecencyWeight    = 0.2
)

// RecommendationScore ranks a hashtag for a user from their preferred
// categories, the tag's popularity, and how recently it was used. A
// non-preferred category still scores half the category weight so popular
// off-interest tags are not buried entirely.
func RecommendationScore(classifier *Classifier, stats models.HashtagStats, preferred []models.Category, now time.Time) float64 {
	categoryMatch := 0.5
	category := classifier.Categorize(stats.Hashtag)
	for _, p := range preferred {
		if p == category {
			categoryMatch = 1.0
			break
		}
	}

	popularityScore := clamp(stats.TrendScore/50.0, 0.0, 1.0)
	recencyScore := RecencyScore(stats.LastUsedAt, now)

	return categoryMatch*recommendCategoryWeight +
		popularityScore*recommendPopularityWeight +
		recencyScore*recommendRecencyWeight
}

// RankRecommendations orders candidates by recommendation score descending.
func RankRecommendations(classifier *Classifier, candidates []models.HashtagStats, preferred []models.Category, now time.Time) []models.HashtagStats {
	scores := make([]float64, len(candidates))
	indices := make([]int, len(candidates))
	for i, stats := range candidates {
		scores[i] = RecommendationScore(classifier, stats, preferred, now)
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return scores[indices[i]] > scores[indices[j]]
	})

	ranked := make([]models.HashtagStats, len(candidates))
	for i, idx := range indices {
		ranked[i] = candidates[idx]
	}
	return ranked
}
