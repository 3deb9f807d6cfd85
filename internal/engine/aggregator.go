package engine

import (
	"sort"
	"time"

	"github.com/questfeed/hashtag-engine/internal/models"
)

// CategorySummary is the per-category roll-up produced by
// AggregateByCategory.
type CategorySummary struct {
	TotalHashtags     int                   `json:"total_hashtags"`
	TotalUsage        int                   `json:"total_usage"`
	AverageTrendScore float64               `json:"average_trend_score"`
	TopByTrendScore   []models.HashtagStats `json:"top_by_trend_score"`
}

// StatsSummary is the flat summary across a stats list.
type StatsSummary struct {
	TotalHashtags     int     `json:"total_hashtags"`
	TotalDailyUsage   int     `json:"total_daily_usage"`
	AverageTrendScore float64 `json:"average_trend_score"`
}

const topPerCategory = 5

// AggregateByCategory groups stats by classifier category and computes
// the count, total usage, mean trend score, and top five entries by trend
// score for each group.
func AggregateByCategory(classifier *Classifier, statsList []models.HashtagStats) map[models.Category]CategorySummary {
	groups := make(map[models.Category][]models.HashtagStats)
	for _, stats := range statsList {
		category := classifier.Categorize(stats.Hashtag)
		groups[category] = append(groups[category], stats)
	}

	summaries := make(map[models.Category]CategorySummary, len(groups))
	for category, group := range groups {
		totalUsage := 0
		trendSum := 0.0
		for _, stats := range group {
			totalUsage += stats.TotalCount
			trendSum += stats.TrendScore
		}

		top := make([]models.HashtagStats, len(group))
		copy(top, group)
		sort.SliceStable(top, func(i, j int) bool {
			return top[i].TrendScore > top[j].TrendScore
		})
		if len(top) > topPerCategory {
			top = top[:topPerCategory]
		}

		summaries[category] = CategorySummary{
			TotalHashtags:     len(group),
			TotalUsage:        totalUsage,
			AverageTrendScore: trendSum / float64(len(group)),
			TopByTrendScore:   top,
		}
	}
	return summaries
}

// BatchUpdate folds per-hashtag usage counts into existing stats for the
// given date, creating fresh rows for hashtags seen for the first time.
// Adding the count once is equivalent to that many single increments with
// one trend recompute at the end.
func BatchUpdate(usageCounts map[models.HashTag]int, existing map[models.HashTag]models.HashtagStats, date time.Time, now time.Time) []models.HashtagStats {
	updated := make([]models.HashtagStats, 0, len(usageCounts))
	for hashtag, count := range usageCounts {
		if count <= 0 {
			continue
		}
		if stats, ok := existing[hashtag]; ok {
			updated = append(updated, stats.AddUsage(count, now))
			continue
		}
		stats := models.NewHashtagStats(hashtag, date, now)
		stats.DailyCount = count
		stats.WeeklyCount = count
		stats.MonthlyCount = count
		stats.TotalCount = count
		stats.TrendScore = models.TrendScore(count, count, count, now, now)
		updated = append(updated, stats)
	}

	sort.SliceStable(updated, func(i, j int) bool {
		return updated[i].Hashtag < updated[j].Hashtag
	})
	return updated
}

// IdentifyPopular filters stats exceeding the named threshold tier and
// returns them sorted by trend score descending.
func IdentifyPopular(statsList []models.HashtagStats, threshold models.PopularityThreshold) []models.HashtagStats {
	var popular []models.HashtagStats
	for _, stats := range statsList {
		if meetsThreshold(stats, threshold) {
			popular = append(popular, stats)
		}
	}
	sort.SliceStable(popular, func(i, j int) bool {
		return popular[i].TrendScore > popular[j].TrendScore
	})
	return popular
}

func meetsThreshold(stats models.HashtagStats, threshold models.PopularityThreshold) bool {
	switch threshold {
	case models.ThresholdLow:
		return stats.DailyCount >= 3 || stats.WeeklyCount >= 15 || stats.TrendScore >= 5.0
	case models.ThresholdHigh:
		return stats.DailyCount >= 25 || stats.WeeklyCount >= 100 || stats.TrendScore >= 25.0
	default: // moderate
		return stats.DailyCount >= 10 || stats.WeeklyCount >= 50 || stats.TrendScore >= 10.0
	}
}

// IdentifyTrending keeps entries that are trending now and either have no
// previous-week history or grew more than 50% week over week.
func IdentifyTrending(statsList []models.HashtagStats, previousWeek map[models.HashTag]models.HashtagStats) []models.HashtagStats {
	var trending []models.HashtagStats
	for _, stats := range statsList {
		if !stats.IsTrending() {
			continue
		}
		if prev, ok := previousWeek[stats.Hashtag]; ok {
			if stats.GrowthRate(prev.WeeklyCount) <= 50.0 {
				continue
			}
		}
		trending = append(trending, stats)
	}
	sort.SliceStable(trending, func(i, j int) bool {
		return trending[i].TrendScore > trending[j].TrendScore
	})
	return trending
}

// Summarize computes the flat daily summary over a stats list.
func Summarize(statsList []models.HashtagStats) StatsSummary {
	summary := StatsSummary{TotalHashtags: len(statsList)}
	if len(statsList) == 0 {
		return summary
	}
	trendSum := 0.0
	for _, stats := range statsList {
		summary.TotalDailyUsage += stats.DailyCount
		trendSum += stats.TrendScore
	}
	summary.AverageTrendScore = trendSum / float64(len(statsList))
	return summary
}
