package engine

import (
	"github.com/questfeed/hashtag-engine/internal/models"
)

// AnalyzeLifecycle classifies a hashtag's maturity stage from its age and
// current counters. Rules are checked in order; the first match wins.
func AnalyzeLifecycle(stats models.HashtagStats, daysSinceFirstUsed int) models.LifecycleStage {
	switch {
	case daysSinceFirstUsed <= 7 && stats.TrendScore >= 15.0:
		return models.StageEmerging
	case daysSinceFirstUsed <= 30 && stats.TrendScore >= 25.0:
		return models.StageTrending
	case stats.TrendScore >= 20.0 && stats.WeeklyCount >= 50:
		return models.StageMature
	case stats.DailyCount <= 2 && stats.WeeklyCount <= 10:
		return models.StageDeclining
	default:
		return models.StageStable
	}
}
