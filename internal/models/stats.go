package models

import (
	"time"
)

// HashtagStats holds per-(hashtag, day) usage counters and the derived
// trend score. One row exists per hashtag per calendar day.
//
// Instances are treated as values: update methods return a modified copy
// instead of mutating in place, so stats can be shared across goroutines
// without locking. Atomicity of concurrent increments to the same row is
// the storage layer's responsibility.
type HashtagStats struct {
	Hashtag      HashTag   `json:"hashtag"`
	Date         time.Time `json:"date"`
	DailyCount   int       `json:"daily_count"`
	WeeklyCount  int       `json:"weekly_count"`
	MonthlyCount int       `json:"monthly_count"`
	TotalCount   int       `json:"total_count"`
	LastUsedAt   time.Time `json:"last_used_at"`
	TrendScore   float64   `json:"trend_score"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewHashtagStats creates stats for the first observed use of a hashtag on
// the given day. All counters start at 1 and the trend score at 1.0.
func NewHashtagStats(hashtag HashTag, date time.Time, now time.Time) HashtagStats {
	return HashtagStats{
		Hashtag:      hashtag,
		Date:         DayOf(date),
		DailyCount:   1,
		WeeklyCount:  1,
		MonthlyCount: 1,
		TotalCount:   1,
		LastUsedAt:   now,
		TrendScore:   1.0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// DayOf truncates a timestamp to its calendar day in UTC.
func DayOf(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// TrendScore is the single authoritative trend-score formula. Recency and
// frequency weights amplify the daily count; weekly and monthly counts
// contribute at fixed discounts.
func TrendScore(daily, weekly, monthly int, lastUsedAt, now time.Time) float64 {
	hours := now.Sub(lastUsedAt).Hours()

	var recencyWeight float64
	switch {
	case hours <= 1:
		recencyWeight = 2.0
	case hours <= 6:
		recencyWeight = 1.5
	case hours <= 24:
		recencyWeight = 1.0
	case hours <= 168:
		recencyWeight = 0.5
	default:
		recencyWeight = 0.1
	}

	var frequencyWeight float64
	switch {
	case daily >= 50:
		frequencyWeight = 3.0
	case daily >= 20:
		frequencyWeight = 2.5
	case daily >= 10:
		frequencyWeight = 2.0
	case daily >= 5:
		frequencyWeight = 1.5
	default:
		frequencyWeight = 1.0
	}

	return float64(daily)*recencyWeight*frequencyWeight +
		float64(weekly)*0.3 +
		float64(monthly)*0.1
}

// IncrementUsage returns a copy with all four counters bumped by one,
// LastUsedAt set to now, and the trend score recomputed.
func (s HashtagStats) IncrementUsage(now time.Time) HashtagStats {
	return s.AddUsage(1, now)
}

// AddUsage returns a copy with all four counters increased by count. Used
// by batch ingestion to fold many uses into one recompute.
func (s HashtagStats) AddUsage(count int, now time.Time) HashtagStats {
	if count <= 0 {
		return s
	}
	s.DailyCount += count
	s.WeeklyCount += count
	s.MonthlyCount += count
	s.TotalCount += count
	s.LastUsedAt = now
	s.UpdatedAt = now
	s.TrendScore = TrendScore(s.DailyCount, s.WeeklyCount, s.MonthlyCount, s.LastUsedAt, now)
	return s
}

// ResetDailyCount zeroes the daily counter and recomputes the trend score.
func (s HashtagStats) ResetDailyCount(now time.Time) HashtagStats {
	s.DailyCount = 0
	s.UpdatedAt = now
	s.TrendScore = TrendScore(s.DailyCount, s.WeeklyCount, s.MonthlyCount, s.LastUsedAt, now)
	return s
}

// ResetWeeklyCount zeroes the weekly counter and recomputes the trend score.
func (s HashtagStats) ResetWeeklyCount(now time.Time) HashtagStats {
	s.WeeklyCount = 0
	s.UpdatedAt = now
	s.TrendScore = TrendScore(s.DailyCount, s.WeeklyCount, s.MonthlyCount, s.LastUsedAt, now)
	return s
}

// ResetMonthlyCount zeroes the monthly counter and recomputes the trend score.
func (s HashtagStats) ResetMonthlyCount(now time.Time) HashtagStats {
	s.MonthlyCount = 0
	s.UpdatedAt = now
	s.TrendScore = TrendScore(s.DailyCount, s.WeeklyCount, s.MonthlyCount, s.LastUsedAt, now)
	return s
}

// IsPopular reports whether the hashtag clears any of the popularity bars.
func (s HashtagStats) IsPopular() bool {
	return s.DailyCount >= 10 || s.WeeklyCount >= 50 || s.TrendScore >= 10.0
}

// IsTrending reports whether the hashtag is actively trending.
func (s HashtagStats) IsTrending() bool {
	return s.TrendScore >= 20.0 && s.DailyCount >= 5
}

// GrowthRate returns the week-over-week growth percentage. A hashtag with
// no prior usage reports a flat 100% (new-hashtag growth, not an error).
func (s HashtagStats) GrowthRate(previousWeeklyCount int) float64 {
	if previousWeeklyCount == 0 {
		return 100.0
	}
	return (float64(s.WeeklyCount-previousWeeklyCount) / float64(previousWeeklyCount)) * 100.0
}
