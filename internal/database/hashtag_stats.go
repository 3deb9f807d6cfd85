package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/questfeed/hashtag-engine/internal/models"
)

// HashtagStatsRepository handles hashtag statistics database operations.
// One row exists per (hashtag, date); single increments and batch counts
// are both serialized by the additive row-level upsert so lost updates
// cannot occur.
type HashtagStatsRepository struct {
	db *DB
}

// NewHashtagStatsRepository creates a new hashtag stats repository
func NewHashtagStatsRepository(db *DB) *HashtagStatsRepository {
	return &HashtagStatsRepository{db: db}
}

const statsColumns = `hashtag, date, daily_count, weekly_count, monthly_count, total_count, last_used_at, trend_score, created_at, updated_at`

func scanStats(row interface{ Scan(...any) error }) (models.HashtagStats, error) {
	var stats models.HashtagStats
	err := row.Scan(
		&stats.Hashtag,
		&stats.Date,
		&stats.DailyCount,
		&stats.WeeklyCount,
		&stats.MonthlyCount,
		&stats.TotalCount,
		&stats.LastUsedAt,
		&stats.TrendScore,
		&stats.CreatedAt,
		&stats.UpdatedAt,
	)
	return stats, err
}

// GetByHashtagAndDate retrieves the stats row for a hashtag on a given day.
// A missing row is a normal outcome and returns (nil, nil).
func (r *HashtagStatsRepository) GetByHashtagAndDate(ctx context.Context, hashtag models.HashTag, date time.Time) (*models.HashtagStats, error) {
	query := `
		SELECT ` + statsColumns + `
		FROM hashtag_stats
		WHERE hashtag = $1 AND date = $2
	`

	stats, err := scanStats(r.db.QueryRowContext(ctx, query, hashtag, models.DayOf(date)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hashtag stats: %w", err)
	}
	return &stats, nil
}

// ListByDateOrderByTrendScore returns up to limit rows for a day, hottest first.
func (r *HashtagStatsRepository) ListByDateOrderByTrendScore(ctx context.Context, date time.Time, limit int) ([]models.HashtagStats, error) {
	query := `
		SELECT ` + statsColumns + `
		FROM hashtag_stats
		WHERE date = $1
		ORDER BY trend_score DESC
		LIMIT $2
	`
	return r.list(ctx, query, models.DayOf(date), limit)
}

// ListTrending returns rows for a day that clear the trending bars.
func (r *HashtagStatsRepository) ListTrending(ctx context.Context, date time.Time, limit int) ([]models.HashtagStats, error) {
	query := `
		SELECT ` + statsColumns + `
		FROM hashtag_stats
		WHERE date = $1 AND trend_score >= 20.0 AND daily_count >= 5
		ORDER BY trend_score DESC
		LIMIT $2
	`
	return r.list(ctx, query, models.DayOf(date), limit)
}

// ListPopular returns rows for a day that clear any popularity bar.
func (r *HashtagStatsRepository) ListPopular(ctx context.Context, date time.Time, limit int) ([]models.HashtagStats, error) {
	query := `
		SELECT ` + statsColumns + `
		FROM hashtag_stats
		WHERE date = $1 AND (daily_count >= 10 OR weekly_count >= 50 OR trend_score >= 10.0)
		ORDER BY trend_score DESC
		LIMIT $2
	`
	return r.list(ctx, query, models.DayOf(date), limit)
}

// ListByPrefix returns rows for a day whose hashtag starts with the prefix,
// matched case-insensitively with or without the leading '#'.
func (r *HashtagStatsRepository) ListByPrefix(ctx context.Context, prefix string, date time.Time, limit int) ([]models.HashtagStats, error) {
	bare := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(prefix)), "#")
	pattern := likeEscape(bare) + "%"

	query := `
		SELECT ` + statsColumns + `
		FROM hashtag_stats
		WHERE date = $1
		  AND (LOWER(hashtag) LIKE '#' || $2 OR LOWER(hashtag) LIKE $2)
		ORDER BY total_count DESC
		LIMIT $3
	`
	return r.list(ctx, query, models.DayOf(date), pattern, limit)
}

// ListByKeywords returns rows for a day whose hashtag contains any of the
// given keywords, used for category-filtered candidate fetches.
func (r *HashtagStatsRepository) ListByKeywords(ctx context.Context, date time.Time, keywords []string, limit int) ([]models.HashtagStats, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	conditions := make([]string, 0, len(keywords))
	args := []any{models.DayOf(date)}
	for _, keyword := range keywords {
		args = append(args, "%"+likeEscape(strings.ToLower(keyword))+"%")
		conditions = append(conditions, fmt.Sprintf("LOWER(hashtag) LIKE $%d", len(args)))
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT `+statsColumns+`
		FROM hashtag_stats
		WHERE date = $1 AND (%s)
		ORDER BY trend_score DESC
		LIMIT $%d
	`, strings.Join(conditions, " OR "), len(args))

	return r.list(ctx, query, args...)
}

// ListByHashtagBetween returns a hashtag's rows across a date range,
// oldest first, for trend-over-time queries.
func (r *HashtagStatsRepository) ListByHashtagBetween(ctx context.Context, hashtag models.HashTag, start, end time.Time) ([]models.HashtagStats, error) {
	query := `
		SELECT ` + statsColumns + `
		FROM hashtag_stats
		WHERE hashtag = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC
	`
	return r.list(ctx, query, hashtag, models.DayOf(start), models.DayOf(end))
}

// IncrementUsage atomically bumps all four counters for the (hashtag, date)
// row, creating it on first use of the day, then recomputes the trend score
// inside the same transaction. Returns the updated row.
func (r *HashtagStatsRepository) IncrementUsage(ctx context.Context, hashtag models.HashTag, date time.Time) (*models.HashtagStats, error) {
	return r.AddUsage(ctx, hashtag, 1, date)
}

// AddUsage atomically adds count to all four counters for the (hashtag, date)
// row, creating it on first use of the day, then recomputes the trend score
// inside the same transaction. The counter math happens in SQL against the
// current row, never against a previously read snapshot, so a concurrent
// increment on the same row is added to rather than overwritten.
func (r *HashtagStatsRepository) AddUsage(ctx context.Context, hashtag models.HashTag, count int, date time.Time) (*models.HashtagStats, error) {
	if count <= 0 {
		return nil, fmt.Errorf("usage count must be positive, got %d", count)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	day := models.DayOf(date)

	upsert := `
		INSERT INTO hashtag_stats (hashtag, date, daily_count, weekly_count, monthly_count, total_count, last_used_at, trend_score, created_at, updated_at)
		VALUES ($1, $2, $3, $3, $3, $3, $4, 1.0, $4, $4)
		ON CONFLICT (hashtag, date) DO UPDATE
		SET daily_count = hashtag_stats.daily_count + EXCLUDED.daily_count,
		    weekly_count = hashtag_stats.weekly_count + EXCLUDED.weekly_count,
		    monthly_count = hashtag_stats.monthly_count + EXCLUDED.monthly_count,
		    total_count = hashtag_stats.total_count + EXCLUDED.total_count,
		    last_used_at = $4,
		    updated_at = $4
		RETURNING ` + statsColumns + `
	`

	stats, err := scanStats(tx.QueryRowContext(ctx, upsert, hashtag, day, count, now))
	if err != nil {
		return nil, fmt.Errorf("failed to add hashtag usage: %w", err)
	}

	// Trend score is always derived in one place; the upsert leaves the
	// previous value and this recompute overwrites it.
	stats.TrendScore = models.TrendScore(stats.DailyCount, stats.WeeklyCount, stats.MonthlyCount, stats.LastUsedAt, now)

	update := `
		UPDATE hashtag_stats
		SET trend_score = $1
		WHERE hashtag = $2 AND date = $3
	`
	if _, err := tx.ExecContext(ctx, update, stats.TrendScore, hashtag, day); err != nil {
		return nil, fmt.Errorf("failed to update trend score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit usage update: %w", err)
	}
	return &stats, nil
}

// ResetDailyCounts zeroes the daily counter for every row on a day and
// recomputes each trend score through the shared formula. Runs as a single
// serialized maintenance batch.
func (r *HashtagStatsRepository) ResetDailyCounts(ctx context.Context, date time.Time) (int, error) {
	return r.resetCounts(ctx, date, func(stats models.HashtagStats, now time.Time) models.HashtagStats {
		return stats.ResetDailyCount(now)
	})
}

// ResetWeeklyCounts zeroes the weekly counter for every row on a day.
func (r *HashtagStatsRepository) ResetWeeklyCounts(ctx context.Context, date time.Time) (int, error) {
	return r.resetCounts(ctx, date, func(stats models.HashtagStats, now time.Time) models.HashtagStats {
		return stats.ResetWeeklyCount(now)
	})
}

// ResetMonthlyCounts zeroes the monthly counter for every row on a day.
func (r *HashtagStatsRepository) ResetMonthlyCounts(ctx context.Context, date time.Time) (int, error) {
	return r.resetCounts(ctx, date, func(stats models.HashtagStats, now time.Time) models.HashtagStats {
		return stats.ResetMonthlyCount(now)
	})
}

func (r *HashtagStatsRepository) resetCounts(ctx context.Context, date time.Time, reset func(models.HashtagStats, time.Time) models.HashtagStats) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		SELECT ` + statsColumns + `
		FROM hashtag_stats
		WHERE date = $1
		FOR UPDATE
	`
	rows, err := tx.QueryContext(ctx, query, models.DayOf(date))
	if err != nil {
		return 0, fmt.Errorf("failed to load stats for reset: %w", err)
	}

	var statsList []models.HashtagStats
	for rows.Next() {
		stats, err := scanStats(rows)
		if err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan stats row: %w", err)
		}
		statsList = append(statsList, stats)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("failed to iterate stats rows: %w", err)
	}
	rows.Close()

	now := time.Now().UTC()
	update := `
		UPDATE hashtag_stats
		SET daily_count = $1, weekly_count = $2, monthly_count = $3, trend_score = $4, updated_at = $5
		WHERE hashtag = $6 AND date = $7
	`
	for _, stats := range statsList {
		updated := reset(stats, now)
		if _, err := tx.ExecContext(ctx, update,
			updated.DailyCount,
			updated.WeeklyCount,
			updated.MonthlyCount,
			updated.TrendScore,
			updated.UpdatedAt,
			updated.Hashtag,
			updated.Date,
		); err != nil {
			return 0, fmt.Errorf("failed to reset counts for %s: %w", stats.Hashtag, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit count reset: %w", err)
	}
	return len(statsList), nil
}

// GetSummary computes the daily stats summary across all rows for a day.
func (r *HashtagStatsRepository) GetSummary(ctx context.Context, date time.Time) (*StatsSummary, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(daily_count), 0), COALESCE(AVG(trend_score), 0)
		FROM hashtag_stats
		WHERE date = $1
	`

	summary := &StatsSummary{}
	err := r.db.QueryRowContext(ctx, query, models.DayOf(date)).Scan(
		&summary.TotalHashtags,
		&summary.TotalDailyUsage,
		&summary.AverageTrendScore,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats summary: %w", err)
	}
	return summary, nil
}

func (r *HashtagStatsRepository) list(ctx context.Context, query string, args ...any) ([]models.HashtagStats, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query hashtag stats: %w", err)
	}
	defer rows.Close()

	var statsList []models.HashtagStats
	for rows.Next() {
		stats, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		statsList = append(statsList, stats)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stats rows: %w", err)
	}
	return statsList, nil
}

// likeEscape escapes LIKE metacharacters in user-supplied patterns.
func likeEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// StatsSummary mirrors the aggregate row returned by GetSummary.
type StatsSummary struct {
	TotalHashtags     int     `json:"total_hashtags"`
	TotalDailyUsage   int     `json:"total_daily_usage"`
	AverageTrendScore float64 `json:"average_trend_score"`
}
