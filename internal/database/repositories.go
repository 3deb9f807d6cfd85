package database

import (
	"context"
	"time"

	"github.com/questfeed/hashtag-engine/internal/models"
)

// HashtagStatsRepositoryInterface defines the storage port consumed by the
// engine's callers. This interface enables better testability by allowing
// mock implementations.
type HashtagStatsRepositoryInterface interface {
	GetByHashtagAndDate(ctx context.Context, hashtag models.HashTag, date time.Time) (*models.HashtagStats, error)
	ListByDateOrderByTrendScore(ctx context.Context, date time.Time, limit int) ([]models.HashtagStats, error)
	ListTrending(ctx context.Context, date time.Time, limit int) ([]models.HashtagStats, error)
	ListPopular(ctx context.Context, date time.Time, limit int) ([]models.HashtagStats, error)
	ListByPrefix(ctx context.Context, prefix string, date time.Time, limit int) ([]models.HashtagStats, error)
	ListByKeywords(ctx context.Context, date time.Time, keywords []string, limit int) ([]models.HashtagStats, error)
	ListByHashtagBetween(ctx context.Context, hashtag models.HashTag, start, end time.Time) ([]models.HashtagStats, error)
	IncrementUsage(ctx context.Context, hashtag models.HashTag, date time.Time) (*models.HashtagStats, error)
	AddUsage(ctx context.Context, hashtag models.HashTag, count int, date time.Time) (*models.HashtagStats, error)
	ResetDailyCounts(ctx context.Context, date time.Time) (int, error)
	ResetWeeklyCounts(ctx context.Context, date time.Time) (int, error)
	ResetMonthlyCounts(ctx context.Context, date time.Time) (int, error)
	GetSummary(ctx context.Context, date time.Time) (*StatsSummary, error)
}

// Ensure concrete types implement the interfaces
var _ HashtagStatsRepositoryInterface = (*HashtagStatsRepository)(nil)
