package workers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/questfeed/hashtag-engine/internal/cache"
	"github.com/questfeed/hashtag-engine/internal/database"
	logpkg "github.com/questfeed/hashtag-engine/internal/logger"
	"github.com/questfeed/hashtag-engine/internal/queue"
)

// JobProcessor processes one maintenance job
type JobProcessor func(ctx context.Context, job *queue.Job) error

type processorEntry struct {
	proc JobProcessor
}

// MaintenanceWorker processes hashtag maintenance jobs: batch usage
// ingestion and the scheduled daily/weekly/monthly counter resets.
// Resets run as a single serialized batch per job, as the scheduler
// enqueues at most one reset of each horizon per day.
type MaintenanceWorker struct {
	statsRepo     database.HashtagStatsRepositoryInterface
	trendingCache cache.TrendingCacheInterface
	logger        *zap.Logger
	registry      map[queue.JobType]processorEntry
}

// NewMaintenanceWorker creates a worker and registers the maintenance processors.
func NewMaintenanceWorker(
	statsRepo database.HashtagStatsRepositoryInterface,
	trendingCache cache.TrendingCacheInterface,
	logger *zap.Logger,
) *MaintenanceWorker {
	w := &MaintenanceWorker{
		statsRepo:     statsRepo,
		trendingCache: trendingCache,
		logger:        logger,
		registry:      make(map[queue.JobType]processorEntry),
	}
	w.RegisterProcessor(queue.JobTypeUsageIngest, w.ProcessUsageIngestJob)
	w.RegisterProcessor(queue.JobTypeDailyReset, w.ProcessDailyResetJob)
	w.RegisterProcessor(queue.JobTypeWeeklyReset, w.ProcessWeeklyResetJob)
	w.RegisterProcessor(queue.JobTypeMonthlyReset, w.ProcessMonthlyResetJob)
	return w
}

// RegisterProcessor registers a processor for a job type.
func (w *MaintenanceWorker) RegisterProcessor(typ queue.JobType, proc JobProcessor) {
	w.registry[typ] = processorEntry{proc: proc}
}

// ProcessUsageIngestJob folds a batch of per-hashtag usage counts into the
// stats rows for the job's date. Each count goes through the repository's
// additive upsert, so increments landing on the same row from the request
// path while the batch runs are added to rather than overwritten.
func (w *MaintenanceWorker) ProcessUsageIngestJob(ctx context.Context, job *queue.Job) error {
	if len(job.UsageCounts) == 0 {
		return fmt.Errorf("usage_counts is required for usage ingest job")
	}
	w.logger.Info("processing_usage_ingest_job",
		zap.String("job_id", job.ID.String()),
		zap.Time("date", job.Date),
		zap.Int("hashtags", len(job.UsageCounts)),
	)

	ingested := 0
	for hashtag, count := range job.UsageCounts {
		if count <= 0 {
			continue
		}
		if _, err := w.statsRepo.AddUsage(ctx, hashtag, count, job.Date); err != nil {
			return fmt.Errorf("failed to add usage for %s: %w", hashtag, err)
		}
		ingested++
	}

	w.invalidateTrendingCache(ctx, job)
	w.logger.Info("usage_ingest_complete",
		zap.String("job_id", job.ID.String()),
		zap.Int("hashtags_ingested", ingested),
	)
	return nil
}

// ProcessDailyResetJob zeroes daily counters for the job's date.
func (w *MaintenanceWorker) ProcessDailyResetJob(ctx context.Context, job *queue.Job) error {
	return w.processReset(ctx, job, "daily", w.statsRepo.ResetDailyCounts)
}

// ProcessWeeklyResetJob zeroes weekly counters for the job's date.
func (w *MaintenanceWorker) ProcessWeeklyResetJob(ctx context.Context, job *queue.Job) error {
	return w.processReset(ctx, job, "weekly", w.statsRepo.ResetWeeklyCounts)
}

// ProcessMonthlyResetJob zeroes monthly counters for the job's date.
func (w *MaintenanceWorker) ProcessMonthlyResetJob(ctx context.Context, job *queue.Job) error {
	return w.processReset(ctx, job, "monthly", w.statsRepo.ResetMonthlyCounts)
}

func (w *MaintenanceWorker) processReset(ctx context.Context, job *queue.Job, horizon string, reset func(context.Context, time.Time) (int, error)) error {
	w.logger.Info("processing_counter_reset_job",
		zap.String("job_id", job.ID.String()),
		zap.String("horizon", horizon),
		zap.Time("date", job.Date),
	)

	rows, err := reset(ctx, job.Date)
	if err != nil {
		return fmt.Errorf("failed to reset %s counts: %w", horizon, err)
	}

	w.invalidateTrendingCache(ctx, job)
	w.logger.Info("counter_reset_complete",
		zap.String("job_id", job.ID.String()),
		zap.String("horizon", horizon),
		zap.Int("rows_reset", rows),
	)
	return nil
}

func (w *MaintenanceWorker) invalidateTrendingCache(ctx context.Context, job *queue.Job) {
	if w.trendingCache == nil {
		return
	}
	if err := w.trendingCache.Invalidate(ctx, job.Date); err != nil {
		w.logger.Warn("failed_to_invalidate_trending_cache",
			zap.String("job_id", job.ID.String()),
			zap.String("error", logpkg.SanitizeError(err)),
		)
	}
}

// ProcessJob processes a job based on its type using the processor registry.
func (w *MaintenanceWorker) ProcessJob(ctx context.Context, msg queue.MessageInterface) error {
	job := msg.GetJob()
	if !job.ShouldProcess() {
		fields := []zap.Field{zap.String("job_id", job.ID.String())}
		if job.NotBefore != nil {
			fields = append(fields, zap.Time("not_before", *job.NotBefore))
		}
		w.logger.Debug("maintenance_job_not_ready", fields...)
		if ackErr := msg.Ack(); ackErr != nil {
			w.logger.Warn("failed_to_ack_job_for_later_processing",
				zap.String("job_id", job.ID.String()),
				zap.String("error", logpkg.SanitizeError(ackErr)),
			)
		}
		return nil
	}
	ent, ok := w.registry[job.Type]
	if !ok {
		if nackErr := msg.Nack(false); nackErr != nil {
			w.logger.Error("failed_to_nack_unknown_job_type",
				zap.String("job_id", job.ID.String()),
				zap.String("job_type", string(job.Type)),
				zap.String("error", logpkg.SanitizeError(nackErr)),
			)
		}
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	if err := ent.proc(ctx, job); err != nil {
		w.logger.Error("maintenance_job_failed",
			zap.String("operation", "process_job"),
			zap.String("job_id", job.ID.String()),
			zap.String("job_type", string(job.Type)),
			zap.String("error", logpkg.SanitizeError(err)),
		)
		if nackErr := msg.Nack(false); nackErr != nil {
			w.logger.Warn("failed_to_nack_maintenance_job",
				zap.String("job_id", job.ID.String()),
				zap.String("error", logpkg.SanitizeError(nackErr)),
			)
		}
		return fmt.Errorf("maintenance job failed: %w", err)
	}
	if ackErr := msg.Ack(); ackErr != nil {
		return fmt.Errorf("failed to ack maintenance job: %w", ackErr)
	}
	return nil
}
