package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/questfeed/hashtag-engine/internal/models"
)

// JobType represents the type of job
type JobType string

const (
	// JobTypeUsageIngest folds a batch of per-hashtag usage counts into stats rows
	JobTypeUsageIngest JobType = "usage_ingest"
	// JobTypeDailyReset zeroes daily counters for a day's rows
	JobTypeDailyReset JobType = "daily_reset"
	// JobTypeWeeklyReset zeroes weekly counters for a day's rows
	JobTypeWeeklyReset JobType = "weekly_reset"
	// JobTypeMonthlyReset zeroes monthly counters for a day's rows
	JobTypeMonthlyReset JobType = "monthly_reset"
)

// Job represents a maintenance job in the queue
type Job struct {
	ID         uuid.UUID              `json:"id"`
	Type       JobType                `json:"type"`
	Date       time.Time              `json:"date"`
	UsageCounts map[models.HashTag]int `json:"usage_counts,omitempty"` // Only for usage_ingest jobs
	NotBefore  *time.Time             `json:"not_before,omitempty"` // Earliest time to process job (nil = immediate)
	NotAfter   *time.Time             `json:"not_after,omitempty"`  // Latest time to process job (nil = no expiration)
	CreatedAt  time.Time              `json:"created_at"`
	RetryCount int                    `json:"retry_count"`
	MaxRetries int                    `json:"max_retries"`
}

// NewJob creates a new maintenance job for the given day
func NewJob(jobType JobType, date time.Time) *Job {
	return &Job{
		ID:         uuid.New(),
		Type:       jobType,
		Date:       models.DayOf(date),
		CreatedAt:  time.Now(),
		RetryCount: 0,
		MaxRetries: 3,
	}
}

// NewUsageIngestJob creates a batch ingestion job carrying usage counts
func NewUsageIngestJob(date time.Time, usageCounts map[models.HashTag]int) *Job {
	job := NewJob(JobTypeUsageIngest, date)
	job.UsageCounts = usageCounts
	return job
}

// ShouldProcess checks if the job should be processed now
func (j *Job) ShouldProcess() bool {
	now := time.Now()

	// Check NotBefore
	if j.NotBefore != nil && now.Before(*j.NotBefore) {
		return false
	}

	// Check NotAfter
	if j.NotAfter != nil && now.After(*j.NotAfter) {
		return false
	}

	return true
}

// IsExpired checks if the job has expired
func (j *Job) IsExpired() bool {
	if j.NotAfter == nil {
		return false
	}

	return time.Now().After(*j.NotAfter)
}

// CanRetry checks if the job can be retried
func (j *Job) CanRetry() bool {
	return j.RetryCount < j.MaxRetries
}

// IncrementRetry increments the retry count
func (j *Job) IncrementRetry() {
	j.RetryCount++
}
