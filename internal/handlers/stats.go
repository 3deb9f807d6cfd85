package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/questfeed/hashtag-engine/internal/database"
	"github.com/questfeed/hashtag-engine/internal/engine"
	logpkg "github.com/questfeed/hashtag-engine/internal/logger"
	"github.com/questfeed/hashtag-engine/internal/models"
	"github.com/questfeed/hashtag-engine/internal/queue"
	"github.com/questfeed/hashtag-engine/internal/validation"
)

const (
	// MaxUsageBatchSize caps how many hashtags one usage report may carry
	MaxUsageBatchSize = 100
	// syncIngestThreshold is the batch size above which ingestion goes
	// through the queue instead of synchronous increments
	syncIngestThreshold = 20
	// MaxHistoryDays caps the history endpoint's lookback window
	MaxHistoryDays = 365
	// DefaultHistoryDays is the default history lookback
	DefaultHistoryDays = 30
	// categoryCandidateLimit caps the rows fed into the category roll-up
	categoryCandidateLimit = 1000
)

// StatsHandler serves the statistics surfaces and the usage write path
type StatsHandler struct {
	statsRepo  database.HashtagStatsRepositoryInterface
	classifier *engine.Classifier
	jobQueue   queue.JobQueue
	logger     *zap.Logger
}

// StatsHandlerOption configures optional handler dependencies
type StatsHandlerOption func(*StatsHandler)

// WithStatsJobQueue enables queued ingestion for large usage batches
func WithStatsJobQueue(jobQueue queue.JobQueue) StatsHandlerOption {
	return func(h *StatsHandler) {
		h.jobQueue = jobQueue
	}
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsRepo database.HashtagStatsRepositoryInterface, classifier *engine.Classifier, logger *zap.Logger, opts ...StatsHandlerOption) *StatsHandler {
	h := &StatsHandler{statsRepo: statsRepo, classifier: classifier, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes registers the read-side stats routes on the given router
func (h *StatsHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/stats/summary", h.Summary).Methods("GET")
	r.HandleFunc("/stats/categories", h.Categories).Methods("GET")
	r.HandleFunc("/stats/{hashtag}/history", h.History).Methods("GET")
}

// RegisterWriteRoutes registers the usage write path. Kept separate so the
// server can put a stricter rate limit on writes than on reads.
func (h *StatsHandler) RegisterWriteRoutes(r *mux.Router) {
	r.HandleFunc("/stats/usage", h.ReportUsage).Methods("POST")
}

// Summary returns the flat daily summary for a date.
func (h *StatsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r, "date")
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "date must be formatted YYYY-MM-DD")
		return
	}

	summary, err := h.statsRepo.GetSummary(r.Context(), date)
	if err != nil {
		h.logger.Error("summary_fetch_failed",
			zap.String("error", logpkg.SanitizeError(err)),
		)
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to fetch summary")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// CategoriesResponse is the per-category roll-up envelope.
type CategoriesResponse struct {
	Date       string                                      `json:"date"`
	Categories map[models.Category]engine.CategorySummary `json:"categories"`
}

// Categories returns the per-category roll-up for a date.
func (h *StatsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r, "date")
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "date must be formatted YYYY-MM-DD")
		return
	}

	statsList, err := h.statsRepo.ListByDateOrderByTrendScore(r.Context(), date, categoryCandidateLimit)
	if err != nil {
		h.logger.Error("category_summary_fetch_failed",
			zap.String("error", logpkg.SanitizeError(err)),
		)
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to fetch category summary")
		return
	}

	respondJSON(w, http.StatusOK, CategoriesResponse{
		Date:       models.DayOf(date).Format("2006-01-02"),
		Categories: engine.AggregateByCategory(h.classifier, statsList),
	})
}

// HistoryResponse is a hashtag's per-day history envelope.
type HistoryResponse struct {
	Hashtag models.HashTag        `json:"hashtag"`
	Days    int                   `json:"days"`
	History []models.HashtagStats `json:"history"`
}

// History returns a hashtag's per-day rows over a lookback window, oldest
// first. An untracked hashtag yields an empty history, not an error.
func (h *StatsHandler) History(w http.ResponseWriter, r *http.Request) {
	hashtag := models.NormalizeHashtag(mux.Vars(r)["hashtag"])
	if hashtag.Bare() == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "hashtag is required")
		return
	}
	days := queryInt(r, "days", DefaultHistoryDays, MaxHistoryDays)

	now := time.Now().UTC()
	history, err := h.statsRepo.ListByHashtagBetween(r.Context(), hashtag, now.AddDate(0, 0, -days), now)
	if err != nil {
		h.logger.Error("history_fetch_failed",
			zap.String("error", logpkg.SanitizeError(err)),
		)
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to fetch hashtag history")
		return
	}

	respondJSON(w, http.StatusOK, HistoryResponse{
		Hashtag: hashtag,
		Days:    days,
		History: history,
	})
}

// UsageRequest is the usage write-path body. Duplicate hashtags in one
// report count multiple uses.
type UsageRequest struct {
	Hashtags []string `json:"hashtags" validate:"required,min=1,max=100,dive,required"`
}

// UsageResponse reports synchronous increments.
type UsageResponse struct {
	Updated []models.HashtagStats `json:"updated"`
}

// ReportUsage records hashtag uses. Small batches increment synchronously
// and return the updated rows; large batches are handed to the maintenance
// queue and acknowledged with 202.
func (h *StatsHandler) ReportUsage(w http.ResponseWriter, r *http.Request) {
	var req UsageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if maxBytesErr, ok := err.(*http.MaxBytesError); ok {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}
	if err := validation.Validate.Struct(req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("hashtags must contain between 1 and %d entries", MaxUsageBatchSize))
		return
	}

	counts := make(map[models.HashTag]int, len(req.Hashtags))
	for _, raw := range req.Hashtags {
		cleaned := validation.SanitizeText(raw)
		hashtag := models.NormalizeHashtag(cleaned)
		if hashtag.Bare() == "" {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "hashtags must not be blank")
			return
		}
		counts[hashtag]++
	}

	ctx := r.Context()
	now := time.Now().UTC()

	if h.jobQueue != nil && len(req.Hashtags) > syncIngestThreshold {
		job := queue.NewUsageIngestJob(now, counts)
		if err := h.jobQueue.Enqueue(ctx, job); err != nil {
			h.logger.Error("usage_ingest_enqueue_failed",
				zap.String("error", logpkg.SanitizeError(err)),
			)
			respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to queue usage report")
			return
		}
		respondJSON(w, http.StatusAccepted, map[string]any{
			"job_id":   job.ID.String(),
			"hashtags": len(counts),
		})
		return
	}

	updated := make([]models.HashtagStats, 0, len(counts))
	for hashtag, count := range counts {
		var stats *models.HashtagStats
		var err error
		for i := 0; i < count; i++ {
			stats, err = h.statsRepo.IncrementUsage(ctx, hashtag, now)
			if err != nil {
				h.logger.Error("usage_increment_failed",
					zap.String("error", logpkg.SanitizeError(err)),
				)
				respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to record usage")
				return
			}
		}
		updated = append(updated, *stats)
	}

	respondJSON(w, http.StatusOK, UsageResponse{Updated: updated})
}
