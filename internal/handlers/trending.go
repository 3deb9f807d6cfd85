package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/questfeed/hashtag-engine/internal/cache"
	"github.com/questfeed/hashtag-engine/internal/database"
	"github.com/questfeed/hashtag-engine/internal/engine"
	logpkg "github.com/questfeed/hashtag-engine/internal/logger"
	"github.com/questfeed/hashtag-engine/internal/models"
)

const (
	// DefaultTrendingLimit is the default number of trending results
	DefaultTrendingLimit = 20
	// trendingCacheSize is how many entries the per-day cache holds; requests
	// are capped to it so every limit can be served from one cached list
	trendingCacheSize = 50
	// popularCandidateLimit caps the candidate fetch for threshold filtering
	popularCandidateLimit = 500
	// lifecycleHistoryDays is how far back the lifecycle endpoint looks
	lifecycleHistoryDays = 90
)

// TrendingHandler serves the trending, popular, and lifecycle read surfaces
type TrendingHandler struct {
	statsRepo     database.HashtagStatsRepositoryInterface
	trendingCache cache.TrendingCacheInterface
	cacheTTL      time.Duration
	logger        *zap.Logger
}

// NewTrendingHandler creates a new trending handler
func NewTrendingHandler(statsRepo database.HashtagStatsRepositoryInterface, trendingCache cache.TrendingCacheInterface, cacheTTL time.Duration, logger *zap.Logger) *TrendingHandler {
	return &TrendingHandler{
		statsRepo:     statsRepo,
		trendingCache: trendingCache,
		cacheTTL:      cacheTTL,
		logger:        logger,
	}
}

// RegisterRoutes registers trending routes on the given router
func (h *TrendingHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/trending", h.Trending).Methods("GET")
	r.HandleFunc("/popular", h.Popular).Methods("GET")
	r.HandleFunc("/lifecycle/{hashtag}", h.Lifecycle).Methods("GET")
}

// TrendingResponse is the trending list envelope.
type TrendingResponse struct {
	Date     string                `json:"date"`
	Hashtags []models.HashtagStats `json:"hashtags"`
}

// Trending returns the day's trending hashtags, hottest first, read through
// the Redis cache. Cache failures fall back to the database.
func (h *TrendingHandler) Trending(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r, "date")
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "date must be formatted YYYY-MM-DD")
		return
	}
	limit := queryInt(r, "limit", DefaultTrendingLimit, trendingCacheSize)

	ctx := r.Context()
	trending, hit, err := h.trendingCache.Get(ctx, date)
	if err != nil {
		h.logger.Warn("trending_cache_read_failed",
			zap.String("error", logpkg.SanitizeError(err)),
		)
	}
	if !hit {
		trending, err = h.statsRepo.ListTrending(ctx, date, trendingCacheSize)
		if err != nil {
			h.logger.Error("trending_fetch_failed",
				zap.String("error", logpkg.SanitizeError(err)),
			)
			respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to fetch trending hashtags")
			return
		}
		if err := h.trendingCache.Set(ctx, date, trending, h.cacheTTL); err != nil {
			h.logger.Warn("trending_cache_write_failed",
				zap.String("error", logpkg.SanitizeError(err)),
			)
		}
	}

	if len(trending) > limit {
		trending = trending[:limit]
	}
	respondJSON(w, http.StatusOK, TrendingResponse{
		Date:     models.DayOf(date).Format("2006-01-02"),
		Hashtags: trending,
	})
}

// PopularResponse is the popular list envelope.
type PopularResponse struct {
	Date      string                     `json:"date"`
	Threshold models.PopularityThreshold `json:"threshold"`
	Hashtags  []models.HashtagStats      `json:"hashtags"`
}

// Popular returns the day's popular hashtags filtered by threshold tier.
func (h *TrendingHandler) Popular(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r, "date")
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "date must be formatted YYYY-MM-DD")
		return
	}
	limit := queryInt(r, "limit", DefaultTrendingLimit, 100)

	threshold := models.ThresholdModerate
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		threshold, err = models.ParsePopularityThreshold(raw)
		if err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
	}

	candidates, err := h.statsRepo.ListByDateOrderByTrendScore(r.Context(), date, popularCandidateLimit)
	if err != nil {
		h.logger.Error("popular_fetch_failed",
			zap.String("error", logpkg.SanitizeError(err)),
		)
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to fetch popular hashtags")
		return
	}

	popular := engine.IdentifyPopular(candidates, threshold)
	if len(popular) > limit {
		popular = popular[:limit]
	}
	respondJSON(w, http.StatusOK, PopularResponse{
		Date:      models.DayOf(date).Format("2006-01-02"),
		Threshold: threshold,
		Hashtags:  popular,
	})
}

// LifecycleResponse describes a hashtag's maturity stage.
type LifecycleResponse struct {
	Hashtag            models.HashTag        `json:"hashtag"`
	Stage              models.LifecycleStage `json:"stage"`
	DaysSinceFirstUsed int                   `json:"days_since_first_used"`
	Latest             models.HashtagStats   `json:"latest"`
}

// Lifecycle classifies a hashtag's maturity stage from its tracked history.
func (h *TrendingHandler) Lifecycle(w http.ResponseWriter, r *http.Request) {
	hashtag := models.NormalizeHashtag(mux.Vars(r)["hashtag"])
	if hashtag.Bare() == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "hashtag is required")
		return
	}

	now := time.Now().UTC()
	history, err := h.statsRepo.ListByHashtagBetween(r.Context(), hashtag, now.AddDate(0, 0, -lifecycleHistoryDays), now)
	if err != nil {
		h.logger.Error("lifecycle_fetch_failed",
			zap.String("error", logpkg.SanitizeError(err)),
		)
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to fetch hashtag history")
		return
	}
	if len(history) == 0 {
		respondJSONError(w, http.StatusNotFound, "Not Found", "No usage recorded for this hashtag")
		return
	}

	// History is oldest first
	first := history[0]
	latest := history[len(history)-1]
	daysSinceFirstUsed := int(models.DayOf(now).Sub(first.Date).Hours() / 24)
	stage := engine.AnalyzeLifecycle(latest, daysSinceFirstUsed)

	respondJSON(w, http.StatusOK, LifecycleResponse{
		Hashtag:            hashtag,
		Stage:              stage,
		DaysSinceFirstUsed: daysSinceFirstUsed,
		Latest:             latest,
	})
}
