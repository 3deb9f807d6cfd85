package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/questfeed/hashtag-engine/internal/database"
	"github.com/questfeed/hashtag-engine/internal/engine"
	logpkg "github.com/questfeed/hashtag-engine/internal/logger"
	"github.com/questfeed/hashtag-engine/internal/models"
	"github.com/questfeed/hashtag-engine/internal/request"
)

const (
	// DefaultRecommendLimit is the default number of recommendations
	DefaultRecommendLimit = 10
	// MaxRecommendLimit caps recommendations per request
	MaxRecommendLimit = 50
	// recommendCandidateLimit caps the candidate fetch before ranking
	recommendCandidateLimit = 200
)

// RecommendHandler serves personalized hashtag recommendations
type RecommendHandler struct {
	statsRepo  database.HashtagStatsRepositoryInterface
	classifier *engine.Classifier
	logger     *zap.Logger
}

// NewRecommendHandler creates a new recommendation handler
func NewRecommendHandler(statsRepo database.HashtagStatsRepositoryInterface, classifier *engine.Classifier, logger *zap.Logger) *RecommendHandler {
	return &RecommendHandler{statsRepo: statsRepo, classifier: classifier, logger: logger}
}

// RegisterRoutes registers recommendation routes on the given router
func (h *RecommendHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/recommendations", h.Recommend).Methods("GET")
}

// Recommendation is one ranked recommendation with its category.
type Recommendation struct {
	models.HashtagStats
	Category models.Category `json:"category"`
}

// RecommendResponse is the recommendation list envelope.
type RecommendResponse struct {
	Categories      []models.Category `json:"categories"`
	Recommendations []Recommendation  `json:"recommendations"`
}

// Recommend ranks today's hashtags for the caller's preferred categories.
// With no categories every candidate scores the neutral category weight, so
// the ranking degrades to popularity and recency.
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	preferred, err := parseCategories(r.URL.Query().Get("categories"))
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	limit := queryInt(r, "limit", DefaultRecommendLimit, MaxRecommendLimit)

	now := time.Now().UTC()
	candidates, err := h.statsRepo.ListByDateOrderByTrendScore(r.Context(), now, recommendCandidateLimit)
	if err != nil {
		h.logger.Error("recommendation_fetch_failed",
			zap.String("error", logpkg.SanitizeError(err)),
		)
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to fetch recommendations")
		return
	}

	if userID := request.UserIDFromContext(r); userID != "" {
		h.logger.Debug("personalized_recommendation",
			zap.String("user_id", logpkg.SanitizeUserID(userID)),
			zap.Int("categories", len(preferred)),
		)
	}

	ranked := engine.RankRecommendations(h.classifier, candidates, preferred, now)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	recommendations := make([]Recommendation, len(ranked))
	for i, stats := range ranked {
		recommendations[i] = Recommendation{
			HashtagStats: stats,
			Category:     h.classifier.Categorize(stats.Hashtag),
		}
	}

	respondJSON(w, http.StatusOK, RecommendResponse{
		Categories:      preferred,
		Recommendations: recommendations,
	})
}

func parseCategories(raw string) ([]models.Category, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var categories []models.Category
	for _, part := range strings.Split(raw, ",") {
		category, err := models.ParseCategory(part)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}
