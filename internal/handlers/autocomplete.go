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
	"github.com/questfeed/hashtag-engine/internal/validation"
)

const (
	// DefaultAutocompleteLimit is the default number of suggestions
	DefaultAutocompleteLimit = 10
	// MaxAutocompleteLimit caps the number of suggestions per request
	MaxAutocompleteLimit = 50
	// autocompleteCandidateLimit caps the database prefilter before tier ranking
	autocompleteCandidateLimit = 200
)

// AutocompleteHandler handles prefix suggestion requests
type AutocompleteHandler struct {
	statsRepo database.HashtagStatsRepositoryInterface
	logger    *zap.Logger
}

// NewAutocompleteHandler creates a new autocomplete handler
func NewAutocompleteHandler(statsRepo database.HashtagStatsRepositoryInterface, logger *zap.Logger) *AutocompleteHandler {
	return &AutocompleteHandler{statsRepo: statsRepo, logger: logger}
}

// RegisterRoutes registers autocomplete routes on the given router
func (h *AutocompleteHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/autocomplete", h.Autocomplete).Methods("GET")
}

// Suggestion is one autocomplete hit.
type Suggestion struct {
	Hashtag    models.HashTag `json:"hashtag"`
	TotalCount int            `json:"total_count"`
	TrendScore float64        `json:"trend_score"`
}

// AutocompleteResponse is the suggestion list envelope.
type AutocompleteResponse struct {
	Prefix      string       `json:"prefix"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Autocomplete suggests hashtags for a typed prefix. The database substring
// prefilter over-fetches so the tier ranking (exact prefix, bare prefix,
// near-start) can order candidates the LIKE scan cannot distinguish.
func (h *AutocompleteHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	prefix := validation.SanitizeText(r.URL.Query().Get("prefix"))
	if prefix == "" || strings.TrimPrefix(prefix, "#") == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "prefix query parameter is required")
		return
	}
	limit := queryInt(r, "limit", DefaultAutocompleteLimit, MaxAutocompleteLimit)

	bare := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(prefix), "#"))
	candidates, err := h.statsRepo.ListByKeywords(r.Context(), time.Now().UTC(), []string{bare}, autocompleteCandidateLimit)
	if err != nil {
		h.logger.Error("autocomplete_fetch_failed",
			zap.String("error", logpkg.SanitizeError(err)),
		)
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to fetch suggestions")
		return
	}

	matched := engine.FilterCandidates(prefix, candidates, limit)
	suggestions := make([]Suggestion, len(matched))
	for i, stats := range matched {
		suggestions[i] = Suggestion{
			Hashtag:    stats.Hashtag,
			TotalCount: stats.TotalCount,
			TrendScore: stats.TrendScore,
		}
	}

	respondJSON(w, http.StatusOK, AutocompleteResponse{
		Prefix:      prefix,
		Suggestions: suggestions,
	})
}
