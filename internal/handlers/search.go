package handlers

import (
	"encoding/json"
	"fmt"
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
	// DefaultSearchLimit is the default number of search results
	DefaultSearchLimit = 20
	// searchCandidateLimit caps how many rows one day contributes before ranking
	searchCandidateLimit = 200
	// maxSearchRangeDays caps a date-filtered search window
	maxSearchRangeDays = 31
	// minSearchSimilarity is the relevance floor for candidates that do not
	// contain the query text
	minSearchSimilarity = 0.3
)

// SearchHandler handles hashtag search requests
type SearchHandler struct {
	statsRepo  database.HashtagStatsRepositoryInterface
	classifier *engine.Classifier
	logger     *zap.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(statsRepo database.HashtagStatsRepositoryInterface, classifier *engine.Classifier, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{statsRepo: statsRepo, classifier: classifier, logger: logger}
}

// RegisterRoutes registers search routes on the given router
func (h *SearchHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/search", h.Search).Methods("POST")
}

// SearchResult is one ranked search hit with its classified category.
type SearchResult struct {
	models.HashtagStats
	Category models.Category `json:"category"`
}

// SearchResponse is the paginated search result envelope.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
}

// Search ranks hashtags against a query. Candidates are prefiltered in the
// database by substring, then scored and ordered in memory by the requested
// criterion. An empty result set is a valid response, not an error.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if maxBytesErr, ok := err.(*http.MaxBytesError); ok {
			respondJSONError(w, http.StatusRequestEntityTooLarge, "Request Entity Too Large", fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytesErr.Limit))
			return
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	req.Query = validation.SanitizeText(req.Query)
	if req.Limit == 0 {
		req.Limit = DefaultSearchLimit
	}
	if err := validation.ValidateSearchRequest(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	days, err := searchDays(&req)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	ctx := r.Context()
	now := time.Now().UTC()
	query := req.NormalizedQuery()
	bare := strings.ToLower(strings.TrimPrefix(query, "#"))

	keywords := []string{bare}
	if req.HasCategoryFilter() {
		keywords = append(keywords, h.classifier.Keywords(*req.Category)...)
	}

	// Later days overwrite earlier ones, so each hashtag ranks by its most
	// recent row in the window.
	byHashtag := make(map[models.HashTag]models.HashtagStats)
	for _, day := range days {
		rows, err := h.statsRepo.ListByKeywords(ctx, day, keywords, searchCandidateLimit)
		if err != nil {
			h.logger.Error("search_candidate_fetch_failed",
				zap.String("error", logpkg.SanitizeError(err)),
			)
			respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to search hashtags")
			return
		}
		for _, stats := range rows {
			byHashtag[stats.Hashtag] = stats
		}
	}

	candidates := make([]models.HashtagStats, 0, len(byHashtag))
	for _, stats := range byHashtag {
		if req.HasCategoryFilter() && h.classifier.Categorize(stats.Hashtag) != *req.Category {
			continue
		}
		if !matchesQuery(stats.Hashtag, query, bare) {
			continue
		}
		candidates = append(candidates, stats)
	}

	sorted := engine.SortResults(candidates, query, req.Sort(), now)
	total := len(sorted)
	page := paginate(sorted, req.Offset, req.Limit)

	results := make([]SearchResult, len(page))
	for i, stats := range page {
		results[i] = SearchResult{
			HashtagStats: stats,
			Category:     h.classifier.Categorize(stats.Hashtag),
		}
	}

	respondJSON(w, http.StatusOK, SearchResponse{
		Query:   query,
		Results: results,
		Total:   total,
		Limit:   req.Limit,
		Offset:  req.Offset,
	})
}

// matchesQuery keeps candidates containing the query text, plus fuzzy hits
// above the similarity floor so typos still find their hashtag.
func matchesQuery(hashtag models.HashTag, query, bare string) bool {
	if bare != "" && strings.Contains(hashtag.Lower(), bare) {
		return true
	}
	return engine.Similarity(query, hashtag.String()) >= minSearchSimilarity
}

// searchDays expands the request's date filter into the list of days to
// fetch candidates from, newest last. No filter means today only.
func searchDays(req *models.SearchRequest) ([]time.Time, error) {
	if !req.HasDateFilter() {
		return []time.Time{time.Now().UTC()}, nil
	}

	from := models.DayOf(*req.DateFrom)
	to := models.DayOf(*req.DateTo)
	// Both endpoints are fetched, so a span of N hours covers N/24+1 days.
	if to.Sub(from) >= maxSearchRangeDays*24*time.Hour {
		return nil, fmt.Errorf("date range must not exceed %d days", maxSearchRangeDays)
	}

	var days []time.Time
	for day := from; !day.After(to); day = day.Add(24 * time.Hour) {
		days = append(days, day)
	}
	return days, nil
}

func paginate(stats []models.HashtagStats, offset, limit int) []models.HashtagStats {
	if offset >= len(stats) {
		return nil
	}
	end := offset + limit
	if end > len(stats) {
		end = len(stats)
	}
	return stats[offset:end]
}
