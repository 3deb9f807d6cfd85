package models

import (
	"strings"
	"time"
)

// SearchRequest is the validated input to a hashtag search. Construct via
// decode-then-validate at the API boundary; the engine only ever sees
// requests that passed validation.
type SearchRequest struct {
	Query             string         `json:"query" validate:"required"`
	SortBy            SortCriterion  `json:"sort_by,omitempty" validate:"omitempty,sort_criterion"`
	Category          *Category      `json:"category,omitempty" validate:"omitempty,category"`
	DateFrom          *time.Time     `json:"date_from,omitempty"`
	DateTo            *time.Time     `json:"date_to,omitempty"`
	Limit             int            `json:"limit" validate:"min=1,max=100"`
	Offset            int            `json:"offset" validate:"min=0"`
	IncludeStoryCount bool           `json:"include_story_count,omitempty"`
	UserID            string         `json:"user_id,omitempty"`
}

// NormalizedQuery returns the query with a leading '#' prefixed if absent.
func (r *SearchRequest) NormalizedQuery() string {
	query := strings.TrimSpace(r.Query)
	if !strings.HasPrefix(query, "#") {
		query = "#" + query
	}
	return query
}

// HasDateFilter reports whether both date bounds are present.
func (r *SearchRequest) HasDateFilter() bool {
	return r.DateFrom != nil && r.DateTo != nil
}

// HasCategoryFilter reports whether a category filter is present.
func (r *SearchRequest) HasCategoryFilter() bool {
	return r.Category != nil
}

// Sort returns the requested sort criterion, defaulting to relevance.
func (r *SearchRequest) Sort() SortCriterion {
	if r.SortBy == "" {
		return SortByRelevance
	}
	return r.SortBy
}
