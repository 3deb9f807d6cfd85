package validation

import (
	"testing"
	"time"

	"github.com/questfeed/hashtag-engine/internal/models"
)

func validRequest() models.SearchRequest {
	return models.SearchRequest{
		Query: "카페",
		Limit: 20,
	}
}

func TestValidateSearchRequest_Valid(t *testing.T) {
	t.Parallel()

	r := validRequest()
	if err := ValidateSearchRequest(&r); err != nil {
		t.Errorf("Expected valid request, got %v", err)
	}
}

func TestValidateSearchRequest_Invalid(t *testing.T) {
	t.Parallel()

	from := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	badCategory := models.Category("gastronomy")

	tests := []struct {
		name   string
		mutate func(*models.SearchRequest)
	}{
		{"empty query", func(r *models.SearchRequest) { r.Query = "" }},
		{"blank query", func(r *models.SearchRequest) { r.Query = "   " }},
		{"limit zero", func(r *models.SearchRequest) { r.Limit = 0 }},
		{"limit too large", func(r *models.SearchRequest) { r.Limit = 101 }},
		{"negative offset", func(r *models.SearchRequest) { r.Offset = -1 }},
		{"reversed date range", func(r *models.SearchRequest) { r.DateFrom = &from; r.DateTo = &to }},
		{"bad sort", func(r *models.SearchRequest) { r.SortBy = models.SortCriterion("best") }},
		{"bad category", func(r *models.SearchRequest) { r.Category = &badCategory }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := validRequest()
			tt.mutate(&r)
			if err := ValidateSearchRequest(&r); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestValidateSearchRequest_SingleDateBoundAllowed(t *testing.T) {
	t.Parallel()

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	r := validRequest()
	r.DateFrom = &from
	if err := ValidateSearchRequest(&r); err != nil {
		t.Errorf("Expected single date bound to be allowed, got %v", err)
	}
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trims whitespace", "  카페  ", "카페"},
		{"strips control characters", "caf\x00e\x07", "cafe"},
		{"keeps newline and tab", "a\n\tb", "a\n\tb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeText(tt.input); got != tt.expected {
				t.Errorf("SanitizeText(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}
