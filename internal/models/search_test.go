package models

import (
	"testing"
	"time"
)

func TestSearchRequest_NormalizedQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{"bare query gains prefix", "카페", "#카페"},
		{"prefixed query unchanged", "#카페", "#카페"},
		{"whitespace trimmed", " 운동 ", "#운동"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := SearchRequest{Query: tt.query}
			if got := r.NormalizedQuery(); got != tt.expected {
				t.Errorf("NormalizedQuery() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestSearchRequest_Filters(t *testing.T) {
	t.Parallel()

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	category := CategoryFood

	r := SearchRequest{Query: "카페"}
	if r.HasDateFilter() || r.HasCategoryFilter() {
		t.Error("Expected no filters on bare request")
	}

	r.DateFrom = &from
	if r.HasDateFilter() {
		t.Error("Expected date filter to require both bounds")
	}

	r.DateTo = &to
	r.Category = &category
	if !r.HasDateFilter() || !r.HasCategoryFilter() {
		t.Error("Expected both filters present")
	}
}

func TestSearchRequest_SortDefaultsToRelevance(t *testing.T) {
	t.Parallel()

	r := SearchRequest{Query: "카페"}
	if got := r.Sort(); got != SortByRelevance {
		t.Errorf("Sort() = %q, expected relevance", got)
	}

	r.SortBy = SortByRecent
	if got := r.Sort(); got != SortByRecent {
		t.Errorf("Sort() = %q, expected recent", got)
	}
}

func TestParseSortCriterion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    SortCriterion
		wantErr bool
	}{
		{"empty defaults to relevance", "", SortByRelevance, false},
		{"relevance", "relevance", SortByRelevance, false},
		{"popularity upper case", "POPULARITY", SortByPopularity, false},
		{"usage count", "usage_count", SortByUsageCount, false},
		{"unknown", "best", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSortCriterion(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSortCriterion(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSortCriterion(%q) = %q, expected %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	if _, err := ParseCategory("food"); err != nil {
		t.Errorf("Expected food to parse, got %v", err)
	}
	if _, err := ParseCategory("FOOD"); err != nil {
		t.Errorf("Expected case-insensitive parse, got %v", err)
	}
	if _, err := ParseCategory("gastronomy"); err == nil {
		t.Error("Expected unknown category to be rejected")
	}
}

func TestParsePopularityThreshold(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"low", "moderate", "high"} {
		if _, err := ParsePopularityThreshold(valid); err != nil {
			t.Errorf("Expected %q to parse, got %v", valid, err)
		}
	}
	if _, err := ParsePopularityThreshold("extreme"); err == nil {
		t.Error("Expected unknown threshold to be rejected")
	}
}
