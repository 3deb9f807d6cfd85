package models

import (
	"fmt"
	"strings"
)

// SortCriterion selects the ordering applied to search results.
type SortCriterion string

const (
	SortByRelevance    SortCriterion = "relevance"
	SortByPopularity   SortCriterion = "popularity"
	SortByRecent       SortCriterion = "recent"
	SortByAlphabetical SortCriterion = "alphabetical"
	SortByUsageCount   SortCriterion = "usage_count"
)

// ParseSortCriterion converts an upstream string into a SortCriterion.
// An empty value defaults to relevance ordering.
func ParseSortCriterion(value string) (SortCriterion, error) {
	if value == "" {
		return SortByRelevance, nil
	}
	c := SortCriterion(strings.ToLower(strings.TrimSpace(value)))
	switch c {
	case SortByRelevance, SortByPopularity, SortByRecent, SortByAlphabetical, SortByUsageCount:
		return c, nil
	default:
		return "", fmt.Errorf("invalid sort criterion: %s", value)
	}
}

// PopularityThreshold names a filter tier for selecting popular hashtags.
type PopularityThreshold string

const (
	ThresholdLow      PopularityThreshold = "low"
	ThresholdModerate PopularityThreshold = "moderate"
	ThresholdHigh     PopularityThreshold = "high"
)

// ParsePopularityThreshold converts an upstream string into a threshold.
func ParsePopularityThreshold(value string) (PopularityThreshold, error) {
	t := PopularityThreshold(strings.ToLower(strings.TrimSpace(value)))
	switch t {
	case ThresholdLow, ThresholdModerate, ThresholdHigh:
		return t, nil
	default:
		return "", fmt.Errorf("invalid popularity threshold: %s", value)
	}
}
