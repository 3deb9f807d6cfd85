package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/questfeed/hashtag-engine/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Register custom validators for enums
	// These should never fail in normal operation, but log if they do
	if err := Validate.RegisterValidation("sort_criterion", validateSortCriterion); err != nil {
		panic(fmt.Sprintf("failed to register sort_criterion validator: %v", err))
	}
	if err := Validate.RegisterValidation("category", validateCategory); err != nil {
		panic(fmt.Sprintf("failed to register category validator: %v", err))
	}
	if err := Validate.RegisterValidation("popularity_threshold", validatePopularityThreshold); err != nil {
		panic(fmt.Sprintf("failed to register popularity_threshold validator: %v", err))
	}
}

// validateSortCriterion validates that a string is a valid SortCriterion enum value
func validateSortCriterion(fl validator.FieldLevel) bool {
	_, err := models.ParseSortCriterion(fl.Field().String())
	return err == nil
}

// validateCategory validates that a string is a valid Category enum value
func validateCategory(fl validator.FieldLevel) bool {
	_, err := models.ParseCategory(fl.Field().String())
	return err == nil
}

// validatePopularityThreshold validates that a string is a valid PopularityThreshold enum value
func validatePopularityThreshold(fl validator.FieldLevel) bool {
	_, err := models.ParsePopularityThreshold(fl.Field().String())
	return err == nil
}

// ValidateSearchRequest applies struct-tag validation plus the cross-field
// rules a tag grammar cannot express: a non-blank query and an ordered date
// range. An invalid request never reaches the scoring engine.
func ValidateSearchRequest(r *models.SearchRequest) error {
	if strings.TrimSpace(r.Query) == "" {
		return fmt.Errorf("query must not be blank")
	}
	if err := Validate.Struct(r); err != nil {
		return fmt.Errorf("invalid search request: %w", err)
	}
	if r.DateFrom != nil && r.DateTo != nil && r.DateFrom.After(*r.DateTo) {
		return fmt.Errorf("date_from must not be after date_to")
	}
	return nil
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	// Trim whitespace
	text = strings.TrimSpace(text)

	// Remove control characters except newline and tab
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}
