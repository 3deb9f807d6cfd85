package models

import (
	"fmt"
	"strings"
)

// Category classifies a hashtag into one of eight content buckets.
type Category string

const (
	CategoryHealth    Category = "health"
	CategoryFood      Category = "food"
	CategoryAdventure Category = "adventure"
	CategorySocial    Category = "social"
	CategoryLearning  Category = "learning"
	CategoryCreative  Category = "creative"
	CategoryDaily     Category = "daily"
	CategoryOther     Category = "other"
)

// Categories lists all categories in classifier precedence order, OTHER last.
var Categories = []Category{
	CategoryHealth,
	CategoryFood,
	CategoryAdventure,
	CategorySocial,
	CategoryLearning,
	CategoryCreative,
	CategoryDaily,
	CategoryOther,
}

// ParseCategory converts an upstream string into a Category. Malformed
// names are rejected here so scoring code only ever sees valid values.
func ParseCategory(value string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(value)))
	switch c {
	case CategoryHealth, CategoryFood, CategoryAdventure, CategorySocial,
		CategoryLearning, CategoryCreative, CategoryDaily, CategoryOther:
		return c, nil
	default:
		return "", fmt.Errorf("invalid category: %s", value)
	}
}
