package engine

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/questfeed/hashtag-engine/internal/models"
)

// CategoryRule pairs an ordered keyword group with the category it maps to.
// A hashtag is classified by the FIRST rule with a substring match, so the
// position of a rule in the list is part of the contract.
type CategoryRule struct {
	Category models.Category `yaml:"category"`
	Keywords []string        `yaml:"keywords"`
}

// Classifier maps hashtag text to a category via an ordered keyword scan.
//
// The precedence (health before food before adventure before social before
// learning before creative before daily) is load-bearing: a tag containing
// keywords from two groups is classified by whichever rule comes first.
// The overlap between groups is a known quirk carried over for
// compatibility, not a deliberate ranking of the categories.
type Classifier struct {
	rules []CategoryRule
}

// NewClassifier returns a classifier with the built-in keyword rules.
func NewClassifier() *Classifier {
	return &Classifier{rules: defaultRules()}
}

// NewClassifierFromRules builds a classifier with caller-supplied rules,
// preserving their order. Keywords are lower-cased so matching stays
// case-insensitive regardless of how a rules file was written.
func NewClassifierFromRules(rules []CategoryRule) *Classifier {
	copied := make([]CategoryRule, len(rules))
	for i, rule := range rules {
		keywords := make([]string, len(rule.Keywords))
		for j, keyword := range rule.Keywords {
			keywords[j] = strings.ToLower(keyword)
		}
		copied[i] = CategoryRule{Category: rule.Category, Keywords: keywords}
	}
	return &Classifier{rules: copied}
}

// LoadClassifier reads rules from a YAML file. An empty path falls back to
// the built-in rules.
func LoadClassifier(path string) (*Classifier, error) {
	if path == "" {
		return NewClassifier(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keywords file: %w", err)
	}

	var file struct {
		Rules []CategoryRule `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse keywords file: %w", err)
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("keywords file %s contains no rules", path)
	}

	for _, rule := range file.Rules {
		if _, err := models.ParseCategory(string(rule.Category)); err != nil {
			return nil, fmt.Errorf("keywords file %s: %w", path, err)
		}
	}

	return NewClassifierFromRules(file.Rules), nil
}

// Categorize returns the category of the first matching rule, or OTHER
// when no keyword matches. Pure: the same input always yields the same
// category.
func (c *Classifier) Categorize(hashtag models.HashTag) models.Category {
	text := hashtag.Lower()
	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, keyword) {
				return rule.Category
			}
		}
	}
	return models.CategoryOther
}

// Rules returns a copy of the ordered rule list, mostly for admin tooling
// and tests that assert precedence.
func (c *Classifier) Rules() []CategoryRule {
	copied := make([]CategoryRule, len(c.rules))
	copy(copied, c.rules)
	return copied
}

// Keywords returns the keyword group for a category, or nil for OTHER and
// unknown categories.
func (c *Classifier) Keywords(category models.Category) []string {
	for _, rule := range c.rules {
		if rule.Category == category {
			return append([]string(nil), rule.Keywords...)
		}
	}
	return nil
}

// defaultRules carries the localized keyword groups in precedence order.
func defaultRules() []CategoryRule {
	return []CategoryRule{
		{
			Category: models.CategoryHealth,
			Keywords: []string{
				"운동", "헬스", "건강", "요가", "산책", "걷기", "계단", "달리기", "러닝", "다이어트", "스트레칭",
				"exercise", "fitness", "health", "yoga", "workout", "walking", "stairs",
			},
		},
		{
			Category: models.CategoryFood,
			Keywords: []string{
				"맛집", "음식", "카페", "레스토랑", "커피", "요리", "베이킹", "디저트", "브런치", "식당",
				"food", "cafe", "restaurant", "coffee", "cooking",
			},
		},
		{
			Category: models.CategoryAdventure,
			Keywords: []string{
				"여행", "등산", "바다", "산", "공원", "새로운", "탐험", "캠핑", "드라이브",
				"travel", "hiking", "adventure", "camping", "park",
			},
		},
		{
			Category: models.CategorySocial,
			Keywords: []string{
				"친구", "사람", "모임", "파티", "만남", "회식", "데이트",
				"friend", "people", "meeting", "party",
			},
		},
		{
			Category: models.CategoryLearning,
			Keywords: []string{
				"공부", "책", "독서", "강의", "언어", "스터디", "자격증", "영어",
				"study", "book", "lecture", "language", "learning",
			},
		},
		{
			Category: models.CategoryCreative,
			Keywords: []string{
				"그림", "예술", "음악", "사진", "글쓰기", "드로잉", "창작", "디자인",
				"drawing", "art", "music", "photo", "writing",
			},
		},
		{
			Category: models.CategoryDaily,
			Keywords: []string{
				"일상", "평일", "주말", "아침", "저녁", "하루", "오늘", "루틴",
				"daily", "weekday", "weekend", "morning", "evening", "routine",
			},
		},
	}
}
