package engine

import (
	"testing"
	"time"

	"github.com/questfeed/hashtag-engine/internal/models"
)

func TestAggregateByCategory(t *testing.T) {
	t.Parallel()

	classifier := NewClassifier()
	statsList := []models.HashtagStats{
		{Hashtag: "#카페", TrendScore: 30.0, TotalCount: 100},
		{Hashtag: "#맛집", TrendScore: 10.0, TotalCount: 50},
		{Hashtag: "#운동", TrendScore: 20.0, TotalCount: 40},
	}

	summaries := AggregateByCategory(classifier, statsList)

	food, ok := summaries[models.CategoryFood]
	if !ok {
		t.Fatal("Expected a food category summary")
	}
	if food.TotalHashtags != 2 {
		t.Errorf("Expected 2 food hashtags, got %d", food.TotalHashtags)
	}
	if food.TotalUsage != 150 {
		t.Errorf("Expected food usage 150, got %d", food.TotalUsage)
	}
	if food.AverageTrendScore != 20.0 {
		t.Errorf("Expected food average trend 20.0, got %f", food.AverageTrendScore)
	}
	if len(food.TopByTrendScore) != 2 || food.TopByTrendScore[0].Hashtag != "#카페" {
		t.Errorf("Expected top food entry #카페, got %v", food.TopByTrendScore)
	}

	health, ok := summaries[models.CategoryHealth]
	if !ok || health.TotalHashtags != 1 {
		t.Errorf("Expected 1 health hashtag, got %+v", health)
	}
}

func TestAggregateByCategory_TopFiveCap(t *testing.T) {
	t.Parallel()

	classifier := NewClassifier()
	var statsList []models.HashtagStats
	tags := []models.HashTag{"#카페1", "#카페2", "#카페3", "#카페4", "#카페5", "#카페6", "#카페7"}
	for i, tag := range tags {
		statsList = append(statsList, models.HashtagStats{Hashtag: tag, TrendScore: float64(i)})
	}

	summaries := AggregateByCategory(classifier, statsList)
	food := summaries[models.CategoryFood]
	if len(food.TopByTrendScore) != 5 {
		t.Fatalf("Expected top list capped at 5, got %d", len(food.TopByTrendScore))
	}
	if food.TopByTrendScore[0].Hashtag != "#카페7" {
		t.Errorf("Expected highest trend first, got %q", food.TopByTrendScore[0].Hashtag)
	}
}

func TestBatchUpdate_MixedExistingAndNew(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	date := models.DayOf(now)

	existing := map[models.HashTag]models.HashtagStats{
		"#카페": models.NewHashtagStats("#카페", date, now.Add(-2*time.Hour)),
	}
	usage := map[models.HashTag]int{
		"#카페": 4,
		"#운동": 7,
		"#공부": 0, // ignored
	}

	updated := BatchUpdate(usage, existing, date, now)
	if len(updated) != 2 {
		t.Fatalf("Expected 2 updated rows, got %d", len(updated))
	}

	byTag := make(map[models.HashTag]models.HashtagStats)
	for _, stats := range updated {
		byTag[stats.Hashtag] = stats
	}

	cafe := byTag["#카페"]
	if cafe.DailyCount != 5 || cafe.TotalCount != 5 {
		t.Errorf("Expected existing row folded to 5, got daily=%d total=%d", cafe.DailyCount, cafe.TotalCount)
	}
	if !cafe.LastUsedAt.Equal(now) {
		t.Errorf("Expected last used refreshed to now, got %v", cafe.LastUsedAt)
	}

	workout := byTag["#운동"]
	if workout.DailyCount != 7 || workout.WeeklyCount != 7 || workout.MonthlyCount != 7 || workout.TotalCount != 7 {
		t.Errorf("Expected new row seeded with 7 across counters, got %d/%d/%d/%d",
			workout.DailyCount, workout.WeeklyCount, workout.MonthlyCount, workout.TotalCount)
	}
	if workout.TrendScore <= 0 {
		t.Errorf("Expected recomputed trend score, got %f", workout.TrendScore)
	}
}

func TestIdentifyPopular_Thresholds(t *testing.T) {
	t.Parallel()

	statsList := []models.HashtagStats{
		{Hashtag: "#low", DailyCount: 3, TrendScore: 1.0},
		{Hashtag: "#mid", DailyCount: 12, TrendScore: 12.0},
		{Hashtag: "#high", DailyCount: 30, TrendScore: 40.0},
		{Hashtag: "#cold", DailyCount: 1, WeeklyCount: 2, TrendScore: 0.5},
	}

	tests := []struct {
		name      string
		threshold models.PopularityThreshold
		expected  int
	}{
		{"low keeps all but cold", models.ThresholdLow, 3},
		{"moderate keeps mid and high", models.ThresholdModerate, 2},
		{"high keeps only high", models.ThresholdHigh, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			popular := IdentifyPopular(statsList, tt.threshold)
			if len(popular) != tt.expected {
				t.Fatalf("Expected %d popular hashtags, got %d", tt.expected, len(popular))
			}
			for i := 1; i < len(popular); i++ {
				if popular[i].TrendScore > popular[i-1].TrendScore {
					t.Error("Expected descending trend-score order")
				}
			}
		})
	}
}

func TestIdentifyTrending(t *testing.T) {
	t.Parallel()

	statsList := []models.HashtagStats{
		{Hashtag: "#새태그", TrendScore: 25.0, DailyCount: 8, WeeklyCount: 30},
		{Hashtag: "#급성장", TrendScore: 40.0, DailyCount: 10, WeeklyCount: 40},
		{Hashtag: "#정체", TrendScore: 30.0, DailyCount: 9, WeeklyCount: 22},
		{Hashtag: "#조용", TrendScore: 5.0, DailyCount: 1, WeeklyCount: 3},
	}
	previousWeek := map[models.HashTag]models.HashtagStats{
		"#급성장": {Hashtag: "#급성장", WeeklyCount: 20}, // 100% growth
		"#정체":  {Hashtag: "#정체", WeeklyCount: 20},  // 10% growth
	}

	trending := IdentifyTrending(statsList, previousWeek)

	byTag := make(map[models.HashTag]bool)
	for _, stats := range trending {
		byTag[stats.Hashtag] = true
	}

	if !byTag["#새태그"] {
		t.Error("Expected hashtag without prior week data to be trending")
	}
	if !byTag["#급성장"] {
		t.Error("Expected hashtag with growth above 50% to be trending")
	}
	if byTag["#정체"] {
		t.Error("Expected slow-growth hashtag to be excluded")
	}
	if byTag["#조용"] {
		t.Error("Expected non-trending hashtag to be excluded")
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	if got := Summarize(nil); got.TotalHashtags != 0 || got.AverageTrendScore != 0 {
		t.Errorf("Expected zero summary for empty input, got %+v", got)
	}

	statsList := []models.HashtagStats{
		{DailyCount: 5, TrendScore: 10.0},
		{DailyCount: 15, TrendScore: 30.0},
	}
	summary := Summarize(statsList)
	if summary.TotalHashtags != 2 || summary.TotalDailyUsage != 20 || summary.AverageTrendScore != 20.0 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
}
