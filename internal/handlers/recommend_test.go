package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/questfeed/hashtag-engine/internal/engine"
	"github.com/questfeed/hashtag-engine/internal/models"
)

func TestRecommendHandler_PrefersRequestedCategories(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	repo := &mockStatsRepo{
		t: t,
		listByDateFn: func(ctx context.Context, date time.Time, limit int) ([]models.HashtagStats, error) {
			// Identical counters so only the category boost separates them.
			return []models.HashtagStats{
				statsRow("#study", 10, 40, 100, now.Add(-time.Hour)),
				statsRow("#coffee", 10, 40, 100, now.Add(-time.Hour)),
			}, nil
		},
	}
	h := NewRecommendHandler(repo, engine.NewClassifier(), zap.NewNop())

	req := httptest.NewRequest("GET", "/recommendations?categories=food", nil)
	rec := serve(h, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp RecommendResponse
	decodeData(t, rec, &resp)

	if len(resp.Categories) != 1 || resp.Categories[0] != models.CategoryFood {
		t.Errorf("categories = %v, want [food]", resp.Categories)
	}
	if len(resp.Recommendations) != 2 {
		t.Fatalf("len(recommendations) = %d, want 2", len(resp.Recommendations))
	}
	if resp.Recommendations[0].Hashtag != "#coffee" {
		t.Errorf("top recommendation = %s, want #coffee", resp.Recommendations[0].Hashtag)
	}
	if resp.Recommendations[0].Category != models.CategoryFood {
		t.Errorf("top recommendation category = %s, want food", resp.Recommendations[0].Category)
	}
}

func TestRecommendHandler_NoCategoriesStillRanks(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	repo := &mockStatsRepo{
		t: t,
		listByDateFn: func(ctx context.Context, date time.Time, limit int) ([]models.HashtagStats, error) {
			return []models.HashtagStats{
				statsRow("#quiet", 2, 5, 10, now.Add(-30*time.Hour)),
				statsRow("#loud", 40, 150, 400, now.Add(-time.Hour)),
			}, nil
		},
	}
	h := NewRecommendHandler(repo, engine.NewClassifier(), zap.NewNop())

	req := httptest.NewRequest("GET", "/recommendations", nil)
	rec := serve(h, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp RecommendResponse
	decodeData(t, rec, &resp)

	if len(resp.Categories) != 0 {
		t.Errorf("categories = %v, want empty", resp.Categories)
	}
	if resp.Recommendations[0].Hashtag != "#loud" {
		t.Errorf("top recommendation = %s, want #loud (popularity ranking)", resp.Recommendations[0].Hashtag)
	}
}

func TestRecommendHandler_LimitTruncates(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	repo := &mockStatsRepo{
		t: t,
		listByDateFn: func(ctx context.Context, date time.Time, limit int) ([]models.HashtagStats, error) {
			return []models.HashtagStats{
				statsRow("#one", 10, 40, 100, now),
				statsRow("#two", 8, 30, 80, now),
				statsRow("#three", 6, 20, 60, now),
			}, nil
		},
	}
	h := NewRecommendHandler(repo, engine.NewClassifier(), zap.NewNop())

	req := httptest.NewRequest("GET", "/recommendations?limit=2", nil)
	rec := serve(h, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp RecommendResponse
	decodeData(t, rec, &resp)
	if len(resp.Recommendations) != 2 {
		t.Errorf("len(recommendations) = %d, want 2", len(resp.Recommendations))
	}
}

func TestRecommendHandler_InvalidCategory(t *testing.T) {
	t.Parallel()

	h := NewRecommendHandler(&mockStatsRepo{t: t}, engine.NewClassifier(), zap.NewNop())

	req := httptest.NewRequest("GET", "/recommendations?categories=food,gibberish", nil)
	rec := serve(h, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Success {
		t.Error("expected success=false")
	}
}
