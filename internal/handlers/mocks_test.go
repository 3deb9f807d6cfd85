package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/questfeed/hashtag-engine/internal/cache"
	"github.com/questfeed/hashtag-engine/internal/database"
	"github.com/questfeed/hashtag-engine/internal/models"
	"github.com/questfeed/hashtag-engine/internal/queue"
)

// mockStatsRepo implements the stats repository with configurable functions.
// Methods a test does not configure fail the test when called.
type mockStatsRepo struct {
	t *testing.T

	getByHashtagAndDateFn func(ctx context.Context, hashtag models.HashTag, date time.Time) (*models.HashtagStats, error)
	listByDateFn          func(ctx context.Context, date time.Time, limit int) ([]models.HashtagStats, error)
	listTrendingFn        func(ctx context.Context, date time.Time, limit int) ([]models.HashtagStats, error)
	listPopularFn         func(ctx context.Context, date time.Time, limit int) ([]models.HashtagStats, error)
	listByPrefixFn        func(ctx context.Context, prefix string, date time.Time, limit int) ([]models.HashtagStats, error)
	listByKeywordsFn      func(ctx context.Context, date time.Time, keywords []string, limit int) ([]models.HashtagStats, error)
	listBetweenFn         func(ctx context.Context, hashtag models.HashTag, start, end time.Time) ([]models.HashtagStats, error)
	incrementUsageFn      func(ctx context.Context, hashtag models.HashTag, date time.Time) (*models.HashtagStats, error)
	addUsageFn            func(ctx context.Context, hashtag models.HashTag, count int, date time.Time) (*models.HashtagStats, error)
	getSummaryFn          func(ctx context.Context, date time.Time) (*database.StatsSummary, error)
}

var _ database.HashtagStatsRepositoryInterface = (*mockStatsRepo)(nil)

func (m *mockStatsRepo) GetByHashtagAndDate(ctx context.Context, hashtag models.HashTag, date time.Time) (*models.HashtagStats, error) {
	if m.getByHashtagAndDateFn == nil {
		m.t.Fatal("unexpected GetByHashtagAndDate call")
	}
	return m.getByHashtagAndDateFn(ctx, hashtag, date)
}

func (m *mockStatsRepo) ListByDateOrderByTrendScore(ctx context.Context, date time.Time, limit int) ([]models.HashtagStats, error) {
	if m.listByDateFn == nil {
		m.t.Fatal("unexpected ListByDateOrderByTrendScore call")
	}
	return m.listByDateFn(ctx, date, limit)
}

func (m *mockStatsRepo) ListTrending(ctx context.Context, date time.Time, limit int) ([]models.HashtagStats, error) {
	if m.listTrendingFn == nil {
		m.t.Fatal("unexpected ListTrending call")
	}
	return m.listTrendingFn(ctx, date, limit)
}

func (m *mockStatsRepo) ListPopular(ctx context.Context, date time.Time, limit int) ([]models.HashtagStats, error) {
	if m.listPopularFn == nil {
		m.t.Fatal("unexpected ListPopular call")
	}
	return m.listPopularFn(ctx, date, limit)
}

func (m *mockStatsRepo) ListByPrefix(ctx context.Context, prefix string, date time.Time, limit int) ([]models.HashtagStats, error) {
	if m.listByPrefixFn == nil {
		m.t.Fatal("unexpected ListByPrefix call")
	}
	return m.listByPrefixFn(ctx, prefix, date, limit)
}

func (m *mockStatsRepo) ListByKeywords(ctx context.Context, date time.Time, keywords []string, limit int) ([]models.HashtagStats, error) {
	if m.listByKeywordsFn == nil {
		m.t.Fatal("unexpected ListByKeywords call")
	}
	return m.listByKeywordsFn(ctx, date, keywords, limit)
}

func (m *mockStatsRepo) ListByHashtagBetween(ctx context.Context, hashtag models.HashTag, start, end time.Time) ([]models.HashtagStats, error) {
	if m.listBetweenFn == nil {
		m.t.Fatal("unexpected ListByHashtagBetween call")
	}
	return m.listBetweenFn(ctx, hashtag, start, end)
}

func (m *mockStatsRepo) IncrementUsage(ctx context.Context, hashtag models.HashTag, date time.Time) (*models.HashtagStats, error) {
	if m.incrementUsageFn == nil {
		m.t.Fatal("unexpected IncrementUsage call")
	}
	return m.incrementUsageFn(ctx, hashtag, date)
}

func (m *mockStatsRepo) AddUsage(ctx context.Context, hashtag models.HashTag, count int, date time.Time) (*models.HashtagStats, error) {
	if m.addUsageFn == nil {
		m.t.Fatal("unexpected AddUsage call")
	}
	return m.addUsageFn(ctx, hashtag, count, date)
}

func (m *mockStatsRepo) ResetDailyCounts(ctx context.Context, date time.Time) (int, error) {
	m.t.Fatal("unexpected ResetDailyCounts call")
	return 0, nil
}

func (m *mockStatsRepo) ResetWeeklyCounts(ctx context.Context, date time.Time) (int, error) {
	m.t.Fatal("unexpected ResetWeeklyCounts call")
	return 0, nil
}

func (m *mockStatsRepo) ResetMonthlyCounts(ctx context.Context, date time.Time) (int, error) {
	m.t.Fatal("unexpected ResetMonthlyCounts call")
	return 0, nil
}

func (m *mockStatsRepo) GetSummary(ctx context.Context, date time.Time) (*database.StatsSummary, error) {
	if m.getSummaryFn == nil {
		m.t.Fatal("unexpected GetSummary call")
	}
	return m.getSummaryFn(ctx, date)
}

// mockTrendingCache implements the trending cache with configurable functions.
type mockTrendingCache struct {
	getFn        func(ctx context.Context, date time.Time) ([]models.HashtagStats, bool, error)
	setFn        func(ctx context.Context, date time.Time, stats []models.HashtagStats, ttl time.Duration) error
	invalidateFn func(ctx context.Context, date time.Time) error
}

var _ cache.TrendingCacheInterface = (*mockTrendingCache)(nil)

func (m *mockTrendingCache) Get(ctx context.Context, date time.Time) ([]models.HashtagStats, bool, error) {
	if m.getFn == nil {
		return nil, false, nil
	}
	return m.getFn(ctx, date)
}

func (m *mockTrendingCache) Set(ctx context.Context, date time.Time, stats []models.HashtagStats, ttl time.Duration) error {
	if m.setFn == nil {
		return nil
	}
	return m.setFn(ctx, date, stats, ttl)
}

func (m *mockTrendingCache) Invalidate(ctx context.Context, date time.Time) error {
	if m.invalidateFn == nil {
		return nil
	}
	return m.invalidateFn(ctx, date)
}

// mockJobQueue implements queue.JobQueue for enqueue-only assertions.
type mockJobQueue struct {
	enqueueFn func(ctx context.Context, job *queue.Job) error
}

var _ queue.JobQueue = (*mockJobQueue)(nil)

func (m *mockJobQueue) Enqueue(ctx context.Context, job *queue.Job) error {
	if m.enqueueFn == nil {
		return nil
	}
	return m.enqueueFn(ctx, job)
}

func (m *mockJobQueue) Consume(ctx context.Context, prefetchCount int) (<-chan *queue.Message, <-chan error, error) {
	return nil, nil, nil
}

func (m *mockJobQueue) Close() error { return nil }

func (m *mockJobQueue) HealthCheck(ctx context.Context) error { return nil }

// routeRegistrar is satisfied by every handler in this package.
type routeRegistrar interface {
	RegisterRoutes(r *mux.Router)
}

// serve routes a request through a fresh router and records the response.
func serve(h routeRegistrar, req *http.Request) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	if wr, ok := h.(interface{ RegisterWriteRoutes(r *mux.Router) }); ok {
		wr.RegisterWriteRoutes(router)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// envelope mirrors the JSON response wrapper.
type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Message   string          `json:"message"`
	Timestamp string          `json:"timestamp"`
}

// decodeEnvelope parses the response wrapper, failing the test on bad JSON.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	return env
}

// decodeData parses the envelope's data payload into target.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("expected success response, got error %q: %s", env.Error, env.Message)
	}
	if err := json.Unmarshal(env.Data, target); err != nil {
		t.Fatalf("failed to decode response data: %v", err)
	}
}

// statsRow builds a stats fixture with the trend score recomputed from the
// counters so fixtures stay consistent with the scoring formula.
func statsRow(tag string, daily, weekly, monthly int, lastUsedAt time.Time) models.HashtagStats {
	now := time.Now().UTC()
	return models.HashtagStats{
		Hashtag:      models.NormalizeHashtag(tag),
		Date:         models.DayOf(now),
		DailyCount:   daily,
		WeeklyCount:  weekly,
		MonthlyCount: monthly,
		TotalCount:   monthly,
		LastUsedAt:   lastUsedAt,
		TrendScore:   models.TrendScore(daily, weekly, monthly, lastUsedAt, now),
		CreatedAt:    now.AddDate(0, 0, -30),
		UpdatedAt:    now,
	}
}
