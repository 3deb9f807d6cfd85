package keywords

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/questfeed/hashtag-engine/internal/models"
)

func newStubServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		body := `{
			"id": "chatcmpl-test",
			"object": "chat.completion",
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": ` + content + `}, "finish_reason": "stop"}]
		}`
		if _, err := w.Write([]byte(body)); err != nil {
			t.Errorf("failed to write stub response: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSuggester_Suggest(t *testing.T) {
	t.Parallel()

	server := newStubServer(t, `"{\"keywords\": [\"등산\", \"climbing\", \"  Trail \", \"등산\", \"\"]}"`)
	suggester := NewSuggesterWithLogger("test-key", server.URL, "", nil, false)

	got, err := suggester.Suggest(context.Background(), models.CategoryAdventure, []string{"여행"}, 10)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}

	want := []string{"등산", "climbing", "trail"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d keywords, got %v", len(want), got)
	}
	for i, keyword := range want {
		if got[i] != keyword {
			t.Errorf("Expected keyword %q at %d, got %q", keyword, i, got[i])
		}
	}
}

func TestSuggester_Suggest_DropsExisting(t *testing.T) {
	t.Parallel()

	server := newStubServer(t, `"{\"keywords\": [\"여행\", \"backpacking\"]}"`)
	suggester := NewSuggesterWithLogger("test-key", server.URL, "", nil, false)

	got, err := suggester.Suggest(context.Background(), models.CategoryAdventure, []string{"여행"}, 10)
	if err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if len(got) != 1 || got[0] != "backpacking" {
		t.Errorf("Expected existing keyword filtered out, got %v", got)
	}
}

func TestSuggester_Suggest_BadJSON(t *testing.T) {
	t.Parallel()

	server := newStubServer(t, `"this is not json"`)
	suggester := NewSuggesterWithLogger("test-key", server.URL, "", nil, false)

	if _, err := suggester.Suggest(context.Background(), models.CategoryFood, nil, 5); err == nil {
		t.Error("Expected error for unparseable response")
	}
}

func TestParseSuggestions_WrappedJSON(t *testing.T) {
	t.Parallel()

	got, err := parseSuggestions("Here you go:\n{\"keywords\": [\"카페\"]}\nEnjoy!")
	if err != nil {
		t.Fatalf("parseSuggestions failed: %v", err)
	}
	if len(got) != 1 || got[0] != "카페" {
		t.Errorf("Expected wrapped JSON to be extracted, got %v", got)
	}
}

func TestDedupeKeywords_Limit(t *testing.T) {
	t.Parallel()

	got := dedupeKeywords([]string{"a", "b", "c", "d"}, nil, 2)
	if len(got) != 2 {
		t.Errorf("Expected limit of 2 to apply, got %v", got)
	}
}
