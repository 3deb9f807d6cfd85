package keywords

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"

	logpkg "github.com/questfeed/hashtag-engine/internal/logger"
	"github.com/questfeed/hashtag-engine/internal/models"
)

const (
	// DefaultModel is the default model to use
	DefaultModel = "gpt-4o-mini"
	// DefaultBaseURL is the default OpenAI API base URL
	DefaultBaseURL = "https://api.openai.com/v1"
	// DefaultTimeout is the default timeout for API calls
	DefaultTimeout = 30 * time.Second
	// MaxSuggestions caps how many keywords one request may return
	MaxSuggestions = 30

	// ErrNoChoicesInResponse is returned when the API response has no choices
	ErrNoChoicesInResponse = "no choices in response"
)

// Suggester drafts candidate classifier keywords for a category. Suggestions
// are operator-reviewed before entering the keyword file; classification
// itself stays deterministic and never calls out here.
type Suggester struct {
	client    openai.Client
	model     string
	logger    *zap.Logger
	debugMode bool
}

// NewSuggester creates a suggester with the default base URL.
func NewSuggester(apiKey string, model string) *Suggester {
	return NewSuggesterWithLogger(apiKey, DefaultBaseURL, model, nil, false)
}

// NewSuggesterWithLogger creates a suggester with logger support.
func NewSuggesterWithLogger(apiKey string, baseURL string, model string, logger *zap.Logger, debugMode bool) *Suggester {
	if model == "" {
		model = DefaultModel
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := &http.Client{
		Timeout: DefaultTimeout,
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(httpClient),
	)

	return &Suggester{
		client:    client,
		model:     model,
		logger:    logger,
		debugMode: debugMode,
	}
}

// Suggest returns candidate keywords for classifying hashtags into the given
// category. existing keywords are passed so the model avoids duplicates.
func (s *Suggester) Suggest(ctx context.Context, category models.Category, existing []string, count int) ([]string, error) {
	if count <= 0 || count > MaxSuggestions {
		count = 10
	}

	prompt := s.buildPrompt(category, existing, count)
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage("You are a helpful assistant that suggests substring keywords for classifying social media hashtags into categories. Keywords should be short lowercase fragments, Korean or English, that commonly appear inside hashtags of the category. Respond with valid JSON only."),
		openai.UserMessage(prompt),
	}
	req := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(s.model),
		Messages: messages,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}

	if s.logger != nil && s.debugMode {
		s.logger.Debug("llm_api_request",
			zap.String("operation", "suggest_keywords"),
			zap.String("model", s.model),
			zap.String("category", string(category)),
			zap.Int("prompt_length", len(prompt)),
			zap.String("prompt", logpkg.SanitizeDebugContent(prompt)),
		)
	}

	start := time.Now()
	resp, err := s.client.Chat.Completions.New(ctx, req)
	latency := time.Since(start)
	if err != nil {
		if s.logger != nil && s.debugMode {
			s.logger.Debug("llm_api_error",
				zap.String("operation", "suggest_keywords"),
				zap.String("model", s.model),
				zap.Error(err),
				zap.Int64("latency_ms", latency.Milliseconds()),
			)
		}
		return nil, fmt.Errorf("failed to suggest keywords: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New(ErrNoChoicesInResponse)
	}

	content := resp.Choices[0].Message.Content
	if s.logger != nil && s.debugMode {
		s.logger.Debug("llm_api_response",
			zap.String("operation", "suggest_keywords"),
			zap.String("model", s.model),
			zap.Int("response_length", len(content)),
			zap.Int64("latency_ms", latency.Milliseconds()),
			zap.String("content", logpkg.SanitizeDebugContent(content)),
		)
	}

	suggestions, err := parseSuggestions(content)
	if err != nil {
		return nil, err
	}
	return dedupeKeywords(suggestions, existing, count), nil
}

func (s *Suggester) buildPrompt(category models.Category, existing []string, count int) string {
	prompt := fmt.Sprintf("Suggest up to %d new substring keywords for the hashtag category %q.", count, category)
	if len(existing) > 0 {
		prompt += "\n\nKeywords already in use (do not repeat these):"
		for _, keyword := range existing {
			prompt += "\n- " + keyword
		}
	}
	prompt += `

Respond with a JSON object in this format:
{
  "keywords": ["keyword1", "keyword2"]
}

Return only valid JSON.`
	return prompt
}

func parseSuggestions(content string) ([]string, error) {
	var parsed struct {
		Keywords []string `json:"keywords"`
	}
	raw := content
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		if len(raw) > 0 && raw[0] != '{' {
			start := bytes.Index([]byte(raw), []byte("{"))
			end := bytes.LastIndex([]byte(raw), []byte("}"))
			if start != -1 && end != -1 && end > start {
				raw = raw[start : end+1]
			}
		}
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse suggestion response: %w", err)
		}
	}
	return parsed.Keywords, nil
}

// dedupeKeywords lower-cases, trims, and drops blanks, duplicates, and
// anything already present in the existing list.
func dedupeKeywords(suggestions, existing []string, limit int) []string {
	seen := make(map[string]bool, len(existing))
	for _, keyword := range existing {
		seen[strings.ToLower(strings.TrimSpace(keyword))] = true
	}

	result := make([]string, 0, len(suggestions))
	for _, keyword := range suggestions {
		cleaned := strings.ToLower(strings.TrimSpace(keyword))
		if cleaned == "" || seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		result = append(result, cleaned)
		if len(result) >= limit {
			break
		}
	}
	return result
}
