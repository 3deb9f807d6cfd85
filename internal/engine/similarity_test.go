package engine

import (
	"testing"
)

func TestSimilarity_Identity(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"#카페", "#운동하기", "#fitness", "a"} {
		if got := Similarity(s, s); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %f, expected 1.0", s, s, got)
		}
	}
}

func TestSimilarity_BothEmpty(t *testing.T) {
	t.Parallel()

	if got := Similarity("", ""); got != 1.0 {
		t.Errorf("Similarity of two empty strings = %f, expected 1.0", got)
	}
}

func TestSimilarity_CaseInsensitive(t *testing.T) {
	t.Parallel()

	if got := Similarity("#Coffee", "#coffee"); got != 1.0 {
		t.Errorf("Expected case-insensitive equality to score 1.0, got %f", got)
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"#카페라떼", "#카페"},
		{"#운동", "#등산"},
		{"", "#커피"},
		{"abc", "xyz"},
	}
	for _, pair := range pairs {
		ab := Similarity(pair[0], pair[1])
		ba := Similarity(pair[1], pair[0])
		if ab != ba {
			t.Errorf("Similarity(%q, %q) = %f but reversed = %f", pair[0], pair[1], ab, ba)
		}
	}
}

func TestSimilarity_Bounded(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"#카페라떼", "#카페"},
		{"#a", "#bcdefghij"},
		{"", "long string here"},
		{"#운동", "#운동"},
	}
	for _, pair := range pairs {
		got := Similarity(pair[0], pair[1])
		if got < 0.0 || got > 1.0 {
			t.Errorf("Similarity(%q, %q) = %f out of [0,1]", pair[0], pair[1], got)
		}
	}
}

func TestSimilarity_PrefixCloserThanUnrelated(t *testing.T) {
	t.Parallel()

	related := Similarity("#카페라떼", "#카페")
	unrelated := Similarity("#카페라떼", "#등산")

	if related <= 0.0 || related >= 1.0 {
		t.Errorf("Expected partial match strictly inside (0,1), got %f", related)
	}
	if related <= unrelated {
		t.Errorf("Expected related pair (%f) to score above unrelated pair (%f)", related, unrelated)
	}
}

func TestLevenshtein_KnownDistances(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{"kitten sitting", "kitten", "sitting", 3},
		{"empty to word", "", "abc", 3},
		{"single substitution", "cat", "car", 1},
		{"identical", "same", "same", 0},
		{"korean insertion", "카페", "카페라떼", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := levenshtein([]rune(tt.a), []rune(tt.b))
			if got != tt.expected {
				t.Errorf("levenshtein(%q, %q) = %d, expected %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}
