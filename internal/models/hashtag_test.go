package models

import (
	"testing"
)

func TestNormalizeHashtag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected HashTag
	}{
		{"already prefixed", "#운동", "#운동"},
		{"missing prefix", "운동", "#운동"},
		{"surrounding whitespace", "  카페 ", "#카페"},
		{"case preserved", "Fitness", "#Fitness"},
		{"empty", "", "#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeHashtag(tt.input); got != tt.expected {
				t.Errorf("NormalizeHashtag(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestHashTag_Bare(t *testing.T) {
	t.Parallel()

	if got := HashTag("#커피").Bare(); got != "커피" {
		t.Errorf("Bare() = %q, expected %q", got, "커피")
	}
}

func TestHashTag_EqualsFold(t *testing.T) {
	t.Parallel()

	if !HashTag("#Coffee").EqualsFold("#coffee") {
		t.Error("Expected case-insensitive match")
	}
	if HashTag("#coffee").EqualsFold("#tea") {
		t.Error("Expected different tags not to match")
	}
}
