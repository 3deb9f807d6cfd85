package logger

import (
	"strings"
	"testing"
)

func TestSanitizeUserID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"uuid passes through", "b5f1c1a2-9c1f-4c70-8f0d-2f8a4a8e1d42", "b5f1c1a2-9c1f-4c70-8f0d-2f8a4a8e1d42"},
		{"control characters stripped", "user\x00\x1bid", "userid"},
		{"overlong id truncated", strings.Repeat("a", MaxUserIDLength+10), strings.Repeat("a", MaxUserIDLength) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SanitizeUserID(tt.input); got != tt.expected {
				t.Errorf("SanitizeUserID(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSanitizeDebugContent(t *testing.T) {
	t.Parallel()

	if got := SanitizeDebugContent("prompt\nwith lines"); got != "prompt\nwith lines" {
		t.Errorf("Expected newlines to survive, got %q", got)
	}

	long := strings.Repeat("x", MaxDebugContentLength+1)
	got := SanitizeDebugContent(long)
	if len(got) != MaxDebugContentLength+3 || !strings.HasSuffix(got, "...") {
		t.Errorf("Expected truncation to %d chars plus ellipsis, got length %d", MaxDebugContentLength, len(got))
	}
}
