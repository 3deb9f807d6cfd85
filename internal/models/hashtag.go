package models

import (
	"strings"
)

// HashTag represents a normalized hashtag. The stored form always begins
// with '#' and preserves the original case; matching lower-cases on the fly.
type HashTag string

// NormalizeHashtag trims surrounding whitespace and ensures the leading '#'.
func NormalizeHashtag(text string) HashTag {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "#") {
		text = "#" + text
	}
	return HashTag(text)
}

// String returns the stored tag text including the leading '#'.
func (h HashTag) String() string {
	return string(h)
}

// Bare returns the tag text without the leading '#'.
func (h HashTag) Bare() string {
	return strings.TrimPrefix(string(h), "#")
}

// Lower returns the lower-cased tag text, used for matching only.
func (h HashTag) Lower() string {
	return strings.ToLower(string(h))
}

// EqualsFold reports whether two hashtags match case-insensitively.
func (h HashTag) EqualsFold(other HashTag) bool {
	return strings.EqualFold(string(h), string(other))
}
