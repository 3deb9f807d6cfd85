package engine

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/questfeed/hashtag-engine/internal/models"
)

// Autocomplete match tiers, best first. Exact '#'-prefix matches rank
// ahead of bare-prefix matches, which rank ahead of near-start substring
// matches.
const (
	tierExactPrefix = 0
	tierBarePrefix  = 1
	tierNearStart   = 2
)

type autocompleteCandidate struct {
	stats models.HashtagStats
	tier  int
}

// FilterCandidates keeps candidates matching the typed prefix, ranks them
// by match tier then total usage, and truncates to maxResults.
func FilterCandidates(prefix string, candidates []models.HashtagStats, maxResults int) []models.HashtagStats {
	if maxResults <= 0 {
		return nil
	}

	prefixLower := strings.ToLower(strings.TrimSpace(prefix))
	bare := strings.TrimPrefix(prefixLower, "#")
	tagged := "#" + bare

	matched := make([]autocompleteCandidate, 0, len(candidates))
	for _, stats := range candidates {
		tier, ok := matchTier(stats.Hashtag.Lower(), tagged, bare)
		if !ok {
			continue
		}
		matched = append(matched, autocompleteCandidate{stats: stats, tier: tier})
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].tier != matched[j].tier {
			return matched[i].tier < matched[j].tier
		}
		return matched[i].stats.TotalCount > matched[j].stats.TotalCount
	})

	if len(matched) > maxResults {
		matched = matched[:maxResults]
	}

	results := make([]models.HashtagStats, len(matched))
	for i, c := range matched {
		results[i] = c.stats
	}
	return results
}

// matchTier tests a lower-cased tag against the normalized prefix forms.
// The near-start tier only considers matches beginning within the first
// two characters of the tag text.
func matchTier(tag, tagged, bare string) (int, bool) {
	if strings.HasPrefix(tag, tagged) {
		return tierExactPrefix, true
	}
	if strings.HasPrefix(strings.TrimPrefix(tag, "#"), bare) {
		return tierBarePrefix, true
	}
	if bare != "" {
		idx := strings.Index(tag, bare)
		if idx >= 0 && utf8.RuneCountInString(tag[:idx]) <= 2 {
			return tierNearStart, true
		}
	}
	return 0, false
}
