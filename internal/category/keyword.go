package category

import "strings"

// KeywordStrategy matches campaign ids by normalized substring. Categories
// are evaluated in configured priority order; once an id has appeared in an
// earlier category's clash output it is claimed and excluded from later
// categories, so the categories partition the matched ids.
type KeywordStrategy struct{}

// Name returns the configuration name of the strategy.
func (KeywordStrategy) Name() string { return StrategyKeyword }

// Normalize lowercases and strips separators, so "AQC-Attendance-AM" and
// "aqc_attendance_am" become the same id. Two spellings that normalize
// identically count as one id toward the clash threshold.
func (KeywordStrategy) Normalize(campaignID string) string {
	return normalizeCompact(campaignID)
}

// Labels returns the configured labels in priority order.
func (KeywordStrategy) Labels(categories []Category) []string {
	labels := make([]string, len(categories))
	for i, cat := range categories {
		labels[i] = cat.Label
	}
	return labels
}

// Detect evaluates categories in priority order, claiming matched ids
// globally after each category completes its pass over all groups.
func (s KeywordStrategy) Detect(groups map[GroupKey][]string, categories []Category) Matches {
	matches := make(Matches, len(categories))
	used := make(map[string]struct{})

	for _, cat := range categories {
		keyword := normalizeCompact(cat.Keyword)
		catMatches := make(map[GroupKey][]string)
		matchedThisPass := make(map[string]struct{})

		for key, ids := range groups {
			present := make(map[string]struct{})
			for id := range distinct(ids, normalizeCompact) {
				if _, taken := used[id]; taken {
					continue
				}
				if strings.Contains(id, keyword) {
					present[id] = struct{}{}
				}
			}
			if len(present) >= 2 {
				catMatches[key] = sorted(present)
				for id := range present {
					matchedThisPass[id] = struct{}{}
				}
			}
		}

		matches[cat.Label] = catMatches

		// Claim only ids that appeared in actual clash output, after the
		// category's full pass; earlier groups in the same pass never shadow
		// later ones.
		for id := range matchedThisPass {
			used[id] = struct{}{}
		}
	}

	return matches
}
