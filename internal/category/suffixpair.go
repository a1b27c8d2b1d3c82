package category

import "strings"

// Suffixes that tag a normalized campaign id as a silent-hours or plain AM
// shift. Normalization has already turned separators into spaces.
const (
	silentSuffix = " silent hours am"
	amSuffix     = " am"
)

// CatchAllLabel collects groups that show the silent/plain-AM pattern but
// belong to no configured category. Surfacing them is intended triage for
// unconfigured venues, not an error path.
const CatchAllLabel = "Other clashes"

// SuffixPairStrategy detects clashes between silent-hours AM shifts and plain
// AM shifts. A category matches a group when both suffix tags are present and
// every tagged id belongs to the category's campaign set; unclaimed groups
// showing the pattern fall into the catch-all.
type SuffixPairStrategy struct{}

// Name returns the configuration name of the strategy.
func (SuffixPairStrategy) Name() string { return StrategySuffixPair }

// Normalize lowercases and converts separators to spaces.
func (SuffixPairStrategy) Normalize(campaignID string) string {
	return normalizeSpaced(campaignID)
}

// Labels returns the configured labels followed by the catch-all.
func (SuffixPairStrategy) Labels(categories []Category) []string {
	labels := make([]string, 0, len(categories)+1)
	for _, cat := range categories {
		labels = append(labels, cat.Label)
	}
	return append(labels, CatchAllLabel)
}

// tagged splits a group's distinct normalized ids into silent-hours and
// plain-AM tags. Ids with neither suffix take no part in detection.
func tagged(ids map[string]struct{}) (silent, plain map[string]struct{}) {
	silent = make(map[string]struct{})
	plain = make(map[string]struct{})
	for id := range ids {
		switch {
		case strings.HasSuffix(id, silentSuffix):
			silent[id] = struct{}{}
		case strings.HasSuffix(id, amSuffix):
			plain[id] = struct{}{}
		}
	}
	return silent, plain
}

// Detect runs the named categories first, then sweeps unclaimed pattern
// groups into the catch-all. Claiming is at group level: a group assigned to
// a named category never reappears under the catch-all.
func (s SuffixPairStrategy) Detect(groups map[GroupKey][]string, categories []Category) Matches {
	matches := make(Matches, len(categories)+1)
	claimed := make(map[GroupKey]struct{})

	type taggedGroup struct {
		all map[string]struct{}
	}
	pattern := make(map[GroupKey]taggedGroup)
	for key, ids := range groups {
		silent, plain := tagged(distinct(ids, normalizeSpaced))
		if len(silent) == 0 || len(plain) == 0 {
			continue
		}
		all := make(map[string]struct{}, len(silent)+len(plain))
		for id := range silent {
			all[id] = struct{}{}
		}
		for id := range plain {
			all[id] = struct{}{}
		}
		pattern[key] = taggedGroup{all: all}
	}

	for _, cat := range categories {
		want := distinct(cat.Campaigns, normalizeSpaced)
		catMatches := make(map[GroupKey][]string)

		for key, tg := range pattern {
			within := true
			for id := range tg.all {
				if _, ok := want[id]; !ok {
					within = false
					break
				}
			}
			if !within {
				continue
			}
			catMatches[key] = sorted(tg.all)
			claimed[key] = struct{}{}
		}

		matches[cat.Label] = catMatches
	}

	other := make(map[GroupKey][]string)
	for key, tg := range pattern {
		if _, ok := claimed[key]; ok {
			continue
		}
		other[key] = sorted(tg.all)
	}
	matches[CatchAllLabel] = other

	return matches
}
