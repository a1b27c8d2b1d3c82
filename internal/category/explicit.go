package category

// ExplicitStrategy matches campaign ids against fixed per-category lists of
// exact lowercased ids. A group clashes for a category when at least two of
// the category's ids are present. Categories are assumed disjoint by
// configuration and evaluation is order-independent.
type ExplicitStrategy struct{}

// Name returns the configuration name of the strategy.
func (ExplicitStrategy) Name() string { return StrategyExplicit }

// Normalize lowercases the id. Separators are significant here: explicit sets
// list both "-" and "_" spellings deliberately.
func (ExplicitStrategy) Normalize(campaignID string) string {
	return normalizeLower(campaignID)
}

// Labels returns the configured labels in order.
func (ExplicitStrategy) Labels(categories []Category) []string {
	labels := make([]string, len(categories))
	for i, cat := range categories {
		labels[i] = cat.Label
	}
	return labels
}

// Detect evaluates every category independently over every group.
func (s ExplicitStrategy) Detect(groups map[GroupKey][]string, categories []Category) Matches {
	matches := make(Matches, len(categories))

	for _, cat := range categories {
		want := distinct(cat.Campaigns, normalizeLower)
		catMatches := make(map[GroupKey][]string)

		for key, ids := range groups {
			present := make(map[string]struct{})
			for id := range distinct(ids, normalizeLower) {
				if _, ok := want[id]; ok {
					present[id] = struct{}{}
				}
			}
			if len(present) >= 2 {
				catMatches[key] = sorted(present)
			}
		}

		matches[cat.Label] = catMatches
	}

	return matches
}
