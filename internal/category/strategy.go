// Package category implements the campaign-id matching strategies used for
// clash detection. A category is a named rule selecting campaign ids; the
// three strategies differ in how ids are normalized and claimed, not in the
// surrounding detection algorithm.
package category

import (
	"fmt"

	"github.com/eventvol/clashwatch/internal/common"
)

// Category is a named rule selecting campaign ids. Explicit and suffix-pair
// strategies read Campaigns; the keyword strategy reads Keyword.
type Category struct {
	Label     string   `yaml:"label" json:"label"`
	Keyword   string   `yaml:"keyword,omitempty" json:"keyword,omitempty"`
	Campaigns []string `yaml:"campaigns,omitempty" json:"campaigns,omitempty"`
}

// GroupKey identifies one (person, date) clash group.
type GroupKey struct {
	GMSID string
	Day   string
}

// Matches holds, for every category label, the groups that clash under that
// category and the normalized campaign ids participating in each clash. Every
// configured label is present, even when no group clashes for it.
type Matches map[string]map[GroupKey][]string

// Strategy evaluates categories over clash groups. Implementations own their
// normalization rule and any claiming semantics between categories.
type Strategy interface {
	Name() string

	// Normalize canonicalizes a campaign id for matching.
	Normalize(campaignID string) string

	// Labels returns every output label in order, including any catch-all
	// the strategy appends beyond the configured categories.
	Labels(categories []Category) []string

	// Detect evaluates all categories over all groups. Group values are the
	// raw campaign ids of the group's records.
	Detect(groups map[GroupKey][]string, categories []Category) Matches
}

// Strategy names accepted in board configuration.
const (
	StrategyExplicit   = "explicit"
	StrategySuffixPair = "suffixpair"
	StrategyKeyword    = "keyword"
)

// ForName returns the strategy registered under the given configuration name.
func ForName(name string) (Strategy, error) {
	switch name {
	case StrategyExplicit:
		return ExplicitStrategy{}, nil
	case StrategySuffixPair:
		return SuffixPairStrategy{}, nil
	case StrategyKeyword:
		return KeywordStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownStrategy, name)
	}
}
