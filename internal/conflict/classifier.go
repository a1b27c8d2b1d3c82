// Package conflict flags known scheduling conflicts in a person's shift
// history: mutually exclusive shift pairs and duplicate shift entries.
package conflict

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/eventvol/clashwatch/internal/model"
)

// Pair names two shift substrings that must not co-occur on one day.
type Pair struct {
	First  string `yaml:"first" json:"first"`
	Second string `yaml:"second" json:"second"`
}

// Rules configures the classifier. Matching is case-insensitive substring
// containment on the raw campaign id; unlike clash detection, separators are
// significant here, so the configured patterns spell them out.
type Rules struct {
	ExclusivePairs    []Pair   `yaml:"exclusive_pairs" json:"exclusive_pairs"`
	DuplicateKeywords []string `yaml:"duplicate_keywords" json:"duplicate_keywords"`
}

// DefaultRules returns the production conflict rules.
func DefaultRules() Rules {
	return Rules{
		ExclusivePairs: []Pair{
			{First: "Attendance_Silent-Hours_AM", Second: "Attendance_AM"},
		},
		DuplicateKeywords: []string{
			"Silent_Hours_AM",
			"Attendance_AM",
			"Attendance_PM",
			"Attendance_Silent_Hour_11PM_7AM",
			"SEN_Attendance_BENTO",
			"TSA_Attendance",
			"test",
		},
	}
}

// Classifier detects conflicts in a record set.
type Classifier struct {
	rules Rules
}

// NewClassifier creates a classifier with the given rules.
func NewClassifier(rules Rules) *Classifier {
	return &Classifier{rules: rules}
}

type groupKey struct {
	name string
	day  string
}

// Detect groups records by (person name, registration date) and emits one
// conflict per triggered rule per group. The two checks are independent: a
// group can produce both a HIGH and a MEDIUM conflict. Records with an
// unparseable registration date are skipped entirely.
func (c *Classifier) Detect(records []model.Record) []model.Conflict {
	groups := make(map[groupKey][]string)
	dates := make(map[groupKey]time.Time)

	for _, r := range records {
		if r.RegistrationDate.IsZero() {
			continue
		}
		key := groupKey{name: r.Name, day: model.DayKey(r.RegistrationDate)}
		groups[key] = append(groups[key], r.CampaignID)
		if _, ok := dates[key]; !ok {
			d := r.RegistrationDate
			dates[key] = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		}
	}

	keys := make([]groupKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].name != keys[j].name {
			return keys[i].name < keys[j].name
		}
		return keys[i].day < keys[j].day
	})

	var conflicts []model.Conflict
	for _, key := range keys {
		shifts := groups[key]

		for _, pair := range c.rules.ExclusivePairs {
			if containsAny(shifts, pair.First) && containsAny(shifts, pair.Second) {
				conflicts = append(conflicts, model.Conflict{
					Name:        key.name,
					Date:        dates[key],
					Type:        model.ConflictMutuallyExclusive,
					Description: fmt.Sprintf("Shifts contain both '%s' and '%s'", pair.First, pair.Second),
					Shifts:      matching(shifts, pair.First, pair.Second),
					Severity:    model.SeverityHigh,
				})
			}
		}

		for _, keyword := range c.rules.DuplicateKeywords {
			matched := matching(shifts, keyword)
			if len(matched) > 1 {
				conflicts = append(conflicts, model.Conflict{
					Name:        key.name,
					Date:        dates[key],
					Type:        model.ConflictDuplicateEntry,
					Description: fmt.Sprintf("Multiple shifts contain '%s' (%d times)", keyword, len(matched)),
					Shifts:      matched,
					Severity:    model.SeverityMedium,
				})
			}
		}
	}

	return conflicts
}

// Annotate flags every record that takes part in a conflict, accumulating the
// conflict type labels per row, and returns the conflict list alongside.
func (c *Classifier) Annotate(records []model.Record) ([]model.AnnotatedRecord, []model.Conflict) {
	conflicts := c.Detect(records)

	annotated := make([]model.AnnotatedRecord, len(records))
	for i, r := range records {
		annotated[i] = model.AnnotatedRecord{Record: r}
	}

	for _, conf := range conflicts {
		day := model.DayKey(conf.Date)
		for i := range annotated {
			r := annotated[i].Record
			if r.Name != conf.Name || r.RegistrationDate.IsZero() || model.DayKey(r.RegistrationDate) != day {
				continue
			}
			annotated[i].HasConflict = true
			if annotated[i].ConflictTypes == "" {
				annotated[i].ConflictTypes = conf.Type
			} else {
				annotated[i].ConflictTypes += ", " + conf.Type
			}
		}
	}

	return annotated, conflicts
}

// containsAny reports whether any shift id contains the substring,
// case-insensitively.
func containsAny(shifts []string, substr string) bool {
	needle := strings.ToLower(substr)
	for _, s := range shifts {
		if s == "" {
			continue
		}
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// matching returns the shift ids containing any of the substrings, in their
// original spelling and order.
func matching(shifts []string, substrs ...string) []string {
	var out []string
	for _, s := range shifts {
		if s == "" {
			continue
		}
		lower := strings.ToLower(s)
		for _, substr := range substrs {
			if strings.Contains(lower, strings.ToLower(substr)) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}
