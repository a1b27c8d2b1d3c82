package clash

import (
	"sort"

	"github.com/eventvol/clashwatch/internal/category"
	"github.com/eventvol/clashwatch/internal/model"
)

// Detector runs one matching strategy over a record table and produces the
// per-category clash tables.
type Detector struct {
	strategy   category.Strategy
	categories []category.Category
	dateField  model.DateField
}

// NewDetector creates a detector for the given strategy and category table.
func NewDetector(strategy category.Strategy, categories []category.Category, dateField model.DateField) *Detector {
	return &Detector{
		strategy:   strategy,
		categories: categories,
		dateField:  dateField,
	}
}

// Detect groups records by (person, grouping date) and collects, per
// category, every record whose campaign id takes part in a clash. Records
// with an unparseable grouping date are excluded from grouping. The result
// contains every configured label, with an empty table where nothing clashed.
func (d *Detector) Detect(records []model.Record) *Result {
	groups := make(map[category.GroupKey][]int)
	for i, r := range records {
		day := r.DateOf(d.dateField)
		if day.IsZero() {
			continue
		}
		key := category.GroupKey{GMSID: r.GMSID, Day: model.DayKey(day)}
		groups[key] = append(groups[key], i)
	}

	rawGroups := make(map[category.GroupKey][]string, len(groups))
	for key, idxs := range groups {
		ids := make([]string, len(idxs))
		for j, i := range idxs {
			ids[j] = records[i].CampaignID
		}
		rawGroups[key] = ids
	}

	matches := d.strategy.Detect(rawGroups, d.categories)
	labels := d.strategy.Labels(d.categories)

	result := &Result{
		Labels:    labels,
		Tables:    make(map[string][]model.Record, len(labels)),
		DateField: d.dateField,
	}

	for _, label := range labels {
		var rowIdxs []int
		seen := make(map[int]struct{})

		for key, matched := range matches[label] {
			matchedSet := make(map[string]struct{}, len(matched))
			for _, id := range matched {
				matchedSet[id] = struct{}{}
			}
			for _, i := range groups[key] {
				norm := d.strategy.Normalize(records[i].CampaignID)
				if _, ok := matchedSet[norm]; !ok {
					continue
				}
				if _, dup := seen[i]; dup {
					continue
				}
				seen[i] = struct{}{}
				rowIdxs = append(rowIdxs, i)
			}
		}

		// Input order makes the output deterministic regardless of map
		// iteration order.
		sort.Ints(rowIdxs)

		table := make([]model.Record, len(rowIdxs))
		for j, i := range rowIdxs {
			table[j] = records[i]
		}
		result.Tables[label] = table
	}

	return result
}

// Result maps every configured category label to the records clashing under
// it. Empty tables stay present so downstream views render them as empty
// rather than missing; a nil Result means the pipeline never ran.
type Result struct {
	Tables    map[string][]model.Record
	Labels    []string
	DateField model.DateField
}

// Table returns the rows for one category label.
func (r *Result) Table(label string) ([]model.Record, bool) {
	rows, ok := r.Tables[label]
	return rows, ok
}

// Empty reports whether no category has any clash rows.
func (r *Result) Empty() bool {
	for _, rows := range r.Tables {
		if len(rows) > 0 {
			return false
		}
	}
	return true
}

// Filtered returns a new Result with the filter applied to every category
// table. The receiver is not modified; results are threaded by value through
// the pipeline rather than shared.
func (r *Result) Filtered(f Filter) *Result {
	out := &Result{
		Labels:    r.Labels,
		Tables:    make(map[string][]model.Record, len(r.Tables)),
		DateField: r.DateField,
	}
	for label, rows := range r.Tables {
		filtered := f.Apply(rows, r.DateField)
		if filtered == nil {
			filtered = []model.Record{}
		}
		out.Tables[label] = filtered
	}
	return out
}

// CategoryCount is one bar of the clash summary chart.
type CategoryCount struct {
	Label   string `json:"category"`
	Clashes int    `json:"clash_count"`
}

// Summary counts, per category, the distinct (person, date) groups present in
// the category's table, ascending by count as the summary chart expects.
func (r *Result) Summary() []CategoryCount {
	counts := make([]CategoryCount, 0, len(r.Labels))
	for _, label := range r.Labels {
		groups := make(map[category.GroupKey]struct{})
		for _, rec := range r.Tables[label] {
			day := rec.DateOf(r.DateField)
			groups[category.GroupKey{GMSID: rec.GMSID, Day: model.DayKey(day)}] = struct{}{}
		}
		counts = append(counts, CategoryCount{Label: label, Clashes: len(groups)})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Clashes < counts[j].Clashes
	})
	return counts
}
