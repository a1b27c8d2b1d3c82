package clash

import (
	"sort"

	"github.com/eventvol/clashwatch/internal/model"
)

// AggregateRisk rolls a (typically filtered) clash result up to one entry per
// person: the distinct categories they clashed in, the names seen for their
// id, and the category count. Entries sort by count descending; ties keep
// first-seen order. The slice is empty, never nil, when no one clashed, so
// callers can distinguish that from a pipeline that never produced a Result.
func AggregateRisk(res *Result) []model.RiskEntry {
	var order []string
	catsByID := make(map[string]map[string]struct{})
	namesByID := make(map[string]map[string]struct{})

	for _, label := range res.Labels {
		for _, rec := range res.Tables[label] {
			if _, ok := catsByID[rec.GMSID]; !ok {
				order = append(order, rec.GMSID)
				catsByID[rec.GMSID] = make(map[string]struct{})
				namesByID[rec.GMSID] = make(map[string]struct{})
			}
			catsByID[rec.GMSID][label] = struct{}{}
			namesByID[rec.GMSID][model.DisplayName(rec.Name)] = struct{}{}
		}
	}

	entries := make([]model.RiskEntry, 0, len(order))
	for _, id := range order {
		entries = append(entries, model.RiskEntry{
			GMSID:      id,
			Names:      sortedKeys(namesByID[id]),
			Categories: sortedKeys(catsByID[id]),
			Count:      len(catsByID[id]),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	return entries
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
