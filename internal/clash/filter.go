// Package clash groups shift records by person and date, detects campaign
// clashes per category, and aggregates per-person risk summaries.
package clash

import (
	"time"

	"github.com/eventvol/clashwatch/internal/model"
)

// Filter is the conjunctive record filter shared by every dashboard: an
// inclusive date window plus optional id, name, and campaign lists. Within a
// list any value matches; across fields all conditions must hold.
type Filter struct {
	Start     time.Time
	End       time.Time
	GMSIDs    []string
	Names     []string
	Campaigns []string
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return f.Start.IsZero() && f.End.IsZero() &&
		len(f.GMSIDs) == 0 && len(f.Names) == 0 && len(f.Campaigns) == 0
}

// Match reports whether the record passes the filter, with the date window
// applied to the given date field. A record with a zero date fails any date
// window rather than erroring.
func (f Filter) Match(r model.Record, field model.DateField) bool {
	d := r.DateOf(field)
	if !f.Start.IsZero() {
		if d.IsZero() || model.DayKey(d) < model.DayKey(f.Start) {
			return false
		}
	}
	if !f.End.IsZero() {
		if d.IsZero() || model.DayKey(d) > model.DayKey(f.End) {
			return false
		}
	}
	if len(f.GMSIDs) > 0 && !containsString(f.GMSIDs, r.GMSID) {
		return false
	}
	if len(f.Names) > 0 && !containsString(f.Names, r.Name) {
		return false
	}
	if len(f.Campaigns) > 0 && !containsString(f.Campaigns, r.CampaignID) {
		return false
	}
	return true
}

// Apply returns the records passing the filter, preserving input order.
func (f Filter) Apply(records []model.Record, field model.DateField) []model.Record {
	if f.IsZero() {
		return records
	}
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if f.Match(r, field) {
			out = append(out, r)
		}
	}
	return out
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
