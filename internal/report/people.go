package report

import (
	"sort"
	"strings"

	"github.com/eventvol/clashwatch/internal/clash"
	"github.com/eventvol/clashwatch/internal/model"
)

// RoleTally counts distinct accounts per payout date and role.
type RoleTally struct {
	Date     string `json:"payout_date"`
	Role     string `json:"gms_role_name"`
	Accounts int    `json:"unique_accounts"`
}

// AccountTally counts distinct GMS ids per (payout date, role).
func AccountTally(records []model.Record, f clash.Filter) []RoleTally {
	type key struct {
		date string
		role string
	}
	ids := make(map[key]map[string]struct{})

	for _, r := range records {
		if r.PayoutDate.IsZero() || !f.Match(r, model.DatePayout) {
			continue
		}
		k := key{date: model.DayKey(r.PayoutDate), role: model.Display(r.RoleName)}
		if ids[k] == nil {
			ids[k] = make(map[string]struct{})
		}
		ids[k][r.GMSID] = struct{}{}
	}

	tallies := make([]RoleTally, 0, len(ids))
	for k, set := range ids {
		tallies = append(tallies, RoleTally{Date: k.date, Role: k.role, Accounts: len(set)})
	}
	sort.Slice(tallies, func(i, j int) bool {
		if tallies[i].Date != tallies[j].Date {
			return tallies[i].Date < tallies[j].Date
		}
		return tallies[i].Role < tallies[j].Role
	})

	return tallies
}

// RoleCount counts distinct accounts for one role.
type RoleCount struct {
	Role     string `json:"gms_role_name"`
	Accounts int    `json:"unique_accounts"`
}

// ManpowerByRole counts distinct GMS ids per role plus the overall distinct
// headcount (one person working two roles counts once in the total).
func ManpowerByRole(records []model.Record, f clash.Filter) ([]RoleCount, int) {
	byRole := make(map[string]map[string]struct{})
	all := make(map[string]struct{})

	for _, r := range records {
		if !f.Match(r, model.DatePayout) {
			continue
		}
		role := model.Display(r.RoleName)
		if byRole[role] == nil {
			byRole[role] = make(map[string]struct{})
		}
		byRole[role][r.GMSID] = struct{}{}
		all[r.GMSID] = struct{}{}
	}

	counts := make([]RoleCount, 0, len(byRole))
	for role, set := range byRole {
		counts = append(counts, RoleCount{Role: role, Accounts: len(set)})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Accounts != counts[j].Accounts {
			return counts[i].Accounts > counts[j].Accounts
		}
		return counts[i].Role < counts[j].Role
	})

	return counts, len(all)
}

// PersonDay is one payout date of a person's shift history.
type PersonDay struct {
	Date    string         `json:"payout_date"`
	Records []model.Record `json:"shifts"`
	Shifts  int            `json:"total_shifts"`
	Amount  float64        `json:"total_amount"`
}

// PersonDays breaks one person's records into per-payout-date groups with
// shift counts and amount totals, newest date first. Pending wallet entries
// and rows without a payout date or name are excluded, matching the people
// dashboard's base query.
func PersonDays(records []model.Record, name string, f clash.Filter) []PersonDay {
	byDay := make(map[string][]model.Record)

	for _, r := range records {
		if r.Name != name || r.Name == "" || r.PayoutDate.IsZero() {
			continue
		}
		if strings.EqualFold(r.WalletStatus, "pending") {
			continue
		}
		if !f.Match(r, model.DatePayout) {
			continue
		}
		day := model.DayKey(r.PayoutDate)
		byDay[day] = append(byDay[day], r)
	}

	days := make([]PersonDay, 0, len(byDay))
	for day, rows := range byDay {
		var total float64
		for _, r := range rows {
			if r.HasAmount {
				total += r.Amount
			}
		}
		days = append(days, PersonDay{Date: day, Records: rows, Shifts: len(rows), Amount: total})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date > days[j].Date })

	return days
}

// PersonAverage is a person's mean shift count per active day.
type PersonAverage struct {
	Name     string  `json:"name"`
	AvgDaily float64 `json:"avg_shifts_per_day"`
}

// AverageShifts computes, per person, the average number of shifts on days
// they worked at all.
func AverageShifts(records []model.Record, f clash.Filter) []PersonAverage {
	type key struct {
		name string
		day  string
	}
	daily := make(map[key]int)

	for _, r := range records {
		if r.Name == "" || r.PayoutDate.IsZero() {
			continue
		}
		if strings.EqualFold(r.WalletStatus, "pending") {
			continue
		}
		if !f.Match(r, model.DatePayout) {
			continue
		}
		daily[key{name: r.Name, day: model.DayKey(r.PayoutDate)}]++
	}

	totals := make(map[string]int)
	activeDays := make(map[string]int)
	for k, n := range daily {
		totals[k.name] += n
		activeDays[k.name]++
	}

	averages := make([]PersonAverage, 0, len(totals))
	for name, total := range totals {
		averages = append(averages, PersonAverage{
			Name:     name,
			AvgDaily: float64(total) / float64(activeDays[name]),
		})
	}
	sort.Slice(averages, func(i, j int) bool {
		if averages[i].AvgDaily != averages[j].AvgDaily {
			return averages[i].AvgDaily > averages[j].AvgDaily
		}
		return averages[i].Name < averages[j].Name
	})

	return averages
}
