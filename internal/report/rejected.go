package report

import (
	"sort"
	"strings"

	"github.com/eventvol/clashwatch/internal/clash"
	"github.com/eventvol/clashwatch/internal/model"
)

// RejectionRow counts entries per role, campaign, and final approval status.
type RejectionRow struct {
	Role     string `json:"gms_role_name"`
	Campaign string `json:"registration_location_id"`
	Status   string `json:"approval_final_status"`
	Count    int    `json:"count"`
}

// RejectionTotals summarizes approval outcomes across the filtered window.
type RejectionTotals struct {
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Total    int `json:"total"`
}

// RejectionSummary tabulates approval outcomes per (role, campaign, status)
// with overall approved/rejected totals. Rows with no final status are
// counted under the display placeholder.
func RejectionSummary(records []model.Record, f clash.Filter) ([]RejectionRow, RejectionTotals) {
	type key struct {
		role     string
		campaign string
		status   string
	}
	counts := make(map[key]int)
	var totals RejectionTotals

	for _, r := range records {
		if !f.Match(r, model.DateCreated) {
			continue
		}
		status := strings.ToLower(r.ApprovalStatus)
		counts[key{
			role:     model.Display(r.RoleName),
			campaign: model.Display(r.CampaignID),
			status:   model.Display(status),
		}]++

		totals.Total++
		switch status {
		case "approved":
			totals.Approved++
		case "rejected":
			totals.Rejected++
		}
	}

	rows := make([]RejectionRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, RejectionRow{Role: k.role, Campaign: k.campaign, Status: k.status, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Role != rows[j].Role {
			return rows[i].Role < rows[j].Role
		}
		if rows[i].Campaign != rows[j].Campaign {
			return rows[i].Campaign < rows[j].Campaign
		}
		return rows[i].Status < rows[j].Status
	})

	return rows, totals
}
