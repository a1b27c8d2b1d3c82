// Package report derives the aggregate tables behind the disbursement
// dashboards: trend lines, account tallies, manpower counts, rejection
// summaries, and per-person day breakdowns.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/eventvol/clashwatch/internal/clash"
	"github.com/eventvol/clashwatch/internal/model"
)

// Interval selects the trend bucketing granularity.
type Interval string

// Supported trend intervals.
const (
	Daily   Interval = "day"
	Weekly  Interval = "week"
	Monthly Interval = "month"
)

// ParseInterval maps a query value to an Interval, defaulting to daily.
func ParseInterval(s string) Interval {
	switch strings.ToLower(s) {
	case "week", "weekly", "w":
		return Weekly
	case "month", "monthly", "m":
		return Monthly
	default:
		return Daily
	}
}

// TrendPoint is one bucket of the disbursement trend.
type TrendPoint struct {
	Bucket string  `json:"bucket"`
	Amount float64 `json:"amount"`
}

// Trend sums disbursed amounts per time bucket over completed payouts,
// grouped on the payout date. Rows without a parseable payout date or amount
// are skipped.
func Trend(records []model.Record, f clash.Filter, interval Interval) []TrendPoint {
	buckets := make(map[string]float64)

	for _, r := range records {
		if !strings.EqualFold(r.ApprovalStage, "completed") {
			continue
		}
		if r.PayoutDate.IsZero() || !r.HasAmount {
			continue
		}
		if !f.Match(r, model.DatePayout) {
			continue
		}
		buckets[bucketKey(r, interval)] += r.Amount
	}

	points := make([]TrendPoint, 0, len(buckets))
	for bucket, amount := range buckets {
		points = append(points, TrendPoint{Bucket: bucket, Amount: amount})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Bucket < points[j].Bucket })

	return points
}

func bucketKey(r model.Record, interval Interval) string {
	switch interval {
	case Weekly:
		year, week := r.PayoutDate.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case Monthly:
		return r.PayoutDate.Format("2006-01")
	default:
		return model.DayKey(r.PayoutDate)
	}
}
