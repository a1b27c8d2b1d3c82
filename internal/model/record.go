// Package model defines the core data types shared across the application.
package model

import (
	"fmt"
	"time"
)

// Record represents a single shift/payout entry from the wallet export.
type Record struct {
	CreatedDate      time.Time `json:"date_created"`
	RegistrationDate time.Time `json:"registration_date"`
	PayoutDate       time.Time `json:"payout_date"`
	GMSID            string    `json:"gms_id"`
	Name             string    `json:"name"`
	BadgeID          string    `json:"badge_id"`
	RoleName         string    `json:"gms_role_name"`
	CampaignID       string    `json:"registration_location_id"`
	ApprovalStage    string    `json:"approval_stage"`
	ApprovalStatus   string    `json:"approval_final_status"`
	ApprovalRemarks  string    `json:"approval_final_remarks"`
	WalletStatus     string    `json:"wallet_status"`
	Amount           float64   `json:"amount"`
	HasAmount        bool      `json:"has_amount"`
}

// DateField selects which date column a board groups records on. The choice
// is deliberate per dashboard: clash boards group on the creation date while
// the people views group on payout or registration dates.
type DateField string

// Supported grouping date fields.
const (
	DateCreated      DateField = "created"
	DatePayout       DateField = "payout"
	DateRegistration DateField = "registration"
)

// DateOf returns the record's value for the given date field. The zero time
// marks a date that was missing or unparseable in the source data.
func (r Record) DateOf(field DateField) time.Time {
	switch field {
	case DatePayout:
		return r.PayoutDate
	case DateRegistration:
		return r.RegistrationDate
	default:
		return r.CreatedDate
	}
}

// AmountLabel renders the amount for display, substituting a placeholder for
// missing values so nulls never propagate downstream.
func (r Record) AmountLabel() string {
	if !r.HasAmount {
		return Placeholder
	}
	return fmt.Sprintf("%.2f", r.Amount)
}

// Placeholder is shown in place of missing display fields.
const Placeholder = "—"

// Display substitutes the placeholder for empty display strings.
func Display(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

// DisplayName substitutes "Unknown" for an empty person name.
func DisplayName(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// dateLayouts are tried in order when parsing source dates. The export is
// inconsistent: some columns carry full timestamps, others bare dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// ParseDate parses a source date string leniently. It returns the zero time
// for anything unparseable; rows with zero dates are excluded from grouping
// rather than failing the pipeline.
func ParseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// DayKey collapses a timestamp to its calendar date for grouping.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
