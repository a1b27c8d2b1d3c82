// Package source loads the shift/payout record table from the remote wallet
// export and caches it with a staleness window, a forced-refresh entry point,
// and a background refresh loop.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/eventvol/clashwatch/internal/model"
)

// CSV column names of the wallet export.
const (
	colGMSID           = "gms_id"
	colName            = "name"
	colBadgeID         = "badge_id"
	colRoleName        = "gms_role_name"
	colCampaign        = "registration_location_id"
	colAmount          = "amount"
	colApprovalStage   = "approval_stage"
	colApprovalStatus  = "approval_final_status"
	colApprovalRemarks = "approval_final_remarks"
	colWalletStatus    = "wallet_status"
	colCreated         = "date_created"
	colRegistration    = "registration_date"
	colPayout          = "payout_date"
)

// ParseCSV decodes the wallet export into records. Unknown columns are
// ignored and missing columns yield empty fields, so schema drift in the
// export degrades gracefully instead of failing the refresh. Individual bad
// values (dates, amounts) never fail a row.
func ParseCSV(r io.Reader) ([]model.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(strings.ToLower(col))] = i
	}
	if _, ok := index[colGMSID]; !ok {
		return nil, fmt.Errorf("CSV is missing the %q column", colGMSID)
	}

	field := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []model.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		rec := model.Record{
			GMSID:            field(row, colGMSID),
			Name:             field(row, colName),
			BadgeID:          field(row, colBadgeID),
			RoleName:         field(row, colRoleName),
			CampaignID:       field(row, colCampaign),
			ApprovalStage:    field(row, colApprovalStage),
			ApprovalStatus:   field(row, colApprovalStatus),
			ApprovalRemarks:  field(row, colApprovalRemarks),
			WalletStatus:     field(row, colWalletStatus),
			CreatedDate:      model.ParseDate(field(row, colCreated)),
			RegistrationDate: model.ParseDate(field(row, colRegistration)),
			PayoutDate:       model.ParseDate(field(row, colPayout)),
		}

		if raw := field(row, colAmount); raw != "" {
			if amount, err := strconv.ParseFloat(raw, 64); err == nil {
				rec.Amount = amount
				rec.HasAmount = true
			}
		}

		records = append(records, rec)
	}

	return records, nil
}
