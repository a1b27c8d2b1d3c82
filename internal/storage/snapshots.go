package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eventvol/clashwatch/internal/common"
	"github.com/eventvol/clashwatch/internal/model"
)

// Snapshot is the metadata of one persisted fetch.
type Snapshot struct {
	FetchedAt time.Time `json:"fetched_at"`
	ID        string    `json:"id"`
	RowCount  int       `json:"row_count"`
}

// SaveSnapshot persists a fetched record table and returns the snapshot id.
func (s *Store) SaveSnapshot(ctx context.Context, fetchedAt time.Time, records []model.Record) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, fetched_at, row_count) VALUES (?, ?, ?)`,
		id, fetchedAt.UTC(), len(records)); err != nil {
		return "", fmt.Errorf("failed to insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO snapshot_records (
		snapshot_id, gms_id, name, badge_id, role_name, campaign_id, amount,
		approval_stage, approval_status, approval_remarks, wallet_status,
		created_date, registration_date, payout_date
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare record insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		var amount any
		if r.HasAmount {
			amount = r.Amount
		}
		if _, err := stmt.ExecContext(ctx,
			id, r.GMSID, r.Name, r.BadgeID, r.RoleName, r.CampaignID, amount,
			r.ApprovalStage, r.ApprovalStatus, r.ApprovalRemarks, r.WalletStatus,
			encodeDate(r.CreatedDate), encodeDate(r.RegistrationDate), encodeDate(r.PayoutDate),
		); err != nil {
			return "", fmt.Errorf("failed to insert snapshot record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return id, nil
}

// LatestSnapshot returns the metadata of the most recent snapshot.
func (s *Store) LatestSnapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := s.db.QueryRowContext(ctx,
		`SELECT id, fetched_at, row_count FROM snapshots ORDER BY fetched_at DESC LIMIT 1`,
	).Scan(&snap.ID, &snap.FetchedAt, &snap.RowCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, common.ErrNoSnapshots
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to query latest snapshot: %w", err)
	}
	return snap, nil
}

// LatestRecords loads the most recent snapshot's record table. It implements
// the source package's cold-start fallback.
func (s *Store) LatestRecords(ctx context.Context) ([]model.Record, time.Time, error) {
	snap, err := s.LatestSnapshot(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}

	records, err := s.SnapshotRecords(ctx, snap.ID)
	if err != nil {
		return nil, time.Time{}, err
	}

	return records, snap.FetchedAt, nil
}

// SnapshotRecords loads one snapshot's record table.
func (s *Store) SnapshotRecords(ctx context.Context, id string) ([]model.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		gms_id, name, badge_id, role_name, campaign_id, amount,
		approval_stage, approval_status, approval_remarks, wallet_status,
		created_date, registration_date, payout_date
	FROM snapshot_records WHERE snapshot_id = ? ORDER BY rowid`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.Record
	for rows.Next() {
		var (
			r       model.Record
			amount  sql.NullFloat64
			created sql.NullString
			regist  sql.NullString
			payout  sql.NullString
		)
		if err := rows.Scan(
			&r.GMSID, &r.Name, &r.BadgeID, &r.RoleName, &r.CampaignID, &amount,
			&r.ApprovalStage, &r.ApprovalStatus, &r.ApprovalRemarks, &r.WalletStatus,
			&created, &regist, &payout,
		); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot record: %w", err)
		}
		if amount.Valid {
			r.Amount = amount.Float64
			r.HasAmount = true
		}
		r.CreatedDate = decodeDate(created)
		r.RegistrationDate = decodeDate(regist)
		r.PayoutDate = decodeDate(payout)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshot records: %w", err)
	}

	return records, nil
}

// Snapshots lists snapshot metadata, newest first.
func (s *Store) Snapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, fetched_at, row_count FROM snapshots ORDER BY fetched_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.FetchedAt, &snap.RowCount); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}

	return snaps, nil
}

// Prune deletes all but the newest keep snapshots and returns how many were
// removed.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 1 {
		keep = 1
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id NOT IN (
		SELECT id FROM snapshots ORDER BY fetched_at DESC LIMIT ?
	)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}

	// Cascade deletes need foreign keys on; clear orphans explicitly since
	// the driver default leaves them off.
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM snapshot_records WHERE snapshot_id NOT IN (SELECT id FROM snapshots)`); err != nil {
		return 0, fmt.Errorf("failed to prune snapshot records: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil //nolint:nilerr // count is advisory
	}
	return int(n), nil
}

func encodeDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func decodeDate(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	return model.ParseDate(s.String)
}
