package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventvol/clashwatch/internal/common"
	"github.com/eventvol/clashwatch/internal/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRecords() []model.Record {
	return []model.Record{
		{
			GMSID:            "g1",
			Name:             "Aisha",
			BadgeID:          "B100",
			RoleName:         "Steward",
			CampaignID:       "aqc_attendance_am",
			Amount:           25.50,
			HasAmount:        true,
			ApprovalStage:    "completed",
			ApprovalStatus:   "approved",
			WalletStatus:     "paid",
			CreatedDate:      time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
			RegistrationDate: time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
			PayoutDate:       time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			GMSID:      "g2",
			Name:       "Brooke",
			CampaignID: "wac_attendance_pm",
			// No amount, no payout date.
		},
	}
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	fetchedAt := time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)

	id, err := store.SaveSnapshot(ctx, fetchedAt, sampleRecords())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	records, at, err := store.LatestRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, fetchedAt, at.UTC())
	require.Len(t, records, 2)

	r := records[0]
	assert.Equal(t, "g1", r.GMSID)
	assert.Equal(t, "Aisha", r.Name)
	assert.True(t, r.HasAmount)
	assert.InDelta(t, 25.50, r.Amount, 0.001)
	assert.Equal(t, "2026-03-01", model.DayKey(r.CreatedDate))
	assert.Equal(t, "2026-03-05", model.DayKey(r.PayoutDate))

	r = records[1]
	assert.Equal(t, "g2", r.GMSID)
	assert.False(t, r.HasAmount, "null amount round-trips as missing")
	assert.True(t, r.PayoutDate.IsZero(), "null date round-trips as zero")
}

func TestLatestSnapshotPicksNewest(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	older := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, err := store.SaveSnapshot(ctx, older, sampleRecords()[:1])
	require.NoError(t, err)
	newestID, err := store.SaveSnapshot(ctx, newer, sampleRecords())
	require.NoError(t, err)

	snap, err := store.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, newestID, snap.ID)
	assert.Equal(t, 2, snap.RowCount)
}

func TestLatestSnapshotEmpty(t *testing.T) {
	store := testStore(t)

	_, err := store.LatestSnapshot(context.Background())
	assert.ErrorIs(t, err, common.ErrNoSnapshots)

	_, _, err = store.LatestRecords(context.Background())
	assert.ErrorIs(t, err, common.ErrNoSnapshots)
}

func TestSnapshotsList(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		at := time.Date(2026, 3, 1+i, 0, 0, 0, 0, time.UTC)
		_, err := store.SaveSnapshot(ctx, at, sampleRecords())
		require.NoError(t, err)
	}

	snaps, err := store.Snapshots(ctx)
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	assert.True(t, snaps[0].FetchedAt.After(snaps[1].FetchedAt), "newest first")
}

func TestPrune(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	var newestID string
	for i := 0; i < 5; i++ {
		at := time.Date(2026, 3, 1+i, 0, 0, 0, 0, time.UTC)
		id, err := store.SaveSnapshot(ctx, at, sampleRecords())
		require.NoError(t, err)
		newestID = id
	}

	pruned, err := store.Prune(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, pruned)

	snaps, err := store.Snapshots(ctx)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, newestID, snaps[0].ID)

	// Pruned snapshots take their records with them.
	records, err := store.SnapshotRecords(ctx, snaps[0].ID)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestPruneKeepsAtLeastOne(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	_, err := store.SaveSnapshot(ctx, time.Now().UTC(), sampleRecords())
	require.NoError(t, err)

	pruned, err := store.Prune(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, pruned)

	snaps, err := store.Snapshots(ctx)
	require.NoError(t, err)
	assert.Len(t, snaps, 1)
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.Migrate(context.Background()))
	require.NoError(t, store.Migrate(context.Background()))
}
