package clash

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventvol/clashwatch/internal/category"
	"github.com/eventvol/clashwatch/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func rec(gmsID, name, campaign, created string) model.Record {
	r := model.Record{GMSID: gmsID, Name: name, CampaignID: campaign}
	if created != "" {
		r.CreatedDate = day(created)
	}
	return r
}

func testDetector(t *testing.T) *Detector {
	t.Helper()
	strategy, err := category.ForName(category.StrategyExplicit)
	require.NoError(t, err)
	cats := []category.Category{
		{Label: "AQC clashes", Campaigns: []string{"aqc_attendance_am", "aqc_attendance_silent_hours_am"}},
		{Label: "WAC clashes", Campaigns: []string{"wac_attendance_am", "wac_attendance_silent_hours_am"}},
	}
	return NewDetector(strategy, cats, model.DateCreated)
}

func TestDetectSamePersonSameDay(t *testing.T) {
	d := testDetector(t)
	records := []model.Record{
		rec("g1", "Aisha", "aqc_attendance_am", "2026-03-01"),
		rec("g1", "Aisha", "aqc_attendance_silent_hours_am", "2026-03-01"),
		rec("g2", "Brooke", "aqc_attendance_am", "2026-03-01"),
	}

	res := d.Detect(records)

	rows, ok := res.Table("AQC clashes")
	require.True(t, ok)
	require.Len(t, rows, 2)
	assert.Equal(t, "g1", rows[0].GMSID)
	assert.Equal(t, "g1", rows[1].GMSID)
}

func TestDetectDifferentDaysNeverClash(t *testing.T) {
	d := testDetector(t)
	records := []model.Record{
		rec("g1", "Aisha", "aqc_attendance_am", "2026-03-01"),
		rec("g1", "Aisha", "aqc_attendance_silent_hours_am", "2026-03-02"),
	}

	res := d.Detect(records)

	assert.True(t, res.Empty())
}

func TestDetectDifferentPeopleNeverClash(t *testing.T) {
	d := testDetector(t)
	records := []model.Record{
		rec("g1", "Aisha", "aqc_attendance_am", "2026-03-01"),
		rec("g2", "Brooke", "aqc_attendance_silent_hours_am", "2026-03-01"),
	}

	res := d.Detect(records)

	assert.True(t, res.Empty())
}

func TestDetectSkipsUnparseableDates(t *testing.T) {
	d := testDetector(t)
	records := []model.Record{
		rec("g1", "Aisha", "aqc_attendance_am", ""),
		rec("g1", "Aisha", "aqc_attendance_silent_hours_am", ""),
	}

	res := d.Detect(records)

	assert.True(t, res.Empty())
}

func TestDetectAllLabelsPresent(t *testing.T) {
	d := testDetector(t)

	res := d.Detect(nil)

	assert.Equal(t, []string{"AQC clashes", "WAC clashes"}, res.Labels)
	for _, label := range res.Labels {
		rows, ok := res.Table(label)
		require.True(t, ok)
		assert.Empty(t, rows)
	}
}

func TestDetectDeterministicAndIdempotent(t *testing.T) {
	d := testDetector(t)
	records := []model.Record{
		rec("g1", "Aisha", "aqc_attendance_am", "2026-03-01"),
		rec("g2", "Brooke", "wac_attendance_am", "2026-03-01"),
		rec("g1", "Aisha", "aqc_attendance_silent_hours_am", "2026-03-01"),
		rec("g2", "Brooke", "wac_attendance_silent_hours_am", "2026-03-01"),
		rec("g3", "Chen", "aqc_attendance_am", "2026-03-02"),
	}

	first := d.Detect(records)
	for i := 0; i < 5; i++ {
		again := d.Detect(records)
		assert.Equal(t, first.Tables, again.Tables)
	}
}

func TestDetectRowOrderFollowsInput(t *testing.T) {
	d := testDetector(t)
	records := []model.Record{
		rec("g2", "Brooke", "aqc_attendance_silent_hours_am", "2026-03-01"),
		rec("g1", "Aisha", "aqc_attendance_am", "2026-03-01"),
		rec("g2", "Brooke", "aqc_attendance_am", "2026-03-01"),
		rec("g1", "Aisha", "aqc_attendance_silent_hours_am", "2026-03-01"),
	}

	rows, _ := d.Detect(records).Table("AQC clashes")

	require.Len(t, rows, 4)
	assert.Equal(t, []string{"g2", "g1", "g2", "g1"},
		[]string{rows[0].GMSID, rows[1].GMSID, rows[2].GMSID, rows[3].GMSID})
}

func TestResultFiltered(t *testing.T) {
	d := testDetector(t)
	records := []model.Record{
		rec("g1", "Aisha", "aqc_attendance_am", "2026-03-01"),
		rec("g1", "Aisha", "aqc_attendance_silent_hours_am", "2026-03-01"),
		rec("g2", "Brooke", "aqc_attendance_am", "2026-03-05"),
		rec("g2", "Brooke", "aqc_attendance_silent_hours_am", "2026-03-05"),
	}

	res := d.Detect(records)
	filtered := res.Filtered(Filter{Start: day("2026-03-04")})

	rows, _ := filtered.Table("AQC clashes")
	require.Len(t, rows, 2)
	assert.Equal(t, "g2", rows[0].GMSID)

	// The original result is untouched.
	original, _ := res.Table("AQC clashes")
	assert.Len(t, original, 4)
}

func TestResultSummary(t *testing.T) {
	d := testDetector(t)
	records := []model.Record{
		// Two AQC clash groups.
		rec("g1", "Aisha", "aqc_attendance_am", "2026-03-01"),
		rec("g1", "Aisha", "aqc_attendance_silent_hours_am", "2026-03-01"),
		rec("g2", "Brooke", "aqc_attendance_am", "2026-03-02"),
		rec("g2", "Brooke", "aqc_attendance_silent_hours_am", "2026-03-02"),
		// One WAC clash group.
		rec("g3", "Chen", "wac_attendance_am", "2026-03-01"),
		rec("g3", "Chen", "wac_attendance_silent_hours_am", "2026-03-01"),
	}

	summary := d.Detect(records).Summary()

	require.Len(t, summary, 2)
	// Ascending by clash count.
	assert.Equal(t, CategoryCount{Label: "WAC clashes", Clashes: 1}, summary[0])
	assert.Equal(t, CategoryCount{Label: "AQC clashes", Clashes: 2}, summary[1])
}
