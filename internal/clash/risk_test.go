package clash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventvol/clashwatch/internal/model"
)

func TestAggregateRiskCountsCategoriesNotRows(t *testing.T) {
	res := &Result{
		Labels: []string{"AQC clashes", "WAC clashes"},
		Tables: map[string][]model.Record{
			"AQC clashes": {
				rec("g1", "Aisha", "aqc_attendance_am", "2026-03-01"),
				rec("g1", "Aisha", "aqc_attendance_silent_hours_am", "2026-03-01"),
				rec("g1", "Aisha", "aqc_attendance_am", "2026-03-02"),
				rec("g1", "Aisha", "aqc_attendance_silent_hours_am", "2026-03-02"),
			},
			"WAC clashes": {
				rec("g1", "Aisha", "wac_attendance_am", "2026-03-01"),
				rec("g1", "Aisha", "wac_attendance_silent_hours_am", "2026-03-01"),
			},
		},
		DateField: model.DateCreated,
	}

	entries := AggregateRisk(res)

	require.Len(t, entries, 1)
	// Six rows across two categories roll up to a count of 2.
	assert.Equal(t, 2, entries[0].Count)
	assert.Equal(t, []string{"AQC clashes", "WAC clashes"}, entries[0].Categories)
	assert.Equal(t, []string{"Aisha"}, entries[0].Names)
}

func TestAggregateRiskSortsByCountDescending(t *testing.T) {
	res := &Result{
		Labels: []string{"AQC clashes", "WAC clashes"},
		Tables: map[string][]model.Record{
			"AQC clashes": {
				rec("g1", "Aisha", "aqc_attendance_am", "2026-03-01"),
				rec("g2", "Brooke", "aqc_attendance_am", "2026-03-01"),
			},
			"WAC clashes": {
				rec("g2", "Brooke", "wac_attendance_am", "2026-03-01"),
			},
		},
		DateField: model.DateCreated,
	}

	entries := AggregateRisk(res)

	require.Len(t, entries, 2)
	assert.Equal(t, "g2", entries[0].GMSID)
	assert.Equal(t, 2, entries[0].Count)
	assert.Equal(t, "g1", entries[1].GMSID)
	assert.Equal(t, 1, entries[1].Count)
}

func TestAggregateRiskCollectsNameVariants(t *testing.T) {
	res := &Result{
		Labels: []string{"AQC clashes"},
		Tables: map[string][]model.Record{
			"AQC clashes": {
				rec("g1", "Aisha K", "aqc_attendance_am", "2026-03-01"),
				rec("g1", "Aisha Khan", "aqc_attendance_silent_hours_am", "2026-03-01"),
				rec("g1", "", "aqc_attendance_am", "2026-03-02"),
			},
		},
		DateField: model.DateCreated,
	}

	entries := AggregateRisk(res)

	require.Len(t, entries, 1)
	assert.Equal(t, []string{"Aisha K", "Aisha Khan", "Unknown"}, entries[0].Names)
	assert.Equal(t, "Aisha K, Aisha Khan, Unknown", entries[0].NamesLabel())
}

func TestAggregateRiskEmptyResult(t *testing.T) {
	res := &Result{
		Labels:    []string{"AQC clashes"},
		Tables:    map[string][]model.Record{"AQC clashes": {}},
		DateField: model.DateCreated,
	}

	entries := AggregateRisk(res)

	require.NotNil(t, entries)
	assert.Empty(t, entries)
}
