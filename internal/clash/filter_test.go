package clash

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eventvol/clashwatch/internal/model"
)

func TestFilterMatch(t *testing.T) {
	r := rec("g1", "Aisha", "aqc_attendance_am", "2026-03-05")

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{name: "zero filter matches everything", filter: Filter{}, want: true},
		{name: "inside window", filter: Filter{Start: day("2026-03-01"), End: day("2026-03-10")}, want: true},
		{name: "start is inclusive", filter: Filter{Start: day("2026-03-05")}, want: true},
		{name: "end is inclusive", filter: Filter{End: day("2026-03-05")}, want: true},
		{name: "before window", filter: Filter{Start: day("2026-03-06")}, want: false},
		{name: "after window", filter: Filter{End: day("2026-03-04")}, want: false},
		{name: "gms id match", filter: Filter{GMSIDs: []string{"g9", "g1"}}, want: true},
		{name: "gms id mismatch", filter: Filter{GMSIDs: []string{"g9"}}, want: false},
		{name: "name match", filter: Filter{Names: []string{"Aisha"}}, want: true},
		{name: "name mismatch", filter: Filter{Names: []string{"Brooke"}}, want: false},
		{name: "campaign match", filter: Filter{Campaigns: []string{"aqc_attendance_am"}}, want: true},
		{name: "campaign mismatch", filter: Filter{Campaigns: []string{"wac_attendance_am"}}, want: false},
		{
			name:   "all fields conjunctive",
			filter: Filter{Start: day("2026-03-01"), GMSIDs: []string{"g1"}, Names: []string{"Brooke"}},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(r, model.DateCreated))
		})
	}
}

func TestFilterZeroDateFailsWindow(t *testing.T) {
	r := rec("g1", "Aisha", "aqc_attendance_am", "")

	assert.False(t, Filter{Start: day("2026-03-01")}.Match(r, model.DateCreated))
	assert.False(t, Filter{End: day("2026-03-01")}.Match(r, model.DateCreated))
	// Without a window the zero date is irrelevant.
	assert.True(t, Filter{GMSIDs: []string{"g1"}}.Match(r, model.DateCreated))
}

func TestFilterApplyPreservesOrder(t *testing.T) {
	records := []model.Record{
		rec("g1", "Aisha", "aqc_attendance_am", "2026-03-01"),
		rec("g2", "Brooke", "aqc_attendance_am", "2026-03-02"),
		rec("g3", "Chen", "aqc_attendance_am", "2026-03-03"),
	}

	out := Filter{Start: day("2026-03-02")}.Apply(records, model.DateCreated)

	assert.Len(t, out, 2)
	assert.Equal(t, "g2", out[0].GMSID)
	assert.Equal(t, "g3", out[1].GMSID)
}
