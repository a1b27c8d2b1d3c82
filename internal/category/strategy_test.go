package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForName(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		wantErr  bool
	}{
		{name: "explicit", strategy: StrategyExplicit},
		{name: "suffixpair", strategy: StrategySuffixPair},
		{name: "keyword", strategy: StrategyKeyword},
		{name: "unknown", strategy: "fuzzy", wantErr: true},
		{name: "empty", strategy: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ForName(tt.strategy)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.strategy, s.Name())
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantLower  string
		wantSpaced string
		wantStrip  string
	}{
		{
			name:       "mixed case and separators",
			id:         "AQC-Attendance-AM",
			wantLower:  "aqc-attendance-am",
			wantSpaced: "aqc attendance am",
			wantStrip:  "aqcattendanceam",
		},
		{
			name:       "underscores",
			id:         "aqc_attendance_am",
			wantLower:  "aqc_attendance_am",
			wantSpaced: "aqc attendance am",
			wantStrip:  "aqcattendanceam",
		},
		{
			name:       "empty",
			id:         "",
			wantLower:  "",
			wantSpaced: "",
			wantStrip:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLower, ExplicitStrategy{}.Normalize(tt.id))
			assert.Equal(t, tt.wantSpaced, SuffixPairStrategy{}.Normalize(tt.id))
			assert.Equal(t, tt.wantStrip, KeywordStrategy{}.Normalize(tt.id))
		})
	}
}

func TestNormalizeCollapsesSpellings(t *testing.T) {
	// The hyphen and underscore spellings of the same campaign are distinct
	// ids to the explicit strategy and one id to the keyword strategy.
	a, b := "airpt-attendance-am", "airpt_attendance_am"
	assert.NotEqual(t, ExplicitStrategy{}.Normalize(a), ExplicitStrategy{}.Normalize(b))
	assert.Equal(t, KeywordStrategy{}.Normalize(a), KeywordStrategy{}.Normalize(b))
	assert.Equal(t, SuffixPairStrategy{}.Normalize(a), SuffixPairStrategy{}.Normalize(b))
}
