package config

import (
	"github.com/eventvol/clashwatch/internal/category"
	"github.com/eventvol/clashwatch/internal/conflict"
	"github.com/eventvol/clashwatch/internal/model"
)

// DefaultDocument returns the production board and conflict rule tables.
// Campaign ids are listed exactly as they appear in the export, including the
// mixed "-"/"_" spellings.
func DefaultDocument() Document {
	return Document{
		Boards: []Board{
			{
				Name:      "campaign",
				Title:     "Campaign Clashes",
				Strategy:  category.StrategyExplicit,
				DateField: model.DateCreated,
				Categories: []category.Category{
					{Label: "AQC clashes", Campaigns: []string{
						"aqc_attendance_am", "aqc_attendance_silent_hours_am",
					}},
					{Label: "WAC clashes", Campaigns: []string{
						"wac_attendance_am", "wac_attendance_silent_hours_am",
					}},
					{Label: "Khall clashes", Campaigns: []string{
						"khall_attendance_am", "khall_attendance_silent_hours_am",
					}},
					{Label: "Airpt clashes", Campaigns: []string{
						"airpt_attendance_am", "airpt_attendance_silent_hours_am", "airpt-attendance-am",
					}},
				},
			},
			{
				Name:      "shift",
				Title:     "Shift Timing Clashes",
				Strategy:  category.StrategyExplicit,
				DateField: model.DateCreated,
				Categories: []category.Category{
					{Label: "Silent Hours AM", Campaigns: []string{
						"aqc_attendance_silent_hours_am",
						"wac_attendance_silent_hours_am",
						"khall_attendance_silent_hours_am",
						"sen_attendance_silent_hours_am",
						"airpt_attendance_silent_hours_am",
					}},
					{Label: "AM", Campaigns: []string{
						"aqc_attendance_am",
						"wac_attendance_am",
						"khall_attendance_am",
						"itee_attendance_am",
						"nexus_attendance_am",
						"oth-attendance-am",
						"congr-attendance-am",
						"oc-attendance-am",
						"hotel1_attendance_am",
						"hotel2_attendance_am",
						"hotel3_attendance_am",
						"airpt-attendance-am",
					}},
					{Label: "PM", Campaigns: []string{
						"aqc_attendance_pm",
						"wac_attendance_pm",
						"khall_attendance_pm",
						"itee_attendance_pm",
						"nexus_attendance_pm",
						"oth-attendance-pm",
						"congr-attendance-pm",
						"oc-attendance-pm",
						"hotel1_attendance_pm",
						"hotel2_attendance_pm",
						"hotel3_attendance_pm",
						"airpt-attendance-pm",
					}},
					{Label: "Silent Hour 11pm - 7am", Campaigns: []string{
						"aqc_attendance_silent_hour_11pm_7am",
						"wac_attendance_silent_hour_11pm_7am",
						"khall_attendance_silent_hour_11pm_7am",
						"airpt_attendance_silent_hour_11pm_7am",
					}},
				},
			},
			{
				Name:         "campaign-venue",
				Title:        "Campaign Clashes (Venue Manager Version)",
				Strategy:     category.StrategySuffixPair,
				DateField:    model.DateCreated,
				StatusFilter: "pending",
				Categories: []category.Category{
					{Label: "AQC clashes", Campaigns: []string{
						"aqc_attendance_am", "aqc_attendance_silent_hours_am",
					}},
					{Label: "WAC clashes", Campaigns: []string{
						"wac_attendance_am", "wac_attendance_silent_hours_am",
					}},
					{Label: "Khall clashes", Campaigns: []string{
						"khall_attendance_am", "khall_attendance_silent_hours_am",
					}},
					{Label: "Airpt clashes", Campaigns: []string{
						"airpt_attendance_am", "airpt_attendance_silent_hours_am", "airpt-attendance-am",
					}},
				},
			},
			{
				Name:         "shift-venue",
				Title:        "Shift Timing Clashes (Venue Manager Version)",
				Strategy:     category.StrategyKeyword,
				DateField:    model.DateCreated,
				StatusFilter: "pending",
				// More specific keywords first; order is the claim priority.
				Categories: []category.Category{
					{Label: "Silent Hour 11pm - 7am", Keyword: "silenthour11pm7am"},
					{Label: "Silent Hours AM", Keyword: "silenthoursam"},
					{Label: "AM", Keyword: "attendanceam"},
					{Label: "PM", Keyword: "attendancepm"},
				},
			},
		},
		Conflicts: conflict.DefaultRules(),
	}
}
