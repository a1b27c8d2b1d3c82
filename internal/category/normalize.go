package category

import (
	"sort"
	"strings"
)

// The source data is inconsistent about case and separators ("AQC-Attendance-AM"
// vs "aqc_attendance_am"). Each strategy normalizes differently, matching the
// dashboard it reproduces.
var (
	separatorToSpace = strings.NewReplacer("-", " ", "_", " ")
	separatorStrip   = strings.NewReplacer("-", "", "_", "")
)

// normalizeLower lowercases only. Explicit category sets list both separator
// spellings on purpose, so separators are preserved.
func normalizeLower(id string) string {
	return strings.ToLower(id)
}

// normalizeSpaced lowercases and turns separators into spaces, enabling
// suffix checks like "... silent hours am".
func normalizeSpaced(id string) string {
	return separatorToSpace.Replace(strings.ToLower(id))
}

// normalizeCompact lowercases and removes separators entirely, enabling
// substring keyword matching.
func normalizeCompact(id string) string {
	return separatorStrip.Replace(strings.ToLower(id))
}

// distinct normalizes every id with norm and returns the distinct results.
func distinct(ids []string, norm func(string) string) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[norm(id)] = struct{}{}
	}
	return out
}

// sorted returns the set's members in lexical order for deterministic output.
func sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
