package model

import "strings"

// RiskEntry is the per-person rollup of clash categories. Count is the number
// of distinct categories the person clashed in, never the number of clash rows.
type RiskEntry struct {
	GMSID      string   `json:"gms_id"`
	Names      []string `json:"names"`
	Categories []string `json:"clash_categories"`
	Count      int      `json:"num_categories"`
}

// NamesLabel joins the sorted distinct names for display.
func (e RiskEntry) NamesLabel() string {
	return strings.Join(e.Names, ", ")
}

// CategoriesLabel joins the sorted category labels for display.
func (e RiskEntry) CategoriesLabel() string {
	return strings.Join(e.Categories, ", ")
}
