package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eventvol/clashwatch/internal/category"
	"github.com/eventvol/clashwatch/internal/clash"
	"github.com/eventvol/clashwatch/internal/common"
	"github.com/eventvol/clashwatch/internal/conflict"
	"github.com/eventvol/clashwatch/internal/model"
)

// Board configures one clash dashboard: the matching strategy, the category
// table, the grouping date, and an optional approval-status pre-filter.
type Board struct {
	Name         string              `yaml:"name" json:"name"`
	Title        string              `yaml:"title" json:"title"`
	Strategy     string              `yaml:"strategy" json:"strategy"`
	DateField    model.DateField     `yaml:"date_field" json:"date_field"`
	StatusFilter string              `yaml:"status_filter,omitempty" json:"status_filter,omitempty"`
	Categories   []category.Category `yaml:"categories" json:"categories"`
}

// Validate checks the board definition against its strategy's requirements.
func (b Board) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("%w: board name must not be empty", common.ErrInvalidConfig)
	}
	if _, err := category.ForName(b.Strategy); err != nil {
		return fmt.Errorf("board %q: %w", b.Name, err)
	}
	if len(b.Categories) == 0 {
		return fmt.Errorf("%w: board %q has no categories", common.ErrInvalidConfig, b.Name)
	}
	for _, cat := range b.Categories {
		if cat.Label == "" {
			return fmt.Errorf("%w: board %q has a category without a label", common.ErrInvalidConfig, b.Name)
		}
		if b.Strategy == category.StrategyKeyword {
			if cat.Keyword == "" {
				return fmt.Errorf("%w: board %q category %q needs a keyword", common.ErrInvalidConfig, b.Name, cat.Label)
			}
		} else if len(cat.Campaigns) == 0 {
			return fmt.Errorf("%w: board %q category %q needs campaigns", common.ErrInvalidConfig, b.Name, cat.Label)
		}
	}
	return nil
}

// Detector builds the clash detector for this board.
func (b Board) Detector() (*clash.Detector, error) {
	strategy, err := category.ForName(b.Strategy)
	if err != nil {
		return nil, err
	}
	field := b.DateField
	if field == "" {
		field = model.DateCreated
	}
	return clash.NewDetector(strategy, b.Categories, field), nil
}

// Prefilter applies the board's approval-status pre-filter.
func (b Board) Prefilter(records []model.Record) []model.Record {
	if b.StatusFilter == "" {
		return records
	}
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if strings.EqualFold(r.ApprovalStatus, b.StatusFilter) {
			out = append(out, r)
		}
	}
	return out
}

// Document is the board/conflict rules file. Boards and conflict rules are
// data, not code: dashboards differ only in this table.
type Document struct {
	Boards    []Board        `yaml:"boards"`
	Conflicts conflict.Rules `yaml:"conflicts"`
}

// Board finds a configured board by name.
func (d Document) Board(name string) (Board, error) {
	for _, b := range d.Boards {
		if b.Name == name {
			return b, nil
		}
	}
	return Board{}, fmt.Errorf("%w: %q", common.ErrUnknownBoard, name)
}

// LoadDocument reads the rules document, falling back to the compiled-in
// defaults for anything the file omits. An empty path returns the defaults.
func LoadDocument(path string) (Document, error) {
	doc := DefaultDocument()
	if path == "" {
		return doc, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return Document{}, fmt.Errorf("failed to read rules file: %w", err)
	}

	var loaded Document
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Document{}, fmt.Errorf("failed to parse rules file: %w", err)
	}

	if len(loaded.Boards) > 0 {
		doc.Boards = loaded.Boards
	}
	if len(loaded.Conflicts.ExclusivePairs) > 0 || len(loaded.Conflicts.DuplicateKeywords) > 0 {
		doc.Conflicts = loaded.Conflicts
	}

	for _, b := range doc.Boards {
		if err := b.Validate(); err != nil {
			return Document{}, err
		}
	}

	return doc, nil
}
