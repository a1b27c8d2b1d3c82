package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventvol/clashwatch/internal/category"
	"github.com/eventvol/clashwatch/internal/common"
	"github.com/eventvol/clashwatch/internal/model"
)

func TestDefaultDocument(t *testing.T) {
	doc := DefaultDocument()

	require.Len(t, doc.Boards, 4)
	for _, b := range doc.Boards {
		assert.NoError(t, b.Validate(), "board %q", b.Name)
		_, err := b.Detector()
		assert.NoError(t, err, "board %q", b.Name)
	}

	assert.NotEmpty(t, doc.Conflicts.ExclusivePairs)
	assert.NotEmpty(t, doc.Conflicts.DuplicateKeywords)
}

func TestDefaultBoardLookup(t *testing.T) {
	doc := DefaultDocument()

	b, err := doc.Board("shift-venue")
	require.NoError(t, err)
	assert.Equal(t, category.StrategyKeyword, b.Strategy)
	assert.Equal(t, "pending", b.StatusFilter)

	_, err = doc.Board("nonexistent")
	assert.ErrorIs(t, err, common.ErrUnknownBoard)
}

func TestBoardValidate(t *testing.T) {
	tests := []struct {
		name    string
		board   Board
		wantErr bool
	}{
		{
			name: "valid explicit board",
			board: Board{
				Name:     "b",
				Strategy: category.StrategyExplicit,
				Categories: []category.Category{
					{Label: "L", Campaigns: []string{"a", "b"}},
				},
			},
		},
		{
			name: "valid keyword board",
			board: Board{
				Name:       "b",
				Strategy:   category.StrategyKeyword,
				Categories: []category.Category{{Label: "L", Keyword: "am"}},
			},
		},
		{
			name:    "missing name",
			board:   Board{Strategy: category.StrategyExplicit},
			wantErr: true,
		},
		{
			name:    "unknown strategy",
			board:   Board{Name: "b", Strategy: "bogus", Categories: []category.Category{{Label: "L"}}},
			wantErr: true,
		},
		{
			name:    "no categories",
			board:   Board{Name: "b", Strategy: category.StrategyExplicit},
			wantErr: true,
		},
		{
			name: "category without label",
			board: Board{
				Name:       "b",
				Strategy:   category.StrategyExplicit,
				Categories: []category.Category{{Campaigns: []string{"a"}}},
			},
			wantErr: true,
		},
		{
			name: "keyword category without keyword",
			board: Board{
				Name:       "b",
				Strategy:   category.StrategyKeyword,
				Categories: []category.Category{{Label: "L"}},
			},
			wantErr: true,
		},
		{
			name: "explicit category without campaigns",
			board: Board{
				Name:       "b",
				Strategy:   category.StrategyExplicit,
				Categories: []category.Category{{Label: "L"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.board.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBoardPrefilter(t *testing.T) {
	b := Board{StatusFilter: "pending"}
	records := []model.Record{
		{GMSID: "g1", ApprovalStatus: "Pending"},
		{GMSID: "g2", ApprovalStatus: "approved"},
		{GMSID: "g3", ApprovalStatus: "pending"},
	}

	out := b.Prefilter(records)
	require.Len(t, out, 2)
	assert.Equal(t, "g1", out[0].GMSID)
	assert.Equal(t, "g3", out[1].GMSID)

	// No filter passes everything through untouched.
	assert.Len(t, Board{}.Prefilter(records), 3)
}

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty path returns defaults", func(t *testing.T) {
		doc, err := LoadDocument("")
		require.NoError(t, err)
		assert.Len(t, doc.Boards, 4)
	})

	t.Run("custom boards replace defaults", func(t *testing.T) {
		path := filepath.Join(dir, "rules.yaml")
		data := `
boards:
  - name: custom
    title: Custom Board
    strategy: explicit
    date_field: created
    categories:
      - label: Venue A
        campaigns: [venue_a_am, venue_a_silent_am]
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0600))

		doc, err := LoadDocument(path)
		require.NoError(t, err)
		require.Len(t, doc.Boards, 1)
		assert.Equal(t, "custom", doc.Boards[0].Name)
		assert.Equal(t, model.DateCreated, doc.Boards[0].DateField)
		// Conflict rules keep their defaults when the file omits them.
		assert.NotEmpty(t, doc.Conflicts.DuplicateKeywords)
	})

	t.Run("invalid board rejected", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		data := `
boards:
  - name: broken
    strategy: bogus
    categories:
      - label: X
        campaigns: [a]
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0600))

		_, err := LoadDocument(path)
		assert.Error(t, err)
	})

	t.Run("unreadable file rejected", func(t *testing.T) {
		_, err := LoadDocument(filepath.Join(dir, "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml rejected", func(t *testing.T) {
		path := filepath.Join(dir, "malformed.yaml")
		require.NoError(t, os.WriteFile(path, []byte("boards: [\n"), 0600))

		_, err := LoadDocument(path)
		assert.Error(t, err)
	})
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x.db"), ExpandPath("~/x.db"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/tmp/x.db", ExpandPath("/tmp/x.db"))
	assert.Equal(t, "", ExpandPath(""))
}
