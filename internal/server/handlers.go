package server

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/eventvol/clashwatch/internal/clash"
	"github.com/eventvol/clashwatch/internal/common"
	"github.com/eventvol/clashwatch/internal/model"
	"github.com/eventvol/clashwatch/internal/report"
)

// parseFilter builds the shared record filter from query parameters:
// start/end (inclusive YYYY-MM-DD) plus repeatable gms_id, name, campaign.
func parseFilter(c *fiber.Ctx) (clash.Filter, error) {
	var f clash.Filter

	if start := c.Query("start"); start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid start date %q", start))
		}
		f.Start = t
	}
	if end := c.Query("end"); end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid end date %q", end))
		}
		f.End = t
	}

	f.GMSIDs = queryList(c, "gms_id")
	f.Names = queryList(c, "name")
	f.Campaigns = queryList(c, "campaign")

	return f, nil
}

func queryList(c *fiber.Ctx, key string) []string {
	var out []string
	for _, v := range c.Context().QueryArgs().PeekMulti(key) {
		if len(v) > 0 {
			out = append(out, string(v))
		}
	}
	return out
}

func (s *Server) records(c *fiber.Ctx) ([]model.Record, error) {
	records, err := s.cache.Records(c.Context())
	if err != nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	}
	return records, nil
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":     "ok",
		"rows":       s.cache.Len(),
		"fetched_at": s.cache.FetchedAt(),
	})
}

func (s *Server) handleRecords(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return err
	}
	records, err := s.records(c)
	if err != nil {
		return err
	}

	rows := f.Apply(records, model.DateCreated)
	if rows == nil {
		rows = []model.Record{}
	}
	return c.JSON(fiber.Map{"rows": rows, "count": len(rows)})
}

func (s *Server) handleBoards(c *fiber.Ctx) error {
	type boardInfo struct {
		Name     string `json:"name"`
		Title    string `json:"title"`
		Strategy string `json:"strategy"`
	}
	boards := make([]boardInfo, 0, len(s.doc.Boards))
	for _, b := range s.doc.Boards {
		boards = append(boards, boardInfo{Name: b.Name, Title: b.Title, Strategy: b.Strategy})
	}
	return c.JSON(fiber.Map{"boards": boards})
}

// detect runs one board's full pipeline: prefilter, detect, filter.
func (s *Server) detect(c *fiber.Ctx, boardName string, f clash.Filter) (*clash.Result, error) {
	board, err := s.doc.Board(boardName)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	detector, err := board.Detector()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	records, err := s.records(c)
	if err != nil {
		return nil, err
	}

	return detector.Detect(board.Prefilter(records)).Filtered(f), nil
}

func (s *Server) handleClashes(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return err
	}

	result, err := s.detect(c, c.Params("board"), f)
	if err != nil {
		return err
	}

	type categoryTable struct {
		Label string         `json:"label"`
		Rows  []model.Record `json:"rows"`
	}
	tables := make([]categoryTable, 0, len(result.Labels))
	for _, label := range result.Labels {
		rows := result.Tables[label]
		if rows == nil {
			rows = []model.Record{}
		}
		tables = append(tables, categoryTable{Label: label, Rows: rows})
	}

	return c.JSON(fiber.Map{
		"board":      c.Params("board"),
		"summary":    result.Summary(),
		"categories": tables,
		"empty":      result.Empty(),
	})
}

func (s *Server) handleRisk(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return err
	}

	result, err := s.detect(c, c.Params("board"), f)
	if err != nil {
		return err
	}

	entries := clash.AggregateRisk(result)
	resp := fiber.Map{"board": c.Params("board"), "entries": entries}
	if len(entries) == 0 {
		// Computed successfully with nothing to report; distinct from the
		// 503 the handlers return when the source is unavailable.
		resp["message"] = "No high-risk GMS IDs found in the selected range."
	}
	return c.JSON(resp)
}

func (s *Server) handleConflicts(c *fiber.Ctx) error {
	records, err := s.records(c)
	if err != nil {
		return err
	}

	conflicts := s.classifier.Detect(records)
	if name := c.Query("name"); name != "" {
		filtered := conflicts[:0:0]
		for _, conf := range conflicts {
			if conf.Name == name {
				filtered = append(filtered, conf)
			}
		}
		conflicts = filtered
	}
	if conflicts == nil {
		conflicts = []model.Conflict{}
	}

	return c.JSON(fiber.Map{"conflicts": conflicts, "count": len(conflicts)})
}

func (s *Server) handlePersonDays(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid person name")
	}

	f, err := parseFilter(c)
	if err != nil {
		return err
	}
	records, err := s.records(c)
	if err != nil {
		return err
	}

	days := report.PersonDays(records, name, f)
	resp := fiber.Map{"name": name, "days": days}
	if len(days) == 0 {
		resp["message"] = "No shifts found for the selected criteria."
	}
	return c.JSON(resp)
}

func (s *Server) handleTrend(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return err
	}
	records, err := s.records(c)
	if err != nil {
		return err
	}

	interval := report.ParseInterval(c.Query("interval"))
	return c.JSON(fiber.Map{
		"interval": interval,
		"points":   report.Trend(records, f, interval),
	})
}

func (s *Server) handleTally(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return err
	}
	records, err := s.records(c)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"tallies": report.AccountTally(records, f)})
}

func (s *Server) handleManpower(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return err
	}
	records, err := s.records(c)
	if err != nil {
		return err
	}

	counts, total := report.ManpowerByRole(records, f)
	return c.JSON(fiber.Map{"roles": counts, "total_unique_people": total})
}

func (s *Server) handleRejected(c *fiber.Ctx) error {
	f, err := parseFilter(c)
	if err != nil {
		return err
	}
	records, err := s.records(c)
	if err != nil {
		return err
	}

	rows, totals := report.RejectionSummary(records, f)
	return c.JSON(fiber.Map{"rows": rows, "totals": totals})
}

// handleRefresh is the operational forced-refresh endpoint. A fetch failure
// surfaces here; the previously cached table stays intact either way.
func (s *Server) handleRefresh(c *fiber.Ctx) error {
	if err := s.cache.Refresh(c.Context()); err != nil {
		if errors.Is(err, common.ErrSourceUnavailable) {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"status":     "refreshed",
		"rows":       s.cache.Len(),
		"fetched_at": s.cache.FetchedAt(),
	})
}
