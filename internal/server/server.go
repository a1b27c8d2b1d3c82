// Package server exposes the derived tables over HTTP as row-oriented JSON.
// It is a thin boundary: every endpoint returns tabular data for a display
// sink to render, never markup.
package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/eventvol/clashwatch/internal/config"
	"github.com/eventvol/clashwatch/internal/conflict"
	"github.com/eventvol/clashwatch/internal/source"
)

// Server wires the record cache and rule document to the HTTP routes.
type Server struct {
	app        *fiber.App
	cache      *source.Cache
	doc        config.Document
	classifier *conflict.Classifier
}

// New creates the HTTP server and registers all routes.
func New(cache *source.Cache, doc config.Document) *Server {
	s := &Server{
		cache:      cache,
		doc:        doc,
		classifier: conflict.NewClassifier(doc.Conflicts),
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "clashwatch",
		ErrorHandler: errorHandler,
	})

	s.routes()

	return s
}

func (s *Server) routes() {
	s.app.Get("/healthz", s.handleHealth)

	api := s.app.Group("/api")
	api.Get("/records", s.handleRecords)
	api.Get("/boards", s.handleBoards)
	api.Get("/boards/:board/clashes", s.handleClashes)
	api.Get("/boards/:board/risk", s.handleRisk)
	api.Get("/conflicts", s.handleConflicts)
	api.Get("/people/:name/days", s.handlePersonDays)
	api.Get("/reports/trend", s.handleTrend)
	api.Get("/reports/tally", s.handleTally)
	api.Get("/reports/manpower", s.handleManpower)
	api.Get("/reports/rejected", s.handleRejected)
	api.Post("/refresh", s.handleRefresh)
}

// Listen serves HTTP on the given address until Shutdown.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
