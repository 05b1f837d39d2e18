package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/sams-go-api/internal/config"
	"github.com/noah-isme/sams-go-api/internal/handler"
	"github.com/noah-isme/sams-go-api/internal/middleware"
	"github.com/noah-isme/sams-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ApplicationHandler *handler.ApplicationHandler
	StageHandler       *handler.StageHandler
	DocumentHandler    *handler.DocumentHandler
	NoteHandler        *handler.NoteHandler
	PipelineHandler    *handler.PipelineHandler
	EventsHandler      *handler.EventsHandler
	TimetableHandler   *handler.TimetableHandler
	JWTMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	staffOnly := middleware.RequireRole("admin", "registrar")

	admissions := app.Group("/api/v2/admissions", jwtMiddleware)

	// Applications (lifecycle, per-stage actions, documents, notes)
	if deps.ApplicationHandler != nil {
		applicationGroup := admissions.Group("/applications")
		deps.ApplicationHandler.Register(applicationGroup)

		if deps.StageHandler != nil {
			stageGroup := admissions.Group("/applications", staffOnly)
			deps.StageHandler.Register(stageGroup)
		}

		if deps.DocumentHandler != nil {
			documentGroup := admissions.Group("/documents", staffOnly)
			uploadLimit := middleware.RateLimit("document-upload", 30, time.Minute)
			deps.DocumentHandler.Register(applicationGroup, documentGroup, uploadLimit)
		}

		if deps.NoteHandler != nil {
			noteGroup := admissions.Group("/notes", staffOnly)
			deps.NoteHandler.Register(applicationGroup, noteGroup)
		}
	}

	// Pipeline dashboard (stats & exports)
	if deps.PipelineHandler != nil {
		pipelineGroup := admissions.Group("/pipeline")
		deps.PipelineHandler.Register(pipelineGroup)
	}

	// Stage event stream
	if deps.EventsHandler != nil {
		eventsGroup := admissions.Group("/events")
		deps.EventsHandler.Register(eventsGroup)
	}

	// Timetable generation
	if deps.TimetableHandler != nil {
		timetableGroup := app.Group("/api/v2/timetable", jwtMiddleware, staffOnly)
		timetableGroup.Use(middleware.RateLimit("timetable", 5, time.Minute))
		deps.TimetableHandler.Register(timetableGroup)
	}
}
