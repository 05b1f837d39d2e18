package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sams-go-api/internal/config"
	"github.com/noah-isme/sams-go-api/internal/database"
	"github.com/noah-isme/sams-go-api/internal/handler"
	"github.com/noah-isme/sams-go-api/internal/middleware"
	"github.com/noah-isme/sams-go-api/internal/models"
	"github.com/noah-isme/sams-go-api/internal/repository"
	"github.com/noah-isme/sams-go-api/internal/router"
	"github.com/noah-isme/sams-go-api/internal/service"
	cloud "github.com/noah-isme/sams-go-api/pkg/cloudinary"
	"github.com/noah-isme/sams-go-api/pkg/timetable"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Application{}, &models.ApplicationDocument{}, &models.ApplicationNote{}, &models.Communication{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	defer natsConn.Close()

	store, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	var timetableClient *timetable.Client
	if cfg.TimetableFunctionURL != "" {
		timetableClient, err = timetable.NewClient(timetable.Config{
			FunctionURL: cfg.TimetableFunctionURL,
			APIKey:      cfg.TimetableAPIKey,
			Timeout:     cfg.TimetableTimeout,
			Logger:      logger,
		})
		if err != nil {
			log.Fatalf("failed to create timetable client: %v", err)
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	applicationRepo := repository.NewApplicationRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	communicationRepo := repository.NewCommunicationRepository(db)

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eventService := service.NewEventService(natsConn, cfg.EventSubject, logger)
	eventService.Start(shutdownCtx)

	applicationService := service.NewApplicationService(applicationRepo, eventService, validate, logger)
	documentService := service.NewDocumentService(documentRepo, applicationRepo, store, validate, logger)
	reviewService := service.NewReviewService(applicationRepo, validate, logger)
	assessmentService := service.NewAssessmentService(applicationRepo, eventService, validate, logger)
	decisionService := service.NewDecisionService(applicationRepo, eventService, validate, logger)
	enrollmentService := service.NewEnrollmentService(applicationRepo, communicationRepo, eventService, validate, logger)
	noteService := service.NewNoteService(noteRepo, applicationRepo, validate, logger)
	pipelineService := service.NewPipelineService(applicationRepo, redisClient, cfg.PipelineCacheTTL, logger)
	exportService := service.NewExportService(applicationRepo, logger)
	timetableService := service.NewTimetableService(timetableClient, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ApplicationHandler: handler.NewApplicationHandler(applicationService, validate, logger),
		StageHandler:       handler.NewStageHandler(reviewService, assessmentService, decisionService, enrollmentService, validate, logger),
		DocumentHandler:    handler.NewDocumentHandler(documentService, validate, logger),
		NoteHandler:        handler.NewNoteHandler(noteService, validate, logger),
		PipelineHandler:    handler.NewPipelineHandler(pipelineService, exportService, logger),
		EventsHandler:      handler.NewEventsHandler(eventService, logger),
		TimetableHandler:   handler.NewTimetableHandler(timetableService, validate, logger),
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
