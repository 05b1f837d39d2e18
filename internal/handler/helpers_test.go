package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/sams-go-api/internal/config"
	"github.com/noah-isme/sams-go-api/internal/dto"
	"github.com/noah-isme/sams-go-api/internal/handler"
	"github.com/noah-isme/sams-go-api/internal/models"
	"github.com/noah-isme/sams-go-api/internal/repository"
	"github.com/noah-isme/sams-go-api/internal/router"
	"github.com/noah-isme/sams-go-api/internal/service"
)

// testEnv bundles the wired application with direct repository access so
// tests can seed pipeline states that are otherwise multi-step to reach.
type testEnv struct {
	app          *fiber.App
	db           *gorm.DB
	applications repository.ApplicationRepository
	documents    repository.DocumentRepository
	events       service.EventService
}

func setupTestEnv(t *testing.T, name string) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Application{}, &models.ApplicationDocument{}, &models.ApplicationNote{}, &models.Communication{}))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	applicationRepo := repository.NewApplicationRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	communicationRepo := repository.NewCommunicationRepository(db)

	eventService := service.NewEventService(nil, "", logger)
	store := &testDocumentStore{}

	applicationService := service.NewApplicationService(applicationRepo, eventService, validate, logger)
	documentService := service.NewDocumentService(documentRepo, applicationRepo, store, validate, logger)
	reviewService := service.NewReviewService(applicationRepo, validate, logger)
	assessmentService := service.NewAssessmentService(applicationRepo, eventService, validate, logger)
	decisionService := service.NewDecisionService(applicationRepo, eventService, validate, logger)
	enrollmentService := service.NewEnrollmentService(applicationRepo, communicationRepo, eventService, validate, logger)
	noteService := service.NewNoteService(noteRepo, applicationRepo, validate, logger)
	pipelineService := service.NewPipelineService(applicationRepo, nil, 0, logger)
	exportService := service.NewExportService(applicationRepo, logger)
	timetableService := service.NewTimetableService(nil, validate, logger)

	app := fiber.New()

	router.Register(app, config.Config{AppName: "Test", JWTSecret: "secret"}, router.Dependencies{
		ApplicationHandler: handler.NewApplicationHandler(applicationService, validate, logger),
		StageHandler:       handler.NewStageHandler(reviewService, assessmentService, decisionService, enrollmentService, validate, logger),
		DocumentHandler:    handler.NewDocumentHandler(documentService, validate, logger),
		NoteHandler:        handler.NewNoteHandler(noteService, validate, logger),
		PipelineHandler:    handler.NewPipelineHandler(pipelineService, exportService, logger),
		EventsHandler:      handler.NewEventsHandler(eventService, logger),
		TimetableHandler:   handler.NewTimetableHandler(timetableService, validate, logger),
		JWTMiddleware: func(c *fiber.Ctx) error {
			c.Locals("actor", "registrar@school")
			c.Locals("user_role", "registrar")
			return c.Next()
		},
	})

	return &testEnv{
		app:          app,
		db:           db,
		applications: applicationRepo,
		documents:    documentRepo,
		events:       eventService,
	}
}

type testDocumentStore struct{}

func (t *testDocumentStore) Upload(_ context.Context, path string, _ io.Reader) (string, error) {
	return "https://cdn.example.com/" + path, nil
}

func (t *testDocumentStore) SignedURL(path string, _ time.Duration) (string, error) {
	return "https://cdn.example.com/signed/" + path, nil
}

func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(data, target))
}

// createApplication submits a standard-pathway application through the API
// and returns its decoded response.
func createApplication(t *testing.T, env *testEnv) dto.ApplicationResponse {
	t.Helper()

	payload := fiber.Map{
		"school_id":     "SCH-001",
		"pathway":       "standard",
		"student_name":  "Adaeze Okafor",
		"date_of_birth": "2014-03-09",
		"year_group":    "Year 7",
		"contact_name":  "Ngozi Okafor",
		"contact_tel":   "+2348012345678",
		"pathway_data": fiber.Map{
			"mother_name":     "Ngozi Okafor",
			"previous_school": "Hillside Primary",
		},
	}

	resp, err := env.app.Test(jsonRequest(t, "POST", "/api/v2/admissions/applications", payload))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Success bool                    `json:"success"`
		Data    dto.ApplicationResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.NotZero(t, body.Data.ID)
	return body.Data
}

func buildUploadRequest(t *testing.T, target, documentType, filename string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("document_type", documentType))
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func pngHeader() []byte {
	return []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
}
