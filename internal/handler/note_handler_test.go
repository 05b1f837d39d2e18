package handler_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sams-go-api/internal/admission"
	"github.com/noah-isme/sams-go-api/internal/dto"
)

func TestNoteHandlerAddListDelete(t *testing.T) {
	env := setupTestEnv(t, "note_lifecycle")
	seedApplication(t, env, admission.StatusUnderReview, admission.ReviewDocumentsPending)

	payload := fiber.Map{"content": "called the family to chase the immunisation record"}
	resp, err := env.app.Test(jsonRequest(t, "POST", "/api/v2/admissions/applications/1/notes", payload))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data dto.NoteResponse `json:"data"`
	}
	decodeResponse(t, resp, &created)
	require.Equal(t, "general", created.Data.Category)
	require.Equal(t, "registrar@school", created.Data.Author)

	listResp, err := env.app.Test(jsonRequest(t, "GET", "/api/v2/admissions/applications/1/notes", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, listResp.StatusCode)

	var listed struct {
		Data []dto.NoteResponse `json:"data"`
	}
	decodeResponse(t, listResp, &listed)
	require.Len(t, listed.Data, 1)

	deleteResp, err := env.app.Test(jsonRequest(t, "DELETE", "/api/v2/admissions/notes/1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, deleteResp.StatusCode)

	again, err := env.app.Test(jsonRequest(t, "DELETE", "/api/v2/admissions/notes/1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, again.StatusCode)
}

func TestNoteHandlerSanitizesMarkup(t *testing.T) {
	env := setupTestEnv(t, "note_sanitize")
	seedApplication(t, env, admission.StatusUnderReview, admission.ReviewDocumentsPending)

	payload := fiber.Map{"content": "<script>alert('x')</script>meeting booked"}
	resp, err := env.app.Test(jsonRequest(t, "POST", "/api/v2/admissions/applications/1/notes", payload))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data dto.NoteResponse `json:"data"`
	}
	decodeResponse(t, resp, &created)
	require.Equal(t, "meeting booked", created.Data.Content)
}

func TestNoteHandlerRejectsEmptyAfterSanitize(t *testing.T) {
	env := setupTestEnv(t, "note_empty")
	seedApplication(t, env, admission.StatusUnderReview, admission.ReviewDocumentsPending)

	payload := fiber.Map{"content": "<script>alert('x')</script>"}
	resp, err := env.app.Test(jsonRequest(t, "POST", "/api/v2/admissions/applications/1/notes", payload))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestNoteHandlerUnknownApplication(t *testing.T) {
	env := setupTestEnv(t, "note_unknown_app")

	payload := fiber.Map{"content": "orphaned note"}
	resp, err := env.app.Test(jsonRequest(t, "POST", "/api/v2/admissions/applications/42/notes", payload))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
