package handler_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestTimetableHandlerUnavailableWithoutGenerator(t *testing.T) {
	env := setupTestEnv(t, "timetable_unavailable")

	payload := fiber.Map{
		"schoolData":  fiber.Map{"name": "Test School"},
		"settings":    fiber.Map{"periodsPerDay": 8},
		"teacherData": []fiber.Map{{"id": "T1"}},
		"subjectData": []fiber.Map{{"id": "S1"}},
		"roomData":    []fiber.Map{{"id": "R1"}},
	}

	resp, err := env.app.Test(jsonRequest(t, "POST", "/api/v2/timetable/generate", payload))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
