package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sams-go-api/internal/dto"
	"github.com/noah-isme/sams-go-api/pkg/timetable"
)

func timetableRequest() dto.TimetableGenerateRequest {
	return dto.TimetableGenerateRequest{
		SchoolData:  json.RawMessage(`{"name":"Test School"}`),
		Settings:    json.RawMessage(`{"periods_per_day":6}`),
		TeacherData: json.RawMessage(`[{"id":1}]`),
		SubjectData: json.RawMessage(`[{"id":1}]`),
		RoomData:    json.RawMessage(`[{"id":1}]`),
	}
}

func newTimetableService(t *testing.T, handler http.HandlerFunc) TimetableService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := timetable.NewClient(timetable.Config{
		FunctionURL: server.URL,
		APIKey:      "test-key",
		Timeout:     5 * time.Second,
	})
	require.NoError(t, err)
	return NewTimetableService(client, validator.New(validator.WithRequiredStructEnabled()), testLogger())
}

func TestTimetableServiceGenerate(t *testing.T) {
	svc := newTimetableService(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var payload map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Contains(t, payload, "schoolData")

		_, _ = w.Write([]byte(`{"success":true,"data":{"timetable":{"monday":[]},"stats":{"score":0.92}}}`))
	})

	resp, err := svc.Generate(context.Background(), timetableRequest())
	require.NoError(t, err)
	require.JSONEq(t, `{"monday":[]}`, string(resp.Timetable))
	require.JSONEq(t, `{"score":0.92}`, string(resp.Stats))
}

func TestTimetableServiceGeneratorFailure(t *testing.T) {
	svc := newTimetableService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"infeasible constraints"}`))
	})

	_, err := svc.Generate(context.Background(), timetableRequest())
	require.Error(t, err)
	require.Contains(t, err.Error(), "infeasible constraints")
}

func TestTimetableServiceRejectsIncompletePayload(t *testing.T) {
	svc := newTimetableService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("generator must not be called for invalid payloads")
	})

	payload := timetableRequest()
	payload.TeacherData = nil
	_, err := svc.Generate(context.Background(), payload)
	require.Error(t, err)
}

func TestTimetableServiceUnconfigured(t *testing.T) {
	svc := NewTimetableService(nil, validator.New(validator.WithRequiredStructEnabled()), testLogger())

	_, err := svc.Generate(context.Background(), timetableRequest())
	require.ErrorIs(t, err, ErrGeneratorUnavailable)
}
