package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/sams-go-api/internal/admission"
	"github.com/noah-isme/sams-go-api/internal/models"
	"github.com/noah-isme/sams-go-api/internal/repository"
)

func seedExportApplications(t *testing.T, repo *memoryApplicationRepo) {
	t.Helper()
	submitted := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(context.Background(), &models.Application{
		ApplicationNumber: "APP-2026-EXPORT01",
		StudentName:       "Amara Okafor",
		YearGroup:         "Year 7",
		Pathway:           admission.PathwayStandard,
		Status:            admission.StatusUnderReview,
		PriorityScore:     30,
		SubmittedAt:       &submitted,
	}))
	require.NoError(t, repo.Create(context.Background(), &models.Application{
		ApplicationNumber: "APP-2026-EXPORT02",
		StudentName:       "Dev Sharma",
		YearGroup:         "Year 9",
		Pathway:           admission.PathwayEmergency,
		Status:            admission.StatusEnrolled,
		PriorityScore:     90,
	}))
}

func TestExportServiceCSV(t *testing.T) {
	repo := newMemoryApplicationRepo()
	seedExportApplications(t, repo)
	svc := NewExportService(repo, testLogger())

	raw, err := svc.CSV(context.Background(), repository.ApplicationFilter{})
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Application Number", rows[0][0])

	byNumber := map[string][]string{rows[1][0]: rows[1], rows[2][0]: rows[2]}
	enrolled := byNumber["APP-2026-EXPORT02"]
	require.NotNil(t, enrolled)
	require.Equal(t, "Enrolled", enrolled[4])
	require.Equal(t, "6 - Welcome & Onboarding", enrolled[5])
	require.Equal(t, "90", enrolled[6])
}

func TestExportServiceCSVFiltersByStatus(t *testing.T) {
	repo := newMemoryApplicationRepo()
	seedExportApplications(t, repo)
	svc := NewExportService(repo, testLogger())

	status := "enrolled"
	raw, err := svc.CSV(context.Background(), repository.ApplicationFilter{Status: &status})
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "APP-2026-EXPORT02", rows[1][0])
}

func TestExportServiceXLSX(t *testing.T) {
	repo := newMemoryApplicationRepo()
	seedExportApplications(t, repo)
	svc := NewExportService(repo, testLogger())

	raw, err := svc.XLSX(context.Background(), repository.ApplicationFilter{})
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows("Applications")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Application Number", rows[0][0])
}
