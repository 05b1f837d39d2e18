package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/sams-go-api/internal/admission"
	"github.com/noah-isme/sams-go-api/internal/models"
	"github.com/noah-isme/sams-go-api/internal/repository"
)

const exportSheetName = "Applications"

var exportHeader = []string{
	"Application Number",
	"Student Name",
	"Year Group",
	"Pathway",
	"Status",
	"Stage",
	"Priority Score",
	"Completion %",
	"Submitted At",
}

// ExportService renders the application register as a downloadable file.
type ExportService interface {
	CSV(ctx context.Context, filter repository.ApplicationFilter) ([]byte, error)
	XLSX(ctx context.Context, filter repository.ApplicationFilter) ([]byte, error)
}

type exportService struct {
	applications repository.ApplicationRepository
	logger       zerolog.Logger
}

// NewExportService constructs an ExportService instance.
func NewExportService(appRepo repository.ApplicationRepository, logger zerolog.Logger) ExportService {
	return &exportService{
		applications: appRepo,
		logger:       logger.With().Str("component", "export_service").Logger(),
	}
}

func (s *exportService) CSV(ctx context.Context, filter repository.ApplicationFilter) ([]byte, error) {
	applications, err := s.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, application := range applications {
		if err := writer.Write(exportRow(application)); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	s.logger.Info().Int("rows", len(applications)).Msg("csv export generated")
	return buf.Bytes(), nil
}

func (s *exportService) XLSX(ctx context.Context, filter repository.ApplicationFilter) ([]byte, error) {
	applications, err := s.fetch(ctx, filter)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	defer file.Close()

	index, err := file.NewSheet(exportSheetName)
	if err != nil {
		return nil, err
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, title := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellValue(exportSheetName, cell, title); err != nil {
			return nil, err
		}
	}

	for rowIdx, application := range applications {
		for col, value := range exportRow(application) {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := file.SetCellValue(exportSheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, err
	}

	s.logger.Info().Int("rows", len(applications)).Msg("xlsx export generated")
	return buf.Bytes(), nil
}

func (s *exportService) fetch(ctx context.Context, filter repository.ApplicationFilter) ([]models.Application, error) {
	// Exports always cover the full filtered set, not one page.
	filter.Page = 0
	filter.PageSize = 0

	applications, _, err := s.applications.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return applications, nil
}

func exportRow(application models.Application) []string {
	stage := admission.StageFor(application.Status)
	submitted := ""
	if application.SubmittedAt != nil {
		submitted = application.SubmittedAt.Format(time.RFC3339)
	}
	return []string{
		application.ApplicationNumber,
		application.StudentName,
		application.YearGroup,
		string(application.Pathway),
		admission.LabelFor(application.Status),
		fmt.Sprintf("%d - %s", stage, admission.Stages[stage].Name),
		strconv.Itoa(application.PriorityScore),
		strconv.Itoa(application.WorkflowCompletionPercentage),
		submitted,
	}
}
