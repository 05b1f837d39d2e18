package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/sams-go-api/internal/admission"
	"github.com/noah-isme/sams-go-api/internal/dto"
	"github.com/noah-isme/sams-go-api/internal/models"
	"github.com/noah-isme/sams-go-api/internal/repository"
)

// Sentinel errors surfaced by the assessment workflow.
var (
	ErrNotInAssessmentStage  = errors.New("application is not in the assessment stage")
	ErrAssessmentNotPassed   = errors.New("interview requires a passed assessment")
	ErrAssessmentNotRecorded = errors.New("assessment has not been recorded")
	ErrInterviewNotScheduled = errors.New("interview has not been scheduled")
)

// AssessmentService records assessment marks and the chained interview step.
type AssessmentService interface {
	SubmitMarks(ctx context.Context, applicationID uint, payload dto.AssessmentSubmitRequest, actor string) (dto.AssessmentSubmitResponse, error)
	ScheduleInterview(ctx context.Context, applicationID uint, payload dto.InterviewScheduleRequest, actor string) (dto.ApplicationResponse, error)
	SubmitInterview(ctx context.Context, applicationID uint, payload dto.InterviewSubmitRequest, actor string) (dto.ApplicationResponse, error)
}

type assessmentService struct {
	applications repository.ApplicationRepository
	events       EventService
	validator    *validator.Validate
	logger       zerolog.Logger
	now          func() time.Time
}

// NewAssessmentService constructs an AssessmentService instance.
func NewAssessmentService(appRepo repository.ApplicationRepository, events EventService, validate *validator.Validate, logger zerolog.Logger) AssessmentService {
	return &assessmentService{
		applications: appRepo,
		events:       events,
		validator:    validate,
		logger:       logger.With().Str("component", "assessment_service").Logger(),
		now:          time.Now,
	}
}

func (s *assessmentService) SubmitMarks(ctx context.Context, applicationID uint, payload dto.AssessmentSubmitRequest, actor string) (dto.AssessmentSubmitResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssessmentSubmitResponse{}, err
	}
	if strings.TrimSpace(actor) == "" {
		return dto.AssessmentSubmitResponse{}, ErrActorRequired
	}

	application, err := s.getInAssessmentStage(ctx, applicationID)
	if err != nil {
		return dto.AssessmentSubmitResponse{}, err
	}

	marks := make([]admission.SubjectMark, 0, len(payload.Marks))
	for _, entry := range payload.Marks {
		marks = append(marks, admission.SubjectMark{
			Subject:  entry.Subject,
			Marks:    entry.Marks,
			MaxMarks: entry.MaxMarks,
		})
	}

	result := admission.AggregateResult(marks)
	assessment := models.AssessmentData{
		Marks:       marks,
		Percentage:  admission.AggregatePercentage(marks),
		Result:      result,
		Comments:    strings.TrimSpace(payload.Comments),
		AssessedBy:  actor,
		CompletedAt: s.now(),
	}

	encoded, err := json.Marshal(assessment)
	if err != nil {
		return dto.AssessmentSubmitResponse{}, err
	}

	from := application.Status
	application.AssessmentData = datatypes.JSON(encoded)
	if result == admission.ResultPass {
		application.Status = admission.StatusAssessmentComplete
	} else {
		// A failed assessment short-circuits the pipeline.
		application.Status = admission.StatusRejected
	}
	application.WorkflowCompletionPercentage = admission.CompletionPercentage(application.Status)

	if err := s.applications.Update(ctx, &application); err != nil {
		return dto.AssessmentSubmitResponse{}, err
	}

	s.emitTransition(ctx, application, from, actor)

	subjects := make([]dto.SubjectMarkOutcome, 0, len(marks))
	for _, mark := range marks {
		subjects = append(subjects, dto.SubjectMarkOutcome{
			Subject:    mark.Subject,
			Marks:      mark.Marks,
			MaxMarks:   mark.MaxMarks,
			Percentage: mark.Percentage(),
			Result:     string(mark.Result()),
		})
	}

	s.logger.Info().
		Uint("application_id", applicationID).
		Str("result", string(result)).
		Float64("percentage", assessment.Percentage).
		Msg("assessment recorded")

	return dto.AssessmentSubmitResponse{
		ApplicationID: applicationID,
		Subjects:      subjects,
		Percentage:    assessment.Percentage,
		Result:        string(result),
		Status:        string(application.Status),
	}, nil
}

func (s *assessmentService) ScheduleInterview(ctx context.Context, applicationID uint, payload dto.InterviewScheduleRequest, actor string) (dto.ApplicationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ApplicationResponse{}, err
	}
	if strings.TrimSpace(actor) == "" {
		return dto.ApplicationResponse{}, ErrActorRequired
	}

	application, err := s.getInAssessmentStage(ctx, applicationID)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	assessment, ok := decodeAssessment(application)
	if !ok {
		return dto.ApplicationResponse{}, ErrAssessmentNotRecorded
	}
	if assessment.Result != admission.ResultPass {
		return dto.ApplicationResponse{}, ErrAssessmentNotPassed
	}

	scheduledAt := payload.ScheduledAt
	interview := models.InterviewData{ScheduledAt: &scheduledAt}
	encoded, err := json.Marshal(interview)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	from := application.Status
	application.InterviewData = datatypes.JSON(encoded)
	application.Status = admission.StatusInterviewScheduled
	application.WorkflowCompletionPercentage = admission.CompletionPercentage(application.Status)
	if err := s.applications.Update(ctx, &application); err != nil {
		return dto.ApplicationResponse{}, err
	}

	s.emitTransition(ctx, application, from, actor)
	s.logger.Info().Uint("application_id", applicationID).Time("scheduled_at", scheduledAt).Msg("interview scheduled")

	return dto.NewApplicationResponse(application), nil
}

func (s *assessmentService) SubmitInterview(ctx context.Context, applicationID uint, payload dto.InterviewSubmitRequest, actor string) (dto.ApplicationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ApplicationResponse{}, err
	}
	if strings.TrimSpace(actor) == "" {
		return dto.ApplicationResponse{}, ErrActorRequired
	}

	application, err := s.getInAssessmentStage(ctx, applicationID)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	assessment, ok := decodeAssessment(application)
	if !ok {
		return dto.ApplicationResponse{}, ErrAssessmentNotRecorded
	}
	if assessment.Result != admission.ResultPass {
		return dto.ApplicationResponse{}, ErrAssessmentNotPassed
	}
	if application.Status != admission.StatusInterviewScheduled {
		return dto.ApplicationResponse{}, ErrInterviewNotScheduled
	}

	var existing models.InterviewData
	_ = json.Unmarshal(application.InterviewData, &existing)

	result := admission.Result(payload.Result)
	interview := models.InterviewData{
		Result:        result,
		Comments:      strings.TrimSpace(payload.Comments),
		InterviewedBy: actor,
		ScheduledAt:   existing.ScheduledAt,
		CompletedAt:   s.now(),
	}

	encoded, err := json.Marshal(interview)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	from := application.Status
	application.InterviewData = datatypes.JSON(encoded)
	if result == admission.ResultPass {
		application.Status = admission.StatusInterviewComplete
	} else {
		application.Status = admission.StatusRejected
	}
	application.WorkflowCompletionPercentage = admission.CompletionPercentage(application.Status)

	if err := s.applications.Update(ctx, &application); err != nil {
		return dto.ApplicationResponse{}, err
	}

	s.emitTransition(ctx, application, from, actor)
	s.logger.Info().
		Uint("application_id", applicationID).
		Str("result", string(result)).
		Msg("interview recorded")

	return dto.NewApplicationResponse(application), nil
}

func (s *assessmentService) getInAssessmentStage(ctx context.Context, applicationID uint) (models.Application, error) {
	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Application{}, ErrApplicationNotFound
		}
		return models.Application{}, err
	}

	if admission.StageFor(application.Status) != 2 || admission.Terminal(application.Status) {
		return models.Application{}, ErrNotInAssessmentStage
	}
	return application, nil
}

func (s *assessmentService) emitTransition(ctx context.Context, application models.Application, from admission.Status, actor string) {
	if s.events == nil || application.Status == from {
		return
	}
	s.events.PublishStageEvent(ctx, dto.StageEvent{
		ApplicationID:     application.ID,
		ApplicationNumber: application.ApplicationNumber,
		From:              string(from),
		To:                string(application.Status),
		Actor:             actor,
		OccurredAt:        s.now(),
	})
}

func decodeAssessment(application models.Application) (models.AssessmentData, bool) {
	if len(application.AssessmentData) == 0 {
		return models.AssessmentData{}, false
	}
	var assessment models.AssessmentData
	if err := json.Unmarshal(application.AssessmentData, &assessment); err != nil {
		return models.AssessmentData{}, false
	}
	return assessment, true
}
