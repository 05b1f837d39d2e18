package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/sams-go-api/internal/admission"
	"github.com/noah-isme/sams-go-api/internal/dto"
	"github.com/noah-isme/sams-go-api/internal/models"
	"github.com/noah-isme/sams-go-api/internal/repository"
)

// Sentinel errors surfaced by application workflows.
var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrNotDraft            = errors.New("only draft applications can be deleted")
	ErrActorRequired       = errors.New("an authenticated actor is required")
	ErrInvalidPayload      = errors.New("invalid application payload")
)

// ApplicationService owns the application lifecycle and the generic
// stage-advance action.
type ApplicationService interface {
	Create(ctx context.Context, payload dto.ApplicationCreateRequest) (dto.ApplicationResponse, error)
	List(ctx context.Context, filter dto.ApplicationFilter) (dto.ApplicationListResponse, error)
	Get(ctx context.Context, id uint) (dto.ApplicationResponse, error)
	DeleteDraft(ctx context.Context, id uint) error
	Advance(ctx context.Context, id uint, actor string) (dto.AdvanceResponse, error)
}

type applicationService struct {
	applications repository.ApplicationRepository
	events       EventService
	validator    *validator.Validate
	logger       zerolog.Logger
	now          func() time.Time
}

// NewApplicationService constructs an ApplicationService instance.
func NewApplicationService(repo repository.ApplicationRepository, events EventService, validate *validator.Validate, logger zerolog.Logger) ApplicationService {
	return &applicationService{
		applications: repo,
		events:       events,
		validator:    validate,
		logger:       logger.With().Str("component", "application_service").Logger(),
		now:          time.Now,
	}
}

func (s *applicationService) Create(ctx context.Context, payload dto.ApplicationCreateRequest) (dto.ApplicationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ApplicationResponse{}, err
	}

	pathway := admission.Pathway(payload.Pathway)
	if err := admission.ValidatePathwayData(pathway, payload.PathwayData); err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	dateOfBirth, err := time.Parse("2006-01-02", payload.DateOfBirth)
	if err != nil {
		return dto.ApplicationResponse{}, fmt.Errorf("%w: invalid date of birth", ErrInvalidPayload)
	}

	now := s.now()
	application := models.Application{
		ApplicationNumber:            s.newApplicationNumber(now),
		SchoolID:                     payload.SchoolID,
		Status:                       admission.StatusSubmitted,
		Pathway:                      pathway,
		ReviewStageStatus:            admission.ReviewDocumentsPending,
		StudentName:                  strings.TrimSpace(payload.StudentName),
		DateOfBirth:                  dateOfBirth,
		YearGroup:                    payload.YearGroup,
		Gender:                       payload.Gender,
		Nationality:                  payload.Nationality,
		ContactName:                  payload.ContactName,
		ContactTel:                   payload.ContactTel,
		SubmittedAt:                  &now,
		WorkflowCompletionPercentage: admission.CompletionPercentage(admission.StatusSubmitted),
		PriorityScore:                admission.PriorityScore(pathway),
	}
	if len(payload.PathwayData) > 0 {
		application.AdditionalData = datatypes.JSON(payload.PathwayData)
	}

	if err := s.applications.Create(ctx, &application); err != nil {
		return dto.ApplicationResponse{}, err
	}

	s.logger.Info().
		Uint("application_id", application.ID).
		Str("application_number", application.ApplicationNumber).
		Str("pathway", string(pathway)).
		Msg("application submitted")

	return dto.NewApplicationResponse(application), nil
}

func (s *applicationService) List(ctx context.Context, filter dto.ApplicationFilter) (dto.ApplicationListResponse, error) {
	if err := s.validator.Struct(filter); err != nil {
		return dto.ApplicationListResponse{}, err
	}

	repoFilter := repository.ApplicationFilter{
		Status:    filter.Status,
		Pathway:   filter.Pathway,
		YearGroup: filter.YearGroup,
		SchoolID:  filter.SchoolID,
		Search:    filter.Search,
		Page:      filter.Page,
		PageSize:  filter.PageSize,
	}

	items, total, err := s.applications.List(ctx, repoFilter)
	if err != nil {
		return dto.ApplicationListResponse{}, err
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}

	return dto.ApplicationListResponse{
		Items:    dto.NewApplicationResponseSlice(items),
		Total:    total,
		Page:     page,
		PageSize: filter.PageSize,
	}, nil
}

func (s *applicationService) Get(ctx context.Context, id uint) (dto.ApplicationResponse, error) {
	application, err := s.getApplication(ctx, id)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}
	return dto.NewApplicationResponse(application), nil
}

func (s *applicationService) DeleteDraft(ctx context.Context, id uint) error {
	application, err := s.getApplication(ctx, id)
	if err != nil {
		return err
	}

	if !application.IsDraft() {
		return ErrNotDraft
	}

	if err := s.applications.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Uint("application_id", id).Msg("draft application deleted")
	return nil
}

func (s *applicationService) Advance(ctx context.Context, id uint, actor string) (dto.AdvanceResponse, error) {
	if strings.TrimSpace(actor) == "" {
		return dto.AdvanceResponse{}, ErrActorRequired
	}

	application, err := s.getApplication(ctx, id)
	if err != nil {
		return dto.AdvanceResponse{}, err
	}

	from := application.Status
	next, err := admission.Advance(application.GateInput())
	if err != nil {
		return dto.AdvanceResponse{}, err
	}

	application.Status = next
	application.WorkflowCompletionPercentage = admission.CompletionPercentage(next)
	if err := s.applications.Update(ctx, &application); err != nil {
		return dto.AdvanceResponse{}, err
	}

	updated, err := s.getApplication(ctx, id)
	if err != nil {
		return dto.AdvanceResponse{}, err
	}

	s.publishTransition(ctx, updated, from, actor)

	stage := admission.StageFor(updated.Status)
	return dto.AdvanceResponse{
		ApplicationID: updated.ID,
		From:          string(from),
		To:            string(updated.Status),
		Stage:         stage,
		StageName:     admission.Stages[stage].Name,
		StatusLabel:   admission.LabelFor(updated.Status),
		StatusColor:   admission.ColorFor(updated.Status),
	}, nil
}

func (s *applicationService) getApplication(ctx context.Context, id uint) (models.Application, error) {
	application, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Application{}, ErrApplicationNotFound
		}
		return models.Application{}, err
	}
	return application, nil
}

func (s *applicationService) publishTransition(ctx context.Context, application models.Application, from admission.Status, actor string) {
	if s.events == nil {
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

func (s *applicationService) newApplicationNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("APP-%d-%s", now.Year(), suffix)
}
