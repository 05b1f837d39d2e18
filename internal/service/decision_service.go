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

// Sentinel errors surfaced by the decision workflow.
var (
	ErrNotAwaitingDecision = errors.New("application is not awaiting a decision")
	ErrDecisionRecorded    = errors.New("decision has already been recorded")
)

// DecisionService records the admission decision.
type DecisionService interface {
	SubmitDecision(ctx context.Context, applicationID uint, payload dto.DecisionSubmitRequest, actor string) (dto.ApplicationResponse, error)
}

type decisionService struct {
	applications repository.ApplicationRepository
	events       EventService
	validator    *validator.Validate
	logger       zerolog.Logger
	now          func() time.Time
}

// NewDecisionService constructs a DecisionService instance.
func NewDecisionService(appRepo repository.ApplicationRepository, events EventService, validate *validator.Validate, logger zerolog.Logger) DecisionService {
	return &decisionService{
		applications: appRepo,
		events:       events,
		validator:    validate,
		logger:       logger.With().Str("component", "decision_service").Logger(),
		now:          time.Now,
	}
}

func (s *decisionService) SubmitDecision(ctx context.Context, applicationID uint, payload dto.DecisionSubmitRequest, actor string) (dto.ApplicationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ApplicationResponse{}, err
	}
	if strings.TrimSpace(actor) == "" {
		return dto.ApplicationResponse{}, ErrActorRequired
	}

	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ApplicationResponse{}, ErrApplicationNotFound
		}
		return dto.ApplicationResponse{}, err
	}

	switch application.Status {
	case admission.StatusPendingApproval, admission.StatusOnHold:
		// Awaiting the decision.
	case admission.StatusApproved, admission.StatusRejected:
		return dto.ApplicationResponse{}, ErrDecisionRecorded
	default:
		return dto.ApplicationResponse{}, ErrNotAwaitingDecision
	}

	decision := models.DecisionData{
		Decision:  admission.Decision(payload.Decision),
		Notes:     strings.TrimSpace(payload.Notes),
		DecidedBy: actor,
		DecidedAt: s.now(),
	}

	encoded, err := json.Marshal(decision)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	from := application.Status
	application.DecisionData = datatypes.JSON(encoded)
	if decision.Decision == admission.DecisionApproved {
		application.Status = admission.StatusApproved
	} else {
		application.Status = admission.StatusRejected
	}
	application.WorkflowCompletionPercentage = admission.CompletionPercentage(application.Status)

	if err := s.applications.Update(ctx, &application); err != nil {
		return dto.ApplicationResponse{}, err
	}

	if s.events != nil {
		s.events.PublishStageEvent(ctx, dto.StageEvent{
			ApplicationID:     application.ID,
			ApplicationNumber: application.ApplicationNumber,
			From:              string(from),
			To:                string(application.Status),
			Actor:             actor,
			OccurredAt:        s.now(),
		})
	}

	s.logger.Info().
		Uint("application_id", applicationID).
		Str("decision", payload.Decision).
		Msg("admission decision recorded")

	return dto.NewApplicationResponse(application), nil
}
