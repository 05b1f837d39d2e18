package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
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

// Sentinel errors surfaced by the enrollment workflow.
var (
	ErrNotAwaitingEnrollment = errors.New("application is not awaiting enrollment confirmation")
	ErrNotEnrolled           = errors.New("application has not reached onboarding")
	ErrNoContactOnFile       = errors.New("application has no contact details on file")
)

// EnrollmentService confirms enrollment and runs onboarding side actions.
type EnrollmentService interface {
	ConfirmEnrollment(ctx context.Context, applicationID uint, payload dto.EnrollmentConfirmRequest, actor string) (dto.ApplicationResponse, error)
	SendWelcomeEmail(ctx context.Context, applicationID uint, actor string) (dto.WelcomeEmailResponse, error)
}

type enrollmentService struct {
	applications   repository.ApplicationRepository
	communications repository.CommunicationRepository
	events         EventService
	validator      *validator.Validate
	logger         zerolog.Logger
	now            func() time.Time
}

// NewEnrollmentService constructs an EnrollmentService instance.
func NewEnrollmentService(appRepo repository.ApplicationRepository, commRepo repository.CommunicationRepository, events EventService, validate *validator.Validate, logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		applications:   appRepo,
		communications: commRepo,
		events:         events,
		validator:      validate,
		logger:         logger.With().Str("component", "enrollment_service").Logger(),
		now:            time.Now,
	}
}

func (s *enrollmentService) ConfirmEnrollment(ctx context.Context, applicationID uint, payload dto.EnrollmentConfirmRequest, actor string) (dto.ApplicationResponse, error) {
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

	if application.Status != admission.StatusOfferAccepted && application.Status != admission.StatusCommitted {
		return dto.ApplicationResponse{}, ErrNotAwaitingEnrollment
	}

	enrollment := models.EnrollmentData{
		StudentID:   strings.TrimSpace(payload.StudentID),
		StartDate:   strings.TrimSpace(payload.StartDate),
		FormClass:   strings.TrimSpace(payload.FormClass),
		House:       strings.TrimSpace(payload.House),
		ConfirmedBy: actor,
		ConfirmedAt: s.now(),
	}
	if !enrollment.Details().Complete() {
		return dto.ApplicationResponse{}, admission.ErrEnrollmentPending
	}

	encoded, err := json.Marshal(enrollment)
	if err != nil {
		return dto.ApplicationResponse{}, err
	}

	from := application.Status
	application.EnrollmentData = datatypes.JSON(encoded)
	application.Status = admission.StatusEnrolled
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
		Str("student_id", enrollment.StudentID).
		Msg("enrollment confirmed")

	return dto.NewApplicationResponse(application), nil
}

func (s *enrollmentService) SendWelcomeEmail(ctx context.Context, applicationID uint, actor string) (dto.WelcomeEmailResponse, error) {
	if strings.TrimSpace(actor) == "" {
		return dto.WelcomeEmailResponse{}, ErrActorRequired
	}

	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.WelcomeEmailResponse{}, ErrApplicationNotFound
		}
		return dto.WelcomeEmailResponse{}, err
	}

	if application.Status != admission.StatusEnrolled && application.Status != admission.StatusOnboarding {
		return dto.WelcomeEmailResponse{}, ErrNotEnrolled
	}

	recipient := ""
	if application.ContactName != nil {
		recipient = *application.ContactName
	}
	if recipient == "" {
		return dto.WelcomeEmailResponse{}, ErrNoContactOnFile
	}

	now := s.now()
	subject := fmt.Sprintf("Welcome to the school, %s!", application.StudentName)
	communication := models.Communication{
		ApplicationID: application.ID,
		Type:          models.CommunicationWelcomeEmail,
		Recipient:     recipient,
		Subject:       subject,
		Body:          welcomeEmailBody(application),
		SentBy:        actor,
		SentAt:        now,
	}

	if err := s.communications.Create(ctx, &communication); err != nil {
		return dto.WelcomeEmailResponse{}, err
	}

	s.logger.Info().
		Uint("application_id", applicationID).
		Str("recipient", recipient).
		Msg("welcome email recorded")

	return dto.WelcomeEmailResponse{
		ApplicationID: application.ID,
		Recipient:     recipient,
		Subject:       subject,
		SentAt:        now,
	}, nil
}

func welcomeEmailBody(application models.Application) string {
	var enrollment models.EnrollmentData
	_ = json.Unmarshal(application.EnrollmentData, &enrollment)

	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("Dear family of %s,\n\n", application.StudentName))
	builder.WriteString("We are delighted to confirm the enrollment and look forward to welcoming your child.\n")
	if enrollment.FormClass != "" {
		builder.WriteString(fmt.Sprintf("Form class: %s\n", enrollment.FormClass))
	}
	if enrollment.House != "" {
		builder.WriteString(fmt.Sprintf("House: %s\n", enrollment.House))
	}
	if enrollment.StartDate != "" {
		builder.WriteString(fmt.Sprintf("First day: %s\n", enrollment.StartDate))
	}
	builder.WriteString("\nThe Admissions Team")
	return builder.String()
}
