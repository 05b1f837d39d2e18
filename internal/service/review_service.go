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

// Sentinel errors surfaced by the review workflow.
var (
	ErrDocumentsNotVerified   = errors.New("all required documents must be verified before review")
	ErrReviewAlreadySubmitted = errors.New("review has already been submitted")
	ErrApplicationNotInReview = errors.New("application is not in the review stage")
)

// ReviewService records the Review & Verify stage's composite score.
type ReviewService interface {
	SubmitReview(ctx context.Context, applicationID uint, payload dto.ReviewSubmitRequest, actor string) (dto.ReviewSubmitResponse, error)
}

type reviewService struct {
	applications repository.ApplicationRepository
	validator    *validator.Validate
	logger       zerolog.Logger
	now          func() time.Time
}

// NewReviewService constructs a ReviewService instance.
func NewReviewService(appRepo repository.ApplicationRepository, validate *validator.Validate, logger zerolog.Logger) ReviewService {
	return &reviewService{
		applications: appRepo,
		validator:    validate,
		logger:       logger.With().Str("component", "review_service").Logger(),
		now:          time.Now,
	}
}

func (s *reviewService) SubmitReview(ctx context.Context, applicationID uint, payload dto.ReviewSubmitRequest, actor string) (dto.ReviewSubmitResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ReviewSubmitResponse{}, err
	}
	if strings.TrimSpace(actor) == "" {
		return dto.ReviewSubmitResponse{}, ErrActorRequired
	}

	application, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ReviewSubmitResponse{}, ErrApplicationNotFound
		}
		return dto.ReviewSubmitResponse{}, err
	}

	if admission.StageFor(application.Status) != 1 {
		return dto.ReviewSubmitResponse{}, ErrApplicationNotInReview
	}

	switch application.ReviewStageStatus {
	case admission.ReviewSubmitted:
		return dto.ReviewSubmitResponse{}, ErrReviewAlreadySubmitted
	case admission.ReviewDocumentsVerified:
		// Checklist satisfied; the review score may be recorded.
	default:
		return dto.ReviewSubmitResponse{}, ErrDocumentsNotVerified
	}

	composite := admission.CompositeScore(payload.AcademicScore, payload.BehavioralScore, payload.CommunicationScore)
	review := models.ReviewData{
		AcademicScore:      payload.AcademicScore,
		BehavioralScore:    payload.BehavioralScore,
		CommunicationScore: payload.CommunicationScore,
		CompositeScore:     composite,
		Notes:              strings.TrimSpace(payload.Notes),
		ReviewedBy:         actor,
		CompletedAt:        s.now(),
	}

	encoded, err := json.Marshal(review)
	if err != nil {
		return dto.ReviewSubmitResponse{}, err
	}

	application.ReviewData = datatypes.JSON(encoded)
	application.ReviewStageStatus = admission.ReviewSubmitted
	if err := s.applications.Update(ctx, &application); err != nil {
		return dto.ReviewSubmitResponse{}, err
	}

	s.logger.Info().
		Uint("application_id", applicationID).
		Int("composite_score", composite).
		Msg("review submitted")

	return dto.ReviewSubmitResponse{
		ApplicationID:     applicationID,
		CompositeScore:    composite,
		ReviewStageStatus: string(admission.ReviewSubmitted),
	}, nil
}
