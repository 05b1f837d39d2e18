package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sams-go-api/internal/admission"
	"github.com/noah-isme/sams-go-api/internal/dto"
	"github.com/noah-isme/sams-go-api/internal/service"
	"github.com/noah-isme/sams-go-api/internal/utils"
)

// StageHandler wires the per-stage action endpoints.
type StageHandler struct {
	reviews     service.ReviewService
	assessments service.AssessmentService
	decisions   service.DecisionService
	enrollments service.EnrollmentService
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewStageHandler constructs the handler.
func NewStageHandler(reviews service.ReviewService, assessments service.AssessmentService, decisions service.DecisionService, enrollments service.EnrollmentService, validator *validator.Validate, logger zerolog.Logger) *StageHandler {
	return &StageHandler{
		reviews:     reviews,
		assessments: assessments,
		decisions:   decisions,
		enrollments: enrollments,
		validator:   validator,
		logger:      logger.With().Str("component", "stage_handler").Logger(),
	}
}

// Register attaches stage action endpoints to the applications group.
func (h *StageHandler) Register(router fiber.Router) {
	router.Post("/:id/review", h.submitReview)
	router.Post("/:id/assessment", h.submitAssessment)
	router.Post("/:id/interview/schedule", h.scheduleInterview)
	router.Post("/:id/interview", h.submitInterview)
	router.Post("/:id/decision", h.submitDecision)
	router.Post("/:id/enrollment", h.confirmEnrollment)
	router.Post("/:id/welcome-email", h.sendWelcomeEmail)
}

func (h *StageHandler) submitReview(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ReviewSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.reviews.SubmitReview(c.Context(), id, payload, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "review submitted", result)
}

func (h *StageHandler) submitAssessment(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AssessmentSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.assessments.SubmitMarks(c.Context(), id, payload, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assessment recorded", result)
}

func (h *StageHandler) scheduleInterview(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.InterviewScheduleRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.assessments.ScheduleInterview(c.Context(), id, payload, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "interview scheduled", result)
}

func (h *StageHandler) submitInterview(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.InterviewSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.assessments.SubmitInterview(c.Context(), id, payload, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "interview recorded", result)
}

func (h *StageHandler) submitDecision(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.DecisionSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.decisions.SubmitDecision(c.Context(), id, payload, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "decision recorded", result)
}

func (h *StageHandler) confirmEnrollment(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.EnrollmentConfirmRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.enrollments.ConfirmEnrollment(c.Context(), id, payload, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "enrollment confirmed", result)
}

func (h *StageHandler) sendWelcomeEmail(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.enrollments.SendWelcomeEmail(c.Context(), id, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "welcome email sent", result)
}

func (h *StageHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrApplicationNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "application not found")
	case errors.Is(err, service.ErrActorRequired):
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrDocumentsNotVerified),
		errors.Is(err, service.ErrReviewAlreadySubmitted),
		errors.Is(err, service.ErrApplicationNotInReview),
		errors.Is(err, service.ErrNotInAssessmentStage),
		errors.Is(err, service.ErrAssessmentNotPassed),
		errors.Is(err, service.ErrAssessmentNotRecorded),
		errors.Is(err, service.ErrInterviewNotScheduled),
		errors.Is(err, service.ErrNotAwaitingDecision),
		errors.Is(err, service.ErrDecisionRecorded),
		errors.Is(err, service.ErrNotAwaitingEnrollment),
		errors.Is(err, service.ErrNotEnrolled),
		errors.Is(err, service.ErrNoContactOnFile),
		admission.IsGateError(err):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
