package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sams-go-api/internal/dto"
	"github.com/noah-isme/sams-go-api/internal/service"
	"github.com/noah-isme/sams-go-api/internal/utils"
)

// TimetableHandler wires the timetable generation endpoint.
type TimetableHandler struct {
	service   service.TimetableService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(service service.TimetableService, validator *validator.Validate, logger zerolog.Logger) *TimetableHandler {
	return &TimetableHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "timetable_handler").Logger(),
	}
}

// Register attaches timetable endpoints to the router group.
func (h *TimetableHandler) Register(router fiber.Router) {
	router.Post("/generate", h.generate)
}

func (h *TimetableHandler) generate(c *fiber.Ctx) error {
	var payload dto.TimetableGenerateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Generate(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGeneratorUnavailable):
			return utils.SendError(c, fiber.StatusServiceUnavailable, err.Error())
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("timetable generation failed")
			return utils.SendError(c, fiber.StatusBadGateway, "timetable generation failed")
		}
	}

	return utils.SendSuccess(c, "timetable generated", result)
}
