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

// NoteHandler wires application note routes.
type NoteHandler struct {
	service   service.NoteService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewNoteHandler constructs the handler.
func NewNoteHandler(service service.NoteService, validator *validator.Validate, logger zerolog.Logger) *NoteHandler {
	return &NoteHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "note_handler").Logger(),
	}
}

// Register attaches note endpoints. Creation and listing hang off the
// application; deletion acts on the note row.
func (h *NoteHandler) Register(applications fiber.Router, notes fiber.Router) {
	applications.Get("/:id/notes", h.list)
	applications.Post("/:id/notes", h.create)

	notes.Delete("/:id", h.delete)
}

func (h *NoteHandler) create(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.NoteCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	note, err := h.service.Add(c.Context(), id, payload, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "note added", note)
}

func (h *NoteHandler) list(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	notes, err := h.service.List(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "notes retrieved", notes)
}

func (h *NoteHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "note deleted", fiber.Map{"id": id})
}

func (h *NoteHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrApplicationNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "application not found")
	case errors.Is(err, service.ErrNoteNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "note not found")
	case errors.Is(err, service.ErrNoteEmpty):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrActorRequired):
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
