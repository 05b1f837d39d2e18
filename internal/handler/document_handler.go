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

// DocumentHandler wires document upload and verification routes.
type DocumentHandler struct {
	service   service.DocumentService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewDocumentHandler constructs the handler.
func NewDocumentHandler(service service.DocumentService, validator *validator.Validate, logger zerolog.Logger) *DocumentHandler {
	return &DocumentHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "document_handler").Logger(),
	}
}

// Register attaches document endpoints. Upload and checklist hang off the
// application; verification acts on the document row.
func (h *DocumentHandler) Register(applications fiber.Router, documents fiber.Router, uploadLimit fiber.Handler) {
	applications.Get("/:id/documents", h.list)
	applications.Get("/:id/documents/checklist", h.checklist)
	if uploadLimit != nil {
		applications.Post("/:id/documents", uploadLimit, h.upload)
	} else {
		applications.Post("/:id/documents", h.upload)
	}

	documents.Patch("/:id/verify", h.verify)
	documents.Patch("/:id/reject", h.reject)
	documents.Get("/:id/url", h.signedURL)
}

func (h *DocumentHandler) upload(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	payload := dto.DocumentUploadRequest{DocumentType: c.FormValue("document_type")}
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "document file is required")
	}

	document, err := h.service.Upload(c.Context(), id, payload, file, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "document uploaded", document)
}

func (h *DocumentHandler) list(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	documents, err := h.service.ListByApplication(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "documents retrieved", documents)
}

func (h *DocumentHandler) checklist(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	checklist, err := h.service.Checklist(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "checklist retrieved", checklist)
}

func (h *DocumentHandler) verify(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	document, err := h.service.Verify(c.Context(), id, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "document verified", document)
}

func (h *DocumentHandler) reject(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	document, err := h.service.Reject(c.Context(), id, actorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "document rejected", document)
}

func (h *DocumentHandler) signedURL(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	signed, err := h.service.SignedURL(c.Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "signed url issued", signed)
}

func (h *DocumentHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrApplicationNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "application not found")
	case errors.Is(err, service.ErrDocumentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "document not found")
	case errors.Is(err, service.ErrDocumentFinalized):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrActorRequired):
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUnsupportedFileType), errors.Is(err, service.ErrFileRequired):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
