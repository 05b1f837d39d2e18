package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sams-go-api/internal/repository"
	"github.com/noah-isme/sams-go-api/internal/service"
	"github.com/noah-isme/sams-go-api/internal/utils"
)

// PipelineHandler serves pipeline statistics and register exports.
type PipelineHandler struct {
	pipeline service.PipelineService
	exports  service.ExportService
	logger   zerolog.Logger
}

// NewPipelineHandler constructs the handler.
func NewPipelineHandler(pipeline service.PipelineService, exports service.ExportService, logger zerolog.Logger) *PipelineHandler {
	return &PipelineHandler{
		pipeline: pipeline,
		exports:  exports,
		logger:   logger.With().Str("component", "pipeline_handler").Logger(),
	}
}

// Register attaches pipeline endpoints to the router group.
func (h *PipelineHandler) Register(router fiber.Router) {
	router.Get("/stats", h.stats)
	router.Get("/export", h.export)
}

func (h *PipelineHandler) stats(c *fiber.Ctx) error {
	stats, cached, err := h.pipeline.Stats(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to compute pipeline stats")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.OK(c, stats, "pipeline stats retrieved", fiber.Map{"cached": cached})
}

func (h *PipelineHandler) export(c *fiber.Ctx) error {
	filter := repository.ApplicationFilter{}
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if pathway := c.Query("pathway"); pathway != "" {
		filter.Pathway = &pathway
	}
	if yearGroup := c.Query("year_group"); yearGroup != "" {
		filter.YearGroup = &yearGroup
	}

	format := c.Query("format", "csv")

	var (
		payload     []byte
		contentType string
		err         error
	)
	switch format {
	case "csv":
		payload, err = h.exports.CSV(c.Context(), filter)
		contentType = "text/csv"
	case "xlsx":
		payload, err = h.exports.XLSX(c.Context(), filter)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return utils.SendError(c, fiber.StatusBadRequest, "format must be csv or xlsx")
	}
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to generate export")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	filename := fmt.Sprintf("applications-%s.%s", time.Now().UTC().Format("20060102-150405"), format)
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(payload)
}
