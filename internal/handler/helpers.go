package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/sams-go-api/internal/middleware"
)

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value := c.Params(name)
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.New("invalid identifier")
	}
	return uint(parsed), nil
}

// actorFromContext resolves who is performing a stage action, preferring the
// identity the JWT middleware extracted.
func actorFromContext(c *fiber.Ctx) string {
	if v := c.Locals("actor"); v != nil {
		if actor, ok := v.(string); ok && strings.TrimSpace(actor) != "" {
			return strings.TrimSpace(actor)
		}
	}
	if v := c.Locals("user_id"); v != nil {
		switch id := v.(type) {
		case uint:
			return "user:" + strconv.FormatUint(uint64(id), 10)
		case int:
			if id > 0 {
				return "user:" + strconv.Itoa(id)
			}
		case string:
			return strings.TrimSpace(id)
		}
	}
	return ""
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}
