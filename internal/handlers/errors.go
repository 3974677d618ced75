package handlers

import (
	"errors"

	"marketplace/internal/middleware"
	"marketplace/internal/models"
	"marketplace/internal/services"
	"marketplace/internal/utils/response"
	"marketplace/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var errNoPrincipal = errors.New("no principal in request context")

// ErrorStatus maps a service error to its HTTP status.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case validation.IsValidationError(err):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	var errs validation.Errors
	if errors.As(err, &errs) {
		return response.ValidationError(c, errs)
	}

	status := ErrorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("request_id", middleware.RequestIDFrom(c)),
			zap.Error(err),
		)
		return response.ServerError(c, "Internal server error")
	}
	return response.Error(c, status, err.Error())
}

func principal(c *fiber.Ctx) (models.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return models.Principal{}, errNoPrincipal
	}
	return p, nil
}

func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// bind parses the JSON body into dst and validates it.
func bind(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return validation.Errors{{Field: "body", Message: "Invalid request format", Type: "json"}}
	}
	return validation.Struct(dst)
}

// bindQuery parses the query string into dst and validates it.
func bindQuery(c *fiber.Ctx, dst interface{}) error {
	if err := c.QueryParser(dst); err != nil {
		return validation.Errors{{Field: "query", Message: "Invalid query parameters", Type: "query"}}
	}
	return validation.Struct(dst)
}
