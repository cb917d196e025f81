package handlers

import (
	"errors"
	"strconv"

	"review-backend/internal/services"
	"review-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// respondServiceError translates the service error taxonomy into HTTP
// responses. Authentication failures deliberately carry no detail.
func respondServiceError(c *fiber.Ctx, logger *logrus.Logger, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return utils.FieldErrorResponse(c, fiber.StatusBadRequest, validationErr.Field, validationErr.Message)
	}

	var conflictErr *services.ConflictError
	if errors.As(err, &conflictErr) {
		return utils.FieldErrorResponse(c, fiber.StatusBadRequest, conflictErr.Field, conflictErr.Error())
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, services.ErrForbidden):
		return utils.ErrorResponse(c, fiber.StatusForbidden, "forbidden")
	case errors.Is(err, services.ErrAuthenticationFailed):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid confirmation code")
	}

	logger.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error("Request failed")
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, "internal server error")
}

func parsePagination(c *fiber.Ctx) (int, int) {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
