package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cleankili/backend/internal/validation"
)

// validationResponse maps an aggregated validation error to a 422 body
// listing every violation.
func validationResponse(c *fiber.Ctx, err error) error {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":      "validation failed",
			"violations": verr.Violations,
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}
