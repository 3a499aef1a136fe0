package handlers

import (
	"errors"
	"server/internal/errs"

	"github.com/gofiber/fiber/v2"
)

// errorResponse converts a controller error into the `{message}` JSON
// envelope. Internal detail (wrapped causes, upstream bodies) never makes
// it into the response.
func errorResponse(c *fiber.Ctx, err error) error {
	var e *errs.Error
	if errors.As(err, &e) {
		body := fiber.Map{"message": e.Message}
		if len(e.Fields) > 0 {
			body["fields"] = e.Fields
		}
		return c.Status(errs.StatusOf(err)).JSON(body)
	}

	return c.Status(fiber.StatusInternalServerError).
		JSON(fiber.Map{"message": "internal server error"})
}
