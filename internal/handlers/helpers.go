package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/ats-engine/internal/models"
)

// respondError maps domain errors to HTTP statuses. Unknown errors stay
// opaque to the client.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, models.ErrInvalidArgument):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
}

func newJobID() string {
	return "JD-" + shortID()
}

func newCandidateID() string {
	return "CAND-" + shortID()
}

func shortID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
