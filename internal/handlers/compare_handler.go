package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-engine/internal/models"
	"alfredoptarigan/ats-engine/internal/services"
)

type CompareHandler struct {
	comparison services.ComparisonService
}

func NewCompareHandler(comparison services.ComparisonService) *CompareHandler {
	return &CompareHandler{
		comparison: comparison,
	}
}

// HandleCompare handles POST /compare
func (h *CompareHandler) HandleCompare(c *fiber.Ctx) error {
	var req models.CompareRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	result, err := h.comparison.Compare(c.Context(), req.JobID, req.CandidateIDs)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}
