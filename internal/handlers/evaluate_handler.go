package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-engine/internal/models"
	"alfredoptarigan/ats-engine/internal/services"
)

type EvaluateHandler struct {
	evaluator services.EvaluatorService
}

func NewEvaluateHandler(evaluator services.EvaluatorService) *EvaluateHandler {
	return &EvaluateHandler{
		evaluator: evaluator,
	}
}

// HandleEvaluate handles POST /evaluate. With no candidate_ids the whole
// candidate pool for the job is evaluated.
func (h *EvaluateHandler) HandleEvaluate(c *fiber.Ctx) error {
	var req models.EvaluateRequest
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

	response, err := h.evaluator.EvaluateAll(c.Context(), req.JobID, req.CandidateIDs)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(response)
}

// HandleEvaluateJob handles POST /jobs/:job_id/evaluate, a path-based
// variant of HandleEvaluate that always evaluates the full pool.
func (h *EvaluateHandler) HandleEvaluateJob(c *fiber.Ctx) error {
	response, err := h.evaluator.EvaluateAll(c.Context(), c.Params("job_id"), nil)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(response)
}

// HandleEvaluateCandidate handles POST /jobs/:job_id/candidates/:candidate_id/evaluate
func (h *EvaluateHandler) HandleEvaluateCandidate(c *fiber.Ctx) error {
	result, err := h.evaluator.EvaluateOne(c.Context(), c.Params("job_id"), c.Params("candidate_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
