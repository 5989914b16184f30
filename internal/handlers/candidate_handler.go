package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-engine/internal/repositories"
	"alfredoptarigan/ats-engine/internal/services"
)

type CandidateHandler struct {
	jobRepo   repositories.JobRepository
	candRepo  repositories.CandidateRepository
	evaluator services.EvaluatorService
}

func NewCandidateHandler(
	jobRepo repositories.JobRepository,
	candRepo repositories.CandidateRepository,
	evaluator services.EvaluatorService,
) *CandidateHandler {
	return &CandidateHandler{
		jobRepo:   jobRepo,
		candRepo:  candRepo,
		evaluator: evaluator,
	}
}

// HandleListCandidates handles GET /jobs/:job_id/candidates
func (h *CandidateHandler) HandleListCandidates(c *fiber.Ctx) error {
	jobID := c.Params("job_id")

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		return respondError(c, err)
	}

	candidates, err := h.candRepo.FindByJob(jobID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"job_id":     jobID,
		"total":      len(candidates),
		"candidates": candidates,
	})
}

// HandleGetCandidate handles GET /jobs/:job_id/candidates/:candidate_id,
// returning the profile joined with its skill match against the job.
func (h *CandidateHandler) HandleGetCandidate(c *fiber.Ctx) error {
	detail, err := h.evaluator.CandidateDetail(c.Params("job_id"), c.Params("candidate_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}
