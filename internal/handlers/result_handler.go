package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ats-engine/internal/models"
	"alfredoptarigan/ats-engine/internal/repositories"
)

type ResultHandler struct {
	jobRepo     repositories.JobRepository
	resultCache repositories.ResultCache
}

func NewResultHandler(jobRepo repositories.JobRepository, resultCache repositories.ResultCache) *ResultHandler {
	return &ResultHandler{
		jobRepo:     jobRepo,
		resultCache: resultCache,
	}
}

// HandleGetResults handles GET /results/:job_id, returning the cached
// evaluations ordered by final score.
func (h *ResultHandler) HandleGetResults(c *fiber.Ctx) error {
	jobID := c.Params("job_id")

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		return respondError(c, err)
	}

	results := h.resultCache.ListByJob(jobID)
	return c.JSON(fiber.Map{
		"job_id":  jobID,
		"total":   len(results),
		"results": results,
	})
}

// HandleGetTopResults handles GET /results/:job_id/top?limit=N
func (h *ResultHandler) HandleGetTopResults(c *fiber.Ctx) error {
	jobID := c.Params("job_id")

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		return respondError(c, err)
	}

	limit := c.QueryInt("limit", 5)
	if limit < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "limit must be positive",
		})
	}

	results := h.resultCache.ListByJob(jobID)
	if limit > len(results) {
		limit = len(results)
	}

	return c.JSON(fiber.Map{
		"job_id":  jobID,
		"total":   limit,
		"results": results[:limit],
	})
}

// HandleGetSummary handles GET /results/:job_id/summary
func (h *ResultHandler) HandleGetSummary(c *fiber.Ctx) error {
	jobID := c.Params("job_id")

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		return respondError(c, err)
	}

	results := h.resultCache.ListByJob(jobID)

	summary := models.ResultsSummary{}
	for i, result := range results {
		switch result.Recommendation {
		case models.StrongFit:
			summary.StrongFitCount++
		case models.PartialFit:
			summary.PartialFitCount++
		case models.WeakFit:
			summary.WeakFitCount++
		}

		score := result.Scores.FinalScore
		summary.AverageScore += score
		if i == 0 || score > summary.HighestScore {
			summary.HighestScore = score
		}
		if i == 0 || score < summary.LowestScore {
			summary.LowestScore = score
		}
	}
	if len(results) > 0 {
		summary.AverageScore /= len(results)
	}

	return c.JSON(fiber.Map{
		"job_id":    jobID,
		"evaluated": len(results),
		"summary":   summary,
	})
}
